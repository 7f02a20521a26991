// Headless JSON API for the bridge simulator. Serves the same session
// operations as the web UI but without pages, for scripted lab clients.
package main

import (
	"log"
	"math/rand"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/sridharshinicloud/carey-foster-bridge-new/adapters/excel"
	"github.com/sridharshinicloud/carey-foster-bridge-new/app"
	"github.com/sridharshinicloud/carey-foster-bridge-new/domain/core"
	dsession "github.com/sridharshinicloud/carey-foster-bridge-new/domain/session"
	"github.com/sridharshinicloud/carey-foster-bridge-new/internal"
	"github.com/sridharshinicloud/carey-foster-bridge-new/internal/config"
	apperrors "github.com/sridharshinicloud/carey-foster-bridge-new/internal/errors"
	insession "github.com/sridharshinicloud/carey-foster-bridge-new/internal/session"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := internal.NewDefaultLogger()

	sessCfg := dsession.Config{
		RatioArmOhms:      appConfig.Experiment.RatioArmOhms,
		ResistivityPerCM:  appConfig.Experiment.ResistivityPerCM,
		TrueUnknownOhms:   appConfig.Experiment.TrueUnknownOhms,
		InitialKnownOhms:  appConfig.Experiment.InitialKnownOhms,
		MinKnownOhms:      appConfig.Experiment.MinKnownOhms,
		MaxKnownOhms:      appConfig.Experiment.MaxKnownOhms,
		Tolerance:         appConfig.Experiment.Tolerance,
		Sensitivity:       appConfig.Experiment.Sensitivity,
		RevealMinReadings: appConfig.Experiment.RevealMinReadings,
	}
	if appConfig.Experiment.RandomizeTruths {
		sessCfg = dsession.Randomize(sessCfg, rand.New(rand.NewSource(time.Now().UnixNano())))
	}

	sim := app.NewSimulatorService(sessCfg, logger)
	store := insession.NewSnapshotStore(appConfig.Server.SnapshotTTL)
	reports := app.NewReportService(store, excel.NewWorkbookExporter(), nil, logger)

	router := gin.Default()
	v1 := router.Group("/api/v1")
	{
		v1.GET("/state", func(c *gin.Context) {
			c.JSON(http.StatusOK, sim.State())
		})
		v1.POST("/state", func(c *gin.Context) {
			var adj app.Adjust
			if err := c.ShouldBindJSON(&adj); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "malformed adjustment payload"})
				return
			}
			state, aerr := sim.Apply(adj)
			if aerr != nil {
				abortWithAppError(c, aerr)
				return
			}
			c.JSON(http.StatusOK, state)
		})
		v1.POST("/readings", func(c *gin.Context) {
			reading, rerr := sim.Record()
			if rerr != nil {
				abortWithAppError(c, rerr)
				return
			}
			c.JSON(http.StatusCreated, gin.H{"reading": reading, "state": sim.State()})
		})
		v1.DELETE("/readings/:id", func(c *gin.Context) {
			id, perr := core.ParseReadingID(c.Param("id"))
			if perr != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": perr.Error()})
				return
			}
			if derr := sim.DeleteReading(id); derr != nil {
				abortWithAppError(c, derr)
				return
			}
			c.JSON(http.StatusOK, sim.State())
		})
		v1.POST("/reveal", func(c *gin.Context) {
			state, rerr := sim.Reveal()
			if rerr != nil {
				abortWithAppError(c, rerr)
				return
			}
			c.JSON(http.StatusOK, state)
		})
		v1.POST("/reset", func(c *gin.Context) {
			c.JSON(http.StatusOK, sim.Reset())
		})
		v1.POST("/reports", func(c *gin.Context) {
			var body struct {
				WireRadiusCM *float64 `json:"wireRadiusCM"`
				WireLengthCM *float64 `json:"wireLengthCM"`
			}
			_ = c.ShouldBindJSON(&body)
			snap := sim.Snapshot(body.WireRadiusCM, body.WireLengthCM)
			id, cerr := reports.CreateReport(c.Request.Context(), snap)
			if cerr != nil {
				abortWithAppError(c, cerr)
				return
			}
			c.JSON(http.StatusCreated, gin.H{"id": id.String()})
		})
		v1.GET("/reports/:id", func(c *gin.Context) {
			id, perr := core.ParseSnapshotID(c.Param("id"))
			if perr != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": perr.Error()})
				return
			}
			view, verr := reports.View(c.Request.Context(), id)
			if verr != nil {
				abortWithAppError(c, verr)
				return
			}
			c.JSON(http.StatusOK, view)
		})
		v1.GET("/reports/:id/export", func(c *gin.Context) {
			id, perr := core.ParseSnapshotID(c.Param("id"))
			if perr != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": perr.Error()})
				return
			}
			data, xerr := reports.Export(c.Request.Context(), id)
			if xerr != nil {
				abortWithAppError(c, xerr)
				return
			}
			c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
		})
	}

	logger.Info("starting bridge simulator API on :%s", appConfig.Server.Port)
	if err := router.Run(":" + appConfig.Server.Port); err != nil {
		log.Fatal("Server failed:", err)
	}
}

func abortWithAppError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch apperrors.GetCode(err) {
	case apperrors.CodeRecordingRejected:
		status = http.StatusConflict
	case apperrors.CodeInvalidInput:
		status = http.StatusBadRequest
	case apperrors.CodeNotFound:
		status = http.StatusNotFound
	case apperrors.CodeExternalService:
		status = http.StatusBadGateway
	}
	c.JSON(status, gin.H{"error": err.Error(), "code": apperrors.GetCode(err)})
}
