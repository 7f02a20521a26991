package main

import (
	"context"
	"log"
	"math/rand"
	"net/http"
	_ "net/http/pprof"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	"github.com/sridharshinicloud/carey-foster-bridge-new/adapters/excel"
	"github.com/sridharshinicloud/carey-foster-bridge-new/adapters/llm"
	"github.com/sridharshinicloud/carey-foster-bridge-new/adapters/postgres"
	"github.com/sridharshinicloud/carey-foster-bridge-new/app"
	dsession "github.com/sridharshinicloud/carey-foster-bridge-new/domain/session"
	"github.com/sridharshinicloud/carey-foster-bridge-new/internal"
	"github.com/sridharshinicloud/carey-foster-bridge-new/internal/config"
	"github.com/sridharshinicloud/carey-foster-bridge-new/internal/errors"
	insession "github.com/sridharshinicloud/carey-foster-bridge-new/internal/session"
	"github.com/sridharshinicloud/carey-foster-bridge-new/ports"
	"github.com/sridharshinicloud/carey-foster-bridge-new/ui"
)

// initDatabase connects the optional report archive. A missing
// DATABASE_URL is not an error; the simulator runs fully in memory.
func initDatabase(appConfig *config.Config) (*sqlx.DB, error) {
	if appConfig.Database.URL == "" {
		return nil, nil
	}
	db, err := sqlx.Connect("postgres", appConfig.Database.URL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}
	if err := db.Ping(); err != nil {
		return nil, errors.Wrap(err, "failed to ping database")
	}
	if err := postgres.Migrate(context.Background(), db); err != nil {
		return nil, errors.Wrap(err, "database migration failed")
	}
	return db, nil
}

// sessionConfig maps env config onto the domain session policy.
func sessionConfig(exp config.ExperimentConfig) dsession.Config {
	cfg := dsession.Config{
		RatioArmOhms:      exp.RatioArmOhms,
		ResistivityPerCM:  exp.ResistivityPerCM,
		TrueUnknownOhms:   exp.TrueUnknownOhms,
		InitialKnownOhms:  exp.InitialKnownOhms,
		MinKnownOhms:      exp.MinKnownOhms,
		MaxKnownOhms:      exp.MaxKnownOhms,
		Tolerance:         exp.Tolerance,
		Sensitivity:       exp.Sensitivity,
		RevealMinReadings: exp.RevealMinReadings,
	}
	if exp.RandomizeTruths {
		cfg = dsession.Randomize(cfg, rand.New(rand.NewSource(time.Now().UnixNano())))
	}
	return cfg
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := internal.NewDefaultLogger()

	db, err := initDatabase(appConfig)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	var archive ports.ReportArchive
	if db != nil {
		defer db.Close()
		archive = postgres.NewArchiveRepository(db)
		logger.Info("report archive enabled (postgres)")
	}

	// Suggestion collaborator is optional: no key, no feature.
	var suggestionClient ports.SuggestionClient
	if appConfig.AI.OpenAIKey != "" {
		adapter, aerr := llm.NewSuggestionAdapter(llm.Config{
			Model:       appConfig.AI.OpenAIModel,
			APIKey:      appConfig.AI.OpenAIKey,
			BaseURL:     appConfig.AI.BaseURL,
			Temperature: appConfig.AI.Temperature,
			MaxTokens:   appConfig.AI.MaxTokens,
			Timeout:     appConfig.AI.Timeout,
		})
		if aerr != nil {
			log.Fatalf("Failed to initialize suggestion client: %v", aerr)
		}
		suggestionClient = adapter
		logger.Info("suggestion service enabled (model %s)", appConfig.AI.OpenAIModel)
	} else {
		logger.Info("no OPENAI_API_KEY set, suggestion service disabled")
	}

	sim := app.NewSimulatorService(sessionConfig(appConfig.Experiment), logger)
	suggest := app.NewSuggestionService(suggestionClient, logger)

	store := insession.NewSnapshotStore(appConfig.Server.SnapshotTTL)
	stop := make(chan struct{})
	defer close(stop)
	store.StartJanitor(10*time.Minute, stop)

	reports := app.NewReportService(store, excel.NewWorkbookExporter(), archive, logger)

	webApp, err := ui.NewApp(sim, suggest, reports, logger)
	if err != nil {
		log.Fatalf("Failed to initialize web app: %v", err)
	}

	var g errgroup.Group
	g.Go(func() error {
		return webApp.Start(":" + appConfig.Server.Port)
	})
	if appConfig.Profiling.Enabled {
		g.Go(func() error {
			logger.Info("pprof server on :%s", appConfig.Profiling.Port)
			return http.ListenAndServe(":"+appConfig.Profiling.Port, nil)
		})
	}
	log.Fatal(g.Wait())
}
