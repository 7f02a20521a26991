package ui

import (
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gomarkdown/markdown"

	"github.com/sridharshinicloud/carey-foster-bridge-new/app"
	"github.com/sridharshinicloud/carey-foster-bridge-new/domain/core"
	apperrors "github.com/sridharshinicloud/carey-foster-bridge-new/internal/errors"
)

// handleIndex renders the simulator page with the current state baked in.
func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	a.renderTemplate(w, "index.html", a.sim.State())
}

// reportPageModel decorates the report view for the template.
type reportPageModel struct {
	app.ReportView
	ExportURL string
}

// handleReportPage renders the printable report for a snapshot.
func (a *App) handleReportPage(w http.ResponseWriter, r *http.Request) {
	id, err := core.ParseSnapshotID(chi.URLParam(r, "id"))
	if err != nil {
		a.writeError(w, apperrors.InvalidInput(err.Error()))
		return
	}
	view, verr := a.reports.View(r.Context(), id)
	if verr != nil {
		a.writeError(w, verr)
		return
	}
	a.renderTemplate(w, "report.html", reportPageModel{
		ReportView: view,
		ExportURL:  fmt.Sprintf("/api/report/%s/export", id),
	})
}

func (a *App) handleGetState(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, http.StatusOK, a.sim.State())
}

func (a *App) handleAdjust(w http.ResponseWriter, r *http.Request) {
	var adj app.Adjust
	if err := json.NewDecoder(r.Body).Decode(&adj); err != nil {
		a.writeError(w, apperrors.InvalidInput("malformed adjustment payload"))
		return
	}
	state, err := a.sim.Apply(adj)
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, state)
}

func (a *App) handleRecord(w http.ResponseWriter, r *http.Request) {
	reading, err := a.sim.Record()
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusCreated, map[string]interface{}{
		"reading": reading,
		"state":   a.sim.State(),
	})
}

func (a *App) handleDeleteReading(w http.ResponseWriter, r *http.Request) {
	id, err := core.ParseReadingID(chi.URLParam(r, "id"))
	if err != nil {
		a.writeError(w, apperrors.InvalidInput(err.Error()))
		return
	}
	if derr := a.sim.DeleteReading(id); derr != nil {
		a.writeError(w, derr)
		return
	}
	a.writeJSON(w, http.StatusOK, a.sim.State())
}

func (a *App) handleReset(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, http.StatusOK, a.sim.Reset())
}

func (a *App) handleReveal(w http.ResponseWriter, r *http.Request) {
	state, err := a.sim.Reveal()
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusOK, state)
}

// handleSuggest relays one complete reading to the advisory service and
// returns the text both raw and rendered (the model tends to answer in
// markdown).
func (a *App) handleSuggest(w http.ResponseWriter, r *http.Request) {
	if !a.suggest.Enabled() {
		a.writeError(w, apperrors.InvalidInput("suggestion service is not configured"))
		return
	}
	var body struct {
		ReadingID string `json:"readingId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		a.writeError(w, apperrors.InvalidInput("malformed suggestion payload"))
		return
	}
	id, err := core.ParseReadingID(body.ReadingID)
	if err != nil {
		a.writeError(w, apperrors.InvalidInput(err.Error()))
		return
	}
	reading, rerr := a.sim.Reading(id)
	if rerr != nil {
		a.writeError(w, rerr)
		return
	}
	text, serr := a.suggest.SuggestForReading(r.Context(), reading)
	if serr != nil {
		a.writeError(w, serr)
		return
	}
	rendered := template.HTML(markdown.ToHTML([]byte(text), nil, nil))
	a.writeJSON(w, http.StatusOK, map[string]interface{}{
		"suggestions":     text,
		"suggestionsHTML": string(rendered),
	})
}

func (a *App) handleCreateReport(w http.ResponseWriter, r *http.Request) {
	var body struct {
		WireRadiusCM *float64 `json:"wireRadiusCM,omitempty"`
		WireLengthCM *float64 `json:"wireLengthCM,omitempty"`
	}
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			a.writeError(w, apperrors.InvalidInput("malformed report payload"))
			return
		}
	}
	snap := a.sim.Snapshot(body.WireRadiusCM, body.WireLengthCM)
	id, err := a.reports.CreateReport(r.Context(), snap)
	if err != nil {
		a.writeError(w, err)
		return
	}
	a.writeJSON(w, http.StatusCreated, map[string]string{
		"id":  id.String(),
		"url": fmt.Sprintf("/report/%s", id),
	})
}

func (a *App) handleExport(w http.ResponseWriter, r *http.Request) {
	id, err := core.ParseSnapshotID(chi.URLParam(r, "id"))
	if err != nil {
		a.writeError(w, apperrors.InvalidInput(err.Error()))
		return
	}
	data, xerr := a.reports.Export(r.Context(), id)
	if xerr != nil {
		a.writeError(w, xerr)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=bridge-report-%s.xlsx", id))
	_, _ = w.Write(data)
}
