package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"inquiry-desk/app"
	"inquiry-desk/report"
)

// RegisterInsights serves the analytics report as JSON, or as an HTML page
// with ?format=html. /admin is the same report.
func RegisterInsights(r chi.Router, a *app.App) {
	handler := func(w http.ResponseWriter, req *http.Request) {
		rep := a.Report()
		if req.URL.Query().Get("format") != "html" {
			render.JSON(w, req, rep)
			return
		}

		page, err := report.HTML(rep, time.Now())
		if err != nil {
			writeError(w, req, http.StatusInternalServerError, "render_failed", err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(page)
	}

	r.Get("/insights", handler)
	r.Get("/admin", handler)
}
