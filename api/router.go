package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/go-chi/render"

	"inquiry-desk/app"
	"inquiry-desk/utils"
)

// BuildRouter exposes the wizard, the collection and the analytics over JSON.
func BuildRouter(a *app.App) http.Handler {
	limit := a.Config.HTTPRateLimitPerMin
	if limit <= 0 {
		limit = 120
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(a.Logger.With("http")))
	r.Use(httprate.LimitByIP(limit, 1*time.Minute))
	r.Use(render.SetContentType(render.ContentTypeJSON))
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { w.Write([]byte(`{"ok":true}`)) })

	RegisterCountries(r, a)
	RegisterWizard(r, a)
	RegisterInquiries(r, a)
	RegisterInsights(r, a)

	return r
}

func requestLogger(logger *utils.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Info("%s %s -> %d (%v)", r.Method, r.URL.Path, ww.Status(), time.Since(start).Round(time.Millisecond))
		})
	}
}

func writeError(w http.ResponseWriter, req *http.Request, status int, code string, err error) {
	render.Status(req, status)
	render.JSON(w, req, map[string]any{"error": code, "detail": err.Error()})
}

// persist saves state after a mutation. The in-memory state stays
// authoritative when the store is unavailable.
func persist(a *app.App, req *http.Request) {
	if err := a.Save(req.Context()); err != nil {
		a.Logger.Warn("[http] Saving state failed: %v", err)
	}
}
