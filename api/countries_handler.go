package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"inquiry-desk/app"
	"inquiry-desk/countries"
)

func RegisterCountries(r chi.Router, a *app.App) {
	r.Get("/countries", func(w http.ResponseWriter, req *http.Request) {
		render.JSON(w, req, a.Directory.All())
	})

	r.Post("/countries/refresh", func(w http.ResponseWriter, req *http.Request) {
		if err := a.RefreshCountries(req.Context()); err != nil {
			if errors.Is(err, countries.ErrRefreshThrottled) {
				writeError(w, req, http.StatusTooManyRequests, "refresh_throttled", err)
				return
			}
			writeError(w, req, http.StatusBadGateway, "countries_unavailable", err)
			return
		}
		render.JSON(w, req, map[string]any{"ok": true, "count": a.Directory.Len()})
	})
}
