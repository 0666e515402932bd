package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"inquiry-desk/app"
	"inquiry-desk/models"
	"inquiry-desk/services"
)

func RegisterInquiries(r chi.Router, a *app.App) {
	r.Route("/inquiries", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, req *http.Request) {
			list := a.Inquiries.All()
			if list == nil {
				list = []models.Inquiry{}
			}
			render.JSON(w, req, map[string]any{"count": len(list), "inquiries": list})
		})

		// Submits the wizard's current answers.
		r.Post("/", func(w http.ResponseWriter, req *http.Request) {
			inq, err := a.Session.SaveInquiry()
			if err != nil {
				writeBuildError(w, req, err)
				return
			}
			persist(a, req)
			render.Status(req, http.StatusCreated)
			render.JSON(w, req, inq)
		})

		r.Delete("/", func(w http.ResponseWriter, req *http.Request) {
			if err := a.ClearInquiries(req.Context()); err != nil {
				a.Logger.Warn("[http] Dropping saved inquiries failed: %v", err)
			}
			render.JSON(w, req, map[string]any{"ok": true, "count": 0})
		})

		r.Delete("/{index}", func(w http.ResponseWriter, req *http.Request) {
			index, err := strconv.Atoi(chi.URLParam(req, "index"))
			if err != nil {
				writeError(w, req, http.StatusBadRequest, "invalid_index", fmt.Errorf("index must be an integer: %w", err))
				return
			}
			if err := a.Inquiries.Delete(index); err != nil {
				if errors.Is(err, services.ErrIndexOutOfRange) {
					writeError(w, req, http.StatusNotFound, "index_out_of_range", err)
					return
				}
				writeError(w, req, http.StatusInternalServerError, "delete_failed", err)
				return
			}
			persist(a, req)
			render.JSON(w, req, map[string]any{"ok": true, "count": a.Inquiries.Len()})
		})
	})
}
