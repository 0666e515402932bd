package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"inquiry-desk/app"
	"inquiry-desk/models"
	"inquiry-desk/services"
)

// WizardPatch carries the answers of one step. Absent fields are left as they are.
type WizardPatch struct {
	Type              *models.InquiryType `json:"type,omitempty"`
	Country           *string             `json:"country,omitempty"`
	HomeBudget        *float64            `json:"homeBudget,omitempty"`
	HomeValue         *float64            `json:"homeValue,omitempty"`
	FinancingAdvisory *bool               `json:"financingAdvisory,omitempty"`
	Name              *string             `json:"name,omitempty"`
	Email             *string             `json:"email,omitempty"`
	City              *string             `json:"city,omitempty"`
}

func (p WizardPatch) apply(b *models.InquiryBuilder) {
	if p.Type != nil {
		b.AddInquiryType(*p.Type)
	}
	if p.Country != nil {
		b.AddCountry(*p.Country)
	}
	if p.HomeBudget != nil {
		b.AddHomeBudget(p.HomeBudget)
	}
	if p.HomeValue != nil {
		b.AddHomeValue(p.HomeValue)
	}
	if p.FinancingAdvisory != nil {
		b.AddFinancingAdvisory(*p.FinancingAdvisory)
	}
	if p.Name != nil {
		b.AddName(services.NormaliseText(*p.Name))
	}
	if p.Email != nil {
		b.AddEmail(services.NormaliseEmail(*p.Email))
	}
	if p.City != nil {
		b.AddCity(services.NormaliseText(*p.City))
	}
}

// WizardView is what a client needs to draw the current step.
type WizardView struct {
	Step           string                 `json:"step"`
	Flow           []string               `json:"flow"`
	Progress       models.StepProgress    `json:"progress"`
	CurrencySymbol string                 `json:"currencySymbol"`
	Draft          models.BuilderSnapshot `json:"draft"`
	Submitted      models.Inquiry         `json:"submitted,omitempty"`
}

func wizardView(s *services.Session) WizardView {
	draft := s.Draft()
	flow, _ := services.Flow(draft.Type)
	return WizardView{
		Step:           s.CurrentStep(),
		Flow:           flow,
		Progress:       s.Progress(),
		CurrencySymbol: s.CurrencySymbol(),
		Draft:          draft,
	}
}

func RegisterWizard(r chi.Router, a *app.App) {
	r.Route("/wizard", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, req *http.Request) {
			render.JSON(w, req, wizardView(a.Session))
		})

		r.Patch("/", func(w http.ResponseWriter, req *http.Request) {
			var patch WizardPatch
			if err := render.DecodeJSON(req.Body, &patch); err != nil {
				writeError(w, req, http.StatusBadRequest, "invalid_json", err)
				return
			}
			a.Session.Update(patch.apply)
			persist(a, req)
			render.JSON(w, req, wizardView(a.Session))
		})

		r.Post("/next", func(w http.ResponseWriter, req *http.Request) {
			submitted, err := a.Session.Next()
			if err != nil {
				writeBuildError(w, req, err)
				return
			}
			persist(a, req)
			view := wizardView(a.Session)
			view.Submitted = submitted
			render.JSON(w, req, view)
		})

		r.Post("/previous", func(w http.ResponseWriter, req *http.Request) {
			a.Session.Previous()
			persist(a, req)
			render.JSON(w, req, wizardView(a.Session))
		})

		r.Post("/reset", func(w http.ResponseWriter, req *http.Request) {
			a.Session.Restart()
			persist(a, req)
			render.JSON(w, req, wizardView(a.Session))
		})
	})

	// Links into the wizard only redirect; moving the wizard takes a POST.
	r.Get("/new", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/wizard", http.StatusSeeOther)
	})

	r.Post("/new", func(w http.ResponseWriter, req *http.Request) {
		a.Session.Navigate(services.NewInquiryPath)
		persist(a, req)
		render.JSON(w, req, wizardView(a.Session))
	})
}

func writeBuildError(w http.ResponseWriter, req *http.Request, err error) {
	if errors.Is(err, models.ErrMissingInquiryType) {
		writeError(w, req, http.StatusUnprocessableEntity, "missing_inquiry_type", err)
		return
	}
	writeError(w, req, http.StatusInternalServerError, "build_failed", err)
}
