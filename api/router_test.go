package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"inquiry-desk/app"
	"inquiry-desk/config"
	"inquiry-desk/models"
	"inquiry-desk/services"
	"inquiry-desk/utils"
)

func newTestServer(t *testing.T) (*app.App, http.Handler) {
	t.Helper()
	cfg := &config.Config{
		StateBackend:        "file",
		StateDir:            filepath.Join(t.TempDir(), "state"),
		HTTPRateLimitPerMin: 1000,
		MaxRetries:          1,
	}
	a, err := app.Open(context.Background(), cfg, utils.NewNopLogger())
	if err != nil {
		t.Fatalf("app.Open: %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })
	a.Directory.Replace([]models.Country{
		{Name: "Greece", CurrencyName: "EUR", CurrencySymbol: "€"},
		{Name: "Japan", CurrencyName: "JPY", CurrencySymbol: "¥"},
	})
	return a, BuildRouter(a)
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeView(t *testing.T, rec *httptest.ResponseRecorder) WizardView {
	t.Helper()
	var v struct {
		WizardView
		Submitted json.RawMessage `json:"submitted"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode wizard view: %v (%s)", err, rec.Body.String())
	}
	return v.WizardView
}

func TestHealth(t *testing.T) {
	_, h := newTestServer(t)
	rec := do(t, h, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"ok":true`) {
		t.Errorf("health: %d %s", rec.Code, rec.Body.String())
	}
}

func TestBuyFlowToSuccessUpdatesInsights(t *testing.T) {
	a, h := newTestServer(t)

	rec := do(t, h, http.MethodPatch, "/wizard", map[string]any{"type": "BUY", "country": "Japan"})
	if rec.Code != http.StatusOK {
		t.Fatalf("patch: %d %s", rec.Code, rec.Body.String())
	}
	v := decodeView(t, rec)
	if v.CurrencySymbol != "¥" {
		t.Errorf("currency symbol: got %q, want ¥", v.CurrencySymbol)
	}
	if v.Progress != (models.StepProgress{Completed: 1, Pending: 4}) {
		t.Errorf("progress at type step: got %+v", v.Progress)
	}

	for _, want := range []string{services.StepHomeBudget, services.StepContact, services.StepFinancing} {
		rec = do(t, h, http.MethodPost, "/wizard/next", nil)
		if got := decodeView(t, rec).Step; got != want {
			t.Fatalf("next: got step %q, want %q", got, want)
		}
	}

	do(t, h, http.MethodPatch, "/wizard", map[string]any{
		"homeBudget": 30000000, "name": "Aiko", "email": "aiko@example.com",
		"city": "Osaka", "financingAdvisory": true,
	})

	rec = do(t, h, http.MethodPost, "/wizard/next", nil)
	var done struct {
		Step      string          `json:"step"`
		Submitted json.RawMessage `json:"submitted"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &done); err != nil {
		t.Fatal(err)
	}
	if done.Step != services.StepSuccess {
		t.Errorf("final step: got %q", done.Step)
	}
	submitted, err := models.UnmarshalInquiry(done.Submitted)
	if err != nil {
		t.Fatalf("submitted: %v (%s)", err, done.Submitted)
	}
	if _, ok := submitted.(models.BuyInquiry); !ok {
		t.Errorf("submitted: got %T, want BuyInquiry", submitted)
	}
	if a.Inquiries.Len() != 1 {
		t.Errorf("collection: got %d, want 1", a.Inquiries.Len())
	}

	rec = do(t, h, http.MethodGet, "/insights", nil)
	var rep models.InsightReport
	if err := json.Unmarshal(rec.Body.Bytes(), &rep); err != nil {
		t.Fatalf("decode insights: %v", err)
	}
	if rep.TotalInquiries != 1 || rep.OptedForFinancingCount != 1 {
		t.Errorf("insights totals: %+v", rep)
	}
	if avg, _ := rep.AveragePricePerType.Get(models.InquiryBuy); avg != 30000000 {
		t.Errorf("BUY average: got %v", avg)
	}
	if len(rep.TopCountries) != 1 || rep.TopCountries[0] == nil || rep.TopCountries[0].Country.Name != "Japan" {
		t.Errorf("top countries: %+v", rep.TopCountries)
	}
}

func TestSubmitWithoutTypeIsUnprocessable(t *testing.T) {
	_, h := newTestServer(t)
	do(t, h, http.MethodPatch, "/wizard", map[string]any{"type": ""})

	rec := do(t, h, http.MethodPost, "/inquiries", nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status: got %d, want 422", rec.Code)
	}
	var env map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	if env["error"] != "missing_inquiry_type" || env["detail"] == "" {
		t.Errorf("envelope: %v", env)
	}
}

func TestDeleteInquiries(t *testing.T) {
	a, h := newTestServer(t)
	do(t, h, http.MethodPatch, "/wizard", map[string]any{"type": "SELL"})
	do(t, h, http.MethodPost, "/inquiries", nil)
	do(t, h, http.MethodPatch, "/wizard", map[string]any{"type": "RENT"})
	do(t, h, http.MethodPost, "/inquiries", nil)

	if rec := do(t, h, http.MethodDelete, "/inquiries/5", nil); rec.Code != http.StatusNotFound {
		t.Errorf("out of range: got %d, want 404", rec.Code)
	}
	if rec := do(t, h, http.MethodDelete, "/inquiries/x", nil); rec.Code != http.StatusBadRequest {
		t.Errorf("bad index: got %d, want 400", rec.Code)
	}
	if rec := do(t, h, http.MethodDelete, "/inquiries/0", nil); rec.Code != http.StatusOK {
		t.Fatalf("delete 0: got %d", rec.Code)
	}
	if _, ok := a.Inquiries.All()[0].(models.RentInquiry); !ok || a.Inquiries.Len() != 1 {
		t.Errorf("after delete: %v", a.Inquiries.All())
	}

	do(t, h, http.MethodDelete, "/inquiries", nil)
	rec := do(t, h, http.MethodGet, "/inquiries", nil)
	if !strings.Contains(rec.Body.String(), `"count":0`) {
		t.Errorf("after clear: %s", rec.Body.String())
	}
}

func TestWizardPreviousAndReset(t *testing.T) {
	_, h := newTestServer(t)
	do(t, h, http.MethodPatch, "/wizard", map[string]any{"type": "RENT", "city": "Athens"})
	do(t, h, http.MethodPost, "/wizard/next", nil)

	if v := decodeView(t, do(t, h, http.MethodPost, "/wizard/previous", nil)); v.Step != services.StepTypePath {
		t.Errorf("previous: got %q", v.Step)
	}
	v := decodeView(t, do(t, h, http.MethodPost, "/wizard/reset", nil))
	if v.Step != services.StepTypePath || v.Draft.City != nil || v.Draft.Type != models.InquiryRent {
		t.Errorf("reset: %+v", v)
	}
}

func TestAdminServesHTMLReport(t *testing.T) {
	_, h := newTestServer(t)
	rec := do(t, h, http.MethodGet, "/admin?format=html", nil)
	if !strings.HasPrefix(rec.Header().Get("Content-Type"), "text/html") {
		t.Errorf("content type: %q", rec.Header().Get("Content-Type"))
	}
	if !strings.Contains(rec.Body.String(), "Inquiry insights") {
		t.Error("html report missing title")
	}
}

func TestNewLinkRedirectsWithoutMoving(t *testing.T) {
	a, h := newTestServer(t)
	do(t, h, http.MethodPatch, "/wizard", map[string]any{"type": "RENT"})
	do(t, h, http.MethodPost, "/wizard/next", nil)

	rec := do(t, h, http.MethodGet, "/new", nil)
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/wizard" {
		t.Errorf("GET /new: got %d to %q", rec.Code, rec.Header().Get("Location"))
	}
	if a.Session.CurrentStep() != services.StepHomeBudget {
		t.Errorf("GET /new moved the wizard to %q", a.Session.CurrentStep())
	}

	v := decodeView(t, do(t, h, http.MethodPost, "/new", nil))
	if v.Step != services.StepTypePath {
		t.Errorf("POST /new: got step %q, want %q", v.Step, services.StepTypePath)
	}
}
