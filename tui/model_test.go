package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"inquiry-desk/countries"
	"inquiry-desk/models"
	"inquiry-desk/services"
	"inquiry-desk/utils"
)

func press(m *Model, keys ...tea.KeyMsg) {
	for _, k := range keys {
		m.Update(k)
	}
}

func typeText(m *Model, s string) {
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	tab   = tea.KeyMsg{Type: tea.KeyTab}
	right = tea.KeyMsg{Type: tea.KeyRight}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func newTestModel() (*Model, *services.InquiryCollection, *int) {
	list := []models.Country{
		{Name: "Portugal", CurrencyName: "EUR", CurrencySymbol: "€"},
		{Name: "Poland", CurrencyName: "PLN", CurrencySymbol: "zł"},
	}
	dir := countries.NewDirectory(list)
	coll := services.NewInquiryCollection(nil)
	session := services.NewSession(dir, coll, utils.NewNopLogger())
	saves := 0
	m := NewModel(session, dir.All(), func() error { saves++; return nil })
	return m, coll, &saves
}

func TestWizardSellFlowSubmits(t *testing.T) {
	m, coll, saves := newTestModel()

	press(m, right, right) // RENT -> BUY -> SELL
	press(m, tab)
	typeText(m, "portu")
	press(m, enter)

	if m.session.CurrentStep() != services.StepHomeValue {
		t.Fatalf("step: got %q, want %q", m.session.CurrentStep(), services.StepHomeValue)
	}
	if !strings.Contains(m.View(), "€") {
		t.Error("amount step should show the chosen country's currency symbol")
	}

	typeText(m, "325,000")
	press(m, enter)
	if m.session.CurrentStep() != services.StepContact {
		t.Fatalf("step: got %q, want contact", m.session.CurrentStep())
	}

	typeText(m, "Rui")
	press(m, enter)
	typeText(m, "rui@example.com")
	press(m, enter)
	typeText(m, "Porto")
	press(m, enter)

	if m.session.CurrentStep() != services.StepSuccess {
		t.Fatalf("step: got %q, want success", m.session.CurrentStep())
	}
	if coll.Len() != 1 {
		t.Fatalf("collection: got %d, want 1", coll.Len())
	}
	sell, ok := coll.All()[0].(models.SellInquiry)
	if !ok {
		t.Fatalf("submitted: got %T, want SellInquiry", coll.All()[0])
	}
	if sell.CountryName() != "Portugal" || sell.HomeValue == nil || *sell.HomeValue != 325000 || sell.City != "Porto" {
		t.Errorf("submitted: %+v", sell)
	}
	if *saves == 0 {
		t.Error("onChange was never called")
	}
}

func TestWizardRejectsBadAmount(t *testing.T) {
	m, _, _ := newTestModel()
	press(m, enter) // RENT
	typeText(m, "lots")
	press(m, enter)

	if m.session.CurrentStep() != services.StepHomeBudget {
		t.Errorf("step: got %q, want to stay on budget", m.session.CurrentStep())
	}
	if m.errMsg == "" {
		t.Error("expected an error message")
	}
}

func TestWizardEscGoesBack(t *testing.T) {
	m, _, _ := newTestModel()
	press(m, enter, esc)
	if m.session.CurrentStep() != services.StepTypePath {
		t.Errorf("step: got %q, want type", m.session.CurrentStep())
	}
	press(m, esc)
	if m.session.CurrentStep() != services.RootPath {
		t.Errorf("step: got %q, want root", m.session.CurrentStep())
	}
	press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	if m.session.CurrentStep() != services.StepTypePath {
		t.Errorf("after restart: got %q", m.session.CurrentStep())
	}
}
