package storage

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"inquiry-desk/models"
	"inquiry-desk/utils"
)

func f64(v float64) *float64 { return &v }

func sampleInquiries() []models.Inquiry {
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	greece := &models.Country{Name: "Greece", CurrencyName: "EUR", CurrencySymbol: "€"}
	advisory := true
	return []models.Inquiry{
		models.BuyInquiry{
			InquiryBase: models.InquiryBase{
				ID: "b-1", Type: models.InquiryBuy, Country: greece,
				Name: "Eleni", Email: "eleni@example.com", City: "Athens", CreatedAt: created,
			},
			HomeBudget:        f64(250000),
			FinancingAdvisory: &advisory,
		},
		models.SellInquiry{
			InquiryBase: models.InquiryBase{ID: "s-1", Type: models.InquirySell, CreatedAt: created},
			HomeValue:   f64(410000.5),
		},
		models.RentInquiry{
			InquiryBase: models.InquiryBase{ID: "r-1", Type: models.InquiryRent, Country: greece, CreatedAt: created},
		},
	}
}

func TestFileStateStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStateStore(filepath.Join(t.TempDir(), "state"))
	if err != nil {
		t.Fatalf("NewFileStateStore: %v", err)
	}

	if _, ok, err := s.Load(ctx, KeyInquiries); err != nil || ok {
		t.Fatalf("Load before save: ok=%v err=%v", ok, err)
	}

	if err := s.Save(ctx, KeyInquiries, []byte(`[]`)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Save(ctx, KeyInquiries, []byte(`[{"type":"RENT"}]`)); err != nil {
		t.Fatalf("Save overwrite: %v", err)
	}

	got, ok, err := s.Load(ctx, KeyInquiries)
	if err != nil || !ok {
		t.Fatalf("Load: ok=%v err=%v", ok, err)
	}
	if string(got) != `[{"type":"RENT"}]` {
		t.Errorf("Load: got %s", got)
	}

	if err := s.Delete(ctx, KeyInquiries); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(ctx, KeyInquiries); err != nil {
		t.Errorf("second Delete should be a no-op, got %v", err)
	}
	if _, ok, _ := s.Load(ctx, KeyInquiries); ok {
		t.Error("key still present after Delete")
	}
}

func TestCSVWriterRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "inquiries.csv")
	w, err := NewCSVWriter(path)
	if err != nil {
		t.Fatalf("NewCSVWriter: %v", err)
	}
	if err := w.Write(sampleInquiries()); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}

	if len(records) != 4 {
		t.Fatalf("rows: got %d, want header + 3", len(records))
	}
	if records[0][0] != "id" || records[0][len(csvHeader)-1] != "created_at" {
		t.Errorf("header: got %v", records[0])
	}

	buy := records[1]
	if buy[1] != "BUY" || buy[2] != "Greece" || buy[3] != "EUR" || buy[7] != "250000" || buy[9] != "true" {
		t.Errorf("buy row: got %v", buy)
	}
	sell := records[2]
	if sell[2] != "" || sell[7] != "" || sell[8] != "410000.5" {
		t.Errorf("sell row: got %v", sell)
	}
	rent := records[3]
	if rent[7] != "" || rent[10] != "2024-03-01T10:00:00Z" {
		t.Errorf("rent row: got %v", rent)
	}
}

func TestSQLArchiveSQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	retry := &utils.RetryConfig{MaxAttempts: 1}
	a, err := NewSQLArchive(ctx, "sqlite", ":memory:", retry, utils.NewNopLogger())
	if err != nil {
		t.Fatalf("NewSQLArchive: %v", err)
	}
	defer a.Close()

	if err := a.Write(ctx, sampleInquiries()); err != nil {
		t.Fatalf("Write: %v", err)
	}
	// A second push replaces rather than appends.
	if err := a.Write(ctx, sampleInquiries()[:2]); err != nil {
		t.Fatalf("Write again: %v", err)
	}

	got, err := a.FetchAll(ctx)
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("FetchAll: got %d inquiries, want 2", len(got))
	}
	buy, ok := got[0].(models.BuyInquiry)
	if !ok {
		t.Fatalf("first: got %T, want BuyInquiry", got[0])
	}
	if buy.ID != "b-1" || buy.Country == nil || buy.Country.CurrencySymbol != "€" || *buy.HomeBudget != 250000 {
		t.Errorf("buy round trip: got %+v", buy)
	}
	if _, ok := got[1].(models.SellInquiry); !ok {
		t.Errorf("second: got %T, want SellInquiry", got[1])
	}

	counts, err := a.CountByType(ctx)
	if err != nil {
		t.Fatalf("CountByType: %v", err)
	}
	if counts[models.InquiryBuy] != 1 || counts[models.InquirySell] != 1 || counts[models.InquiryRent] != 0 {
		t.Errorf("CountByType: got %v", counts)
	}
}

func TestSQLArchiveUnknownDriver(t *testing.T) {
	_, err := NewSQLArchive(context.Background(), "oracle", "", &utils.RetryConfig{}, utils.NewNopLogger())
	if err == nil {
		t.Fatal("expected error for unknown driver")
	}
}
