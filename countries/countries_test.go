package countries

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"inquiry-desk/models"
	"inquiry-desk/utils"
)

const samplePayload = `[
  {"name":{"common":"Zambia"},"flags":{"svg":"https://flags/zm.svg"},"currencies":{"ZMW":{"name":"Zambian kwacha","symbol":"ZK"}}},
  {"name":{"common":"Antarctica"},"flags":{"svg":"https://flags/aq.svg"}},
  {"name":{"common":"Åland Islands"},"flags":{"svg":"https://flags/ax.svg"},"currencies":{"EUR":{"name":"Euro","symbol":"€"}}},
  {"name":{"common":"Panama"},"flags":{"svg":"https://flags/pa.svg"},"currencies":{"PAB":{"name":"Panamanian balboa","symbol":"B/."},"USD":{"name":"United States dollar","symbol":"$"}}},
  {"name":{"common":"Albania"},"flags":{"svg":"https://flags/al.svg"},"currencies":{"ALL":{"name":"Albanian lek","symbol":"L"}}}
]`

func newTestServer(t *testing.T, hits *int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/all" {
			http.NotFound(w, r)
			return
		}
		if hits != nil {
			*hits++
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(samplePayload))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGetCountriesTransformsAndSorts(t *testing.T) {
	srv := newTestServer(t, nil)
	c := NewClient(srv.URL, 0, 0, utils.NewNopLogger())

	got, err := c.GetCountries(context.Background())
	if err != nil {
		t.Fatalf("GetCountries: %v", err)
	}

	wantNames := []string{"Åland Islands", "Albania", "Panama", "Zambia"}
	if len(got) != len(wantNames) {
		t.Fatalf("len: got %d, want %d (%+v)", len(got), len(wantNames), got)
	}
	for i, name := range wantNames {
		if got[i].Name != name {
			t.Errorf("got[%d].Name = %q; want %q", i, got[i].Name, name)
		}
	}

	panama := got[2]
	if panama.CurrencyName != "PAB" || panama.CurrencySymbol != "B/." {
		t.Errorf("Panama currency: got %s/%s, want PAB/B/.", panama.CurrencyName, panama.CurrencySymbol)
	}
	if panama.FlagURL != "https://flags/pa.svg" {
		t.Errorf("Panama flag: got %q", panama.FlagURL)
	}
}

func TestGetCountriesThrottled(t *testing.T) {
	hits := 0
	srv := newTestServer(t, &hits)
	c := NewClient(srv.URL, time.Hour, 0, utils.NewNopLogger())

	if _, err := c.GetCountries(context.Background()); err != nil {
		t.Fatalf("first refresh: %v", err)
	}
	if _, err := c.GetCountries(context.Background()); !errors.Is(err, ErrRefreshThrottled) {
		t.Errorf("second refresh: got %v, want ErrRefreshThrottled", err)
	}
	if hits != 1 {
		t.Errorf("upstream hits: got %d, want 1", hits)
	}
}

func TestGetCountriesUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0, 0, utils.NewNopLogger())
	if _, err := c.GetCountries(context.Background()); err == nil {
		t.Error("expected an error for a 404 upstream")
	}
}

func TestDirectoryLookup(t *testing.T) {
	d := NewDirectory([]models.Country{
		{Name: "Greece", CurrencySymbol: "€"},
		{Name: "Bulgaria", CurrencySymbol: "лв"},
	})

	if d.Len() != 2 {
		t.Fatalf("len: got %d, want 2", d.Len())
	}
	if all := d.All(); all[0].Name != "Bulgaria" {
		t.Errorf("first country: got %q, want Bulgaria", all[0].Name)
	}
	if c, ok := d.Lookup("Greece"); !ok || c.CurrencySymbol != "€" {
		t.Errorf("Lookup(Greece) = %+v, %v", c, ok)
	}
	if _, ok := d.Lookup("greece"); ok {
		t.Error("lookup must be exact and case-sensitive")
	}

	d.Replace(nil)
	if _, ok := d.Lookup("Greece"); ok {
		t.Error("Replace should drop old entries")
	}
}
