package countries

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"

	"inquiry-desk/models"
	"inquiry-desk/utils"
)

// ErrRefreshThrottled is returned when a refresh is requested sooner than the
// configured minimum interval allows.
var ErrRefreshThrottled = errors.New("countries: refresh throttled")

const maxPayload = 8 << 20

// Client fetches the country list from a restcountries v3.1 compatible API.
type Client struct {
	baseURL string
	http    *retryablehttp.Client
	limiter *rate.Limiter
	logger  *utils.Logger
}

// NewClient creates a Client. Refreshes are allowed at most once per
// minInterval; zero disables throttling.
func NewClient(baseURL string, minInterval time.Duration, maxRetries int, logger *utils.Logger) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryWaitMin = 200 * time.Millisecond
	rc.RetryWaitMax = 2 * time.Second
	rc.RetryMax = maxRetries
	rc.HTTPClient.Timeout = 15 * time.Second
	rc.Logger = nil

	limit := rate.Inf
	if minInterval > 0 {
		limit = rate.Every(minInterval)
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    rc,
		limiter: rate.NewLimiter(limit, 1),
		logger:  logger.With("countries"),
	}
}

type rawCountry struct {
	Name struct {
		Common string `json:"common"`
	} `json:"name"`
	Flags struct {
		SVG string `json:"svg"`
	} `json:"flags"`
	Currencies json.RawMessage `json:"currencies"`
}

type rawCurrency struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// GetCountries downloads every country that has at least one currency and
// returns them sorted by name.
func (c *Client) GetCountries(ctx context.Context) ([]models.Country, error) {
	if !c.limiter.Allow() {
		return nil, ErrRefreshThrottled
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/all", nil)
	if err != nil {
		return nil, fmt.Errorf("countries: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("countries: fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("countries: upstream status %d", resp.StatusCode)
	}

	body, err := readAllLimit(resp.Body, maxPayload)
	if err != nil {
		return nil, fmt.Errorf("countries: read body: %w", err)
	}

	var raw []rawCountry
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("countries: decode: %w", err)
	}

	list := transform(raw)
	c.logger.Info("Fetched %d countries (%d without currency dropped)", len(list), len(raw)-len(list))
	return list, nil
}

func transform(raw []rawCountry) []models.Country {
	list := make([]models.Country, 0, len(raw))
	for _, r := range raw {
		code, cur, ok := firstCurrency(r.Currencies)
		if !ok {
			continue
		}
		list = append(list, models.Country{
			Name:           r.Name.Common,
			FlagURL:        r.Flags.SVG,
			CurrencyName:   code,
			CurrencySymbol: cur.Symbol,
		})
	}
	SortByName(list)
	return list
}

// firstCurrency returns the first entry of the currencies object in document
// order. A missing, null or empty object yields ok=false.
func firstCurrency(raw json.RawMessage) (string, rawCurrency, bool) {
	var cur rawCurrency
	if len(raw) == 0 {
		return "", cur, false
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return "", cur, false
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return "", cur, false
	}
	if !dec.More() {
		return "", cur, false
	}
	tok, err = dec.Token()
	if err != nil {
		return "", cur, false
	}
	code, ok := tok.(string)
	if !ok {
		return "", cur, false
	}
	if err := dec.Decode(&cur); err != nil {
		return "", cur, false
	}
	return code, cur, true
}

func readAllLimit(r io.Reader, limit int64) ([]byte, error) {
	b, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(b)) > limit {
		return nil, errors.New("payload too large")
	}
	return b, nil
}
