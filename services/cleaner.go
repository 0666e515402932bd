package services

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"inquiry-desk/models"
	"inquiry-desk/utils"
)

var (
	// amountPrefixRegexp matches one leading currency symbol or ISO code
	amountPrefixRegexp = regexp.MustCompile(`^(?:\p{Sc}|[A-Za-z]{3}\b|[A-Za-z]{1,2}/\.?)\s*`)
	// amountRegexp is the whole of a plain amount once separators are gone
	amountRegexp = regexp.MustCompile(`^\d+(?:\.\d+)?$`)
	// thousandsReplacer drops comma and space group separators
	thousandsReplacer = strings.NewReplacer(",", "", " ", "", "\u00a0", "", "\u202f", "")
)

// Cleaner tidies inquiries coming from outside the wizard, such as an archive pull.
type Cleaner struct {
	logger *utils.Logger
}

// NewCleaner creates a Cleaner with the given logger.
func NewCleaner(logger *utils.Logger) *Cleaner {
	return &Cleaner{logger: logger.With("cleaner")}
}

// Clean drops inquiries whose ID was already seen, keeping the first
// occurrence and the original order. Inquiries without an ID are kept.
func (c *Cleaner) Clean(list []models.Inquiry) []models.Inquiry {
	seen := make(map[string]struct{})
	result := make([]models.Inquiry, 0, len(list))

	for _, inq := range list {
		id := inq.Common().ID
		if id != "" {
			if _, dup := seen[id]; dup {
				c.logger.Debug("Duplicate inquiry skipped: %s", id)
				continue
			}
			seen[id] = struct{}{}
		}
		result = append(result, inq)
	}

	if dropped := len(list) - len(result); dropped > 0 {
		c.logger.Info("Cleaned %d → %d inquiries (dropped %d)", len(list), len(result), dropped)
	}
	return result
}

// ParseAmount reads a typed amount such as "250000", "1,500.50", "300 000"
// or "€ 300,000". An empty input means no amount and yields nil. Anything
// else that is not a plain non-negative number is rejected.
func ParseAmount(raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	cleaned := amountPrefixRegexp.ReplaceAllString(raw, "")
	cleaned = thousandsReplacer.Replace(strings.TrimSpace(cleaned))
	if !amountRegexp.MatchString(cleaned) {
		return nil, fmt.Errorf("%q is not a valid amount", raw)
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil, fmt.Errorf("%q is not a valid amount", raw)
	}
	return &v, nil
}

// NormaliseText strips leading/trailing whitespace and collapses internal whitespace.
func NormaliseText(s string) string {
	fields := strings.FieldsFunc(strings.TrimSpace(s), func(r rune) bool {
		return unicode.IsSpace(r)
	})
	return strings.Join(fields, " ")
}

func NormaliseEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
