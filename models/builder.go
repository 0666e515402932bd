package models

import (
	"time"

	"github.com/google/uuid"
)

// InquiryBuilder accumulates wizard answers step by step and turns them into
// an Inquiry. Apart from the type, no field is validated before building.
type InquiryBuilder struct {
	lookup CountryLookup

	country           *Country
	inquiryType       InquiryType
	homeBudget        *float64
	homeValue         *float64
	name              *string
	email             *string
	city              *string
	financingAdvisory *bool
}

// NewInquiryBuilder returns an empty builder with type RENT. Country names
// passed to AddCountry are resolved through lookup.
func NewInquiryBuilder(lookup CountryLookup) *InquiryBuilder {
	return &InquiryBuilder{lookup: lookup, inquiryType: InquiryRent}
}

// AddCountry sets the country when name is known to the directory and
// otherwise leaves the current value untouched.
func (b *InquiryBuilder) AddCountry(name string) *InquiryBuilder {
	if b.lookup == nil {
		return b
	}
	if c, ok := b.lookup.Lookup(name); ok {
		b.country = &c
	}
	return b
}

func (b *InquiryBuilder) AddInquiryType(t InquiryType) *InquiryBuilder {
	b.inquiryType = t
	return b
}

// AddHomeBudget sets the budget; nil clears it.
func (b *InquiryBuilder) AddHomeBudget(budget *float64) *InquiryBuilder {
	b.homeBudget = cloneFloat(budget)
	return b
}

// AddHomeValue sets the home value; nil clears it.
func (b *InquiryBuilder) AddHomeValue(value *float64) *InquiryBuilder {
	b.homeValue = cloneFloat(value)
	return b
}

func (b *InquiryBuilder) AddFinancingAdvisory(advisory bool) *InquiryBuilder {
	b.financingAdvisory = &advisory
	return b
}

func (b *InquiryBuilder) AddName(name string) *InquiryBuilder {
	b.name = &name
	return b
}

func (b *InquiryBuilder) AddEmail(email string) *InquiryBuilder {
	b.email = &email
	return b
}

func (b *InquiryBuilder) AddCity(city string) *InquiryBuilder {
	b.city = &city
	return b
}

// Type returns the currently selected inquiry type. It is empty only when a
// caller explicitly set an empty type.
func (b *InquiryBuilder) Type() InquiryType { return b.inquiryType }

// Country returns the chosen country, if any.
func (b *InquiryBuilder) Country() (Country, bool) {
	if b.country == nil {
		return Country{}, false
	}
	return *b.country, true
}

// Build creates a new inquiry of the variant matching the current type. The
// builder is left as it was.
func (b *InquiryBuilder) Build() (Inquiry, error) {
	if !b.inquiryType.Valid() {
		return nil, ErrMissingInquiryType
	}

	base := InquiryBase{
		ID:        uuid.NewString(),
		Type:      b.inquiryType,
		Name:      deref(b.name),
		Email:     deref(b.email),
		City:      deref(b.city),
		CreatedAt: time.Now().UTC(),
	}
	if b.country != nil {
		c := *b.country
		base.Country = &c
	}

	switch b.inquiryType {
	case InquiryBuy:
		var advisory *bool
		if b.financingAdvisory != nil {
			v := *b.financingAdvisory
			advisory = &v
		}
		return BuyInquiry{InquiryBase: base, HomeBudget: cloneFloat(b.homeBudget), FinancingAdvisory: advisory}, nil
	case InquiryRent:
		return RentInquiry{InquiryBase: base, HomeBudget: cloneFloat(b.homeBudget)}, nil
	case InquirySell:
		return SellInquiry{InquiryBase: base, HomeValue: cloneFloat(b.homeValue)}, nil
	default:
		return nil, ErrMissingInquiryType
	}
}

// Reset clears every answer and restores the default type.
func (b *InquiryBuilder) Reset() {
	b.country = nil
	b.inquiryType = InquiryRent
	b.homeBudget = nil
	b.homeValue = nil
	b.name = nil
	b.email = nil
	b.city = nil
	b.financingAdvisory = nil
}

// BuilderSnapshot is the serialisable form of an InquiryBuilder.
type BuilderSnapshot struct {
	Country           *Country    `json:"country,omitempty"`
	Type              InquiryType `json:"type"`
	HomeBudget        *float64    `json:"homeBudget,omitempty"`
	HomeValue         *float64    `json:"homeValue,omitempty"`
	Name              *string     `json:"name,omitempty"`
	Email             *string     `json:"email,omitempty"`
	City              *string     `json:"city,omitempty"`
	FinancingAdvisory *bool       `json:"financingAdvisory,omitempty"`
}

// Snapshot captures the builder's answers.
func (b *InquiryBuilder) Snapshot() BuilderSnapshot {
	s := BuilderSnapshot{
		Type:       b.inquiryType,
		HomeBudget: cloneFloat(b.homeBudget),
		HomeValue:  cloneFloat(b.homeValue),
		Name:       cloneString(b.name),
		Email:      cloneString(b.email),
		City:       cloneString(b.city),
	}
	if b.country != nil {
		c := *b.country
		s.Country = &c
	}
	if b.financingAdvisory != nil {
		v := *b.financingAdvisory
		s.FinancingAdvisory = &v
	}
	return s
}

// RestoreBuilder recreates a builder from a snapshot. A missing type falls
// back to RENT so restored state looks like a fresh builder.
func RestoreBuilder(s BuilderSnapshot, lookup CountryLookup) *InquiryBuilder {
	b := NewInquiryBuilder(lookup)
	if s.Type != "" {
		b.inquiryType = s.Type
	}
	if s.Country != nil {
		c := *s.Country
		b.country = &c
	}
	b.homeBudget = cloneFloat(s.HomeBudget)
	b.homeValue = cloneFloat(s.HomeValue)
	b.name = cloneString(s.Name)
	b.email = cloneString(s.Email)
	b.city = cloneString(s.City)
	if s.FinancingAdvisory != nil {
		v := *s.FinancingAdvisory
		b.financingAdvisory = &v
	}
	return b
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func cloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
