package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// InquiryType is the kind of real-estate service requested.
type InquiryType string

const (
	InquiryRent InquiryType = "RENT"
	InquiryBuy  InquiryType = "BUY"
	InquirySell InquiryType = "SELL"
)

// InquiryTypes lists every known type in wizard display order.
var InquiryTypes = []InquiryType{InquiryRent, InquiryBuy, InquirySell}

// Valid reports whether t is one of the known inquiry types.
func (t InquiryType) Valid() bool {
	switch t {
	case InquiryRent, InquiryBuy, InquirySell:
		return true
	}
	return false
}

// ErrMissingInquiryType is returned when an inquiry cannot be built or decoded
// because its type is unset or unknown.
var ErrMissingInquiryType = errors.New("builder failed due to missing inquiry type")

// InquiryBase holds the fields every inquiry variant carries.
type InquiryBase struct {
	ID        string      `json:"id"`
	Country   *Country    `json:"country,omitempty"`
	Type      InquiryType `json:"type"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	City      string      `json:"city"`
	CreatedAt time.Time   `json:"createdAt"`
}

// Common returns a copy of the shared inquiry fields.
func (b InquiryBase) Common() InquiryBase {
	if b.Country != nil {
		c := *b.Country
		b.Country = &c
	}
	return b
}

// CountryName returns the referenced country's name, or "" when none was chosen.
func (b InquiryBase) CountryName() string {
	if b.Country == nil {
		return ""
	}
	return b.Country.Name
}

// Inquiry is a completed, immutable service request. The concrete type is
// always one of RentInquiry, BuyInquiry or SellInquiry and matches Common().Type.
type Inquiry interface {
	Common() InquiryBase
	inquiry()
}

type RentInquiry struct {
	InquiryBase
	HomeBudget *float64 `json:"homeBudget,omitempty"`
}

type BuyInquiry struct {
	InquiryBase
	HomeBudget        *float64 `json:"homeBudget,omitempty"`
	FinancingAdvisory *bool    `json:"financingAdvisory,omitempty"`
}

type SellInquiry struct {
	InquiryBase
	HomeValue *float64 `json:"homeValue,omitempty"`
}

func (RentInquiry) inquiry() {}
func (BuyInquiry) inquiry()  {}
func (SellInquiry) inquiry() {}

// CloneInquiry returns a deep copy of inq, so that writes through the copy's
// pointer fields cannot reach the original.
func CloneInquiry(inq Inquiry) Inquiry {
	switch v := inq.(type) {
	case RentInquiry:
		v.InquiryBase = v.Common()
		v.HomeBudget = cloneFloat(v.HomeBudget)
		return v
	case BuyInquiry:
		v.InquiryBase = v.Common()
		v.HomeBudget = cloneFloat(v.HomeBudget)
		v.FinancingAdvisory = cloneBool(v.FinancingAdvisory)
		return v
	case SellInquiry:
		v.InquiryBase = v.Common()
		v.HomeValue = cloneFloat(v.HomeValue)
		return v
	}
	return inq
}

func cloneBool(b *bool) *bool {
	if b == nil {
		return nil
	}
	v := *b
	return &v
}

// Price returns the amount an inquiry contributes to price statistics:
// the budget for RENT and BUY, the home value for SELL.
func Price(inq Inquiry) (float64, bool) {
	var p *float64
	switch v := inq.(type) {
	case RentInquiry:
		p = v.HomeBudget
	case BuyInquiry:
		p = v.HomeBudget
	case SellInquiry:
		p = v.HomeValue
	}
	if p == nil {
		return 0, false
	}
	return *p, true
}

// OptedForFinancing reports whether inq is a BUY inquiry that asked for
// financing advice.
func OptedForFinancing(inq Inquiry) bool {
	buy, ok := inq.(BuyInquiry)
	return ok && buy.FinancingAdvisory != nil && *buy.FinancingAdvisory
}

// MarshalInquiry encodes an inquiry with its variant fields flattened next to
// the common ones. The "type" field is the discriminator.
func MarshalInquiry(inq Inquiry) ([]byte, error) {
	switch v := inq.(type) {
	case RentInquiry, BuyInquiry, SellInquiry:
		return json.Marshal(v)
	default:
		return nil, fmt.Errorf("inquiry: unsupported variant %T", inq)
	}
}

// UnmarshalInquiry decodes a single inquiry, choosing the variant from the
// "type" discriminator.
func UnmarshalInquiry(data []byte) (Inquiry, error) {
	var head struct {
		Type InquiryType `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("inquiry: decode type: %w", err)
	}

	switch head.Type {
	case InquiryRent:
		var v RentInquiry
		err := json.Unmarshal(data, &v)
		return v, err
	case InquiryBuy:
		var v BuyInquiry
		err := json.Unmarshal(data, &v)
		return v, err
	case InquirySell:
		var v SellInquiry
		err := json.Unmarshal(data, &v)
		return v, err
	default:
		return nil, fmt.Errorf("inquiry: %q: %w", head.Type, ErrMissingInquiryType)
	}
}

// MarshalInquiries encodes a list of inquiries as a JSON array.
func MarshalInquiries(list []Inquiry) ([]byte, error) {
	raw := make([]json.RawMessage, 0, len(list))
	for _, inq := range list {
		b, err := MarshalInquiry(inq)
		if err != nil {
			return nil, err
		}
		raw = append(raw, b)
	}
	return json.Marshal(raw)
}

// UnmarshalInquiries decodes a JSON array produced by MarshalInquiries.
func UnmarshalInquiries(data []byte) ([]Inquiry, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("inquiry: decode list: %w", err)
	}
	list := make([]Inquiry, 0, len(raw))
	for i, r := range raw {
		inq, err := UnmarshalInquiry(r)
		if err != nil {
			return nil, fmt.Errorf("inquiry %d: %w", i, err)
		}
		list = append(list, inq)
	}
	return list, nil
}
