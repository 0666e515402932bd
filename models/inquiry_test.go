package models

import (
	"errors"
	"testing"
)

func TestInquiriesJSONKeepsVariants(t *testing.T) {
	lookup := testCountries()
	rent, _ := NewInquiryBuilder(lookup).AddCountry("Netherlands").AddHomeBudget(floatPtr(1200)).Build()
	buy, _ := NewInquiryBuilder(lookup).AddInquiryType(InquiryBuy).AddHomeBudget(floatPtr(300000)).AddFinancingAdvisory(true).Build()
	sell, _ := NewInquiryBuilder(lookup).AddInquiryType(InquirySell).AddHomeValue(floatPtr(410000)).Build()

	data, err := MarshalInquiries([]Inquiry{rent, buy, sell})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got, err := UnmarshalInquiries(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len: got %d, want 3", len(got))
	}
	if _, ok := got[0].(RentInquiry); !ok {
		t.Errorf("got[0]: %T, want RentInquiry", got[0])
	}
	if !OptedForFinancing(got[1]) {
		t.Errorf("got[1]: financing opt-in lost in round trip")
	}
	if v, ok := Price(got[2]); !ok || v != 410000 {
		t.Errorf("got[2] price: got %.0f (%v), want 410000", v, ok)
	}
	if got[0].Common().CountryName() != "Netherlands" {
		t.Errorf("got[0] country: %q", got[0].Common().CountryName())
	}
}

func TestUnmarshalInquiryRejectsUnknownType(t *testing.T) {
	_, err := UnmarshalInquiry([]byte(`{"type":"LEASE"}`))
	if !errors.Is(err, ErrMissingInquiryType) {
		t.Errorf("got err %v, want ErrMissingInquiryType", err)
	}
}

func TestPriceByVariant(t *testing.T) {
	tests := []struct {
		inq    Inquiry
		want   float64
		wantOK bool
	}{
		{RentInquiry{HomeBudget: floatPtr(900)}, 900, true},
		{BuyInquiry{HomeBudget: floatPtr(250000)}, 250000, true},
		{SellInquiry{HomeValue: floatPtr(180000)}, 180000, true},
		{SellInquiry{}, 0, false},
	}

	for _, tt := range tests {
		got, ok := Price(tt.inq)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("Price(%T) = %.0f, %v; want %.0f, %v", tt.inq, got, ok, tt.want, tt.wantOK)
		}
	}
}
