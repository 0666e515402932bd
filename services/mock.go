package services

import (
	"fmt"
	"math/rand"

	"inquiry-desk/models"
)

var (
	mockCities    = []string{"Amsterdam", "Berlin", "Sofia", "Athens", "London"}
	mockCountries = []string{"Netherlands", "Germany", "Bulgaria", "Greece", "United Kingdom"}
)

// AddMockInquiries appends rounds × (one BUY, one RENT, one SELL) inquiries
// with random contact details. Countries missing from lookup stay unset.
func AddMockInquiries(inquiries *InquiryCollection, lookup models.CountryLookup, rng *rand.Rand, rounds int) error {
	pick := func(list []string) string { return list[rng.Intn(len(list))] }
	guid := func() string { return fmt.Sprintf("%05d", rng.Intn(100000)) }
	amount := func(max int) *float64 {
		v := float64(rng.Intn(max))
		return &v
	}

	builder := models.NewInquiryBuilder(lookup)
	for i := 0; i < rounds; i++ {
		id := guid()
		builder.
			AddCountry(pick(mockCountries)).
			AddInquiryType(models.InquiryBuy).
			AddHomeBudget(amount(100000)).
			AddEmail("test+" + id + "@email.com").
			AddName("Tester " + id).
			AddCity(pick(mockCities)).
			AddFinancingAdvisory(true)
		if err := addBuilt(inquiries, builder); err != nil {
			return err
		}

		id = guid()
		builder.
			AddCountry(pick(mockCountries)).
			AddInquiryType(models.InquiryRent).
			AddHomeBudget(amount(10000)).
			AddEmail("test+" + id + "@email.com").
			AddName("Tester " + id).
			AddCity(pick(mockCities))
		if err := addBuilt(inquiries, builder); err != nil {
			return err
		}

		id = guid()
		builder.
			AddCountry(pick(mockCountries)).
			AddInquiryType(models.InquirySell).
			AddHomeValue(amount(10000)).
			AddEmail("test+" + id + "@email.com").
			AddName("Tester " + id).
			AddCity(pick(mockCities))
		if err := addBuilt(inquiries, builder); err != nil {
			return err
		}
	}
	return nil
}

func addBuilt(inquiries *InquiryCollection, builder *models.InquiryBuilder) error {
	inq, err := builder.Build()
	if err != nil {
		return err
	}
	inquiries.Add(inq)
	builder.Reset()
	return nil
}
