package models

// StepProgress tells how many wizard steps are done (including the current
// one) and how many remain.
type StepProgress struct {
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
}

// TypeCount is the number of inquiries of one type.
type TypeCount struct {
	Type  InquiryType `json:"type"`
	Count int         `json:"count"`
}

// CountsByType keeps per-type counts in the order each type was first seen.
type CountsByType []TypeCount

// Get returns the count recorded for t.
func (c CountsByType) Get(t InquiryType) (int, bool) {
	for _, tc := range c {
		if tc.Type == t {
			return tc.Count, true
		}
	}
	return 0, false
}

// TypeAverage is the mean price of one inquiry type.
type TypeAverage struct {
	Type    InquiryType `json:"type"`
	Average float64     `json:"average"`
}

// AveragesByType keeps per-type averages in the order each type was first seen.
type AveragesByType []TypeAverage

// Get returns the average recorded for t.
func (a AveragesByType) Get(t InquiryType) (float64, bool) {
	for _, ta := range a {
		if ta.Type == t {
			return ta.Average, true
		}
	}
	return 0, false
}

// InsightReport holds the analytics computed over the inquiry collection.
// TopCountries may contain nil entries for countries missing from the directory.
type InsightReport struct {
	TotalInquiries         int               `json:"totalInquiries"`
	OptedForFinancingCount int               `json:"optedForFinancingCount"`
	InquiriesPerType       CountsByType      `json:"inquiriesPerType"`
	AveragePricePerType    AveragesByType    `json:"averagePricePerType"`
	TopCountries           []*PopularCountry `json:"topCountries"`
}
