package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"

	"inquiry-desk/models"
	"inquiry-desk/utils"
)

const topCountriesLimit = 3

// OptedForFinancingCount counts BUY inquiries that asked for financing advice.
func OptedForFinancingCount(inquiries []models.Inquiry) int {
	n := 0
	for _, inq := range inquiries {
		if models.OptedForFinancing(inq) {
			n++
		}
	}
	return n
}

// InquiriesPerType counts inquiries per type in order of first occurrence.
// Types with no inquiries are absent.
func InquiriesPerType(inquiries []models.Inquiry) models.CountsByType {
	var result models.CountsByType
	pos := make(map[models.InquiryType]int)

	for _, inq := range inquiries {
		t := inq.Common().Type
		if i, ok := pos[t]; ok {
			result[i].Count++
			continue
		}
		pos[t] = len(result)
		result = append(result, models.TypeCount{Type: t, Count: 1})
	}
	return result
}

// AveragePricePerType averages the budget of RENT and BUY inquiries and the
// home value of SELL inquiries. Amounts in different currencies are averaged
// as-is. Inquiries without an amount are left out of both sum and count, so
// an average can cover fewer inquiries than InquiriesPerType reports, and a
// type whose inquiries all lack an amount has no entry.
func AveragePricePerType(inquiries []models.Inquiry) models.AveragesByType {
	type acc struct {
		occurrences int
		sum         float64
	}
	var order []models.InquiryType
	accs := make(map[models.InquiryType]*acc)

	for _, inq := range inquiries {
		price, ok := models.Price(inq)
		if !ok {
			continue
		}
		t := inq.Common().Type
		a, seen := accs[t]
		if !seen {
			a = &acc{}
			accs[t] = a
			order = append(order, t)
		}
		a.occurrences++
		a.sum += price
	}

	// TODO: convert to a reference currency once exchange rates are available.
	result := make(models.AveragesByType, 0, len(order))
	for _, t := range order {
		a := accs[t]
		result = append(result, models.TypeAverage{Type: t, Average: a.sum / float64(a.occurrences)})
	}
	return result
}

// TopCountries returns up to three of the most requested countries. Ties keep
// the order in which countries were first seen. A country missing from
// directory yields a nil entry in its slot.
func TopCountries(inquiries []models.Inquiry, directory map[string]models.Country) []*models.PopularCountry {
	type nameCount struct {
		name  string
		count int
	}
	var counts []nameCount
	pos := make(map[string]int)

	for _, inq := range inquiries {
		name := inq.Common().CountryName()
		if name == "" {
			continue
		}
		if i, ok := pos[name]; ok {
			counts[i].count++
			continue
		}
		pos[name] = len(counts)
		counts = append(counts, nameCount{name: name, count: 1})
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].count > counts[j].count
	})
	if len(counts) > topCountriesLimit {
		counts = counts[:topCountriesLimit]
	}

	result := make([]*models.PopularCountry, 0, len(counts))
	for _, nc := range counts {
		country, ok := directory[nc.name]
		if !ok {
			result = append(result, nil)
			continue
		}
		result = append(result, &models.PopularCountry{Country: country, OccurrenceCount: nc.count})
	}
	return result
}

type InsightService struct {
	logger *utils.Logger
}

func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger.With("insights")}
}

// Generate computes every analytic over inquiries in one report.
func (s *InsightService) Generate(inquiries []models.Inquiry, directory map[string]models.Country) *models.InsightReport {
	report := &models.InsightReport{
		TotalInquiries:         len(inquiries),
		OptedForFinancingCount: OptedForFinancingCount(inquiries),
		InquiriesPerType:       InquiriesPerType(inquiries),
		AveragePricePerType:    AveragePricePerType(inquiries),
		TopCountries:           TopCountries(inquiries, directory),
	}
	s.logger.Debug("Generated report over %d inquiries", report.TotalInquiries)
	return report
}

func (s *InsightService) Print(r *models.InsightReport) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  📊 INQUIRY INSIGHTS\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	fmt.Printf("\033[1;33m  Overview\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Total inquiries          : \033[1m%d\033[0m\n", r.TotalInquiries)
	fmt.Printf("  Opted for financing info : \033[1m%d\033[0m\n", r.OptedForFinancingCount)
	fmt.Println()

	fmt.Printf("\033[1;33m  Inquiries per Type\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(r.InquiriesPerType) == 0 {
		fmt.Printf("  No inquiries yet\n")
	}
	for _, tc := range r.InquiriesPerType {
		bar := strings.Repeat("█", tc.Count)
		fmt.Printf("  %-6s %s (%d)\n", tc.Type, bar, tc.Count)
	}
	fmt.Println()

	fmt.Printf("\033[1;33m  Average Price per Type (priced inquiries only, mixed currencies)\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(r.AveragePricePerType) == 0 {
		fmt.Printf("  No price data available\n")
	}
	for _, ta := range r.AveragePricePerType {
		fmt.Printf("  %-6s \033[1;32m%s\033[0m\n", ta.Type, FormatAmount(ta.Average))
	}
	fmt.Println()

	fmt.Printf("\033[1;33m  Top Countries\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(r.TopCountries) == 0 {
		fmt.Printf("  No country data\n")
	}
	for i, pc := range r.TopCountries {
		if pc == nil {
			fmt.Printf("  \033[1m%d.\033[0m (unknown country)\n", i+1)
			continue
		}
		fmt.Printf("  \033[1m%d.\033[0m %-30s %d inquiries (%s)\n",
			i+1, truncate(pc.Country.Name, 28), pc.OccurrenceCount, pc.Country.CurrencyName)
	}

	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}

// FormatAmount renders an amount with thousands separators and at most two
// decimals, e.g. 10000 -> "10,000".
func FormatAmount(v float64) string {
	return humanize.CommafWithDigits(v, 2)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
