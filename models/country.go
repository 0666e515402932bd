package models

// Country is one entry of the country directory. Name is the unique key.
type Country struct {
	Name           string `json:"name"`
	FlagURL        string `json:"flagUrl"`
	CurrencyName   string `json:"currencyName"`
	CurrencySymbol string `json:"currencySymbol"`
}

// CountryLookup resolves a country by its exact name.
type CountryLookup interface {
	Lookup(name string) (Country, bool)
}

// PopularCountry pairs a resolved country with the number of inquiries made for it.
type PopularCountry struct {
	Country         Country `json:"country"`
	OccurrenceCount int     `json:"occurrenceCount"`
}
