// Package countries holds the country directory snapshot and the client that
// refreshes it from restcountries.com.
package countries

import (
	"sort"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"inquiry-desk/models"
)

// Directory is a read-only snapshot of known countries, sorted by name.
// Only Replace changes it.
type Directory struct {
	mu     sync.RWMutex
	list   []models.Country
	byName map[string]models.Country
}

// NewDirectory returns a directory holding countries, sorted by name.
func NewDirectory(countries []models.Country) *Directory {
	d := &Directory{}
	d.Replace(countries)
	return d
}

// Replace swaps the snapshot for a sorted copy of countries.
func (d *Directory) Replace(countries []models.Country) {
	list := append([]models.Country(nil), countries...)
	SortByName(list)

	byName := make(map[string]models.Country, len(list))
	for _, c := range list {
		byName[c.Name] = c
	}

	d.mu.Lock()
	d.list = list
	d.byName = byName
	d.mu.Unlock()
}

// All returns a copy of the snapshot in name order.
func (d *Directory) All() []models.Country {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]models.Country(nil), d.list...)
}

// Lookup finds a country by exact name.
func (d *Directory) Lookup(name string) (models.Country, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	c, ok := d.byName[name]
	return c, ok
}

// AsMap returns a name-keyed copy of the snapshot.
func (d *Directory) AsMap() map[string]models.Country {
	d.mu.RLock()
	defer d.mu.RUnlock()
	m := make(map[string]models.Country, len(d.byName))
	for k, v := range d.byName {
		m[k] = v
	}
	return m
}

// Len is the number of countries in the snapshot.
func (d *Directory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.list)
}

// SortByName orders countries with a locale-aware, case-sensitive compare.
func SortByName(list []models.Country) {
	col := collate.New(language.Und)
	sort.SliceStable(list, func(i, j int) bool {
		return col.CompareString(list[i].Name, list[j].Name) < 0
	})
}
