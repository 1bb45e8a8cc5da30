package domain

import "slices"

// Country is the location a store is registered in.
type Country string

const (
	CountryBangladesh Country = "Bangladesh"
	CountryUSA        Country = "USA"
	CountryCanada     Country = "Canada"
	CountryUK         Country = "UK"
	CountryAustralia  Country = "Australia"
)

// Countries lists the supported countries in display order. The first entry is the default.
var Countries = []Country{CountryBangladesh, CountryUSA, CountryCanada, CountryUK, CountryAustralia} //nolint: gochecknoglobals

// Valid reports whether c is one of Countries.
func (c Country) Valid() bool { return slices.Contains(Countries, c) }

// Category is the kind of goods a store sells.
type Category string

const (
	CategoryFashion     Category = "Fashion"
	CategoryElectronics Category = "Electronics"
	CategoryHomeKitchen Category = "Home & Kitchen"
	CategorySports      Category = "Sports"
	CategoryBooks       Category = "Books"
)

// Categories lists the supported categories in display order. The first entry is the default.
var Categories = []Category{CategoryFashion, CategoryElectronics, CategoryHomeKitchen, CategorySports, CategoryBooks} //nolint: gochecknoglobals,lll

// Valid reports whether c is one of Categories.
func (c Category) Valid() bool { return slices.Contains(Categories, c) }

// Currency is the ISO code of the main currency a store sells in.
type Currency string

const (
	CurrencyBDT Currency = "BDT"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
	CurrencyAUD Currency = "AUD"
)

// Currencies lists the supported currencies in display order. The first entry is the default.
var Currencies = []Currency{CurrencyBDT, CurrencyUSD, CurrencyEUR, CurrencyGBP, CurrencyAUD} //nolint: gochecknoglobals

var currencyNames = map[Currency]string{ //nolint: gochecknoglobals
	CurrencyBDT: "Taka",
	CurrencyUSD: "Dollar",
	CurrencyEUR: "Euro",
	CurrencyGBP: "Pound",
	CurrencyAUD: "Dollar",
}

// Valid reports whether c is one of Currencies.
func (c Currency) Valid() bool { return slices.Contains(Currencies, c) }

// Label is the option text shown in the currency picker, e.g. "BDT (Taka)".
func (c Currency) Label() string {
	if name, ok := currencyNames[c]; ok {
		return string(c) + " (" + name + ")"
	}

	return string(c)
}

// Store is the payload sent to the remote store creation endpoint.
// Domain is the bare subdomain, without the platform suffix.
type Store struct {
	Name     string   `json:"name"`
	Currency Currency `json:"currency"`
	Country  Country  `json:"country"`
	Domain   string   `json:"domain"`
	Category Category `json:"category"`
	Email    string   `json:"email"`
}
