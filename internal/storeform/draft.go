package storeform

import "storefront/pkg/domain"

// Draft is the visitor's in-progress store input.
type Draft struct {
	Name      string          `form:"name" validate:"min=3"`
	Subdomain string          `form:"subdomain" validate:"required"`
	Country   domain.Country  `form:"country" validate:"storecountry"`
	Category  domain.Category `form:"category" validate:"storecategory"`
	Currency  domain.Currency `form:"currency" validate:"storecurrency"`
	Email     string          `form:"email" validate:"required,storeemail"`
}

// DefaultEmail pre-fills the contact email input.
const DefaultEmail = "any@email.com"

// DefaultDraft returns a draft with the first option of every picker selected
// and the placeholder contact email.
func DefaultDraft() Draft {
	return Draft{
		Email:    DefaultEmail,
		Country:  domain.Countries[0],
		Category: domain.Categories[0],
		Currency: domain.Currencies[0],
	}
}

// Store maps the draft to the creation payload. The subdomain is sent bare.
func (d Draft) Store() domain.Store {
	return domain.Store{
		Name:     d.Name,
		Currency: d.Currency,
		Country:  d.Country,
		Domain:   d.Subdomain,
		Category: d.Category,
		Email:    d.Email,
	}
}

// FQDN joins the subdomain with suffix, e.g. "myshop" + ".expressitbd.com".
func (d Draft) FQDN(suffix string) string {
	return d.Subdomain + suffix
}
