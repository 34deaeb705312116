package pricing

import (
	"errors"
	"strings"

	"teatrails/internal/catalog"
)

var ErrNoGuests = errors.New("at least one guest is required")

// Service computes booking totals from catalog prices.
type Service interface {
	CurrencyForCountry(country string) Currency
	Price(experiences []catalog.Experience, guests GuestCounts, currency Currency) (*Quote, error)
}

type service struct{}

// NewService creates a new pricing service
func NewService() Service {
	return &service{}
}

// CurrencyForCountry maps the tourist's country to the charge currency.
// Sri Lankan residents are billed in rupees, everyone else in dollars.
func (s *service) CurrencyForCountry(country string) Currency {
	if strings.EqualFold(strings.TrimSpace(country), "Sri Lanka") {
		return CurrencyLKR
	}
	return CurrencyUSD
}

// Price totals the selection per guest type. Totals are additive across
// experiences; each subtotal is adults*adultRate + children*childRate in
// integer minor units, so no rounding ever occurs.
func (s *service) Price(experiences []catalog.Experience, guests GuestCounts, currency Currency) (*Quote, error) {
	if guests.Total() < 1 || guests.Adults < 0 || guests.Children < 0 {
		return nil, ErrNoGuests
	}

	quote := &Quote{
		Items:    make([]LineItem, 0, len(experiences)),
		Currency: currency,
	}
	for _, exp := range experiences {
		adultUnit, childUnit := unitRates(exp, currency)
		subtotal := int64(guests.Adults)*adultUnit + int64(guests.Children)*childUnit
		quote.Items = append(quote.Items, LineItem{
			ExperienceID:   exp.ID.String(),
			ExperienceName: exp.Name,
			AdultUnitCents: adultUnit,
			ChildUnitCents: childUnit,
			Adults:         guests.Adults,
			Children:       guests.Children,
			SubtotalCents:  subtotal,
			Currency:       currency,
		})
		quote.TotalCents += subtotal
	}
	return quote, nil
}

// unitRates resolves per-guest rates in the charge currency. LKR falls back
// to the fixed conversion from USD when the catalog has no explicit rupee
// price for the experience.
func unitRates(exp catalog.Experience, currency Currency) (adult, child int64) {
	if currency == CurrencyLKR {
		adult = exp.AdultPriceLKRCents
		child = exp.ChildPriceLKRCents
		if adult == 0 && exp.AdultPriceUSDCents > 0 {
			adult = exp.AdultPriceUSDCents * USDToLKRRate
		}
		if child == 0 && exp.ChildPriceUSDCents > 0 {
			child = exp.ChildPriceUSDCents * USDToLKRRate
		}
		return adult, child
	}
	return exp.AdultPriceUSDCents, exp.ChildPriceUSDCents
}
