package pricing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teatrails/internal/catalog"
)

func usdExperience(name string, adultCents, childCents int64) catalog.Experience {
	return catalog.Experience{
		ID:                 uuid.New(),
		Name:               name,
		AdultPriceUSDCents: adultCents,
		ChildPriceUSDCents: childCents,
	}
}

func TestCurrencyForCountry(t *testing.T) {
	svc := NewService()

	tests := []struct {
		country string
		want    Currency
	}{
		{"Sri Lanka", CurrencyLKR},
		{"sri lanka", CurrencyLKR},
		{"  Sri Lanka  ", CurrencyLKR},
		{"United States", CurrencyUSD},
		{"Germany", CurrencyUSD},
		{"", CurrencyUSD},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, svc.CurrencyForCountry(tt.country), "country %q", tt.country)
	}
}

func TestPriceSingleExperience(t *testing.T) {
	svc := NewService()

	// Factory tour at $10 per adult, $5 per child.
	exp := usdExperience("Tea Factory Tour", 1000, 500)

	quote, err := svc.Price([]catalog.Experience{exp}, GuestCounts{Adults: 2, Children: 1}, CurrencyUSD)
	require.NoError(t, err)

	assert.Equal(t, int64(2500), quote.TotalCents)
	assert.Equal(t, CurrencyUSD, quote.Currency)
	require.Len(t, quote.Items, 1)
	assert.Equal(t, int64(2500), quote.Items[0].SubtotalCents)
}

func TestPriceIsAdditiveAcrossExperiences(t *testing.T) {
	svc := NewService()

	tour := usdExperience("Tea Factory Tour", 1000, 500)
	tasting := usdExperience("Tea Tasting Session", 1500, 750)
	guests := GuestCounts{Adults: 2, Children: 1}

	tourOnly, err := svc.Price([]catalog.Experience{tour}, guests, CurrencyUSD)
	require.NoError(t, err)
	tastingOnly, err := svc.Price([]catalog.Experience{tasting}, guests, CurrencyUSD)
	require.NoError(t, err)
	combined, err := svc.Price([]catalog.Experience{tour, tasting}, guests, CurrencyUSD)
	require.NoError(t, err)

	assert.Equal(t, tourOnly.TotalCents+tastingOnly.TotalCents, combined.TotalCents)
	assert.Len(t, combined.Items, 2)
}

func TestPriceLKRFallsBackToFixedRate(t *testing.T) {
	svc := NewService()

	// No explicit rupee price; $10/$5 converts at the fixed rate.
	exp := usdExperience("Plucking Experience", 1000, 500)

	quote, err := svc.Price([]catalog.Experience{exp}, GuestCounts{Adults: 1, Children: 1}, CurrencyLKR)
	require.NoError(t, err)

	assert.Equal(t, int64(1500*330), quote.TotalCents)
	assert.Equal(t, CurrencyLKR, quote.Currency)
}

func TestPricePrefersExplicitLKRPrice(t *testing.T) {
	svc := NewService()

	exp := usdExperience("Tea Tasting Session", 1000, 500)
	exp.AdultPriceLKRCents = 150000 // Rs 1500.00
	exp.ChildPriceLKRCents = 75000

	quote, err := svc.Price([]catalog.Experience{exp}, GuestCounts{Adults: 2, Children: 2}, CurrencyLKR)
	require.NoError(t, err)

	assert.Equal(t, int64(2*150000+2*75000), quote.TotalCents)
}

func TestPriceChildrenOnlyPartyIsValid(t *testing.T) {
	svc := NewService()
	exp := usdExperience("Tea Factory Tour", 1000, 500)

	quote, err := svc.Price([]catalog.Experience{exp}, GuestCounts{Adults: 0, Children: 2}, CurrencyUSD)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), quote.TotalCents)
}

func TestPriceRejectsEmptyParty(t *testing.T) {
	svc := NewService()
	exp := usdExperience("Tea Factory Tour", 1000, 500)

	_, err := svc.Price([]catalog.Experience{exp}, GuestCounts{}, CurrencyUSD)
	assert.ErrorIs(t, err, ErrNoGuests)

	_, err = svc.Price([]catalog.Experience{exp}, GuestCounts{Adults: 2, Children: -1}, CurrencyUSD)
	assert.ErrorIs(t, err, ErrNoGuests)
}

func TestPriceEmptySelectionIsZero(t *testing.T) {
	svc := NewService()

	quote, err := svc.Price(nil, GuestCounts{Adults: 1}, CurrencyUSD)
	require.NoError(t, err)
	assert.Zero(t, quote.TotalCents)
	assert.Empty(t, quote.Items)
}
