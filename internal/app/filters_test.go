package app_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tablescout/internal/app"
	"tablescout/internal/domain"
)

func rec(venue, neighborhood, category string, tier int) domain.ReservationRecord {
	return domain.ReservationRecord{
		VenueName:    venue,
		Neighborhood: neighborhood,
		Category:     category,
		PriceTier:    tier,
	}
}

func TestFilters_Apply(t *testing.T) {
	in := []domain.ReservationRecord{
		rec("Carbone", "Greenwich Village", "Italian", 4),
		rec("Lilia", "Williamsburg", "Italian", 3),
		rec("Ugly Baby", "Carroll Gardens", "Thai", 2),
	}

	assert.Len(t, app.Filters{}.Apply(in), 3, "no filters is a pass-through")

	got := app.Filters{Cuisines: []string{"Italian"}}.Apply(in)
	assert.Len(t, got, 2)

	got = app.Filters{Prices: []string{"$$$$"}}.Apply(in)
	if assert.Len(t, got, 1) {
		assert.Equal(t, "Carbone", got[0].VenueName)
	}

	got = app.Filters{
		Cuisines:      []string{"Italian"},
		Neighborhoods: []string{"Williamsburg"},
	}.Apply(in)
	if assert.Len(t, got, 1) {
		assert.Equal(t, "Lilia", got[0].VenueName)
	}

	assert.Empty(t, app.Filters{Neighborhoods: []string{"Harlem"}}.Apply(in))
}

func TestPriceLabel(t *testing.T) {
	assert.Equal(t, "", rec("a", "b", "c", 0).PriceLabel())
	assert.Equal(t, "$$$$", rec("a", "b", "c", 4).PriceLabel())
}
