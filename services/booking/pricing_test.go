package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestQuote_BasePrice(t *testing.T) {
	quote := Quote(100, 2, date(2026, 6, 1), date(2026, 6, 4), 2)

	assert.Equal(t, 3, quote.Nights)
	assert.Equal(t, 300.0, quote.BaseAmount)
	assert.Equal(t, 0, quote.ExtraPersons)
	assert.Equal(t, 0.0, quote.ExtraPersonCharge)
	assert.Equal(t, 300.0, quote.TotalAmount)
}

func TestQuote_ExtraGuestSurcharge(t *testing.T) {
	// Two guests over capacity, three nights.
	quote := Quote(100, 2, date(2026, 6, 1), date(2026, 6, 4), 4)

	assert.Equal(t, 2, quote.ExtraPersons)
	assert.Equal(t, 2*DefaultExtraGuestFee*3, quote.ExtraPersonCharge)
	assert.Equal(t, 300.0+2*DefaultExtraGuestFee*3, quote.TotalAmount)
}

func TestQuote_UnderCapacityHasNoSurcharge(t *testing.T) {
	quote := Quote(150, 4, date(2026, 6, 10), date(2026, 6, 11), 1)

	assert.Equal(t, 1, quote.Nights)
	assert.Equal(t, 0, quote.ExtraPersons)
	assert.Equal(t, 150.0, quote.TotalAmount)
}

func TestQuote_Deterministic(t *testing.T) {
	first := Quote(89.5, 3, date(2026, 7, 1), date(2026, 7, 8), 5)
	second := Quote(89.5, 3, date(2026, 7, 1), date(2026, 7, 8), 5)

	assert.Equal(t, first, second)
}

func TestQuote_SingleNight(t *testing.T) {
	quote := Quote(200, 2, date(2026, 12, 31), date(2027, 1, 1), 2)

	assert.Equal(t, 1, quote.Nights)
	assert.Equal(t, 200.0, quote.TotalAmount)
}
