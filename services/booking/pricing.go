package booking

import (
	"math"
	"time"

	"grandstay/config"
	"grandstay/models"
)

// DefaultExtraGuestFee is the flat nightly fee per guest beyond room capacity
// when no EXTRA_GUEST_FEE is configured.
const DefaultExtraGuestFee = 25.0

func extraGuestFee() float64 {
	if fee := config.AppConfig.ExtraGuestFee; fee > 0 {
		return fee
	}
	return DefaultExtraGuestFee
}

// Quote computes the price breakdown for a stay. It is a pure function of its
// inputs and the configured extra-guest fee; it never touches stored state.
//
// Callers must reject checkOut <= checkIn before calling; Quote does not
// validate date ordering.
func Quote(nightlyPrice float64, capacity int, checkIn, checkOut time.Time, guests int) models.PriceQuote {
	nights := int(math.Ceil(checkOut.Sub(checkIn).Hours() / 24))

	base := nightlyPrice * float64(nights)

	extraPersons := guests - capacity
	if extraPersons < 0 {
		extraPersons = 0
	}
	extraCharge := float64(extraPersons) * extraGuestFee() * float64(nights)

	return models.PriceQuote{
		Nights:            nights,
		BaseAmount:        base,
		ExtraPersons:      extraPersons,
		ExtraPersonCharge: extraCharge,
		TotalAmount:       base + extraCharge,
	}
}
