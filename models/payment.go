package models

// PriceQuote is the breakdown produced by the pricing calculator.
// It never mutates stored state and is deterministic given its inputs.
type PriceQuote struct {
	Nights            int     `json:"nights"`
	BaseAmount        float64 `json:"baseAmount"`
	ExtraPersons      int     `json:"extraPersons"`
	ExtraPersonCharge float64 `json:"extraPersonCharge"`
	TotalAmount       float64 `json:"totalAmount"`
}

// CheckoutSession is returned when a hosted payment session has been created.
type CheckoutSession struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}
