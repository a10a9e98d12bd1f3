package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"grandstay/config"
	"grandstay/models"
	"grandstay/utils"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"
)

// StripeGateway implements Gateway against Stripe hosted checkout.
type StripeGateway struct{}

func NewStripeGateway() *StripeGateway {
	return &StripeGateway{}
}

func (g *StripeGateway) Name() string {
	return "stripe"
}

// CreateCheckoutSession opens a Stripe hosted checkout session carrying the
// booking and user ids in its metadata.
func (g *StripeGateway) CreateCheckoutSession(b *models.Booking, description string) (*models.CheckoutSession, error) {
	amountCents := int64(math.Round(b.TotalAmount * 100))

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(string(stripe.CurrencyUSD)),
					UnitAmount: stripe.Int64(amountCents),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(description),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(config.AppConfig.FrontendURL + "/payments/success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:  stripe.String(config.AppConfig.FrontendURL + "/payments/cancelled"),
	}
	params.AddMetadata("bookingId", b.ID)
	params.AddMetadata("userId", b.UserID)

	sess, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe session creation failed: %w", err)
	}

	return &models.CheckoutSession{SessionID: sess.ID, URL: sess.URL}, nil
}

// GetSession fetches the session from Stripe and maps it to the
// gateway-agnostic view.
func (g *StripeGateway) GetSession(sessionID string) (*GatewaySession, error) {
	params := &stripe.CheckoutSessionParams{}
	params.AddExpand("payment_intent")

	sess, err := session.Get(sessionID, params)
	if err != nil {
		return nil, fmt.Errorf("stripe session fetch failed: %w", err)
	}
	return mapStripeSession(sess), nil
}

func mapStripeSession(sess *stripe.CheckoutSession) *GatewaySession {
	out := &GatewaySession{
		ID:        sess.ID,
		Paid:      sess.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid,
		BookingID: sess.Metadata["bookingId"],
		UserID:    sess.Metadata["userId"],
	}
	if sess.PaymentIntent != nil {
		out.TransactionID = sess.PaymentIntent.ID
	} else {
		out.TransactionID = sess.ID
	}
	return out
}

// HandleWebhook verifies and processes a Stripe webhook event. Only
// checkout.session.completed is acted on; everything else is acknowledged.
func (s *DefaultPaymentService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := webhook.ConstructEvent(payload, signature, config.AppConfig.StripeWebhookSecret)
	if err != nil {
		return fmt.Errorf("webhook signature verification failed: %w", err)
	}

	if event.Type != "checkout.session.completed" {
		utils.GetLogger().Debug("ignoring webhook event", zap.String("type", string(event.Type)))
		return nil
	}

	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		return fmt.Errorf("failed to parse checkout session payload: %w", err)
	}

	gwSess := mapStripeSession(&sess)
	gwSess.Paid = true // checkout.session.completed implies settlement
	if gwSess.BookingID == "" {
		return fmt.Errorf("checkout session %s carries no bookingId metadata", sess.ID)
	}

	if _, err := s.settle(ctx, gwSess); err != nil {
		return fmt.Errorf("failed to settle booking from webhook: %w", err)
	}
	return nil
}
