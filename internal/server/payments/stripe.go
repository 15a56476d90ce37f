package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/praylink/internal/models"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"
)

const stripeUserKey = "user_id"

type paymentIntents interface {
	New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
	Get(id string, params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

// StripeGateway charges cards through Stripe PaymentIntents.
type StripeGateway struct {
	intents paymentIntents
}

func NewStripeGateway(secretKey string) *StripeGateway {
	return &StripeGateway{intents: client.New(secretKey, nil).PaymentIntents}
}

func (g *StripeGateway) Method() models.PaymentMethod { return models.PaymentCreditCard }

// Create creates and confirms a PaymentIntent for the tokenized card.
func (g *StripeGateway) Create(ctx context.Context, c Charge) (*Intent, error) {
	if c.Token == "" {
		return nil, fmt.Errorf("stripe: missing payment method token")
	}

	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(c.Amount),
		Currency:      stripe.String(strings.ToLower(c.Currency)),
		PaymentMethod: stripe.String(c.Token),
		Confirm:       stripe.Bool(true),
		Description:   stripe.String(c.Description),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled:        stripe.Bool(true),
			AllowRedirects: stripe.String("never"),
		},
	}
	params.Context = ctx
	params.AddMetadata(stripeUserKey, c.UserID)

	pi, err := g.intents.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe: %w", err)
	}
	return intentFromStripe(pi), nil
}

// Capture re-reads the intent; card intents are captured on confirmation.
func (g *StripeGateway) Capture(ctx context.Context, reference string) (*Intent, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := g.intents.Get(reference, params)
	if err != nil {
		return nil, fmt.Errorf("stripe: %w", err)
	}
	return intentFromStripe(pi), nil
}

func intentFromStripe(pi *stripe.PaymentIntent) *Intent {
	in := &Intent{
		Reference: pi.ID,
		Amount:    pi.Amount,
		Currency:  strings.ToUpper(string(pi.Currency)),
		UserID:    pi.Metadata[stripeUserKey],
	}
	switch pi.Status {
	case stripe.PaymentIntentStatusSucceeded:
		in.Status = StatusSucceeded
	case stripe.PaymentIntentStatusCanceled, stripe.PaymentIntentStatusRequiresPaymentMethod:
		in.Status = StatusFailed
	default:
		in.Status = StatusPending
	}
	return in
}

// ParseStripeWebhook verifies the Stripe-Signature header and returns the
// succeeded intent. ok is false for any other event type.
func ParseStripeWebhook(payload []byte, signature, secret string) (in *Intent, ok bool, err error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, secret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return nil, false, fmt.Errorf("stripe webhook: %w", err)
	}

	if event.Type != "payment_intent.succeeded" {
		return nil, false, nil
	}

	var pi stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
		return nil, false, fmt.Errorf("stripe webhook: %w", err)
	}
	return intentFromStripe(&pi), true, nil
}
