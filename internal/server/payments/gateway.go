// Package payments adapts external payment collaborators to one Gateway
// contract. Amounts are always in minor units.
package payments

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/praylink/internal/models"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Charge is a request to collect Amount from the payer. Token is the
// tokenized card (payment method id) for card gateways and ignored otherwise.
type Charge struct {
	UserID      string
	Amount      int64
	Currency    string
	Token       string
	Description string
}

// Intent is the gateway's view of a payment.
type Intent struct {
	Reference string
	Status    Status
	// ApprovalURL is set when the payer must approve the payment elsewhere.
	ApprovalURL string
	Amount      int64
	Currency    string
	// UserID is echoed back from gateway metadata when the provider keeps it.
	UserID string
}

type Gateway interface {
	Method() models.PaymentMethod
	Create(ctx context.Context, c Charge) (*Intent, error)
	Capture(ctx context.Context, reference string) (*Intent, error)
}

// formatMinor renders 1050 as "10.50".
func formatMinor(amount int64) string {
	return fmt.Sprintf("%d.%02d", amount/100, amount%100)
}
