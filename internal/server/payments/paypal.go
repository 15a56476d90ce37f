package payments

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/praylink/internal/common"
	"github.com/dmitrijs2005/praylink/internal/models"
	"github.com/plutov/paypal/v4"
)

// orderAPI is the slice of the PayPal orders API the gateway needs.
type orderAPI interface {
	create(ctx context.Context, units []paypal.PurchaseUnitRequest) (*paypal.Order, error)
	capture(ctx context.Context, orderID string) (*paypal.CaptureOrderResponse, error)
	get(ctx context.Context, orderID string) (*paypal.Order, error)
}

type paypalOrders struct {
	c *paypal.Client
}

func (o paypalOrders) create(ctx context.Context, units []paypal.PurchaseUnitRequest) (*paypal.Order, error) {
	return o.c.CreateOrder(ctx, paypal.OrderIntentCapture, units, nil, nil)
}

func (o paypalOrders) capture(ctx context.Context, orderID string) (*paypal.CaptureOrderResponse, error) {
	return o.c.CaptureOrder(ctx, orderID, paypal.CaptureOrderRequest{})
}

func (o paypalOrders) get(ctx context.Context, orderID string) (*paypal.Order, error) {
	return o.c.GetOrder(ctx, orderID)
}

// PayPalGateway collects tithes through PayPal CAPTURE orders. Create returns
// a pending intent with the approval link; Capture settles it.
type PayPalGateway struct {
	orders orderAPI
}

func NewPayPalGateway(clientID, secret string, live bool) (*PayPalGateway, error) {
	base := paypal.APIBaseSandBox
	if live {
		base = paypal.APIBaseLive
	}
	c, err := paypal.NewClient(clientID, secret, base)
	if err != nil {
		return nil, fmt.Errorf("paypal: %w", err)
	}
	return &PayPalGateway{orders: paypalOrders{c: c}}, nil
}

func (g *PayPalGateway) Method() models.PaymentMethod { return models.PaymentPayPal }

func (g *PayPalGateway) Create(ctx context.Context, c Charge) (*Intent, error) {
	order, err := g.orders.create(ctx, []paypal.PurchaseUnitRequest{{
		Amount:      &paypal.PurchaseUnitAmount{Currency: c.Currency, Value: formatMinor(c.Amount)},
		Description: c.Description,
		CustomID:    c.UserID,
	}})
	if err != nil {
		return nil, fmt.Errorf("paypal: %w", err)
	}

	in := &Intent{
		Reference: order.ID,
		Status:    orderStatus(order.Status),
		Amount:    c.Amount,
		Currency:  c.Currency,
		UserID:    c.UserID,
	}
	for _, l := range order.Links {
		if l.Rel == "approve" || l.Rel == "payer-action" {
			in.ApprovalURL = l.Href
			break
		}
	}
	return in, nil
}

// Capture settles an approved order. The owner comes from the order's
// custom_id and is read before capturing; an order that is already
// COMPLETED is reported without a second capture call.
func (g *PayPalGateway) Capture(ctx context.Context, reference string) (*Intent, error) {
	order, err := g.orders.get(ctx, reference)
	if err != nil {
		return nil, fmt.Errorf("paypal: %w", err)
	}
	if len(order.PurchaseUnits) == 0 {
		return nil, fmt.Errorf("paypal: order %s has no purchase units", reference)
	}
	unit := order.PurchaseUnits[0]

	in := &Intent{Reference: reference, UserID: unit.CustomID, Status: orderStatus(order.Status)}
	if in.Status != StatusSucceeded {
		resp, err := g.orders.capture(ctx, reference)
		if err != nil {
			return nil, fmt.Errorf("paypal: %w", err)
		}
		in.Status = orderStatus(resp.Status)
		if in.Status != StatusSucceeded {
			return in, nil
		}
	}

	if unit.Amount == nil {
		return nil, fmt.Errorf("paypal: order %s has no amount", reference)
	}
	if in.Amount, err = common.ParseMinorUnits(unit.Amount.Value); err != nil {
		return nil, fmt.Errorf("paypal: %w", err)
	}
	in.Currency = unit.Amount.Currency
	return in, nil
}

func orderStatus(s string) Status {
	switch s {
	case "COMPLETED":
		return StatusSucceeded
	case "VOIDED":
		return StatusFailed
	default:
		return StatusPending
	}
}
