package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/praylink/internal/common"
	"github.com/dmitrijs2005/praylink/internal/dbx"
	"github.com/dmitrijs2005/praylink/internal/models"
	"github.com/dmitrijs2005/praylink/internal/server/payments"
	"github.com/dmitrijs2005/praylink/internal/server/repositories/repomanager"
)

const titheDescription = "PrayLink tithe"

// TitheResult reports where a tithe stands after Begin or Complete.
type TitheResult struct {
	Reference   string          `json:"reference"`
	Status      payments.Status `json:"status"`
	ApprovalURL string          `json:"approval_url,omitempty"`
	Tithe       *models.Tithe   `json:"tithe,omitempty"`
	// Upgraded is true when this tithe flipped the user to premium.
	Upgraded bool `json:"upgraded"`
	Premium  bool `json:"premium"`
}

type TitheService struct {
	repos     repomanager.RepositoryManager
	gateways  map[models.PaymentMethod]payments.Gateway
	threshold int64
	currency  string
}

// NewTitheService wires one gateway per payment method. A threshold of zero
// disables premium upgrades.
func NewTitheService(m repomanager.RepositoryManager, threshold int64, gateways ...payments.Gateway) *TitheService {
	s := &TitheService{
		repos:     m,
		gateways:  make(map[models.PaymentMethod]payments.Gateway, len(gateways)),
		threshold: threshold,
		currency:  common.DefaultCurrency,
	}
	for _, g := range gateways {
		s.gateways[g.Method()] = g
	}
	return s
}

func (s *TitheService) gateway(method models.PaymentMethod) (payments.Gateway, error) {
	g, ok := s.gateways[method]
	if !ok {
		return nil, fmt.Errorf("%w: payment method %q is not available", common.ErrorValidation, method)
	}
	return g, nil
}

// Begin starts a payment. Card payments usually settle immediately and are
// recorded here; PayPal returns an approval URL and settles in Complete.
func (s *TitheService) Begin(ctx context.Context, userID string, amount int64, method models.PaymentMethod, token string) (*TitheResult, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", common.ErrorValidation)
	}
	g, err := s.gateway(method)
	if err != nil {
		return nil, err
	}

	in, err := g.Create(ctx, payments.Charge{
		UserID:      userID,
		Amount:      amount,
		Currency:    s.currency,
		Token:       token,
		Description: titheDescription,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrPaymentFailed, err)
	}

	return s.settle(ctx, userID, method, in)
}

// Complete captures an approved payment and records it on success.
func (s *TitheService) Complete(ctx context.Context, userID string, method models.PaymentMethod, reference string) (*TitheResult, error) {
	g, err := s.gateway(method)
	if err != nil {
		return nil, err
	}

	in, err := g.Capture(ctx, reference)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrPaymentFailed, err)
	}
	if in.UserID != userID {
		return nil, fmt.Errorf("%w: payment belongs to another user", common.ErrorForbidden)
	}

	return s.settle(ctx, userID, method, in)
}

func (s *TitheService) settle(ctx context.Context, userID string, method models.PaymentMethod, in *payments.Intent) (*TitheResult, error) {
	switch in.Status {
	case payments.StatusSucceeded:
		currency := in.Currency
		if currency == "" {
			currency = s.currency
		}
		return s.RecordSuccess(ctx, userID, in.Amount, currency, method, in.Reference)
	case payments.StatusFailed:
		return nil, fmt.Errorf("%w: payment %s was declined", common.ErrPaymentFailed, in.Reference)
	default:
		return &TitheResult{Reference: in.Reference, Status: in.Status, ApprovalURL: in.ApprovalURL}, nil
	}
}

// RecordSuccess stores a confirmed tithe and applies the premium upgrade in
// one transaction. A reference that was already recorded changes nothing.
func (s *TitheService) RecordSuccess(ctx context.Context, userID string, amount int64, currency string,
	method models.PaymentMethod, reference string) (*TitheResult, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", common.ErrorValidation)
	}

	res := &TitheResult{Reference: reference, Status: payments.StatusSucceeded}
	err := s.repos.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		user, err := s.repos.Users(tx).GetByID(ctx, userID)
		if err != nil {
			return err
		}

		t := &models.Tithe{
			UserID:      userID,
			Amount:      amount,
			Currency:    currency,
			Method:      method,
			ProviderRef: reference,
		}
		created, err := s.repos.Tithes(tx).Create(ctx, t)
		if err != nil {
			return err
		}

		res.Premium = user.IsPremium
		if !created {
			return nil
		}
		res.Tithe = t

		if s.threshold > 0 && amount >= s.threshold && !user.IsPremium {
			if err := s.repos.Users(tx).SetPremium(ctx, userID, true); err != nil {
				return err
			}
			res.Upgraded = true
			res.Premium = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// History lists the user's tithes, newest first.
func (s *TitheService) History(ctx context.Context, userID string) ([]*models.Tithe, error) {
	return s.repos.Tithes(s.repos.DB()).ListByUser(ctx, userID)
}
