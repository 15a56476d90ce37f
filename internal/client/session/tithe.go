package session

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/praylink/internal/common"
	"github.com/dmitrijs2005/praylink/internal/models"
	"github.com/dmitrijs2005/praylink/internal/rpc"
)

// TithePresets are the suggested amounts in minor units (10, 50, 100, 500).
var TithePresets = []int64{1000, 5000, 10000, 50000}

// Tithe starts a contribution of amount minor units. Non-positive amounts
// are rejected before any remote call. A PayPal tithe comes back pending with
// an approval URL and is finished with CompleteTithe.
func (s *Session) Tithe(ctx context.Context, amount int64, method models.PaymentMethod, token string) (*rpc.TitheResponse, error) {
	if s.Viewer() == nil {
		return nil, ErrNoSession
	}
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", common.ErrorValidation)
	}
	resp, err := s.remote.BeginTithe(ctx, amount, method, token)
	if err != nil {
		return nil, err
	}
	s.applyPremium(resp)
	return resp, nil
}

// CompleteTithe captures an approved pending payment.
func (s *Session) CompleteTithe(ctx context.Context, method models.PaymentMethod, reference string) (*rpc.TitheResponse, error) {
	if s.Viewer() == nil {
		return nil, ErrNoSession
	}
	resp, err := s.remote.CompleteTithe(ctx, method, reference)
	if err != nil {
		return nil, err
	}
	s.applyPremium(resp)
	return resp, nil
}

func (s *Session) TitheHistory(ctx context.Context) ([]*models.Tithe, error) {
	if s.Viewer() == nil {
		return nil, ErrNoSession
	}
	return s.remote.TitheHistory(ctx)
}

func (s *Session) applyPremium(resp *rpc.TitheResponse) {
	if !resp.Upgraded && !resp.Premium {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.viewer != nil {
		s.viewer.IsPremium = true
	}
}
