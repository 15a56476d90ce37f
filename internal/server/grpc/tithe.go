package grpc

import (
	"context"

	"github.com/dmitrijs2005/praylink/internal/rpc"
	"github.com/dmitrijs2005/praylink/internal/server/services"
)

func titheResponse(r *services.TitheResult) *rpc.TitheResponse {
	return &rpc.TitheResponse{
		Reference:   r.Reference,
		Status:      string(r.Status),
		ApprovalURL: r.ApprovalURL,
		Tithe:       r.Tithe,
		Upgraded:    r.Upgraded,
		Premium:     r.Premium,
	}
}

func (s *GRPCServer) BeginTithe(ctx context.Context, req *rpc.BeginTitheRequest) (*rpc.TitheResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	res, err := s.tithes.Begin(ctx, userID, req.Amount, req.Method, req.Token)
	if err != nil {
		s.logger.Warn(ctx, "tithe not started", "method", req.Method, "error", err)
		return nil, toStatus(err)
	}

	s.logger.Info(ctx, "Tithe started", "reference", res.Reference, "status", res.Status, "upgraded", res.Upgraded)
	return titheResponse(res), nil
}

func (s *GRPCServer) CompleteTithe(ctx context.Context, req *rpc.CompleteTitheRequest) (*rpc.TitheResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	res, err := s.tithes.Complete(ctx, userID, req.Method, req.Reference)
	if err != nil {
		s.logger.Warn(ctx, "tithe not completed", "reference", req.Reference, "error", err)
		return nil, toStatus(err)
	}
	return titheResponse(res), nil
}

func (s *GRPCServer) TitheHistory(ctx context.Context, req *rpc.Empty) (*rpc.TitheHistoryResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	tithes, err := s.tithes.History(ctx, userID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &rpc.TitheHistoryResponse{Tithes: tithes}, nil
}
