package grpc

import (
	"context"

	"github.com/dmitrijs2005/praylink/internal/models"
	"github.com/dmitrijs2005/praylink/internal/rpc"
	"github.com/dmitrijs2005/praylink/internal/server/guide"
)

func (s *GRPCServer) viewer(ctx context.Context) (*models.User, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	u, err := s.users.Profile(ctx, userID)
	if err != nil {
		return nil, toStatus(err)
	}
	return u, nil
}

func (s *GRPCServer) guideTarget(ctx context.Context, req *rpc.GuideRequest) (models.Religion, models.Language, error) {
	religion, lang := req.Religion, req.Language
	if religion != "" && lang != "" {
		return religion, lang, nil
	}

	u, err := s.viewer(ctx)
	if err != nil {
		return "", "", err
	}
	if religion == "" {
		religion = u.Religion
	}
	if lang == "" {
		lang = u.Language
	}
	return religion, lang, nil
}

func (s *GRPCServer) DailyWisdom(ctx context.Context, req *rpc.GuideRequest) (*rpc.TextResponse, error) {
	religion, lang, err := s.guideTarget(ctx, req)
	if err != nil {
		return nil, err
	}
	return &rpc.TextResponse{Text: s.guide.DailyWisdom(ctx, religion, lang)}, nil
}

func (s *GRPCServer) DailyInspiration(ctx context.Context, req *rpc.GuideRequest) (*rpc.TextResponse, error) {
	religion, lang, err := s.guideTarget(ctx, req)
	if err != nil {
		return nil, err
	}
	return &rpc.TextResponse{Text: s.guide.DailyInspiration(ctx, religion, lang)}, nil
}

func (s *GRPCServer) Translate(ctx context.Context, req *rpc.TranslateRequest) (*rpc.TextResponse, error) {
	if _, err := userIDFromContext(ctx); err != nil {
		return nil, err
	}
	return &rpc.TextResponse{Text: s.guide.Translate(ctx, req.Text, req.Target)}, nil
}

func (s *GRPCServer) Chat(ctx context.Context, req *rpc.ChatRequest) (*rpc.TextResponse, error) {
	u, err := s.viewer(ctx)
	if err != nil {
		return nil, err
	}

	history := make([]guide.Turn, len(req.History))
	for i, t := range req.History {
		history[i] = guide.Turn{Role: t.Role, Text: t.Text}
	}

	reply, err := s.guide.Chat(ctx, u, req.Message, history)
	if err != nil {
		return nil, toStatus(err)
	}
	return &rpc.TextResponse{Text: reply}, nil
}
