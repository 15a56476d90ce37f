package grpc

import (
	"context"

	"github.com/dmitrijs2005/praylink/internal/rpc"
	"github.com/dmitrijs2005/praylink/internal/server/services"
)

func (s *GRPCServer) ListFeed(ctx context.Context, req *rpc.Empty) (*rpc.FeedResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	posts, err := s.feed.Feed(ctx, userID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &rpc.FeedResponse{Posts: posts}, nil
}

func (s *GRPCServer) CreatePost(ctx context.Context, req *rpc.CreatePostRequest) (*rpc.PostResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	post, err := s.feed.CreatePost(ctx, userID, services.NewPost{
		Content: req.Content,
		Miracle: req.IsMiracle,
		Tier:    req.Tier,
	})
	if err != nil {
		return nil, toStatus(err)
	}

	s.logger.Info(ctx, "Post created", "post_id", post.ID, "miracle", post.IsMiracle, "tier", post.PromotionTier)
	return &rpc.PostResponse{Post: post}, nil
}

func (s *GRPCServer) Interact(ctx context.Context, req *rpc.PostRequest) (*rpc.InteractResponse, error) {
	if _, err := userIDFromContext(ctx); err != nil {
		return nil, err
	}

	kind, count, err := s.feed.Interact(ctx, req.PostID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &rpc.InteractResponse{PostID: req.PostID, Kind: kind, Count: count}, nil
}

func (s *GRPCServer) AddComment(ctx context.Context, req *rpc.AddCommentRequest) (*rpc.CommentResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	c, err := s.feed.AddComment(ctx, req.PostID, userID, req.Content)
	if err != nil {
		return nil, toStatus(err)
	}
	return &rpc.CommentResponse{Comment: c}, nil
}

func (s *GRPCServer) MarkAnswered(ctx context.Context, req *rpc.PostRequest) (*rpc.PostResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	post, err := s.feed.MarkAnswered(ctx, req.PostID, userID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &rpc.PostResponse{Post: post}, nil
}
