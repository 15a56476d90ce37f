package client

import (
	"context"

	"github.com/dmitrijs2005/praylink/internal/models"
	"github.com/dmitrijs2005/praylink/internal/rpc"
)

// Client is the remote PrayLink API as the session sees it.
type Client interface {
	Close() error
	Ping(ctx context.Context) error

	Register(ctx context.Context, req *rpc.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
	Logout(ctx context.Context) error
	Profile(ctx context.Context) (*models.User, error)
	UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (*models.User, error)
	ToggleCircle(ctx context.Context, targetID string) ([]string, error)
	AvatarUploadURL(ctx context.Context) (*rpc.AvatarUploadResponse, error)

	Feed(ctx context.Context) ([]*models.Post, error)
	CreatePost(ctx context.Context, content string, miracle bool, tier models.PromotionTier) (*models.Post, error)
	Interact(ctx context.Context, postID string) (models.InteractionKind, int64, error)
	AddComment(ctx context.Context, postID, content string) (*models.Comment, error)
	MarkAnswered(ctx context.Context, postID string) (*models.Post, error)

	BeginTithe(ctx context.Context, amount int64, method models.PaymentMethod, token string) (*rpc.TitheResponse, error)
	CompleteTithe(ctx context.Context, method models.PaymentMethod, reference string) (*rpc.TitheResponse, error)
	TitheHistory(ctx context.Context) ([]*models.Tithe, error)

	DailyWisdom(ctx context.Context) (string, error)
	DailyInspiration(ctx context.Context) (string, error)
	Translate(ctx context.Context, text string, target models.Language) (string, error)
	Chat(ctx context.Context, message string, history []rpc.ChatTurn) (string, error)
}
