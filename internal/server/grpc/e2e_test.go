package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/dmitrijs2005/praylink/internal/common"
	"github.com/dmitrijs2005/praylink/internal/logging"
	"github.com/dmitrijs2005/praylink/internal/models"
	"github.com/dmitrijs2005/praylink/internal/rpc"
	"github.com/dmitrijs2005/praylink/internal/server/config"
	"github.com/dmitrijs2005/praylink/internal/server/guide"
	"github.com/dmitrijs2005/praylink/internal/server/payments"
	"github.com/dmitrijs2005/praylink/internal/server/repositories/memory"
	"github.com/dmitrijs2005/praylink/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/praylink/internal/server/services"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

// startInMemory runs the real services on the memory store behind a bufconn
// listener and returns a client for it.
func startInMemory(t *testing.T) *rpc.Client {
	t.Helper()

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.PremiumThreshold = 5000

	rm := repomanager.NewMemoryRepositoryManager(memory.NewStore())
	svc := Services{
		Users:   services.NewUserService(rm, cfg),
		Feed:    services.NewFeedService(rm),
		Tithes:  services.NewTitheService(rm, cfg.PremiumThreshold, payments.NewSandboxGateway(models.PaymentCreditCard)),
		Avatars: services.NewAvatarService(cfg),
		Guide:   guide.NewService(nil, nil, logging.Nop()),
	}
	srv := NewGRPCServer("bufnet", logging.Nop(), svc, cfg.SecretKey)

	lis := bufconn.Listen(1 << 20)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, lis) }()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	t.Cleanup(func() {
		_ = conn.Close()
		cancel()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Error("server did not stop")
		}
	})

	return rpc.NewClient(conn)
}

func bearer(token string) context.Context {
	return metadata.AppendToOutgoingContext(context.Background(), common.AccessTokenHeaderName, token)
}

func TestEndToEnd_RegisterPostPrayTithe(t *testing.T) {
	c := startInMemory(t)

	pong, err := c.Ping(context.Background(), &rpc.Empty{})
	if err != nil || pong.Status != "OK" {
		t.Fatalf("Ping: %v %+v", err, pong)
	}

	auth, err := c.Register(context.Background(), &rpc.RegisterRequest{
		Email: "grace@example.com", Password: "correct horse", FirstName: "Grace", LastName: "Hopper",
		Religion: models.Christianity,
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if auth.User.Email != "grace@example.com" || auth.AccessToken == "" {
		t.Fatalf("unexpected auth response: %+v", auth)
	}

	_, err = c.ListFeed(context.Background(), &rpc.Empty{})
	if status.Code(err) != codes.Unauthenticated {
		t.Fatalf("expected Unauthenticated without token, got %v", err)
	}

	ctx := bearer(auth.AccessToken)

	_, err = c.CreatePost(ctx, &rpc.CreatePostRequest{Content: "   "})
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("expected InvalidArgument, got %v", err)
	}

	created, err := c.CreatePost(ctx, &rpc.CreatePostRequest{Content: "Please pray for my mother", IsMiracle: true, Tier: models.TierSilver})
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}

	pr, err := c.Interact(ctx, &rpc.PostRequest{PostID: created.Post.ID})
	if err != nil {
		t.Fatalf("Interact: %v", err)
	}
	if pr.Kind != models.InteractionPray || pr.Count != 1 {
		t.Fatalf("unexpected interaction: %+v", pr)
	}

	feed, err := c.ListFeed(ctx, &rpc.Empty{})
	if err != nil {
		t.Fatalf("ListFeed: %v", err)
	}
	if len(feed.Posts) != 1 || feed.Posts[0].Prayers != 1 || feed.Posts[0].PromotionTier != models.TierSilver {
		t.Fatalf("unexpected feed: %+v", feed.Posts)
	}

	_, err = c.Chat(ctx, &rpc.ChatRequest{Message: "hello"})
	if status.Code(err) != codes.PermissionDenied {
		t.Fatalf("expected PermissionDenied for non-premium chat, got %v", err)
	}

	tithe, err := c.BeginTithe(ctx, &rpc.BeginTitheRequest{Amount: 5000, Method: models.PaymentCreditCard, Token: "pm_card_visa"})
	if err != nil {
		t.Fatalf("BeginTithe: %v", err)
	}
	if tithe.Status != "succeeded" || !tithe.Upgraded || !tithe.Premium {
		t.Fatalf("unexpected tithe: %+v", tithe)
	}

	reply, err := c.Chat(ctx, &rpc.ChatRequest{Message: "hello"})
	if err != nil {
		t.Fatalf("Chat after upgrade: %v", err)
	}
	if reply.Text != guide.FallbackChat {
		t.Fatalf("unexpected chat reply: %q", reply.Text)
	}

	_, err = c.BeginTithe(ctx, &rpc.BeginTitheRequest{Amount: 0, Method: models.PaymentCreditCard})
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("expected InvalidArgument for zero tithe, got %v", err)
	}

	refreshed, err := c.RefreshToken(context.Background(), &rpc.RefreshTokenRequest{RefreshToken: auth.RefreshToken})
	if err != nil {
		t.Fatalf("RefreshToken: %v", err)
	}
	_, err = c.RefreshToken(context.Background(), &rpc.RefreshTokenRequest{RefreshToken: auth.RefreshToken})
	if status.Code(err) != codes.Unauthenticated {
		t.Fatalf("old refresh token must be rejected, got %v", err)
	}
	if _, err := c.Logout(bearer(refreshed.AccessToken), &rpc.LogoutRequest{RefreshToken: refreshed.RefreshToken}); err != nil {
		t.Fatalf("Logout: %v", err)
	}
}
