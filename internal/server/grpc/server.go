package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/praylink/internal/logging"
	"github.com/dmitrijs2005/praylink/internal/models"
	"github.com/dmitrijs2005/praylink/internal/rpc"
	"github.com/dmitrijs2005/praylink/internal/server/guide"
	"github.com/dmitrijs2005/praylink/internal/server/services"
	"google.golang.org/grpc"
)

type userSvc interface {
	Register(ctx context.Context, p services.RegisterParams) (*models.User, *services.TokenPair, error)
	Login(ctx context.Context, email, password string) (*models.User, *services.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	Profile(ctx context.Context, userID string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, upd models.ProfileUpdate) (*models.User, error)
	ToggleCircle(ctx context.Context, userID, targetID string) (bool, []string, error)
}

type feedSvc interface {
	Feed(ctx context.Context, viewerID string) ([]*models.Post, error)
	CreatePost(ctx context.Context, authorID string, in services.NewPost) (*models.Post, error)
	Interact(ctx context.Context, postID string) (models.InteractionKind, int64, error)
	AddComment(ctx context.Context, postID, authorID, content string) (*models.Comment, error)
	MarkAnswered(ctx context.Context, postID, userID string) (*models.Post, error)
}

type titheSvc interface {
	Begin(ctx context.Context, userID string, amount int64, method models.PaymentMethod, token string) (*services.TitheResult, error)
	Complete(ctx context.Context, userID string, method models.PaymentMethod, reference string) (*services.TitheResult, error)
	History(ctx context.Context, userID string) ([]*models.Tithe, error)
}

type avatarSvc interface {
	UploadURL(ctx context.Context, userID string) (*services.AvatarUpload, error)
}

type guideSvc interface {
	DailyWisdom(ctx context.Context, religion models.Religion, lang models.Language) string
	DailyInspiration(ctx context.Context, religion models.Religion, lang models.Language) string
	Translate(ctx context.Context, text string, target models.Language) string
	Chat(ctx context.Context, viewer *models.User, message string, history []guide.Turn) (string, error)
}

// Services bundles the business services the gRPC server delegates to.
type Services struct {
	Users   userSvc
	Feed    feedSvc
	Tithes  titheSvc
	Avatars avatarSvc
	Guide   guideSvc
}

type GRPCServer struct {
	address   string
	users     userSvc
	feed      feedSvc
	tithes    titheSvc
	avatars   avatarSvc
	guide     guideSvc
	logger    logging.Logger
	jwtSecret []byte
}

var _ rpc.Server = (*GRPCServer)(nil)

func NewGRPCServer(a string, l logging.Logger, svc Services, secretKey string) *GRPCServer {
	return &GRPCServer{
		address:   a,
		logger:    l.With("module", "grpc_server"),
		users:     svc.Users,
		feed:      svc.Feed,
		tithes:    svc.Tithes,
		avatars:   svc.Avatars,
		guide:     svc.Guide,
		jwtSecret: []byte(secretKey),
	}
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve runs the server on an existing listener until ctx is cancelled.
func (s *GRPCServer) Serve(ctx context.Context, listen net.Listener) error {

	// creates gRPC-server
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor))

	// registers service
	rpc.RegisterServer(srv, s)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
