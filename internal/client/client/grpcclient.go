package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/praylink/internal/common"
	"github.com/dmitrijs2005/praylink/internal/models"
	"github.com/dmitrijs2005/praylink/internal/rpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const callTimeout = 15 * time.Second

// rpcAPI is the subset of *rpc.Client the GRPCClient calls.
type rpcAPI interface {
	Ping(ctx context.Context, in *rpc.Empty, opts ...grpc.CallOption) (*rpc.PingResponse, error)
	Register(ctx context.Context, in *rpc.RegisterRequest, opts ...grpc.CallOption) (*rpc.AuthResponse, error)
	Login(ctx context.Context, in *rpc.LoginRequest, opts ...grpc.CallOption) (*rpc.AuthResponse, error)
	RefreshToken(ctx context.Context, in *rpc.RefreshTokenRequest, opts ...grpc.CallOption) (*rpc.TokenResponse, error)
	Logout(ctx context.Context, in *rpc.LogoutRequest, opts ...grpc.CallOption) (*rpc.Empty, error)
	GetProfile(ctx context.Context, in *rpc.Empty, opts ...grpc.CallOption) (*rpc.UserResponse, error)
	UpdateProfile(ctx context.Context, in *rpc.UpdateProfileRequest, opts ...grpc.CallOption) (*rpc.UserResponse, error)
	ToggleCircle(ctx context.Context, in *rpc.ToggleCircleRequest, opts ...grpc.CallOption) (*rpc.ToggleCircleResponse, error)
	AvatarUploadURL(ctx context.Context, in *rpc.Empty, opts ...grpc.CallOption) (*rpc.AvatarUploadResponse, error)
	ListFeed(ctx context.Context, in *rpc.Empty, opts ...grpc.CallOption) (*rpc.FeedResponse, error)
	CreatePost(ctx context.Context, in *rpc.CreatePostRequest, opts ...grpc.CallOption) (*rpc.PostResponse, error)
	Interact(ctx context.Context, in *rpc.PostRequest, opts ...grpc.CallOption) (*rpc.InteractResponse, error)
	AddComment(ctx context.Context, in *rpc.AddCommentRequest, opts ...grpc.CallOption) (*rpc.CommentResponse, error)
	MarkAnswered(ctx context.Context, in *rpc.PostRequest, opts ...grpc.CallOption) (*rpc.PostResponse, error)
	BeginTithe(ctx context.Context, in *rpc.BeginTitheRequest, opts ...grpc.CallOption) (*rpc.TitheResponse, error)
	CompleteTithe(ctx context.Context, in *rpc.CompleteTitheRequest, opts ...grpc.CallOption) (*rpc.TitheResponse, error)
	TitheHistory(ctx context.Context, in *rpc.Empty, opts ...grpc.CallOption) (*rpc.TitheHistoryResponse, error)
	DailyWisdom(ctx context.Context, in *rpc.GuideRequest, opts ...grpc.CallOption) (*rpc.TextResponse, error)
	DailyInspiration(ctx context.Context, in *rpc.GuideRequest, opts ...grpc.CallOption) (*rpc.TextResponse, error)
	Translate(ctx context.Context, in *rpc.TranslateRequest, opts ...grpc.CallOption) (*rpc.TextResponse, error)
	Chat(ctx context.Context, in *rpc.ChatRequest, opts ...grpc.CallOption) (*rpc.TextResponse, error)
}

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      rpcAPI

	mu           sync.Mutex
	accessToken  string
	refreshToken string
}

var _ Client = (*GRPCClient)(nil)

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) tokens() (string, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accessToken, s.refreshToken
}

func (s *GRPCClient) setTokens(access, refresh string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = access
	s.refreshToken = refresh
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {

	access, refresh := s.tokens()
	if access != "" {
		ctx = withAccessToken(ctx, access)
	}

	err := invoker(ctx, method, req, reply, cc, opts...)

	if err != nil {

		st, ok := status.FromError(err)
		if !ok {
			return err
		}

		if st.Code() != codes.Unauthenticated {
			return err
		}
		if st.Message() != common.ErrTokenExpired.Error() {
			return err
		}

		if refresh == "" {
			return err
		}

		refreshTokenResponse, err := s.client.RefreshToken(ctx, &rpc.RefreshTokenRequest{RefreshToken: refresh})
		if err != nil {
			return err
		}

		s.setTokens(refreshTokenResponse.AccessToken, refreshTokenResponse.RefreshToken)

		// tokens refreshed, retry once with the new access token
		ctx = withAccessToken(ctx, refreshTokenResponse.AccessToken)
		return invoker(ctx, method, req, reply, cc, opts...)

	}

	return err
}

func NewPrayLinkClient(endpointURL string) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}
	err := c.InitGRPCClient()
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient() error {

	conn, err := grpc.NewClient(s.endpointURL,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(rpc.CodecName)),
	)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = rpc.NewClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated:
		return ErrUnauthorized
	case codes.PermissionDenied:
		if st.Message() == common.ErrPremiumRequired.Error() {
			return common.ErrPremiumRequired
		}
		return fmt.Errorf("%w: %s", ErrForbidden, st.Message())
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", common.ErrorValidation, st.Message())
	case codes.NotFound:
		return common.ErrorNotFound
	case codes.AlreadyExists:
		return common.ErrorAlreadyExists
	case codes.FailedPrecondition:
		return fmt.Errorf("%w: %s", common.ErrPaymentFailed, st.Message())
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}

func (s *GRPCClient) Ping(ctx context.Context) error {

	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	resp, err := s.client.Ping(ctx, &rpc.Empty{})
	if err != nil {
		return s.mapError(err)
	}

	if resp.Status != "OK" {
		return ErrUnavailable
	}

	return nil

}

func (s *GRPCClient) Register(ctx context.Context, req *rpc.RegisterRequest) (*models.User, error) {

	resp, err := s.client.Register(ctx, req)
	if err != nil {
		return nil, s.mapError(err)
	}

	s.setTokens(resp.AccessToken, resp.RefreshToken)
	return resp.User, nil

}

func (s *GRPCClient) Login(ctx context.Context, email, password string) (*models.User, error) {

	resp, err := s.client.Login(ctx, &rpc.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, s.mapError(err)
	}

	s.setTokens(resp.AccessToken, resp.RefreshToken)
	return resp.User, nil

}

// Logout revokes the refresh token and forgets both tokens even when the
// server call fails.
func (s *GRPCClient) Logout(ctx context.Context) error {
	_, refresh := s.tokens()
	defer s.setTokens("", "")

	if refresh == "" {
		return nil
	}
	_, err := s.client.Logout(ctx, &rpc.LogoutRequest{RefreshToken: refresh})
	return s.mapError(err)
}

func (s *GRPCClient) Profile(ctx context.Context) (*models.User, error) {
	resp, err := s.client.GetProfile(ctx, &rpc.Empty{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.User, nil
}

func (s *GRPCClient) UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (*models.User, error) {
	resp, err := s.client.UpdateProfile(ctx, &rpc.UpdateProfileRequest{Update: upd})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.User, nil
}

func (s *GRPCClient) ToggleCircle(ctx context.Context, targetID string) ([]string, error) {
	resp, err := s.client.ToggleCircle(ctx, &rpc.ToggleCircleRequest{TargetID: targetID})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.CircleIDs, nil
}

func (s *GRPCClient) AvatarUploadURL(ctx context.Context) (*rpc.AvatarUploadResponse, error) {
	resp, err := s.client.AvatarUploadURL(ctx, &rpc.Empty{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) Feed(ctx context.Context) ([]*models.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	resp, err := s.client.ListFeed(ctx, &rpc.Empty{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Posts, nil
}

func (s *GRPCClient) CreatePost(ctx context.Context, content string, miracle bool, tier models.PromotionTier) (*models.Post, error) {
	resp, err := s.client.CreatePost(ctx, &rpc.CreatePostRequest{Content: content, IsMiracle: miracle, Tier: tier})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Post, nil
}

func (s *GRPCClient) Interact(ctx context.Context, postID string) (models.InteractionKind, int64, error) {
	resp, err := s.client.Interact(ctx, &rpc.PostRequest{PostID: postID})
	if err != nil {
		return "", 0, s.mapError(err)
	}
	return resp.Kind, resp.Count, nil
}

func (s *GRPCClient) AddComment(ctx context.Context, postID, content string) (*models.Comment, error) {
	resp, err := s.client.AddComment(ctx, &rpc.AddCommentRequest{PostID: postID, Content: content})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Comment, nil
}

func (s *GRPCClient) MarkAnswered(ctx context.Context, postID string) (*models.Post, error) {
	resp, err := s.client.MarkAnswered(ctx, &rpc.PostRequest{PostID: postID})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Post, nil
}

func (s *GRPCClient) BeginTithe(ctx context.Context, amount int64, method models.PaymentMethod, token string) (*rpc.TitheResponse, error) {
	resp, err := s.client.BeginTithe(ctx, &rpc.BeginTitheRequest{Amount: amount, Method: method, Token: token})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) CompleteTithe(ctx context.Context, method models.PaymentMethod, reference string) (*rpc.TitheResponse, error) {
	resp, err := s.client.CompleteTithe(ctx, &rpc.CompleteTitheRequest{Method: method, Reference: reference})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

func (s *GRPCClient) TitheHistory(ctx context.Context) ([]*models.Tithe, error) {
	resp, err := s.client.TitheHistory(ctx, &rpc.Empty{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Tithes, nil
}

func (s *GRPCClient) DailyWisdom(ctx context.Context) (string, error) {
	resp, err := s.client.DailyWisdom(ctx, &rpc.GuideRequest{})
	if err != nil {
		return "", s.mapError(err)
	}
	return resp.Text, nil
}

func (s *GRPCClient) DailyInspiration(ctx context.Context) (string, error) {
	resp, err := s.client.DailyInspiration(ctx, &rpc.GuideRequest{})
	if err != nil {
		return "", s.mapError(err)
	}
	return resp.Text, nil
}

func (s *GRPCClient) Translate(ctx context.Context, text string, target models.Language) (string, error) {
	resp, err := s.client.Translate(ctx, &rpc.TranslateRequest{Text: text, Target: target})
	if err != nil {
		return "", s.mapError(err)
	}
	return resp.Text, nil
}

func (s *GRPCClient) Chat(ctx context.Context, message string, history []rpc.ChatTurn) (string, error) {
	resp, err := s.client.Chat(ctx, &rpc.ChatRequest{Message: message, History: history})
	if err != nil {
		return "", s.mapError(err)
	}
	return resp.Text, nil
}
