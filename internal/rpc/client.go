package rpc

import (
	"context"

	"google.golang.org/grpc"
)

// Client is a thin typed wrapper around a connection to the PrayLink service.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func invoke[Resp any](ctx context.Context, c *Client, method string, in any, opts ...grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Ping(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c, MethodPing, in, opts...)
}

func (c *Client) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*AuthResponse, error) {
	return invoke[AuthResponse](ctx, c, MethodRegister, in, opts...)
}

func (c *Client) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*AuthResponse, error) {
	return invoke[AuthResponse](ctx, c, MethodLogin, in, opts...)
}

func (c *Client) RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*TokenResponse, error) {
	return invoke[TokenResponse](ctx, c, MethodRefreshToken, in, opts...)
}

func (c *Client) Logout(ctx context.Context, in *LogoutRequest, opts ...grpc.CallOption) (*Empty, error) {
	return invoke[Empty](ctx, c, MethodLogout, in, opts...)
}

func (c *Client) GetProfile(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*UserResponse, error) {
	return invoke[UserResponse](ctx, c, MethodGetProfile, in, opts...)
}

func (c *Client) UpdateProfile(ctx context.Context, in *UpdateProfileRequest, opts ...grpc.CallOption) (*UserResponse, error) {
	return invoke[UserResponse](ctx, c, MethodUpdateProfile, in, opts...)
}

func (c *Client) ToggleCircle(ctx context.Context, in *ToggleCircleRequest, opts ...grpc.CallOption) (*ToggleCircleResponse, error) {
	return invoke[ToggleCircleResponse](ctx, c, MethodToggleCircle, in, opts...)
}

func (c *Client) AvatarUploadURL(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*AvatarUploadResponse, error) {
	return invoke[AvatarUploadResponse](ctx, c, MethodAvatarUploadURL, in, opts...)
}

func (c *Client) ListFeed(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*FeedResponse, error) {
	return invoke[FeedResponse](ctx, c, MethodListFeed, in, opts...)
}

func (c *Client) CreatePost(ctx context.Context, in *CreatePostRequest, opts ...grpc.CallOption) (*PostResponse, error) {
	return invoke[PostResponse](ctx, c, MethodCreatePost, in, opts...)
}

func (c *Client) Interact(ctx context.Context, in *PostRequest, opts ...grpc.CallOption) (*InteractResponse, error) {
	return invoke[InteractResponse](ctx, c, MethodInteract, in, opts...)
}

func (c *Client) AddComment(ctx context.Context, in *AddCommentRequest, opts ...grpc.CallOption) (*CommentResponse, error) {
	return invoke[CommentResponse](ctx, c, MethodAddComment, in, opts...)
}

func (c *Client) MarkAnswered(ctx context.Context, in *PostRequest, opts ...grpc.CallOption) (*PostResponse, error) {
	return invoke[PostResponse](ctx, c, MethodMarkAnswered, in, opts...)
}

func (c *Client) BeginTithe(ctx context.Context, in *BeginTitheRequest, opts ...grpc.CallOption) (*TitheResponse, error) {
	return invoke[TitheResponse](ctx, c, MethodBeginTithe, in, opts...)
}

func (c *Client) CompleteTithe(ctx context.Context, in *CompleteTitheRequest, opts ...grpc.CallOption) (*TitheResponse, error) {
	return invoke[TitheResponse](ctx, c, MethodCompleteTithe, in, opts...)
}

func (c *Client) TitheHistory(ctx context.Context, in *Empty, opts ...grpc.CallOption) (*TitheHistoryResponse, error) {
	return invoke[TitheHistoryResponse](ctx, c, MethodTitheHistory, in, opts...)
}

func (c *Client) DailyWisdom(ctx context.Context, in *GuideRequest, opts ...grpc.CallOption) (*TextResponse, error) {
	return invoke[TextResponse](ctx, c, MethodDailyWisdom, in, opts...)
}

func (c *Client) DailyInspiration(ctx context.Context, in *GuideRequest, opts ...grpc.CallOption) (*TextResponse, error) {
	return invoke[TextResponse](ctx, c, MethodDailyInspiration, in, opts...)
}

func (c *Client) Translate(ctx context.Context, in *TranslateRequest, opts ...grpc.CallOption) (*TextResponse, error) {
	return invoke[TextResponse](ctx, c, MethodTranslate, in, opts...)
}

func (c *Client) Chat(ctx context.Context, in *ChatRequest, opts ...grpc.CallOption) (*TextResponse, error) {
	return invoke[TextResponse](ctx, c, MethodChat, in, opts...)
}
