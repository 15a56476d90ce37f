package rpc

import (
	"context"

	"google.golang.org/grpc"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "praylink.v1.PrayLink"

// Method names.
const (
	MethodPing             = "Ping"
	MethodRegister         = "Register"
	MethodLogin            = "Login"
	MethodRefreshToken     = "RefreshToken"
	MethodLogout           = "Logout"
	MethodGetProfile       = "GetProfile"
	MethodUpdateProfile    = "UpdateProfile"
	MethodToggleCircle     = "ToggleCircle"
	MethodAvatarUploadURL  = "AvatarUploadURL"
	MethodListFeed         = "ListFeed"
	MethodCreatePost       = "CreatePost"
	MethodInteract         = "Interact"
	MethodAddComment       = "AddComment"
	MethodMarkAnswered     = "MarkAnswered"
	MethodBeginTithe       = "BeginTithe"
	MethodCompleteTithe    = "CompleteTithe"
	MethodTitheHistory     = "TitheHistory"
	MethodDailyWisdom      = "DailyWisdom"
	MethodDailyInspiration = "DailyInspiration"
	MethodTranslate        = "Translate"
	MethodChat             = "Chat"
)

// FullMethod returns the "/service/method" path used on the wire.
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// Server is implemented by the PrayLink gRPC server.
type Server interface {
	Ping(context.Context, *Empty) (*PingResponse, error)
	Register(context.Context, *RegisterRequest) (*AuthResponse, error)
	Login(context.Context, *LoginRequest) (*AuthResponse, error)
	RefreshToken(context.Context, *RefreshTokenRequest) (*TokenResponse, error)
	Logout(context.Context, *LogoutRequest) (*Empty, error)
	GetProfile(context.Context, *Empty) (*UserResponse, error)
	UpdateProfile(context.Context, *UpdateProfileRequest) (*UserResponse, error)
	ToggleCircle(context.Context, *ToggleCircleRequest) (*ToggleCircleResponse, error)
	AvatarUploadURL(context.Context, *Empty) (*AvatarUploadResponse, error)
	ListFeed(context.Context, *Empty) (*FeedResponse, error)
	CreatePost(context.Context, *CreatePostRequest) (*PostResponse, error)
	Interact(context.Context, *PostRequest) (*InteractResponse, error)
	AddComment(context.Context, *AddCommentRequest) (*CommentResponse, error)
	MarkAnswered(context.Context, *PostRequest) (*PostResponse, error)
	BeginTithe(context.Context, *BeginTitheRequest) (*TitheResponse, error)
	CompleteTithe(context.Context, *CompleteTitheRequest) (*TitheResponse, error)
	TitheHistory(context.Context, *Empty) (*TitheHistoryResponse, error)
	DailyWisdom(context.Context, *GuideRequest) (*TextResponse, error)
	DailyInspiration(context.Context, *GuideRequest) (*TextResponse, error)
	Translate(context.Context, *TranslateRequest) (*TextResponse, error)
	Chat(context.Context, *ChatRequest) (*TextResponse, error)
}

func unary[Req, Resp any](method string, call func(Server, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(Server), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(method)}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(Server), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// ServiceDesc describes the PrayLink service for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*Server)(nil),
	Methods: []grpc.MethodDesc{
		unary(MethodPing, Server.Ping),
		unary(MethodRegister, Server.Register),
		unary(MethodLogin, Server.Login),
		unary(MethodRefreshToken, Server.RefreshToken),
		unary(MethodLogout, Server.Logout),
		unary(MethodGetProfile, Server.GetProfile),
		unary(MethodUpdateProfile, Server.UpdateProfile),
		unary(MethodToggleCircle, Server.ToggleCircle),
		unary(MethodAvatarUploadURL, Server.AvatarUploadURL),
		unary(MethodListFeed, Server.ListFeed),
		unary(MethodCreatePost, Server.CreatePost),
		unary(MethodInteract, Server.Interact),
		unary(MethodAddComment, Server.AddComment),
		unary(MethodMarkAnswered, Server.MarkAnswered),
		unary(MethodBeginTithe, Server.BeginTithe),
		unary(MethodCompleteTithe, Server.CompleteTithe),
		unary(MethodTitheHistory, Server.TitheHistory),
		unary(MethodDailyWisdom, Server.DailyWisdom),
		unary(MethodDailyInspiration, Server.DailyInspiration),
		unary(MethodTranslate, Server.Translate),
		unary(MethodChat, Server.Chat),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "praylink/v1/praylink",
}

// RegisterServer attaches srv to a gRPC server.
func RegisterServer(s grpc.ServiceRegistrar, srv Server) {
	s.RegisterService(&ServiceDesc, srv)
}
