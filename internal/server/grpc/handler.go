package grpc

import (
	"context"

	"github.com/dmitrijs2005/praylink/internal/rpc"
	"github.com/dmitrijs2005/praylink/internal/server/services"
)

func (s *GRPCServer) Ping(ctx context.Context, req *rpc.Empty) (*rpc.PingResponse, error) {

	return &rpc.PingResponse{Status: "OK"}, nil

}

func (s *GRPCServer) Register(ctx context.Context, req *rpc.RegisterRequest) (*rpc.AuthResponse, error) {

	s.logger.Info(ctx, "Registration request")

	user, tokens, err := s.users.Register(ctx, services.RegisterParams{
		Email:       req.Email,
		Password:    req.Password,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		DateOfBirth: req.DateOfBirth,
		Nationality: req.Nationality,
		Gender:      req.Gender,
		Religion:    req.Religion,
		Visibility:  req.Visibility,
		Language:    req.Language,
	})
	if err != nil {
		s.logger.Error(ctx, "registration failed", "error", err)
		return nil, toStatus(err)
	}

	s.logger.Info(ctx, "Registered", "user_id", user.ID)
	return &rpc.AuthResponse{User: user, AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}, nil

}

func (s *GRPCServer) Login(ctx context.Context, req *rpc.LoginRequest) (*rpc.AuthResponse, error) {

	user, tokens, err := s.users.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, toStatus(err)
	}

	return &rpc.AuthResponse{User: user, AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}, nil

}

func (s *GRPCServer) RefreshToken(ctx context.Context, req *rpc.RefreshTokenRequest) (*rpc.TokenResponse, error) {

	tokens, err := s.users.RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		return nil, toStatus(err)
	}

	return &rpc.TokenResponse{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}, nil

}

func (s *GRPCServer) Logout(ctx context.Context, req *rpc.LogoutRequest) (*rpc.Empty, error) {

	if err := s.users.Logout(ctx, req.RefreshToken); err != nil {
		return nil, toStatus(err)
	}
	return &rpc.Empty{}, nil

}

func (s *GRPCServer) GetProfile(ctx context.Context, req *rpc.Empty) (*rpc.UserResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Profile(ctx, userID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &rpc.UserResponse{User: user}, nil
}

func (s *GRPCServer) UpdateProfile(ctx context.Context, req *rpc.UpdateProfileRequest) (*rpc.UserResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.users.UpdateProfile(ctx, userID, req.Update)
	if err != nil {
		return nil, toStatus(err)
	}
	return &rpc.UserResponse{User: user}, nil
}

func (s *GRPCServer) ToggleCircle(ctx context.Context, req *rpc.ToggleCircleRequest) (*rpc.ToggleCircleResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	in, circle, err := s.users.ToggleCircle(ctx, userID, req.TargetID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &rpc.ToggleCircleResponse{InCircle: in, CircleIDs: circle}, nil
}

func (s *GRPCServer) AvatarUploadURL(ctx context.Context, req *rpc.Empty) (*rpc.AvatarUploadResponse, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	up, err := s.avatars.UploadURL(ctx, userID)
	if err != nil {
		s.logger.Error(ctx, "avatar presign failed", "error", err)
		return nil, toStatus(err)
	}
	return &rpc.AvatarUploadResponse{Key: up.Key, UploadURL: up.UploadURL, PublicURL: up.PublicURL}, nil
}
