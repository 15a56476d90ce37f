package rpc

import "github.com/dmitrijs2005/praylink/internal/models"

type Empty struct{}

type PingResponse struct {
	Status string `json:"status"`
}

type RegisterRequest struct {
	Email       string            `json:"email"`
	Password    string            `json:"password"`
	FirstName   string            `json:"first_name"`
	LastName    string            `json:"last_name"`
	DateOfBirth string            `json:"date_of_birth,omitempty"`
	Nationality string            `json:"nationality,omitempty"`
	Gender      string            `json:"gender,omitempty"`
	Religion    models.Religion   `json:"religion"`
	Visibility  models.Visibility `json:"visibility,omitempty"`
	Language    models.Language   `json:"language,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by Register and Login.
type AuthResponse struct {
	User         *models.User `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type UserResponse struct {
	User *models.User `json:"user"`
}

type UpdateProfileRequest struct {
	Update models.ProfileUpdate `json:"update"`
}

type ToggleCircleRequest struct {
	TargetID string `json:"target_id"`
}

type ToggleCircleResponse struct {
	InCircle  bool     `json:"in_circle"`
	CircleIDs []string `json:"circle_ids"`
}

type AvatarUploadResponse struct {
	Key       string `json:"key"`
	UploadURL string `json:"upload_url"`
	PublicURL string `json:"public_url"`
}

type FeedResponse struct {
	Posts []*models.Post `json:"posts"`
}

type CreatePostRequest struct {
	Content   string               `json:"content"`
	IsMiracle bool                 `json:"is_miracle"`
	Tier      models.PromotionTier `json:"tier,omitempty"`
}

type PostRequest struct {
	PostID string `json:"post_id"`
}

type PostResponse struct {
	Post *models.Post `json:"post"`
}

type InteractResponse struct {
	PostID string                 `json:"post_id"`
	Kind   models.InteractionKind `json:"kind"`
	Count  int64                  `json:"count"`
}

type AddCommentRequest struct {
	PostID  string `json:"post_id"`
	Content string `json:"content"`
}

type CommentResponse struct {
	Comment *models.Comment `json:"comment"`
}

type BeginTitheRequest struct {
	// Amount is in minor units (cents).
	Amount int64                `json:"amount"`
	Method models.PaymentMethod `json:"method"`
	// Token is the card payment-method id. PayPal ignores it.
	Token string `json:"token,omitempty"`
}

type CompleteTitheRequest struct {
	Method    models.PaymentMethod `json:"method"`
	Reference string               `json:"reference"`
}

type TitheResponse struct {
	Reference   string        `json:"reference"`
	Status      string        `json:"status"`
	ApprovalURL string        `json:"approval_url,omitempty"`
	Tithe       *models.Tithe `json:"tithe,omitempty"`
	Upgraded    bool          `json:"upgraded"`
	Premium     bool          `json:"premium"`
}

type TitheHistoryResponse struct {
	Tithes []*models.Tithe `json:"tithes"`
}

// GuideRequest picks the tradition and language of a daily message. Empty
// fields default to the caller's profile.
type GuideRequest struct {
	Religion models.Religion `json:"religion,omitempty"`
	Language models.Language `json:"language,omitempty"`
}

type TranslateRequest struct {
	Text   string          `json:"text"`
	Target models.Language `json:"target"`
}

type ChatTurn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

type ChatRequest struct {
	Message string     `json:"message"`
	History []ChatTurn `json:"history,omitempty"`
}

type TextResponse struct {
	Text string `json:"text"`
}
