package grpc

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/praylink/internal/common"
	"github.com/dmitrijs2005/praylink/internal/logging"
	"github.com/dmitrijs2005/praylink/internal/models"
	"github.com/dmitrijs2005/praylink/internal/rpc"
	"github.com/dmitrijs2005/praylink/internal/server/guide"
	"github.com/dmitrijs2005/praylink/internal/server/payments"
	"github.com/dmitrijs2005/praylink/internal/server/services"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ---- fakes ----

type fakeUser struct {
	user    *models.User
	tokens  *services.TokenPair
	err     error
	regIn   services.RegisterParams
	circle  []string
	inCirc  bool
	profile *models.User
}

func (f *fakeUser) Register(ctx context.Context, p services.RegisterParams) (*models.User, *services.TokenPair, error) {
	f.regIn = p
	return f.user, f.tokens, f.err
}
func (f *fakeUser) Login(ctx context.Context, email, password string) (*models.User, *services.TokenPair, error) {
	return f.user, f.tokens, f.err
}
func (f *fakeUser) RefreshToken(ctx context.Context, refresh string) (*services.TokenPair, error) {
	return f.tokens, f.err
}
func (f *fakeUser) Logout(ctx context.Context, refresh string) error { return f.err }
func (f *fakeUser) Profile(ctx context.Context, userID string) (*models.User, error) {
	if f.profile != nil {
		return f.profile, nil
	}
	return f.user, f.err
}
func (f *fakeUser) UpdateProfile(ctx context.Context, userID string, upd models.ProfileUpdate) (*models.User, error) {
	return f.user, f.err
}
func (f *fakeUser) ToggleCircle(ctx context.Context, userID, targetID string) (bool, []string, error) {
	return f.inCirc, f.circle, f.err
}

type fakeFeed struct {
	posts  []*models.Post
	post   *models.Post
	in     services.NewPost
	kind   models.InteractionKind
	count  int64
	err    error
	viewer string
}

func (f *fakeFeed) Feed(ctx context.Context, viewerID string) ([]*models.Post, error) {
	f.viewer = viewerID
	return f.posts, f.err
}
func (f *fakeFeed) CreatePost(ctx context.Context, authorID string, in services.NewPost) (*models.Post, error) {
	f.in = in
	return f.post, f.err
}
func (f *fakeFeed) Interact(ctx context.Context, postID string) (models.InteractionKind, int64, error) {
	return f.kind, f.count, f.err
}
func (f *fakeFeed) AddComment(ctx context.Context, postID, authorID, content string) (*models.Comment, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.Comment{PostID: postID, UserID: authorID, Content: content}, nil
}
func (f *fakeFeed) MarkAnswered(ctx context.Context, postID, userID string) (*models.Post, error) {
	return f.post, f.err
}

type fakeTithes struct {
	res *services.TitheResult
	err error
}

func (f *fakeTithes) Begin(ctx context.Context, userID string, amount int64, method models.PaymentMethod, token string) (*services.TitheResult, error) {
	return f.res, f.err
}
func (f *fakeTithes) Complete(ctx context.Context, userID string, method models.PaymentMethod, ref string) (*services.TitheResult, error) {
	return f.res, f.err
}
func (f *fakeTithes) History(ctx context.Context, userID string) ([]*models.Tithe, error) {
	return nil, f.err
}

type fakeGuide struct {
	religion models.Religion
	lang     models.Language
	history  []guide.Turn
	err      error
}

func (f *fakeGuide) DailyWisdom(ctx context.Context, r models.Religion, l models.Language) string {
	f.religion, f.lang = r, l
	return "wisdom"
}
func (f *fakeGuide) DailyInspiration(ctx context.Context, r models.Religion, l models.Language) string {
	f.religion, f.lang = r, l
	return "inspiration"
}
func (f *fakeGuide) Translate(ctx context.Context, text string, target models.Language) string {
	return text + "@" + string(target)
}
func (f *fakeGuide) Chat(ctx context.Context, viewer *models.User, msg string, history []guide.Turn) (string, error) {
	f.history = history
	if f.err != nil {
		return "", f.err
	}
	return "reply", nil
}

// ---- helpers ----

func newServer(svc Services) *GRPCServer {
	s := NewGRPCServer("127.0.0.1:0", logging.Nop(), svc, "k")
	return s
}

func authed(userID string) context.Context {
	return context.WithValue(context.Background(), userIDKey, userID)
}

// ---- tests ----

func TestPing_OK(t *testing.T) {
	s := newServer(Services{})
	resp, err := s.Ping(context.Background(), &rpc.Empty{})
	if err != nil {
		t.Fatalf("Ping error: %v", err)
	}
	if resp.Status != "OK" {
		t.Fatalf("unexpected status: %q", resp.Status)
	}
}

func TestRegister_PassesFormAndTokens(t *testing.T) {
	u := &fakeUser{
		user:   &models.User{ID: "u1"},
		tokens: &services.TokenPair{AccessToken: "a", RefreshToken: "r"},
	}
	s := newServer(Services{Users: u})

	resp, err := s.Register(context.Background(), &rpc.RegisterRequest{
		Email: "a@b.c", Password: "pw", Religion: models.Hinduism, Gender: "F",
	})
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if resp.User.ID != "u1" || resp.AccessToken != "a" || resp.RefreshToken != "r" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if u.regIn.Religion != models.Hinduism || u.regIn.Gender != "F" {
		t.Fatalf("form not forwarded: %+v", u.regIn)
	}
}

func TestRegister_Duplicate(t *testing.T) {
	s := newServer(Services{Users: &fakeUser{err: common.ErrorAlreadyExists}})

	_, err := s.Register(context.Background(), &rpc.RegisterRequest{})
	if status.Code(err) != codes.AlreadyExists {
		t.Fatalf("expected AlreadyExists, got %v", err)
	}
}

func TestLogin_Unauthorized(t *testing.T) {
	s := newServer(Services{Users: &fakeUser{err: common.ErrorUnauthorized}})

	_, err := s.Login(context.Background(), &rpc.LoginRequest{Email: "x", Password: "y"})
	if status.Code(err) != codes.Unauthenticated {
		t.Fatalf("expected Unauthenticated, got %v", err)
	}
}

func TestRefreshToken_OK(t *testing.T) {
	u := &fakeUser{tokens: &services.TokenPair{AccessToken: "a", RefreshToken: "r"}}
	s := newServer(Services{Users: u})

	resp, err := s.RefreshToken(context.Background(), &rpc.RefreshTokenRequest{RefreshToken: "r0"})
	if err != nil {
		t.Fatalf("RefreshToken error: %v", err)
	}
	if resp.AccessToken != "a" || resp.RefreshToken != "r" {
		t.Fatalf("unexpected tokens: %+v", resp)
	}
}

func TestProtectedHandlers_RequireUser(t *testing.T) {
	s := newServer(Services{Users: &fakeUser{}, Feed: &fakeFeed{}, Tithes: &fakeTithes{}, Guide: &fakeGuide{}})
	ctx := context.Background()

	calls := map[string]func() error{
		"ListFeed":   func() error { _, err := s.ListFeed(ctx, &rpc.Empty{}); return err },
		"CreatePost": func() error { _, err := s.CreatePost(ctx, &rpc.CreatePostRequest{}); return err },
		"Interact":   func() error { _, err := s.Interact(ctx, &rpc.PostRequest{}); return err },
		"BeginTithe": func() error { _, err := s.BeginTithe(ctx, &rpc.BeginTitheRequest{}); return err },
		"Chat":       func() error { _, err := s.Chat(ctx, &rpc.ChatRequest{}); return err },
		"Translate":  func() error { _, err := s.Translate(ctx, &rpc.TranslateRequest{}); return err },
		"GetProfile": func() error { _, err := s.GetProfile(ctx, &rpc.Empty{}); return err },
	}
	for name, call := range calls {
		if status.Code(call()) != codes.Unauthenticated {
			t.Errorf("%s: expected Unauthenticated", name)
		}
	}
}

func TestListFeed_UsesCaller(t *testing.T) {
	f := &fakeFeed{posts: []*models.Post{{ID: "p1"}}}
	s := newServer(Services{Feed: f})

	resp, err := s.ListFeed(authed("u7"), &rpc.Empty{})
	if err != nil {
		t.Fatalf("ListFeed error: %v", err)
	}
	if len(resp.Posts) != 1 || f.viewer != "u7" {
		t.Fatalf("unexpected: posts=%d viewer=%q", len(resp.Posts), f.viewer)
	}
}

func TestCreatePost_ValidationMapsToInvalidArgument(t *testing.T) {
	f := &fakeFeed{err: common.ErrorValidation}
	s := newServer(Services{Feed: f})

	_, err := s.CreatePost(authed("u1"), &rpc.CreatePostRequest{Content: "x", Tier: models.TierGold})
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("expected InvalidArgument, got %v", err)
	}
	if f.in.Tier != models.TierGold {
		t.Fatalf("tier not forwarded: %+v", f.in)
	}
}

func TestInteract_ReturnsCounter(t *testing.T) {
	s := newServer(Services{Feed: &fakeFeed{kind: models.InteractionPray, count: 13}})

	resp, err := s.Interact(authed("u1"), &rpc.PostRequest{PostID: "p1"})
	if err != nil {
		t.Fatalf("Interact error: %v", err)
	}
	if resp.PostID != "p1" || resp.Kind != models.InteractionPray || resp.Count != 13 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestMarkAnswered_Forbidden(t *testing.T) {
	s := newServer(Services{Feed: &fakeFeed{err: common.ErrorForbidden}})

	_, err := s.MarkAnswered(authed("u1"), &rpc.PostRequest{PostID: "p1"})
	if status.Code(err) != codes.PermissionDenied {
		t.Fatalf("expected PermissionDenied, got %v", err)
	}
}

func TestBeginTithe(t *testing.T) {
	tr := &fakeTithes{res: &services.TitheResult{Reference: "ORD", Status: payments.StatusPending, ApprovalURL: "https://x"}}
	s := newServer(Services{Tithes: tr})

	resp, err := s.BeginTithe(authed("u1"), &rpc.BeginTitheRequest{Amount: 100, Method: models.PaymentPayPal})
	if err != nil {
		t.Fatalf("BeginTithe error: %v", err)
	}
	if resp.Status != "pending" || resp.ApprovalURL != "https://x" {
		t.Fatalf("unexpected response: %+v", resp)
	}

	tr.err = common.ErrPaymentFailed
	_, err = s.BeginTithe(authed("u1"), &rpc.BeginTitheRequest{Amount: 100, Method: models.PaymentPayPal})
	if status.Code(err) != codes.FailedPrecondition {
		t.Fatalf("expected FailedPrecondition, got %v", err)
	}
}

func TestDailyWisdom_DefaultsToProfile(t *testing.T) {
	g := &fakeGuide{}
	u := &fakeUser{user: &models.User{ID: "u1", Religion: models.Judaism, Language: models.Hebrew}}
	s := newServer(Services{Users: u, Guide: g})

	resp, err := s.DailyWisdom(authed("u1"), &rpc.GuideRequest{})
	if err != nil {
		t.Fatalf("DailyWisdom error: %v", err)
	}
	if resp.Text != "wisdom" || g.religion != models.Judaism || g.lang != models.Hebrew {
		t.Fatalf("unexpected: %q %s %s", resp.Text, g.religion, g.lang)
	}

	_, err = s.DailyInspiration(authed("u1"), &rpc.GuideRequest{Religion: models.Islam, Language: models.Arabic})
	if err != nil {
		t.Fatalf("DailyInspiration error: %v", err)
	}
	if g.religion != models.Islam || g.lang != models.Arabic {
		t.Fatalf("explicit target ignored: %s %s", g.religion, g.lang)
	}
}

func TestChat_PremiumRequired(t *testing.T) {
	g := &fakeGuide{err: common.ErrPremiumRequired}
	u := &fakeUser{user: &models.User{ID: "u1"}}
	s := newServer(Services{Users: u, Guide: g})

	_, err := s.Chat(authed("u1"), &rpc.ChatRequest{
		Message: "hi",
		History: []rpc.ChatTurn{{Role: "user", Text: "a"}, {Role: "model", Text: "b"}},
	})
	if status.Code(err) != codes.PermissionDenied {
		t.Fatalf("expected PermissionDenied, got %v", err)
	}
	if len(g.history) != 2 || g.history[1].Role != "model" {
		t.Fatalf("history not forwarded: %+v", g.history)
	}
}

func TestAvatarUploadURL_Error(t *testing.T) {
	s := newServer(Services{Avatars: avatarFunc(func(ctx context.Context, id string) (*services.AvatarUpload, error) {
		return nil, errors.New("no bucket")
	})})

	_, err := s.AvatarUploadURL(authed("u1"), &rpc.Empty{})
	if status.Code(err) != codes.Internal {
		t.Fatalf("expected Internal, got %v", err)
	}
}

type avatarFunc func(ctx context.Context, userID string) (*services.AvatarUpload, error)

func (f avatarFunc) UploadURL(ctx context.Context, userID string) (*services.AvatarUpload, error) {
	return f(ctx, userID)
}
