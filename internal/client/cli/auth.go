package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/praylink/internal/client/client"
	"github.com/dmitrijs2005/praylink/internal/client/session"
	"github.com/dmitrijs2005/praylink/internal/common"
	"github.com/dmitrijs2005/praylink/internal/models"
	"github.com/dmitrijs2005/praylink/internal/rpc"
)

// Indirections over the interactive input helpers, swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
	getYesNo      = GetYesNo
)

func (a *App) ask(prompt string) (string, error) {
	return getSimpleText(a.reader, prompt, a.out)
}

// askChoice shows numbered options and returns the chosen one. An empty
// answer picks def.
func askChoice[T ~string](a *App, prompt string, options []T, def T) (T, error) {
	var b strings.Builder
	b.WriteString(prompt)
	for i, o := range options {
		fmt.Fprintf(&b, "\n  %d) %s", i+1, o)
	}
	ans, err := a.ask(b.String())
	if err != nil {
		return "", err
	}
	if ans == "" {
		return def, nil
	}
	var n int
	if _, err := fmt.Sscan(ans, &n); err == nil && n >= 1 && n <= len(options) {
		return options[n-1], nil
	}
	for _, o := range options {
		if strings.EqualFold(string(o), ans) {
			return o, nil
		}
	}
	return "", fmt.Errorf("%w: unknown choice %q", common.ErrorValidation, ans)
}

// Register collects the profile and opens a session for the new member.
func (a *App) Register(ctx context.Context) error {
	email, err := a.ask("Enter email")
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	req := &rpc.RegisterRequest{Email: email, Password: string(password)}
	if req.FirstName, err = a.ask("First name"); err != nil {
		return err
	}
	if req.LastName, err = a.ask("Last name"); err != nil {
		return err
	}
	if req.Religion, err = askChoice(a, "Religion", models.Religions(), models.OtherFaith); err != nil {
		return err
	}
	if req.Language, err = askChoice(a, "Language", models.SupportedLanguages(), models.English); err != nil {
		return err
	}
	sameOnly, err := getYesNo(a.reader, "Show your posts to your own religion only?", a.out)
	if err != nil {
		return err
	}
	req.Visibility = models.VisibilityPublic
	if sameOnly {
		req.Visibility = models.VisibilitySameReligion
	}
	if req.DateOfBirth, err = a.ask("Date of birth (YYYY-MM-DD, optional)"); err != nil {
		return err
	}
	if req.Nationality, err = a.ask("Nationality (optional)"); err != nil {
		return err
	}
	if req.Gender, err = a.ask("Gender (optional)"); err != nil {
		return err
	}

	s, err := session.Register(ctx, a.remote, req, a.sessionOptions())
	if err != nil {
		return err
	}
	a.setSession(s)
	a.setMode(ctx, ModeOnline)
	fmt.Fprintf(a.out, "Welcome, %s!\n", s.Viewer().Name())
	return nil
}

// Login prompts for credentials, suggesting the last email used on this
// device.
func (a *App) Login(ctx context.Context) error {
	var last string
	if a.cache != nil {
		last = session.LastEmail(ctx, a.cache.Metadata)
	}
	prompt := "Enter email"
	if last != "" {
		prompt = fmt.Sprintf("Enter email [%s]", last)
	}
	email, err := a.ask(prompt)
	if err != nil {
		return err
	}
	if email == "" {
		email = last
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	s, err := session.Login(ctx, a.remote, email, string(password), a.sessionOptions())
	if err != nil {
		if errors.Is(err, client.ErrUnavailable) {
			a.setMode(ctx, ModeOffline)
			return fmt.Errorf("server unavailable, try again later: %w", err)
		}
		if errors.Is(err, client.ErrUnauthorized) {
			return errors.New("invalid email or password")
		}
		return err
	}

	a.setSession(s)
	a.setMode(ctx, ModeOnline)
	fmt.Fprintf(a.out, "Welcome back, %s!\n", s.Viewer().Name())
	return nil
}

// Logout ends the session and forgets the cached feed.
func (a *App) Logout(ctx context.Context) error {
	s := a.current()
	if s == nil {
		return nil
	}
	a.setSession(nil)
	if err := s.Logout(ctx); err != nil {
		a.log.Warn(ctx, "server logout failed", "error", err)
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) Profile(ctx context.Context) error {
	s := a.current()
	if s == nil {
		return session.ErrNoSession
	}
	u, err := s.RefreshProfile(ctx)
	if err != nil {
		if !errors.Is(err, client.ErrUnavailable) {
			return err
		}
		u = s.Viewer()
	}
	fmt.Fprintln(a.out, renderProfile(u))
	return nil
}

// Avatar uploads the image at args[0] and sets it as the profile picture.
func (a *App) Avatar(ctx context.Context, args []string) error {
	s := a.current()
	if s == nil {
		return session.ErrNoSession
	}
	if len(args) != 1 {
		printlnFn("Usage: avatar <image file>")
		return nil
	}
	u, err := s.UploadAvatar(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Avatar updated:", u.AvatarURL)
	return nil
}
