// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login, profile edits and circles,
// and issues JWT access tokens plus server-stored refresh tokens.
package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/praylink/internal/common"
	"github.com/dmitrijs2005/praylink/internal/dbx"
	"github.com/dmitrijs2005/praylink/internal/models"
	"github.com/dmitrijs2005/praylink/internal/server/auth"
	"github.com/dmitrijs2005/praylink/internal/server/config"
	"github.com/dmitrijs2005/praylink/internal/server/repositories/repomanager"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// RegisterParams is the registration form.
type RegisterParams struct {
	Email       string
	Password    string
	FirstName   string
	LastName    string
	DateOfBirth string
	Nationality string
	Gender      string
	Religion    models.Religion
	Visibility  models.Visibility
	Language    models.Language
}

type UserService struct {
	repos                        repomanager.RepositoryManager
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
	bcryptCost                   int

	dummyOnce sync.Once
	dummyHash []byte
}

func NewUserService(m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		repos:                        m,
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
		bcryptCost:                   bcrypt.DefaultCost,
	}
}

// Register validates the form, stores the profile and signs the user in.
func (s *UserService) Register(ctx context.Context, p RegisterParams) (*models.User, *TokenPair, error) {
	if p.Visibility == "" {
		p.Visibility = models.VisibilityPublic
	}
	if p.Language == "" {
		p.Language = models.English
	}
	if err := validateRegistration(p); err != nil {
		return nil, nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), s.bcryptCost)
	if err != nil {
		return nil, nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Email:        strings.ToLower(strings.TrimSpace(p.Email)),
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(p.FirstName),
		LastName:     strings.TrimSpace(p.LastName),
		DateOfBirth:  p.DateOfBirth,
		Nationality:  p.Nationality,
		Gender:       p.Gender,
		Religion:     p.Religion,
		Visibility:   p.Visibility,
		Language:     p.Language,
	}
	user.AvatarURL = defaultAvatarURL(user)

	var pair *TokenPair
	err = s.repos.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repos.Users(tx).Create(ctx, user); err != nil {
			return err
		}
		var genErr error
		pair, genErr = s.generateTokenPair(ctx, user.ID, tx)
		return genErr
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, nil, common.ErrorAlreadyExists
		}
		return nil, nil, fmt.Errorf("error creating user: %w", err)
	}

	user.CircleIDs = []string{}
	return user, pair, nil
}

func validateRegistration(p RegisterParams) error {
	if _, err := mail.ParseAddress(strings.TrimSpace(p.Email)); err != nil {
		return fmt.Errorf("%w: invalid email", common.ErrorValidation)
	}
	if len(p.Password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", common.ErrorValidation, minPasswordLength)
	}
	if strings.TrimSpace(p.FirstName) == "" || strings.TrimSpace(p.LastName) == "" {
		return fmt.Errorf("%w: first and last name are required", common.ErrorValidation)
	}
	return validateChoices(&p.Religion, &p.Visibility, &p.Language)
}

func validateChoices(r *models.Religion, v *models.Visibility, l *models.Language) error {
	if r != nil && !r.Valid() {
		return fmt.Errorf("%w: unknown religion %q", common.ErrorValidation, *r)
	}
	if v != nil && !v.Valid() {
		return fmt.Errorf("%w: unknown visibility %q", common.ErrorValidation, *v)
	}
	if l != nil && !l.Valid() {
		return fmt.Errorf("%w: unknown language %q", common.ErrorValidation, *l)
	}
	return nil
}

func defaultAvatarURL(u *models.User) string {
	q := url.Values{}
	q.Set("name", u.FirstName+" "+u.LastName)
	q.Set("background", "random")
	return "https://ui-avatars.com/api/?" + q.Encode()
}

// Login checks the password and mints a new TokenPair. Unknown emails and
// wrong passwords are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, *TokenPair, error) {
	user, err := s.repos.Users(s.repos.DB()).GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// burn the same bcrypt time as a real comparison
			_ = bcrypt.CompareHashAndPassword(s.getDummyHash(), []byte(password))
			return nil, nil, common.ErrorUnauthorized
		}
		return nil, nil, common.ErrorInternal
	}

	if bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)) != nil {
		return nil, nil, common.ErrorUnauthorized
	}

	if user.CircleIDs, err = s.repos.Circles(s.repos.DB()).List(ctx, user.ID); err != nil {
		return nil, nil, common.ErrorInternal
	}

	pair, err := s.generateTokenPair(ctx, user.ID, s.repos.DB())
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// RefreshToken validates a refresh token, rotates it transactionally, and
// returns a fresh TokenPair. Expired tokens yield ErrRefreshTokenExpired.
func (s *UserService) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	token, err := s.repos.RefreshTokens(s.repos.DB()).Find(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error searching refresh token: %w", err)
	}
	if token.Expires.Before(time.Now()) {
		return nil, common.ErrRefreshTokenExpired
	}

	var pair *TokenPair
	if err := s.repos.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repos.RefreshTokens(tx).Delete(ctx, refreshToken); err != nil {
			return fmt.Errorf("error deleting refresh token: %w", err)
		}
		var genErr error
		pair, genErr = s.generateTokenPair(ctx, token.UserID, tx)
		return genErr
	}); err != nil {
		return nil, err
	}
	return pair, nil
}

// Logout revokes the refresh token. Unknown tokens are ignored.
func (s *UserService) Logout(ctx context.Context, refreshToken string) error {
	if err := s.repos.RefreshTokens(s.repos.DB()).Delete(ctx, refreshToken); err != nil {
		return fmt.Errorf("error deleting refresh token: %w", err)
	}
	return nil
}

// Profile returns the user with circle ids.
func (s *UserService) Profile(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.repos.Users(s.repos.DB()).GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.CircleIDs, err = s.repos.Circles(s.repos.DB()).List(ctx, userID); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateProfile applies the set fields of upd and returns the stored result.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, upd models.ProfileUpdate) (*models.User, error) {
	if err := validateChoices(upd.Religion, upd.Visibility, upd.Language); err != nil {
		return nil, err
	}
	if (upd.FirstName != nil && strings.TrimSpace(*upd.FirstName) == "") ||
		(upd.LastName != nil && strings.TrimSpace(*upd.LastName) == "") {
		return nil, fmt.Errorf("%w: names cannot be blank", common.ErrorValidation)
	}

	var user *models.User
	err := s.repos.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		repo := s.repos.Users(tx)
		if user, err = repo.GetByID(ctx, userID); err != nil {
			return err
		}
		upd.Apply(user)
		return repo.Update(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	if user.CircleIDs, err = s.repos.Circles(s.repos.DB()).List(ctx, userID); err != nil {
		return nil, err
	}
	return user, nil
}

// ToggleCircle adds targetID to the user's circle or removes it if present.
// It returns the resulting membership and the full circle. Targeting
// oneself changes nothing.
func (s *UserService) ToggleCircle(ctx context.Context, userID, targetID string) (bool, []string, error) {
	var member bool
	var ids []string

	err := s.repos.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		circles := s.repos.Circles(tx)

		if targetID != userID {
			if _, err := s.repos.Users(tx).GetByID(ctx, targetID); err != nil {
				return err
			}
			present, err := circles.Contains(ctx, userID, targetID)
			if err != nil {
				return err
			}
			if present {
				err = circles.Remove(ctx, userID, targetID)
			} else {
				err = circles.Add(ctx, userID, targetID)
			}
			if err != nil {
				return err
			}
			member = !present
		}

		var err error
		ids, err = circles.List(ctx, userID)
		return err
	})
	if err != nil {
		return false, nil, err
	}
	return member, ids, nil
}

// --- helpers below ---

func (s *UserService) getDummyHash() []byte {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword(common.GenerateRandByteArray(16), s.bcryptCost)
	})
	return s.dummyHash
}

func (s *UserService) generateAccessToken(userID string) (string, error) {
	return auth.GenerateToken(userID, s.jwtSecret, s.accessTokenValidityDuration)
}

func (s *UserService) generateRefreshToken() (string, error) {
	return common.MakeRandHexString(32)
}

func (s *UserService) generateTokenPair(ctx context.Context, userID string, tx dbx.DBTX) (*TokenPair, error) {
	access, err := s.generateAccessToken(userID)
	if err != nil {
		return nil, common.ErrorInternal
	}
	refresh, err := s.generateRefreshToken()
	if err != nil {
		return nil, common.ErrorInternal
	}
	if err := s.repos.RefreshTokens(tx).Create(ctx, userID, refresh, s.refreshTokenValidityDuration); err != nil {
		return nil, common.ErrorInternal
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
