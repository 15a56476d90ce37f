package session

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/dmitrijs2005/praylink/internal/models"
	"github.com/dmitrijs2005/praylink/internal/netx"
)

var uploadPresigned = netx.UploadPresigned

// UploadAvatar stores the image file at path and points the profile at it.
func (s *Session) UploadAvatar(ctx context.Context, path string) (*models.User, error) {
	if s.Viewer() == nil {
		return nil, ErrNoSession
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read avatar: %w", err)
	}

	up, err := s.remote.AvatarUploadURL(ctx)
	if err != nil {
		return nil, err
	}
	if err := uploadPresigned(ctx, up.UploadURL, data, http.DetectContentType(data)); err != nil {
		return nil, err
	}

	url := up.PublicURL
	return s.UpdateProfile(ctx, models.ProfileUpdate{AvatarURL: &url})
}
