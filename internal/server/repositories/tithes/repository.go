// Package tithes records confirmed contributions.
package tithes

import (
	"context"

	"github.com/dmitrijs2005/praylink/internal/models"
)

type Repository interface {
	// Create records the tithe and reports whether a new row was written.
	// A tithe whose provider reference already exists is left untouched.
	Create(ctx context.Context, tithe *models.Tithe) (bool, error)
	// ListByUser returns the user's tithes, newest first.
	ListByUser(ctx context.Context, userID string) ([]*models.Tithe, error)
}
