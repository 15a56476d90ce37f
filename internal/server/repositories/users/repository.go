// Package users declares the profile store and its Postgres implementation.
package users

import (
	"context"

	"github.com/dmitrijs2005/praylink/internal/models"
)

type Repository interface {
	// Create stores a new profile and fills in its id and creation time.
	// A duplicate email yields common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	// Update overwrites the editable profile fields.
	Update(ctx context.Context, user *models.User) error
	SetPremium(ctx context.Context, id string, premium bool) error
}
