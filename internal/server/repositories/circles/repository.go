// Package circles stores each user's personal circle of followed members.
package circles

import "context"

type Repository interface {
	List(ctx context.Context, userID string) ([]string, error)
	Contains(ctx context.Context, userID, memberID string) (bool, error)
	Add(ctx context.Context, userID, memberID string) error
	Remove(ctx context.Context, userID, memberID string) error
}
