// Package interfaces defines service contracts for Folium
package interfaces

import (
	"context"

	"github.com/folium-app/folium/internal/models"
)

// StorageManager coordinates the storage backends.
type StorageManager interface {
	UserStore() UserStore
	PositionStore() PositionStore
	Close() error
}

// UserStore manages user accounts.
type UserStore interface {
	Get(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Save(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error
	Close() error
}

// PositionStore manages portfolio positions. Each call is atomic; positions
// are independently owned so no multi-position transaction exists.
type PositionStore interface {
	// Get retrieves a position by id regardless of owner. Returns
	// models.ErrPositionNotFound when absent.
	Get(ctx context.Context, id string) (*models.Position, error)

	// ListByUser returns all positions for a user, most recently created first.
	ListByUser(ctx context.Context, userID string) ([]*models.Position, error)

	Create(ctx context.Context, position *models.Position) error
	Update(ctx context.Context, position *models.Position) error
	Delete(ctx context.Context, id string) error
	Close() error
}
