// Package userdb implements UserStore using BadgerHold.
package userdb

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/timshannon/badgerhold/v4"

	"github.com/folium-app/folium/internal/common"
	"github.com/folium-app/folium/internal/interfaces"
	"github.com/folium-app/folium/internal/models"
)

// Store implements interfaces.UserStore using BadgerHold, keyed by user ID.
type Store struct {
	db     *badgerhold.Store
	logger *common.Logger
}

// NewStore creates a new UserStore backed by BadgerHold.
func NewStore(logger *common.Logger, path string) (*Store, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create userdb path %s: %w", path, err)
	}
	opts := badgerhold.DefaultOptions
	opts.Dir = path
	opts.ValueDir = path
	opts.Logger = nil
	db, err := badgerhold.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open userdb at %s: %w", path, err)
	}
	logger.Info().Str("path", path).Msg("UserDB opened")
	return &Store{db: db, logger: logger}, nil
}

func (s *Store) Get(_ context.Context, id string) (*models.User, error) {
	var user models.User
	if err := s.db.Get(id, &user); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, models.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user '%s': %w", id, err)
	}
	return &user, nil
}

func (s *Store) GetByUsername(_ context.Context, username string) (*models.User, error) {
	var users []models.User
	if err := s.db.Find(&users, badgerhold.Where("Username").Eq(username)); err != nil {
		return nil, fmt.Errorf("failed to find user by username: %w", err)
	}
	if len(users) == 0 {
		return nil, models.ErrUserNotFound
	}
	return &users[0], nil
}

func (s *Store) GetByEmail(_ context.Context, email string) (*models.User, error) {
	var users []models.User
	if err := s.db.Find(&users, badgerhold.Where("Email").Eq(email)); err != nil {
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	if len(users) == 0 {
		return nil, models.ErrUserNotFound
	}
	return &users[0], nil
}

func (s *Store) Save(_ context.Context, user *models.User) error {
	now := time.Now()
	var existing models.User
	if err := s.db.Get(user.ID, &existing); err == nil {
		user.CreatedAt = existing.CreatedAt
	} else if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.ModifiedAt = now

	if err := s.db.Upsert(user.ID, user); err != nil {
		return fmt.Errorf("failed to save user '%s': %w", user.ID, err)
	}
	s.logger.Debug().Str("user_id", user.ID).Msg("User saved")
	return nil
}

func (s *Store) Delete(_ context.Context, id string) error {
	if err := s.db.Delete(id, models.User{}); err != nil && err != badgerhold.ErrNotFound {
		return fmt.Errorf("failed to delete user '%s': %w", id, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Ensure Store implements UserStore
var _ interfaces.UserStore = (*Store)(nil)
