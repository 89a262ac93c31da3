// Package portfoliodb implements PositionStore using BadgerHold.
package portfoliodb

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/timshannon/badgerhold/v4"

	"github.com/folium-app/folium/internal/common"
	"github.com/folium-app/folium/internal/interfaces"
	"github.com/folium-app/folium/internal/models"
)

// Store implements interfaces.PositionStore using BadgerHold, keyed by
// position ID.
type Store struct {
	db     *badgerhold.Store
	logger *common.Logger
}

// NewStore creates a new PositionStore backed by BadgerHold.
func NewStore(logger *common.Logger, path string) (*Store, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create portfoliodb path %s: %w", path, err)
	}
	opts := badgerhold.DefaultOptions
	opts.Dir = path
	opts.ValueDir = path
	opts.Logger = nil
	db, err := badgerhold.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open portfoliodb at %s: %w", path, err)
	}
	logger.Info().Str("path", path).Msg("PortfolioDB opened")
	return &Store{db: db, logger: logger}, nil
}

func (s *Store) Get(_ context.Context, id string) (*models.Position, error) {
	var position models.Position
	if err := s.db.Get(id, &position); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, models.ErrPositionNotFound
		}
		return nil, fmt.Errorf("failed to get position '%s': %w", id, err)
	}
	return &position, nil
}

func (s *Store) ListByUser(_ context.Context, userID string) ([]*models.Position, error) {
	var found []models.Position
	if err := s.db.Find(&found, badgerhold.Where("UserID").Eq(userID)); err != nil {
		return nil, fmt.Errorf("failed to list positions for user '%s': %w", userID, err)
	}

	// Most recently created first
	sort.Slice(found, func(i, j int) bool {
		return found[i].CreatedAt.After(found[j].CreatedAt)
	})

	result := make([]*models.Position, len(found))
	for i := range found {
		result[i] = &found[i]
	}
	return result, nil
}

func (s *Store) Create(_ context.Context, position *models.Position) error {
	if err := s.db.Insert(position.ID, position); err != nil {
		return fmt.Errorf("failed to create position '%s': %w", position.ID, err)
	}
	s.logger.Debug().Str("position_id", position.ID).Str("symbol", position.Symbol).Msg("Position created")
	return nil
}

func (s *Store) Update(_ context.Context, position *models.Position) error {
	if err := s.db.Update(position.ID, position); err != nil {
		if err == badgerhold.ErrNotFound {
			return models.ErrPositionNotFound
		}
		return fmt.Errorf("failed to update position '%s': %w", position.ID, err)
	}
	return nil
}

func (s *Store) Delete(_ context.Context, id string) error {
	if err := s.db.Delete(id, models.Position{}); err != nil && err != badgerhold.ErrNotFound {
		return fmt.Errorf("failed to delete position '%s': %w", id, err)
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

// Ensure Store implements PositionStore
var _ interfaces.PositionStore = (*Store)(nil)
