// Package storage wires the BadgerHold-backed stores together.
package storage

import (
	"fmt"

	"github.com/folium-app/folium/internal/common"
	"github.com/folium-app/folium/internal/interfaces"
	"github.com/folium-app/folium/internal/storage/portfoliodb"
	"github.com/folium-app/folium/internal/storage/userdb"
)

// Manager implements interfaces.StorageManager over the two storage areas:
// user accounts and portfolio positions.
type Manager struct {
	users     interfaces.UserStore
	positions interfaces.PositionStore
	logger    *common.Logger
}

// NewManager opens all storage areas from config.
func NewManager(logger *common.Logger, config *common.Config) (*Manager, error) {
	users, err := userdb.NewStore(logger, config.Storage.User.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open user store: %w", err)
	}

	positions, err := portfoliodb.NewStore(logger, config.Storage.Portfolio.Path)
	if err != nil {
		users.Close()
		return nil, fmt.Errorf("failed to open position store: %w", err)
	}

	return &Manager{
		users:     users,
		positions: positions,
		logger:    logger,
	}, nil
}

// UserStore returns the user account store.
func (m *Manager) UserStore() interfaces.UserStore {
	return m.users
}

// PositionStore returns the portfolio position store.
func (m *Manager) PositionStore() interfaces.PositionStore {
	return m.positions
}

// Close closes all storage areas.
func (m *Manager) Close() error {
	var firstErr error
	if err := m.users.Close(); err != nil {
		firstErr = err
	}
	if err := m.positions.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

// Ensure Manager implements StorageManager
var _ interfaces.StorageManager = (*Manager)(nil)
