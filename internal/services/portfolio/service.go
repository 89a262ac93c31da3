// Package portfolio turns stored positions into financial metrics
package portfolio

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/folium-app/folium/internal/common"
	"github.com/folium-app/folium/internal/interfaces"
	"github.com/folium-app/folium/internal/models"
)

// Service implements PortfolioService. Prices come from the asset service's
// cached snapshot; a position whose symbol cannot be priced is valued at 0
// rather than failing the whole read.
type Service struct {
	positions interfaces.PositionStore
	assets    interfaces.AssetService
	logger    *common.Logger
	now       func() time.Time // injectable clock for testing
}

// NewService creates a new portfolio service.
func NewService(positions interfaces.PositionStore, assets interfaces.AssetService, logger *common.Logger) *Service {
	return &Service{
		positions: positions,
		assets:    assets,
		logger:    logger,
		now:       time.Now,
	}
}

// AddPosition resolves the symbol for display name and type, then persists a
// new position. An unknown symbol falls back to the raw symbol as name with
// no type; the position is still created so the feed being down never blocks
// a write.
func (s *Service) AddPosition(ctx context.Context, userID string, req interfaces.CreatePositionRequest) (*models.Position, error) {
	symbol := strings.ToUpper(strings.TrimSpace(req.Symbol))

	name := symbol
	assetType := ""
	if asset, ok := s.assets.GetBySymbol(ctx, symbol); ok {
		name = asset.Name
		assetType = asset.Type
	}

	now := s.now()
	position := &models.Position{
		ID:            uuid.New().String(),
		UserID:        userID,
		Symbol:        symbol,
		Name:          name,
		PurchasePrice: req.PurchasePrice,
		Quantity:      req.Quantity,
		AssetType:     assetType,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.positions.Create(ctx, position); err != nil {
		return nil, fmt.Errorf("failed to create position: %w", err)
	}

	s.logger.Info().
		Str("user_id", userID).
		Str("symbol", symbol).
		Float64("quantity", req.Quantity).
		Msg("Position created")

	return position, nil
}

// ListPositions returns the user's positions valued at current prices, most
// recently created first.
func (s *Service) ListPositions(ctx context.Context, userID string) ([]models.ValuedPosition, error) {
	stored, err := s.positions.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list positions: %w", err)
	}

	valued := make([]models.ValuedPosition, 0, len(stored))
	for _, p := range stored {
		price := s.assets.GetCurrentPrice(ctx, p.Symbol)
		valued = append(valued, p.Valued(price))
	}
	return valued, nil
}

// getOwned fetches a position and enforces ownership.
func (s *Service) getOwned(ctx context.Context, id, userID string) (*models.Position, error) {
	position, err := s.positions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if position.UserID != userID {
		return nil, models.ErrPositionForbidden
	}
	return position, nil
}

// GetPosition returns one valued position after ownership checks.
func (s *Service) GetPosition(ctx context.Context, id, userID string) (*models.ValuedPosition, error) {
	position, err := s.getOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	price := s.assets.GetCurrentPrice(ctx, position.Symbol)
	valued := position.Valued(price)
	return &valued, nil
}

// UpdatePosition applies a partial update after ownership checks. When the
// symbol changes, name and type are re-resolved — but only overwritten when
// the new symbol resolves to a known asset; an unresolved symbol leaves
// name/type as they were.
func (s *Service) UpdatePosition(ctx context.Context, id, userID string, req interfaces.UpdatePositionRequest) (*models.Position, error) {
	position, err := s.getOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if req.Symbol != nil {
		symbol := strings.ToUpper(strings.TrimSpace(*req.Symbol))
		if symbol != position.Symbol {
			if asset, ok := s.assets.GetBySymbol(ctx, symbol); ok {
				position.Name = asset.Name
				position.AssetType = asset.Type
			}
			position.Symbol = symbol
		}
	}
	if req.PurchasePrice != nil {
		position.PurchasePrice = *req.PurchasePrice
	}
	if req.Quantity != nil {
		position.Quantity = *req.Quantity
	}
	position.UpdatedAt = s.now()

	if err := s.positions.Update(ctx, position); err != nil {
		return nil, fmt.Errorf("failed to update position: %w", err)
	}

	return position, nil
}

// RemovePosition deletes a position after ownership checks.
func (s *Service) RemovePosition(ctx context.Context, id, userID string) error {
	if _, err := s.getOwned(ctx, id, userID); err != nil {
		return err
	}
	if err := s.positions.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete position: %w", err)
	}

	s.logger.Info().Str("user_id", userID).Str("position_id", id).Msg("Position deleted")
	return nil
}

// GetSummary aggregates the user's valued positions into totals and an
// allocation breakdown.
func (s *Service) GetSummary(ctx context.Context, userID string) (*models.PortfolioSummary, error) {
	items, err := s.ListPositions(ctx, userID)
	if err != nil {
		return nil, err
	}
	return models.Summarize(items), nil
}

// Ensure Service implements PortfolioService
var _ interfaces.PortfolioService = (*Service)(nil)
