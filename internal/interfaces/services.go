// Package interfaces defines service contracts for Folium
package interfaces

import (
	"context"

	"github.com/folium-app/folium/internal/models"
)

// AssetService serves asset data from a time-bounded cache over the external
// feed. Read operations never return a feed error: on fetch failure they
// degrade to the previous (possibly stale) snapshot, or to empty results when
// no snapshot exists yet. Callers must treat an empty result as "temporarily
// unavailable", not "no assets exist".
type AssetService interface {
	// Refresh fetches the full asset list and atomically replaces the cached
	// snapshot. On failure the existing snapshot is left untouched and the
	// error is returned for logging; it is never surfaced to end users.
	Refresh(ctx context.Context) error

	// GetAll returns all cached assets, refreshing first when the snapshot
	// is stale or empty.
	GetAll(ctx context.Context) []*models.Asset

	// GetBySymbol performs a case-insensitive lookup. found is false when the
	// symbol is absent even after a successful refresh.
	GetBySymbol(ctx context.Context, symbol string) (asset *models.Asset, found bool)

	// GetCurrentPrice returns the asset's current price, or 0 when the asset
	// cannot be found. A 0 price means "unknown", not "worthless".
	GetCurrentPrice(ctx context.Context, symbol string) float64

	// Search matches query case-insensitively against symbol or name. An
	// empty or blank query returns at most SearchDefaultLimit assets.
	Search(ctx context.Context, query string) []*models.Asset

	// GetByType fetches type-filtered assets live from the feed, bypassing
	// the cache. Returns an empty list on fetch failure.
	GetByType(ctx context.Context, assetType string) []*models.Asset
}

// SearchDefaultLimit caps the result of an empty search query so callers are
// never handed the unbounded asset list.
const SearchDefaultLimit = 20

// CreatePositionRequest carries the caller-supplied fields for a new position.
type CreatePositionRequest struct {
	Symbol        string  `json:"symbol"`
	PurchasePrice float64 `json:"purchase_price"`
	Quantity      float64 `json:"quantity"`
}

// UpdatePositionRequest carries a partial update. Nil fields are left
// unchanged.
type UpdatePositionRequest struct {
	Symbol        *string  `json:"symbol,omitempty"`
	PurchasePrice *float64 `json:"purchase_price,omitempty"`
	Quantity      *float64 `json:"quantity,omitempty"`
}

// PortfolioService turns stored positions into financial metrics using
// current or cached prices.
type PortfolioService interface {
	// AddPosition resolves the symbol against the asset service for display
	// name and type, then persists a new position for the user.
	AddPosition(ctx context.Context, userID string, req CreatePositionRequest) (*models.Position, error)

	// ListPositions returns the user's positions valued at current prices,
	// most recently created first.
	ListPositions(ctx context.Context, userID string) ([]models.ValuedPosition, error)

	// GetPosition returns one valued position. Fails with
	// models.ErrPositionNotFound when absent and models.ErrPositionForbidden
	// when owned by a different user.
	GetPosition(ctx context.Context, id, userID string) (*models.ValuedPosition, error)

	// UpdatePosition applies a partial update after the same ownership checks
	// as GetPosition.
	UpdatePosition(ctx context.Context, id, userID string, req UpdatePositionRequest) (*models.Position, error)

	// RemovePosition deletes a position after the same ownership checks.
	RemovePosition(ctx context.Context, id, userID string) error

	// GetSummary aggregates the user's valued positions into totals and an
	// allocation breakdown.
	GetSummary(ctx context.Context, userID string) (*models.PortfolioSummary, error)
}
