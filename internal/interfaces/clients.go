// Package interfaces defines service contracts for Folium
package interfaces

import (
	"context"

	"github.com/folium-app/folium/internal/models"
)

// AssetFeedClient fetches raw asset data from the external price feed.
type AssetFeedClient interface {
	// GetAssets fetches the full tradable asset list.
	GetAssets(ctx context.Context) ([]*models.Asset, error)

	// GetAssetsByType fetches assets filtered by type on the feed side.
	GetAssetsByType(ctx context.Context, assetType string) ([]*models.Asset, error)
}
