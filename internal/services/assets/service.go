// Package assets provides a cached view over the external asset price feed
package assets

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/folium-app/folium/internal/common"
	"github.com/folium-app/folium/internal/interfaces"
	"github.com/folium-app/folium/internal/models"
)

// Service implements AssetService. It holds a full snapshot of the feed's
// asset list keyed by uppercase symbol, refreshed lazily when a read finds
// the snapshot older than the staleness window. Refresh replaces the whole
// map in a single swap under the write lock, so concurrent readers never see
// a partially-updated snapshot. Concurrent stale reads may each trigger a
// redundant refresh; the full replace is idempotent so no single-flight
// guard exists.
type Service struct {
	feed   interfaces.AssetFeedClient
	logger *common.Logger
	ttl    time.Duration
	now    func() time.Time // injectable clock for testing

	mu          sync.RWMutex
	assets      map[string]*models.Asset
	lastRefresh time.Time
}

// Option configures the service
type Option func(*Service)

// WithTTL sets the staleness window for the cached snapshot.
func WithTTL(ttl time.Duration) Option {
	return func(s *Service) {
		s.ttl = ttl
	}
}

// NewService creates a new asset service over the given feed client.
func NewService(feed interfaces.AssetFeedClient, logger *common.Logger, opts ...Option) *Service {
	s := &Service{
		feed:   feed,
		logger: logger,
		ttl:    common.FreshnessAssets,
		now:    time.Now,
		assets: make(map[string]*models.Asset),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Refresh fetches the full asset list from the feed and atomically replaces
// the cached snapshot. On failure the existing snapshot is left untouched.
func (s *Service) Refresh(ctx context.Context) error {
	fetched, err := s.feed.GetAssets(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Asset feed refresh failed, keeping existing cache")
		return err
	}

	next := make(map[string]*models.Asset, len(fetched))
	for _, a := range fetched {
		next[strings.ToUpper(a.Symbol)] = a
	}

	s.mu.Lock()
	s.assets = next
	s.lastRefresh = s.now()
	s.mu.Unlock()

	s.logger.Debug().Int("count", len(next)).Msg("Asset cache refreshed")
	return nil
}

// ensureFresh refreshes the snapshot when it is stale or empty. Refresh
// failures are swallowed here: readers fall back to whatever snapshot exists.
func (s *Service) ensureFresh(ctx context.Context) {
	s.mu.RLock()
	fresh := common.IsFreshAt(s.now(), s.lastRefresh, s.ttl) && len(s.assets) > 0
	s.mu.RUnlock()

	if fresh {
		return
	}
	// Error already logged in Refresh; stale or empty cache is served below.
	_ = s.Refresh(ctx)
}

// GetAll returns all cached assets sorted by symbol, refreshing first when
// the snapshot is stale or empty. An empty result means the feed is
// temporarily unavailable and no prior snapshot exists.
func (s *Service) GetAll(ctx context.Context) []*models.Asset {
	s.ensureFresh(ctx)

	s.mu.RLock()
	all := make([]*models.Asset, 0, len(s.assets))
	for _, a := range s.assets {
		all = append(all, a)
	}
	s.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool { return all[i].Symbol < all[j].Symbol })
	return all
}

// GetBySymbol performs a case-insensitive symbol lookup.
func (s *Service) GetBySymbol(ctx context.Context, symbol string) (*models.Asset, bool) {
	s.ensureFresh(ctx)

	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.assets[strings.ToUpper(symbol)]
	return a, ok
}

// GetCurrentPrice returns the asset's current price, or 0 when the asset
// cannot be found.
func (s *Service) GetCurrentPrice(ctx context.Context, symbol string) float64 {
	a, ok := s.GetBySymbol(ctx, symbol)
	if !ok {
		return 0
	}
	return a.Price
}

// Search matches query case-insensitively against symbol or name. A blank
// query returns at most SearchDefaultLimit assets.
func (s *Service) Search(ctx context.Context, query string) []*models.Asset {
	all := s.GetAll(ctx)

	query = strings.TrimSpace(query)
	if query == "" {
		if len(all) > interfaces.SearchDefaultLimit {
			all = all[:interfaces.SearchDefaultLimit]
		}
		return all
	}

	lower := strings.ToLower(query)
	matches := make([]*models.Asset, 0)
	for _, a := range all {
		if strings.Contains(strings.ToLower(a.Symbol), lower) ||
			strings.Contains(strings.ToLower(a.Name), lower) {
			matches = append(matches, a)
		}
	}
	return matches
}

// GetByType fetches type-filtered assets live from the feed, bypassing the
// cache. Returns an empty list on fetch failure.
func (s *Service) GetByType(ctx context.Context, assetType string) []*models.Asset {
	fetched, err := s.feed.GetAssetsByType(ctx, assetType)
	if err != nil {
		s.logger.Warn().Err(err).Str("type", assetType).Msg("Type-filtered feed fetch failed")
		return []*models.Asset{}
	}
	return fetched
}

// Ensure Service implements AssetService
var _ interfaces.AssetService = (*Service)(nil)
