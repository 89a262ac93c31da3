package server

import (
	"net/http"
	"strings"
)

// handleAssetList handles GET /api/assets — all assets from the cached feed
// snapshot. An empty list means the feed is temporarily unavailable, never an
// error.
func (s *Server) handleAssetList(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	assets := s.app.AssetService.GetAll(r.Context())
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"count":   len(assets),
		"data":    assets,
	})
}

// handleAssetSearch handles GET /api/assets/search?q= — case-insensitive
// substring match on symbol or name. A blank query returns a bounded prefix
// of the asset list.
func (s *Server) handleAssetSearch(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	query := r.URL.Query().Get("q")
	assets := s.app.AssetService.Search(r.Context(), query)
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"count":   len(assets),
		"data":    assets,
	})
}

// handleAssetBySymbol handles GET /api/assets/symbol/{symbol}.
func (s *Server) handleAssetBySymbol(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	symbol := PathParam(r, "/api/assets/symbol/", "")
	if symbol == "" {
		WriteError(w, http.StatusBadRequest, "symbol is required in path")
		return
	}

	asset, found := s.app.AssetService.GetBySymbol(r.Context(), symbol)
	if !found {
		WriteError(w, http.StatusNotFound, "asset '"+strings.ToUpper(symbol)+"' not found")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    asset,
	})
}

// handleAssetsByType handles GET /api/assets/type/{type} — always a live
// feed fetch, bypassing the cache.
func (s *Server) handleAssetsByType(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	assetType := PathParam(r, "/api/assets/type/", "")
	if assetType == "" {
		WriteError(w, http.StatusBadRequest, "type is required in path")
		return
	}

	assets := s.app.AssetService.GetByType(r.Context(), assetType)
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"count":   len(assets),
		"data":    assets,
	})
}
