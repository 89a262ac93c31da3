package server

import (
	"errors"
	"net/http"

	"github.com/folium-app/folium/internal/interfaces"
	"github.com/folium-app/folium/internal/models"
)

// writePortfolioError maps service error kinds to HTTP status codes.
func (s *Server) writePortfolioError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrPositionNotFound):
		WriteError(w, http.StatusNotFound, "portfolio item not found")
	case errors.Is(err, models.ErrPositionForbidden):
		WriteError(w, http.StatusForbidden, "access denied")
	default:
		s.logger.Error().Err(err).Msg("Portfolio operation failed")
		WriteError(w, http.StatusInternalServerError, "internal error")
	}
}

// handlePortfolioRoot handles /api/portfolio — POST creates a position,
// GET lists the user's valued positions.
func (s *Server) handlePortfolioRoot(w http.ResponseWriter, r *http.Request) {
	uc := requireUser(w, r)
	if uc == nil {
		return
	}

	switch r.Method {
	case http.MethodPost:
		var req interfaces.CreatePositionRequest
		if !DecodeJSON(w, r, &req) {
			return
		}
		if req.Symbol == "" {
			WriteError(w, http.StatusBadRequest, "symbol is required")
			return
		}
		if req.PurchasePrice <= 0 {
			WriteError(w, http.StatusBadRequest, "purchase_price must be positive")
			return
		}
		if req.Quantity <= 0 {
			WriteError(w, http.StatusBadRequest, "quantity must be positive")
			return
		}

		position, err := s.app.PortfolioService.AddPosition(r.Context(), uc.UserID, req)
		if err != nil {
			s.writePortfolioError(w, err)
			return
		}
		WriteJSON(w, http.StatusCreated, position)

	case http.MethodGet:
		items, err := s.app.PortfolioService.ListPositions(r.Context(), uc.UserID)
		if err != nil {
			s.writePortfolioError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, items)

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// handlePortfolioSummary handles GET /api/portfolio/summary.
func (s *Server) handlePortfolioSummary(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	uc := requireUser(w, r)
	if uc == nil {
		return
	}

	summary, err := s.app.PortfolioService.GetSummary(r.Context(), uc.UserID)
	if err != nil {
		s.writePortfolioError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, summary)
}

// routePortfolio dispatches GET/PATCH/DELETE for /api/portfolio/{id}.
func (s *Server) routePortfolio(w http.ResponseWriter, r *http.Request) {
	id := PathParam(r, "/api/portfolio/", "")
	if id == "" {
		WriteError(w, http.StatusBadRequest, "position id is required in path")
		return
	}
	if id == "summary" {
		s.handlePortfolioSummary(w, r)
		return
	}

	uc := requireUser(w, r)
	if uc == nil {
		return
	}

	switch r.Method {
	case http.MethodGet:
		item, err := s.app.PortfolioService.GetPosition(r.Context(), id, uc.UserID)
		if err != nil {
			s.writePortfolioError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, item)

	case http.MethodPatch:
		var req interfaces.UpdatePositionRequest
		if !DecodeJSON(w, r, &req) {
			return
		}
		if req.Symbol != nil && *req.Symbol == "" {
			WriteError(w, http.StatusBadRequest, "symbol cannot be empty")
			return
		}
		if req.PurchasePrice != nil && *req.PurchasePrice <= 0 {
			WriteError(w, http.StatusBadRequest, "purchase_price must be positive")
			return
		}
		if req.Quantity != nil && *req.Quantity <= 0 {
			WriteError(w, http.StatusBadRequest, "quantity must be positive")
			return
		}

		position, err := s.app.PortfolioService.UpdatePosition(r.Context(), id, uc.UserID, req)
		if err != nil {
			s.writePortfolioError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, position)

	case http.MethodDelete:
		if err := s.app.PortfolioService.RemovePosition(r.Context(), id, uc.UserID); err != nil {
			s.writePortfolioError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, map[string]interface{}{"deleted": id})

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPatch, http.MethodDelete)
	}
}
