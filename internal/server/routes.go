package server

import "net/http"

// registerRoutes sets up all REST API routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)

	// Auth
	mux.HandleFunc("/api/auth/register", s.handleAuthRegister)
	mux.HandleFunc("/api/auth/login", s.handleAuthLogin)
	mux.HandleFunc("/api/auth/profile", s.handleAuthProfile)

	// Assets
	mux.HandleFunc("/api/assets/search", s.handleAssetSearch)
	mux.HandleFunc("/api/assets/symbol/", s.handleAssetBySymbol)
	mux.HandleFunc("/api/assets/type/", s.handleAssetsByType)
	mux.HandleFunc("/api/assets", s.handleAssetList)

	// Portfolio
	mux.HandleFunc("/api/portfolio/summary", s.handlePortfolioSummary)
	mux.HandleFunc("/api/portfolio/", s.routePortfolio)
	mux.HandleFunc("/api/portfolio", s.handlePortfolioRoot)
}
