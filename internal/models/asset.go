// Package models defines data structures for Folium
package models

// Asset represents a tradable asset from the external feed. Assets are
// transient: the full set is rebuilt on every successful feed fetch and is
// never persisted.
type Asset struct {
	Symbol      string  `json:"symbol"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Type        string  `json:"type"`
	Logo        string  `json:"logo,omitempty"`
}
