package models

import "time"

// Position represents a user-held holding: what was bought, how much, and at
// what price. Owned exclusively by its user.
type Position struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	Symbol        string    `json:"symbol"`
	Name          string    `json:"name"`
	PurchasePrice float64   `json:"purchase_price"`
	Quantity      float64   `json:"quantity"`
	AssetType     string    `json:"asset_type,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ValuedPosition is a Position enriched at read time with metrics derived
// from the current price. Never persisted — recomputed on every read.
type ValuedPosition struct {
	Position
	CurrentPrice         float64 `json:"current_price"`
	CurrentValue         float64 `json:"current_value"`
	TotalCost            float64 `json:"total_cost"`
	ProfitLoss           float64 `json:"profit_loss"`
	ProfitLossPercentage float64 `json:"profit_loss_pct"`
}

// Valued derives the read-time metrics for a position at the given current
// price. A currentPrice of 0 means the price is unknown; the position is
// valued at zero rather than failing the read.
func (p Position) Valued(currentPrice float64) ValuedPosition {
	currentValue := currentPrice * p.Quantity
	totalCost := p.PurchasePrice * p.Quantity
	profitLoss := currentValue - totalCost

	profitLossPct := 0.0
	if totalCost > 0 {
		profitLossPct = profitLoss / totalCost * 100
	}

	return ValuedPosition{
		Position:             p,
		CurrentPrice:         currentPrice,
		CurrentValue:         currentValue,
		TotalCost:            totalCost,
		ProfitLoss:           profitLoss,
		ProfitLossPercentage: profitLossPct,
	}
}

// AllocationEntry is one symbol's share of the portfolio's current value.
type AllocationEntry struct {
	Symbol     string  `json:"symbol"`
	Name       string  `json:"name"`
	Value      float64 `json:"value"`
	Percentage float64 `json:"percentage"`
}

// PortfolioSummary aggregates a user's valued positions.
type PortfolioSummary struct {
	TotalBalance       float64           `json:"total_balance"`
	TotalCost          float64           `json:"total_cost"`
	TotalProfitLoss    float64           `json:"total_profit_loss"`
	TotalProfitLossPct float64           `json:"total_profit_loss_pct"`
	ActiveAssets       int               `json:"active_assets"`
	Allocation         []AllocationEntry `json:"allocation"`
	Items              []ValuedPosition  `json:"items"`
}

// Summarize aggregates valued positions into a PortfolioSummary. When total
// value is 0 every allocation entry is 0% — there is no division by zero, and
// percentages sum to 100 whenever total value is positive.
func Summarize(items []ValuedPosition) *PortfolioSummary {
	var totalBalance, totalCost float64
	for _, item := range items {
		totalBalance += item.CurrentValue
		totalCost += item.TotalCost
	}

	totalPL := totalBalance - totalCost
	totalPLPct := 0.0
	if totalCost > 0 {
		totalPLPct = totalPL / totalCost * 100
	}

	allocation := make([]AllocationEntry, 0, len(items))
	for _, item := range items {
		pct := 0.0
		if totalBalance > 0 {
			pct = item.CurrentValue / totalBalance * 100
		}
		allocation = append(allocation, AllocationEntry{
			Symbol:     item.Symbol,
			Name:       item.Name,
			Value:      item.CurrentValue,
			Percentage: pct,
		})
	}

	return &PortfolioSummary{
		TotalBalance:       totalBalance,
		TotalCost:          totalCost,
		TotalProfitLoss:    totalPL,
		TotalProfitLossPct: totalPLPct,
		ActiveAssets:       len(items),
		Allocation:         allocation,
		Items:              items,
	}
}
