package stats

import (
	"math"
	"sort"

	"github.com/aurora-nuptials/marketplace/internal/model"
)

// CategoryStats aggregates one registry category.
type CategoryStats struct {
	Total     int     `json:"total"`
	Purchased int     `json:"purchased"`
	Value     float64 `json:"value"`
}

// RegistryStats is the registry summary: totals across all items plus a
// per-category breakdown and the latest purchases.
type RegistryStats struct {
	TotalItems           int                      `json:"totalItems"`
	TotalValue           float64                  `json:"totalValue"`
	PurchasedItems       int                      `json:"purchasedItems"`
	RemainingItems       int                      `json:"remainingItems"`
	CompletionPercentage int                      `json:"completionPercentage"`
	CategoryBreakdown    map[string]CategoryStats `json:"categoryBreakdown"`
	RecentPurchases      []model.RegistryItem     `json:"recentPurchases"`
}

// Registry reduces a registry's items into its summary. An empty or
// missing registry yields zeroes and an empty breakdown, never a
// division by zero.
func Registry(items []model.RegistryItem) RegistryStats {
	s := RegistryStats{
		TotalItems:        len(items),
		CategoryBreakdown: map[string]CategoryStats{},
		RecentPurchases:   []model.RegistryItem{},
	}

	for _, it := range items {
		value := it.Price * float64(it.Quantity)
		s.TotalValue += value

		cat := "Other"
		if it.Category != nil && *it.Category != "" {
			cat = *it.Category
		}
		cs := s.CategoryBreakdown[cat]
		cs.Total++
		cs.Value += value
		if it.Purchased {
			cs.Purchased++
			s.PurchasedItems++
			s.RecentPurchases = append(s.RecentPurchases, it)
		}
		s.CategoryBreakdown[cat] = cs
	}

	s.RemainingItems = s.TotalItems - s.PurchasedItems
	if s.TotalItems > 0 {
		s.CompletionPercentage = int(math.Round(float64(s.PurchasedItems) / float64(s.TotalItems) * 100))
	}

	// Newest purchase first, capped at five.
	sort.SliceStable(s.RecentPurchases, func(i, j int) bool {
		a, b := s.RecentPurchases[i].PurchaseDate, s.RecentPurchases[j].PurchaseDate
		if a == nil || b == nil {
			return b == nil && a != nil
		}
		return a.After(*b)
	})
	if len(s.RecentPurchases) > 5 {
		s.RecentPurchases = s.RecentPurchases[:5]
	}

	return s
}
