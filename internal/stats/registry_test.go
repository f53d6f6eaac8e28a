package stats

import (
	"testing"
	"time"

	"github.com/aurora-nuptials/marketplace/internal/model"
)

func TestRegistryEmpty(t *testing.T) {
	s := Registry(nil)

	if s.TotalItems != 0 || s.TotalValue != 0 || s.CompletionPercentage != 0 {
		t.Fatalf("empty registry should be all zeroes, got %+v", s)
	}
	if s.CategoryBreakdown == nil || len(s.CategoryBreakdown) != 0 {
		t.Fatalf("breakdown should be an empty map, got %v", s.CategoryBreakdown)
	}
	if len(s.RecentPurchases) != 0 {
		t.Fatalf("recent purchases should be empty, got %d", len(s.RecentPurchases))
	}
}

func TestRegistryTotalsAndBreakdown(t *testing.T) {
	kitchen := "Kitchen & Dining"
	day := func(d int) *time.Time {
		ts := time.Date(2026, 4, d, 0, 0, 0, 0, time.UTC)
		return &ts
	}

	items := []model.RegistryItem{
		{ID: 1, Name: "Stand mixer", Price: 300, Quantity: 1, Category: &kitchen, Purchased: true, PurchaseDate: day(3)},
		{ID: 2, Name: "Knife set", Price: 100, Quantity: 2, Category: &kitchen},
		{ID: 3, Name: "Throw blanket", Price: 50, Quantity: 1, Purchased: true, PurchaseDate: day(10)},
	}

	s := Registry(items)

	if s.TotalItems != 3 || s.PurchasedItems != 2 || s.RemainingItems != 1 {
		t.Fatalf("counts = %d/%d/%d, want 3/2/1", s.TotalItems, s.PurchasedItems, s.RemainingItems)
	}
	if s.TotalValue != 550 {
		t.Fatalf("TotalValue = %v, want 550", s.TotalValue)
	}
	if s.CompletionPercentage != 67 {
		t.Fatalf("CompletionPercentage = %d, want 67", s.CompletionPercentage)
	}

	k := s.CategoryBreakdown[kitchen]
	if k.Total != 2 || k.Purchased != 1 || k.Value != 500 {
		t.Fatalf("kitchen breakdown = %+v", k)
	}
	other := s.CategoryBreakdown["Other"]
	if other.Total != 1 || other.Purchased != 1 || other.Value != 50 {
		t.Fatalf("uncategorized items should fall under Other, got %+v", other)
	}

	if len(s.RecentPurchases) != 2 || s.RecentPurchases[0].ID != 3 {
		t.Fatalf("recent purchases should be newest first, got %+v", s.RecentPurchases)
	}
}

func TestRegistryRecentPurchasesCapped(t *testing.T) {
	items := make([]model.RegistryItem, 8)
	for i := range items {
		ts := time.Date(2026, 4, i+1, 0, 0, 0, 0, time.UTC)
		items[i] = model.RegistryItem{ID: uint64(i + 1), Price: 10, Quantity: 1, Purchased: true, PurchaseDate: &ts}
	}

	s := Registry(items)

	if len(s.RecentPurchases) != 5 {
		t.Fatalf("recent purchases = %d, want 5", len(s.RecentPurchases))
	}
	if s.RecentPurchases[0].ID != 8 {
		t.Fatalf("newest purchase should lead, got id %d", s.RecentPurchases[0].ID)
	}
	if s.CompletionPercentage != 100 {
		t.Fatalf("CompletionPercentage = %d, want 100", s.CompletionPercentage)
	}
}
