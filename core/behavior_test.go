package core

import "testing"

func TestBehaviorMatchesAction(t *testing.T) {
	ev := &Behavior{UserID: "u1", Action: ActionView, ProductID: "p1"}

	tests := []struct {
		name    string
		actions []ActionKind
		want    bool
	}{
		{"empty set matches all", nil, true},
		{"direct hit", []ActionKind{ActionView}, true},
		{"hit among several", []ActionKind{ActionPurchase, ActionView}, true},
		{"miss", []ActionKind{ActionPurchase, ActionClick}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ev.MatchesAction(tt.actions); got != tt.want {
				t.Errorf("MatchesAction(%v) = %v, want %v", tt.actions, got, tt.want)
			}
		})
	}
}

func TestBehaviorHasProduct(t *testing.T) {
	if (&Behavior{UserID: "u1", Action: ActionSearch, Query: "shoes"}).HasProduct() {
		t.Error("search event without product id should report no product")
	}
	if !(&Behavior{UserID: "u1", Action: ActionView, ProductID: "p1"}).HasProduct() {
		t.Error("view event with product id should report a product")
	}
}

func TestProductSortValue(t *testing.T) {
	p := &Product{ID: "p1", Price: 99.5, Rating: 4.2, ViewCount: 120, PurchaseCount: 30}

	tests := []struct {
		key  ProductSort
		want float64
	}{
		{SortByViewCount, 120},
		{SortByPurchaseCount, 30},
		{SortByRating, 4.2},
		{SortByPrice, 99.5},
		{ProductSort("bogus"), 0},
	}
	for _, tt := range tests {
		if got := p.SortValue(tt.key); got != tt.want {
			t.Errorf("SortValue(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestTrendingSortOrder(t *testing.T) {
	want := []ProductSort{SortByViewCount, SortByPurchaseCount, SortByRating}
	got := TrendingSort()
	if len(got) != len(want) {
		t.Fatalf("TrendingSort() = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("TrendingSort()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
