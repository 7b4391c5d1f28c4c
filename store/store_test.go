package store

import (
	"context"
	"reflect"
	"testing"

	"github.com/AbdulMuhamid/QuickShop/core"
)

func seedCatalog(t *testing.T) (*Catalog, *MemoryStore) {
	t.Helper()
	mem := NewMemoryStore()
	t.Cleanup(func() { mem.Close() })

	catalog := NewCatalog(mem, "")
	products := []*core.Product{
		{ID: "p1", Category: core.CategoryElectronics, Price: 100, Rating: 4.0, ViewCount: 500, PurchaseCount: 10},
		{ID: "p2", Category: core.CategoryElectronics, Price: 200, Rating: 4.5, ViewCount: 500, PurchaseCount: 30},
		{ID: "p3", Category: core.CategoryBooks, Price: 30, Rating: 5.0, ViewCount: 900, PurchaseCount: 5},
		{ID: "p4", Category: core.CategorySports, Price: 60, Rating: 3.5, ViewCount: 100, PurchaseCount: 90},
	}
	for _, p := range products {
		if err := catalog.SaveProduct(context.Background(), p); err != nil {
			t.Fatalf("SaveProduct(%s): %v", p.ID, err)
		}
	}
	return catalog, mem
}

func productIDs(products []*core.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func TestCatalog_FindByID(t *testing.T) {
	catalog, _ := seedCatalog(t)
	ctx := context.Background()

	p, err := catalog.FindByID(ctx, "p1")
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if p.ID != "p1" || p.Category != core.CategoryElectronics {
		t.Errorf("got %+v", p)
	}

	_, err = catalog.FindByID(ctx, "nope")
	if !core.IsNotFound(err) {
		t.Errorf("missing product: err = %v, want NOT_FOUND domain error", err)
	}
}

func TestCatalog_FindByIDs_PreservesOrderAndSkipsMissing(t *testing.T) {
	catalog, _ := seedCatalog(t)

	products, err := catalog.FindByIDs(context.Background(), []string{"p3", "nope", "p1"})
	if err != nil {
		t.Fatalf("FindByIDs() error = %v", err)
	}
	if got := productIDs(products); !reflect.DeepEqual(got, []string{"p3", "p1"}) {
		t.Errorf("order = %v, want [p3 p1]", got)
	}
}

func TestCatalog_FindAllSorted_TrendingCascade(t *testing.T) {
	catalog, _ := seedCatalog(t)

	products, err := catalog.FindAllSorted(context.Background(), core.TrendingSort(), 0)
	if err != nil {
		t.Fatalf("FindAllSorted() error = %v", err)
	}
	// p3 leads on views; p1/p2 tie on views, purchase count decides
	if got := productIDs(products); !reflect.DeepEqual(got, []string{"p3", "p2", "p1", "p4"}) {
		t.Errorf("order = %v, want [p3 p2 p1 p4]", got)
	}
}

func TestCatalog_FindByCategory(t *testing.T) {
	catalog, _ := seedCatalog(t)
	ctx := context.Background()

	products, err := catalog.FindByCategory(
		ctx, []core.Category{core.CategoryElectronics}, []string{"p1"}, core.PreferenceSort(), 10)
	if err != nil {
		t.Fatalf("FindByCategory() error = %v", err)
	}
	if got := productIDs(products); !reflect.DeepEqual(got, []string{"p2"}) {
		t.Errorf("got %v, want [p2] (p1 excluded, other categories ignored)", got)
	}

	products, err = catalog.FindByCategory(
		ctx, []core.Category{core.CategoryElectronics, core.CategoryBooks}, nil, core.PreferenceSort(), 2)
	if err != nil {
		t.Fatalf("FindByCategory() error = %v", err)
	}
	// rating desc: p3 (5.0) then p2 (4.5), limit cuts p1
	if got := productIDs(products); !reflect.DeepEqual(got, []string{"p3", "p2"}) {
		t.Errorf("got %v, want [p3 p2]", got)
	}
}

func TestCatalog_SaveProductIsIdempotentInIDList(t *testing.T) {
	catalog, _ := seedCatalog(t)
	ctx := context.Background()

	// overwrite p1, the id list must not grow
	if err := catalog.SaveProduct(ctx, &core.Product{ID: "p1", Category: core.CategoryElectronics, Price: 111}); err != nil {
		t.Fatalf("SaveProduct() error = %v", err)
	}
	all, err := catalog.FindAllSorted(ctx, nil, 0)
	if err != nil {
		t.Fatalf("FindAllSorted() error = %v", err)
	}
	if len(all) != 4 {
		t.Errorf("got %d products after overwrite, want 4", len(all))
	}
}

func TestBehaviors_FindByUser(t *testing.T) {
	mem := NewMemoryStore()
	defer mem.Close()
	behaviors := NewBehaviors(mem, "")
	ctx := context.Background()

	events := []*core.Behavior{
		{UserID: "alice", Action: core.ActionView, ProductID: "p1"},
		{UserID: "alice", Action: core.ActionSearch, Query: "keyboard"},
		{UserID: "alice", Action: core.ActionPurchase, ProductID: "p2"},
		{UserID: "alice", Action: core.ActionView, ProductID: "p3"},
	}
	for _, ev := range events {
		if err := behaviors.Track(ctx, ev); err != nil {
			t.Fatalf("Track: %v", err)
		}
	}

	// newest first
	got, err := behaviors.FindByUser(ctx, "alice", 2)
	if err != nil {
		t.Fatalf("FindByUser() error = %v", err)
	}
	if len(got) != 2 || got[0].ProductID != "p3" || got[1].ProductID != "p2" {
		t.Errorf("recent events = %+v, want p3 then p2", got)
	}

	// action filter
	got, err = behaviors.FindByUser(ctx, "alice", 10, core.ActionView)
	if err != nil {
		t.Fatalf("FindByUser() error = %v", err)
	}
	if len(got) != 2 || got[0].ProductID != "p3" || got[1].ProductID != "p1" {
		t.Errorf("view events = %+v, want p3 then p1", got)
	}
}

func TestBehaviors_FindByProducts(t *testing.T) {
	mem := NewMemoryStore()
	defer mem.Close()
	behaviors := NewBehaviors(mem, "")
	ctx := context.Background()

	for _, ev := range []*core.Behavior{
		{UserID: "alice", Action: core.ActionView, ProductID: "p1"},
		{UserID: "bob", Action: core.ActionView, ProductID: "p1"},
		{UserID: "bob", Action: core.ActionClick, ProductID: "p2"},
		{UserID: "carol", Action: core.ActionView, ProductID: "p9"},
	} {
		if err := behaviors.Track(ctx, ev); err != nil {
			t.Fatalf("Track: %v", err)
		}
	}

	got, err := behaviors.FindByProducts(ctx, []string{"p1", "p2"}, "alice")
	if err != nil {
		t.Fatalf("FindByProducts() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d events, want 2 (alice excluded, carol unrelated): %+v", len(got), got)
	}
	for _, ev := range got {
		if ev.UserID != "bob" {
			t.Errorf("unexpected event from %s", ev.UserID)
		}
	}
}

func TestBehaviors_FindByUsers(t *testing.T) {
	mem := NewMemoryStore()
	defer mem.Close()
	behaviors := NewBehaviors(mem, "")
	ctx := context.Background()

	for _, ev := range []*core.Behavior{
		{UserID: "bob", Action: core.ActionView, ProductID: "p1"},
		{UserID: "bob", Action: core.ActionPurchase, ProductID: "p3"},
		{UserID: "bob", Action: core.ActionSearch, Query: "shoes"},
		{UserID: "carol", Action: core.ActionView, ProductID: "p4"},
	} {
		if err := behaviors.Track(ctx, ev); err != nil {
			t.Fatalf("Track: %v", err)
		}
	}

	got, err := behaviors.FindByUsers(ctx, []string{"bob", "carol"}, []string{"p1"})
	if err != nil {
		t.Fatalf("FindByUsers() error = %v", err)
	}
	// p1 excluded, search event has no product
	if len(got) != 2 {
		t.Fatalf("got %d events, want 2: %+v", len(got), got)
	}
	if got[0].ProductID != "p3" || got[1].ProductID != "p4" {
		t.Errorf("events = [%s %s], want [p3 p4]", got[0].ProductID, got[1].ProductID)
	}
}

func TestUsers_RoundTrip(t *testing.T) {
	mem := NewMemoryStore()
	defer mem.Close()
	users := NewUsers(mem, "")
	ctx := context.Background()

	in := &core.User{ID: "alice", Name: "Alice", Preferences: core.Preferences{
		Categories: []core.Category{core.CategoryBooks},
	}}
	if err := users.SaveUser(ctx, in); err != nil {
		t.Fatalf("SaveUser() error = %v", err)
	}

	out, err := users.FindByID(ctx, "alice")
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if out.Name != "Alice" || !out.HasPreferredCategories() {
		t.Errorf("got %+v", out)
	}

	_, err = users.FindByID(ctx, "ghost")
	if !core.IsNotFound(err) {
		t.Errorf("missing user: err = %v, want NOT_FOUND domain error", err)
	}
}

func TestMemoryStore_ZSetOps(t *testing.T) {
	mem := NewMemoryStore()
	defer mem.Close()
	ctx := context.Background()

	if err := mem.ZAdd(ctx, "board", 10, "a"); err != nil {
		t.Fatalf("ZAdd: %v", err)
	}
	if err := mem.ZIncrBy(ctx, "board", 5, "a"); err != nil {
		t.Fatalf("ZIncrBy: %v", err)
	}
	if err := mem.ZIncrBy(ctx, "board", 20, "b"); err != nil {
		t.Fatalf("ZIncrBy: %v", err)
	}

	score, err := mem.ZScore(ctx, "board", "a")
	if err != nil || score != 15 {
		t.Errorf("ZScore(a) = (%v, %v), want 15", score, err)
	}

	members, err := mem.ZRange(ctx, "board", 0, -1)
	if err != nil {
		t.Fatalf("ZRange: %v", err)
	}
	if !reflect.DeepEqual(members, []string{"b", "a"}) {
		t.Errorf("ZRange = %v, want [b a] (score desc)", members)
	}
}
