package recall

import (
	"context"
	"errors"

	"github.com/AbdulMuhamid/QuickShop/core"
)

// fakeBehaviors is an in-memory BehaviorStore backed by one flat event
// list per user, newest last (FindByUser reverses, matching real stores).
type fakeBehaviors struct {
	byUser map[string][]*core.Behavior
	err    error
}

func (f *fakeBehaviors) FindByUser(
	_ context.Context, userID string, limit int, actions ...core.ActionKind,
) ([]*core.Behavior, error) {
	if f.err != nil {
		return nil, f.err
	}
	events := f.byUser[userID]
	var out []*core.Behavior
	for i := len(events) - 1; i >= 0; i-- {
		if !events[i].MatchesAction(actions) {
			continue
		}
		out = append(out, events[i])
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (f *fakeBehaviors) FindByProducts(
	_ context.Context, productIDs []string, excludeUserID string,
) ([]*core.Behavior, error) {
	if f.err != nil {
		return nil, f.err
	}
	wanted := make(map[string]struct{}, len(productIDs))
	for _, id := range productIDs {
		wanted[id] = struct{}{}
	}
	var out []*core.Behavior
	for _, uid := range sortedKeys(f.byUser) {
		if uid == excludeUserID {
			continue
		}
		for _, ev := range f.byUser[uid] {
			if _, ok := wanted[ev.ProductID]; ok {
				out = append(out, ev)
			}
		}
	}
	return out, nil
}

func (f *fakeBehaviors) FindByUsers(
	_ context.Context, userIDs []string, excludeProductIDs []string,
) ([]*core.Behavior, error) {
	if f.err != nil {
		return nil, f.err
	}
	excluded := make(map[string]struct{}, len(excludeProductIDs))
	for _, id := range excludeProductIDs {
		excluded[id] = struct{}{}
	}
	var out []*core.Behavior
	for _, uid := range userIDs {
		for _, ev := range f.byUser[uid] {
			if !ev.HasProduct() {
				continue
			}
			if _, ok := excluded[ev.ProductID]; ok {
				continue
			}
			out = append(out, ev)
		}
	}
	return out, nil
}

func sortedKeys(m map[string][]*core.Behavior) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j] < keys[j-1]; j-- {
			keys[j], keys[j-1] = keys[j-1], keys[j]
		}
	}
	return keys
}

// fakeCatalog is an in-memory ProductCatalog with deterministic ordering.
type fakeCatalog struct {
	products []*core.Product
	err      error
}

func (f *fakeCatalog) FindByID(_ context.Context, id string) (*core.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, p := range f.products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, core.NewDomainError(core.ModuleCatalog, core.ErrorCodeNotFound, "product: not found: "+id)
}

func (f *fakeCatalog) FindByIDs(_ context.Context, ids []string) ([]*core.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	byID := make(map[string]*core.Product, len(f.products))
	for _, p := range f.products {
		byID[p.ID] = p
	}
	out := make([]*core.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeCatalog) FindByCategory(
	_ context.Context, categories []core.Category, excludeIDs []string, sortKeys []core.ProductSort, limit int,
) ([]*core.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	wanted := make(map[core.Category]struct{}, len(categories))
	for _, c := range categories {
		wanted[c] = struct{}{}
	}
	excluded := make(map[string]struct{}, len(excludeIDs))
	for _, id := range excludeIDs {
		excluded[id] = struct{}{}
	}
	var out []*core.Product
	for _, p := range f.products {
		if _, ok := wanted[p.Category]; !ok {
			continue
		}
		if _, ok := excluded[p.ID]; ok {
			continue
		}
		out = append(out, p)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (f *fakeCatalog) FindAllSorted(
	_ context.Context, sortKeys []core.ProductSort, limit int,
) ([]*core.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := append([]*core.Product(nil), f.products...)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && less(out[j-1], out[j], sortKeys); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func less(a, b *core.Product, keys []core.ProductSort) bool {
	for _, k := range keys {
		av, bv := a.SortValue(k), b.SortValue(k)
		if av != bv {
			return av < bv
		}
	}
	return false
}

var errBackend = errors.New("backend unavailable")

// failingSource always errors, for degradation tests.
type failingSource struct{}

func (s *failingSource) Name() string { return "recall.failing" }

func (s *failingSource) Recall(context.Context, *core.RecommendContext) ([]*core.Item, error) {
	return nil, errBackend
}

// staticSource returns a fixed candidate list.
type staticSource struct {
	name string
	ids  []string
}

func (s *staticSource) Name() string { return s.name }

func (s *staticSource) Recall(context.Context, *core.RecommendContext) ([]*core.Item, error) {
	out := make([]*core.Item, 0, len(s.ids))
	for _, id := range s.ids {
		out = append(out, core.NewItem(id))
	}
	return out, nil
}
