package filter

import (
	"context"
	"errors"
	"testing"

	"github.com/AbdulMuhamid/QuickShop/core"
	"github.com/AbdulMuhamid/QuickShop/pkg/utils"
)

type stubBehaviors struct {
	events []*core.Behavior
	err    error
	calls  int
}

func (s *stubBehaviors) FindByUser(
	_ context.Context, _ string, _ int, _ ...core.ActionKind,
) ([]*core.Behavior, error) {
	s.calls++
	return s.events, s.err
}

func (s *stubBehaviors) FindByProducts(context.Context, []string, string) ([]*core.Behavior, error) {
	return nil, nil
}

func (s *stubBehaviors) FindByUsers(context.Context, []string, []string) ([]*core.Behavior, error) {
	return nil, nil
}

func TestSeenProducts(t *testing.T) {
	behaviors := &stubBehaviors{events: []*core.Behavior{
		{UserID: "alice", Action: core.ActionView, ProductID: "p1"},
		{UserID: "alice", Action: core.ActionPurchase, ProductID: "p2"},
		{UserID: "alice", Action: core.ActionSearch, Query: "shoes"},
	}}
	f := &SeenProducts{Behaviors: behaviors}
	rctx := &core.RecommendContext{UserID: "alice", Limit: 10}
	ctx := context.Background()

	tests := []struct {
		id   string
		want bool
	}{
		{"p1", true},
		{"p2", true},
		{"p3", false},
	}
	for _, tt := range tests {
		got, err := f.ShouldFilter(ctx, rctx, core.NewItem(tt.id))
		if err != nil {
			t.Fatalf("ShouldFilter(%s) error = %v", tt.id, err)
		}
		if got != tt.want {
			t.Errorf("ShouldFilter(%s) = %v, want %v", tt.id, got, tt.want)
		}
	}

	// history is fetched once per instance
	if behaviors.calls != 1 {
		t.Errorf("FindByUser called %d times, want 1", behaviors.calls)
	}
}

func TestSeenProducts_ErrorPassesThrough(t *testing.T) {
	f := &SeenProducts{Behaviors: &stubBehaviors{err: errors.New("backend down")}}
	rctx := &core.RecommendContext{UserID: "alice"}

	got, err := f.ShouldFilter(context.Background(), rctx, core.NewItem("p1"))
	if err == nil {
		t.Fatal("expected the backend error to be reported")
	}
	if got {
		t.Error("on history failure the item must pass through, not be dropped")
	}
}

func TestSeenProducts_AnonymousRequest(t *testing.T) {
	f := &SeenProducts{Behaviors: &stubBehaviors{}}
	got, err := f.ShouldFilter(context.Background(), &core.RecommendContext{}, core.NewItem("p1"))
	if err != nil || got {
		t.Errorf("anonymous request: got (%v, %v), want pass-through", got, err)
	}
}

func TestNode_DropsAndLabels(t *testing.T) {
	behaviors := &stubBehaviors{events: []*core.Behavior{
		{UserID: "alice", Action: core.ActionView, ProductID: "p1"},
		{UserID: "alice", Action: core.ActionView, ProductID: "p2"},
	}}
	node := &Node{Filters: []Filter{&SeenProducts{Behaviors: behaviors}}}
	rctx := &core.RecommendContext{UserID: "alice", Limit: 10}

	items, err := node.Process(context.Background(), rctx, []*core.Item{
		core.NewItem("p1"), core.NewItem("p3"),
	})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(items) != 1 || items[0].ID != "p3" {
		t.Fatalf("surviving items = %v, want [p3]", items)
	}
}

func TestRule(t *testing.T) {
	rule, err := NewRule(`item.features["price"] > 500.0`)
	if err != nil {
		t.Fatalf("NewRule() error = %v", err)
	}

	cheap := core.NewItem("p1")
	cheap.Features["price"] = 100
	expensive := core.NewItem("p2")
	expensive.Features["price"] = 900
	rctx := &core.RecommendContext{UserID: "alice"}
	ctx := context.Background()

	if got, err := rule.ShouldFilter(ctx, rctx, cheap); err != nil || got {
		t.Errorf("cheap item: got (%v, %v), want keep", got, err)
	}
	if got, err := rule.ShouldFilter(ctx, rctx, expensive); err != nil || !got {
		t.Errorf("expensive item: got (%v, %v), want filtered", got, err)
	}
}

func TestRule_LabelExpression(t *testing.T) {
	rule, err := NewRule(`label.recall_source.contains("trending")`)
	if err != nil {
		t.Fatalf("NewRule() error = %v", err)
	}

	it := core.NewItem("p1")
	it.PutLabel("recall_source", utils.Label{Value: "trending", Source: "recall"})
	got, err := rule.ShouldFilter(context.Background(), &core.RecommendContext{}, it)
	if err != nil {
		t.Fatalf("ShouldFilter() error = %v", err)
	}
	if !got {
		t.Error("label expression should match the trending item")
	}
}

func TestRule_CompileError(t *testing.T) {
	if _, err := NewRule(`this is not CEL`); err == nil {
		t.Fatal("invalid expression must fail at construction")
	}
}
