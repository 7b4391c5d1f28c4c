package pipeline

import (
	"context"
	"testing"

	"github.com/AbdulMuhamid/QuickShop/core"
)

type noopNode struct {
	name string
}

func (n *noopNode) Name() string { return n.name }
func (n *noopNode) Kind() Kind   { return KindRecall }

func (n *noopNode) Process(
	_ context.Context, _ *core.RecommendContext, items []*core.Item,
) ([]*core.Item, error) {
	return items, nil
}

const sampleYAML = `
pipeline:
  name: sample
  nodes:
    - type: noop
      config:
        hint: first
    - type: noop
      config:
        hint: second
`

func TestParseYAML(t *testing.T) {
	cfg, err := ParseYAML([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("ParseYAML() error = %v", err)
	}
	if cfg.Pipeline.Name != "sample" {
		t.Errorf("name = %q, want sample", cfg.Pipeline.Name)
	}
	if len(cfg.Pipeline.Nodes) != 2 {
		t.Fatalf("got %d nodes, want 2", len(cfg.Pipeline.Nodes))
	}
	if cfg.Pipeline.Nodes[0].Type != "noop" {
		t.Errorf("node type = %q, want noop", cfg.Pipeline.Nodes[0].Type)
	}
	if hint, _ := cfg.Pipeline.Nodes[1].Config["hint"].(string); hint != "second" {
		t.Errorf("node config hint = %q, want second", hint)
	}
}

func TestParseYAML_Invalid(t *testing.T) {
	if _, err := ParseYAML([]byte("pipeline: [not a map")); err == nil {
		t.Fatal("malformed yaml should fail")
	}
}

func TestBuildPipeline(t *testing.T) {
	cfg, err := ParseYAML([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("ParseYAML() error = %v", err)
	}

	factory := NewNodeFactory()
	factory.Register("noop", func(config map[string]any) (Node, error) {
		hint, _ := config["hint"].(string)
		return &noopNode{name: "noop." + hint}, nil
	})

	pipe, err := cfg.BuildPipeline(factory)
	if err != nil {
		t.Fatalf("BuildPipeline() error = %v", err)
	}
	if len(pipe.Nodes) != 2 {
		t.Fatalf("got %d nodes, want 2", len(pipe.Nodes))
	}
	if pipe.Nodes[0].Name() != "noop.first" || pipe.Nodes[1].Name() != "noop.second" {
		t.Errorf("nodes = [%s %s]", pipe.Nodes[0].Name(), pipe.Nodes[1].Name())
	}
}

func TestBuildPipeline_UnknownType(t *testing.T) {
	cfg, err := ParseYAML([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("ParseYAML() error = %v", err)
	}
	if _, err := cfg.BuildPipeline(NewNodeFactory()); err == nil {
		t.Fatal("unknown node type should fail the build")
	}
}

func TestPipelineRun(t *testing.T) {
	pipe := &Pipeline{Nodes: []Node{&noopNode{name: "a"}, &noopNode{name: "b"}}}
	items, err := pipe.Run(context.Background(), &core.RecommendContext{}, []*core.Item{core.NewItem("p1")})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(items) != 1 || items[0].ID != "p1" {
		t.Errorf("items = %v", items)
	}
}
