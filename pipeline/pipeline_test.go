package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rushteam/hybridrec/core"
)

type fakeNode struct {
	name string
	kind Kind
	fn   func(items []*core.Item) ([]*core.Item, error)
}

func (n *fakeNode) Name() string { return n.name }
func (n *fakeNode) Kind() Kind   { return n.kind }
func (n *fakeNode) Process(_ context.Context, _ *core.RecommendContext, items []*core.Item) ([]*core.Item, error) {
	return n.fn(items)
}

func TestPipelineRun(t *testing.T) {
	p := &Pipeline{Nodes: []Node{
		&fakeNode{name: "gen", kind: KindRecall, fn: func(_ []*core.Item) ([]*core.Item, error) {
			return []*core.Item{{ID: "a"}, {ID: "b"}, {ID: "c"}}, nil
		}},
		&fakeNode{name: "drop-last", kind: KindFilter, fn: func(items []*core.Item) ([]*core.Item, error) {
			return items[:len(items)-1], nil
		}},
	}}

	out, err := p.Run(context.Background(), &core.RecommendContext{UserID: "u1"}, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(out) != 2 || out[0].ID != "a" || out[1].ID != "b" {
		t.Errorf("got %v, want [a b]", out)
	}
}

func TestPipelineRunError(t *testing.T) {
	boom := errors.New("boom")
	p := &Pipeline{Nodes: []Node{
		&fakeNode{name: "fail", kind: KindRank, fn: func(_ []*core.Item) ([]*core.Item, error) {
			return nil, boom
		}},
		&fakeNode{name: "unreached", kind: KindReRank, fn: func(_ []*core.Item) ([]*core.Item, error) {
			t.Fatal("node after failure must not run")
			return nil, nil
		}},
	}}

	if _, err := p.Run(context.Background(), nil, nil); !errors.Is(err, boom) {
		t.Errorf("Run err = %v, want boom", err)
	}
}

func TestLoadFromYAMLAndBuild(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipeline.yaml")
	content := `
pipeline:
  name: demo
  nodes:
    - type: noop
      config:
        n: 3
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromYAML(path)
	if err != nil {
		t.Fatalf("LoadFromYAML: %v", err)
	}
	if cfg.Pipeline.Name != "demo" || len(cfg.Pipeline.Nodes) != 1 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Pipeline.Nodes[0].Type != "noop" {
		t.Errorf("node type = %q, want noop", cfg.Pipeline.Nodes[0].Type)
	}

	factory := NewNodeFactory()
	factory.Register("noop", func(config map[string]interface{}) (Node, error) {
		return &fakeNode{name: "noop", kind: KindPostProcess, fn: func(items []*core.Item) ([]*core.Item, error) {
			return items, nil
		}}, nil
	})

	p, err := cfg.BuildPipeline(factory)
	if err != nil {
		t.Fatalf("BuildPipeline: %v", err)
	}
	if len(p.Nodes) != 1 || p.Nodes[0].Name() != "noop" {
		t.Errorf("built pipeline = %+v", p.Nodes)
	}
}

func TestBuildPipelineUnknownType(t *testing.T) {
	cfg := &Config{}
	cfg.Pipeline.Nodes = []NodeConfig{{Type: "does.not.exist"}}
	if _, err := cfg.BuildPipeline(NewNodeFactory()); err == nil {
		t.Error("expected error for unknown node type")
	}
}
