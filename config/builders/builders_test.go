package builders

import (
	"context"
	"testing"

	"github.com/rushteam/hybridrec/config"
	"github.com/rushteam/hybridrec/core"
	"github.com/rushteam/hybridrec/filter"
	"github.com/rushteam/hybridrec/pipeline"
	"github.com/rushteam/hybridrec/rerank"
)

func TestInitRegistersBuiltins(t *testing.T) {
	supported := config.SupportedTypes()
	want := map[string]bool{"filter": false, "rerank.sort": false, "rerank.topn": false}
	for _, typ := range supported {
		if _, ok := want[typ]; ok {
			want[typ] = true
		}
	}
	for typ, found := range want {
		if !found {
			t.Errorf("type %q not registered", typ)
		}
	}
}

func TestBuildFilterNode(t *testing.T) {
	node, err := BuildFilterNode(map[string]interface{}{
		"exclude_interacted": true,
		"threshold":          0.4,
		"rules":              []interface{}{`item.category == "restricted"`},
	})
	if err != nil {
		t.Fatalf("BuildFilterNode: %v", err)
	}
	fn, ok := node.(*filter.FilterNode)
	if !ok {
		t.Fatalf("node type = %T, want *filter.FilterNode", node)
	}
	if len(fn.Filters) != 3 {
		t.Errorf("got %d filters, want 3", len(fn.Filters))
	}

	// 空配置拒绝构建
	if _, err := BuildFilterNode(map[string]interface{}{}); err == nil {
		t.Error("expected error for empty filter config")
	}

	// 非法规则表达式
	if _, err := BuildFilterNode(map[string]interface{}{
		"rules": []interface{}{`item.category ==`},
	}); err == nil {
		t.Error("expected error for invalid rule")
	}
}

func TestBuildTopNNode(t *testing.T) {
	node, err := BuildTopNNode(map[string]interface{}{"n": 5})
	if err != nil {
		t.Fatalf("BuildTopNNode: %v", err)
	}
	tn, ok := node.(*rerank.TopNNode)
	if !ok || tn.N != 5 {
		t.Errorf("node = %+v, want TopNNode{N: 5}", node)
	}

	if _, err := BuildTopNNode(map[string]interface{}{}); err == nil {
		t.Error("expected error for missing n")
	}
}

func TestDefaultFactoryBuildsPipeline(t *testing.T) {
	cfg := &pipeline.Config{}
	cfg.Pipeline.Name = "postprocess"
	cfg.Pipeline.Nodes = []pipeline.NodeConfig{
		{Type: "filter", Config: map[string]interface{}{"threshold": 0.4}},
		{Type: "rerank.sort"},
		{Type: "rerank.topn", Config: map[string]interface{}{"n": 2}},
	}

	if err := config.ValidatePipelineConfig(cfg); err != nil {
		t.Fatalf("ValidatePipelineConfig: %v", err)
	}

	p, err := cfg.BuildPipeline(config.DefaultFactory())
	if err != nil {
		t.Fatalf("BuildPipeline: %v", err)
	}
	if len(p.Nodes) != 3 {
		t.Fatalf("got %d nodes, want 3", len(p.Nodes))
	}

	items := []*core.Item{
		{ID: "a", Score: 0.9, Product: &core.Product{ID: "a", ProductID: "a"}},
		{ID: "b", Score: 0.2, Product: &core.Product{ID: "b", ProductID: "b"}},
		{ID: "c", Score: 0.7, Product: &core.Product{ID: "c", ProductID: "c"}},
		{ID: "d", Score: 0.5, Product: &core.Product{ID: "d", ProductID: "d"}},
	}
	out, err := p.Run(context.Background(), &core.RecommendContext{UserID: "u1"}, items)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	// 0.2 被阈值过滤，排序后截取前 2
	if len(out) != 2 || out[0].ID != "a" || out[1].ID != "c" {
		ids := make([]string, 0, len(out))
		for _, it := range out {
			ids = append(ids, it.ID)
		}
		t.Errorf("got %v, want [a c]", ids)
	}
}

func TestValidatePipelineConfigUnknownType(t *testing.T) {
	cfg := &pipeline.Config{}
	cfg.Pipeline.Nodes = []pipeline.NodeConfig{{Type: "rank.magic"}}
	if err := config.ValidatePipelineConfig(cfg); err == nil {
		t.Error("expected error for unknown node type")
	}
}
