// Package builders 注册内置 Node 的配置构建器。
// rank.hybrid 不在此列：它依赖当次请求训练出的信号（向量空间、隐因子模型），
// 只能由 service 在运行时装配，无法从静态配置构建。
package builders

import (
	"fmt"

	"github.com/rushteam/hybridrec/config"
	"github.com/rushteam/hybridrec/filter"
	"github.com/rushteam/hybridrec/pipeline"
	"github.com/rushteam/hybridrec/pkg/conv"
	"github.com/rushteam/hybridrec/rerank"
)

func init() {
	config.Register("filter", BuildFilterNode)
	config.Register("rerank.sort", BuildSortNode)
	config.Register("rerank.topn", BuildTopNNode)
}

// BuildFilterNode 从配置构建过滤 Node。
//
// 配置示例：
//
//	type: filter
//	config:
//	  threshold: 0.4
//	  rules:
//	    - item.category == "restricted"
func BuildFilterNode(cfg map[string]interface{}) (pipeline.Node, error) {
	filters := make([]filter.Filter, 0, 2)

	if conv.ConfigGet(cfg, "exclude_interacted", false) {
		filters = append(filters, &filter.InteractedFilter{})
	}
	if threshold := conv.ConfigGetFloat64(cfg, "threshold", -1); threshold >= 0 {
		filters = append(filters, &filter.ThresholdFilter{Threshold: threshold})
	}
	for _, expr := range conv.SliceAnyToString(cfg["rules"]) {
		rf, err := filter.NewRuleFilter(expr)
		if err != nil {
			return nil, fmt.Errorf("rule %q: %w", expr, err)
		}
		filters = append(filters, rf)
	}

	if len(filters) == 0 {
		return nil, fmt.Errorf("filter node requires at least one of: exclude_interacted, threshold, rules")
	}
	return &filter.FilterNode{Filters: filters}, nil
}

// BuildSortNode 构建排序 Node（无配置项）。
func BuildSortNode(_ map[string]interface{}) (pipeline.Node, error) {
	return &rerank.SortNode{}, nil
}

// BuildTopNNode 从配置构建 Top-N 截断 Node。
func BuildTopNNode(cfg map[string]interface{}) (pipeline.Node, error) {
	n := int(conv.ConfigGetInt64(cfg, "n", 0))
	if n <= 0 {
		return nil, fmt.Errorf("topn node requires positive n")
	}
	return &rerank.TopNNode{N: n}, nil
}
