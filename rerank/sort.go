package rerank

import (
	"context"
	"sort"

	"github.com/rushteam/hybridrec/core"
	"github.com/rushteam/hybridrec/pipeline"
)

// SortNode 按融合分降序排序。
// 分数相同（含浮点意义上完全相等）时按 ProductID 升序打平，
// 保证固定快照 + 固定配置下输出次序完全确定。
type SortNode struct{}

func (n *SortNode) Name() string {
	return "rerank.sort"
}

func (n *SortNode) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *SortNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Product != nil && b.Product != nil {
			return a.Product.ProductID < b.Product.ProductID
		}
		return a.ID < b.ID
	})
	return items, nil
}
