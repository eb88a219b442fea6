package filter

import (
	"context"

	"github.com/rushteam/hybridrec/core"
	"github.com/rushteam/hybridrec/pipeline"
	"github.com/rushteam/hybridrec/pkg/utils"
)

// FilterNode 把多个 Filter 组合成一个过滤阶段：任一命中即剔除（短路）。
// 引擎的标准装配是阈值过滤在前、业务规则在后；被剔除的物品
// 打上 filtered 标签并记录命中的过滤器名，供 explain / 观测回查。
type FilterNode struct {
	Filters []Filter
}

func (n *FilterNode) Name() string        { return "filter.node" }
func (n *FilterNode) Kind() pipeline.Kind { return pipeline.KindFilter }

func (n *FilterNode) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(n.Filters) == 0 || len(items) == 0 {
		return items, nil
	}

	kept := make([]*core.Item, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}

		hit := n.firstMatch(ctx, rctx, item)
		if hit == "" {
			kept = append(kept, item)
			continue
		}
		item.PutLabel("filtered", utils.Label{Value: "true", Source: hit})
	}
	return kept, nil
}

// firstMatch 返回第一个命中的过滤器名；无命中返回空串。
// 单个过滤器无法判定（error）不具有否决权，跳过继续。
func (n *FilterNode) firstMatch(ctx context.Context, rctx *core.RecommendContext, item *core.Item) string {
	for _, f := range n.Filters {
		drop, err := f.ShouldFilter(ctx, rctx, item)
		if err != nil {
			continue
		}
		if drop {
			return f.Name()
		}
	}
	return ""
}
