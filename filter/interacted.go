package filter

import (
	"context"

	"github.com/rushteam/hybridrec/core"
)

// InteractedFilter 过滤掉用户已交互过的商品。
// 候选召回本身已排除交互集，这里作为组合链路（如配置驱动的自定义
// pipeline）中的独立兜底过滤器存在：输出里绝不允许出现已交互商品。
type InteractedFilter struct{}

func (f *InteractedFilter) Name() string {
	return "filter.interacted"
}

func (f *InteractedFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil || rctx == nil {
		return false, nil
	}
	return rctx.HasInteracted(item.ID), nil
}
