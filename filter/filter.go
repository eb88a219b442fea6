package filter

import (
	"context"

	"github.com/rushteam/hybridrec/core"
)

// Filter 判定单个候选是否应被剔除，返回 true 表示剔除。
// 引擎内置三种：阈值（ThresholdFilter）、已交互兜底（InteractedFilter）、
// CEL 规则（RuleFilter）；实现保持无状态，可在请求间复用。
type Filter interface {
	// Name 返回过滤器名称，写进被剔除物品的 filtered 标签
	Name() string

	// ShouldFilter 判定物品是否剔除；error 表示该过滤器对此物品无法判定
	ShouldFilter(ctx context.Context, rctx *core.RecommendContext, item *core.Item) (bool, error)
}
