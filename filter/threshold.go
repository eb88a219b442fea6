package filter

import (
	"context"

	"github.com/rushteam/hybridrec/core"
)

// ThresholdFilter 是相关性阈值过滤器：融合分不高于阈值的候选被丢弃。
// 注意是严格大于才保留（blended > threshold），与引擎契约一致。
type ThresholdFilter struct {
	// Threshold 相关性阈值
	Threshold float64
}

func (f *ThresholdFilter) Name() string {
	return "filter.threshold"
}

func (f *ThresholdFilter) ShouldFilter(
	_ context.Context,
	_ *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return false, nil
	}
	return item.Score <= f.Threshold, nil
}
