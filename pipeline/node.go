package pipeline

import (
	"context"

	"github.com/rushteam/hybridrec/core"
)

// Kind 标记 Node 所属的链路阶段，用于观测与装配校验。
type Kind string

const (
	// KindRecall 召回：从目录快照生成候选集
	KindRecall Kind = "recall"
	// KindRank 排序：对候选计算融合分
	KindRank Kind = "rank"
	// KindFilter 过滤：剔除低于阈值或命中规则的候选
	KindFilter Kind = "filter"
	// KindReRank 重排：确定性排序与 Top-N 截断
	KindReRank Kind = "rerank"
	// KindPostProcess 后处理：输出前的结果修饰
	KindPostProcess Kind = "postprocess"
)

// Node 是链路的最小组成单元，统一 items -> items 的形态：
// 召回生成、打分改写 Score、过滤收缩、重排调序，都是同一个签名。
// rctx 贯穿整条链路，Node 之间通过 Item.Labels 传递解释信息。
type Node interface {
	Name() string
	Kind() Kind

	Process(
		ctx context.Context,
		rctx *core.RecommendContext,
		items []*core.Item,
	) ([]*core.Item, error)
}

// NodeBuilder 根据配置构建 Node，供配置驱动的装配使用。
type NodeBuilder func(config map[string]interface{}) (Node, error)
