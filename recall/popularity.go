package recall

import (
	"context"
	"sort"

	"github.com/rushteam/hybridrec/core"
	"github.com/rushteam/hybridrec/pipeline"
	"github.com/rushteam/hybridrec/pkg/utils"
)

// PopularityRecall 是热门召回：按目录自带的 rating 降序产出商品。
// 冷启动兜底专用——没有用户侧信号时，用全局热度代替个性化分数。
//
// 排序规则（确定性）：rating 降序 -> reviews_count 降序 -> ProductID 升序。
// FixedScore 是兜底分支约定的固定分（全局冷启动 1.0 / 画像失败 0.5）。
type PopularityRecall struct {
	Products   []core.Product
	FixedScore float64
	Reasoning  string
}

func (r *PopularityRecall) Name() string        { return "recall.popularity" }
func (r *PopularityRecall) Kind() pipeline.Kind { return pipeline.KindRecall }

func (r *PopularityRecall) Process(
	_ context.Context,
	_ *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	ranked := make([]*core.Product, 0, len(r.Products))
	for i := range r.Products {
		ranked = append(ranked, &r.Products[i])
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Rating != b.Rating {
			return a.Rating > b.Rating
		}
		if a.ReviewsCount != b.ReviewsCount {
			return a.ReviewsCount > b.ReviewsCount
		}
		return a.ProductID < b.ProductID
	})

	out := make([]*core.Item, 0, len(ranked))
	for _, p := range ranked {
		it := core.NewItem(p)
		it.Score = r.FixedScore
		it.PutLabel("recall_source", utils.Label{Value: "popularity", Source: "recall"})
		if r.Reasoning != "" {
			it.PutLabel("reasoning", utils.Label{Value: r.Reasoning, Source: "recall"})
		}
		out = append(out, it)
	}
	return out, nil
}
