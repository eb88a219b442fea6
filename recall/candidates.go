package recall

import (
	"context"

	"github.com/rushteam/hybridrec/core"
	"github.com/rushteam/hybridrec/pipeline"
	"github.com/rushteam/hybridrec/pkg/utils"
)

// CandidateRecall 是候选集召回：目录快照减去用户已交互过的商品。
// 按目录遍历顺序产出，保证同一快照下候选顺序稳定。
type CandidateRecall struct {
	// Products 当次请求的目录快照
	Products []core.Product
}

func (r *CandidateRecall) Name() string        { return "recall.candidates" }
func (r *CandidateRecall) Kind() pipeline.Kind { return pipeline.KindRecall }

func (r *CandidateRecall) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	out := make([]*core.Item, 0, len(r.Products))
	for i := range r.Products {
		p := &r.Products[i]
		if rctx.HasInteracted(p.ID) {
			continue
		}
		it := core.NewItem(p)
		it.PutLabel("recall_source", utils.Label{Value: "candidates", Source: "recall"})
		out = append(out, it)
	}
	return out, nil
}
