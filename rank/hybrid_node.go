package rank

import (
	"context"
	"fmt"
	"strings"

	"github.com/rushteam/hybridrec/core"
	"github.com/rushteam/hybridrec/pipeline"
	"github.com/rushteam/hybridrec/pkg/utils"
)

// 解释文案里引用的特征词元数上限。
const reasoningFeatureTokens = 5

// HybridNode 是混合融合排序 Node：把内容相似度与协同预测分
// 归一化到同一尺度后做加权融合。
//
// 每个候选：
//
//	content_score = cosine(用户画像, 商品向量)，无画像时为 0
//	cf_score      = predict(user, item) / rating_max
//	blended       = W_content*content_score + W_cf*cf_score
//
// 写入 labels：
//   - dominant_factor: content / collaborative（content_contribution >= cf_contribution 时取 content）
//   - reasoning: 按占优信号生成的解释文案
//   - content_score / cf_score: 原始分量，便于 explain / 观测
//
// 只打分不排序，排序交给 rerank.SortNode（阈值过滤在 filter 阶段）。
type HybridNode struct {
	// Vectorizer 当次快照上拟合好的内容向量空间
	Vectorizer core.ContentVectorizer

	// Predictor 当次快照上训练好的隐因子模型
	Predictor core.LatentFactorModel

	// Profile 用户画像向量；nil 表示无画像（content_score 恒为 0）
	Profile core.Vector

	// Config 融合权重与评分取值域
	Config core.EngineConfig
}

func (n *HybridNode) Name() string        { return "rank.hybrid" }
func (n *HybridNode) Kind() pipeline.Kind { return pipeline.KindRank }

func (n *HybridNode) Process(
	_ context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if n.Vectorizer == nil || n.Predictor == nil || len(items) == 0 {
		return items, nil
	}

	for _, it := range items {
		if it == nil || it.Product == nil {
			continue
		}

		var contentScore float64
		if n.Profile != nil {
			contentScore = n.Vectorizer.Similarity(n.Profile, n.Vectorizer.ItemVector(it.ID))
		}

		predicted := n.Predictor.Predict(rctx.UserID, it.ID)
		cfScore := predicted / n.Config.RatingMax

		contentContribution := n.Config.ContentWeight * contentScore
		cfContribution := n.Config.CFWeight * cfScore
		it.Score = contentContribution + cfContribution

		factor := core.FactorCollaborative
		reasoning := fmt.Sprintf(
			"highly rated by similar users (predicted score: %.2f out of %.0f).",
			predicted, n.Config.RatingMax,
		)
		if contentContribution >= cfContribution {
			factor = core.FactorContent
			reasoning = fmt.Sprintf(
				"interest in features: %s and product content.",
				leadingFeatures(it.Product.Features),
			)
		}

		it.PutLabel("dominant_factor", utils.Label{Value: string(factor), Source: "rank"})
		it.PutLabel("reasoning", utils.Label{Value: reasoning, Source: "rank"})
		it.PutLabel("content_score", utils.Label{Value: fmt.Sprintf("%.4f", contentScore), Source: "rank"})
		it.PutLabel("cf_score", utils.Label{Value: fmt.Sprintf("%.4f", cfScore), Source: "rank"})
	}
	return items, nil
}

// leadingFeatures 取商品特征的前几个词元，用于内容占优时的解释文案。
func leadingFeatures(features []string) string {
	if len(features) > reasoningFeatureTokens {
		features = features[:reasoningFeatureTokens]
	}
	return strings.Join(features, ", ")
}
