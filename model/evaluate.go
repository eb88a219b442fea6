package model

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"github.com/rushteam/hybridrec/core"
)

// FoldMetrics 是一折交叉验证的精度指标。
type FoldMetrics struct {
	Fold int
	RMSE float64
	MAE  float64
}

// CVResult 是 k 折交叉验证的汇总结果。
type CVResult struct {
	Folds    []FoldMetrics
	MeanRMSE float64
	MeanMAE  float64
}

// CrossValidateSVD 对矩阵分解模型做 k 折交叉验证，评估 RMSE/MAE。
// 划分用独立的 seed 做确定性洗牌，与训练 seed 互不影响。
// 用于离线模型体检（recanalyze），不在在线链路上。
func CrossValidateSVD(
	ctx context.Context,
	interactions []core.Interaction,
	cfg core.TrainerConfig,
	scaleMin, scaleMax float64,
	k int,
	seed int64,
) (*CVResult, error) {
	if k < 2 {
		return nil, fmt.Errorf("cross validation requires k >= 2, got %d", k)
	}
	if len(interactions) < k {
		return nil, fmt.Errorf("not enough interactions for %d folds: %d rows", k, len(interactions))
	}

	idx := rand.New(rand.NewSource(seed)).Perm(len(interactions))

	result := &CVResult{Folds: make([]FoldMetrics, 0, k)}
	foldSize := len(interactions) / k

	for fold := 0; fold < k; fold++ {
		lo := fold * foldSize
		hi := lo + foldSize
		if fold == k-1 {
			hi = len(interactions)
		}

		test := make([]core.Interaction, 0, hi-lo)
		train := make([]core.Interaction, 0, len(interactions)-(hi-lo))
		for pos, i := range idx {
			if pos >= lo && pos < hi {
				test = append(test, interactions[i])
			} else {
				train = append(train, interactions[i])
			}
		}

		m, err := TrainSVD(ctx, train, cfg, scaleMin, scaleMax)
		if err != nil {
			return nil, fmt.Errorf("fold %d: %w", fold, err)
		}

		var sqSum, absSum float64
		for _, in := range test {
			truth := clamp(in.Value, scaleMin, scaleMax)
			diff := truth - m.Predict(in.UserID, in.ProductID)
			sqSum += diff * diff
			absSum += math.Abs(diff)
		}
		n := float64(len(test))
		fm := FoldMetrics{
			Fold: fold,
			RMSE: math.Sqrt(sqSum / n),
			MAE:  absSum / n,
		}
		result.Folds = append(result.Folds, fm)
		result.MeanRMSE += fm.RMSE
		result.MeanMAE += fm.MAE
	}

	result.MeanRMSE /= float64(k)
	result.MeanMAE /= float64(k)
	return result, nil
}
