package model

import (
	"context"
	"math"
	"math/rand"
	"strconv"

	"github.com/rushteam/hybridrec/core"
)

// SVDModel 是带偏置的矩阵分解模型（Funk-SVD 一族）。
//
// 预测：r̂ = μ + b_u + b_i + p_u · q_i
//
// 训练：全量 SGD，每行交互独立看待（不去重、不聚合）：
//
//	err = r - r̂
//	b_u += lr * (err - reg * b_u)
//	b_i += lr * (err - reg * b_i)
//	p_u += lr * (err * q_i - reg * p_u)
//	q_i += lr * (err * p_u - reg * q_i)
//
// 训练集中未出现的用户/商品回落到 μ 加已学到的单侧偏置，不报错——
// 这正是分解相对记忆化的意义所在。
type SVDModel struct {
	factors int
	mu      float64 // 全局均值

	userIndex map[string]int
	itemIndex map[string]int

	userBias []float64
	itemBias []float64

	userFactors [][]float64
	itemFactors [][]float64

	ratingMin float64
	ratingMax float64
}

// initStdDev 隐因子初始化的正态分布标准差。
const initStdDev = 0.1

// TrainSVD 在完整交互表上训练矩阵分解模型。
// 评分按 [cfg.RatingMin, cfg.RatingMax]（由 scaleMin/scaleMax 传入）截断；
// 训练同步、全量、从零开始。ctx 超时/取消会在 epoch 边界生效，
// 返回可恢复的 TRAIN_TIMEOUT 错误。
func TrainSVD(
	ctx context.Context,
	interactions []core.Interaction,
	cfg core.TrainerConfig,
	scaleMin, scaleMax float64,
) (*SVDModel, error) {
	m := &SVDModel{
		factors:   cfg.Factors,
		userIndex: make(map[string]int),
		itemIndex: make(map[string]int),
		ratingMin: scaleMin,
		ratingMax: scaleMax,
	}

	if len(interactions) == 0 {
		return m, nil
	}

	// 编号用户与商品（按交互出现顺序，保证确定性）
	type rating struct {
		u, i int
		r    float64
	}
	ratings := make([]rating, 0, len(interactions))
	var sum float64
	for _, in := range interactions {
		u, ok := m.userIndex[in.UserID]
		if !ok {
			u = len(m.userIndex)
			m.userIndex[in.UserID] = u
		}
		i, ok := m.itemIndex[in.ProductID]
		if !ok {
			i = len(m.itemIndex)
			m.itemIndex[in.ProductID] = i
		}
		r := clamp(in.Value, scaleMin, scaleMax)
		ratings = append(ratings, rating{u: u, i: i, r: r})
		sum += r
	}
	m.mu = sum / float64(len(ratings))

	nu, ni := len(m.userIndex), len(m.itemIndex)
	m.userBias = make([]float64, nu)
	m.itemBias = make([]float64, ni)

	rng := rand.New(rand.NewSource(cfg.Seed))
	m.userFactors = randomFactors(rng, nu, cfg.Factors)
	m.itemFactors = randomFactors(rng, ni, cfg.Factors)

	lr, reg := cfg.LearningRate, cfg.Regularization
	for epoch := 0; epoch < cfg.Epochs; epoch++ {
		if err := ctx.Err(); err != nil {
			return nil, core.NewDomainError(core.ModuleModel, core.ErrorCodeTrainTimeout,
				"model: training deadline exceeded at epoch "+strconv.Itoa(epoch))
		}
		for _, rt := range ratings {
			pu := m.userFactors[rt.u]
			qi := m.itemFactors[rt.i]

			var dot float64
			for f := 0; f < m.factors; f++ {
				dot += pu[f] * qi[f]
			}
			err := rt.r - (m.mu + m.userBias[rt.u] + m.itemBias[rt.i] + dot)

			m.userBias[rt.u] += lr * (err - reg*m.userBias[rt.u])
			m.itemBias[rt.i] += lr * (err - reg*m.itemBias[rt.i])
			for f := 0; f < m.factors; f++ {
				puf := pu[f]
				pu[f] += lr * (err*qi[f] - reg*puf)
				qi[f] += lr * (err*puf - reg*qi[f])
			}
		}
	}
	return m, nil
}

// Predict 预测 (user, product) 的评分估计，结果截断到评分取值域。
// 未知用户/商品只累加已知一侧的偏置；两侧都未知时退化为全局均值。
func (m *SVDModel) Predict(userID, productID string) float64 {
	est := m.mu
	u, knownUser := m.userIndex[userID]
	i, knownItem := m.itemIndex[productID]

	if knownUser {
		est += m.userBias[u]
	}
	if knownItem {
		est += m.itemBias[i]
	}
	if knownUser && knownItem {
		pu, qi := m.userFactors[u], m.itemFactors[i]
		for f := 0; f < m.factors; f++ {
			est += pu[f] * qi[f]
		}
	}
	return clamp(est, m.ratingMin, m.ratingMax)
}

// GlobalMean 返回训练集的全局评分均值（用于观测与测试）。
func (m *SVDModel) GlobalMean() float64 {
	return m.mu
}

func randomFactors(rng *rand.Rand, n, factors int) [][]float64 {
	out := make([][]float64, n)
	for i := range out {
		row := make([]float64, factors)
		for f := range row {
			row[f] = rng.NormFloat64() * initStdDev
		}
		out[i] = row
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

var _ core.LatentFactorModel = (*SVDModel)(nil)
