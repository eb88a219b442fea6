package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/hybridrec/core"
	"github.com/rushteam/hybridrec/filter"
	"github.com/rushteam/hybridrec/model"
	"github.com/rushteam/hybridrec/pipeline"
	"github.com/rushteam/hybridrec/rank"
	"github.com/rushteam/hybridrec/recall"
	"github.com/rushteam/hybridrec/rerank"
)

// 兜底分支的解释文案与固定分。
const (
	// ReasoningColdStart 全局冷启动：交互表整体为空
	ReasoningColdStart = "popularity-based, no interaction history available."
	// ReasoningNoProfile 画像失败：用户有交互但没有一条能映射进当前目录快照
	ReasoningNoProfile = "no catalog-matching history; defaulting to popularity."

	coldStartScore = 1.0
	noProfileScore = 0.5
)

// ErrMissingUserID 表示请求没有携带用户标识。
var ErrMissingUserID = core.NewDomainError(core.ModuleService, core.ErrorCodeInvalidInput, "service: missing user id")

// Recommender 是混合推荐引擎的服务门面。
//
// 每次调用都是无状态的：读全量快照、计算、返回排好序的列表，
// 不跨调用保留训练好的模型（可选缓存除外，见 CacheConfig）。
//
// 单次请求的状态机：
//
//	FETCH -> {COLD_START | PROFILE_FAILURE | NORMAL}
//	NORMAL: TRAIN_CF ∥ BUILD_CBF -> SCORE -> FILTER -> RANK -> TRUNCATE -> DONE
//
// DONE 之后不保留任何状态。
type Recommender struct {
	store core.SnapshotStore
	cfg   core.EngineConfig

	// extraFilters 追加在阈值过滤之后的业务过滤器（如 CEL 规则）
	extraFilters []filter.Filter

	// cache 快照级信号缓存；未开启时为 nil
	cache *signalCache
}

// Option 配置 Recommender 的可选项。
type Option func(*Recommender)

// WithFilters 追加业务过滤器（在阈值过滤之后执行）。
func WithFilters(filters ...filter.Filter) Option {
	return func(r *Recommender) {
		r.extraFilters = append(r.extraFilters, filters...)
	}
}

// NewRecommender 创建推荐服务。cfg 非法时返回错误。
func NewRecommender(store core.SnapshotStore, cfg core.EngineConfig, opts ...Option) (*Recommender, error) {
	if store == nil {
		return nil, fmt.Errorf("recommender: nil store")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("recommender: %w", err)
	}

	r := &Recommender{store: store, cfg: cfg}
	if cfg.Cache.Enabled {
		r.cache = newSignalCache(cfg.Cache.TTL)
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// GetRecommendations 为用户生成排好序的推荐列表。
// 固定快照 + 固定配置（含种子）下结果完全确定。
// 空数据条件（空目录、空交互、画像不可解析）不是错误，走兜底分支；
// 存储读取失败才会返回 error。
func (r *Recommender) GetRecommendations(ctx context.Context, userID string) ([]core.Recommendation, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}

	// 1. FETCH：并发读取目录与交互快照
	var (
		products     []core.Product
		interactions []core.Interaction
	)
	eg, fetchCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		if products, err = r.store.FetchAllProducts(fetchCtx); err != nil {
			return fmt.Errorf("fetch products: %w", err)
		}
		return nil
	})
	eg.Go(func() error {
		var err error
		if interactions, err = r.store.FetchAllInteractions(fetchCtx); err != nil {
			return fmt.Errorf("fetch interactions: %w", err)
		}
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	// 2. 空目录：整个系统冷启动，直接返回空列表
	if len(products) == 0 {
		return []core.Recommendation{}, nil
	}

	rctx := &core.RecommendContext{UserID: userID}

	// 3. 全局冷启动：交互表为空，按热度兜底，固定分 1.0
	if len(interactions) == 0 {
		return r.popularityFallback(ctx, rctx, products, coldStartScore, ReasoningColdStart)
	}

	// 用户交互历史（按存储层主键）
	historyIDs := make([]string, 0, 8)
	rctx.Interacted = make(map[string]struct{})
	for _, in := range interactions {
		if in.UserID != userID {
			continue
		}
		historyIDs = append(historyIDs, in.ProductID)
		rctx.Interacted[in.ProductID] = struct{}{}
	}

	// 4. TRAIN_CF ∥ BUILD_CBF：两路信号独立准备
	vectorizer, predictor, err := r.prepareSignals(ctx, products, interactions)
	if err != nil {
		return nil, err
	}

	// 5. 画像失败：有交互但没有一条映射进当前快照，按热度兜底，固定分 0.5
	profile, ok := vectorizer.UserProfile(historyIDs)
	if !ok {
		return r.popularityFallback(ctx, rctx, products, noProfileScore, ReasoningNoProfile)
	}

	// 6. SCORE -> FILTER -> RANK -> TRUNCATE
	filters := make([]filter.Filter, 0, 1+len(r.extraFilters))
	filters = append(filters, &filter.ThresholdFilter{Threshold: r.cfg.RelevanceThreshold})
	filters = append(filters, r.extraFilters...)

	p := &pipeline.Pipeline{
		Nodes: []pipeline.Node{
			&recall.CandidateRecall{Products: products},
			&rank.HybridNode{
				Vectorizer: vectorizer,
				Predictor:  predictor,
				Profile:    profile,
				Config:     r.cfg,
			},
			&filter.FilterNode{Filters: filters},
			&rerank.SortNode{},
			&rerank.TopNNode{N: r.cfg.Limit},
		},
	}

	items, err := p.Run(ctx, rctx, nil)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	return assemble(items), nil
}

// prepareSignals 并发准备两路信号：矩阵分解训练与 TF-IDF 拟合。
// 配置了 TrainingTimeout 时训练受截止时间约束，超时返回可恢复错误。
// 开启缓存时按快照哈希复用已训练信号。
func (r *Recommender) prepareSignals(
	ctx context.Context,
	products []core.Product,
	interactions []core.Interaction,
) (*model.TFIDFVectorizer, *model.SVDModel, error) {
	var key uint64
	if r.cache != nil {
		key = snapshotHash(products, interactions)
		if vec, svd, ok := r.cache.get(key); ok {
			return vec, svd, nil
		}
	}

	trainCtx := ctx
	if r.cfg.TrainingTimeout > 0 {
		var cancel context.CancelFunc
		trainCtx, cancel = context.WithTimeout(ctx, r.cfg.TrainingTimeout)
		defer cancel()
	}

	var (
		vectorizer *model.TFIDFVectorizer
		predictor  *model.SVDModel
	)
	eg, egCtx := errgroup.WithContext(trainCtx)
	eg.Go(func() error {
		var err error
		predictor, err = model.TrainSVD(egCtx, interactions, r.cfg.Trainer, r.cfg.RatingMin, r.cfg.RatingMax)
		return err
	})
	eg.Go(func() error {
		vectorizer = model.FitTFIDF(products)
		return nil
	})
	if err := eg.Wait(); err != nil {
		// 截止时间到期统一报告为训练超时
		if errors.Is(trainCtx.Err(), context.DeadlineExceeded) || core.IsTrainTimeout(err) {
			return nil, nil, core.NewDomainError(core.ModuleService, core.ErrorCodeTrainTimeout,
				"service: model training deadline exceeded")
		}
		return nil, nil, fmt.Errorf("prepare signals: %w", err)
	}

	if r.cache != nil {
		r.cache.put(key, vectorizer, predictor)
	}
	return vectorizer, predictor, nil
}

// popularityFallback 运行兜底链路：热度召回 + 截断。
func (r *Recommender) popularityFallback(
	ctx context.Context,
	rctx *core.RecommendContext,
	products []core.Product,
	score float64,
	reasoning string,
) ([]core.Recommendation, error) {
	p := &pipeline.Pipeline{
		Nodes: []pipeline.Node{
			&recall.PopularityRecall{Products: products, FixedScore: score, Reasoning: reasoning},
			&rerank.TopNNode{N: r.cfg.Limit},
		},
	}
	items, err := p.Run(ctx, rctx, nil)
	if err != nil {
		return nil, fmt.Errorf("fallback pipeline: %w", err)
	}
	return assemble(items), nil
}

// assemble 把 pipeline 产出的 items 转为输出记录，分数四舍五入到 4 位小数。
func assemble(items []*core.Item) []core.Recommendation {
	out := make([]core.Recommendation, 0, len(items))
	for _, it := range items {
		if it == nil || it.Product == nil {
			continue
		}
		rec := core.Recommendation{
			ProductID: it.Product.ProductID,
			Score:     round4(it.Score),
		}
		if lbl, ok := it.GetLabel("reasoning"); ok {
			rec.Reasoning = lbl.Value
		}
		if lbl, ok := it.GetLabel("dominant_factor"); ok {
			rec.DominantFactor = core.DominantFactor(lbl.Value)
		}
		out = append(out, rec)
	}
	return out
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
