package core

import (
	"fmt"
	"time"
)

// TrainerConfig 是隐因子模型的训练超参数。
type TrainerConfig struct {
	// Factors 隐因子维度
	Factors int `yaml:"factors" json:"factors"`
	// Epochs 全量训练轮数
	Epochs int `yaml:"epochs" json:"epochs"`
	// LearningRate SGD 学习率
	LearningRate float64 `yaml:"learning_rate" json:"learning_rate"`
	// Regularization L2 正则系数
	Regularization float64 `yaml:"regularization" json:"regularization"`
	// Seed 随机种子；固定快照 + 固定种子 => 输出完全可复现
	Seed int64 `yaml:"seed" json:"seed"`
}

// CacheConfig 控制快照级模型缓存。
// 默认关闭：每次请求全量重训，始终反映最新数据。
// 开启后以快照哈希为 key 缓存已训练信号，有界过期（TTL）。
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" json:"enabled"`
	TTL     time.Duration `yaml:"ttl" json:"ttl"`
}

// EngineConfig 是混合推荐引擎的配置面。
// 权重/阈值作为显式配置传入融合步骤，而不是模块级常量。
type EngineConfig struct {
	// Limit 输出条数上限
	Limit int `yaml:"limit" json:"limit"`

	// ContentWeight / CFWeight 融合权重，两者之和应为 1.0，
	// 否则融合分会越出 [0,1]。
	ContentWeight float64 `yaml:"content_weight" json:"content_weight"`
	CFWeight      float64 `yaml:"cf_weight" json:"cf_weight"`

	// RelevanceThreshold 融合分低于此值的候选被丢弃
	RelevanceThreshold float64 `yaml:"relevance_threshold" json:"relevance_threshold"`

	// RatingMin / RatingMax 评分取值域；cf_score = predicted / RatingMax
	RatingMin float64 `yaml:"rating_min" json:"rating_min"`
	RatingMax float64 `yaml:"rating_max" json:"rating_max"`

	// TrainingTimeout 训练阶段的截止时间；0 表示不限制。
	// 超时返回可恢复错误（TRAIN_TIMEOUT），由 facade 快速失败。
	TrainingTimeout time.Duration `yaml:"training_timeout" json:"training_timeout"`

	Trainer TrainerConfig `yaml:"trainer" json:"trainer"`
	Cache   CacheConfig   `yaml:"cache" json:"cache"`
}

// DefaultEngineConfig 返回默认配置。
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Limit:              5,
		ContentWeight:      0.7,
		CFWeight:           0.3,
		RelevanceThreshold: 0.4,
		RatingMin:          1.0,
		RatingMax:          5.0,
		Trainer: TrainerConfig{
			Factors:        100,
			Epochs:         20,
			LearningRate:   0.005,
			Regularization: 0.02,
			Seed:           1,
		},
	}
}

// Validate 校验配置合法性。
func (c EngineConfig) Validate() error {
	if c.Limit <= 0 {
		return fmt.Errorf("limit must be positive, got %d", c.Limit)
	}
	if sum := c.ContentWeight + c.CFWeight; sum < 0.999 || sum > 1.001 {
		return fmt.Errorf("content_weight + cf_weight must sum to 1.0, got %v", sum)
	}
	if c.ContentWeight < 0 || c.CFWeight < 0 {
		return fmt.Errorf("weights must be non-negative")
	}
	if c.RelevanceThreshold < 0 || c.RelevanceThreshold >= 1 {
		return fmt.Errorf("relevance_threshold must be in [0,1), got %v", c.RelevanceThreshold)
	}
	if c.RatingMax <= c.RatingMin {
		return fmt.Errorf("rating_max must be greater than rating_min")
	}
	if c.Trainer.Factors <= 0 {
		return fmt.Errorf("trainer.factors must be positive, got %d", c.Trainer.Factors)
	}
	if c.Trainer.Epochs <= 0 {
		return fmt.Errorf("trainer.epochs must be positive, got %d", c.Trainer.Epochs)
	}
	if c.Trainer.LearningRate <= 0 {
		return fmt.Errorf("trainer.learning_rate must be positive")
	}
	if c.Trainer.Regularization < 0 {
		return fmt.Errorf("trainer.regularization must be non-negative")
	}
	if c.Cache.Enabled && c.Cache.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be positive when cache is enabled")
	}
	return nil
}
