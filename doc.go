// Package hybridrec 是一个混合推荐打分引擎（Hybrid Recommendation Scoring Engine）。
//
// 设计要点：
// - 双信号融合: 内容相似度（TF-IDF）与协同过滤（矩阵分解）归一化后加权融合
// - Pipeline-first: 打分链路通过 Node 串联（Recall → Rank → Filter → ReRank）
// - Labels-first: reasoning / dominant_factor 等解释信息全链路透传
// - 按请求全量重训: 每次调用读最新快照、从零训练，无跨请求状态
package hybridrec

import "github.com/rushteam/hybridrec/pipeline"

// 轻量 facade：便于用户直接 import "hybridrec" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindRecall      = pipeline.KindRecall
	KindRank        = pipeline.KindRank
	KindFilter      = pipeline.KindFilter
	KindReRank      = pipeline.KindReRank
	KindPostProcess = pipeline.KindPostProcess
)
