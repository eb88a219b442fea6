package model

import (
	"math"
	"strings"

	"github.com/rushteam/hybridrec/core"
	"github.com/rushteam/hybridrec/pkg/textutil"
)

// TFIDFVectorizer 是内容向量空间：把商品文本映射为共享词表上的稀疏向量。
//
// 核心思想：
//   - 语料 = description + " " + features（features 按空格拼接）
//   - 权重 = 词频 TF * 逆文档频率 IDF，英文停用词被剔除
//   - 向量做 L2 归一化，因此余弦相似度退化为点积
//
// 词表与 IDF 按当次目录快照拟合，不跨请求持久化：
// 目录不同则向量含义不同，按请求重新拟合是契约的一部分。
type TFIDFVectorizer struct {
	// idf 词项 -> 逆文档频率
	idf map[string]float64

	// vectors 商品（按存储层主键）-> 归一化 TF-IDF 向量
	vectors map[string]core.Vector

	// docs 语料文档数（= 快照商品数）
	docs int
}

// FitTFIDF 在目录快照上拟合向量空间。
// 缺失 description 按空串处理；features 为序列时用单个空格拼接。
func FitTFIDF(products []core.Product) *TFIDFVectorizer {
	v := &TFIDFVectorizer{
		idf:     make(map[string]float64),
		vectors: make(map[string]core.Vector, len(products)),
		docs:    len(products),
	}
	if len(products) == 0 {
		return v
	}

	// 1. 分词并统计词频、文档频率
	counts := make([]map[string]float64, len(products))
	df := make(map[string]int)
	for i, p := range products {
		corpus := p.Description + " " + strings.Join(p.Features, " ")
		tokens := textutil.Tokenize(corpus)

		tf := make(map[string]float64, len(tokens))
		for _, tok := range tokens {
			tf[tok]++
		}
		counts[i] = tf
		for tok := range tf {
			df[tok]++
		}
	}

	// 2. 平滑 IDF：ln((1+n)/(1+df)) + 1，保证权重非负
	n := float64(len(products))
	for tok, d := range df {
		v.idf[tok] = math.Log((1+n)/(1+float64(d))) + 1
	}

	// 3. 加权并做 L2 归一化
	for i, p := range products {
		vec := make(core.Vector, len(counts[i]))
		var norm float64
		for tok, tf := range counts[i] {
			w := tf * v.idf[tok]
			vec[tok] = w
			norm += w * w
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for tok := range vec {
				vec[tok] /= norm
			}
		}
		v.vectors[p.ID] = vec
	}
	return v
}

// ItemVector 返回商品的内容向量；商品不在本次快照内时返回 nil。
func (v *TFIDFVectorizer) ItemVector(productID string) core.Vector {
	return v.vectors[productID]
}

// VocabularySize 返回词表大小（用于观测与测试）。
func (v *TFIDFVectorizer) VocabularySize() int {
	return len(v.idf)
}

// Similarity 计算两个稀疏向量的余弦相似度。
// 非负 TF-IDF 权重下取值落在 [0,1]。
func (v *TFIDFVectorizer) Similarity(a, b core.Vector) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	// 只遍历较小的一侧
	if len(b) < len(a) {
		a, b = b, a
	}
	var dot, normA, normB float64
	for tok, wa := range a {
		normA += wa * wa
		if wb, ok := b[tok]; ok {
			dot += wa * wb
		}
	}
	for _, wb := range b {
		normB += wb * wb
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// UserProfile 计算用户画像向量：历史商品向量的逐元素均值，
// 只统计出现在当前快照里的商品；一个都没匹配上时返回 (nil, false)，
// 由调用方走兜底分支。
func (v *TFIDFVectorizer) UserProfile(historyIDs []string) (core.Vector, bool) {
	matched := 0
	sum := make(core.Vector)
	for _, id := range historyIDs {
		vec, ok := v.vectors[id]
		if !ok {
			continue
		}
		matched++
		for tok, w := range vec {
			sum[tok] += w
		}
	}
	if matched == 0 {
		return nil, false
	}
	inv := 1 / float64(matched)
	for tok := range sum {
		sum[tok] *= inv
	}
	return sum, true
}

var _ core.ContentVectorizer = (*TFIDFVectorizer)(nil)
