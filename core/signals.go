package core

// Vector 是稀疏内容向量：词项 -> TF-IDF 权重。
// 词表按当次目录快照拟合，不跨请求持久化，因此向量含义只在同一快照内可比。
type Vector map[string]float64

// ContentVectorizer 是内容信号的可替换接口：文本 -> 稀疏向量 + 相似度。
// 任意数值后端（自实现 TF-IDF、外部向量库）满足此契约即可接入。
type ContentVectorizer interface {
	// ItemVector 返回商品的内容向量；商品不在本次快照词表内时返回 nil。
	ItemVector(productID string) Vector

	// Similarity 计算两个向量的余弦相似度，取值 [-1,1]；
	// 非负 TF-IDF 权重下实际落在 [0,1]。
	Similarity(a, b Vector) float64
}

// LatentFactorModel 是协同信号的可替换接口：train(ratings) -> predictor。
type LatentFactorModel interface {
	// Predict 预测 (user, product) 的评分估计，对训练集中未出现的
	// 用户/商品也有效：回落到全局均值加学习到的偏置，而不是报错。
	Predict(userID, productID string) float64
}
