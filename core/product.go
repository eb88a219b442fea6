package core

import "time"

// Product 是目录快照中的一个商品。
// ID 是存储层主键（交互日志引用它）；ProductID 是目录侧的对外编号，
// 两者不同：输出给调用方的是 ProductID，内部匹配用 ID。
// 在一次请求内 Product 是只读的。
type Product struct {
	ID           string   `json:"id"`
	ProductID    string   `json:"product_id"`
	Name         string   `json:"name"`
	Category     string   `json:"category"`
	Price        float64  `json:"price"`
	Description  string   `json:"description"`
	Features     []string `json:"features"`
	Rating       float64  `json:"rating"`
	ReviewsCount int      `json:"reviews_count"`
}

// ActionType 是交互行为类型。
type ActionType string

const (
	ActionView      ActionType = "view"
	ActionAddToCart ActionType = "add_to_cart"
	ActionPurchase  ActionType = "purchase"
	ActionRating    ActionType = "rating"
)

// Interaction 是交互日志中的一行：(user, product, value)。
// ProductID 引用 Product.ID（存储层主键）。Value 的取值域是 [1.0, 5.0]。
// 同一 (user, product) 可以出现多行，模型把每行独立看待，不做去重或聚合。
type Interaction struct {
	UserID    string     `json:"user_id"`
	ProductID string     `json:"product_id"`
	Action    ActionType `json:"action_type,omitempty"`
	Value     float64    `json:"value"`
	CreatedAt time.Time  `json:"created_at,omitempty"`
}

// DominantFactor 标记一条推荐里哪个信号的贡献更大，用于选择解释文案。
type DominantFactor string

const (
	// FactorContent 内容信号占优（content_contribution >= cf_contribution）
	FactorContent DominantFactor = "content"
	// FactorCollaborative 协同信号占优
	FactorCollaborative DominantFactor = "collaborative"
)

// Recommendation 是引擎的输出记录。
// Score 是融合分，已四舍五入到 4 位小数；Reasoning 是可读的解释文案。
type Recommendation struct {
	ProductID      string         `json:"product_id"`
	Score          float64        `json:"score"`
	Reasoning      string         `json:"reasoning"`
	DominantFactor DominantFactor `json:"dominant_factor,omitempty"`
}
