package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/hybridrec/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvOnce sync.Once
	celEnvErr  error
)

// initCELEnv 初始化 CEL 环境，定义变量
func initCELEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("item", cel.DynType),
		cel.Variable("label", cel.DynType),
		cel.Variable("rctx", cel.DynType),
	)
}

// getCELEnv 获取或创建 CEL 环境
func getCELEnv() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = initCELEnv()
	})
	return celEnv, celEnvErr
}

// Rule 是一条编译好的过滤/策略规则，使用 CEL (Common Expression Language) 实现。
// 表达式编译一次，可对任意 (item, rctx) 重复求值，线程安全。
//
// 表达式语法（CEL 标准语法）：
//   - 数值：item.score > 0.7 / item.score >= 0.5
//   - 商品字段：item.category == "electronics" / item.price < 100.0
//   - 标签：label.dominant_factor == "content"
//   - 逻辑组合：label.recall_source == "candidates" && item.score > 0.5
//
// 示例：
//   - `item.category != "restricted"` → 屏蔽受限类目
//   - `label.dominant_factor == "collaborative" && item.score < 0.5` → 低分协同结果
type Rule struct {
	expr string
	prg  cel.Program
}

// CompileRule 编译一条规则表达式。
func CompileRule(expr string) (*Rule, error) {
	if expr == "" {
		return nil, fmt.Errorf("empty rule expression")
	}
	env, err := getCELEnv()
	if err != nil {
		return nil, fmt.Errorf("cel env: %w", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile error: %v", issues.Err())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %v", err)
	}
	return &Rule{expr: expr, prg: prg}, nil
}

// Expr 返回规则的原始表达式。
func (r *Rule) Expr() string { return r.expr }

// Evaluate 对 (item, rctx) 求值，返回布尔结果。
// 表达式结果非布尔类型视为错误。
func (r *Rule) Evaluate(item *core.Item, rctx *core.RecommendContext) (bool, error) {
	out, _, err := r.prg.Eval(buildInput(item, rctx))
	if err != nil {
		// 访问不存在的 key 时 CEL 会报错；用 label.key != null 检查存在性
		return false, fmt.Errorf("eval error: %v", err)
	}

	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression must return boolean, got %T", out.Value())
	}
	return result, nil
}

// buildInput 构建 CEL 表达式的输入数据
func buildInput(item *core.Item, rctx *core.RecommendContext) map[string]interface{} {
	// label.key 直接取 Label.Value，方便表达式书写
	labelAccessor := make(map[string]interface{}, len(item.Labels))
	for k, v := range item.Labels {
		labelAccessor[k] = v.Value
	}

	itemInput := map[string]interface{}{
		"id":     item.ID,
		"score":  item.Score,
		"meta":   item.Meta,
		"labels": labelAccessor,
	}
	if p := item.Product; p != nil {
		itemInput["product_id"] = p.ProductID
		itemInput["name"] = p.Name
		itemInput["category"] = p.Category
		itemInput["price"] = p.Price
		itemInput["rating"] = p.Rating
	}

	rctxInput := map[string]interface{}{}
	if rctx != nil {
		rctxInput["user_id"] = rctx.UserID
		rctxInput["params"] = rctx.Params
	}

	return map[string]interface{}{
		"item":  itemInput,
		"label": labelAccessor,
		"rctx":  rctxInput,
	}
}
