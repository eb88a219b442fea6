package filter

import (
	"context"
	"fmt"

	"github.com/rushteam/hybridrec/core"
	"github.com/rushteam/hybridrec/pkg/dsl"
)

// RuleFilter 是规则过滤器：用 CEL 表达式描述“什么样的候选要被剔除”。
// 业务侧可以在不改代码的情况下屏蔽类目、价格带或特定标签的商品。
//
// 示例：
//
//	f, _ := filter.NewRuleFilter(`item.category == "restricted"`)
type RuleFilter struct {
	rule *dsl.Rule
}

// NewRuleFilter 编译表达式并创建规则过滤器。
// 表达式求值为 true 的物品会被过滤掉。
func NewRuleFilter(expr string) (*RuleFilter, error) {
	rule, err := dsl.CompileRule(expr)
	if err != nil {
		return nil, fmt.Errorf("rule filter: %w", err)
	}
	return &RuleFilter{rule: rule}, nil
}

func (f *RuleFilter) Name() string {
	return "filter.rule"
}

func (f *RuleFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil || f.rule == nil {
		return false, nil
	}
	return f.rule.Evaluate(item, rctx)
}
