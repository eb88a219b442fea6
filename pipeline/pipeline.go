package pipeline

import (
	"context"

	"github.com/rushteam/hybridrec/core"
)

// Pipeline 把一次打分请求拆成顺序执行的 Node 链。
// 混合引擎的常规链路：候选召回 -> 融合打分 -> 阈值/规则过滤 -> 排序 -> 截断；
// 兜底链路只有热度召回 + 截断。任一 Node 出错即中断，错误原样上抛。
type Pipeline struct {
	Nodes []Node
}

// Run 依次执行所有 Node，把上一个 Node 的输出作为下一个的输入。
// nil Node 被跳过（配置驱动装配时允许出现空位）。
func (p *Pipeline) Run(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	cur := items
	for _, node := range p.Nodes {
		if node == nil {
			continue
		}
		next, err := node.Process(ctx, rctx, cur)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}
