package recall

import (
	"context"

	"github.com/AbdulMuhamid/QuickShop/core"
)

// Source 表示一个可复用的召回源（协同/内容/热门/...）。
// 你可以把它理解为"可并发 fan-out 的策略单元"：
// Fanout 并发执行多个 Source，再按策略合并各自的有序候选列表。
type Source interface {
	Name() string
	Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.Item, error)
}
