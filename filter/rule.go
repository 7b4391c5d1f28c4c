package filter

import (
	"context"

	"github.com/AbdulMuhamid/QuickShop/core"
	"github.com/AbdulMuhamid/QuickShop/pkg/dsl"
)

// Rule 是表达式驱动的业务过滤器，规则用 CEL 表达式描述，
// 命中的商品被过滤。适合运营侧不改代码调整策略：
//
//	item.features.price > 1000.0            // 屏蔽高价商品
//	item.meta.category == "Food"            // 屏蔽某类目
//	item.features.stock == 0.0              // 屏蔽无库存
//	label.recall_source.contains("content") // 屏蔽某条召回路径
//
// 表达式在 NewRule 时编译一次，逐 item 求值。
// 价格/库存等属性需要 enrich 节点先行注入（见 feature.CatalogEnrich）。
type Rule struct {
	program *dsl.Program
}

// NewRule 编译规则表达式，表达式非法时返回错误。
func NewRule(expr string) (*Rule, error) {
	program, err := dsl.Compile(expr)
	if err != nil {
		return nil, err
	}
	return &Rule{program: program}, nil
}

func (f *Rule) Name() string {
	return "filter.rule"
}

// Expr 返回规则表达式文本。
func (f *Rule) Expr() string {
	return f.program.Expr()
}

func (f *Rule) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return false, nil
	}
	return f.program.Match(item, rctx)
}
