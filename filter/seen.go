package filter

import (
	"context"
	"sync"

	"github.com/AbdulMuhamid/QuickShop/core"
)

// SeenProducts 过滤掉用户已经交互过的商品。
//
// 发现型推荐（协同/内容）的硬性约束：不把用户看过的东西再推给他。
// 召回源内部已经做了排除，这个过滤器是配置驱动 Pipeline
// 的独立兜底，也便于在自定义链路里单独复用。
//
// 实例是请求级的：首次调用时拉一次行为历史并缓存，
// 同一个实例不要跨请求复用。
type SeenProducts struct {
	Behaviors core.BehaviorStore

	// HistoryLimit 参与排除的行为条数上限，默认 50
	HistoryLimit int

	once sync.Once
	seen map[string]struct{}
	err  error
}

func (f *SeenProducts) Name() string {
	return "filter.seen_products"
}

func (f *SeenProducts) ShouldFilter(
	ctx context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil || rctx == nil || rctx.UserID == "" || f.Behaviors == nil {
		return false, nil
	}

	f.once.Do(func() {
		limit := f.HistoryLimit
		if limit <= 0 {
			limit = 50
		}
		events, err := f.Behaviors.FindByUser(ctx, rctx.UserID, limit)
		if err != nil {
			f.err = err
			return
		}
		f.seen = make(map[string]struct{}, len(events))
		for _, ev := range events {
			if ev.HasProduct() {
				f.seen[ev.ProductID] = struct{}{}
			}
		}
	})
	if f.err != nil {
		// 历史拉取失败：放行，召回源内部的排除仍然生效
		return false, f.err
	}

	_, ok := f.seen[item.ID]
	return ok, nil
}
