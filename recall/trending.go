package recall

import (
	"context"

	"github.com/AbdulMuhamid/QuickShop/core"
	"github.com/AbdulMuhamid/QuickShop/pkg/utils"
)

// Trending 是热门召回源，也是整个引擎的无个性化兜底：
// 新用户、未知用户、其他路径全部失败时，最终都落到它。
//
// 排序口径：浏览量降序 > 购买量降序 > 评分降序。
//
// 两条读路径：
//   - 如果配置了 KV Store + Key，先走 ZSet 快路径（离线任务维护的热门榜）
//   - 否则（或快路径为空）从目录按标准热门排序取 TopK
type Trending struct {
	Catalog core.ProductCatalog

	// Store/Key 可选：热门榜 ZSet 的 KV 存储与 key（如 "trending:products"）
	Store core.KeyValueStore
	Key   string

	// TopK 返回的候选数上限，0 表示取 rctx.Limit
	TopK int
}

func (r *Trending) Name() string {
	return "recall.trending"
}

func (r *Trending) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	topK := r.TopK
	if topK <= 0 && rctx != nil {
		topK = rctx.Limit
	}
	if topK <= 0 {
		topK = 10
	}

	// ZSet 快路径
	if r.Store != nil && r.Key != "" {
		members, err := r.Store.ZRange(ctx, r.Key, 0, int64(topK)-1)
		if err == nil && len(members) > 0 {
			out := make([]*core.Item, 0, len(members))
			for _, id := range members {
				it := core.NewItem(id)
				it.PutLabel("recall_source", utils.Label{Value: "trending", Source: "recall"})
				out = append(out, it)
			}
			return out, nil
		}
		// 快路径不可用时静默回落到目录查询
	}

	if r.Catalog == nil {
		return nil, nil
	}
	products, err := r.Catalog.FindAllSorted(ctx, core.TrendingSort(), topK)
	if err != nil {
		return nil, err
	}

	out := make([]*core.Item, 0, len(products))
	for _, p := range products {
		if p == nil {
			continue
		}
		it := core.NewItem(p.ID)
		it.AttachProduct(p)
		it.PutLabel("recall_source", utils.Label{Value: "trending", Source: "recall"})
		out = append(out, it)
	}
	return out, nil
}
