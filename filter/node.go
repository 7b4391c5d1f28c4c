package filter

import (
	"context"

	"github.com/AbdulMuhamid/QuickShop/core"
	"github.com/AbdulMuhamid/QuickShop/pipeline"
	"github.com/AbdulMuhamid/QuickShop/pkg/utils"
)

// Node 是过滤 Node，可以组合多个过滤器进行过滤。
// 任何一个过滤器返回 true，该商品就会被过滤掉。
// 单个过滤器出错时跳过该过滤器（宁可多推不可中断请求）。
type Node struct {
	Filters []Filter
}

func (n *Node) Name() string {
	return "filter.node"
}

func (n *Node) Kind() pipeline.Kind {
	return pipeline.KindFilter
}

func (n *Node) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(n.Filters) == 0 || len(items) == 0 {
		return items, nil
	}

	out := make([]*core.Item, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}

		drop := false
		reason := ""
		for _, f := range n.Filters {
			ok, err := f.ShouldFilter(ctx, rctx, item)
			if err != nil {
				continue
			}
			if ok {
				drop = true
				reason = f.Name()
				break
			}
		}

		if drop {
			// 记录过滤原因（调试/观测）
			item.PutLabel("filtered", utils.Label{Value: "true", Source: reason})
			continue
		}
		out = append(out, item)
	}
	return out, nil
}
