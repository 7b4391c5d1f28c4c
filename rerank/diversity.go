package rerank

import (
	"context"

	"github.com/AbdulMuhamid/QuickShop/core"
	"github.com/AbdulMuhamid/QuickShop/pipeline"
)

// Diversity 是简单的类目多样性重排：每个类目最多保留 MaxPerCategory 个，
// 防止结果页被单一类目刷屏。类目取自 item.Meta["category"]
// （召回源或 enrich 节点注入）；拿不到类目的候选直接保留。
type Diversity struct {
	// MaxPerCategory 每个类目保留的上限，默认 1
	MaxPerCategory int
}

func (n *Diversity) Name() string {
	return "rerank.diversity"
}

func (n *Diversity) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *Diversity) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(items) == 0 {
		return items, nil
	}

	max := n.MaxPerCategory
	if max <= 0 {
		max = 1
	}

	counts := make(map[string]int, 16)
	out := make([]*core.Item, 0, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}

		category := ""
		if it.Meta != nil {
			if s, ok := it.Meta["category"].(string); ok {
				category = s
			}
		}
		if category == "" {
			out = append(out, it)
			continue
		}
		if counts[category] >= max {
			continue
		}
		counts[category]++
		out = append(out, it)
	}
	return out, nil
}
