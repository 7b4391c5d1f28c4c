package recall

import (
	"sort"

	"github.com/AbdulMuhamid/QuickShop/core"
	"github.com/AbdulMuhamid/QuickShop/pkg/utils"
)

// MergeStrategy 把多个召回源各自的有序候选列表合并为一个列表。
// 入参按源序排列（lists[i] 对应 Fanout.Sources[i] 的结果），允许为 nil。
type MergeStrategy interface {
	Name() string
	Merge(lists [][]*core.Item) []*core.Item
}

// FirstMerge 按 ID 去重，保留先出现的（源序优先，默认策略）。
// 重复出现时把后者的 labels 并入保留者，便于追踪多源命中。
type FirstMerge struct{}

func (m *FirstMerge) Name() string { return "first" }

func (m *FirstMerge) Merge(lists [][]*core.Item) []*core.Item {
	seen := make(map[string]*core.Item)
	var out []*core.Item
	for _, list := range lists {
		for _, it := range list {
			if it == nil {
				continue
			}
			if old, ok := seen[it.ID]; ok {
				for k, v := range it.Labels {
					old.PutLabel(k, v)
				}
				continue
			}
			seen[it.ID] = it
			out = append(out, it)
		}
	}
	return out
}

// UnionMerge 简单拼接，不去重（需要保留所有来源明细的场景）。
type UnionMerge struct{}

func (m *UnionMerge) Name() string { return "union" }

func (m *UnionMerge) Merge(lists [][]*core.Item) []*core.Item {
	var out []*core.Item
	for _, list := range lists {
		out = append(out, list...)
	}
	return out
}

// PositionWeightedMerge 是混合排序合并：
// 每个源的列表按位置线性衰减计分，位置 i 贡献 (Base - i) × Weights[源序]，
// 同一商品在多个源出现时贡献相加，最终按累计分降序。
//
// 典型用法：协同源权重 2、内容源权重 1 —— 协同信号来自真实的同伴行为，
// 比属性相似更可信，所以加倍。
//
// 确定性：不依赖随机数和时钟；同分商品保持首次入列顺序，
// 相同输入两次合并产出完全相同的序。
type PositionWeightedMerge struct {
	// Weights 按源序对应每个列表的权重，缺省位取 1
	Weights []float64

	// Base 位置衰减基数，通常取本次请求的 limit。
	// 必须为正；<= 0 时以最长列表长度兜底。
	Base int
}

func (m *PositionWeightedMerge) Name() string { return "position_weighted" }

func (m *PositionWeightedMerge) Merge(lists [][]*core.Item) []*core.Item {
	base := m.Base
	if base <= 0 {
		for _, list := range lists {
			if len(list) > base {
				base = len(list)
			}
		}
	}
	if base <= 0 {
		return nil
	}

	scores := make(map[string]float64)
	merged := make(map[string]*core.Item)
	var order []string

	for src, list := range lists {
		weight := 1.0
		if src < len(m.Weights) && m.Weights[src] != 0 {
			weight = m.Weights[src]
		}
		for i, it := range list {
			if it == nil {
				continue
			}
			contribution := float64(base-i) * weight

			if old, ok := merged[it.ID]; ok {
				scores[it.ID] += contribution
				for k, v := range it.Labels {
					old.PutLabel(k, v)
				}
				continue
			}
			merged[it.ID] = it
			scores[it.ID] = contribution
			order = append(order, it.ID)
			it.PutLabel("merge_weight", utils.Label{Value: formatWeight(weight), Source: "rank"})
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return scores[order[i]] > scores[order[j]]
	})

	out := make([]*core.Item, 0, len(order))
	for _, id := range order {
		it := merged[id]
		it.Score = scores[id]
		out = append(out, it)
	}
	return out
}
