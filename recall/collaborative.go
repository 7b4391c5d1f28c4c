package recall

import (
	"context"
	"sort"

	"github.com/AbdulMuhamid/QuickShop/core"
	"github.com/AbdulMuhamid/QuickShop/pkg/utils"
)

// Collaborative 是基于用户行为重合度的协同过滤召回源。
//
// 核心思想："和你看过同一批商品的人，他们还看了什么"
//
// 算法流程：
//  1. 取目标用户最近 HistoryLimit 条行为，得到触达过的商品集合
//  2. 邻居发现：统计其他用户与该集合的共同触达数，
//     达到 MinShared 门槛的按共同数降序取前 MaxNeighbors 个
//  3. 汇总邻居触达过、目标用户没见过的商品，按触达频次降序取 TopK
//
// 相似度就是共同商品计数：不做余弦/皮尔逊，行为重合本身已经是
// 足够强的信号，且可以完全用访问器的分组查询表达。
//
// 工程特征：
//  - 可解释性强："有 N 个相似用户也看了它"
//  - 冷启动差：无行为用户召回为空，由上层兜底
type Collaborative struct {
	Behaviors core.BehaviorStore
	Catalog   core.ProductCatalog

	// HistoryLimit 参与邻居发现的目标用户行为条数上限，默认 50
	HistoryLimit int

	// MinShared 邻居门槛：至少共同触达多少个商品才算邻居，默认 2。
	// 低于 2 时单次巧合也会成为邻居，噪声很大。
	MinShared int

	// MaxNeighbors 保留的邻居数上限，默认 10
	MaxNeighbors int

	// TopK 返回的候选数上限，0 表示取 rctx.Limit
	TopK int
}

func (r *Collaborative) Name() string {
	return "recall.collaborative"
}

func (r *Collaborative) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if r.Behaviors == nil || rctx == nil || rctx.UserID == "" {
		return nil, nil
	}

	seen, err := r.interactedProducts(ctx, rctx.UserID)
	if err != nil {
		return nil, err
	}
	if len(seen) == 0 {
		// 无行为历史：协同路径没有信号
		return nil, nil
	}

	neighbors, err := r.neighborsOf(ctx, rctx.UserID, seen)
	if err != nil {
		return nil, err
	}
	if len(neighbors) == 0 {
		return nil, nil
	}

	// 邻居触达过、目标用户没见过的商品，按频次计分
	events, err := r.Behaviors.FindByUsers(ctx, neighbors, seen)
	if err != nil {
		return nil, err
	}

	seenSet := make(map[string]struct{}, len(seen))
	for _, id := range seen {
		seenSet[id] = struct{}{}
	}

	// 首次出现顺序入列，频次排序用 SliceStable：
	// 同频商品的相对顺序在两次相同调用之间不变
	counts := make(map[string]float64)
	order := make([]string, 0, len(events))
	for _, ev := range events {
		if !ev.HasProduct() {
			continue
		}
		if _, ok := seenSet[ev.ProductID]; ok {
			continue
		}
		if _, ok := counts[ev.ProductID]; !ok {
			order = append(order, ev.ProductID)
		}
		counts[ev.ProductID]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	topK := r.TopK
	if topK <= 0 {
		topK = rctx.Limit
	}
	if topK <= 0 {
		topK = 10
	}
	if len(order) > topK {
		order = order[:topK]
	}

	out := make([]*core.Item, 0, len(order))
	for _, id := range order {
		it := core.NewItem(id)
		it.Score = counts[id]
		it.PutLabel("recall_source", utils.Label{Value: "collaborative", Source: "recall"})
		out = append(out, it)
	}
	return out, nil
}

// Neighbors 返回目标用户的邻居列表（共同触达数降序）。
// 下游只依赖集合语义，顺序仅为确定性保留。
func (r *Collaborative) Neighbors(ctx context.Context, userID string) ([]string, error) {
	seen, err := r.interactedProducts(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(seen) == 0 {
		return nil, nil
	}
	return r.neighborsOf(ctx, userID, seen)
}

// interactedProducts 返回目标用户触达过的商品 ID 集合（首次出现顺序去重）。
func (r *Collaborative) interactedProducts(ctx context.Context, userID string) ([]string, error) {
	limit := r.HistoryLimit
	if limit <= 0 {
		limit = 50
	}
	events, err := r.Behaviors.FindByUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(events))
	out := make([]string, 0, len(events))
	for _, ev := range events {
		if !ev.HasProduct() {
			continue
		}
		if _, ok := seen[ev.ProductID]; ok {
			continue
		}
		seen[ev.ProductID] = struct{}{}
		out = append(out, ev.ProductID)
	}
	return out, nil
}

// neighborsOf 按共同触达数发现邻居。
func (r *Collaborative) neighborsOf(ctx context.Context, userID string, seen []string) ([]string, error) {
	events, err := r.Behaviors.FindByProducts(ctx, seen, userID)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	order := make([]string, 0, len(events))
	for _, ev := range events {
		if ev.UserID == "" || ev.UserID == userID {
			continue
		}
		if _, ok := counts[ev.UserID]; !ok {
			order = append(order, ev.UserID)
		}
		counts[ev.UserID]++
	}

	minShared := r.MinShared
	if minShared <= 0 {
		minShared = 2
	}
	qualified := order[:0]
	for _, uid := range order {
		if counts[uid] >= minShared {
			qualified = append(qualified, uid)
		}
	}

	sort.SliceStable(qualified, func(i, j int) bool {
		return counts[qualified[i]] > counts[qualified[j]]
	})

	maxNeighbors := r.MaxNeighbors
	if maxNeighbors <= 0 {
		maxNeighbors = 10
	}
	if len(qualified) > maxNeighbors {
		qualified = qualified[:maxNeighbors]
	}
	return qualified, nil
}
