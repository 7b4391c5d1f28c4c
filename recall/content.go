package recall

import (
	"context"
	"math"
	"sort"
	"strconv"

	"github.com/AbdulMuhamid/QuickShop/core"
	"github.com/AbdulMuhamid/QuickShop/pkg/utils"
)

// Content 是基于商品属性的内容召回源。
//
// 核心思想："用户喜欢某些类目/品牌/价位的商品，推荐属性相近的其他商品"
//
// 算法流程：
//  1. 取目标用户最近 HistoryLimit 条浏览/点击/购买行为，解析出商品集合
//  2. 构建口味画像：类目权重、品牌权重、均价（见 core.TasteProfile）
//  3. 在画像命中的类目里取候选（排除已交互商品，取 2×TopK 留出打分余量）
//  4. 逐个打分排序，取 TopK
//
// 打分公式（权重可配置，默认值经手工调参）：
//
//	score = 类目权重 × CategoryWeight
//	      + 品牌权重（品牌缺失或不命中为 0）
//	      - min(|价格 - 均价| / PriceScale, PricePenaltyCap)
//	      + 评分 × RatingWeight
//
// 类目是最强的口味信号所以权重放大；价格偏离是有界惩罚，
// 防止极端价位的离群商品盖过类目/品牌信号；评分只做小幅加成。
type Content struct {
	Behaviors core.BehaviorStore
	Catalog   core.ProductCatalog

	// HistoryLimit 参与画像统计的行为条数上限，默认 20
	HistoryLimit int

	// Actions 参与画像的行为类型，默认 view/click/purchase
	Actions []core.ActionKind

	// TopK 返回的候选数上限，0 表示取 rctx.Limit
	TopK int

	// 打分权重，零值取默认：CategoryWeight=2, PriceScale=100,
	// PricePenaltyCap=5, RatingWeight=0.5
	CategoryWeight  float64
	PriceScale      float64
	PricePenaltyCap float64
	RatingWeight    float64
}

func (r *Content) Name() string {
	return "recall.content"
}

func (r *Content) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if r.Behaviors == nil || r.Catalog == nil || rctx == nil || rctx.UserID == "" {
		return nil, nil
	}

	profile, seen, err := r.Profile(ctx, rctx.UserID)
	if err != nil {
		return nil, err
	}
	if profile.Empty() {
		// 没有可解析的交互商品：内容路径短路为空，不做除零均价
		return nil, nil
	}

	topK := r.TopK
	if topK <= 0 {
		topK = rctx.Limit
	}
	if topK <= 0 {
		topK = 10
	}

	// 候选取 2×TopK，给打分后的截断留余量
	candidates, err := r.Catalog.FindByCategory(
		ctx, profile.PreferredCategories(), seen, nil, topK*2)
	if err != nil {
		return nil, err
	}

	type scored struct {
		product *core.Product
		score   float64
	}
	list := make([]scored, 0, len(candidates))
	for _, p := range candidates {
		if p == nil {
			continue
		}
		list = append(list, scored{product: p, score: r.score(profile, p)})
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].score > list[j].score
	})
	if len(list) > topK {
		list = list[:topK]
	}

	out := make([]*core.Item, 0, len(list))
	for _, s := range list {
		it := core.NewItem(s.product.ID)
		it.Score = s.score
		it.AttachProduct(s.product)
		it.PutLabel("recall_source", utils.Label{Value: "content", Source: "recall"})
		out = append(out, it)
	}
	return out, nil
}

// Profile 构建目标用户的口味画像，并返回参与统计的商品 ID 集合（即排除集）。
func (r *Content) Profile(ctx context.Context, userID string) (*core.TasteProfile, []string, error) {
	limit := r.HistoryLimit
	if limit <= 0 {
		limit = 20
	}
	actions := r.Actions
	if len(actions) == 0 {
		actions = core.ProfileActions()
	}

	events, err := r.Behaviors.FindByUser(ctx, userID, limit, actions...)
	if err != nil {
		return nil, nil, err
	}

	seen := make(map[string]struct{}, len(events))
	ids := make([]string, 0, len(events))
	for _, ev := range events {
		if !ev.HasProduct() {
			continue
		}
		if _, ok := seen[ev.ProductID]; ok {
			continue
		}
		seen[ev.ProductID] = struct{}{}
		ids = append(ids, ev.ProductID)
	}

	products, err := r.Catalog.FindByIDs(ctx, ids)
	if err != nil {
		return nil, nil, err
	}
	return core.BuildTasteProfile(products), ids, nil
}

func (r *Content) score(profile *core.TasteProfile, p *core.Product) float64 {
	categoryWeight := r.CategoryWeight
	if categoryWeight == 0 {
		categoryWeight = 2
	}
	priceScale := r.PriceScale
	if priceScale == 0 {
		priceScale = 100
	}
	pricePenaltyCap := r.PricePenaltyCap
	if pricePenaltyCap == 0 {
		pricePenaltyCap = 5
	}
	ratingWeight := r.RatingWeight
	if ratingWeight == 0 {
		ratingWeight = 0.5
	}

	score := profile.CategoryWeights[p.Category] * categoryWeight
	if p.Brand != "" {
		score += profile.BrandWeights[p.Brand]
	}
	score -= math.Min(math.Abs(p.Price-profile.AvgPrice)/priceScale, pricePenaltyCap)
	score += p.Rating * ratingWeight
	return score
}

// formatWeight 供 label 输出使用。
func formatWeight(w float64) string {
	return strconv.FormatFloat(w, 'g', -1, 64)
}
