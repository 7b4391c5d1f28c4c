// Package engine 是推荐引擎的对外入口，组合召回/合并/重排节点
// 实现三个操作：热门榜、混合推荐、个性化推荐。
//
// 引擎是请求级无状态的：每次调用现场组装一条 Pipeline，
// 调用之间不共享可变状态，天然支持并发请求。
// 引擎对目录/行为/用户三个访问器只读。
package engine

import (
	"context"
	"time"

	"github.com/AbdulMuhamid/QuickShop/core"
	"github.com/AbdulMuhamid/QuickShop/feature"
	"github.com/AbdulMuhamid/QuickShop/pipeline"
	"github.com/AbdulMuhamid/QuickShop/recall"
	"github.com/AbdulMuhamid/QuickShop/rerank"
)

// DefaultLimit 是调用方未作选择时的推荐结果数。
const DefaultLimit = 10

// Options 是引擎的调参项。全部零值可用，零值取注释里的默认值。
// 这些常数是调参选择而非正确性约束，所以全部开放配置。
type Options struct {
	// HistoryLimit 协同路径回看的行为条数，默认 50
	HistoryLimit int

	// ProfileLimit 口味画像回看的行为条数，默认 20
	ProfileLimit int

	// MinShared 邻居门槛（共同触达商品数），默认 2
	MinShared int

	// MaxNeighbors 邻居数上限，默认 10
	MaxNeighbors int

	// CollaborativeWeight / ContentWeight 混合排序中两条路径的
	// 位置衰减权重，默认 2 / 1：协同信号来自真实同伴行为，加倍信任
	CollaborativeWeight float64
	ContentWeight       float64

	// SourceTimeout 单个召回源的超时，0 表示不限制（由调用方 context 兜底）
	SourceTimeout time.Duration
}

// Engine 是推荐引擎。三个访问器必填；TrendingStore/TrendingKey
// 可选，配置后热门榜优先走 ZSet 快路径。
type Engine struct {
	Behaviors core.BehaviorStore
	Catalog   core.ProductCatalog
	Users     core.UserStore

	TrendingStore core.KeyValueStore
	TrendingKey   string

	Opts Options
}

// New 创建引擎，调参项走默认值。
func New(behaviors core.BehaviorStore, catalog core.ProductCatalog, users core.UserStore) *Engine {
	return &Engine{Behaviors: behaviors, Catalog: catalog, Users: users}
}

var errEmptyUserID = core.NewDomainError(core.ModuleEngine, core.ErrorCodeInvalidInput, "engine: empty user id")
var errNegativeLimit = core.NewDomainError(core.ModuleEngine, core.ErrorCodeInvalidInput, "engine: negative limit")

// Trending 返回全局热门商品：浏览量 > 购买量 > 评分，各降序。
// 这是引擎的无个性化兜底，它自身的失败会原样上抛（调用方应视为严重故障）。
func (e *Engine) Trending(ctx context.Context, limit int) ([]*core.Product, error) {
	if limit < 0 {
		return nil, errNegativeLimit
	}
	if limit == 0 {
		return []*core.Product{}, nil
	}

	rctx := &core.RecommendContext{Scene: "trending", Limit: limit}
	src := &recall.Trending{
		Catalog: e.Catalog,
		Store:   e.TrendingStore,
		Key:     e.TrendingKey,
		TopK:    limit,
	}
	items, err := src.Recall(ctx, rctx)
	if err != nil {
		return nil, err
	}
	return e.materialize(ctx, items)
}

// HybridRecommendations 返回行为驱动的混合推荐：
// 协同路径与内容路径并发召回，按位置加权合并（协同权重更高），截断到 limit。
//
// 两条路径独立降级：任一路径的访问器失败只丢掉该路径的贡献。
// 无行为历史的用户两条路径都没有信号，返回空列表。
func (e *Engine) HybridRecommendations(ctx context.Context, userID string, limit int) ([]*core.Product, error) {
	if userID == "" {
		return nil, errEmptyUserID
	}
	if limit < 0 {
		return nil, errNegativeLimit
	}
	if limit == 0 {
		return []*core.Product{}, nil
	}

	rctx := &core.RecommendContext{UserID: userID, Scene: "hybrid", Limit: limit}
	pipe := &pipeline.Pipeline{
		Nodes: []pipeline.Node{
			e.hybridFanout(limit),
			&rerank.TopN{N: limit},
			&feature.CatalogEnrich{Catalog: e.Catalog},
		},
	}

	items, err := pipe.Run(ctx, rctx, nil)
	if err != nil {
		// 混合路径整体失败按空结果降级，不把错误抛给调用方
		return []*core.Product{}, nil
	}
	products, err := e.materialize(ctx, items)
	if err != nil {
		return []*core.Product{}, nil
	}
	return products, nil
}

// PersonalizedRecommendations 是顶层个性化入口：
//
//  1. 用户不存在：整体回落到热门榜
//  2. 用户声明了类目偏好：取偏好类目的高分商品，最多 ceil(limit/2)
//  3. 叠加混合推荐，最多 ceil(limit/2)
//  4. 拼接（偏好在前）、按首次出现去重、截断到 limit
//
// 任何一步出错都回落到热门榜：个性化永远不把错误暴露给调用方。
// 去重后仍为空（既无偏好也无行为）同样回落热门榜，保证结果非空。
func (e *Engine) PersonalizedRecommendations(ctx context.Context, userID string, limit int) ([]*core.Product, error) {
	if userID == "" {
		return nil, errEmptyUserID
	}
	if limit < 0 {
		return nil, errNegativeLimit
	}
	if limit == 0 {
		return []*core.Product{}, nil
	}

	user, err := e.Users.FindByID(ctx, userID)
	if err != nil {
		// 未知用户是正常输入；其他访问器错误同样走兜底
		return e.Trending(ctx, limit)
	}

	half := (limit + 1) / 2
	recs := make([]*core.Product, 0, limit)

	if user.HasPreferredCategories() {
		byPreference, err := e.Catalog.FindByCategory(
			ctx, user.Preferences.Categories, nil, core.PreferenceSort(), half)
		if err != nil {
			return e.Trending(ctx, limit)
		}
		recs = append(recs, byPreference...)
	}

	byBehavior, err := e.HybridRecommendations(ctx, userID, half)
	if err != nil {
		return e.Trending(ctx, limit)
	}
	recs = append(recs, byBehavior...)

	final := dedupeProducts(recs, limit)
	if len(final) == 0 {
		return e.Trending(ctx, limit)
	}
	return final, nil
}

// hybridFanout 组装混合推荐的并发召回节点。
func (e *Engine) hybridFanout(limit int) *recall.Fanout {
	collaborativeWeight := e.Opts.CollaborativeWeight
	if collaborativeWeight == 0 {
		collaborativeWeight = 2
	}
	contentWeight := e.Opts.ContentWeight
	if contentWeight == 0 {
		contentWeight = 1
	}

	return &recall.Fanout{
		Sources: []recall.Source{
			&recall.Collaborative{
				Behaviors:    e.Behaviors,
				Catalog:      e.Catalog,
				HistoryLimit: e.Opts.HistoryLimit,
				MinShared:    e.Opts.MinShared,
				MaxNeighbors: e.Opts.MaxNeighbors,
				TopK:         limit,
			},
			&recall.Content{
				Behaviors:    e.Behaviors,
				Catalog:      e.Catalog,
				HistoryLimit: e.Opts.ProfileLimit,
				TopK:         limit,
			},
		},
		Timeout: e.Opts.SourceTimeout,
		Merge: &recall.PositionWeightedMerge{
			Weights: []float64{collaborativeWeight, contentWeight},
			Base:    limit,
		},
	}
}

// materialize 把候选解析为商品记录：优先用召回时挂上的缓存，
// 缺的批量查目录，保持候选顺序，解析不到的跳过。
func (e *Engine) materialize(ctx context.Context, items []*core.Item) ([]*core.Product, error) {
	out := make([]*core.Product, 0, len(items))

	var missing []string
	for _, it := range items {
		if it == nil {
			continue
		}
		if it.Product() == nil {
			missing = append(missing, it.ID)
		}
	}

	byID := make(map[string]*core.Product, len(missing))
	if len(missing) > 0 && e.Catalog != nil {
		products, err := e.Catalog.FindByIDs(ctx, missing)
		if err != nil {
			return nil, err
		}
		for _, p := range products {
			if p != nil {
				byID[p.ID] = p
			}
		}
	}

	for _, it := range items {
		if it == nil {
			continue
		}
		if p := it.Product(); p != nil {
			out = append(out, p)
			continue
		}
		if p, ok := byID[it.ID]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

// dedupeProducts 按首次出现去重并截断。
func dedupeProducts(products []*core.Product, limit int) []*core.Product {
	seen := make(map[string]struct{}, len(products))
	out := make([]*core.Product, 0, limit)
	for _, p := range products {
		if p == nil {
			continue
		}
		if _, ok := seen[p.ID]; ok {
			continue
		}
		seen[p.ID] = struct{}{}
		out = append(out, p)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
