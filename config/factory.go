package config

import (
	"fmt"
	"time"

	"github.com/AbdulMuhamid/QuickShop/core"
	"github.com/AbdulMuhamid/QuickShop/feature"
	"github.com/AbdulMuhamid/QuickShop/filter"
	"github.com/AbdulMuhamid/QuickShop/pipeline"
	"github.com/AbdulMuhamid/QuickShop/pkg/conv"
	"github.com/AbdulMuhamid/QuickShop/recall"
	"github.com/AbdulMuhamid/QuickShop/rerank"
)

// builtinTypes 是内置 Node 类型，SupportedTypes 与错误提示用。
var builtinTypes = []string{
	"recall.fanout",
	"filter",
	"rerank.topn",
	"rerank.diversity",
	"feature.catalog_enrich",
}

// Deps 是配置驱动节点需要的访问器依赖。
// Behaviors/Catalog 为召回与补全节点必填，Store 仅热门榜 ZSet 快路径用。
type Deps struct {
	Behaviors core.BehaviorStore
	Catalog   core.ProductCatalog
	Users     core.UserStore
	Store     core.KeyValueStore
}

// NewFactory 返回绑定了依赖的 NodeFactory，包含全部内置类型与 Register 注册的扩展类型。
func NewFactory(deps Deps) *pipeline.NodeFactory {
	factory := pipeline.NewNodeFactory()

	factory.Register("recall.fanout", func(cfg map[string]any) (pipeline.Node, error) {
		return buildFanoutNode(deps, cfg)
	})
	factory.Register("filter", func(cfg map[string]any) (pipeline.Node, error) {
		return buildFilterNode(deps, cfg)
	})
	factory.Register("rerank.topn", buildTopNNode)
	factory.Register("rerank.diversity", buildDiversityNode)
	factory.Register("feature.catalog_enrich", func(cfg map[string]any) (pipeline.Node, error) {
		return &feature.CatalogEnrich{Catalog: deps.Catalog}, nil
	})

	extraBuildersMu.RLock()
	for typeName, builder := range extraBuilders {
		factory.Register(typeName, builder)
	}
	extraBuildersMu.RUnlock()

	return factory
}

func buildFanoutNode(deps Deps, config map[string]any) (pipeline.Node, error) {
	sourcesConfig, ok := config["sources"].([]any)
	if !ok {
		return nil, fmt.Errorf("sources not found or invalid")
	}

	sources := make([]recall.Source, 0, len(sourcesConfig))
	for _, sc := range sourcesConfig {
		sourceMap, ok := sc.(map[string]any)
		if !ok {
			continue
		}
		sourceType := conv.ConfigGet[string](sourceMap, "type", "")
		switch sourceType {
		case "collaborative":
			sources = append(sources, &recall.Collaborative{
				Behaviors:    deps.Behaviors,
				Catalog:      deps.Catalog,
				HistoryLimit: conv.ConfigGetInt(sourceMap, "history_limit", 0),
				MinShared:    conv.ConfigGetInt(sourceMap, "min_shared", 0),
				MaxNeighbors: conv.ConfigGetInt(sourceMap, "max_neighbors", 0),
				TopK:         conv.ConfigGetInt(sourceMap, "top_k", 0),
			})
		case "content":
			sources = append(sources, &recall.Content{
				Behaviors:       deps.Behaviors,
				Catalog:         deps.Catalog,
				HistoryLimit:    conv.ConfigGetInt(sourceMap, "history_limit", 0),
				TopK:            conv.ConfigGetInt(sourceMap, "top_k", 0),
				CategoryWeight:  conv.ConfigGetFloat64(sourceMap, "category_weight", 0),
				PriceScale:      conv.ConfigGetFloat64(sourceMap, "price_scale", 0),
				PricePenaltyCap: conv.ConfigGetFloat64(sourceMap, "price_penalty_cap", 0),
				RatingWeight:    conv.ConfigGetFloat64(sourceMap, "rating_weight", 0),
			})
		case "trending":
			sources = append(sources, &recall.Trending{
				Catalog: deps.Catalog,
				Store:   deps.Store,
				Key:     conv.ConfigGet[string](sourceMap, "key", ""),
				TopK:    conv.ConfigGetInt(sourceMap, "top_k", 0),
			})
		default:
			return nil, fmt.Errorf("unknown source type: %s", sourceType)
		}
	}

	fanout := &recall.Fanout{Sources: sources}
	if sec := conv.ConfigGetInt(config, "timeout", 0); sec > 0 {
		fanout.Timeout = time.Duration(sec) * time.Second
	}
	switch conv.ConfigGet[string](config, "merge_strategy", "") {
	case "union":
		fanout.Merge = &recall.UnionMerge{}
	case "position_weighted":
		fanout.Merge = &recall.PositionWeightedMerge{
			Weights: conv.SliceAnyToFloat64(config["weights"]),
			Base:    conv.ConfigGetInt(config, "base", 0),
		}
	default:
		fanout.Merge = &recall.FirstMerge{}
	}

	return fanout, nil
}

func buildFilterNode(deps Deps, config map[string]any) (pipeline.Node, error) {
	filtersConfig, ok := config["filters"].([]any)
	if !ok {
		return nil, fmt.Errorf("filters not found or invalid")
	}

	filters := make([]filter.Filter, 0, len(filtersConfig))
	for _, fc := range filtersConfig {
		filterMap, ok := fc.(map[string]any)
		if !ok {
			continue
		}
		filterType := conv.ConfigGet[string](filterMap, "type", "")
		switch filterType {
		case "seen":
			filters = append(filters, &filter.SeenProducts{
				Behaviors:    deps.Behaviors,
				HistoryLimit: conv.ConfigGetInt(filterMap, "history_limit", 0),
			})
		case "rule":
			expr := conv.ConfigGet[string](filterMap, "expr", "")
			if expr == "" {
				return nil, fmt.Errorf("rule filter: expr not found")
			}
			rule, err := filter.NewRule(expr)
			if err != nil {
				return nil, fmt.Errorf("rule filter: %w", err)
			}
			filters = append(filters, rule)
		default:
			return nil, fmt.Errorf("unknown filter type: %s", filterType)
		}
	}

	return &filter.Node{Filters: filters}, nil
}

func buildTopNNode(config map[string]any) (pipeline.Node, error) {
	n := conv.ConfigGetInt(config, "n", 0)
	if n <= 0 {
		return nil, fmt.Errorf("rerank.topn: n must be positive")
	}
	return &rerank.TopN{N: n}, nil
}

func buildDiversityNode(config map[string]any) (pipeline.Node, error) {
	return &rerank.Diversity{
		MaxPerCategory: conv.ConfigGetInt(config, "max_per_category", 0),
	}, nil
}
