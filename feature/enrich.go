package feature

import (
	"context"

	"github.com/AbdulMuhamid/QuickShop/core"
	"github.com/AbdulMuhamid/QuickShop/pipeline"
)

// CatalogEnrich 是商品属性注入节点：把目录中的类目/品牌/价格/评分/库存
// 批量挂到候选的 Meta/Features 上，供下游的规则过滤（CEL 表达式读
// item.features.price 等）与多样性重排消费。
//
// 已经带商品缓存的候选（内容/热门源在召回时顺手挂了）不会重复拉取；
// 目录批量查询失败时原样放行，下游按属性缺失处理。
type CatalogEnrich struct {
	Catalog core.ProductCatalog
}

func (n *CatalogEnrich) Name() string {
	return "feature.catalog_enrich"
}

func (n *CatalogEnrich) Kind() pipeline.Kind {
	return pipeline.KindPostProcess
}

func (n *CatalogEnrich) Process(
	ctx context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if n.Catalog == nil || len(items) == 0 {
		return items, nil
	}

	missing := make([]string, 0, len(items))
	for _, it := range items {
		if it != nil && it.Product() == nil {
			missing = append(missing, it.ID)
		}
	}
	if len(missing) == 0 {
		return items, nil
	}

	products, err := n.Catalog.FindByIDs(ctx, missing)
	if err != nil {
		return items, nil
	}
	byID := make(map[string]*core.Product, len(products))
	for _, p := range products {
		if p != nil {
			byID[p.ID] = p
		}
	}

	for _, it := range items {
		if it == nil || it.Product() != nil {
			continue
		}
		if p, ok := byID[it.ID]; ok {
			it.AttachProduct(p)
		}
	}
	return items, nil
}
