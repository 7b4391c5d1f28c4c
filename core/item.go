package core

import "github.com/AbdulMuhamid/QuickShop/pkg/utils"

// Item 是推荐链路中的统一承载结构：候选商品 ID、排序分数、元信息、标签。
// Score 是请求内的排序信号，不跨请求比较，也不对外暴露；
// Labels 用于解释与观测（召回来源、过滤原因等）。
type Item struct {
	ID       string
	Score    float64
	Features map[string]float64
	Meta     map[string]any
	Labels   map[string]utils.Label
}

func NewItem(id string) *Item {
	return &Item{
		ID:       id,
		Score:    0,
		Features: make(map[string]float64),
		Meta:     make(map[string]any),
		Labels:   make(map[string]utils.Label),
	}
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (it *Item) PutLabel(key string, lbl utils.Label) {
	if it.Labels == nil {
		it.Labels = make(map[string]utils.Label)
	}
	if old, ok := it.Labels[key]; ok {
		it.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	it.Labels[key] = lbl
}

// Product 返回 Meta 中缓存的商品记录（由召回源或 enrich 节点写入），没有则返回 nil。
func (it *Item) Product() *Product {
	if it.Meta == nil {
		return nil
	}
	if p, ok := it.Meta["product"].(*Product); ok {
		return p
	}
	return nil
}

// AttachProduct 把商品记录缓存到 Meta，并同步常用属性到 Features/Meta，
// 供规则过滤与多样性重排直接消费。
func (it *Item) AttachProduct(p *Product) {
	if p == nil {
		return
	}
	if it.Meta == nil {
		it.Meta = make(map[string]any)
	}
	if it.Features == nil {
		it.Features = make(map[string]float64)
	}
	it.Meta["product"] = p
	it.Meta["category"] = string(p.Category)
	it.Meta["brand"] = p.Brand
	it.Features["price"] = p.Price
	it.Features["rating"] = p.Rating
	it.Features["stock"] = float64(p.Stock)
}
