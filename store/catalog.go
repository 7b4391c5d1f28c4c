package store

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"github.com/AbdulMuhamid/QuickShop/core"
)

// Catalog 是叠在 core.Store 上的商品目录访问器。
// 商品存 JSON：{prefix}:product:{id}；全量 ID 清单存 {prefix}:ids。
//
// 排序/类目筛选在进程内完成：先批量拉取再排序截断。
// 目录规模（万级 SKU）下这比为每种排序组合维护索引简单得多，
// 需要更大规模时换成数据库实现同一个接口即可。
type Catalog struct {
	store     core.Store
	KeyPrefix string

	mu sync.Mutex // 保护 ids 清单的读改写
}

// NewCatalog 创建目录访问器，keyPrefix 为空时用 "catalog"。
func NewCatalog(s core.Store, keyPrefix string) *Catalog {
	if keyPrefix == "" {
		keyPrefix = "catalog"
	}
	return &Catalog{store: s, KeyPrefix: keyPrefix}
}

var _ core.ProductCatalog = (*Catalog)(nil)

func (c *Catalog) productKey(id string) string { return c.KeyPrefix + ":product:" + id }
func (c *Catalog) idsKey() string              { return c.KeyPrefix + ":ids" }

// SaveProduct 写入/覆盖一个商品（种子数据、示例、测试用）。
func (c *Catalog) SaveProduct(ctx context.Context, p *core.Product) error {
	if p == nil || p.ID == "" {
		return core.NewDomainError(core.ModuleCatalog, core.ErrorCodeInvalidInput, "catalog: product without id")
	}
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	if err := c.store.Set(ctx, c.productKey(p.ID), data); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	ids, err := c.allIDs(ctx)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if id == p.ID {
			return nil
		}
	}
	ids = append(ids, p.ID)
	data, err = json.Marshal(ids)
	if err != nil {
		return err
	}
	return c.store.Set(ctx, c.idsKey(), data)
}

func (c *Catalog) FindByID(ctx context.Context, id string) (*core.Product, error) {
	data, err := c.store.Get(ctx, c.productKey(id))
	if err != nil {
		if core.IsStoreNotFound(err) {
			return nil, core.NewDomainError(core.ModuleCatalog, core.ErrorCodeNotFound, "catalog: product not found: "+id)
		}
		return nil, err
	}
	var p core.Product
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Catalog) FindByIDs(ctx context.Context, ids []string) ([]*core.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, c.productKey(id))
	}
	raw, err := c.store.BatchGet(ctx, keys)
	if err != nil {
		return nil, err
	}

	// 保持入参顺序，缺失的静默跳过
	out := make([]*core.Product, 0, len(ids))
	for _, id := range ids {
		data, ok := raw[c.productKey(id)]
		if !ok {
			continue
		}
		var p core.Product
		if err := json.Unmarshal(data, &p); err != nil {
			continue
		}
		out = append(out, &p)
	}
	return out, nil
}

func (c *Catalog) FindByCategory(
	ctx context.Context,
	categories []core.Category,
	excludeIDs []string,
	sortKeys []core.ProductSort,
	limit int,
) ([]*core.Product, error) {
	all, err := c.loadAll(ctx)
	if err != nil {
		return nil, err
	}

	wanted := make(map[core.Category]struct{}, len(categories))
	for _, cat := range categories {
		wanted[cat] = struct{}{}
	}
	excluded := make(map[string]struct{}, len(excludeIDs))
	for _, id := range excludeIDs {
		excluded[id] = struct{}{}
	}

	matched := make([]*core.Product, 0, len(all))
	for _, p := range all {
		if _, ok := wanted[p.Category]; !ok {
			continue
		}
		if _, ok := excluded[p.ID]; ok {
			continue
		}
		matched = append(matched, p)
	}

	sortProducts(matched, sortKeys)
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func (c *Catalog) FindAllSorted(
	ctx context.Context,
	sortKeys []core.ProductSort,
	limit int,
) ([]*core.Product, error) {
	all, err := c.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	sortProducts(all, sortKeys)
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (c *Catalog) allIDs(ctx context.Context) ([]string, error) {
	data, err := c.store.Get(ctx, c.idsKey())
	if err != nil {
		if core.IsStoreNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

func (c *Catalog) loadAll(ctx context.Context) ([]*core.Product, error) {
	ids, err := c.allIDs(ctx)
	if err != nil {
		return nil, err
	}
	return c.FindByIDs(ctx, ids)
}

// sortProducts 按 sortKeys 级联降序排序；全部相同再按 ID 字典序，保证确定性。
func sortProducts(products []*core.Product, sortKeys []core.ProductSort) {
	if len(sortKeys) == 0 {
		sortKeys = core.TrendingSort()
	}
	sort.SliceStable(products, func(i, j int) bool {
		for _, key := range sortKeys {
			a, b := products[i].SortValue(key), products[j].SortValue(key)
			if a != b {
				return a > b
			}
		}
		return products[i].ID < products[j].ID
	})
}
