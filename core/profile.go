package core

// TasteProfile 是从用户近期行为推导出来的口味画像。
// 请求级临时结构：每次推荐请求重新计算，不落存储。
//
// 权重即出现次数：同一商品只计一次（画像按"交互过的商品集合"统计，
// 反复浏览同一商品不会放大它的类目权重）。
type TasteProfile struct {
	CategoryWeights map[Category]float64
	BrandWeights    map[string]float64
	AvgPrice        float64

	// SampleSize 是参与统计的商品数，为 0 时画像无效
	SampleSize int
}

// BuildTasteProfile 从一组已解析的商品记录构建口味画像。
// 空输入返回有效但空的画像（SampleSize == 0），调用方据此短路。
func BuildTasteProfile(products []*Product) *TasteProfile {
	p := &TasteProfile{
		CategoryWeights: make(map[Category]float64),
		BrandWeights:    make(map[string]float64),
	}

	var priceSum float64
	for _, prod := range products {
		if prod == nil {
			continue
		}
		p.CategoryWeights[prod.Category]++
		if prod.Brand != "" {
			p.BrandWeights[prod.Brand]++
		}
		priceSum += prod.Price
		p.SampleSize++
	}

	if p.SampleSize > 0 {
		p.AvgPrice = priceSum / float64(p.SampleSize)
	}
	return p
}

// Empty 画像是否没有任何信号。
func (p *TasteProfile) Empty() bool {
	return p == nil || p.SampleSize == 0
}

// PreferredCategories 返回权重非零的类目集合（无序）。
func (p *TasteProfile) PreferredCategories() []Category {
	if p.Empty() {
		return nil
	}
	out := make([]Category, 0, len(p.CategoryWeights))
	for c := range p.CategoryWeights {
		out = append(out, c)
	}
	return out
}
