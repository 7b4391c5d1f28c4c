package core

import "time"

// Category 是商品类目，取值固定为八个顶级类目。
type Category string

const (
	CategoryElectronics Category = "Electronics"
	CategoryHomeGarden  Category = "Home & Garden"
	CategoryFashion     Category = "Fashion"
	CategorySports      Category = "Sports"
	CategoryBooks       Category = "Books"
	CategoryToys        Category = "Toys"
	CategoryBeauty      Category = "Beauty"
	CategoryFood        Category = "Food"
)

// Categories 返回全部合法类目。
func Categories() []Category {
	return []Category{
		CategoryElectronics,
		CategoryHomeGarden,
		CategoryFashion,
		CategorySports,
		CategoryBooks,
		CategoryToys,
		CategoryBeauty,
		CategoryFood,
	}
}

// Product 是商品记录。推荐链路对商品只读，
// ViewCount/PurchaseCount 由行为采集侧累加。
type Product struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	Price         float64   `json:"price"`
	OriginalPrice float64   `json:"original_price,omitempty"`
	Category      Category  `json:"category"`
	Subcategory   string    `json:"subcategory,omitempty"`
	Brand         string    `json:"brand,omitempty"`
	Rating        float64   `json:"rating"`
	Stock         int       `json:"stock"`
	Tags          []string  `json:"tags,omitempty"`
	ViewCount     int64     `json:"view_count"`
	PurchaseCount int64     `json:"purchase_count"`
	CreatedAt     time.Time `json:"created_at,omitempty"`
}

// ProductSort 是商品排序键，目录实现按键级联降序。
type ProductSort string

const (
	SortByViewCount     ProductSort = "view_count"
	SortByPurchaseCount ProductSort = "purchase_count"
	SortByRating        ProductSort = "rating"
	SortByPrice         ProductSort = "price"
)

// TrendingSort 是热门榜的标准排序：浏览量 > 购买量 > 评分。
func TrendingSort() []ProductSort {
	return []ProductSort{SortByViewCount, SortByPurchaseCount, SortByRating}
}

// PreferenceSort 是偏好类目推荐的排序：评分 > 购买量。
func PreferenceSort() []ProductSort {
	return []ProductSort{SortByRating, SortByPurchaseCount}
}

// SortValue 返回排序键对应的数值，未知键返回 0。
func (p *Product) SortValue(key ProductSort) float64 {
	switch key {
	case SortByViewCount:
		return float64(p.ViewCount)
	case SortByPurchaseCount:
		return float64(p.PurchaseCount)
	case SortByRating:
		return p.Rating
	case SortByPrice:
		return p.Price
	default:
		return 0
	}
}
