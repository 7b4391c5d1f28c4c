package core

import "time"

// ActionKind 是行为事件类型。
type ActionKind string

const (
	ActionView           ActionKind = "view"
	ActionClick          ActionKind = "click"
	ActionAddToCart      ActionKind = "add_to_cart"
	ActionRemoveFromCart ActionKind = "remove_from_cart"
	ActionPurchase       ActionKind = "purchase"
	ActionSearch         ActionKind = "search"
	ActionFilter         ActionKind = "filter"
)

// ProfileActions 返回参与口味画像统计的行为类型：
// 浏览/点击/购买体现真实兴趣，加购可撤销、搜索和筛选不指向具体商品。
func ProfileActions() []ActionKind {
	return []ActionKind{ActionView, ActionClick, ActionPurchase}
}

// DeviceType 是事件来源设备。
type DeviceType string

const (
	DeviceDesktop DeviceType = "desktop"
	DeviceMobile  DeviceType = "mobile"
	DeviceTablet  DeviceType = "tablet"
)

// PriceRange 是筛选事件携带的价格区间。
type PriceRange struct {
	Min float64 `json:"min,omitempty"`
	Max float64 `json:"max,omitempty"`
}

// BehaviorFilters 是筛选事件（ActionFilter）携带的筛选条件快照。
type BehaviorFilters struct {
	Category   Category    `json:"category,omitempty"`
	PriceRange *PriceRange `json:"price_range,omitempty"`
	Brand      string      `json:"brand,omitempty"`
}

// Behavior 是一条行为事件。UserID 与 Action 必填；
// ProductID 只在商品相关事件上出现（搜索/筛选事件没有）。
type Behavior struct {
	UserID    string           `json:"user_id"`
	Action    ActionKind       `json:"action"`
	ProductID string           `json:"product_id,omitempty"`
	Query     string           `json:"query,omitempty"`
	Filters   *BehaviorFilters `json:"filters,omitempty"`

	// Duration 停留时长（秒），仅浏览事件有意义
	Duration  int        `json:"duration,omitempty"`
	SessionID string     `json:"session_id,omitempty"`
	Device    DeviceType `json:"device,omitempty"`
	Timestamp time.Time  `json:"timestamp"`
}

// HasProduct 报告事件是否指向具体商品。
func (b *Behavior) HasProduct() bool {
	return b.ProductID != ""
}

// MatchesAction 报告事件类型是否命中给定集合，空集合视为全部命中。
func (b *Behavior) MatchesAction(actions []ActionKind) bool {
	if len(actions) == 0 {
		return true
	}
	for _, a := range actions {
		if b.Action == a {
			return true
		}
	}
	return false
}
