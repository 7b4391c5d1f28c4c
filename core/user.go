package core

// Preferences 是用户显式声明的偏好，与行为画像（TasteProfile）互补：
// 前者是用户自己说的，后者是从行为里算出来的。
type Preferences struct {
	Categories []Category  `json:"categories,omitempty"`
	Brands     []string    `json:"brands,omitempty"`
	PriceRange *PriceRange `json:"price_range,omitempty"`
}

// User 是用户记录，推荐链路只读取其偏好。
type User struct {
	ID          string      `json:"id"`
	Name        string      `json:"name,omitempty"`
	Email       string      `json:"email,omitempty"`
	Preferences Preferences `json:"preferences,omitempty"`
}

// HasPreferredCategories 报告用户是否声明了类目偏好。
func (u *User) HasPreferredCategories() bool {
	return u != nil && len(u.Preferences.Categories) > 0
}
