package core

import "context"

// 访问器接口定义在领域层（core），由基础设施层（store 包或外部系统）实现。
// 引擎对这三个接口只读：不产生写操作，也不持有跨请求状态。
// 所有方法都可能是阻塞 I/O，实现方自行处理连接与重试；
// 超时/取消策略归调用方的 context 所有。

// BehaviorStore 是行为事件访问器。
type BehaviorStore interface {
	// FindByUser 返回某个用户最近的行为事件（最多 limit 条，新事件优先）。
	// actions 非空时只返回命中类型的事件。
	FindByUser(ctx context.Context, userID string, limit int, actions ...ActionKind) ([]*Behavior, error)

	// FindByProducts 返回触达过给定商品集合的行为事件，排除 excludeUserID 本人。
	// 邻居发现用它按用户分组统计共同商品数。
	FindByProducts(ctx context.Context, productIDs []string, excludeUserID string) ([]*Behavior, error)

	// FindByUsers 返回给定用户集合的行为事件，排除引用了 excludeProductIDs 的事件。
	// 协同打分用它按商品分组统计邻居触达频次。
	FindByUsers(ctx context.Context, userIDs []string, excludeProductIDs []string) ([]*Behavior, error)
}

// ProductCatalog 是商品目录访问器。
type ProductCatalog interface {
	// FindByID 按 ID 取商品，不存在时返回 NOT_FOUND 领域错误。
	FindByID(ctx context.Context, id string) (*Product, error)

	// FindByIDs 批量取商品，保持入参顺序，缺失的 ID 静默跳过。
	FindByIDs(ctx context.Context, ids []string) ([]*Product, error)

	// FindByCategory 按类目取商品，排除 excludeIDs，按 sort 级联降序，最多 limit 条。
	FindByCategory(ctx context.Context, categories []Category, excludeIDs []string, sort []ProductSort, limit int) ([]*Product, error)

	// FindAllSorted 全量商品按 sort 级联降序，最多 limit 条。热门兜底用。
	FindAllSorted(ctx context.Context, sort []ProductSort, limit int) ([]*Product, error)
}

// UserStore 是用户访问器。
type UserStore interface {
	// FindByID 按 ID 取用户，不存在时返回 NOT_FOUND 领域错误。
	// 对推荐而言"用户不存在"是正常输入（走热门兜底），不是异常。
	FindByID(ctx context.Context, id string) (*User, error)
}
