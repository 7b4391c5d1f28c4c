package store

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/AbdulMuhamid/QuickShop/core"
)

// Behaviors 是叠在 core.Store 上的行为事件访问器。
// 事件按两个维度各存一份追加式 JSON 列表：
//
//	{prefix}:user:{userID}       该用户的全部事件（时间序）
//	{prefix}:product:{productID} 触达该商品的全部事件
//
// 邻居发现需要"谁触达过这批商品"，协同打分需要"这批用户触达过什么"，
// 两个倒排刚好各服务一个方向。分组计数在进程内完成。
type Behaviors struct {
	store     core.Store
	KeyPrefix string

	mu sync.Mutex // 保护追加时的读改写
}

// NewBehaviors 创建行为访问器，keyPrefix 为空时用 "behavior"。
func NewBehaviors(s core.Store, keyPrefix string) *Behaviors {
	if keyPrefix == "" {
		keyPrefix = "behavior"
	}
	return &Behaviors{store: s, KeyPrefix: keyPrefix}
}

var _ core.BehaviorStore = (*Behaviors)(nil)

func (b *Behaviors) userKey(userID string) string       { return b.KeyPrefix + ":user:" + userID }
func (b *Behaviors) productKey(productID string) string { return b.KeyPrefix + ":product:" + productID }

// Track 追加一条行为事件（采集侧入口；测试与示例也走这里）。
func (b *Behaviors) Track(ctx context.Context, ev *core.Behavior) error {
	if ev == nil || ev.UserID == "" {
		return core.NewDomainError(core.ModuleBehavior, core.ErrorCodeInvalidInput, "behavior: event without user id")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.appendTo(ctx, b.userKey(ev.UserID), ev); err != nil {
		return err
	}
	if ev.HasProduct() {
		if err := b.appendTo(ctx, b.productKey(ev.ProductID), ev); err != nil {
			return err
		}
	}
	return nil
}

func (b *Behaviors) appendTo(ctx context.Context, key string, ev *core.Behavior) error {
	events, err := b.load(ctx, key)
	if err != nil {
		return err
	}
	events = append(events, ev)
	data, err := json.Marshal(events)
	if err != nil {
		return err
	}
	return b.store.Set(ctx, key, data)
}

func (b *Behaviors) load(ctx context.Context, key string) ([]*core.Behavior, error) {
	data, err := b.store.Get(ctx, key)
	if err != nil {
		if core.IsStoreNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	var events []*core.Behavior
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// FindByUser 返回用户最近的事件，新事件优先（列表追加序的尾部）。
func (b *Behaviors) FindByUser(
	ctx context.Context,
	userID string,
	limit int,
	actions ...core.ActionKind,
) ([]*core.Behavior, error) {
	events, err := b.load(ctx, b.userKey(userID))
	if err != nil {
		return nil, err
	}

	out := make([]*core.Behavior, 0, len(events))
	for i := len(events) - 1; i >= 0; i-- {
		ev := events[i]
		if ev == nil || !ev.MatchesAction(actions) {
			continue
		}
		out = append(out, ev)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

// FindByProducts 返回触达过给定商品集合的事件，排除 excludeUserID 本人。
func (b *Behaviors) FindByProducts(
	ctx context.Context,
	productIDs []string,
	excludeUserID string,
) ([]*core.Behavior, error) {
	var out []*core.Behavior
	for _, pid := range productIDs {
		events, err := b.load(ctx, b.productKey(pid))
		if err != nil {
			return nil, err
		}
		for _, ev := range events {
			if ev == nil || ev.UserID == excludeUserID {
				continue
			}
			out = append(out, ev)
		}
	}
	return out, nil
}

// FindByUsers 返回给定用户集合的事件，排除引用了 excludeProductIDs 的事件
// 以及不关联商品的事件（search/filter 对协同打分无意义）。
func (b *Behaviors) FindByUsers(
	ctx context.Context,
	userIDs []string,
	excludeProductIDs []string,
) ([]*core.Behavior, error) {
	excluded := make(map[string]struct{}, len(excludeProductIDs))
	for _, id := range excludeProductIDs {
		excluded[id] = struct{}{}
	}

	var out []*core.Behavior
	for _, uid := range userIDs {
		events, err := b.load(ctx, b.userKey(uid))
		if err != nil {
			return nil, err
		}
		for _, ev := range events {
			if ev == nil || !ev.HasProduct() {
				continue
			}
			if _, ok := excluded[ev.ProductID]; ok {
				continue
			}
			out = append(out, ev)
		}
	}
	return out, nil
}
