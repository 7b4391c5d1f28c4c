package store

import (
	"context"
	"encoding/json"

	"github.com/AbdulMuhamid/QuickShop/core"
)

// Users 是叠在 core.Store 上的用户访问器。
// 用户存 JSON：{prefix}:user:{id}。
type Users struct {
	store     core.Store
	KeyPrefix string
}

// NewUsers 创建用户访问器，keyPrefix 为空时用 "account"。
func NewUsers(s core.Store, keyPrefix string) *Users {
	if keyPrefix == "" {
		keyPrefix = "account"
	}
	return &Users{store: s, KeyPrefix: keyPrefix}
}

var _ core.UserStore = (*Users)(nil)

func (u *Users) userKey(id string) string { return u.KeyPrefix + ":user:" + id }

// SaveUser 写入/覆盖一个用户（种子数据、示例、测试用）。
func (u *Users) SaveUser(ctx context.Context, user *core.User) error {
	if user == nil || user.ID == "" {
		return core.NewDomainError(core.ModuleUser, core.ErrorCodeInvalidInput, "user: record without id")
	}
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return u.store.Set(ctx, u.userKey(user.ID), data)
}

func (u *Users) FindByID(ctx context.Context, id string) (*core.User, error) {
	data, err := u.store.Get(ctx, u.userKey(id))
	if err != nil {
		if core.IsStoreNotFound(err) {
			return nil, core.NewDomainError(core.ModuleUser, core.ErrorCodeNotFound, "user: not found: "+id)
		}
		return nil, err
	}
	var user core.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
