package service

import (
	"fmt"

	"github.com/pixelcraft-pc/storefront/internal/constants"
)

// IdentityKind 身份类型
type IdentityKind string

const (
	KindAdmin    IdentityKind = constants.IdentityAdmin
	KindCustomer IdentityKind = constants.IdentityCustomer
)

// Identity 请求身份，管理员与顾客共用一个带类型标签的值
type Identity struct {
	Kind IdentityKind `json:"kind"`
	ID   uint         `json:"id"`
	Role string       `json:"role,omitempty"` // 仅管理员
}

// IsAdmin 是否管理员
func (i *Identity) IsAdmin() bool {
	return i != nil && i.Kind == KindAdmin && i.ID != 0
}

// IsCustomer 是否顾客
func (i *Identity) IsCustomer() bool {
	return i != nil && i.Kind == KindCustomer && i.ID != 0
}

// CustomerID 顾客身份返回 ID 指针，其余返回 nil
func (i *Identity) CustomerID() *uint {
	if !i.IsCustomer() {
		return nil
	}
	id := i.ID
	return &id
}

// Subject casbin 主体标识
func (i *Identity) Subject() string {
	if i == nil {
		return ""
	}
	return fmt.Sprintf("%s:%d", i.Kind, i.ID)
}
