package cache

import (
	"context"
	"fmt"
	"time"
)

const authStateTTL = 10 * time.Minute

// IdentityState 身份鉴权快照，避免每次请求查库校验 token_version 与启用状态
type IdentityState struct {
	Kind         string `json:"kind"`
	ID           uint   `json:"id"`
	Role         string `json:"role,omitempty"`
	Active       bool   `json:"active"`
	TokenVersion uint64 `json:"token_version"`
	UpdatedAt    int64  `json:"updated_at"`
}

func identityStateKey(kind string, id uint) string {
	return fmt.Sprintf("auth:%s:%d", kind, id)
}

// GetIdentityState 读取鉴权快照
func GetIdentityState(ctx context.Context, kind string, id uint) (*IdentityState, bool, error) {
	if id == 0 {
		return nil, false, nil
	}
	var state IdentityState
	hit, err := GetJSON(ctx, identityStateKey(kind, id), &state)
	if err != nil || !hit {
		return nil, hit, err
	}
	return &state, true, nil
}

// SetIdentityState 写入鉴权快照
func SetIdentityState(ctx context.Context, state *IdentityState) error {
	if state == nil || state.ID == 0 {
		return nil
	}
	state.UpdatedAt = time.Now().Unix()
	return SetJSON(ctx, identityStateKey(state.Kind, state.ID), state, authStateTTL)
}

// DelIdentityState 删除鉴权快照
func DelIdentityState(ctx context.Context, kind string, id uint) error {
	if id == 0 {
		return nil
	}
	return Del(ctx, identityStateKey(kind, id))
}
