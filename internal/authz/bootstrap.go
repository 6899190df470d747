package authz

import (
	"fmt"

	"github.com/pixelcraft-pc/storefront/internal/constants"
)

// RoleSeed 预置角色定义
type RoleSeed struct {
	Role     string
	Inherits []string
	Policies []Policy
}

func resource(path string, action string) []Policy {
	return []Policy{
		{Object: path, Action: action},
		{Object: path + "/*", Action: action},
	}
}

// BuiltinRoleSeeds 系统预置角色矩阵
// staff 为公共基线：控制台与个人信息；editor 管理商品目录；support 处理订单与顾客。
func BuiltinRoleSeeds() []RoleSeed {
	var editor []Policy
	for _, path := range []string{"/admin/pcs", "/admin/categories", "/admin/games"} {
		editor = append(editor, resource(path, "*")...)
	}
	editor = append(editor,
		Policy{Object: "/admin/upload-image", Action: "POST"},
		Policy{Object: "/admin/delete-image", Action: "POST"},
	)

	var support []Policy
	for _, path := range []string{"/admin/orders", "/admin/customers", "/admin/reviews"} {
		support = append(support, resource(path, "*")...)
	}
	support = append(support, Policy{Object: "/admin/newsletter", Action: "GET"})

	return []RoleSeed{
		{
			Role: "staff",
			Policies: []Policy{
				{Object: "/admin/me", Action: "GET"},
				{Object: "/admin/logout", Action: "POST"},
				{Object: "/admin/dashboard", Action: "GET"},
			},
		},
		{
			Role:     constants.AdminRoleAdmin,
			Inherits: []string{"staff"},
			Policies: []Policy{{Object: "/admin/*", Action: "*"}},
		},
		{
			Role:     constants.AdminRoleEditor,
			Inherits: []string{"staff"},
			Policies: editor,
		},
		{
			Role:     constants.AdminRoleSupport,
			Inherits: []string{"staff"},
			Policies: support,
		},
	}
}

// BootstrapBuiltinRoles 初始化预置角色与默认策略，重复执行无副作用
func (s *Service) BootstrapBuiltinRoles() error {
	if s == nil || s.enforcer == nil {
		return fmt.Errorf("authz service unavailable")
	}

	for _, seed := range BuiltinRoleSeeds() {
		role, err := s.EnsureRole(seed.Role)
		if err != nil {
			return err
		}
		for _, parent := range seed.Inherits {
			parentRole, err := s.EnsureRole(parent)
			if err != nil {
				return err
			}
			if _, err := s.enforcer.AddNamedGroupingPolicy("g", role, parentRole); err != nil {
				return fmt.Errorf("link role inheritance failed: %w", err)
			}
		}
		for _, policy := range seed.Policies {
			if err := s.GrantRolePolicy(role, policy.Object, policy.Action); err != nil {
				return fmt.Errorf("add builtin policy failed: %w", err)
			}
		}
	}
	return nil
}
