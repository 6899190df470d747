package admin

import (
	"strconv"
	"strings"

	"github.com/pixelcraft-pc/storefront/internal/authz"
	"github.com/pixelcraft-pc/storefront/internal/http/response"
	"github.com/pixelcraft-pc/storefront/internal/repository"

	"github.com/gin-gonic/gin"
)

// AdminLoginRequest 管理员登录请求
type AdminLoginRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// AdminLogin 管理员登录
func (h *Handler) AdminLogin(c *gin.Context) {
	var req AdminLoginRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}
	result, err := h.AuthService.AdminLogin(req.Username, req.Password)
	if err != nil {
		respondServiceError(c, err, "")
		return
	}
	response.Success(c, gin.H{
		"token":      result.Token,
		"expires_at": result.ExpiresAt,
		"identity":   result.Identity,
		"redirect":   "/admin/dashboard",
	})
}

// AdminLogout 管理员退出，令牌立即失效
func (h *Handler) AdminLogout(c *gin.Context) {
	identity, ok := currentAdmin(c)
	if !ok {
		return
	}
	if err := h.AuthService.Logout(identity); err != nil {
		respondServiceError(c, err, "")
		return
	}
	response.Success(c, gin.H{"redirect": "/admin/login"})
}

// GetAdminMe 当前管理员信息
func (h *Handler) GetAdminMe(c *gin.Context) {
	identity, ok := currentAdmin(c)
	if !ok {
		return
	}
	admin, err := h.AuthService.CurrentAdmin(identity)
	if err != nil {
		respondServiceError(c, err, "")
		return
	}
	policies, err := h.AuthzService.GetRolePolicies(admin.Role)
	if err != nil {
		requestLog(c).Warnw("admin_role_policies_load_failed", "admin_id", admin.ID, "error", err)
		policies = []authz.Policy{}
	}
	response.Success(c, gin.H{
		"admin":    admin,
		"policies": policies,
	})
}

// RoleView 角色及其直连策略
type RoleView struct {
	Role     string         `json:"role"`
	Policies []authz.Policy `json:"policies"`
}

// ListRoles 角色与权限矩阵
func (h *Handler) ListRoles(c *gin.Context) {
	roles, err := h.AuthzService.ListRoles()
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	views := make([]RoleView, 0, len(roles))
	for _, role := range roles {
		policies, err := h.AuthzService.GetRolePolicies(role)
		if err != nil {
			respondError(c, response.CodeInternal, "error.internal", err)
			return
		}
		views = append(views, RoleView{Role: role, Policies: policies})
	}
	response.Success(c, views)
}

// GetDashboard 后台仪表盘，refresh=1 跳过缓存
func (h *Handler) GetDashboard(c *gin.Context) {
	overview, err := h.DashboardService.GetOverview(c.Request.Context(), c.Query("refresh") == "1")
	if err != nil {
		respondServiceError(c, err, "")
		return
	}
	response.Success(c, overview)
}

// ListAuditLogs 后台写操作审计日志
func (h *Handler) ListAuditLogs(c *gin.Context) {
	page, pageSize := pagination(c)
	filter := repository.AdminAuditLogFilter{
		Page:     page,
		PageSize: pageSize,
		Method:   strings.ToUpper(strings.TrimSpace(c.Query("method"))),
		Object:   strings.TrimSpace(c.Query("object")),
	}
	if raw := strings.TrimSpace(c.Query("admin_id")); raw != "" {
		adminID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", nil)
			return
		}
		filter.AdminID = uint(adminID)
	}
	logs, total, err := h.AuditLogRepo.List(filter)
	if err != nil {
		respondServiceError(c, err, "")
		return
	}
	response.SuccessWithPage(c, logs, response.NewPagination(page, pageSize, total))
}
