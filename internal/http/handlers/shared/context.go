package shared

import (
	"strconv"
	"strings"

	"github.com/pixelcraft-pc/storefront/internal/constants"
	"github.com/pixelcraft-pc/storefront/internal/http/response"
	"github.com/pixelcraft-pc/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// GetIdentity 读取中间件解析出的身份，匿名请求返回 nil。
func GetIdentity(c *gin.Context) *service.Identity {
	value, exists := c.Get(constants.ContextKeyIdentity)
	if !exists {
		return nil
	}
	identity, ok := value.(*service.Identity)
	if !ok {
		return nil
	}
	return identity
}

// GetCartRef 读取购物车引用，登录顾客附带顾客 ID。
func GetCartRef(c *gin.Context) service.CartRef {
	var ref service.CartRef
	if value, ok := c.Get(constants.ContextKeyCartRef); ok {
		if stored, ok := value.(service.CartRef); ok {
			ref = stored
		}
	}
	if identity := GetIdentity(c); identity != nil {
		ref.CustomerID = identity.CustomerID()
	}
	return ref
}

// RequireCustomerID 当前请求必须是顾客身份。
func RequireCustomerID(c *gin.Context) (uint, bool) {
	identity := GetIdentity(c)
	if !identity.IsCustomer() {
		RespondErrorWithRedirect(c, response.CodeUnauthorized, "error.unauthorized", "/login", nil)
		return 0, false
	}
	return identity.ID, true
}

// ParseUintParam 解析路径中的正整数参数。
func ParseUintParam(c *gin.Context, name string) (uint, bool) {
	raw := strings.TrimSpace(c.Param(name))
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		RespondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return 0, false
	}
	return uint(id), true
}

// ParseBoolQuery 解析可选布尔查询参数，缺省或非法返回 nil。
func ParseBoolQuery(c *gin.Context, name string) *bool {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &v
}

// ParseUintQuery 解析可选正整数查询参数，缺省或非法返回 0。
func ParseUintQuery(c *gin.Context, name string) uint {
	v, err := strconv.ParseUint(strings.TrimSpace(c.Query(name)), 10, 64)
	if err != nil {
		return 0
	}
	return uint(v)
}
