package admin

import (
	handlershared "github.com/pixelcraft-pc/storefront/internal/http/handlers/shared"
	"github.com/pixelcraft-pc/storefront/internal/http/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

func respondBindError(c *gin.Context, err error) {
	handlershared.RespondBindError(c, err)
}

// respondServiceError 后台错误映射，not found 类错误跳回对应列表页
func respondServiceError(c *gin.Context, err error, listPath string) {
	rules := make([]handlershared.MappedError, 0, len(handlershared.ServiceErrorRules))
	for _, rule := range handlershared.ServiceErrorRules {
		if rule.Code == response.CodeNotFound && listPath != "" {
			rule.Redirect = listPath
		}
		rules = append(rules, rule)
	}
	handlershared.RespondMapped(c, err, rules, handlershared.InternalFallback)
}
