package router

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/pixelcraft-pc/storefront/internal/authz"
	"github.com/pixelcraft-pc/storefront/internal/config"
	"github.com/pixelcraft-pc/storefront/internal/constants"
	handlershared "github.com/pixelcraft-pc/storefront/internal/http/handlers/shared"
	"github.com/pixelcraft-pc/storefront/internal/http/response"
	"github.com/pixelcraft-pc/storefront/internal/i18n"
	"github.com/pixelcraft-pc/storefront/internal/logger"
	"github.com/pixelcraft-pc/storefront/internal/models"
	"github.com/pixelcraft-pc/storefront/internal/repository"
	"github.com/pixelcraft-pc/storefront/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDHeader = "X-Request-ID"

// CartSessionHeader 非浏览器客户端可通过该请求头携带购物车会话
const CartSessionHeader = "X-Cart-Session"

// CORSMiddleware 跨域中间件
func CORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	allowedMethods := cfg.AllowedMethods
	if len(allowedMethods) == 0 {
		allowedMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	}
	allowedHeaders := cfg.AllowedHeaders
	if len(allowedHeaders) == 0 {
		allowedHeaders = []string{
			"Content-Type",
			"Authorization",
			"Accept-Language",
			"X-Requested-With",
			CartSessionHeader,
		}
	}
	methodsHeader := strings.Join(allowedMethods, ", ")
	headersHeader := strings.Join(allowedHeaders, ", ")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		allowedOrigin := resolveAllowedOrigin(origin, allowedOrigins, cfg.AllowCredentials)
		if allowedOrigin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
			if allowedOrigin != "*" {
				c.Writer.Header().Add("Vary", "Origin")
			}
		}
		if cfg.AllowCredentials {
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		c.Writer.Header().Set("Access-Control-Allow-Headers", headersHeader)
		c.Writer.Header().Set("Access-Control-Allow-Methods", methodsHeader)
		c.Writer.Header().Set("Access-Control-Expose-Headers", CartSessionHeader+", "+requestIDHeader)
		if cfg.MaxAge > 0 {
			c.Writer.Header().Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func resolveAllowedOrigin(origin string, allowedOrigins []string, allowCredentials bool) string {
	if len(allowedOrigins) == 0 {
		return ""
	}
	for _, allowed := range allowedOrigins {
		if allowed == "*" {
			if allowCredentials && origin != "" {
				return origin
			}
			return "*"
		}
	}
	if origin == "" {
		return ""
	}
	for _, allowed := range allowedOrigins {
		if strings.EqualFold(allowed, origin) {
			return origin
		}
	}
	return ""
}

// RequestIDMiddleware 请求 ID 中间件
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(constants.ContextKeyRequestID, requestID)
		c.Writer.Header().Set(requestIDHeader, requestID)
		c.Next()
	}
}

// LoggerMiddleware 结构化请求日志中间件
func LoggerMiddleware(log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.L()
	}
	sugar := log.Sugar()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := sugar.With(
			"request_id", getRequestID(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
		if len(c.Errors) > 0 {
			entry.Errorw("request", "errors", c.Errors.String())
			return
		}
		entry.Infow("request")
	}
}

func getRequestID(c *gin.Context) string {
	value, ok := c.Get(constants.ContextKeyRequestID)
	if !ok {
		return ""
	}
	if requestID, ok := value.(string); ok {
		return requestID
	}
	return ""
}

// LocaleMiddleware 解析 lang 参数或 Accept-Language
func LocaleMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.Query("lang"))
		if raw == "" {
			raw = c.GetHeader("Accept-Language")
		}
		c.Set(constants.ContextKeyLocale, i18n.ResolveLocale(raw))
		c.Next()
	}
}

// CartSessionMiddleware 为每个访客分配购物车会话，优先沿用 Cookie 或请求头中的值
func CartSessionMiddleware(cfg config.StoreConfig) gin.HandlerFunc {
	cookieName := strings.TrimSpace(cfg.CartCookieName)
	if cookieName == "" {
		cookieName = "pixelcraft_cart"
	}
	maxAge := cfg.CartCookieMaxAge
	if maxAge <= 0 {
		maxAge = 30 * 24 * 3600
	}
	return func(c *gin.Context) {
		session, _ := c.Cookie(cookieName)
		session = strings.TrimSpace(session)
		if session == "" {
			session = strings.TrimSpace(c.GetHeader(CartSessionHeader))
		}
		if !validCartSession(session) {
			session = uuid.NewString()
		}
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(cookieName, session, maxAge, "/", "", c.Request.TLS != nil, true)
		c.Writer.Header().Set(CartSessionHeader, session)
		c.Set(constants.ContextKeyCartRef, service.CartRef{SessionKey: session})
		c.Next()
	}
}

func validCartSession(session string) bool {
	if session == "" || len(session) > 64 {
		return false
	}
	for _, r := range session {
		if !(r == '-' || r == '_' || (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')) {
			return false
		}
	}
	return true
}

// IdentityMiddleware 解析 Bearer 令牌或登录 Cookie，失败时按匿名访客继续
func IdentityMiddleware(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		fromCookie := false
		if token == "" {
			if cookie, err := c.Cookie(constants.CookieAuthToken); err == nil {
				token = strings.TrimSpace(cookie)
				fromCookie = token != ""
			}
		}
		if token == "" || authService == nil {
			c.Next()
			return
		}
		identity, err := authService.ResolveIdentity(c.Request.Context(), token)
		if err != nil {
			handlershared.RequestLog(c).Debugw("identity_resolve_failed", "error", err)
			if fromCookie {
				c.SetSameSite(http.SameSiteLaxMode)
				c.SetCookie(constants.CookieAuthToken, "", -1, "/", "", c.Request.TLS != nil, true)
			}
			c.Next()
			return
		}
		c.Set(constants.ContextKeyIdentity, identity)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	parts := strings.SplitN(strings.TrimSpace(c.GetHeader("Authorization")), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// RequireCustomer 仅允许已登录顾客
func RequireCustomer() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !handlershared.GetIdentity(c).IsCustomer() {
			handlershared.RespondErrorWithRedirect(c, response.CodeUnauthorized, "error.unauthorized", "/login", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin 管理员身份校验与 casbin 角色鉴权
func RequireAdmin(authzService *authz.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := handlershared.GetIdentity(c)
		if !identity.IsAdmin() {
			handlershared.RespondErrorWithRedirect(c, response.CodeUnauthorized, "error.unauthorized", "/admin/login", nil)
			c.Abort()
			return
		}
		if authzService == nil {
			logger.Errorw("admin_rbac_service_unavailable")
			handlershared.RespondError(c, response.CodeForbidden, "error.forbidden", nil)
			c.Abort()
			return
		}

		resource := c.FullPath()
		if strings.TrimSpace(resource) == "" {
			resource = c.Request.URL.Path
		}
		allowed, err := authzService.EnforceRole(identity.Role, resource, c.Request.Method)
		if err != nil {
			logger.Errorw("admin_rbac_enforce_failed",
				"admin_id", identity.ID,
				"role", identity.Role,
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"error", err,
			)
			handlershared.RespondError(c, response.CodeForbidden, "error.forbidden", nil)
			c.Abort()
			return
		}
		if !allowed {
			logger.Warnw("admin_rbac_permission_denied",
				"admin_id", identity.ID,
				"role", identity.Role,
				"method", c.Request.Method,
				"resource", authz.NormalizeObject(resource),
			)
			handlershared.RespondError(c, response.CodeForbidden, "error.forbidden", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// AdminAuditMiddleware 记录后台写操作，写入失败只记日志不影响响应
func AdminAuditMiddleware(repo repository.AdminAuditLogRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if repo == nil {
			return
		}
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			return
		}
		identity := handlershared.GetIdentity(c)
		if !identity.IsAdmin() {
			return
		}
		object := c.FullPath()
		if object == "" {
			object = c.Request.URL.Path
		}
		entry := &models.AdminAuditLog{
			AdminID:   identity.ID,
			Role:      identity.Role,
			Method:    c.Request.Method,
			Object:    object,
			Path:      c.Request.URL.Path,
			TargetID:  c.Param("id"),
			Status:    c.Writer.Status(),
			RequestID: getRequestID(c),
		}
		if err := repo.Create(entry); err != nil {
			logger.Warnw("admin_audit_log_write_failed",
				"admin_id", identity.ID,
				"method", entry.Method,
				"object", entry.Object,
				"error", err,
			)
		}
	}
}
