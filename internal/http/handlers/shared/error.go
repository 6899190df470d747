package shared

import (
	"errors"
	"strings"

	"github.com/pixelcraft-pc/storefront/internal/constants"
	"github.com/pixelcraft-pc/storefront/internal/http/response"
	"github.com/pixelcraft-pc/storefront/internal/http/validation"
	"github.com/pixelcraft-pc/storefront/internal/i18n"
	"github.com/pixelcraft-pc/storefront/internal/logger"
	"github.com/pixelcraft-pc/storefront/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog 提供携带 request_id 的日志实例。
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID, ok := c.Get(constants.ContextKeyRequestID); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.SW("request_id", id)
		}
	}
	return logger.S()
}

// Locale 当前请求语言，优先使用中间件写入的值
func Locale(c *gin.Context) string {
	if c == nil {
		return i18n.DefaultLocale
	}
	if value, ok := c.Get(constants.ContextKeyLocale); ok {
		if locale, ok := value.(string); ok && locale != "" {
			return locale
		}
	}
	if lang := strings.TrimSpace(c.Query("lang")); lang != "" {
		return i18n.ResolveLocale(lang)
	}
	return i18n.ResolveLocale(c.GetHeader("Accept-Language"))
}

// T 按当前请求语言翻译
func T(c *gin.Context, key string) string {
	return i18n.T(Locale(c), key)
}

// RespondError 返回国际化错误响应，并在有原始错误时记录日志。
func RespondError(c *gin.Context, code int, key string, err error) {
	RespondErrorWithRedirect(c, code, key, "", err)
}

// RespondErrorWithRedirect 返回带跳转建议的错误响应。
// 原始错误只进入日志，不回显给客户端。
func RespondErrorWithRedirect(c *gin.Context, code int, key, redirect string, err error) {
	appErr := response.WrapError(code, T(c, key), err).WithRedirect(redirect)
	if err != nil {
		log := RequestLog(c)
		if appErr.Code >= response.CodeInternal {
			log.Errorw("handler_error", "code", appErr.Code, "key", key, "error", err)
		} else {
			log.Debugw("handler_error", "code", appErr.Code, "key", key, "error", err)
		}
	}
	if data := appErr.Data(); data != nil {
		response.ErrorWithData(c, appErr.Code, appErr.Message, data)
		return
	}
	response.Error(c, appErr.Code, appErr.Message)
}

// RespondBindError 请求绑定失败，校验错误附带字段明细
func RespondBindError(c *gin.Context, err error) {
	if fields := validation.FormatValidationError(err); len(fields) > 0 {
		response.ErrorWithData(c, response.CodeBadRequest, T(c, "error.validation"), gin.H{"fields": fields})
		return
	}
	RespondError(c, response.CodeBadRequest, "error.bad_request", nil)
}

// MappedError 业务错误到接口错误响应的映射规则。
type MappedError struct {
	Target   error
	Code     int
	Key      string
	Redirect string
}

// RespondMapped 按规则表返回第一条匹配的错误，未匹配时使用 fallback 并记录原始错误。
func RespondMapped(c *gin.Context, err error, rules []MappedError, fallback MappedError) {
	for _, rule := range rules {
		if errors.Is(err, rule.Target) {
			logErr := err
			if rule.Code < response.CodeInternal {
				logErr = nil
			}
			RespondErrorWithRedirect(c, rule.Code, rule.Key, rule.Redirect, logErr)
			return
		}
	}
	RespondErrorWithRedirect(c, fallback.Code, fallback.Key, fallback.Redirect, err)
}

// ConcatMappedErrors 合并规则表，前面的规则优先。
func ConcatMappedErrors(groups ...[]MappedError) []MappedError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]MappedError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

// WithRedirect 复制规则表并为未设置跳转的规则补上 redirect。
func WithRedirect(rules []MappedError, redirect string) []MappedError {
	result := make([]MappedError, len(rules))
	for i, rule := range rules {
		if rule.Redirect == "" {
			rule.Redirect = redirect
		}
		result[i] = rule
	}
	return result
}

// ServiceErrorRules 通用服务错误映射，具体错误在前，错误族在后。
var ServiceErrorRules = []MappedError{
	{Target: service.ErrProductNotFound, Code: response.CodeNotFound, Key: "error.product_not_found"},
	{Target: service.ErrCategoryNotFound, Code: response.CodeNotFound, Key: "error.category_not_found"},
	{Target: service.ErrGameNotFound, Code: response.CodeNotFound, Key: "error.game_not_found"},
	{Target: service.ErrOrderNotFound, Code: response.CodeNotFound, Key: "error.order_not_found"},
	{Target: service.ErrCustomerNotFound, Code: response.CodeNotFound, Key: "error.customer_not_found"},
	{Target: service.ErrReviewNotFound, Code: response.CodeNotFound, Key: "error.review_not_found"},
	{Target: service.ErrCartItemNotFound, Code: response.CodeNotFound, Key: "error.cart_item_not_found"},
	{Target: service.ErrImageNotFound, Code: response.CodeNotFound, Key: "error.image_not_found"},
	{Target: service.ErrPaymentNotFound, Code: response.CodeNotFound, Key: "error.payment_not_found"},
	{Target: service.ErrNotFound, Code: response.CodeNotFound, Key: "error.not_found"},

	{Target: service.ErrEmailExists, Code: response.CodeConflict, Key: "error.email_exists"},
	{Target: service.ErrSlugExists, Code: response.CodeConflict, Key: "error.slug_exists"},
	{Target: service.ErrInvalidEmail, Code: response.CodeBadRequest, Key: "error.email_invalid"},
	{Target: service.ErrPaymentMethodInvalid, Code: response.CodeBadRequest, Key: "error.payment_invalid"},
	{Target: service.ErrInvalidQuantity, Code: response.CodeBadRequest, Key: "error.quantity_invalid"},
	{Target: service.ErrInvalidRating, Code: response.CodeBadRequest, Key: "error.rating_invalid"},
	{Target: service.ErrInvalidStatusTransition, Code: response.CodeBadRequest, Key: "error.status_transition"},
	{Target: service.ErrUploadTooLarge, Code: response.CodeBadRequest, Key: "error.upload_too_large"},
	{Target: service.ErrUploadInvalid, Code: response.CodeBadRequest, Key: "error.upload_invalid"},
	{Target: service.ErrCaptchaRequired, Code: response.CodeBadRequest, Key: "error.captcha_required"},
	{Target: service.ErrCaptchaInvalid, Code: response.CodeBadRequest, Key: "error.captcha_invalid"},
	{Target: service.ErrPasswordMismatch, Code: response.CodeBadRequest, Key: "error.password_mismatch"},
	{Target: service.ErrCategoryInUse, Code: response.CodeConflict, Key: "error.category_in_use"},
	{Target: service.ErrValidation, Code: response.CodeBadRequest, Key: "error.validation"},

	{Target: service.ErrEmptyCart, Code: response.CodeBadRequest, Key: "error.cart_empty", Redirect: "/pcs"},
	{Target: service.ErrInvalidCredentials, Code: response.CodeUnauthorized, Key: "error.invalid_credentials"},
	{Target: service.ErrUnauthorized, Code: response.CodeUnauthorized, Key: "error.unauthorized"},
	{Target: service.ErrForbidden, Code: response.CodeForbidden, Key: "error.forbidden"},
	{Target: service.ErrPersistence, Code: response.CodeInternal, Key: "error.persistence"},
}

// InternalFallback 未识别错误的兜底响应。
var InternalFallback = MappedError{Code: response.CodeInternal, Key: "error.internal"}

// RespondServiceError 使用通用映射表返回服务错误。
func RespondServiceError(c *gin.Context, err error) {
	RespondMapped(c, err, ServiceErrorRules, InternalFallback)
}
