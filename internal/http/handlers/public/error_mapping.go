package public

import (
	handlershared "github.com/pixelcraft-pc/storefront/internal/http/handlers/shared"
	"github.com/pixelcraft-pc/storefront/internal/http/response"
	"github.com/pixelcraft-pc/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError = handlershared.MappedError

func respondWithMappedError(c *gin.Context, err error, rules ...[]mappedHandlerError) {
	groups := append(rules, handlershared.ServiceErrorRules)
	handlershared.RespondMapped(c, err, handlershared.ConcatMappedErrors(groups...), handlershared.InternalFallback)
}

var catalogErrorRules = []mappedHandlerError{
	{Target: service.ErrProductNotFound, Code: response.CodeNotFound, Key: "error.product_not_found", Redirect: "/pcs"},
}

var cartErrorRules = []mappedHandlerError{
	{Target: service.ErrProductNotFound, Code: response.CodeNotFound, Key: "error.product_not_found", Redirect: "/pcs"},
	{Target: service.ErrCartItemNotFound, Code: response.CodeNotFound, Key: "error.cart_item_not_found", Redirect: "/cart"},
	{Target: service.ErrInvalidQuantity, Code: response.CodeBadRequest, Key: "error.quantity_invalid", Redirect: "/cart"},
}

var checkoutErrorRules = []mappedHandlerError{
	{Target: service.ErrEmptyCart, Code: response.CodeBadRequest, Key: "error.cart_empty", Redirect: "/pcs"},
	{Target: service.ErrPaymentMethodInvalid, Code: response.CodeBadRequest, Key: "error.payment_invalid", Redirect: "/checkout"},
	{Target: service.ErrCaptchaRequired, Code: response.CodeBadRequest, Key: "error.captcha_required", Redirect: "/checkout"},
	{Target: service.ErrCaptchaInvalid, Code: response.CodeBadRequest, Key: "error.captcha_invalid", Redirect: "/checkout"},
	{Target: service.ErrValidation, Code: response.CodeBadRequest, Key: "error.validation", Redirect: "/checkout"},
	{Target: service.ErrPersistence, Code: response.CodeInternal, Key: "error.persistence", Redirect: "/checkout"},
}

var authErrorRules = []mappedHandlerError{
	{Target: service.ErrEmailExists, Code: response.CodeConflict, Key: "error.email_exists", Redirect: "/login"},
	{Target: service.ErrInvalidCredentials, Code: response.CodeUnauthorized, Key: "error.invalid_credentials", Redirect: "/login"},
}

var accountOrderErrorRules = []mappedHandlerError{
	{Target: service.ErrOrderNotFound, Code: response.CodeNotFound, Key: "error.order_not_found", Redirect: "/minha-conta/pedidos"},
}

var reviewErrorRules = []mappedHandlerError{
	{Target: service.ErrProductNotFound, Code: response.CodeNotFound, Key: "error.product_not_found", Redirect: "/pcs"},
	{Target: service.ErrOrderNotFound, Code: response.CodeNotFound, Key: "error.order_not_found", Redirect: "/minha-conta/pedidos"},
}
