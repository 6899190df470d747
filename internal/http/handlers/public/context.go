package public

import (
	handlershared "github.com/pixelcraft-pc/storefront/internal/http/handlers/shared"
	"github.com/pixelcraft-pc/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

func respondBindError(c *gin.Context, err error) {
	handlershared.RespondBindError(c, err)
}

func currentIdentity(c *gin.Context) *service.Identity {
	return handlershared.GetIdentity(c)
}

func cartRef(c *gin.Context) service.CartRef {
	return handlershared.GetCartRef(c)
}

func getCustomerID(c *gin.Context) (uint, bool) {
	return handlershared.RequireCustomerID(c)
}

func locale(c *gin.Context) string {
	return handlershared.Locale(c)
}

func handlerT(c *gin.Context, key string) string {
	return handlershared.T(c, key)
}
