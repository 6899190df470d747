package admin

import (
	handlershared "github.com/pixelcraft-pc/storefront/internal/http/handlers/shared"
	"github.com/pixelcraft-pc/storefront/internal/http/response"
	"github.com/pixelcraft-pc/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

func currentAdmin(c *gin.Context) (*service.Identity, bool) {
	identity := handlershared.GetIdentity(c)
	if !identity.IsAdmin() {
		respondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return nil, false
	}
	return identity, true
}

func parseID(c *gin.Context, name string) (uint, bool) {
	return handlershared.ParseUintParam(c, name)
}

func pagination(c *gin.Context) (int, int) {
	return handlershared.ParsePagination(c)
}
