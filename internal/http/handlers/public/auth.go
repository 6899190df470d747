package public

import (
	"net/http"
	"time"

	"github.com/pixelcraft-pc/storefront/internal/constants"
	handlershared "github.com/pixelcraft-pc/storefront/internal/http/handlers/shared"
	"github.com/pixelcraft-pc/storefront/internal/http/response"
	"github.com/pixelcraft-pc/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// CustomerLoginRequest 顾客登录请求
type CustomerLoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// CustomerRegisterRequest 顾客注册请求
type CustomerRegisterRequest struct {
	Name           string                              `json:"name" form:"name" binding:"required,max=160"`
	Email          string                              `json:"email" form:"email" binding:"required"`
	Password       string                              `json:"password" form:"password" binding:"required"`
	Phone          string                              `json:"phone" form:"phone" binding:"max=40"`
	Newsletter     bool                                `json:"newsletter" form:"newsletter"`
	CaptchaPayload handlershared.CaptchaPayloadRequest `json:"captcha_payload"`
}

// CustomerLogin 顾客登录
func (h *Handler) CustomerLogin(c *gin.Context) {
	var req CustomerLoginRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}
	result, err := h.AuthService.CustomerLogin(req.Email, req.Password)
	if err != nil {
		respondWithMappedError(c, err, authErrorRules)
		return
	}
	setAuthCookie(c, result)
	response.Success(c, gin.H{
		"token":      result.Token,
		"expires_at": result.ExpiresAt,
		"identity":   result.Identity,
		"redirect":   "/minha-conta/perfil",
	})
}

// CustomerRegister 顾客注册并直接登录
func (h *Handler) CustomerRegister(c *gin.Context) {
	var req CustomerRegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if err := h.CaptchaService.Verify(constants.CaptchaSceneRegister, req.CaptchaPayload.ToServicePayload()); err != nil {
		respondWithMappedError(c, err)
		return
	}

	customer, result, err := h.AuthService.Register(service.RegisterInput{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		Phone:      req.Phone,
		Newsletter: req.Newsletter,
		Locale:     locale(c),
	})
	if err != nil {
		respondWithMappedError(c, err, authErrorRules)
		return
	}
	setAuthCookie(c, result)
	response.Success(c, gin.H{
		"customer":   customer,
		"token":      result.Token,
		"expires_at": result.ExpiresAt,
		"redirect":   "/minha-conta/perfil",
	})
}

// Logout 退出登录，已签发令牌全部失效
func (h *Handler) Logout(c *gin.Context) {
	if err := h.AuthService.Logout(currentIdentity(c)); err != nil {
		respondWithMappedError(c, err)
		return
	}
	clearAuthCookie(c)
	response.SuccessWithMsg(c, handlerT(c, "auth.logged_out"), gin.H{"redirect": "/"})
}

func setAuthCookie(c *gin.Context, result *service.AuthResult) {
	maxAge := int(time.Until(result.ExpiresAt).Seconds())
	if maxAge <= 0 {
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(constants.CookieAuthToken, result.Token, maxAge, "/", "", c.Request.TLS != nil, true)
}

func clearAuthCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(constants.CookieAuthToken, "", -1, "/", "", c.Request.TLS != nil, true)
}
