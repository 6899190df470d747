package public

import (
	"github.com/pixelcraft-pc/storefront/internal/constants"
	handlershared "github.com/pixelcraft-pc/storefront/internal/http/handlers/shared"
	"github.com/pixelcraft-pc/storefront/internal/http/response"

	"github.com/gin-gonic/gin"
)

// NewsletterRequest 订阅请求
type NewsletterRequest struct {
	Email          string                              `json:"email" form:"email" binding:"required"`
	Source         string                              `json:"source" form:"source" binding:"max=40"`
	CaptchaPayload handlershared.CaptchaPayloadRequest `json:"captcha_payload"`
}

// SubscribeNewsletter 订阅资讯，重复订阅同样返回成功
func (h *Handler) SubscribeNewsletter(c *gin.Context) {
	var req NewsletterRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if err := h.CaptchaService.Verify(constants.CaptchaSceneNewsletter, req.CaptchaPayload.ToServicePayload()); err != nil {
		respondWithMappedError(c, err)
		return
	}
	created, err := h.NewsletterService.Subscribe(req.Email, req.Source, locale(c))
	if err != nil {
		respondWithMappedError(c, err)
		return
	}
	key := "newsletter.already"
	if created {
		key = "newsletter.subscribed"
	}
	msg := handlerT(c, key)
	response.SuccessWithMsg(c, msg, gin.H{"success": true, "message": msg})
}
