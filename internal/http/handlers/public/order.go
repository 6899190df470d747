package public

import (
	"github.com/pixelcraft-pc/storefront/internal/constants"
	handlershared "github.com/pixelcraft-pc/storefront/internal/http/handlers/shared"
	"github.com/pixelcraft-pc/storefront/internal/http/response"
	"github.com/pixelcraft-pc/storefront/internal/models"
	"github.com/pixelcraft-pc/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// ProcessOrderRequest 下单请求
type ProcessOrderRequest struct {
	Name           string                              `json:"name" form:"name" binding:"required,max=160"`
	Email          string                              `json:"email" form:"email" binding:"required,email"`
	Phone          string                              `json:"phone" form:"phone" binding:"max=40"`
	CPF            string                              `json:"cpf" form:"cpf" binding:"max=20"`
	CEP            string                              `json:"cep" form:"cep" binding:"required,cep"`
	Address        string                              `json:"address" form:"address" binding:"required,max=255"`
	Number         string                              `json:"number" form:"number" binding:"required,max=20"`
	Complement     string                              `json:"complement" form:"complement" binding:"max=120"`
	Neighborhood   string                              `json:"neighborhood" form:"neighborhood" binding:"max=120"`
	City           string                              `json:"city" form:"city" binding:"required,max=120"`
	State          string                              `json:"state" form:"state" binding:"required,uf"`
	PaymentMethod  string                              `json:"payment_method" form:"payment_method" binding:"required"`
	SetupService   handlershared.CheckboxFlag          `json:"setup_service" form:"setup_service"`
	Notes          string                              `json:"notes" form:"notes"`
	CaptchaPayload handlershared.CaptchaPayloadRequest `json:"captcha_payload"`
}

// GuestOrderConfirmation 游客下单确认信息
type GuestOrderConfirmation struct {
	OrderNumber   string            `json:"order_number"`
	Items         models.OrderLines `json:"items"`
	Subtotal      models.Money      `json:"subtotal"`
	SetupFee      models.Money      `json:"setup_fee"`
	Shipping      models.Money      `json:"shipping"`
	Discount      models.Money      `json:"discount"`
	Total         models.Money      `json:"total"`
	PaymentMethod string            `json:"payment_method"`
}

// Checkout 结算页预览
func (h *Handler) Checkout(c *gin.Context) {
	preview, err := h.OrderService.Preview(cartRef(c))
	if err != nil {
		respondWithMappedError(c, err, checkoutErrorRules)
		return
	}
	response.Success(c, preview)
}

// ProcessOrder 提交订单
func (h *Handler) ProcessOrder(c *gin.Context) {
	var req ProcessOrderRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}

	identity := currentIdentity(c)
	if !identity.IsCustomer() {
		if err := h.CaptchaService.Verify(constants.CaptchaSceneGuestCheckout, req.CaptchaPayload.ToServicePayload()); err != nil {
			respondWithMappedError(c, err, checkoutErrorRules)
			return
		}
	}

	order, err := h.OrderService.PlaceOrder(service.CheckoutInput{
		Cart:          cartRef(c),
		Identity:      identity,
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		CPF:           req.CPF,
		CEP:           req.CEP,
		Street:        req.Address,
		Number:        req.Number,
		Complement:    req.Complement,
		Neighborhood:  req.Neighborhood,
		City:          req.City,
		State:         req.State,
		PaymentMethod: req.PaymentMethod,
		SetupService:  req.SetupService.Bool(),
		Notes:         req.Notes,
		Locale:        locale(c),
	})
	if err != nil {
		respondWithMappedError(c, err, checkoutErrorRules)
		return
	}

	msg := handlerT(c, "order.created")
	if identity.IsCustomer() {
		response.SuccessWithMsg(c, msg, gin.H{
			"success":      true,
			"order_number": order.OrderNumber,
			"redirect":     "/minha-conta/pedidos/" + order.OrderNumber,
		})
		return
	}
	response.SuccessWithMsg(c, msg, gin.H{
		"success": true,
		"order": GuestOrderConfirmation{
			OrderNumber:   order.OrderNumber,
			Items:         order.Items,
			Subtotal:      order.Subtotal,
			SetupFee:      order.SetupFee,
			Shipping:      order.Shipping,
			Discount:      order.Discount,
			Total:         order.Total,
			PaymentMethod: order.PaymentMethod,
		},
	})
}
