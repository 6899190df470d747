package public

import (
	handlershared "github.com/pixelcraft-pc/storefront/internal/http/handlers/shared"
	"github.com/pixelcraft-pc/storefront/internal/http/response"
	"github.com/pixelcraft-pc/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// ProfileRequest 资料更新请求
type ProfileRequest struct {
	Name         string `json:"name" form:"name" binding:"required,max=160"`
	Phone        string `json:"phone" form:"phone" binding:"max=40"`
	CPF          string `json:"cpf" form:"cpf" binding:"max=20"`
	CEP          string `json:"cep" form:"cep" binding:"omitempty,cep"`
	Address      string `json:"address" form:"address" binding:"max=255"`
	Number       string `json:"number" form:"number" binding:"max=20"`
	Complement   string `json:"complement" form:"complement" binding:"max=120"`
	Neighborhood string `json:"neighborhood" form:"neighborhood" binding:"max=120"`
	City         string `json:"city" form:"city" binding:"max=120"`
	State        string `json:"state" form:"state" binding:"omitempty,uf"`
	Newsletter   bool   `json:"newsletter" form:"newsletter"`
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" form:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" form:"new_password" binding:"required"`
}

// SubmitReviewRequest 提交评价请求
type SubmitReviewRequest struct {
	PCID    uint   `json:"pc_id" form:"pc_id" binding:"required"`
	OrderID *uint  `json:"order_id" form:"order_id"`
	Rating  int    `json:"rating" form:"rating" binding:"required"`
	Title   string `json:"title" form:"title" binding:"max=160"`
	Comment string `json:"comment" form:"comment"`
}

// GetProfile 顾客资料
func (h *Handler) GetProfile(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	customer, err := h.CustomerService.Get(customerID)
	if err != nil {
		respondWithMappedError(c, err)
		return
	}
	response.Success(c, customer)
}

// UpdateProfile 更新资料
func (h *Handler) UpdateProfile(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	var req ProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}
	customer, err := h.CustomerService.UpdateProfile(customerID, service.ProfileInput{
		Name:         req.Name,
		Phone:        req.Phone,
		CPF:          req.CPF,
		CEP:          req.CEP,
		Address:      req.Address,
		Number:       req.Number,
		Complement:   req.Complement,
		Neighborhood: req.Neighborhood,
		City:         req.City,
		State:        req.State,
		Newsletter:   req.Newsletter,
	})
	if err != nil {
		respondWithMappedError(c, err)
		return
	}
	response.SuccessWithMsg(c, handlerT(c, "profile.updated"), customer)
}

// ChangePassword 修改密码，成功后旧令牌失效
func (h *Handler) ChangePassword(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	var req ChangePasswordRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if err := h.CustomerService.ChangePassword(customerID, req.CurrentPassword, req.NewPassword); err != nil {
		respondWithMappedError(c, err)
		return
	}
	clearAuthCookie(c)
	response.SuccessWithMsg(c, handlerT(c, "password.changed"), gin.H{"redirect": "/login"})
}

// ListMyOrders 我的订单
func (h *Handler) ListMyOrders(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	page, pageSize := handlershared.ParsePagination(c)
	orders, total, err := h.OrderService.ListCustomerOrders(customerID, page, pageSize)
	if err != nil {
		respondWithMappedError(c, err)
		return
	}
	response.SuccessWithPage(c, orders, response.NewPagination(page, pageSize, total))
}

// GetMyOrder 我的订单详情，仅限本人订单
func (h *Handler) GetMyOrder(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	order, err := h.OrderService.GetCustomerOrder(customerID, c.Param("order_number"))
	if err != nil {
		respondWithMappedError(c, err, accountOrderErrorRules)
		return
	}
	response.Success(c, order)
}

// SubmitReview 提交评价，审核后展示
func (h *Handler) SubmitReview(c *gin.Context) {
	customerID, ok := getCustomerID(c)
	if !ok {
		return
	}
	var req SubmitReviewRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}
	review, err := h.ReviewService.Submit(customerID, service.SubmitReviewInput{
		ProductID: req.PCID,
		OrderID:   req.OrderID,
		Rating:    req.Rating,
		Title:     req.Title,
		Comment:   req.Comment,
	})
	if err != nil {
		respondWithMappedError(c, err, reviewErrorRules)
		return
	}
	response.SuccessWithMsg(c, handlerT(c, "review.submitted"), review)
}
