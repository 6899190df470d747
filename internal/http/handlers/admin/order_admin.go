package admin

import (
	"strings"

	"github.com/pixelcraft-pc/storefront/internal/http/response"
	"github.com/pixelcraft-pc/storefront/internal/repository"
	"github.com/pixelcraft-pc/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// UpdateOrderStatusRequest 订单状态更新请求
type UpdateOrderStatusRequest struct {
	OrderStatus   string  `json:"order_status"`
	PaymentStatus string  `json:"payment_status"`
	TrackingCode  *string `json:"tracking_code" binding:"omitempty,max=60"`
}

// PaymentMethodToggleRequest 支付方式启停请求
type PaymentMethodToggleRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// ListOrders 后台订单列表
func (h *Handler) ListOrders(c *gin.Context) {
	page, pageSize := pagination(c)
	orders, total, err := h.OrderService.ListOrders(repository.OrderListFilter{
		Page:          page,
		PageSize:      pageSize,
		OrderStatus:   strings.TrimSpace(c.Query("status")),
		PaymentStatus: strings.TrimSpace(c.Query("payment_status")),
		OrderNumber:   strings.TrimSpace(c.Query("order_number")),
	})
	if err != nil {
		respondServiceError(c, err, "")
		return
	}
	response.SuccessWithPage(c, orders, response.NewPagination(page, pageSize, total))
}

// GetOrder 后台订单详情
func (h *Handler) GetOrder(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	order, err := h.OrderService.GetOrder(id)
	if err != nil {
		respondServiceError(c, err, "/admin/orders")
		return
	}
	response.Success(c, order)
}

// UpdateOrderStatus 按状态机更新订单
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	order, err := h.OrderService.UpdateStatus(id, service.UpdateOrderStatusInput{
		OrderStatus:   req.OrderStatus,
		PaymentStatus: req.PaymentStatus,
		TrackingCode:  req.TrackingCode,
	})
	if err != nil {
		respondServiceError(c, err, "/admin/orders")
		return
	}
	requestLog(c).Infow("admin_order_status_updated",
		"order_id", order.ID,
		"order_status", order.OrderStatus,
		"payment_status", order.PaymentStatus,
	)
	response.Success(c, order)
}

// ListPaymentMethods 支付方式列表（含停用）
func (h *Handler) ListPaymentMethods(c *gin.Context) {
	methods, err := h.OrderService.ListPaymentMethods(false)
	if err != nil {
		respondServiceError(c, err, "")
		return
	}
	response.Success(c, methods)
}

// TogglePaymentMethod 启用或停用支付方式
func (h *Handler) TogglePaymentMethod(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req PaymentMethodToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if err := h.OrderService.SetPaymentMethodActive(id, *req.Active); err != nil {
		respondServiceError(c, err, "/admin/payment-methods")
		return
	}
	response.Success(c, gin.H{"id": id, "active": *req.Active})
}
