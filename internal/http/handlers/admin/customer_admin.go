package admin

import (
	"strings"

	handlershared "github.com/pixelcraft-pc/storefront/internal/http/handlers/shared"
	"github.com/pixelcraft-pc/storefront/internal/http/response"
	"github.com/pixelcraft-pc/storefront/internal/repository"

	"github.com/gin-gonic/gin"
)

// ReviewModerateRequest 评价审核请求
type ReviewModerateRequest struct {
	Status string `json:"status" binding:"required,oneof=approved rejected"`
}

// ListCustomers 顾客列表
func (h *Handler) ListCustomers(c *gin.Context) {
	page, pageSize := pagination(c)
	customers, total, err := h.CustomerService.List(repository.CustomerListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   strings.TrimSpace(c.Query("search")),
	})
	if err != nil {
		respondServiceError(c, err, "")
		return
	}
	response.SuccessWithPage(c, customers, response.NewPagination(page, pageSize, total))
}

// GetCustomer 顾客详情与最近订单
func (h *Handler) GetCustomer(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	detail, err := h.CustomerService.Detail(id)
	if err != nil {
		respondServiceError(c, err, "/admin/customers")
		return
	}
	response.Success(c, detail)
}

// ListReviews 评价列表，可按状态过滤
func (h *Handler) ListReviews(c *gin.Context) {
	page, pageSize := pagination(c)
	reviews, total, err := h.ReviewService.List(repository.ReviewListFilter{
		Page:      page,
		PageSize:  pageSize,
		Status:    strings.TrimSpace(c.Query("status")),
		ProductID: handlershared.ParseUintQuery(c, "pc_id"),
	})
	if err != nil {
		respondServiceError(c, err, "")
		return
	}
	response.SuccessWithPage(c, reviews, response.NewPagination(page, pageSize, total))
}

// ModerateReview 审核评价
func (h *Handler) ModerateReview(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req ReviewModerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if err := h.ReviewService.Moderate(id, req.Status); err != nil {
		respondServiceError(c, err, "/admin/reviews")
		return
	}
	response.Success(c, gin.H{"id": id, "status": req.Status})
}

// ListNewsletterSubscribers 订阅列表
func (h *Handler) ListNewsletterSubscribers(c *gin.Context) {
	page, pageSize := pagination(c)
	subscribers, total, err := h.NewsletterService.List(repository.SubscriberListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   strings.TrimSpace(c.Query("search")),
	})
	if err != nil {
		respondServiceError(c, err, "")
		return
	}
	response.SuccessWithPage(c, subscribers, response.NewPagination(page, pageSize, total))
}
