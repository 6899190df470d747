package public

import (
	"github.com/pixelcraft-pc/storefront/internal/http/response"

	"github.com/gin-gonic/gin"
)

// AddToCartRequest 加入购物车请求，pc_id 缺失或为 0 时按商品不存在处理
type AddToCartRequest struct {
	PCID uint `json:"pc_id" form:"pc_id"`
}

// CartQuantityRequest 修改数量请求，quantity 小于等于 0 时移除
type CartQuantityRequest struct {
	PCID     uint `json:"pc_id" form:"pc_id" binding:"required"`
	Quantity int  `json:"quantity" form:"quantity"`
}

// CartRemoveRequest 移除购物车行请求
type CartRemoveRequest struct {
	PCID uint `json:"pc_id" form:"pc_id" binding:"required"`
}

// GetCart 查看购物车
func (h *Handler) GetCart(c *gin.Context) {
	view, err := h.CartService.View(cartRef(c))
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules)
		return
	}
	response.Success(c, view)
}

// AddToCart 加入购物车，已存在时数量加一
func (h *Handler) AddToCart(c *gin.Context) {
	var req AddToCartRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}
	count, err := h.CartService.Add(cartRef(c), req.PCID)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules)
		return
	}
	response.SuccessWithMsg(c, handlerT(c, "cart.added"), gin.H{
		"success":    true,
		"cart_count": count,
	})
}

// UpdateCart 修改购物车数量
func (h *Handler) UpdateCart(c *gin.Context) {
	var req CartQuantityRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}
	view, err := h.CartService.SetQuantity(cartRef(c), req.PCID, req.Quantity)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules)
		return
	}
	response.Success(c, view)
}

// RemoveFromCart 移除购物车行
func (h *Handler) RemoveFromCart(c *gin.Context) {
	var req CartRemoveRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}
	view, err := h.CartService.Remove(cartRef(c), req.PCID)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules)
		return
	}
	response.Success(c, view)
}
