package admin

import (
	"github.com/pixelcraft-pc/storefront/internal/http/response"
	"github.com/pixelcraft-pc/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// CategoryRequest 分类请求
type CategoryRequest struct {
	Name        string `json:"name" binding:"required,max=120"`
	Slug        string `json:"slug" binding:"max=120"`
	Description string `json:"description"`
	Color       string `json:"color" binding:"max=20"`
	Icon        string `json:"icon" binding:"max=60"`
	SortOrder   int    `json:"sort_order"`
	Active      *bool  `json:"active"`
}

func (r CategoryRequest) toInput() service.CategoryInput {
	return service.CategoryInput{
		Name:        r.Name,
		Slug:        r.Slug,
		Description: r.Description,
		Color:       r.Color,
		Icon:        r.Icon,
		SortOrder:   r.SortOrder,
		Active:      r.Active,
	}
}

// GameRequest 游戏请求
type GameRequest struct {
	Name   string `json:"name" binding:"required,max=120"`
	Genre  string `json:"genre" binding:"max=60"`
	Image  string `json:"image" binding:"max=255"`
	Active *bool  `json:"active"`
}

func (r GameRequest) toInput() service.GameInput {
	return service.GameInput{Name: r.Name, Genre: r.Genre, Image: r.Image, Active: r.Active}
}

// ListCategories 分类列表（含停用）
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.CategoryService.List()
	if err != nil {
		respondServiceError(c, err, "")
		return
	}
	response.Success(c, categories)
}

// CreateCategory 创建分类
func (h *Handler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	category, err := h.CategoryService.Create(req.toInput())
	if err != nil {
		respondServiceError(c, err, "")
		return
	}
	response.Success(c, category)
}

// UpdateCategory 更新分类
func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	category, err := h.CategoryService.Update(id, req.toInput())
	if err != nil {
		respondServiceError(c, err, "/admin/categories")
		return
	}
	response.Success(c, category)
}

// DeleteCategory 删除分类，仍有整机时拒绝
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.CategoryService.Delete(id); err != nil {
		respondServiceError(c, err, "/admin/categories")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// ListGames 游戏列表
func (h *Handler) ListGames(c *gin.Context) {
	games, err := h.GameService.List()
	if err != nil {
		respondServiceError(c, err, "")
		return
	}
	response.Success(c, games)
}

// CreateGame 创建游戏
func (h *Handler) CreateGame(c *gin.Context) {
	var req GameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	game, err := h.GameService.Create(req.toInput())
	if err != nil {
		respondServiceError(c, err, "")
		return
	}
	response.Success(c, game)
}

// UpdateGame 更新游戏
func (h *Handler) UpdateGame(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req GameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	game, err := h.GameService.Update(id, req.toInput())
	if err != nil {
		respondServiceError(c, err, "/admin/games")
		return
	}
	response.Success(c, game)
}

// DeleteGame 删除游戏
func (h *Handler) DeleteGame(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.GameService.Delete(id); err != nil {
		respondServiceError(c, err, "/admin/games")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
