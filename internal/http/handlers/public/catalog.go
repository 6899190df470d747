package public

import (
	"strings"

	"github.com/pixelcraft-pc/storefront/internal/http/response"
	"github.com/pixelcraft-pc/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// Home 首页：推荐整机与分类
func (h *Handler) Home(c *gin.Context) {
	page, err := h.CatalogService.Home(c.Request.Context())
	if err != nil {
		respondWithMappedError(c, err)
		return
	}
	response.Success(c, page)
}

// ListPCs 目录页，支持分类、价格区间与排序
func (h *Handler) ListPCs(c *gin.Context) {
	page, err := h.CatalogService.ListCatalog(c.Request.Context(), service.CatalogQuery{
		Category: c.Query("category"),
		Sort:     c.Query("sort"),
		PriceMin: c.Query("price_min"),
		PriceMax: c.Query("price_max"),
	})
	if err != nil {
		respondWithMappedError(c, err)
		return
	}
	response.Success(c, page)
}

// GetPC 整机详情
func (h *Handler) GetPC(c *gin.Context) {
	detail, err := h.CatalogService.Detail(c.Param("slug"))
	if err != nil {
		respondWithMappedError(c, err, catalogErrorRules)
		return
	}
	response.Success(c, detail)
}

// ListCategories 上架分类
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.CatalogService.Categories(c.Request.Context())
	if err != nil {
		respondWithMappedError(c, err)
		return
	}
	response.Success(c, categories)
}

// Search 快速搜索
func (h *Handler) Search(c *gin.Context) {
	term := strings.TrimSpace(c.Query("q"))
	if term == "" {
		response.Success(c, []service.SearchResult{})
		return
	}
	results, err := h.CatalogService.Search(term)
	if err != nil {
		respondWithMappedError(c, err)
		return
	}
	response.Success(c, results)
}
