package admin

import (
	"strings"

	handlershared "github.com/pixelcraft-pc/storefront/internal/http/handlers/shared"
	"github.com/pixelcraft-pc/storefront/internal/http/response"
	"github.com/pixelcraft-pc/storefront/internal/repository"
	"github.com/pixelcraft-pc/storefront/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

const pcListPath = "/admin/pcs"

// PCRequest 整机创建/更新请求
type PCRequest struct {
	CategoryID          *uint            `json:"category_id"`
	Name                string           `json:"name" binding:"required,max=200"`
	Subtitle            string           `json:"subtitle" binding:"max=255"`
	Description         string           `json:"description"`
	Price               decimal.Decimal  `json:"price"`
	PriceOld            *decimal.Decimal `json:"price_old"`
	Processor           string           `json:"processor" binding:"max=120"`
	GPU                 string           `json:"gpu" binding:"max=120"`
	RAM                 string           `json:"ram" binding:"max=80"`
	Storage             string           `json:"storage" binding:"max=120"`
	Motherboard         string           `json:"motherboard" binding:"max=120"`
	PSU                 string           `json:"psu" binding:"max=80"`
	CaseModel           string           `json:"case_model" binding:"max=120"`
	Cooling             string           `json:"cooling" binding:"max=120"`
	GraffitiArtist      string           `json:"graffiti_artist" binding:"max=120"`
	GraffitiStyle       string           `json:"graffiti_style" binding:"max=120"`
	GraffitiDescription string           `json:"graffiti_description"`
	SetupPrice          *decimal.Decimal `json:"setup_price"`
	ImageMain           string           `json:"image_main" binding:"max=255"`
	Images              []string         `json:"images"`
	Featured            bool             `json:"featured"`
	Bestseller          bool             `json:"bestseller"`
	LimitedEdition      bool             `json:"limited_edition"`
	PreOrder            bool             `json:"pre_order"`
	InStock             *bool            `json:"in_stock"`
	Active              *bool            `json:"active"`
}

func (r PCRequest) toInput() service.ProductInput {
	return service.ProductInput{
		CategoryID:          r.CategoryID,
		Name:                r.Name,
		Subtitle:            r.Subtitle,
		Description:         r.Description,
		Price:               r.Price,
		PriceOld:            r.PriceOld,
		Processor:           r.Processor,
		GPU:                 r.GPU,
		RAM:                 r.RAM,
		Storage:             r.Storage,
		Motherboard:         r.Motherboard,
		PSU:                 r.PSU,
		CaseModel:           r.CaseModel,
		Cooling:             r.Cooling,
		GraffitiArtist:      r.GraffitiArtist,
		GraffitiStyle:       r.GraffitiStyle,
		GraffitiDescription: r.GraffitiDescription,
		SetupPrice:          r.SetupPrice,
		ImageMain:           r.ImageMain,
		Images:              r.Images,
		Featured:            r.Featured,
		Bestseller:          r.Bestseller,
		LimitedEdition:      r.LimitedEdition,
		PreOrder:            r.PreOrder,
		InStock:             r.InStock,
		Active:              r.Active,
	}
}

// PCGameRequest 整机游戏性能请求
type PCGameRequest struct {
	Performance int    `json:"performance"`
	FPSAvg      int    `json:"fps_avg"`
	Resolution  string `json:"resolution" binding:"max=20"`
}

// ListPCs 后台整机列表（含下架）
func (h *Handler) ListPCs(c *gin.Context) {
	page, pageSize := pagination(c)
	products, total, err := h.ProductAdminService.List(repository.ProductListFilter{
		Page:       page,
		PageSize:   pageSize,
		CategoryID: handlershared.ParseUintQuery(c, "category_id"),
		Search:     strings.TrimSpace(c.Query("search")),
		Active:     handlershared.ParseBoolQuery(c, "active"),
	})
	if err != nil {
		respondServiceError(c, err, "")
		return
	}
	response.SuccessWithPage(c, products, response.NewPagination(page, pageSize, total))
}

// GetPC 后台整机详情
func (h *Handler) GetPC(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	detail, err := h.ProductAdminService.Get(id)
	if err != nil {
		respondServiceError(c, err, pcListPath)
		return
	}
	response.Success(c, detail)
}

// CreatePC 创建整机
func (h *Handler) CreatePC(c *gin.Context) {
	var req PCRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	product, err := h.ProductAdminService.Create(req.toInput())
	if err != nil {
		respondServiceError(c, err, "")
		return
	}
	response.Success(c, product)
}

// UpdatePC 更新整机，改名时重新生成 slug
func (h *Handler) UpdatePC(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req PCRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	product, err := h.ProductAdminService.Update(id, req.toInput())
	if err != nil {
		respondServiceError(c, err, pcListPath)
		return
	}
	response.Success(c, product)
}

// DeletePC 删除整机及其游戏性能数据
func (h *Handler) DeletePC(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.ProductAdminService.Delete(id); err != nil {
		respondServiceError(c, err, pcListPath)
		return
	}
	requestLog(c).Infow("admin_pc_deleted", "pc_id", id)
	response.Success(c, gin.H{"deleted": true})
}

// SetPCGame 设置整机在某游戏下的性能
func (h *Handler) SetPCGame(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	gameID, ok := parseID(c, "game_id")
	if !ok {
		return
	}
	var req PCGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	link, err := h.ProductAdminService.SetGame(id, service.ProductGameInput{
		GameID:      gameID,
		Performance: req.Performance,
		FPSAvg:      req.FPSAvg,
		Resolution:  req.Resolution,
	})
	if err != nil {
		respondServiceError(c, err, pcListPath)
		return
	}
	response.Success(c, link)
}

// RemovePCGame 移除整机游戏性能
func (h *Handler) RemovePCGame(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	gameID, ok := parseID(c, "game_id")
	if !ok {
		return
	}
	if err := h.ProductAdminService.RemoveGame(id, gameID); err != nil {
		respondServiceError(c, err, pcListPath)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
