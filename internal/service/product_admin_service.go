package service

import (
	"strings"

	"github.com/pixelcraft-pc/storefront/internal/models"
	"github.com/pixelcraft-pc/storefront/internal/repository"

	"github.com/shopspring/decimal"
)

// ProductAdminService 后台整机管理
type ProductAdminService struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
	gameRepo     repository.GameRepository
	setupFee     decimal.Decimal
}

// NewProductAdminService 创建后台整机服务
func NewProductAdminService(repo repository.ProductRepository, categoryRepo repository.CategoryRepository, gameRepo repository.GameRepository, setupFee decimal.Decimal) *ProductAdminService {
	return &ProductAdminService{
		repo:         repo,
		categoryRepo: categoryRepo,
		gameRepo:     gameRepo,
		setupFee:     setupFee,
	}
}

// ProductInput 创建/更新整机输入
type ProductInput struct {
	CategoryID          *uint
	Name                string
	Subtitle            string
	Description         string
	Price               decimal.Decimal
	PriceOld            *decimal.Decimal
	Processor           string
	GPU                 string
	RAM                 string
	Storage             string
	Motherboard         string
	PSU                 string
	CaseModel           string
	Cooling             string
	GraffitiArtist      string
	GraffitiStyle       string
	GraffitiDescription string
	SetupPrice          *decimal.Decimal
	ImageMain           string
	Images              []string
	Featured            bool
	Bestseller          bool
	LimitedEdition      bool
	PreOrder            bool
	InStock             *bool
	Active              *bool
}

// List 后台列表
func (s *ProductAdminService) List(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	products, total, err := s.repo.List(filter)
	if err != nil {
		return nil, 0, persistenceError("list pcs", err)
	}
	return products, total, nil
}

// ProductAdminDetail 后台详情
type ProductAdminDetail struct {
	Product *models.Product      `json:"pc"`
	Games   []models.ProductGame `json:"games"`
}

// Get 后台详情（含未上架）
func (s *ProductAdminService) Get(id uint) (*ProductAdminDetail, error) {
	product, err := s.load(id)
	if err != nil {
		return nil, err
	}
	games, err := s.gameRepo.ListByProduct(id)
	if err != nil {
		return nil, persistenceError("list pc games", err)
	}
	return &ProductAdminDetail{Product: product, Games: games}, nil
}

func (s *ProductAdminService) load(id uint) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, persistenceError("load pc", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// Create 创建整机，slug 由名称生成
func (s *ProductAdminService) Create(input ProductInput) (*models.Product, error) {
	if err := s.validate(input); err != nil {
		return nil, err
	}
	slug, err := s.uniqueSlug(input.Name, 0)
	if err != nil {
		return nil, err
	}
	product := &models.Product{Slug: slug, InStock: true, Active: true}
	s.apply(product, input)
	if err := s.repo.Create(product); err != nil {
		return nil, persistenceError("create pc", err)
	}
	// 带默认值的布尔列在创建时会忽略 false
	if !product.Active || !product.InStock {
		if err := s.repo.Update(product); err != nil {
			return nil, persistenceError("create pc", err)
		}
	}
	invalidateCatalogCache()
	return product, nil
}

// Update 更新整机，改名时重新生成 slug
func (s *ProductAdminService) Update(id uint, input ProductInput) (*models.Product, error) {
	product, err := s.load(id)
	if err != nil {
		return nil, err
	}
	if err := s.validate(input); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Name) != product.Name {
		slug, err := s.uniqueSlug(input.Name, id)
		if err != nil {
			return nil, err
		}
		product.Slug = slug
	}
	s.apply(product, input)
	if err := s.repo.Update(product); err != nil {
		return nil, persistenceError("update pc", err)
	}
	invalidateCatalogCache()
	return product, nil
}

// Delete 删除整机及其游戏关联
func (s *ProductAdminService) Delete(id uint) error {
	if _, err := s.load(id); err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		return persistenceError("delete pc", err)
	}
	invalidateCatalogCache()
	return nil
}

// ProductGameInput 性能关联输入
type ProductGameInput struct {
	GameID      uint
	Performance int
	FPSAvg      int
	Resolution  string
}

// SetGame 设置整机在某游戏下的性能数据
func (s *ProductAdminService) SetGame(productID uint, input ProductGameInput) (*models.ProductGame, error) {
	if _, err := s.load(productID); err != nil {
		return nil, err
	}
	game, err := s.gameRepo.GetByID(input.GameID)
	if err != nil {
		return nil, persistenceError("load game", err)
	}
	if game == nil {
		return nil, ErrGameNotFound
	}
	if input.Performance < 0 || input.Performance > 100 || input.FPSAvg < 0 {
		return nil, ErrValidation
	}
	resolution := strings.TrimSpace(input.Resolution)
	if resolution == "" {
		resolution = "1080p"
	}
	link := &models.ProductGame{
		ProductID:   productID,
		GameID:      game.ID,
		Performance: input.Performance,
		FPSAvg:      input.FPSAvg,
		Resolution:  resolution,
	}
	if err := s.gameRepo.UpsertProductGame(link); err != nil {
		return nil, persistenceError("upsert pc game", err)
	}
	link.Game = game
	return link, nil
}

// RemoveGame 移除性能关联
func (s *ProductAdminService) RemoveGame(productID, gameID uint) error {
	affected, err := s.gameRepo.DeleteProductGame(productID, gameID)
	if err != nil {
		return persistenceError("delete pc game", err)
	}
	if affected == 0 {
		return ErrGameNotFound
	}
	return nil
}

func (s *ProductAdminService) validate(input ProductInput) error {
	if strings.TrimSpace(input.Name) == "" || !input.Price.IsPositive() {
		return ErrValidation
	}
	if input.PriceOld != nil && input.PriceOld.IsNegative() {
		return ErrValidation
	}
	if input.CategoryID != nil && *input.CategoryID != 0 {
		category, err := s.categoryRepo.GetByID(*input.CategoryID)
		if err != nil {
			return persistenceError("load category", err)
		}
		if category == nil {
			return ErrCategoryNotFound
		}
	}
	return nil
}

func (s *ProductAdminService) uniqueSlug(name string, excludeID uint) (string, error) {
	slug := Slugify(name)
	if slug == "" {
		return "", ErrValidation
	}
	count, err := s.repo.CountBySlug(slug, excludeID)
	if err != nil {
		return "", persistenceError("count pc slug", err)
	}
	if count > 0 {
		return "", ErrSlugExists
	}
	return slug, nil
}

func (s *ProductAdminService) apply(p *models.Product, input ProductInput) {
	p.CategoryID = nil
	if input.CategoryID != nil && *input.CategoryID != 0 {
		id := *input.CategoryID
		p.CategoryID = &id
	}
	p.Category = nil
	p.Name = strings.TrimSpace(input.Name)
	p.Subtitle = strings.TrimSpace(input.Subtitle)
	p.Description = strings.TrimSpace(input.Description)
	p.Price = models.NewMoneyFromDecimal(input.Price)
	p.PriceOld = nil
	if input.PriceOld != nil && input.PriceOld.IsPositive() {
		old := models.NewMoneyFromDecimal(*input.PriceOld)
		p.PriceOld = &old
	}
	p.Processor = strings.TrimSpace(input.Processor)
	p.GPU = strings.TrimSpace(input.GPU)
	p.RAM = strings.TrimSpace(input.RAM)
	p.Storage = strings.TrimSpace(input.Storage)
	p.Motherboard = strings.TrimSpace(input.Motherboard)
	p.PSU = strings.TrimSpace(input.PSU)
	p.CaseModel = strings.TrimSpace(input.CaseModel)
	p.Cooling = strings.TrimSpace(input.Cooling)
	p.GraffitiArtist = strings.TrimSpace(input.GraffitiArtist)
	p.GraffitiStyle = strings.TrimSpace(input.GraffitiStyle)
	p.GraffitiDescription = strings.TrimSpace(input.GraffitiDescription)
	p.SetupPrice = models.NewMoneyFromDecimal(s.setupFee)
	if input.SetupPrice != nil && !input.SetupPrice.IsNegative() {
		p.SetupPrice = models.NewMoneyFromDecimal(*input.SetupPrice)
	}
	p.ImageMain = strings.TrimSpace(input.ImageMain)
	images := make(models.StringArray, 0, len(input.Images))
	for _, img := range input.Images {
		if img = strings.TrimSpace(img); img != "" {
			images = append(images, img)
		}
	}
	p.Images = images
	if p.ImageMain == "" && len(images) > 0 {
		p.ImageMain = images[0]
	}
	p.Featured = input.Featured
	p.Bestseller = input.Bestseller
	p.LimitedEdition = input.LimitedEdition
	p.PreOrder = input.PreOrder
	if input.InStock != nil {
		p.InStock = *input.InStock
	}
	if input.Active != nil {
		p.Active = *input.Active
	}
}
