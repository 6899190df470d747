package service

import (
	"context"
	"strings"
	"time"

	"github.com/pixelcraft-pc/storefront/internal/cache"
	"github.com/pixelcraft-pc/storefront/internal/constants"
	"github.com/pixelcraft-pc/storefront/internal/logger"
	"github.com/pixelcraft-pc/storefront/internal/models"
	"github.com/pixelcraft-pc/storefront/internal/repository"

	"github.com/shopspring/decimal"
)

// CatalogLimits 前台列表数量上限
type CatalogLimits struct {
	Featured    int
	Related     int
	Reviews     int
	Search      int
	CategoryTTL time.Duration
	FeaturedTTL time.Duration
}

// CatalogService 前台目录读取
type CatalogService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	gameRepo     repository.GameRepository
	reviewRepo   repository.ReviewRepository
	limits       CatalogLimits
}

// NewCatalogService 创建目录服务
func NewCatalogService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository, gameRepo repository.GameRepository, reviewRepo repository.ReviewRepository, limits CatalogLimits) *CatalogService {
	return &CatalogService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		gameRepo:     gameRepo,
		reviewRepo:   reviewRepo,
		limits:       limits,
	}
}

// CatalogQuery 原始查询参数
type CatalogQuery struct {
	Category string
	Sort     string
	PriceMin string
	PriceMax string
}

// BuildCatalogFilter 将查询参数转为过滤条件；无法解析的价格不产生过滤，未知排序按最新
func BuildCatalogFilter(q CatalogQuery) repository.CatalogFilter {
	filter := repository.CatalogFilter{
		CategorySlug: strings.TrimSpace(q.Category),
		PriceMin:     parseOptionalPrice(q.PriceMin),
		PriceMax:     parseOptionalPrice(q.PriceMax),
		Sort:         normalizeSort(q.Sort),
	}
	return filter
}

func parseOptionalPrice(raw string) *decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil || d.IsNegative() {
		return nil
	}
	return &d
}

func normalizeSort(raw string) string {
	switch strings.TrimSpace(raw) {
	case constants.SortPriceLow, constants.SortPriceHigh, constants.SortPopular:
		return strings.TrimSpace(raw)
	default:
		return constants.SortNewest
	}
}

// CatalogPage 目录页数据
type CatalogPage struct {
	Products   []models.Product  `json:"pcs"`
	Categories []models.Category `json:"categories"`
	Filter     CatalogFilterView `json:"filter"`
}

// CatalogFilterView 回显的过滤条件
type CatalogFilterView struct {
	Category string `json:"category"`
	Sort     string `json:"sort"`
	PriceMin string `json:"price_min,omitempty"`
	PriceMax string `json:"price_max,omitempty"`
}

// ListCatalog 目录查询
func (s *CatalogService) ListCatalog(ctx context.Context, q CatalogQuery) (*CatalogPage, error) {
	filter := BuildCatalogFilter(q)
	products, err := s.productRepo.ListCatalog(filter)
	if err != nil {
		return nil, persistenceError("list catalog", err)
	}
	categories, err := s.Categories(ctx)
	if err != nil {
		return nil, err
	}
	view := CatalogFilterView{Category: filter.CategorySlug, Sort: filter.Sort}
	if filter.PriceMin != nil {
		view.PriceMin = filter.PriceMin.StringFixed(2)
	}
	if filter.PriceMax != nil {
		view.PriceMax = filter.PriceMax.StringFixed(2)
	}
	return &CatalogPage{Products: products, Categories: categories, Filter: view}, nil
}

// Categories 上架分类，启用 Redis 时短期缓存
func (s *CatalogService) Categories(ctx context.Context) ([]models.Category, error) {
	var cached []models.Category
	if hit, err := cache.GetCategories(ctx, &cached); err == nil && hit {
		return cached, nil
	}
	categories, err := s.categoryRepo.List(true)
	if err != nil {
		return nil, persistenceError("list categories", err)
	}
	if err := cache.SetCategories(ctx, categories, s.limits.CategoryTTL); err != nil {
		logger.Warnw("category_cache_write_failed", "error", err)
	}
	return categories, nil
}

// HomePage 首页数据
type HomePage struct {
	Featured   []models.Product  `json:"featured"`
	Categories []models.Category `json:"categories"`
}

// Home 首页推荐与分类
func (s *CatalogService) Home(ctx context.Context) (*HomePage, error) {
	var featured []models.Product
	hit, err := cache.GetFeatured(ctx, &featured)
	if err != nil || !hit {
		featured, err = s.productRepo.ListFeatured(s.limits.Featured)
		if err != nil {
			return nil, persistenceError("list featured", err)
		}
		if err := cache.SetFeatured(ctx, featured, s.limits.FeaturedTTL); err != nil {
			logger.Warnw("featured_cache_write_failed", "error", err)
		}
	}
	categories, err := s.Categories(ctx)
	if err != nil {
		return nil, err
	}
	return &HomePage{Featured: featured, Categories: categories}, nil
}

// ProductDetail 详情页数据
type ProductDetail struct {
	Product *models.Product      `json:"pc"`
	Games   []models.ProductGame `json:"games"`
	Reviews []models.Review      `json:"reviews"`
	Related []models.Product     `json:"related"`
}

// Detail 按 slug 读取上架商品，浏览次数原子加一
func (s *CatalogService) Detail(slug string) (*ProductDetail, error) {
	product, err := s.productRepo.GetBySlug(strings.TrimSpace(slug), true)
	if err != nil {
		return nil, persistenceError("load pc", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if err := s.productRepo.IncrementViews(product.ID); err != nil {
		logger.Warnw("pc_view_increment_failed", "pc_id", product.ID, "error", err)
	} else {
		product.Views++
	}

	games, err := s.gameRepo.ListByProduct(product.ID)
	if err != nil {
		return nil, persistenceError("list pc games", err)
	}
	reviews, err := s.reviewRepo.ListApprovedByProduct(product.ID, s.limits.Reviews)
	if err != nil {
		return nil, persistenceError("list reviews", err)
	}
	related := []models.Product{}
	if product.CategoryID != nil {
		related, err = s.productRepo.ListRelated(*product.CategoryID, product.ID, s.limits.Related)
		if err != nil {
			return nil, persistenceError("list related", err)
		}
	}
	return &ProductDetail{Product: product, Games: games, Reviews: reviews, Related: related}, nil
}

// SearchResult 搜索结果条目
type SearchResult struct {
	ID        uint         `json:"id"`
	Name      string       `json:"name"`
	Slug      string       `json:"slug"`
	Price     models.Money `json:"price"`
	ImageMain string       `json:"image_main"`
}

// Search 快速搜索，空关键字返回空数组
func (s *CatalogService) Search(term string) ([]SearchResult, error) {
	products, err := s.productRepo.Search(term, s.limits.Search)
	if err != nil {
		return nil, persistenceError("search pcs", err)
	}
	results := make([]SearchResult, 0, len(products))
	for _, p := range products {
		results = append(results, SearchResult{
			ID:        p.ID,
			Name:      p.Name,
			Slug:      p.Slug,
			Price:     p.Price,
			ImageMain: p.ImageMain,
		})
	}
	return results, nil
}
