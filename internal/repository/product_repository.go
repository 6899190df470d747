package repository

import (
	"errors"
	"strings"

	"github.com/pixelcraft-pc/storefront/internal/constants"
	"github.com/pixelcraft-pc/storefront/internal/models"

	"gorm.io/gorm"
)

// ProductRepository 整机数据访问接口
type ProductRepository interface {
	ListCatalog(filter CatalogFilter) ([]models.Product, error)
	ListFeatured(limit int) ([]models.Product, error)
	ListRelated(categoryID uint, excludeID uint, limit int) ([]models.Product, error)
	Search(term string, limit int) ([]models.Product, error)
	List(filter ProductListFilter) ([]models.Product, int64, error)
	GetBySlug(slug string, onlyActive bool) (*models.Product, error)
	GetByID(id uint) (*models.Product, error)
	GetActiveByID(id uint) (*models.Product, error)
	IncrementViews(id uint) error
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id uint) error
	CountBySlug(slug string, excludeID uint) (int64, error)
	CountActive() (int64, error)
	CountByCategory(categoryID uint) (int64, error)
	WithTx(tx *gorm.DB) ProductRepository
}

// GormProductRepository GORM 实现
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建整机仓库
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// WithTx 绑定事务
func (r *GormProductRepository) WithTx(tx *gorm.DB) ProductRepository {
	if tx == nil {
		return r
	}
	return &GormProductRepository{db: tx}
}

// ListCatalog 按过滤条件组合目录查询，仅返回上架商品，不分页
func (r *GormProductRepository) ListCatalog(filter CatalogFilter) ([]models.Product, error) {
	query := r.db.Model(&models.Product{}).
		Preload("Category").
		Where("pcs.active = ?", true)

	if slug := strings.TrimSpace(filter.CategorySlug); slug != "" {
		query = query.Joins("JOIN categories ON categories.id = pcs.category_id").
			Where("categories.slug = ?", slug)
	}
	if filter.PriceMin != nil {
		query = query.Where("pcs.price >= ?", filter.PriceMin.String())
	}
	if filter.PriceMax != nil {
		query = query.Where("pcs.price <= ?", filter.PriceMax.String())
	}

	var products []models.Product
	if err := query.Order(catalogOrder(filter.Sort)).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// catalogOrder 将排序键映射为固定的 ORDER BY 子句，未知键按最新排序
func catalogOrder(sort string) string {
	switch strings.TrimSpace(sort) {
	case constants.SortPriceLow:
		return "pcs.price ASC, pcs.id ASC"
	case constants.SortPriceHigh:
		return "pcs.price DESC, pcs.id DESC"
	case constants.SortPopular:
		return "pcs.views DESC, pcs.id DESC"
	default:
		return "pcs.created_at DESC, pcs.id DESC"
	}
}

// ListFeatured 首页推荐
func (r *GormProductRepository) ListFeatured(limit int) ([]models.Product, error) {
	var products []models.Product
	query := r.db.Preload("Category").
		Where("active = ? AND featured = ?", true, true).
		Order("created_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// ListRelated 同分类随机推荐，排除当前商品
func (r *GormProductRepository) ListRelated(categoryID uint, excludeID uint, limit int) ([]models.Product, error) {
	if categoryID == 0 || limit <= 0 {
		return []models.Product{}, nil
	}
	var products []models.Product
	err := r.db.Where("category_id = ? AND id <> ? AND active = ?", categoryID, excludeID, true).
		Order(randomOrder).
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// Search 前台搜索，匹配名称、副标题与核心配置
func (r *GormProductRepository) Search(term string, limit int) ([]models.Product, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []models.Product{}, nil
	}
	condition, args := buildLikeCondition(r.db, []string{"name", "subtitle", "processor", "gpu"}, term)
	query := r.db.Where("active = ?", true).
		Where(condition, args...).
		Order("views DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// List 后台列表（含未上架）
func (r *GormProductRepository) List(filter ProductListFilter) ([]models.Product, int64, error) {
	query := r.db.Model(&models.Product{})
	if filter.CategoryID != 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.Active != nil {
		query = query.Where("active = ?", *filter.Active)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		condition, args := buildLikeCondition(r.db, []string{"name", "slug"}, search)
		query = query.Where(condition, args...)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var products []models.Product
	query = applyPagination(query.Preload("Category"), filter.Page, filter.PageSize)
	if err := query.Order("created_at DESC, id DESC").Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// GetBySlug 根据 slug 获取
func (r *GormProductRepository) GetBySlug(slug string, onlyActive bool) (*models.Product, error) {
	query := r.db.Preload("Category").Where("slug = ?", slug)
	if onlyActive {
		query = query.Where("active = ?", true)
	}
	var product models.Product
	if err := query.First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// GetByID 根据 ID 获取
func (r *GormProductRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.Preload("Category").First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// GetActiveByID 获取上架商品，未上架视为不存在
func (r *GormProductRepository) GetActiveByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.Where("id = ? AND active = ?", id, true).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// IncrementViews 原子递增浏览次数
func (r *GormProductRepository) IncrementViews(id uint) error {
	return r.db.Model(&models.Product{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1)).Error
}

// Create 创建
func (r *GormProductRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

// Update 保存全部字段
func (r *GormProductRepository) Update(product *models.Product) error {
	return r.db.Omit("Category").Save(product).Error
}

// Delete 删除商品及其游戏关联
func (r *GormProductRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("pc_id = ?", id).Delete(&models.ProductGame{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Product{}, id).Error
	})
}

// CountBySlug 统计 slug 占用
func (r *GormProductRepository) CountBySlug(slug string, excludeID uint) (int64, error) {
	var count int64
	query := r.db.Model(&models.Product{}).Where("slug = ?", slug)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountActive 上架商品数
func (r *GormProductRepository) CountActive() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Product{}).Where("active = ?", true).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByCategory 分类下商品数
func (r *GormProductRepository) CountByCategory(categoryID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Product{}).Where("category_id = ?", categoryID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
