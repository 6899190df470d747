package service

import (
	"context"
	"strings"

	"github.com/pixelcraft-pc/storefront/internal/cache"
	"github.com/pixelcraft-pc/storefront/internal/models"
	"github.com/pixelcraft-pc/storefront/internal/repository"
)

// CategoryService 分类业务服务
type CategoryService struct {
	repo        repository.CategoryRepository
	productRepo repository.ProductRepository
}

// NewCategoryService 创建分类服务
func NewCategoryService(repo repository.CategoryRepository, productRepo repository.ProductRepository) *CategoryService {
	return &CategoryService{repo: repo, productRepo: productRepo}
}

// CategoryInput 创建/更新分类输入
type CategoryInput struct {
	Name        string
	Slug        string
	Description string
	Color       string
	Icon        string
	SortOrder   int
	Active      *bool
}

// List 获取分类列表（含停用）
func (s *CategoryService) List() ([]models.Category, error) {
	categories, err := s.repo.List(false)
	if err != nil {
		return nil, persistenceError("list categories", err)
	}
	return categories, nil
}

// Create 创建分类
func (s *CategoryService) Create(input CategoryInput) (*models.Category, error) {
	slug, err := s.resolveSlug(input, 0)
	if err != nil {
		return nil, err
	}
	category := models.Category{
		Name:        strings.TrimSpace(input.Name),
		Slug:        slug,
		Description: strings.TrimSpace(input.Description),
		Color:       strings.TrimSpace(input.Color),
		Icon:        strings.TrimSpace(input.Icon),
		SortOrder:   input.SortOrder,
		Active:      input.Active == nil || *input.Active,
	}
	if err := s.repo.Create(&category); err != nil {
		return nil, persistenceError("create category", err)
	}
	if !category.Active {
		if err := s.repo.Update(&category); err != nil {
			return nil, persistenceError("create category", err)
		}
	}
	invalidateCatalogCache()
	return &category, nil
}

// Update 更新分类
func (s *CategoryService) Update(id uint, input CategoryInput) (*models.Category, error) {
	category, err := s.repo.GetByID(id)
	if err != nil {
		return nil, persistenceError("load category", err)
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	slug, err := s.resolveSlug(input, id)
	if err != nil {
		return nil, err
	}
	category.Name = strings.TrimSpace(input.Name)
	category.Slug = slug
	category.Description = strings.TrimSpace(input.Description)
	category.Color = strings.TrimSpace(input.Color)
	category.Icon = strings.TrimSpace(input.Icon)
	category.SortOrder = input.SortOrder
	if input.Active != nil {
		category.Active = *input.Active
	}
	if err := s.repo.Update(category); err != nil {
		return nil, persistenceError("update category", err)
	}
	invalidateCatalogCache()
	return category, nil
}

// Delete 删除分类，仍有商品引用时拒绝
func (s *CategoryService) Delete(id uint) error {
	category, err := s.repo.GetByID(id)
	if err != nil {
		return persistenceError("load category", err)
	}
	if category == nil {
		return ErrCategoryNotFound
	}
	count, err := s.productRepo.CountByCategory(id)
	if err != nil {
		return persistenceError("count category pcs", err)
	}
	if count > 0 {
		return ErrCategoryInUse
	}
	if err := s.repo.Delete(id); err != nil {
		return persistenceError("delete category", err)
	}
	invalidateCatalogCache()
	return nil
}

func (s *CategoryService) resolveSlug(input CategoryInput, excludeID uint) (string, error) {
	if strings.TrimSpace(input.Name) == "" {
		return "", ErrValidation
	}
	slug := Slugify(input.Slug)
	if slug == "" {
		slug = Slugify(input.Name)
	}
	if slug == "" {
		return "", ErrValidation
	}
	count, err := s.repo.CountBySlug(slug, excludeID)
	if err != nil {
		return "", persistenceError("count category slug", err)
	}
	if count > 0 {
		return "", ErrSlugExists
	}
	return slug, nil
}

func invalidateCatalogCache() {
	_ = cache.InvalidateCatalog(context.Background())
}
