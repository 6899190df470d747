package repository

import (
	"errors"

	"github.com/pixelcraft-pc/storefront/internal/constants"
	"github.com/pixelcraft-pc/storefront/internal/models"

	"gorm.io/gorm"
)

// ReviewRepository 评价数据访问接口
type ReviewRepository interface {
	ListApprovedByProduct(productID uint, limit int) ([]models.Review, error)
	List(filter ReviewListFilter) ([]models.Review, int64, error)
	GetByID(id uint) (*models.Review, error)
	Create(review *models.Review) error
	UpdateStatus(id uint, status string) (int64, error)
}

// GormReviewRepository GORM 实现
type GormReviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository 创建评价仓库
func NewReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// ListApprovedByProduct 详情页展示的已审核评价
func (r *GormReviewRepository) ListApprovedByProduct(productID uint, limit int) ([]models.Review, error) {
	var reviews []models.Review
	query := r.db.Preload("Customer").
		Where("pc_id = ? AND status = ?", productID, constants.ReviewStatusApproved).
		Order("created_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

// List 后台审核列表
func (r *GormReviewRepository) List(filter ReviewListFilter) ([]models.Review, int64, error) {
	query := r.db.Model(&models.Review{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.ProductID != 0 {
		query = query.Where("pc_id = ?", filter.ProductID)
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var reviews []models.Review
	query = applyPagination(query.Preload("Customer").Preload("Product"), filter.Page, filter.PageSize)
	if err := query.Order("created_at DESC, id DESC").Find(&reviews).Error; err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

// GetByID 根据 ID 获取
func (r *GormReviewRepository) GetByID(id uint) (*models.Review, error) {
	var review models.Review
	if err := r.db.First(&review, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &review, nil
}

// Create 创建
func (r *GormReviewRepository) Create(review *models.Review) error {
	return r.db.Create(review).Error
}

// UpdateStatus 更新审核状态
func (r *GormReviewRepository) UpdateStatus(id uint, status string) (int64, error) {
	result := r.db.Model(&models.Review{}).Where("id = ?", id).Update("status", status)
	return result.RowsAffected, result.Error
}
