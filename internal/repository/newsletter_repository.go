package repository

import (
	"errors"
	"strings"

	"github.com/pixelcraft-pc/storefront/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NewsletterRepository 资讯订阅数据访问接口
type NewsletterRepository interface {
	GetByEmail(email string) (*models.NewsletterSubscriber, error)
	Subscribe(subscriber *models.NewsletterSubscriber) (bool, error)
	List(filter SubscriberListFilter) ([]models.NewsletterSubscriber, int64, error)
	WithTx(tx *gorm.DB) NewsletterRepository
}

// GormNewsletterRepository GORM 实现
type GormNewsletterRepository struct {
	db *gorm.DB
}

// NewNewsletterRepository 创建订阅仓库
func NewNewsletterRepository(db *gorm.DB) *GormNewsletterRepository {
	return &GormNewsletterRepository{db: db}
}

// WithTx 绑定事务
func (r *GormNewsletterRepository) WithTx(tx *gorm.DB) NewsletterRepository {
	if tx == nil {
		return r
	}
	return &GormNewsletterRepository{db: tx}
}

// GetByEmail 根据邮箱获取
func (r *GormNewsletterRepository) GetByEmail(email string) (*models.NewsletterSubscriber, error) {
	var subscriber models.NewsletterSubscriber
	if err := r.db.Where("email = ?", email).First(&subscriber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &subscriber, nil
}

// Subscribe 幂等写入，返回是否为新订阅
func (r *GormNewsletterRepository) Subscribe(subscriber *models.NewsletterSubscriber) (bool, error) {
	result := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoNothing: true,
	}).Create(subscriber)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// List 后台订阅列表
func (r *GormNewsletterRepository) List(filter SubscriberListFilter) ([]models.NewsletterSubscriber, int64, error) {
	query := r.db.Model(&models.NewsletterSubscriber{})
	if search := strings.TrimSpace(filter.Search); search != "" {
		condition, args := buildLikeCondition(r.db, []string{"email"}, search)
		query = query.Where(condition, args...)
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var subscribers []models.NewsletterSubscriber
	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := query.Order("created_at DESC, id DESC").Find(&subscribers).Error; err != nil {
		return nil, 0, err
	}
	return subscribers, total, nil
}
