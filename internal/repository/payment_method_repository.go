package repository

import (
	"errors"

	"github.com/pixelcraft-pc/storefront/internal/models"

	"gorm.io/gorm"
)

// PaymentMethodRepository 支付方式数据访问接口
type PaymentMethodRepository interface {
	List(onlyActive bool) ([]models.PaymentMethod, error)
	GetActiveByCode(code string) (*models.PaymentMethod, error)
	SetActive(id uint, active bool) (int64, error)
}

// GormPaymentMethodRepository GORM 实现
type GormPaymentMethodRepository struct {
	db *gorm.DB
}

// NewPaymentMethodRepository 创建支付方式仓库
func NewPaymentMethodRepository(db *gorm.DB) *GormPaymentMethodRepository {
	return &GormPaymentMethodRepository{db: db}
}

// List 按排序列出
func (r *GormPaymentMethodRepository) List(onlyActive bool) ([]models.PaymentMethod, error) {
	var methods []models.PaymentMethod
	query := r.db.Model(&models.PaymentMethod{})
	if onlyActive {
		query = query.Where("active = ?", true)
	}
	if err := query.Order("sort_order ASC, id ASC").Find(&methods).Error; err != nil {
		return nil, err
	}
	return methods, nil
}

// GetActiveByCode 获取可用支付方式
func (r *GormPaymentMethodRepository) GetActiveByCode(code string) (*models.PaymentMethod, error) {
	var method models.PaymentMethod
	if err := r.db.Where("code = ? AND active = ?", code, true).First(&method).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &method, nil
}

// SetActive 启用或停用
func (r *GormPaymentMethodRepository) SetActive(id uint, active bool) (int64, error) {
	result := r.db.Model(&models.PaymentMethod{}).Where("id = ?", id).Update("active", active)
	return result.RowsAffected, result.Error
}
