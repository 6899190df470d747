package repository

import (
	"errors"
	"time"

	"github.com/pixelcraft-pc/storefront/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartRepository 会话购物车数据访问接口
type CartRepository interface {
	GetBySession(sessionKey string) (*models.Cart, error)
	Ensure(sessionKey string, customerID *uint) (*models.Cart, error)
	ListItems(cartID uint) ([]models.CartItem, error)
	CountItems(cartID uint) (int64, error)
	AddOrIncrement(item *models.CartItem) error
	SetQuantity(cartID, productID uint, quantity int) (int64, error)
	DeleteItem(cartID, productID uint) (int64, error)
	ClearItems(cartID uint) error
	PurgeStaleGuestCarts(before time.Time) (int64, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) CartRepository
}

// GormCartRepository GORM 实现
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCartRepository) WithTx(tx *gorm.DB) CartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// Transaction 执行事务
func (r *GormCartRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// GetBySession 获取会话购物车，不存在时返回 nil
func (r *GormCartRepository) GetBySession(sessionKey string) (*models.Cart, error) {
	var cart models.Cart
	if err := r.db.Where("session_key = ?", sessionKey).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

// Ensure 获取或创建会话购物车，并发创建时以唯一索引兜底
func (r *GormCartRepository) Ensure(sessionKey string, customerID *uint) (*models.Cart, error) {
	cart := models.Cart{SessionKey: sessionKey, CustomerID: customerID}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_key"}},
		DoNothing: true,
	}).Create(&cart).Error
	if err != nil {
		return nil, err
	}
	existing, err := r.GetBySession(sessionKey)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, gorm.ErrRecordNotFound
	}
	if customerID != nil && (existing.CustomerID == nil || *existing.CustomerID != *customerID) {
		if err := r.db.Model(existing).Update("customer_id", *customerID).Error; err != nil {
			return nil, err
		}
		existing.CustomerID = customerID
	}
	return existing, nil
}

// ListItems 购物车行，按加入顺序
func (r *GormCartRepository) ListItems(cartID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.db.Where("cart_id = ?", cartID).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// CountItems 行数（不同商品数）
func (r *GormCartRepository) CountItems(cartID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.CartItem{}).Where("cart_id = ?", cartID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// AddOrIncrement 新商品插入数量 1，已存在则在数据库内原子加一，保留首次加入的价格快照
func (r *GormCartRepository) AddOrIncrement(item *models.CartItem) error {
	if item == nil {
		return nil
	}
	if item.Quantity <= 0 {
		item.Quantity = 1
	}
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "cart_id"}, {Name: "pc_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity":   gorm.Expr("cart_items.quantity + ?", 1),
			"updated_at": time.Now(),
		}),
	}).Create(item).Error
}

// SetQuantity 设置数量
func (r *GormCartRepository) SetQuantity(cartID, productID uint, quantity int) (int64, error) {
	result := r.db.Model(&models.CartItem{}).
		Where("cart_id = ? AND pc_id = ?", cartID, productID).
		Updates(map[string]interface{}{"quantity": quantity, "updated_at": time.Now()})
	return result.RowsAffected, result.Error
}

// DeleteItem 删除单行
func (r *GormCartRepository) DeleteItem(cartID, productID uint) (int64, error) {
	result := r.db.Where("cart_id = ? AND pc_id = ?", cartID, productID).Delete(&models.CartItem{})
	return result.RowsAffected, result.Error
}

// ClearItems 清空购物车
func (r *GormCartRepository) ClearItems(cartID uint) error {
	return r.db.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error
}

// PurgeStaleGuestCarts 删除 before 之前无活动的游客购物车及其行，返回删除的购物车数
func (r *GormCartRepository) PurgeStaleGuestCarts(before time.Time) (int64, error) {
	var purged int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		stale := tx.Model(&models.Cart{}).Select("carts.id").
			Where("carts.customer_id IS NULL AND carts.updated_at < ?", before).
			Where("NOT EXISTS (SELECT 1 FROM cart_items WHERE cart_items.cart_id = carts.id AND cart_items.updated_at >= ?)", before)
		var ids []uint
		if err := stale.Pluck("carts.id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		if err := tx.Where("cart_id IN ?", ids).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		result := tx.Where("id IN ?", ids).Delete(&models.Cart{})
		purged = result.RowsAffected
		return result.Error
	})
	return purged, err
}
