package models

import "time"

// Cart 按会话划分的购物车
type Cart struct {
	ID         uint      `gorm:"primarykey" json:"id"`                                     // 主键
	SessionKey string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"session_key"` // 会话标识
	CustomerID *uint     `gorm:"index" json:"customer_id,omitempty"`                       // 登录顾客（可空）
	CreatedAt  time.Time `json:"created_at"`                                               // 创建时间
	UpdatedAt  time.Time `gorm:"index" json:"updated_at"`                                  // 最近活动时间

	Items []CartItem `gorm:"foreignKey:CartID" json:"items,omitempty"` // 购物车行
}

// TableName 指定表名
func (Cart) TableName() string {
	return "carts"
}

// CartItem 购物车行，价格为加入时的快照
type CartItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                       // 主键
	CartID    uint      `gorm:"not null;uniqueIndex:idx_cart_pc" json:"cart_id"`            // 购物车ID
	ProductID uint      `gorm:"column:pc_id;not null;uniqueIndex:idx_cart_pc" json:"pc_id"` // 整机ID
	Name      string    `gorm:"type:varchar(200);not null" json:"name"`                     // 名称快照
	UnitPrice Money     `gorm:"type:decimal(12,2);not null" json:"price"`                   // 单价快照
	Image     string    `gorm:"type:varchar(500)" json:"image"`                             // 主图快照
	Quantity  int       `gorm:"not null;default:1" json:"quantity"`                         // 数量
	CreatedAt time.Time `json:"created_at"`                                                 // 创建时间
	UpdatedAt time.Time `json:"updated_at"`                                                 // 更新时间
}

// TableName 指定表名
func (CartItem) TableName() string {
	return "cart_items"
}
