package models

import "time"

// Review 商品评价，审核通过后才在详情页展示
type Review struct {
	ID         uint      `gorm:"primarykey" json:"id"`                                            // 主键
	ProductID  uint      `gorm:"column:pc_id;not null;index" json:"pc_id"`                        // 整机ID
	CustomerID uint      `gorm:"not null;index" json:"customer_id"`                               // 顾客ID
	OrderID    *uint     `gorm:"index" json:"order_id,omitempty"`                                 // 关联订单
	Rating     int       `gorm:"not null" json:"rating"`                                          // 评分 1-5
	Title      string    `gorm:"type:varchar(160)" json:"title"`                                  // 标题
	Comment    string    `gorm:"type:text" json:"comment"`                                        // 内容
	Status     string    `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"` // 审核状态
	CreatedAt  time.Time `gorm:"index" json:"created_at"`                                         // 创建时间

	Customer *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"` // 评价人
	Product  *Product  `gorm:"foreignKey:ProductID" json:"pc,omitempty"`        // 整机
}

// TableName 指定表名
func (Review) TableName() string {
	return "reviews"
}
