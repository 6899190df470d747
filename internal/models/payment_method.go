package models

import "time"

// PaymentMethod 可选支付方式（支付流程为模拟，仅用于下单校验与展示）
type PaymentMethod struct {
	ID          uint      `gorm:"primarykey" json:"id"`                              // 主键
	Code        string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"code"` // 编码（pix/card/boleto）
	Name        string    `gorm:"type:varchar(80);not null" json:"name"`             // 展示名称
	Description string    `gorm:"type:varchar(255)" json:"description"`              // 说明
	Active      bool      `gorm:"default:true;index" json:"active"`                  // 是否可用
	SortOrder   int       `gorm:"default:0" json:"sort_order"`                       // 排序
	CreatedAt   time.Time `json:"created_at"`                                        // 创建时间
}

// TableName 指定表名
func (PaymentMethod) TableName() string {
	return "payment_methods"
}
