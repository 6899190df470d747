package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// Order 订单，商品明细以 JSON 快照保存
type Order struct {
	ID                   uint       `gorm:"primarykey" json:"id"`                                                    // 主键
	OrderNumber          string     `gorm:"type:varchar(32);uniqueIndex;not null" json:"order_number"`               // 订单号
	CustomerID           *uint      `gorm:"index" json:"customer_id,omitempty"`                                      // 顾客ID（游客为空）
	CustomerName         string     `gorm:"type:varchar(160);not null" json:"customer_name"`                         // 收货人
	CustomerEmail        string     `gorm:"type:varchar(255);not null;index" json:"customer_email"`                  // 联系邮箱
	CustomerPhone        string     `gorm:"type:varchar(40)" json:"customer_phone"`                                  // 联系电话
	CustomerCPF          string     `gorm:"column:customer_cpf;type:varchar(20)" json:"customer_cpf"`                // CPF
	ShippingCEP          string     `gorm:"column:shipping_cep;type:varchar(10);not null" json:"shipping_cep"`       // 邮编
	ShippingStreet       string     `gorm:"type:varchar(255);not null" json:"shipping_street"`                       // 街道
	ShippingNumber       string     `gorm:"type:varchar(20)" json:"shipping_number"`                                 // 门牌号
	ShippingComplement   string     `gorm:"type:varchar(120)" json:"shipping_complement"`                            // 补充地址
	ShippingNeighborhood string     `gorm:"type:varchar(120)" json:"shipping_neighborhood"`                          // 街区
	ShippingCity         string     `gorm:"type:varchar(120);not null" json:"shipping_city"`                         // 城市
	ShippingState        string     `gorm:"type:varchar(2);not null" json:"shipping_state"`                          // 州（UF）
	Items                OrderLines `gorm:"column:items_json;type:text;not null" json:"items"`                       // 商品快照
	Subtotal             Money      `gorm:"type:decimal(12,2);not null;default:0" json:"subtotal"`                   // 商品小计
	SetupFee             Money      `gorm:"type:decimal(12,2);not null;default:0" json:"setup_fee"`                  // 装机服务费
	Shipping             Money      `gorm:"type:decimal(12,2);not null;default:0" json:"shipping"`                   // 运费
	Discount             Money      `gorm:"type:decimal(12,2);not null;default:0" json:"discount"`                   // 优惠金额
	Total                Money      `gorm:"type:decimal(12,2);not null;default:0" json:"total"`                      // 应付金额
	PaymentMethod        string     `gorm:"type:varchar(20);not null" json:"payment_method"`                         // 支付方式
	PaymentStatus        string     `gorm:"type:varchar(20);not null;default:'pending';index" json:"payment_status"` // 支付状态
	OrderStatus          string     `gorm:"type:varchar(20);not null;default:'pending';index" json:"order_status"`   // 履约状态
	SetupService         bool       `gorm:"default:false" json:"setup_service"`                                      // 是否需要装机服务
	TrackingCode         string     `gorm:"type:varchar(60)" json:"tracking_code"`                                   // 物流单号
	Notes                string     `gorm:"type:text" json:"notes"`                                                  // 备注
	PaidAt               *time.Time `json:"paid_at,omitempty"`                                                       // 支付确认时间
	ShippedAt            *time.Time `json:"shipped_at,omitempty"`                                                    // 发货时间
	CreatedAt            time.Time  `gorm:"index" json:"created_at"`                                                 // 创建时间
	UpdatedAt            time.Time  `json:"updated_at"`                                                              // 更新时间

	Customer *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"` // 顾客
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}

// OrderLine 下单时的商品快照
type OrderLine struct {
	ProductID uint   `json:"pc_id"`
	Name      string `json:"name"`
	UnitPrice Money  `json:"price"`
	Quantity  int    `json:"quantity"`
	Image     string `json:"image,omitempty"`
	LineTotal Money  `json:"line_total"`
}

// OrderLines 订单商品快照集合
type OrderLines []OrderLine

// Value 实现 driver.Valuer 接口
func (l OrderLines) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	raw, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

// Scan 实现 sql.Scanner 接口
func (l *OrderLines) Scan(value interface{}) error {
	raw, err := jsonBytes(value)
	if err != nil || raw == nil {
		*l = OrderLines{}
		return err
	}
	return json.Unmarshal(raw, l)
}
