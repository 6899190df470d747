package models

import "time"

// Customer 顾客账号
type Customer struct {
	ID           uint       `gorm:"primarykey" json:"id"`                                // 主键
	Email        string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"` // 邮箱（登录名）
	PasswordHash string     `gorm:"not null" json:"-"`                                   // 密码哈希
	Name         string     `gorm:"type:varchar(160);not null" json:"name"`              // 姓名
	Phone        string     `gorm:"type:varchar(40)" json:"phone"`                       // 电话
	CPF          string     `gorm:"column:cpf;type:varchar(20)" json:"cpf"`              // CPF
	CEP          string     `gorm:"column:cep;type:varchar(10)" json:"cep"`              // 邮编
	Address      string     `gorm:"type:varchar(255)" json:"address"`                    // 街道
	Number       string     `gorm:"type:varchar(20)" json:"number"`                      // 门牌号
	Complement   string     `gorm:"type:varchar(120)" json:"complement"`                 // 补充地址
	Neighborhood string     `gorm:"type:varchar(120)" json:"neighborhood"`               // 街区
	City         string     `gorm:"type:varchar(120)" json:"city"`                       // 城市
	State        string     `gorm:"type:varchar(2)" json:"state"`                        // 州（UF）
	Newsletter   bool       `gorm:"default:false" json:"newsletter"`                     // 订阅资讯
	TokenVersion uint64     `gorm:"not null;default:0" json:"-"`                         // Token 版本（登出时递增）
	LastLoginAt  *time.Time `json:"last_login_at"`                                       // 最后登录时间
	CreatedAt    time.Time  `gorm:"index" json:"created_at"`                             // 创建时间
	UpdatedAt    time.Time  `json:"updated_at"`                                          // 更新时间
}

// TableName 指定表名
func (Customer) TableName() string {
	return "customers"
}
