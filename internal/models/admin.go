package models

import "time"

// Admin 后台用户
type Admin struct {
	ID           uint       `gorm:"primarykey" json:"id"`                                        // 主键
	Username     string     `gorm:"type:varchar(80);uniqueIndex;not null" json:"username"`       // 账号
	Email        string     `gorm:"type:varchar(255)" json:"email"`                              // 邮箱
	PasswordHash string     `gorm:"not null" json:"-"`                                           // 密码哈希
	Role         string     `gorm:"type:varchar(20);not null;default:'admin';index" json:"role"` // 角色（admin/editor/support）
	Active       bool       `gorm:"default:true" json:"active"`                                  // 是否启用
	TokenVersion uint64     `gorm:"not null;default:0" json:"-"`                                 // Token 版本（登出时递增）
	LastLoginAt  *time.Time `json:"last_login_at"`                                               // 最后登录时间
	CreatedAt    time.Time  `gorm:"index" json:"created_at"`                                     // 创建时间
}

// TableName 指定表名
func (Admin) TableName() string {
	return "admins"
}
