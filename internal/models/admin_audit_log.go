package models

import "time"

// AdminAuditLog 后台写操作审计日志
type AdminAuditLog struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                         // 主键
	AdminID   uint      `gorm:"index;not null" json:"admin_id"`                               // 操作管理员
	Role      string    `gorm:"type:varchar(20);index;not null;default:''" json:"role"`       // 操作时角色
	Method    string    `gorm:"type:varchar(10);index;not null" json:"method"`                // 请求方法
	Object    string    `gorm:"type:varchar(255);index;not null" json:"object"`               // 路由模板
	Path      string    `gorm:"type:varchar(255);not null" json:"path"`                       // 实际路径
	TargetID  string    `gorm:"type:varchar(64);not null;default:''" json:"target_id"`        // 资源ID
	Status    int       `gorm:"not null;default:0" json:"status"`                             // 响应状态码
	RequestID string    `gorm:"type:varchar(64);index;not null;default:''" json:"request_id"` // 请求ID
	CreatedAt time.Time `gorm:"index" json:"created_at"`                                      // 记录时间
}

// TableName 指定表名
func (AdminAuditLog) TableName() string {
	return "admin_audit_logs"
}
