package models

import "time"

// NewsletterSubscriber 资讯订阅
type NewsletterSubscriber struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                // 主键
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"` // 邮箱
	Source    string    `gorm:"type:varchar(40)" json:"source"`                      // 来源（footer/register）
	Active    bool      `gorm:"default:true" json:"active"`                          // 是否有效
	CreatedAt time.Time `gorm:"index" json:"created_at"`                             // 订阅时间
}

// TableName 指定表名
func (NewsletterSubscriber) TableName() string {
	return "newsletter_subscribers"
}
