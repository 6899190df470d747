package queue

import (
	"encoding/json"

	"github.com/pixelcraft-pc/storefront/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	TaskOrderConfirmationEmail = constants.TaskOrderConfirmationEmail
	TaskOrderStatusEmail       = constants.TaskOrderStatusEmail
	TaskNewsletterWelcomeEmail = constants.TaskNewsletterWelcomeEmail
)

// OrderConfirmationPayload 下单确认邮件
type OrderConfirmationPayload struct {
	OrderID uint   `json:"order_id"`
	Locale  string `json:"locale,omitempty"`
}

// OrderStatusPayload 订单状态变更邮件
type OrderStatusPayload struct {
	OrderID       uint   `json:"order_id"`
	OrderStatus   string `json:"order_status"`
	PaymentStatus string `json:"payment_status"`
	Locale        string `json:"locale,omitempty"`
}

// NewsletterWelcomePayload 订阅欢迎邮件
type NewsletterWelcomePayload struct {
	Email  string `json:"email"`
	Locale string `json:"locale,omitempty"`
}

func newTask(taskType string, payload interface{}) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(taskType, body, asynq.MaxRetry(5)), nil
}

// NewOrderConfirmationTask 创建下单确认邮件任务
func NewOrderConfirmationTask(payload OrderConfirmationPayload) (*asynq.Task, error) {
	return newTask(TaskOrderConfirmationEmail, payload)
}

// NewOrderStatusTask 创建订单状态邮件任务
func NewOrderStatusTask(payload OrderStatusPayload) (*asynq.Task, error) {
	return newTask(TaskOrderStatusEmail, payload)
}

// NewNewsletterWelcomeTask 创建订阅欢迎邮件任务
func NewNewsletterWelcomeTask(payload NewsletterWelcomePayload) (*asynq.Task, error) {
	return newTask(TaskNewsletterWelcomeEmail, payload)
}
