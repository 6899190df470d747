package worker

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/pixelcraft-pc/storefront/internal/logger"
	"github.com/pixelcraft-pc/storefront/internal/models"
	"github.com/pixelcraft-pc/storefront/internal/provider"
	"github.com/pixelcraft-pc/storefront/internal/queue"
	"github.com/pixelcraft-pc/storefront/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderConfirmationEmail, c.handleOrderConfirmationEmail)
	mux.HandleFunc(queue.TaskOrderStatusEmail, c.handleOrderStatusEmail)
	mux.HandleFunc(queue.TaskNewsletterWelcomeEmail, c.handleNewsletterWelcomeEmail)
}

func (c *Consumer) handleOrderConfirmationEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_confirmation_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderConfirmationPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_confirmation_unmarshal_failed", "error", err)
		return err
	}
	order, err := c.loadOrderForEmail("worker_order_confirmation", payload.OrderID)
	if err != nil || order == nil {
		return err
	}
	if err := c.EmailService.SendOrderConfirmation(order, payload.Locale); err != nil {
		return c.mailFailure("worker_order_confirmation_send_failed", order, err)
	}
	return nil
}

func (c *Consumer) handleOrderStatusEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_status_email_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderStatusPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_status_email_unmarshal_failed", "error", err)
		return err
	}
	order, err := c.loadOrderForEmail("worker_order_status_email", payload.OrderID)
	if err != nil || order == nil {
		return err
	}
	// 邮件内容以投递时的状态为准，订单之后可能已再次变更
	if status := strings.TrimSpace(payload.OrderStatus); status != "" {
		order.OrderStatus = status
	}
	if status := strings.TrimSpace(payload.PaymentStatus); status != "" {
		order.PaymentStatus = status
	}
	if err := c.EmailService.SendOrderStatus(order, payload.Locale); err != nil {
		return c.mailFailure("worker_order_status_email_send_failed", order, err)
	}
	return nil
}

func (c *Consumer) handleNewsletterWelcomeEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_newsletter_welcome_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.NewsletterWelcomePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_newsletter_welcome_unmarshal_failed", "error", err)
		return err
	}
	email := strings.TrimSpace(payload.Email)
	if email == "" {
		logger.Debugw("worker_newsletter_welcome_skip_empty_receiver")
		return nil
	}
	if !c.EmailService.Enabled() {
		logger.Debugw("worker_newsletter_welcome_skip_email_disabled", "receiver_email", email)
		return nil
	}
	if err := c.EmailService.SendNewsletterWelcome(email, payload.Locale); err != nil {
		logger.Warnw("worker_newsletter_welcome_send_failed", "receiver_email", email, "error", err)
		if isPermanentMailError(err) {
			return nil
		}
		return err
	}
	return nil
}

// loadOrderForEmail 读取订单；返回 nil 订单且无错误时表示跳过该任务
func (c *Consumer) loadOrderForEmail(event string, orderID uint) (*models.Order, error) {
	if orderID == 0 {
		logger.Debugw(event+"_skip_invalid_payload", "order_id", orderID)
		return nil, nil
	}
	if !c.EmailService.Enabled() {
		logger.Debugw(event+"_skip_email_disabled", "order_id", orderID)
		return nil, nil
	}
	if c.OrderRepo == nil {
		logger.Warnw(event+"_skip_order_repo_nil", "order_id", orderID)
		return nil, nil
	}
	order, err := c.OrderRepo.GetByID(orderID)
	if err != nil {
		logger.Warnw(event+"_fetch_order_failed", "order_id", orderID, "error", err)
		return nil, err
	}
	if order == nil {
		logger.Debugw(event+"_skip_order_not_found", "order_id", orderID)
		return nil, nil
	}
	if strings.TrimSpace(order.CustomerEmail) == "" {
		logger.Debugw(event+"_skip_empty_receiver", "order_id", order.ID, "order_number", order.OrderNumber)
		return nil, nil
	}
	return order, nil
}

func (c *Consumer) mailFailure(event string, order *models.Order, err error) error {
	logger.Warnw(event,
		"order_id", order.ID,
		"order_number", order.OrderNumber,
		"receiver_email", order.CustomerEmail,
		"error", err,
	)
	if isPermanentMailError(err) {
		return nil
	}
	return err
}

// isPermanentMailError 重试无法恢复的发送错误，任务直接丢弃
func isPermanentMailError(err error) bool {
	return errors.Is(err, service.ErrEmailServiceNotConfigured) ||
		errors.Is(err, service.ErrEmailServiceDisabled) ||
		errors.Is(err, service.ErrInvalidEmail)
}
