package service

import (
	"github.com/pixelcraft-pc/storefront/internal/logger"
	"github.com/pixelcraft-pc/storefront/internal/queue"
)

// Notifier 异步邮件投递，queue.Client 为默认实现
type Notifier interface {
	EnqueueOrderConfirmation(payload queue.OrderConfirmationPayload) error
	EnqueueOrderStatus(payload queue.OrderStatusPayload) error
	EnqueueNewsletterWelcome(payload queue.NewsletterWelcomePayload) error
}

// 投递失败只记录日志，不影响主流程
func notifyOrderConfirmation(n Notifier, orderID uint, locale string) {
	if n == nil {
		return
	}
	if err := n.EnqueueOrderConfirmation(queue.OrderConfirmationPayload{OrderID: orderID, Locale: locale}); err != nil {
		logger.Warnw("order_confirmation_enqueue_failed", "order_id", orderID, "error", err)
	}
}

func notifyOrderStatus(n Notifier, orderID uint, orderStatus, paymentStatus string) {
	if n == nil {
		return
	}
	payload := queue.OrderStatusPayload{OrderID: orderID, OrderStatus: orderStatus, PaymentStatus: paymentStatus}
	if err := n.EnqueueOrderStatus(payload); err != nil {
		logger.Warnw("order_status_enqueue_failed", "order_id", orderID, "error", err)
	}
}

func notifyNewsletterWelcome(n Notifier, email, locale string) {
	if n == nil {
		return
	}
	if err := n.EnqueueNewsletterWelcome(queue.NewsletterWelcomePayload{Email: email, Locale: locale}); err != nil {
		logger.Warnw("newsletter_welcome_enqueue_failed", "email", email, "error", err)
	}
}
