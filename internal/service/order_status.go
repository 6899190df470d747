package service

import "github.com/pixelcraft-pc/storefront/internal/constants"

var orderStatusTransitions = map[string][]string{
	constants.OrderStatusPending:    {constants.OrderStatusProcessing, constants.OrderStatusCancelled},
	constants.OrderStatusProcessing: {constants.OrderStatusShipped, constants.OrderStatusCancelled},
	constants.OrderStatusShipped:    {constants.OrderStatusDelivered},
}

var paymentStatusTransitions = map[string][]string{
	constants.PaymentStatusPending:   {constants.PaymentStatusCompleted, constants.PaymentStatusFailed},
	constants.PaymentStatusFailed:    {constants.PaymentStatusPending},
	constants.PaymentStatusCompleted: {constants.PaymentStatusRefunded},
}

func canTransition(table map[string][]string, from, to string) bool {
	if from == to {
		return true
	}
	for _, next := range table[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CanTransitionOrderStatus 履约状态流转校验
func CanTransitionOrderStatus(from, to string) bool {
	return canTransition(orderStatusTransitions, from, to)
}

// CanTransitionPaymentStatus 支付状态流转校验
func CanTransitionPaymentStatus(from, to string) bool {
	return canTransition(paymentStatusTransitions, from, to)
}
