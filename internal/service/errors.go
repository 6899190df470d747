package service

import (
	"errors"
	"fmt"
)

// 资源不存在
var (
	ErrNotFound         = errors.New("not found")
	ErrProductNotFound  = fmt.Errorf("%w: pc", ErrNotFound)
	ErrCategoryNotFound = fmt.Errorf("%w: category", ErrNotFound)
	ErrGameNotFound     = fmt.Errorf("%w: game", ErrNotFound)
	ErrOrderNotFound    = fmt.Errorf("%w: order", ErrNotFound)
	ErrCustomerNotFound = fmt.Errorf("%w: customer", ErrNotFound)
	ErrReviewNotFound   = fmt.Errorf("%w: review", ErrNotFound)
	ErrCartItemNotFound = fmt.Errorf("%w: cart item", ErrNotFound)
	ErrImageNotFound    = fmt.Errorf("%w: image", ErrNotFound)
	ErrPaymentNotFound  = fmt.Errorf("%w: payment method", ErrNotFound)
)

// 输入校验失败
var (
	ErrValidation              = errors.New("validation failed")
	ErrEmailExists             = fmt.Errorf("%w: email already registered", ErrValidation)
	ErrInvalidEmail            = fmt.Errorf("%w: invalid email", ErrValidation)
	ErrPaymentMethodInvalid    = fmt.Errorf("%w: payment method unavailable", ErrValidation)
	ErrInvalidQuantity         = fmt.Errorf("%w: invalid quantity", ErrValidation)
	ErrInvalidRating           = fmt.Errorf("%w: rating out of range", ErrValidation)
	ErrSlugExists              = fmt.Errorf("%w: slug already exists", ErrValidation)
	ErrInvalidStatusTransition = fmt.Errorf("%w: status transition not allowed", ErrValidation)
	ErrUploadInvalid           = fmt.Errorf("%w: invalid upload", ErrValidation)
	ErrUploadTooLarge          = fmt.Errorf("%w: upload too large", ErrValidation)
	ErrCaptchaRequired         = fmt.Errorf("%w: captcha required", ErrValidation)
	ErrCaptchaInvalid          = fmt.Errorf("%w: captcha invalid", ErrValidation)
	ErrPasswordMismatch        = fmt.Errorf("%w: current password mismatch", ErrValidation)
	ErrCategoryInUse           = fmt.Errorf("%w: category still has pcs", ErrValidation)
)

// ErrEmptyCart 空购物车下单
var ErrEmptyCart = errors.New("cart is empty")

// ErrPersistence 存储层失败，调用方应视为可重试
var ErrPersistence = errors.New("persistence failure")

// 身份相关
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
)

// persistenceError 包装底层存储错误，保留原因便于日志定位
func persistenceError(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s: %v", ErrPersistence, op, err)
}
