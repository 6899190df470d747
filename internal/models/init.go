package models

import (
	"errors"

	"github.com/pixelcraft-pc/storefront/internal/constants"
	"github.com/pixelcraft-pc/storefront/internal/logger"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const defaultAdminPassword = "admin123"

// InitDefaultAdmin 无管理员时创建默认账号
func InitDefaultAdmin(db *gorm.DB, username, password string) error {
	var count int64
	if err := db.Model(&Admin{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	if username == "" {
		username = "admin"
	}
	if password == "" {
		password = defaultAdminPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := Admin{
		Username:     username,
		PasswordHash: string(hash),
		Role:         constants.AdminRoleAdmin,
		Active:       true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	if password == defaultAdminPassword {
		logger.Warnw("default_admin_created_with_default_password", "username", username)
	} else {
		logger.Infow("default_admin_created", "username", username)
	}
	return nil
}

// DefaultPaymentMethods 内置支付方式
func DefaultPaymentMethods() []PaymentMethod {
	return []PaymentMethod{
		{Code: constants.PaymentMethodPix, Name: "PIX", Description: "5% de desconto", Active: true, SortOrder: 1},
		{Code: constants.PaymentMethodCard, Name: "Cartão de crédito", Description: "Em até 12x", Active: true, SortOrder: 2},
		{Code: constants.PaymentMethodBoleto, Name: "Boleto bancário", Description: "Compensação em até 3 dias úteis", Active: true, SortOrder: 3},
	}
}

// EnsurePaymentMethods 补齐缺失的内置支付方式，不覆盖已有配置
func EnsurePaymentMethods(db *gorm.DB) error {
	if db == nil {
		return errors.New("db is nil")
	}
	methods := DefaultPaymentMethods()
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		DoNothing: true,
	}).Create(&methods).Error
}
