package repository

import (
	"github.com/pixelcraft-pc/storefront/internal/constants"
	"github.com/pixelcraft-pc/storefront/internal/models"

	"gorm.io/gorm"
)

// DashboardRepository 后台首页聚合查询，只做统计不承载业务规则
type DashboardRepository interface {
	GetOverview() (DashboardOverviewRow, error)
	CountOrdersByStatus() ([]DashboardStatusCountRow, error)
}

// DashboardOverviewRow 总览统计
type DashboardOverviewRow struct {
	ActiveProducts int64
	OrdersTotal    int64
	Customers      int64
	Revenue        models.Money
}

// DashboardStatusCountRow 履约状态分布
type DashboardStatusCountRow struct {
	OrderStatus string `json:"order_status"`
	Total       int64  `json:"total"`
}

// GormDashboardRepository GORM 实现
type GormDashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository 创建仪表盘仓库
func NewDashboardRepository(db *gorm.DB) *GormDashboardRepository {
	return &GormDashboardRepository{db: db}
}

// GetOverview 上架整机数、订单数、顾客数与已完成支付的收入
func (r *GormDashboardRepository) GetOverview() (DashboardOverviewRow, error) {
	var row DashboardOverviewRow
	if err := r.db.Model(&models.Product{}).Where("active = ?", true).Count(&row.ActiveProducts).Error; err != nil {
		return row, err
	}
	if err := r.db.Model(&models.Order{}).Count(&row.OrdersTotal).Error; err != nil {
		return row, err
	}
	if err := r.db.Model(&models.Customer{}).Count(&row.Customers).Error; err != nil {
		return row, err
	}
	var revenue struct {
		Total models.Money
	}
	err := r.db.Model(&models.Order{}).
		Select("COALESCE(SUM(total), 0) AS total").
		Where("payment_status = ?", constants.PaymentStatusCompleted).
		Scan(&revenue).Error
	if err != nil {
		return row, err
	}
	row.Revenue = revenue.Total
	return row, nil
}

// CountOrdersByStatus 按履约状态计数
func (r *GormDashboardRepository) CountOrdersByStatus() ([]DashboardStatusCountRow, error) {
	var rows []DashboardStatusCountRow
	err := r.db.Model(&models.Order{}).
		Select("order_status, COUNT(*) AS total").
		Group("order_status").
		Order("order_status ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
