package repository

import "github.com/shopspring/decimal"

// CatalogFilter 前台目录查询条件，未设置的字段不产生过滤
type CatalogFilter struct {
	CategorySlug string
	PriceMin     *decimal.Decimal
	PriceMax     *decimal.Decimal
	Sort         string
}

// ProductListFilter 后台商品列表过滤条件
type ProductListFilter struct {
	Page       int
	PageSize   int
	CategoryID uint
	Search     string
	Active     *bool
}

// OrderListFilter 订单列表过滤条件
type OrderListFilter struct {
	Page          int
	PageSize      int
	CustomerID    uint
	OrderStatus   string
	PaymentStatus string
	OrderNumber   string
}

// CustomerListFilter 顾客列表过滤条件
type CustomerListFilter struct {
	Page     int
	PageSize int
	Search   string
}

// ReviewListFilter 评价列表过滤条件
type ReviewListFilter struct {
	Page      int
	PageSize  int
	Status    string
	ProductID uint
}

// SubscriberListFilter 订阅列表过滤条件
type SubscriberListFilter struct {
	Page     int
	PageSize int
	Search   string
}

// AdminAuditLogFilter 审计日志过滤条件
type AdminAuditLogFilter struct {
	Page     int
	PageSize int
	AdminID  uint
	Method   string
	Object   string
}
