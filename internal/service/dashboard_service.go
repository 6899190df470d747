package service

import (
	"context"
	"time"

	"github.com/pixelcraft-pc/storefront/internal/cache"
	"github.com/pixelcraft-pc/storefront/internal/logger"
	"github.com/pixelcraft-pc/storefront/internal/models"
	"github.com/pixelcraft-pc/storefront/internal/repository"
)

const (
	dashboardCacheTTL   = 45 * time.Second
	dashboardCacheKey   = "dashboard:overview"
	dashboardRecentSize = 10
)

// DashboardService 仪表盘服务
// 说明：聚合后台首页核心经营数据。
type DashboardService struct {
	repo      repository.DashboardRepository
	orderRepo repository.OrderRepository
}

// NewDashboardService 创建仪表盘服务
func NewDashboardService(repo repository.DashboardRepository, orderRepo repository.OrderRepository) *DashboardService {
	return &DashboardService{repo: repo, orderRepo: orderRepo}
}

// DashboardOverview 仪表盘总览
type DashboardOverview struct {
	ActivePCs    int64                                `json:"active_pcs"`
	OrdersTotal  int64                                `json:"orders_total"`
	Customers    int64                                `json:"customers"`
	Revenue      models.Money                         `json:"revenue"`
	StatusCounts []repository.DashboardStatusCountRow `json:"status_counts"`
	RecentOrders []DashboardRecentOrder               `json:"recent_orders"`
	GeneratedAt  time.Time                            `json:"generated_at"`
}

// DashboardRecentOrder 最近订单摘要
type DashboardRecentOrder struct {
	ID            uint         `json:"id"`
	OrderNumber   string       `json:"order_number"`
	CustomerName  string       `json:"customer_name"`
	Total         models.Money `json:"total"`
	PaymentStatus string       `json:"payment_status"`
	OrderStatus   string       `json:"order_status"`
	CreatedAt     time.Time    `json:"created_at"`
}

// GetOverview 获取总览，forceRefresh 为 true 时跳过缓存
func (s *DashboardService) GetOverview(ctx context.Context, forceRefresh bool) (*DashboardOverview, error) {
	if !forceRefresh {
		var cached DashboardOverview
		if hit, err := cache.GetJSON(ctx, dashboardCacheKey, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	row, err := s.repo.GetOverview()
	if err != nil {
		return nil, persistenceError("dashboard overview", err)
	}
	counts, err := s.repo.CountOrdersByStatus()
	if err != nil {
		return nil, persistenceError("dashboard status counts", err)
	}
	recent, err := s.orderRepo.ListRecent(dashboardRecentSize)
	if err != nil {
		return nil, persistenceError("dashboard recent orders", err)
	}

	overview := &DashboardOverview{
		ActivePCs:    row.ActiveProducts,
		OrdersTotal:  row.OrdersTotal,
		Customers:    row.Customers,
		Revenue:      row.Revenue,
		StatusCounts: counts,
		RecentOrders: make([]DashboardRecentOrder, 0, len(recent)),
		GeneratedAt:  time.Now(),
	}
	for _, order := range recent {
		name := order.CustomerName
		if order.Customer != nil && order.Customer.Name != "" {
			name = order.Customer.Name
		}
		overview.RecentOrders = append(overview.RecentOrders, DashboardRecentOrder{
			ID:            order.ID,
			OrderNumber:   order.OrderNumber,
			CustomerName:  name,
			Total:         order.Total,
			PaymentStatus: order.PaymentStatus,
			OrderStatus:   order.OrderStatus,
			CreatedAt:     order.CreatedAt,
		})
	}

	if err := cache.SetJSON(ctx, dashboardCacheKey, overview, dashboardCacheTTL); err != nil {
		logger.Warnw("dashboard_cache_write_failed", "error", err)
	}
	return overview, nil
}
