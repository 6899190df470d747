package service

import (
	"errors"
	"strings"
	"time"

	"github.com/pixelcraft-pc/storefront/internal/constants"
	"github.com/pixelcraft-pc/storefront/internal/logger"
	"github.com/pixelcraft-pc/storefront/internal/models"
	"github.com/pixelcraft-pc/storefront/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderService 下单流水线与订单查询
type OrderService struct {
	cartRepo    repository.CartRepository
	orderRepo   repository.OrderRepository
	paymentRepo repository.PaymentMethodRepository
	notifier    Notifier
	rules       PricingRules
	prefix      string
	now         func() time.Time
}

// OrderServiceOptions 构造参数
type OrderServiceOptions struct {
	CartRepo    repository.CartRepository
	OrderRepo   repository.OrderRepository
	PaymentRepo repository.PaymentMethodRepository
	Notifier    Notifier
	Rules       PricingRules
	Prefix      string
}

// NewOrderService 创建订单服务
func NewOrderService(opts OrderServiceOptions) *OrderService {
	prefix := strings.TrimSpace(opts.Prefix)
	if prefix == "" {
		prefix = "PC"
	}
	return &OrderService{
		cartRepo:    opts.CartRepo,
		orderRepo:   opts.OrderRepo,
		paymentRepo: opts.PaymentRepo,
		notifier:    opts.Notifier,
		rules:       opts.Rules,
		prefix:      prefix,
		now:         time.Now,
	}
}

// CheckoutInput 下单输入
type CheckoutInput struct {
	Cart          CartRef
	Identity      *Identity
	Name          string
	Email         string
	Phone         string
	CPF           string
	CEP           string
	Street        string
	Number        string
	Complement    string
	Neighborhood  string
	City          string
	State         string
	PaymentMethod string
	SetupService  bool
	Notes         string
	Locale        string
}

// CheckoutPreview 结算页数据
type CheckoutPreview struct {
	Cart           *CartView              `json:"cart"`
	SetupFee       models.Money           `json:"setup_fee"`
	TotalPix       models.Money           `json:"total_pix"`
	TotalStandard  models.Money           `json:"total_standard"`
	PaymentMethods []models.PaymentMethod `json:"payment_methods"`
}

// Preview 结算页预览，空购物车返回 ErrEmptyCart
func (s *OrderService) Preview(ref CartRef) (*CheckoutPreview, error) {
	view, lines, err := s.loadCart(ref)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}
	methods, err := s.paymentRepo.List(true)
	if err != nil {
		return nil, persistenceError("list payment methods", err)
	}
	return &CheckoutPreview{
		Cart:           view,
		SetupFee:       models.NewMoneyFromDecimal(s.rules.SetupFee),
		TotalPix:       PriceOrder(lines, constants.PaymentMethodPix, false, s.rules).Total,
		TotalStandard:  PriceOrder(lines, constants.PaymentMethodCard, false, s.rules).Total,
		PaymentMethods: methods,
	}, nil
}

func (s *OrderService) loadCart(ref CartRef) (*CartView, []PricedLine, error) {
	empty := &CartView{Items: []CartLine{}}
	if !ref.Valid() {
		return empty, nil, nil
	}
	cart, err := s.cartRepo.GetBySession(ref.SessionKey)
	if err != nil {
		return nil, nil, persistenceError("load cart", err)
	}
	if cart == nil {
		return empty, nil, nil
	}
	items, err := s.cartRepo.ListItems(cart.ID)
	if err != nil {
		return nil, nil, persistenceError("list cart items", err)
	}
	return buildCartView(items), pricedLines(items), nil
}

func pricedLines(items []models.CartItem) []PricedLine {
	lines := make([]PricedLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, PricedLine{
			ProductID: item.ProductID,
			Name:      item.Name,
			Image:     item.Image,
			UnitPrice: item.UnitPrice.Decimal,
			Quantity:  item.Quantity,
		})
	}
	return lines
}

// PlaceOrder 校验购物车与支付方式、计价、生成订单号，并在同一事务内写入订单与清空购物车。
// 失败时事务回滚，购物车保持原样。
func (s *OrderService) PlaceOrder(input CheckoutInput) (*models.Order, error) {
	if !input.Cart.Valid() {
		return nil, ErrEmptyCart
	}
	method := strings.ToLower(strings.TrimSpace(input.PaymentMethod))
	pm, err := s.paymentRepo.GetActiveByCode(method)
	if err != nil {
		return nil, persistenceError("load payment method", err)
	}
	orderNumber, err := generateOrderNumber(s.prefix, s.now())
	if err != nil {
		logger.Errorw("order_number_generate_failed", "session", input.Cart.SessionKey, "error", err)
		return nil, persistenceError("generate order number", err)
	}

	var order *models.Order
	err = s.cartRepo.Transaction(func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)
		cart, err := cartRepo.GetBySession(input.Cart.SessionKey)
		if err != nil {
			return persistenceError("load cart", err)
		}
		if cart == nil {
			return ErrEmptyCart
		}
		items, err := cartRepo.ListItems(cart.ID)
		if err != nil {
			return persistenceError("list cart items", err)
		}
		if len(items) == 0 {
			return ErrEmptyCart
		}

		if pm == nil {
			return ErrPaymentMethodInvalid
		}

		lines := pricedLines(items)
		amounts := PriceOrder(lines, method, input.SetupService, s.rules)
		order = s.buildOrder(orderNumber, input, method, lines, amounts)

		if err := s.orderRepo.WithTx(tx).Create(order); err != nil {
			return persistenceError("create order", err)
		}
		if err := cartRepo.ClearItems(cart.ID); err != nil {
			return persistenceError("clear cart", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrPersistence) {
			logger.Errorw("order_place_failed", "session", input.Cart.SessionKey, "error", err)
		}
		return nil, err
	}

	logger.Infow("order_created",
		"order_number", order.OrderNumber,
		"total", order.Total.String(),
		"payment_method", order.PaymentMethod,
		"customer_id", order.CustomerID,
	)
	notifyOrderConfirmation(s.notifier, order.ID, input.Locale)
	return order, nil
}

func (s *OrderService) buildOrder(orderNumber string, input CheckoutInput, method string, lines []PricedLine, amounts OrderAmounts) *models.Order {
	snapshot := make(models.OrderLines, 0, len(lines))
	for _, line := range lines {
		snapshot = append(snapshot, models.OrderLine{
			ProductID: line.ProductID,
			Name:      line.Name,
			UnitPrice: models.NewMoneyFromDecimal(line.UnitPrice),
			Quantity:  line.Quantity,
			Image:     line.Image,
			LineTotal: models.NewMoneyFromDecimal(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))),
		})
	}
	return &models.Order{
		OrderNumber:          orderNumber,
		CustomerID:           input.Identity.CustomerID(),
		CustomerName:         strings.TrimSpace(input.Name),
		CustomerEmail:        strings.ToLower(strings.TrimSpace(input.Email)),
		CustomerPhone:        strings.TrimSpace(input.Phone),
		CustomerCPF:          strings.TrimSpace(input.CPF),
		ShippingCEP:          strings.TrimSpace(input.CEP),
		ShippingStreet:       strings.TrimSpace(input.Street),
		ShippingNumber:       strings.TrimSpace(input.Number),
		ShippingComplement:   strings.TrimSpace(input.Complement),
		ShippingNeighborhood: strings.TrimSpace(input.Neighborhood),
		ShippingCity:         strings.TrimSpace(input.City),
		ShippingState:        strings.ToUpper(strings.TrimSpace(input.State)),
		Items:                snapshot,
		Subtotal:             amounts.Subtotal,
		SetupFee:             amounts.SetupFee,
		Shipping:             amounts.Shipping,
		Discount:             amounts.Discount,
		Total:                amounts.Total,
		PaymentMethod:        method,
		PaymentStatus:        constants.PaymentStatusPending,
		OrderStatus:          constants.OrderStatusPending,
		SetupService:         input.SetupService,
		Notes:                strings.TrimSpace(input.Notes),
	}
}

// ListCustomerOrders 顾客订单列表
func (s *OrderService) ListCustomerOrders(customerID uint, page, pageSize int) ([]models.Order, int64, error) {
	orders, total, err := s.orderRepo.ListByCustomer(customerID, page, pageSize)
	if err != nil {
		return nil, 0, persistenceError("list customer orders", err)
	}
	return orders, total, nil
}

// GetCustomerOrder 顾客订单详情，仅限本人
func (s *OrderService) GetCustomerOrder(customerID uint, orderNumber string) (*models.Order, error) {
	order, err := s.orderRepo.GetByNumberAndCustomer(strings.TrimSpace(orderNumber), customerID)
	if err != nil {
		return nil, persistenceError("load order", err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListOrders 后台订单列表
func (s *OrderService) ListOrders(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	orders, total, err := s.orderRepo.ListAdmin(filter)
	if err != nil {
		return nil, 0, persistenceError("list orders", err)
	}
	return orders, total, nil
}

// GetOrder 后台订单详情
func (s *OrderService) GetOrder(id uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, persistenceError("load order", err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// UpdateOrderStatusInput 后台状态更新
type UpdateOrderStatusInput struct {
	OrderStatus   string
	PaymentStatus string
	TrackingCode  *string
}

// UpdateStatus 按状态机更新履约与支付状态，变更后投递通知邮件
func (s *OrderService) UpdateStatus(id uint, input UpdateOrderStatusInput) (*models.Order, error) {
	order, err := s.GetOrder(id)
	if err != nil {
		return nil, err
	}
	now := s.now()
	updates := map[string]interface{}{}

	if next := strings.TrimSpace(input.OrderStatus); next != "" && next != order.OrderStatus {
		if !CanTransitionOrderStatus(order.OrderStatus, next) {
			return nil, ErrInvalidStatusTransition
		}
		updates["order_status"] = next
		if next == constants.OrderStatusShipped {
			updates["shipped_at"] = now
		}
	}
	if next := strings.TrimSpace(input.PaymentStatus); next != "" && next != order.PaymentStatus {
		if !CanTransitionPaymentStatus(order.PaymentStatus, next) {
			return nil, ErrInvalidStatusTransition
		}
		updates["payment_status"] = next
		if next == constants.PaymentStatusCompleted {
			updates["paid_at"] = now
		}
	}
	if input.TrackingCode != nil {
		updates["tracking_code"] = strings.TrimSpace(*input.TrackingCode)
	}
	if len(updates) == 0 {
		return order, nil
	}
	updates["updated_at"] = now
	if err := s.orderRepo.UpdateFields(order.ID, updates); err != nil {
		return nil, persistenceError("update order status", err)
	}

	updated, err := s.GetOrder(order.ID)
	if err != nil {
		return nil, err
	}
	if updated.OrderStatus != order.OrderStatus || updated.PaymentStatus != order.PaymentStatus {
		notifyOrderStatus(s.notifier, updated.ID, updated.OrderStatus, updated.PaymentStatus)
	}
	return updated, nil
}

// ListPaymentMethods 支付方式列表
func (s *OrderService) ListPaymentMethods(onlyActive bool) ([]models.PaymentMethod, error) {
	methods, err := s.paymentRepo.List(onlyActive)
	if err != nil {
		return nil, persistenceError("list payment methods", err)
	}
	return methods, nil
}

// SetPaymentMethodActive 启用或停用支付方式
func (s *OrderService) SetPaymentMethodActive(id uint, active bool) error {
	affected, err := s.paymentRepo.SetActive(id, active)
	if err != nil {
		return persistenceError("toggle payment method", err)
	}
	if affected == 0 {
		return ErrPaymentNotFound
	}
	return nil
}
