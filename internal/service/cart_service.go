package service

import (
	"strings"
	"time"

	"github.com/pixelcraft-pc/storefront/internal/models"
	"github.com/pixelcraft-pc/storefront/internal/repository"

	"github.com/shopspring/decimal"
)

// CartRef 当前请求的购物车引用，由中间件解析会话后放入上下文
type CartRef struct {
	SessionKey string
	CustomerID *uint
}

// Valid 会话标识是否存在
func (r CartRef) Valid() bool {
	return strings.TrimSpace(r.SessionKey) != ""
}

// CartLine 购物车行（响应用）
type CartLine struct {
	ProductID uint         `json:"id"`
	Name      string       `json:"name"`
	Price     models.Money `json:"price"`
	Image     string       `json:"image"`
	Quantity  int          `json:"quantity"`
	LineTotal models.Money `json:"line_total"`
}

// CartView 购物车视图
type CartView struct {
	Items []CartLine   `json:"items"`
	Total models.Money `json:"total"`
	Count int          `json:"cart_count"`
}

// CartService 会话购物车服务
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// Add 加入一台整机；已存在则数量加一。商品不存在或未上架时购物车保持不变。
// 返回购物车行数。
func (s *CartService) Add(ref CartRef, productID uint) (int, error) {
	if !ref.Valid() {
		return 0, ErrValidation
	}
	if productID == 0 {
		return 0, ErrProductNotFound
	}
	product, err := s.productRepo.GetActiveByID(productID)
	if err != nil {
		return 0, persistenceError("load pc", err)
	}
	if product == nil {
		return 0, ErrProductNotFound
	}

	cart, err := s.cartRepo.Ensure(ref.SessionKey, ref.CustomerID)
	if err != nil {
		return 0, persistenceError("ensure cart", err)
	}
	item := &models.CartItem{
		CartID:    cart.ID,
		ProductID: product.ID,
		Name:      product.Name,
		UnitPrice: product.Price,
		Image:     product.ImageMain,
		Quantity:  1,
	}
	if err := s.cartRepo.AddOrIncrement(item); err != nil {
		return 0, persistenceError("add cart item", err)
	}
	count, err := s.cartRepo.CountItems(cart.ID)
	if err != nil {
		return 0, persistenceError("count cart items", err)
	}
	return int(count), nil
}

// View 购物车内容与合计，使用加入时的价格快照
func (s *CartService) View(ref CartRef) (*CartView, error) {
	view := &CartView{Items: []CartLine{}, Total: models.NewMoneyFromDecimal(decimal.Zero)}
	if !ref.Valid() {
		return view, nil
	}
	cart, err := s.cartRepo.GetBySession(ref.SessionKey)
	if err != nil {
		return nil, persistenceError("load cart", err)
	}
	if cart == nil {
		return view, nil
	}
	items, err := s.cartRepo.ListItems(cart.ID)
	if err != nil {
		return nil, persistenceError("list cart items", err)
	}
	return buildCartView(items), nil
}

func buildCartView(items []models.CartItem) *CartView {
	total := decimal.Zero
	lines := make([]CartLine, 0, len(items))
	for _, item := range items {
		lineTotal := item.UnitPrice.Decimal.Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(lineTotal)
		lines = append(lines, CartLine{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.UnitPrice,
			Image:     item.Image,
			Quantity:  item.Quantity,
			LineTotal: models.NewMoneyFromDecimal(lineTotal),
		})
	}
	return &CartView{
		Items: lines,
		Total: models.NewMoneyFromDecimal(total),
		Count: len(lines),
	}
}

// SetQuantity 修改数量，数量不大于 0 时移除该行
func (s *CartService) SetQuantity(ref CartRef, productID uint, quantity int) (*CartView, error) {
	if quantity <= 0 {
		return s.Remove(ref, productID)
	}
	if quantity > 99 {
		return nil, ErrInvalidQuantity
	}
	cart, err := s.requireCart(ref)
	if err != nil {
		return nil, err
	}
	affected, err := s.cartRepo.SetQuantity(cart.ID, productID, quantity)
	if err != nil {
		return nil, persistenceError("set cart quantity", err)
	}
	if affected == 0 {
		return nil, ErrCartItemNotFound
	}
	return s.View(ref)
}

// Remove 移除一行
func (s *CartService) Remove(ref CartRef, productID uint) (*CartView, error) {
	cart, err := s.requireCart(ref)
	if err != nil {
		return nil, err
	}
	affected, err := s.cartRepo.DeleteItem(cart.ID, productID)
	if err != nil {
		return nil, persistenceError("delete cart item", err)
	}
	if affected == 0 {
		return nil, ErrCartItemNotFound
	}
	return s.View(ref)
}

// Clear 清空购物车
func (s *CartService) Clear(ref CartRef) error {
	if !ref.Valid() {
		return nil
	}
	cart, err := s.cartRepo.GetBySession(ref.SessionKey)
	if err != nil {
		return persistenceError("load cart", err)
	}
	if cart == nil {
		return nil
	}
	if err := s.cartRepo.ClearItems(cart.ID); err != nil {
		return persistenceError("clear cart", err)
	}
	return nil
}

// PurgeStale 清理超过 maxAge 未活动的游客购物车
func (s *CartService) PurgeStale(maxAge time.Duration, now time.Time) (int64, error) {
	if maxAge <= 0 {
		return 0, nil
	}
	purged, err := s.cartRepo.PurgeStaleGuestCarts(now.Add(-maxAge))
	if err != nil {
		return 0, persistenceError("purge stale carts", err)
	}
	return purged, nil
}

func (s *CartService) requireCart(ref CartRef) (*models.Cart, error) {
	if !ref.Valid() {
		return nil, ErrCartItemNotFound
	}
	cart, err := s.cartRepo.GetBySession(ref.SessionKey)
	if err != nil {
		return nil, persistenceError("load cart", err)
	}
	if cart == nil {
		return nil, ErrCartItemNotFound
	}
	return cart, nil
}
