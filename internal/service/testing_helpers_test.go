package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/pixelcraft-pc/storefront/internal/models"
	"github.com/pixelcraft-pc/storefront/internal/queue"
	"github.com/pixelcraft-pc/storefront/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type recordingNotifier struct {
	confirmations []queue.OrderConfirmationPayload
	statuses      []queue.OrderStatusPayload
	welcomes      []queue.NewsletterWelcomePayload
	err           error
}

func (n *recordingNotifier) EnqueueOrderConfirmation(payload queue.OrderConfirmationPayload) error {
	n.confirmations = append(n.confirmations, payload)
	return n.err
}

func (n *recordingNotifier) EnqueueOrderStatus(payload queue.OrderStatusPayload) error {
	n.statuses = append(n.statuses, payload)
	return n.err
}

func (n *recordingNotifier) EnqueueNewsletterWelcome(payload queue.NewsletterWelcomePayload) error {
	n.welcomes = append(n.welcomes, payload)
	return n.err
}

func openServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	if err := models.EnsurePaymentMethods(db); err != nil {
		t.Fatalf("seed payment methods failed: %v", err)
	}
	return db
}

func testPricingRules() PricingRules {
	return PricingRules{
		SetupFee:        decimal.RequireFromString("150.00"),
		ShippingFee:     decimal.Zero,
		PixDiscountRate: decimal.RequireFromString("0.05"),
	}
}

type storeFixture struct {
	db       *gorm.DB
	notifier *recordingNotifier
	carts    *CartService
	orders   *OrderService
}

func newStoreFixture(t *testing.T) *storeFixture {
	t.Helper()
	db := openServiceTestDB(t)
	notifier := &recordingNotifier{}
	cartRepo := repository.NewCartRepository(db)
	productRepo := repository.NewProductRepository(db)
	return &storeFixture{
		db:       db,
		notifier: notifier,
		carts:    NewCartService(cartRepo, productRepo),
		orders: NewOrderService(OrderServiceOptions{
			CartRepo:    cartRepo,
			OrderRepo:   repository.NewOrderRepository(db),
			PaymentRepo: repository.NewPaymentMethodRepository(db),
			Notifier:    notifier,
			Rules:       testPricingRules(),
			Prefix:      "PC",
		}),
	}
}

func seedPC(t *testing.T, db *gorm.DB, slug, price string, active bool) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:       strings.ToUpper(slug),
		Slug:       slug,
		Price:      models.MustMoney(price),
		SetupPrice: models.MustMoney("150"),
		ImageMain:  "/uploads/pcs/" + slug + ".png",
		Active:     true,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create pc failed: %v", err)
	}
	if !active {
		if err := db.Model(product).Update("active", false).Error; err != nil {
			t.Fatalf("deactivate pc failed: %v", err)
		}
		product.Active = false
	}
	return product
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var count int64
	if err := db.Model(model).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	return count
}
