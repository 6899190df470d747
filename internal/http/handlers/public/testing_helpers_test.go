package public

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/pixelcraft-pc/storefront/internal/config"
	"github.com/pixelcraft-pc/storefront/internal/constants"
	"github.com/pixelcraft-pc/storefront/internal/http/validation"
	"github.com/pixelcraft-pc/storefront/internal/models"
	"github.com/pixelcraft-pc/storefront/internal/provider"
	"github.com/pixelcraft-pc/storefront/internal/queue"
	"github.com/pixelcraft-pc/storefront/internal/repository"
	"github.com/pixelcraft-pc/storefront/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testCartSession = "cart-session-test"

type envelope struct {
	StatusCode int             `json:"status_code"`
	Msg        string          `json:"msg"`
	Data       json.RawMessage `json:"data"`
}

func setupPublicHandlerTest(t *testing.T) (*Handler, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Register()

	dsn := fmt.Sprintf("file:public_handler_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.AllModels()...))
	require.NoError(t, models.EnsurePaymentMethods(db))

	cfg := &config.Config{
		JWT: config.JWTConfig{SecretKey: "handler-test-secret", AdminExpireHours: 1, ExpireHours: 1},
	}
	rules := service.NewPricingRules("150.00", "0", "0.05")
	notifier := queue.NewClient(&config.QueueConfig{})

	adminRepo := repository.NewAdminRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	gameRepo := repository.NewGameRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	paymentRepo := repository.NewPaymentMethodRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	newsletterRepo := repository.NewNewsletterRepository(db)

	h := &Handler{Container: &provider.Container{
		Config:       cfg,
		QueueClient:  notifier,
		CustomerRepo: customerRepo,
		ProductRepo:  productRepo,
		OrderRepo:    orderRepo,
		AuthService:  service.NewAuthService(cfg, adminRepo, customerRepo, newsletterRepo, notifier),
		CatalogService: service.NewCatalogService(productRepo, categoryRepo, gameRepo, reviewRepo, service.CatalogLimits{
			Featured: 8,
			Related:  4,
			Reviews:  10,
			Search:   10,
		}),
		CartService: service.NewCartService(cartRepo, productRepo),
		OrderService: service.NewOrderService(service.OrderServiceOptions{
			CartRepo:    cartRepo,
			OrderRepo:   orderRepo,
			PaymentRepo: paymentRepo,
			Notifier:    notifier,
			Rules:       rules,
			Prefix:      "PC",
		}),
		CustomerService:   service.NewCustomerService(customerRepo, orderRepo),
		ReviewService:     service.NewReviewService(reviewRepo, productRepo, orderRepo),
		NewsletterService: service.NewNewsletterService(newsletterRepo, notifier),
		CaptchaService:    service.NewCaptchaService(config.CaptchaConfig{}),
	}}
	return h, db
}

// newPublicEngine 注册被测路由，并为每个请求注入固定购物车会话
func newPublicEngine(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(constants.ContextKeyCartRef, service.CartRef{SessionKey: testCartSession})
		if token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer "); token != "" {
			if identity, err := h.AuthService.ResolveIdentity(c.Request.Context(), token); err == nil {
				c.Set(constants.ContextKeyIdentity, identity)
			}
		}
		c.Next()
	})
	r.GET("/api/pcs", h.ListPCs)
	r.GET("/api/pcs/:slug", h.GetPC)
	r.GET("/api/search", h.Search)
	r.GET("/api/cart", h.GetCart)
	r.POST("/api/cart/add", h.AddToCart)
	r.POST("/api/cart/update", h.UpdateCart)
	r.GET("/api/checkout", h.Checkout)
	r.POST("/api/checkout", h.ProcessOrder)
	r.POST("/api/login", h.CustomerLogin)
	r.POST("/api/register", h.CustomerRegister)
	r.GET("/api/account/orders", h.ListMyOrders)
	r.GET("/api/account/orders/:order_number", h.GetMyOrder)
	r.POST("/api/newsletter", h.SubscribeNewsletter)
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path string, body interface{}, token string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

func doForm(t *testing.T, r http.Handler, path string, form url.Values) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

func seedProduct(t *testing.T, db *gorm.DB, slug, price string) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:       strings.ToUpper(slug),
		Slug:       slug,
		Price:      models.MustMoney(price),
		SetupPrice: models.MustMoney("150"),
		ImageMain:  "/uploads/pcs/" + slug + ".png",
		Active:     true,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func checkoutBody(method string) map[string]interface{} {
	return map[string]interface{}{
		"name":           "Ana Souza",
		"email":          "ana@example.com",
		"phone":          "11999990000",
		"cep":            "01310-100",
		"address":        "Av. Paulista",
		"number":         "1000",
		"city":           "São Paulo",
		"state":          "SP",
		"payment_method": method,
	}
}
