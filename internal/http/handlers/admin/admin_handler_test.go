package admin

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pixelcraft-pc/storefront/internal/authz"
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
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type envelope struct {
	StatusCode int             `json:"status_code"`
	Msg        string          `json:"msg"`
	Data       json.RawMessage `json:"data"`
}

func setupAdminHandlerTest(t *testing.T) (*Handler, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Register()

	dsn := fmt.Sprintf("file:admin_handler_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.AllModels()...))
	require.NoError(t, models.EnsurePaymentMethods(db))

	authzService, err := authz.NewService(db)
	require.NoError(t, err)
	require.NoError(t, authzService.BootstrapBuiltinRoles())

	cfg := &config.Config{
		JWT:    config.JWTConfig{SecretKey: "admin-handler-secret", AdminExpireHours: 1, ExpireHours: 1},
		Upload: config.UploadConfig{Dir: t.TempDir(), PublicPrefix: "/uploads/pcs/", MaxSize: 1 << 20, AllowedExtensions: []string{".png", ".jpg"}},
	}
	notifier := queue.NewClient(&config.QueueConfig{})
	setupFee := service.NewPricingRules("150.00", "0", "0.05").SetupFee

	adminRepo := repository.NewAdminRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	gameRepo := repository.NewGameRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	paymentRepo := repository.NewPaymentMethodRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	newsletterRepo := repository.NewNewsletterRepository(db)

	h := New(&provider.Container{
		Config:              cfg,
		QueueClient:         notifier,
		AuthzService:        authzService,
		AuthService:         service.NewAuthService(cfg, adminRepo, customerRepo, newsletterRepo, notifier),
		ProductAdminService: service.NewProductAdminService(productRepo, categoryRepo, gameRepo, setupFee),
		CategoryService:     service.NewCategoryService(categoryRepo, productRepo),
		GameService:         service.NewGameService(gameRepo),
		OrderService: service.NewOrderService(service.OrderServiceOptions{
			CartRepo:    repository.NewCartRepository(db),
			OrderRepo:   orderRepo,
			PaymentRepo: paymentRepo,
			Notifier:    notifier,
			Rules:       service.NewPricingRules("150.00", "0", "0.05"),
		}),
		CustomerService:   service.NewCustomerService(customerRepo, orderRepo),
		ReviewService:     service.NewReviewService(reviewRepo, productRepo, orderRepo),
		NewsletterService: service.NewNewsletterService(newsletterRepo, notifier),
		DashboardService:  service.NewDashboardService(repository.NewDashboardRepository(db), orderRepo),
		UploadService:     service.NewUploadService(&cfg.Upload),
	})
	return h, db
}

func newAdminEngine(h *Handler, identity *service.Identity) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if identity != nil {
			c.Set(constants.ContextKeyIdentity, identity)
		}
		c.Next()
	})
	r.POST("/admin/login", h.AdminLogin)
	r.GET("/admin/me", h.GetAdminMe)
	r.GET("/admin/dashboard", h.GetDashboard)
	r.GET("/admin/pcs", h.ListPCs)
	r.POST("/admin/pcs", h.CreatePC)
	r.GET("/admin/pcs/:id", h.GetPC)
	r.PUT("/admin/pcs/:id", h.UpdatePC)
	r.DELETE("/admin/pcs/:id", h.DeletePC)
	r.PUT("/admin/pcs/:id/games/:game_id", h.SetPCGame)
	r.POST("/admin/categories", h.CreateCategory)
	r.DELETE("/admin/categories/:id", h.DeleteCategory)
	r.POST("/admin/games", h.CreateGame)
	r.GET("/admin/orders", h.ListOrders)
	r.PATCH("/admin/orders/:id/status", h.UpdateOrderStatus)
	r.PATCH("/admin/payment-methods/:id", h.TogglePaymentMethod)
	r.PATCH("/admin/reviews/:id", h.ModerateReview)
	r.POST("/admin/upload-image", h.UploadImage)
	r.POST("/admin/delete-image", h.DeleteImage)
	return r
}

func doAdminJSON(t *testing.T, r http.Handler, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var payload []byte
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		payload = raw
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

func seedAdmin(t *testing.T, db *gorm.DB, username, role string) *models.Admin {
	t.Helper()
	hash, err := service.HashPassword("admin-secret")
	require.NoError(t, err)
	admin := &models.Admin{Username: username, PasswordHash: hash, Role: role, Active: true}
	require.NoError(t, db.Create(admin).Error)
	return admin
}

func seedOrder(t *testing.T, db *gorm.DB, number string) *models.Order {
	t.Helper()
	order := &models.Order{
		OrderNumber:    number,
		CustomerName:   "Ana",
		CustomerEmail:  "ana@example.com",
		ShippingCEP:    "01310-100",
		ShippingStreet: "Av. Paulista",
		ShippingCity:   "São Paulo",
		ShippingState:  "SP",
		Items:          models.OrderLines{},
		Subtotal:       models.MustMoney("1000"),
		Total:          models.MustMoney("1000"),
		PaymentMethod:  constants.PaymentMethodCard,
		PaymentStatus:  constants.PaymentStatusPending,
		OrderStatus:    constants.OrderStatusPending,
	}
	require.NoError(t, db.Create(order).Error)
	return order
}

func adminIdentity(admin *models.Admin) *service.Identity {
	return &service.Identity{Kind: service.KindAdmin, ID: admin.ID, Role: admin.Role}
}

func TestAdminLogin(t *testing.T) {
	h, db := setupAdminHandlerTest(t)
	seedAdmin(t, db, "root", constants.AdminRoleAdmin)
	r := newAdminEngine(h, nil)

	w, env := doAdminJSON(t, r, http.MethodPost, "/admin/login", map[string]string{"username": "root", "password": "admin-secret"})
	require.Equal(t, http.StatusOK, w.Code)
	var data struct {
		Token    string           `json:"token"`
		Identity service.Identity `json:"identity"`
		Redirect string           `json:"redirect"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.NotEmpty(t, data.Token)
	assert.Equal(t, service.KindAdmin, data.Identity.Kind)
	assert.Equal(t, "/admin/dashboard", data.Redirect)

	w, _ = doAdminJSON(t, r, http.MethodPost, "/admin/login", map[string]string{"username": "root", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetAdminMeRequiresAdminIdentity(t *testing.T) {
	h, db := setupAdminHandlerTest(t)
	admin := seedAdmin(t, db, "editor", constants.AdminRoleEditor)

	w, _ := doAdminJSON(t, newAdminEngine(h, &service.Identity{Kind: service.KindCustomer, ID: 1}), http.MethodGet, "/admin/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, env := doAdminJSON(t, newAdminEngine(h, adminIdentity(admin)), http.MethodGet, "/admin/me", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var data struct {
		Admin    models.Admin   `json:"admin"`
		Policies []authz.Policy `json:"policies"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "editor", data.Admin.Username)
	assert.NotEmpty(t, data.Policies)
}

func TestPCCrudWithGames(t *testing.T) {
	h, db := setupAdminHandlerTest(t)
	admin := seedAdmin(t, db, "root", constants.AdminRoleAdmin)
	r := newAdminEngine(h, adminIdentity(admin))

	w, env := doAdminJSON(t, r, http.MethodPost, "/admin/categories", map[string]interface{}{"name": "Gamer Pro"})
	require.Equal(t, http.StatusOK, w.Code, string(env.Data))
	var category models.Category
	require.NoError(t, json.Unmarshal(env.Data, &category))
	assert.Equal(t, "gamer-pro", category.Slug)

	w, env = doAdminJSON(t, r, http.MethodPost, "/admin/pcs", map[string]interface{}{
		"category_id":     category.ID,
		"name":            "Dragon Neon RTX",
		"price":           "7999.90",
		"price_old":       "8999.90",
		"gpu":             "RTX 4070",
		"graffiti_artist": "Kobra",
	})
	require.Equal(t, http.StatusOK, w.Code, string(env.Data))
	var product models.Product
	require.NoError(t, json.Unmarshal(env.Data, &product))
	assert.Equal(t, "dragon-neon-rtx", product.Slug)
	assert.Equal(t, "7999.90", product.Price.StringFixed(2))
	assert.Equal(t, "150.00", product.SetupPrice.StringFixed(2))

	w, env = doAdminJSON(t, r, http.MethodPost, "/admin/games", map[string]interface{}{"name": "Cyberpunk 2077", "genre": "RPG"})
	require.Equal(t, http.StatusOK, w.Code, string(env.Data))
	var game models.Game
	require.NoError(t, json.Unmarshal(env.Data, &game))

	path := fmt.Sprintf("/admin/pcs/%d/games/%d", product.ID, game.ID)
	w, _ = doAdminJSON(t, r, http.MethodPut, path, map[string]interface{}{"performance": 92, "fps_avg": 110, "resolution": "1440p"})
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = doAdminJSON(t, r, http.MethodDelete, fmt.Sprintf("/admin/categories/%d", category.ID), nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w, _ = doAdminJSON(t, r, http.MethodDelete, fmt.Sprintf("/admin/pcs/%d", product.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var links int64
	require.NoError(t, db.Model(&models.ProductGame{}).Where("pc_id = ?", product.ID).Count(&links).Error)
	assert.Zero(t, links)

	w, env = doAdminJSON(t, r, http.MethodGet, fmt.Sprintf("/admin/pcs/%d", product.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	var data map[string]string
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "/admin/pcs", data["redirect"])

	w, _ = doAdminJSON(t, r, http.MethodDelete, fmt.Sprintf("/admin/categories/%d", category.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreatePCRequiresName(t *testing.T) {
	h, db := setupAdminHandlerTest(t)
	admin := seedAdmin(t, db, "root", constants.AdminRoleAdmin)
	r := newAdminEngine(h, adminIdentity(admin))

	w, env := doAdminJSON(t, r, http.MethodPost, "/admin/pcs", map[string]interface{}{"price": "100"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	var data struct {
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Contains(t, data.Fields, "name")
}

func TestUpdateOrderStatusFollowsStateMachine(t *testing.T) {
	h, db := setupAdminHandlerTest(t)
	admin := seedAdmin(t, db, "support", constants.AdminRoleSupport)
	r := newAdminEngine(h, adminIdentity(admin))
	order := seedOrder(t, db, "PC20261016000001")
	path := fmt.Sprintf("/admin/orders/%d/status", order.ID)

	w, _ := doAdminJSON(t, r, http.MethodPatch, path, map[string]interface{}{"order_status": constants.OrderStatusDelivered})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	tracking := "BR123456789"
	w, env := doAdminJSON(t, r, http.MethodPatch, path, map[string]interface{}{
		"order_status":   constants.OrderStatusProcessing,
		"payment_status": constants.PaymentStatusCompleted,
		"tracking_code":  tracking,
	})
	require.Equal(t, http.StatusOK, w.Code, string(env.Data))
	var updated models.Order
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, constants.OrderStatusProcessing, updated.OrderStatus)
	assert.Equal(t, constants.PaymentStatusCompleted, updated.PaymentStatus)
	assert.Equal(t, tracking, updated.TrackingCode)
	assert.NotNil(t, updated.PaidAt)

	w, env = doAdminJSON(t, r, http.MethodGet, "/admin/orders?status=processing", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var orders []models.Order
	require.NoError(t, json.Unmarshal(env.Data, &orders))
	require.Len(t, orders, 1)

	w, _ = doAdminJSON(t, r, http.MethodPatch, "/admin/orders/999/status", map[string]interface{}{"order_status": "processing"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTogglePaymentMethod(t *testing.T) {
	h, db := setupAdminHandlerTest(t)
	admin := seedAdmin(t, db, "root", constants.AdminRoleAdmin)
	r := newAdminEngine(h, adminIdentity(admin))

	var boleto models.PaymentMethod
	require.NoError(t, db.Where("code = ?", constants.PaymentMethodBoleto).First(&boleto).Error)

	w, _ := doAdminJSON(t, r, http.MethodPatch, fmt.Sprintf("/admin/payment-methods/%d", boleto.ID), map[string]interface{}{"active": false})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, db.First(&boleto, boleto.ID).Error)
	assert.False(t, boleto.Active)

	w, _ = doAdminJSON(t, r, http.MethodPatch, fmt.Sprintf("/admin/payment-methods/%d", boleto.ID), map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestModerateReviewRejectsUnknownStatus(t *testing.T) {
	h, db := setupAdminHandlerTest(t)
	admin := seedAdmin(t, db, "root", constants.AdminRoleAdmin)
	r := newAdminEngine(h, adminIdentity(admin))

	w, _ := doAdminJSON(t, r, http.MethodPatch, "/admin/reviews/1", map[string]interface{}{"status": "hidden"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = doAdminJSON(t, r, http.MethodPatch, "/admin/reviews/1", map[string]interface{}{"status": "approved"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUploadAndDeleteImage(t *testing.T) {
	h, db := setupAdminHandlerTest(t)
	admin := seedAdmin(t, db, "root", constants.AdminRoleAdmin)
	r := newAdminEngine(h, adminIdentity(admin))

	var img bytes.Buffer
	require.NoError(t, png.Encode(&img, image.NewRGBA(image.Rect(0, 0, 32, 32))))
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "case.png")
	require.NoError(t, err)
	_, err = part.Write(img.Bytes())
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/admin/upload-image", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	var uploaded struct {
		Success  bool   `json:"success"`
		URL      string `json:"url"`
		Filename string `json:"filename"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &uploaded))
	assert.True(t, uploaded.Success)
	assert.Equal(t, "/uploads/pcs/"+uploaded.Filename, uploaded.URL)
	_, err = os.Stat(filepath.Join(h.Config.Upload.Dir, "pcs", uploaded.Filename))
	require.NoError(t, err)

	w, _ = doAdminJSON(t, r, http.MethodPost, "/admin/delete-image", map[string]string{"filename": uploaded.Filename})
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = doAdminJSON(t, r, http.MethodPost, "/admin/delete-image", map[string]string{"filename": uploaded.Filename})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDashboardOverview(t *testing.T) {
	h, db := setupAdminHandlerTest(t)
	admin := seedAdmin(t, db, "root", constants.AdminRoleAdmin)
	r := newAdminEngine(h, adminIdentity(admin))
	seedOrder(t, db, "PC20261016000002")

	w, env := doAdminJSON(t, r, http.MethodGet, "/admin/dashboard?refresh=1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var overview service.DashboardOverview
	require.NoError(t, json.Unmarshal(env.Data, &overview))
	assert.Equal(t, int64(1), overview.OrdersTotal)
}
