package provider

import (
	"time"

	"github.com/pixelcraft-pc/storefront/internal/authz"
	"github.com/pixelcraft-pc/storefront/internal/cache"
	"github.com/pixelcraft-pc/storefront/internal/config"
	"github.com/pixelcraft-pc/storefront/internal/logger"
	"github.com/pixelcraft-pc/storefront/internal/models"
	"github.com/pixelcraft-pc/storefront/internal/queue"
	"github.com/pixelcraft-pc/storefront/internal/repository"
	"github.com/pixelcraft-pc/storefront/internal/service"

	"gorm.io/gorm"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	AdminRepo         repository.AdminRepository
	CustomerRepo      repository.CustomerRepository
	CategoryRepo      repository.CategoryRepository
	ProductRepo       repository.ProductRepository
	GameRepo          repository.GameRepository
	CartRepo          repository.CartRepository
	OrderRepo         repository.OrderRepository
	PaymentMethodRepo repository.PaymentMethodRepository
	ReviewRepo        repository.ReviewRepository
	NewsletterRepo    repository.NewsletterRepository
	DashboardRepo     repository.DashboardRepository
	AuditLogRepo      repository.AdminAuditLogRepository

	// Services
	AuthzService        *authz.Service
	AuthService         *service.AuthService
	CatalogService      *service.CatalogService
	CartService         *service.CartService
	OrderService        *service.OrderService
	CustomerService     *service.CustomerService
	ProductAdminService *service.ProductAdminService
	CategoryService     *service.CategoryService
	GameService         *service.GameService
	ReviewService       *service.ReviewService
	NewsletterService   *service.NewsletterService
	DashboardService    *service.DashboardService
	UploadService       *service.UploadService
	EmailService        *service.EmailService
	CaptchaService      *service.CaptchaService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 未启用队列时客户端投递为空操作
	queueClient := queue.NewClient(&cfg.Queue)

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}
	c.initRepositories(models.DB)
	c.initServices(models.DB)
	return c
}

func (c *Container) initRepositories(db *gorm.DB) {
	c.AdminRepo = repository.NewAdminRepository(db)
	c.CustomerRepo = repository.NewCustomerRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.GameRepo = repository.NewGameRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.PaymentMethodRepo = repository.NewPaymentMethodRepository(db)
	c.ReviewRepo = repository.NewReviewRepository(db)
	c.NewsletterRepo = repository.NewNewsletterRepository(db)
	c.DashboardRepo = repository.NewDashboardRepository(db)
	c.AuditLogRepo = repository.NewAdminAuditLogRepository(db)
}

func (c *Container) initServices(db *gorm.DB) {
	authzService, err := authz.NewService(db)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	store := c.Config.Store
	rules := service.NewPricingRules(store.SetupFee, store.ShippingFee, store.PixDiscountRate)

	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.UploadService = service.NewUploadService(&c.Config.Upload)
	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo, c.CustomerRepo, c.NewsletterRepo, c.QueueClient)
	c.CatalogService = service.NewCatalogService(c.ProductRepo, c.CategoryRepo, c.GameRepo, c.ReviewRepo, service.CatalogLimits{
		Featured:    store.FeaturedLimit,
		Related:     store.RelatedLimit,
		Reviews:     store.ReviewLimit,
		Search:      store.SearchLimit,
		CategoryTTL: time.Duration(store.CategoryCacheTTLS) * time.Second,
		FeaturedTTL: time.Duration(store.CategoryCacheTTLS) * time.Second,
	})
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo)
	c.OrderService = service.NewOrderService(service.OrderServiceOptions{
		CartRepo:    c.CartRepo,
		OrderRepo:   c.OrderRepo,
		PaymentRepo: c.PaymentMethodRepo,
		Notifier:    c.QueueClient,
		Rules:       rules,
		Prefix:      store.OrderPrefix,
	})
	c.CustomerService = service.NewCustomerService(c.CustomerRepo, c.OrderRepo)
	c.ProductAdminService = service.NewProductAdminService(c.ProductRepo, c.CategoryRepo, c.GameRepo, rules.SetupFee)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo, c.ProductRepo)
	c.GameService = service.NewGameService(c.GameRepo)
	c.ReviewService = service.NewReviewService(c.ReviewRepo, c.ProductRepo, c.OrderRepo)
	c.NewsletterService = service.NewNewsletterService(c.NewsletterRepo, c.QueueClient)
	c.DashboardService = service.NewDashboardService(c.DashboardRepo, c.OrderRepo)
}
