package router

import (
	"net/http"
	"sort"
	"strings"

	"github.com/pixelcraft-pc/storefront/internal/authz"
	"github.com/pixelcraft-pc/storefront/internal/cache"
	"github.com/pixelcraft-pc/storefront/internal/config"
	adminhandlers "github.com/pixelcraft-pc/storefront/internal/http/handlers/admin"
	publichandlers "github.com/pixelcraft-pc/storefront/internal/http/handlers/public"
	"github.com/pixelcraft-pc/storefront/internal/http/response"
	"github.com/pixelcraft-pc/storefront/internal/http/validation"
	"github.com/pixelcraft-pc/storefront/internal/logger"
	"github.com/pixelcraft-pc/storefront/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	validation.Register()
	r := gin.New()

	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisClient := cache.Client()
	searchRule := NewRateLimitRule("search", cfg.RateLimit.Search)
	newsletterRule := NewRateLimitRule("newsletter", cfg.RateLimit.Newsletter)
	addToCartRule := NewRateLimitRule("add_to_cart", cfg.RateLimit.AddToCart)

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))
	r.Use(LocaleMiddleware())

	uploadDir := strings.TrimSpace(cfg.Upload.Dir)
	if uploadDir == "" {
		uploadDir = "./uploads"
	}
	r.Static("/uploads", uploadDir)

	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// 前台：购物车会话与身份解析对所有店面请求生效
	store := r.Group("")
	store.Use(CartSessionMiddleware(cfg.Store), IdentityMiddleware(c.AuthService))
	{
		store.GET("/", publicHandler.Home)
		store.GET("/pcs", publicHandler.ListPCs)
		store.GET("/pc/:slug", publicHandler.GetPC)
		store.GET("/categories", publicHandler.ListCategories)

		store.GET("/cart", publicHandler.GetCart)
		store.POST("/cart", publicHandler.UpdateCart)
		store.POST("/add-to-cart", RateLimitMiddleware(redisClient, addToCartRule, KeyByCartSession), publicHandler.AddToCart)
		store.POST("/cart/remove", publicHandler.RemoveFromCart)

		store.GET("/checkout", publicHandler.Checkout)
		store.POST("/process-order", publicHandler.ProcessOrder)

		store.POST("/login", publicHandler.CustomerLogin)
		store.POST("/register", publicHandler.CustomerRegister)
		store.POST("/logout", publicHandler.Logout)

		account := store.Group("/minha-conta")
		account.Use(RequireCustomer())
		{
			account.GET("/perfil", publicHandler.GetProfile)
			account.PUT("/perfil", publicHandler.UpdateProfile)
			account.PUT("/senha", publicHandler.ChangePassword)
			account.GET("/pedidos", publicHandler.ListMyOrders)
			account.GET("/pedidos/:order_number", publicHandler.GetMyOrder)
			account.POST("/avaliacoes", publicHandler.SubmitReview)
		}

		api := store.Group("/api")
		{
			api.GET("/search", RateLimitMiddleware(redisClient, searchRule, KeyByIP), publicHandler.Search)
			api.POST("/newsletter", RateLimitMiddleware(redisClient, newsletterRule, KeyByIPAndJSONField("email")), publicHandler.SubscribeNewsletter)
			api.GET("/captcha", publicHandler.GetImageCaptcha)
		}
	}

	// 后台
	admin := r.Group("/admin")
	admin.Use(IdentityMiddleware(c.AuthService))
	{
		admin.POST("/login", adminHandler.AdminLogin)

		authorized := admin.Group("")
		authorized.Use(RequireAdmin(c.AuthzService), AdminAuditMiddleware(c.AuditLogRepo))
		{
			authorized.POST("/logout", adminHandler.AdminLogout)
			authorized.GET("/me", adminHandler.GetAdminMe)
			authorized.GET("/roles", adminHandler.ListRoles)
			authorized.GET("/permissions", func(ctx *gin.Context) {
				response.Success(ctx, buildAdminPermissionCatalog(r))
			})
			authorized.GET("/dashboard", adminHandler.GetDashboard)
			authorized.GET("/audit-logs", adminHandler.ListAuditLogs)

			// 整机
			authorized.GET("/pcs", adminHandler.ListPCs)
			authorized.GET("/pcs/:id", adminHandler.GetPC)
			authorized.POST("/pcs", adminHandler.CreatePC)
			authorized.PUT("/pcs/:id", adminHandler.UpdatePC)
			authorized.DELETE("/pcs/:id", adminHandler.DeletePC)
			authorized.PUT("/pcs/:id/games/:game_id", adminHandler.SetPCGame)
			authorized.DELETE("/pcs/:id/games/:game_id", adminHandler.RemovePCGame)

			// 分类与游戏
			authorized.GET("/categories", adminHandler.ListCategories)
			authorized.POST("/categories", adminHandler.CreateCategory)
			authorized.PUT("/categories/:id", adminHandler.UpdateCategory)
			authorized.DELETE("/categories/:id", adminHandler.DeleteCategory)
			authorized.GET("/games", adminHandler.ListGames)
			authorized.POST("/games", adminHandler.CreateGame)
			authorized.PUT("/games/:id", adminHandler.UpdateGame)
			authorized.DELETE("/games/:id", adminHandler.DeleteGame)

			// 订单与支付方式
			authorized.GET("/orders", adminHandler.ListOrders)
			authorized.GET("/orders/:id", adminHandler.GetOrder)
			authorized.PATCH("/orders/:id/status", adminHandler.UpdateOrderStatus)
			authorized.GET("/payment-methods", adminHandler.ListPaymentMethods)
			authorized.PATCH("/payment-methods/:id", adminHandler.TogglePaymentMethod)

			// 顾客、评价与订阅
			authorized.GET("/customers", adminHandler.ListCustomers)
			authorized.GET("/customers/:id", adminHandler.GetCustomer)
			authorized.GET("/reviews", adminHandler.ListReviews)
			authorized.PATCH("/reviews/:id", adminHandler.ModerateReview)
			authorized.GET("/newsletter", adminHandler.ListNewsletterSubscribers)

			// 图片
			authorized.POST("/upload-image", adminHandler.UploadImage)
			authorized.POST("/delete-image", adminHandler.DeleteImage)
		}
	}

	return r
}

type adminPermissionCatalogItem struct {
	Module     string `json:"module"`
	Method     string `json:"method"`
	Object     string `json:"object"`
	Permission string `json:"permission"`
}

// buildAdminPermissionCatalog 从已注册路由生成后台权限目录
func buildAdminPermissionCatalog(engine *gin.Engine) []adminPermissionCatalogItem {
	if engine == nil {
		return []adminPermissionCatalogItem{}
	}

	routes := engine.Routes()
	seen := make(map[string]struct{}, len(routes))
	items := make([]adminPermissionCatalogItem, 0, len(routes))

	for _, item := range routes {
		method := strings.ToUpper(strings.TrimSpace(item.Method))
		if method == "" || method == http.MethodOptions || method == http.MethodHead {
			continue
		}
		if !strings.HasPrefix(item.Path, "/admin/") || item.Path == "/admin/login" {
			continue
		}
		object := authz.NormalizeObject(item.Path)
		permission := method + ":" + object
		if _, exists := seen[permission]; exists {
			continue
		}
		seen[permission] = struct{}{}
		items = append(items, adminPermissionCatalogItem{
			Module:     deriveAdminPermissionModule(object),
			Method:     method,
			Object:     object,
			Permission: permission,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Module == items[j].Module {
			if items[i].Object == items[j].Object {
				return items[i].Method < items[j].Method
			}
			return items[i].Object < items[j].Object
		}
		return items[i].Module < items[j].Module
	})

	return items
}

func deriveAdminPermissionModule(object string) string {
	segments := strings.Split(strings.Trim(strings.TrimSpace(object), "/"), "/")
	if len(segments) < 2 || segments[0] != "admin" {
		return "system"
	}
	switch segments[1] {
	case "me", "logout", "roles", "permissions", "dashboard", "audit-logs":
		return "system"
	case "upload-image", "delete-image":
		return "images"
	}
	return segments[1]
}
