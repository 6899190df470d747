package constants

// 身份类型
const (
	IdentityAdmin    = "admin"
	IdentityCustomer = "customer"
)

// 订单履约状态
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// 支付状态（支付为模拟流程，由后台人工确认）
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
	PaymentStatusRefunded  = "refunded"
)

// 支付方式编码
const (
	PaymentMethodPix    = "pix"
	PaymentMethodCard   = "card"
	PaymentMethodBoleto = "boleto"
)

// 目录排序
const (
	SortNewest    = "newest"
	SortPriceLow  = "price_low"
	SortPriceHigh = "price_high"
	SortPopular   = "popular"
)

// 评价审核状态
const (
	ReviewStatusPending  = "pending"
	ReviewStatusApproved = "approved"
	ReviewStatusRejected = "rejected"
)

// 管理员角色
const (
	AdminRoleAdmin   = "admin"
	AdminRoleEditor  = "editor"
	AdminRoleSupport = "support"
)

// 验证码场景
const (
	CaptchaSceneRegister      = "register"
	CaptchaSceneGuestCheckout = "guest_checkout"
	CaptchaSceneNewsletter    = "newsletter"
)

// 上下文键
const (
	ContextKeyCartRef   = "cart_ref"
	ContextKeyIdentity  = "identity"
	ContextKeyRequestID = "request_id"
	ContextKeyLocale    = "locale"
)

// HeaderCartSession 非浏览器客户端携带购物车会话的请求头
const HeaderCartSession = "X-Cart-Session"

// CookieAuthToken 浏览器端登录令牌 Cookie
const CookieAuthToken = "pixelcraft_token"

// 异步任务与队列
const (
	QueueDefault = "default"
	QueueMail    = "mail"

	TaskOrderConfirmationEmail = "mail:order_confirmation"
	TaskOrderStatusEmail       = "mail:order_status"
	TaskNewsletterWelcomeEmail = "mail:newsletter_welcome"
)
