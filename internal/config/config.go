package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/pixelcraft-pc/storefront/internal/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 应用配置
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	Database  DatabaseConfig  `mapstructure:"database"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Queue     QueueConfig     `mapstructure:"queue"`
	Upload    UploadConfig    `mapstructure:"upload"`
	CORS      CORSConfig      `mapstructure:"cors"`
	Email     EmailConfig     `mapstructure:"email"`
	Captcha   CaptchaConfig   `mapstructure:"captcha"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Store     StoreConfig     `mapstructure:"store"`
}

// ServerConfig HTTP 服务配置
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug / release
}

// LogConfig 日志配置
type LogConfig struct {
	Dir        string `mapstructure:"dir"`
	Filename   string `mapstructure:"filename"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// ToLoggerOptions 转换为 logger 配置
func (c LogConfig) ToLoggerOptions() logger.Options {
	return logger.Options{
		Dir:        c.Dir,
		Filename:   c.Filename,
		MaxSizeMB:  c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
		MaxAgeDays: c.MaxAgeDays,
		Compress:   c.Compress,
	}
}

// DatabasePoolConfig 连接池配置
type DatabasePoolConfig struct {
	MaxOpenConns           int `mapstructure:"max_open_conns"`
	MaxIdleConns           int `mapstructure:"max_idle_conns"`
	ConnMaxLifetimeSeconds int `mapstructure:"conn_max_lifetime_seconds"`
	ConnMaxIdleTimeSeconds int `mapstructure:"conn_max_idle_time_seconds"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Driver string             `mapstructure:"driver"` // sqlite / postgres
	DSN    string             `mapstructure:"dsn"`
	Pool   DatabasePoolConfig `mapstructure:"pool"`
}

// JWTConfig 身份令牌配置，管理员与顾客共用同一签名密钥
type JWTConfig struct {
	SecretKey        string `mapstructure:"secret"`
	AdminExpireHours int    `mapstructure:"admin_expire_hours"`
	ExpireHours      int    `mapstructure:"expire_hours"`
}

// RedisConfig Redis 缓存配置
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

// QueueConfig 异步队列配置
type QueueConfig struct {
	Enabled     bool           `mapstructure:"enabled"`
	Host        string         `mapstructure:"host"`
	Port        int            `mapstructure:"port"`
	Password    string         `mapstructure:"password"`
	DB          int            `mapstructure:"db"`
	Concurrency int            `mapstructure:"concurrency"`
	Queues      map[string]int `mapstructure:"queues"`
}

// UploadConfig 图片上传配置
type UploadConfig struct {
	Dir               string   `mapstructure:"dir"`
	PublicPrefix      string   `mapstructure:"public_prefix"`
	MaxSize           int64    `mapstructure:"max_size"`
	AllowedExtensions []string `mapstructure:"allowed_extensions"`
	MaxWidth          int      `mapstructure:"max_width"`
	MaxHeight         int      `mapstructure:"max_height"`
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

// EmailConfig SMTP 配置
type EmailConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
	FromName string `mapstructure:"from_name"`
	UseSSL   bool   `mapstructure:"use_ssl"`
}

// CaptchaConfig 图片验证码配置
type CaptchaConfig struct {
	Scenes CaptchaSceneConfig `mapstructure:"scenes"`
	Image  CaptchaImageConfig `mapstructure:"image"`
}

// CaptchaSceneConfig 验证码场景开关，默认全部关闭
type CaptchaSceneConfig struct {
	Register      bool `mapstructure:"register"`
	GuestCheckout bool `mapstructure:"guest_checkout"`
	Newsletter    bool `mapstructure:"newsletter"`
}

// AnyEnabled 是否存在开启的场景
func (c CaptchaSceneConfig) AnyEnabled() bool {
	return c.Register || c.GuestCheckout || c.Newsletter
}

// CaptchaImageConfig 图片验证码参数
type CaptchaImageConfig struct {
	Length        int `mapstructure:"length"`
	Width         int `mapstructure:"width"`
	Height        int `mapstructure:"height"`
	NoiseCount    int `mapstructure:"noise_count"`
	ShowLine      int `mapstructure:"show_line"`
	ExpireSeconds int `mapstructure:"expire_seconds"`
	MaxStore      int `mapstructure:"max_store"`
}

// RateLimitConfig 公共接口限流配置
type RateLimitConfig struct {
	Search     RateLimitRuleConfig `mapstructure:"search"`
	Newsletter RateLimitRuleConfig `mapstructure:"newsletter"`
	AddToCart  RateLimitRuleConfig `mapstructure:"add_to_cart"`
}

// RateLimitRuleConfig 单条限流规则
type RateLimitRuleConfig struct {
	WindowSeconds int `mapstructure:"window_seconds"`
	MaxRequests   int `mapstructure:"max_requests"`
}

// StoreConfig 店铺业务参数
type StoreConfig struct {
	Name              string `mapstructure:"name"`
	OrderPrefix       string `mapstructure:"order_prefix"`
	SetupFee          string `mapstructure:"setup_fee"`
	ShippingFee       string `mapstructure:"shipping_fee"`
	PixDiscountRate   string `mapstructure:"pix_discount_rate"`
	FeaturedLimit     int    `mapstructure:"featured_limit"`
	RelatedLimit      int    `mapstructure:"related_limit"`
	ReviewLimit       int    `mapstructure:"review_limit"`
	SearchLimit       int    `mapstructure:"search_limit"`
	CartCookieName    string `mapstructure:"cart_cookie_name"`
	CartCookieMaxAge  int    `mapstructure:"cart_cookie_max_age"`
	CategoryCacheTTLS int    `mapstructure:"category_cache_ttl_seconds"`
	DefaultLocale     string `mapstructure:"default_locale"`
}

// Load 加载 .env 与 config.yml，环境变量优先
func Load() *Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warnw("dotenv_load_failed", "error", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("../")
	v.AddConfigPath("./etc")
	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // store.setup_fee -> STORE_SETUP_FEE

	if err := v.ReadInConfig(); err != nil {
		logger.Warnw("config_file_read_failed", "error", err, "fallback", "env_or_defaults")
	} else {
		logger.Infow("config_file_loaded", "file", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		logger.Errorw("config_unmarshal_failed", "error", err)
		panic(fmt.Errorf("配置解析失败: %w", err))
	}
	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("log.filename", "storefront.log")
	v.SetDefault("log.max_size_mb", 50)
	v.SetDefault("log.max_backups", 10)
	v.SetDefault("log.max_age_days", 14)
	v.SetDefault("log.compress", true)
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "./db/pixelcraft.db")
	v.SetDefault("database.pool.max_open_conns", 1)
	v.SetDefault("database.pool.max_idle_conns", 1)
	v.SetDefault("jwt.secret", "pixelcraft-change-me")
	v.SetDefault("jwt.admin_expire_hours", 12)
	v.SetDefault("jwt.expire_hours", 168)
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "127.0.0.1")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "pixelcraft")
	v.SetDefault("queue.enabled", false)
	v.SetDefault("queue.host", "127.0.0.1")
	v.SetDefault("queue.port", 6379)
	v.SetDefault("queue.db", 1)
	v.SetDefault("queue.concurrency", 5)
	v.SetDefault("queue.queues", map[string]int{"default": 5, "mail": 3})
	v.SetDefault("upload.dir", "./uploads")
	v.SetDefault("upload.public_prefix", "/uploads/pcs/")
	v.SetDefault("upload.max_size", 16<<20)
	v.SetDefault("upload.allowed_extensions", []string{".png", ".jpg", ".jpeg", ".gif", ".webp"})
	v.SetDefault("upload.max_width", 1920)
	v.SetDefault("upload.max_height", 1080)
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{
		"Content-Type",
		"Authorization",
		"Accept-Language",
		"X-Requested-With",
		"X-Cart-Session",
	})
	v.SetDefault("cors.allow_credentials", true)
	v.SetDefault("cors.max_age", 600)
	v.SetDefault("email.enabled", false)
	v.SetDefault("email.port", 587)
	v.SetDefault("email.from_name", "PixelCraft PC")
	v.SetDefault("captcha.image.length", 5)
	v.SetDefault("captcha.image.width", 240)
	v.SetDefault("captcha.image.height", 80)
	v.SetDefault("captcha.image.noise_count", 2)
	v.SetDefault("captcha.image.show_line", 2)
	v.SetDefault("captcha.image.expire_seconds", 300)
	v.SetDefault("captcha.image.max_store", 10240)
	v.SetDefault("rate_limit.search.window_seconds", 60)
	v.SetDefault("rate_limit.search.max_requests", 60)
	v.SetDefault("rate_limit.newsletter.window_seconds", 3600)
	v.SetDefault("rate_limit.newsletter.max_requests", 5)
	v.SetDefault("rate_limit.add_to_cart.window_seconds", 60)
	v.SetDefault("rate_limit.add_to_cart.max_requests", 120)
	v.SetDefault("store.name", "PixelCraft PC")
	v.SetDefault("store.order_prefix", "PC")
	v.SetDefault("store.setup_fee", "150.00")
	v.SetDefault("store.shipping_fee", "0")
	v.SetDefault("store.pix_discount_rate", "0.05")
	v.SetDefault("store.featured_limit", 8)
	v.SetDefault("store.related_limit", 4)
	v.SetDefault("store.review_limit", 10)
	v.SetDefault("store.search_limit", 10)
	v.SetDefault("store.cart_cookie_name", "pixelcraft_cart")
	v.SetDefault("store.cart_cookie_max_age", 30*24*3600)
	v.SetDefault("store.category_cache_ttl_seconds", 60)
	v.SetDefault("store.default_locale", "pt-BR")
}
