package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/pixelcraft-pc/storefront/internal/cache"
	"github.com/pixelcraft-pc/storefront/internal/config"
	"github.com/pixelcraft-pc/storefront/internal/logger"
	"github.com/pixelcraft-pc/storefront/internal/models"
	"github.com/pixelcraft-pc/storefront/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

// AuthService 管理员与顾客认证服务
type AuthService struct {
	cfg            *config.Config
	adminRepo      repository.AdminRepository
	customerRepo   repository.CustomerRepository
	newsletterRepo repository.NewsletterRepository
	notifier       Notifier
}

// NewAuthService 创建认证服务实例
func NewAuthService(cfg *config.Config, adminRepo repository.AdminRepository, customerRepo repository.CustomerRepository, newsletterRepo repository.NewsletterRepository, notifier Notifier) *AuthService {
	return &AuthService{
		cfg:            cfg,
		adminRepo:      adminRepo,
		customerRepo:   customerRepo,
		newsletterRepo: newsletterRepo,
		notifier:       notifier,
	}
}

// HashPassword 使用 bcrypt 加密密码
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword 验证密码
func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// IdentityClaims JWT 声明，kind 区分管理员与顾客
type IdentityClaims struct {
	Kind         IdentityKind `json:"kind"`
	ID           uint         `json:"id"`
	TokenVersion uint64       `json:"token_version"`
	jwt.RegisteredClaims
}

// AuthResult 登录结果
type AuthResult struct {
	Identity  Identity  `json:"identity"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (s *AuthService) expireHours(kind IdentityKind) int {
	hours := s.cfg.JWT.ExpireHours
	if kind == KindAdmin {
		hours = s.cfg.JWT.AdminExpireHours
	}
	if hours <= 0 {
		hours = 24
	}
	return hours
}

// GenerateToken 签发身份令牌
func (s *AuthService) GenerateToken(kind IdentityKind, id uint, tokenVersion uint64) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(time.Duration(s.expireHours(kind)) * time.Hour)
	claims := IdentityClaims{
		Kind:         kind,
		ID:           id,
		TokenVersion: tokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.JWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseToken 解析身份令牌
func (s *AuthService) ParseToken(tokenString string) (*IdentityClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := &IdentityClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWT.SecretKey), nil
	})
	if err != nil {
		return nil, ErrUnauthorized
	}
	if !token.Valid || claims.ID == 0 {
		return nil, ErrUnauthorized
	}
	if claims.Kind != KindAdmin && claims.Kind != KindCustomer {
		return nil, ErrUnauthorized
	}
	return claims, nil
}

// AdminLogin 管理员登录
func (s *AuthService) AdminLogin(username, password string) (*AuthResult, error) {
	admin, err := s.adminRepo.GetByUsername(strings.TrimSpace(username))
	if err != nil {
		return nil, persistenceError("load admin", err)
	}
	if admin == nil || !admin.Active {
		return nil, ErrInvalidCredentials
	}
	if err := VerifyPassword(admin.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.GenerateToken(KindAdmin, admin.ID, admin.TokenVersion)
	if err != nil {
		return nil, err
	}
	if err := s.adminRepo.TouchLogin(admin.ID, time.Now()); err != nil {
		logger.Warnw("admin_touch_login_failed", "admin_id", admin.ID, "error", err)
	}
	_ = cache.SetIdentityState(context.Background(), adminState(admin))
	logger.Infow("admin_login", "admin_id", admin.ID, "role", admin.Role)

	return &AuthResult{
		Identity:  Identity{Kind: KindAdmin, ID: admin.ID, Role: admin.Role},
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// CustomerLogin 顾客登录
func (s *AuthService) CustomerLogin(email, password string) (*AuthResult, error) {
	customer, err := s.customerRepo.GetByEmail(normalizeEmail(email))
	if err != nil {
		return nil, persistenceError("load customer", err)
	}
	if customer == nil {
		return nil, ErrInvalidCredentials
	}
	if err := VerifyPassword(customer.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.issueCustomer(customer)
}

func (s *AuthService) issueCustomer(customer *models.Customer) (*AuthResult, error) {
	token, expiresAt, err := s.GenerateToken(KindCustomer, customer.ID, customer.TokenVersion)
	if err != nil {
		return nil, err
	}
	if err := s.customerRepo.TouchLogin(customer.ID, time.Now()); err != nil {
		logger.Warnw("customer_touch_login_failed", "customer_id", customer.ID, "error", err)
	}
	_ = cache.SetIdentityState(context.Background(), customerState(customer))
	return &AuthResult{
		Identity:  Identity{Kind: KindCustomer, ID: customer.ID},
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// RegisterInput 注册参数
type RegisterInput struct {
	Name       string
	Email      string
	Password   string
	Phone      string
	Newsletter bool
	Locale     string
}

// Register 注册顾客并直接登录；邮箱已存在时不创建第二条记录
func (s *AuthService) Register(input RegisterInput) (*models.Customer, *AuthResult, error) {
	email := normalizeEmail(input.Email)
	if !isValidEmail(email) {
		return nil, nil, ErrInvalidEmail
	}
	name := strings.TrimSpace(input.Name)
	if name == "" || len(input.Password) < minPasswordLength {
		return nil, nil, ErrValidation
	}

	existing, err := s.customerRepo.GetByEmail(email)
	if err != nil {
		return nil, nil, persistenceError("load customer", err)
	}
	if existing != nil {
		return nil, nil, ErrEmailExists
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return nil, nil, err
	}
	customer := &models.Customer{
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		Phone:        strings.TrimSpace(input.Phone),
		Newsletter:   input.Newsletter,
	}
	if err := s.customerRepo.Create(customer); err != nil {
		// 并发注册同一邮箱时由唯一索引拦截
		if again, lookupErr := s.customerRepo.GetByEmail(email); lookupErr == nil && again != nil {
			return nil, nil, ErrEmailExists
		}
		return nil, nil, persistenceError("create customer", err)
	}
	logger.Infow("customer_registered", "customer_id", customer.ID)

	if input.Newsletter && s.newsletterRepo != nil {
		created, err := s.newsletterRepo.Subscribe(&models.NewsletterSubscriber{Email: email, Source: "register", Active: true})
		if err != nil {
			logger.Warnw("register_newsletter_subscribe_failed", "customer_id", customer.ID, "error", err)
		} else if created {
			notifyNewsletterWelcome(s.notifier, email, input.Locale)
		}
	}

	result, err := s.issueCustomer(customer)
	if err != nil {
		return nil, nil, err
	}
	return customer, result, nil
}

// Logout 递增 token_version 使已签发令牌失效
func (s *AuthService) Logout(identity *Identity) error {
	if identity == nil || identity.ID == 0 {
		return nil
	}
	var err error
	switch identity.Kind {
	case KindAdmin:
		err = s.adminRepo.BumpTokenVersion(identity.ID)
	case KindCustomer:
		err = s.customerRepo.BumpTokenVersion(identity.ID)
	default:
		return nil
	}
	if err != nil {
		return persistenceError("bump token version", err)
	}
	_ = cache.DelIdentityState(context.Background(), string(identity.Kind), identity.ID)
	return nil
}

// ResolveIdentity 校验令牌并确认账号状态与 token_version，优先读取缓存快照
func (s *AuthService) ResolveIdentity(ctx context.Context, tokenString string) (*Identity, error) {
	claims, err := s.ParseToken(tokenString)
	if err != nil {
		return nil, err
	}
	state, hit, cacheErr := cache.GetIdentityState(ctx, string(claims.Kind), claims.ID)
	if cacheErr != nil {
		logger.Warnw("identity_state_cache_read_failed", "kind", claims.Kind, "id", claims.ID, "error", cacheErr)
	}
	if !hit || state == nil {
		state, err = s.loadIdentityState(claims.Kind, claims.ID)
		if err != nil {
			return nil, err
		}
		if state == nil {
			return nil, ErrUnauthorized
		}
		_ = cache.SetIdentityState(ctx, state)
	}
	if !state.Active || state.TokenVersion != claims.TokenVersion {
		return nil, ErrUnauthorized
	}
	return &Identity{Kind: claims.Kind, ID: claims.ID, Role: state.Role}, nil
}

func (s *AuthService) loadIdentityState(kind IdentityKind, id uint) (*cache.IdentityState, error) {
	switch kind {
	case KindAdmin:
		admin, err := s.adminRepo.GetByID(id)
		if err != nil {
			return nil, persistenceError("load admin", err)
		}
		if admin == nil {
			return nil, nil
		}
		return adminState(admin), nil
	case KindCustomer:
		customer, err := s.customerRepo.GetByID(id)
		if err != nil {
			return nil, persistenceError("load customer", err)
		}
		if customer == nil {
			return nil, nil
		}
		return customerState(customer), nil
	}
	return nil, nil
}

// CurrentAdmin 当前管理员
func (s *AuthService) CurrentAdmin(identity *Identity) (*models.Admin, error) {
	if !identity.IsAdmin() {
		return nil, ErrUnauthorized
	}
	admin, err := s.adminRepo.GetByID(identity.ID)
	if err != nil {
		return nil, persistenceError("load admin", err)
	}
	if admin == nil {
		return nil, ErrUnauthorized
	}
	return admin, nil
}

func adminState(admin *models.Admin) *cache.IdentityState {
	return &cache.IdentityState{
		Kind:         string(KindAdmin),
		ID:           admin.ID,
		Role:         admin.Role,
		Active:       admin.Active,
		TokenVersion: admin.TokenVersion,
	}
}

func customerState(customer *models.Customer) *cache.IdentityState {
	return &cache.IdentityState{
		Kind:         string(KindCustomer),
		ID:           customer.ID,
		Active:       true,
		TokenVersion: customer.TokenVersion,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isValidEmail(email string) bool {
	if email == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return false
	}
	return addr.Address == email && strings.Contains(email[strings.LastIndex(email, "@")+1:], ".")
}

// IsAuthError 是否为认证类错误
func IsAuthError(err error) bool {
	return errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrInvalidCredentials)
}
