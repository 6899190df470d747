package service

import (
	"context"
	"errors"
	"testing"

	"github.com/pixelcraft-pc/storefront/internal/config"
	"github.com/pixelcraft-pc/storefront/internal/constants"
	"github.com/pixelcraft-pc/storefront/internal/models"
	"github.com/pixelcraft-pc/storefront/internal/repository"

	"gorm.io/gorm"
)

func newAuthServiceForTest(t *testing.T) (*AuthService, *gorm.DB, *recordingNotifier) {
	t.Helper()
	db := openServiceTestDB(t)
	cfg := &config.Config{JWT: config.JWTConfig{SecretKey: "test-secret", AdminExpireHours: 2, ExpireHours: 24}}
	notifier := &recordingNotifier{}
	svc := NewAuthService(
		cfg,
		repository.NewAdminRepository(db),
		repository.NewCustomerRepository(db),
		repository.NewNewsletterRepository(db),
		notifier,
	)
	return svc, db, notifier
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, db, _ := newAuthServiceForTest(t)

	customer, result, err := svc.Register(RegisterInput{Name: "Ana", Email: "ana@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if customer.ID == 0 || result.Token == "" || result.Identity.Kind != KindCustomer {
		t.Fatalf("unexpected register result: %+v %+v", customer, result)
	}

	_, _, err = svc.Register(RegisterInput{Name: "Outra Ana", Email: " ANA@Example.com ", Password: "secret2"})
	if !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected email exists, got %v", err)
	}
	if n := countRows(t, db, &models.Customer{}); n != 1 {
		t.Fatalf("expected one customer row, got %d", n)
	}
}

func TestRegisterValidatesInput(t *testing.T) {
	svc, _, _ := newAuthServiceForTest(t)
	cases := []struct {
		name  string
		input RegisterInput
		want  error
	}{
		{name: "bad_email", input: RegisterInput{Name: "Ana", Email: "ana@", Password: "secret1"}, want: ErrInvalidEmail},
		{name: "no_tld", input: RegisterInput{Name: "Ana", Email: "ana@localhost", Password: "secret1"}, want: ErrInvalidEmail},
		{name: "short_password", input: RegisterInput{Name: "Ana", Email: "ana@example.com", Password: "123"}, want: ErrValidation},
		{name: "empty_name", input: RegisterInput{Name: "  ", Email: "ana@example.com", Password: "secret1"}, want: ErrValidation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, err := svc.Register(tc.input); !errors.Is(err, tc.want) {
				t.Fatalf("want %v got %v", tc.want, err)
			}
		})
	}
}

func TestRegisterWithNewsletterSubscribes(t *testing.T) {
	svc, db, notifier := newAuthServiceForTest(t)
	if _, _, err := svc.Register(RegisterInput{Name: "Bia", Email: "bia@example.com", Password: "secret1", Newsletter: true, Locale: "pt-BR"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	var sub models.NewsletterSubscriber
	if err := db.Where("email = ?", "bia@example.com").First(&sub).Error; err != nil {
		t.Fatalf("subscriber missing: %v", err)
	}
	if sub.Source != "register" {
		t.Fatalf("expected register source, got %s", sub.Source)
	}
	if len(notifier.welcomes) != 1 || notifier.welcomes[0].Locale != "pt-BR" {
		t.Fatalf("expected one welcome, got %+v", notifier.welcomes)
	}
}

func TestCustomerLoginAndLogout(t *testing.T) {
	svc, _, _ := newAuthServiceForTest(t)
	if _, _, err := svc.Register(RegisterInput{Name: "Caio", Email: "caio@example.com", Password: "secret1"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, err := svc.CustomerLogin("caio@example.com", "wrong-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	if _, err := svc.CustomerLogin("nobody@example.com", "secret1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials for unknown email, got %v", err)
	}

	result, err := svc.CustomerLogin("CAIO@example.com", "secret1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	identity, err := svc.ResolveIdentity(context.Background(), result.Token)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if !identity.IsCustomer() || identity.IsAdmin() {
		t.Fatalf("expected customer identity, got %+v", identity)
	}

	if err := svc.Logout(identity); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if _, err := svc.ResolveIdentity(context.Background(), result.Token); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected unauthorized after logout, got %v", err)
	}
}

func TestAdminLoginCarriesRole(t *testing.T) {
	svc, db, _ := newAuthServiceForTest(t)
	hash, err := HashPassword("admin123")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	admin := &models.Admin{Username: "editor", PasswordHash: hash, Role: constants.AdminRoleEditor, Active: true}
	if err := db.Create(admin).Error; err != nil {
		t.Fatalf("create admin failed: %v", err)
	}

	result, err := svc.AdminLogin("editor", "admin123")
	if err != nil {
		t.Fatalf("admin login failed: %v", err)
	}
	if result.Identity.Kind != KindAdmin || result.Identity.Role != constants.AdminRoleEditor {
		t.Fatalf("unexpected identity: %+v", result.Identity)
	}
	identity, err := svc.ResolveIdentity(context.Background(), result.Token)
	if err != nil || !identity.IsAdmin() || identity.Role != constants.AdminRoleEditor {
		t.Fatalf("unexpected resolved identity: %+v %v", identity, err)
	}

	if err := db.Model(admin).Update("active", false).Error; err != nil {
		t.Fatalf("disable admin failed: %v", err)
	}
	if _, err := svc.AdminLogin("editor", "admin123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected inactive admin rejected, got %v", err)
	}
	if _, err := svc.ResolveIdentity(context.Background(), result.Token); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected inactive admin token rejected, got %v", err)
	}
}

func TestResolveIdentityRejectsForeignTokens(t *testing.T) {
	svc, _, _ := newAuthServiceForTest(t)
	if _, err := svc.ResolveIdentity(context.Background(), "not-a-jwt"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}

	other := NewAuthService(&config.Config{JWT: config.JWTConfig{SecretKey: "other-secret"}}, nil, nil, nil, nil)
	token, _, err := other.GenerateToken(KindCustomer, 1, 0)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if _, err := svc.ResolveIdentity(context.Background(), token); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected unauthorized for foreign signature, got %v", err)
	}

	token, _, err = svc.GenerateToken(KindCustomer, 404, 0)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if _, err := svc.ResolveIdentity(context.Background(), token); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected unauthorized for missing account, got %v", err)
	}
}
