package service

import (
	"errors"
	"testing"

	"github.com/pixelcraft-pc/storefront/internal/models"
	"github.com/pixelcraft-pc/storefront/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func newProductAdminServiceForTest(db *gorm.DB) *ProductAdminService {
	return NewProductAdminService(
		repository.NewProductRepository(db),
		repository.NewCategoryRepository(db),
		repository.NewGameRepository(db),
		decimal.NewFromInt(150),
	)
}

func boolPtr(v bool) *bool {
	return &v
}

func TestProductAdminCreateGeneratesSlug(t *testing.T) {
	db := openServiceTestDB(t)
	svc := newProductAdminServiceForTest(db)

	product, err := svc.Create(ProductInput{Name: "PC Gamer Neon Pro", Price: decimal.RequireFromString("4999.90"), Active: boolPtr(false), InStock: boolPtr(false)})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if product.Slug != "pc-gamer-neon-pro" {
		t.Fatalf("unexpected slug: %s", product.Slug)
	}
	var stored models.Product
	if err := db.First(&stored, product.ID).Error; err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if stored.Active || stored.InStock {
		t.Fatalf("expected inactive and out of stock persisted, got active=%v in_stock=%v", stored.Active, stored.InStock)
	}
	if stored.SetupPrice.String() != "150.00" {
		t.Fatalf("expected default setup price, got %s", stored.SetupPrice)
	}

	if _, err := svc.Create(ProductInput{Name: "PC Gamer  Neon Pro!", Price: decimal.NewFromInt(1)}); !errors.Is(err, ErrSlugExists) {
		t.Fatalf("expected slug exists, got %v", err)
	}
	if _, err := svc.Create(ProductInput{Name: "Sem preço", Price: decimal.Zero}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	missing := uint(404)
	if _, err := svc.Create(ProductInput{Name: "Orfão", Price: decimal.NewFromInt(10), CategoryID: &missing}); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected category not found, got %v", err)
	}
}

func TestProductAdminRenameRegeneratesSlug(t *testing.T) {
	db := openServiceTestDB(t)
	svc := newProductAdminServiceForTest(db)
	product, err := svc.Create(ProductInput{Name: "Street Art One", Price: decimal.NewFromInt(3000)})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := svc.Update(product.ID, ProductInput{Name: "Street Art Two", Price: decimal.NewFromInt(3200)})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Slug != "street-art-two" || updated.Price.String() != "3200.00" {
		t.Fatalf("unexpected update result: %s %s", updated.Slug, updated.Price)
	}

	updated, err = svc.Update(product.ID, ProductInput{Name: "Street Art Two", Price: decimal.NewFromInt(3100)})
	if err != nil {
		t.Fatalf("update without rename failed: %v", err)
	}
	if updated.Slug != "street-art-two" {
		t.Fatalf("slug should be stable, got %s", updated.Slug)
	}

	if _, err := svc.Update(9999, ProductInput{Name: "x", Price: decimal.NewFromInt(1)}); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestProductAdminGamesAndDelete(t *testing.T) {
	db := openServiceTestDB(t)
	svc := newProductAdminServiceForTest(db)
	games := NewGameService(repository.NewGameRepository(db))

	product, err := svc.Create(ProductInput{Name: "Benchmark Beast", Price: decimal.NewFromInt(9000)})
	if err != nil {
		t.Fatalf("create pc failed: %v", err)
	}
	game, err := games.Create(GameInput{Name: "Cyberpunk 2077", Genre: "RPG"})
	if err != nil {
		t.Fatalf("create game failed: %v", err)
	}
	if game.Slug != "cyberpunk-2077" {
		t.Fatalf("unexpected game slug: %s", game.Slug)
	}

	if _, err := svc.SetGame(product.ID, ProductGameInput{GameID: game.ID, Performance: 101}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	link, err := svc.SetGame(product.ID, ProductGameInput{GameID: game.ID, Performance: 90, FPSAvg: 120})
	if err != nil {
		t.Fatalf("set game failed: %v", err)
	}
	if link.Resolution != "1080p" {
		t.Fatalf("expected default resolution, got %s", link.Resolution)
	}
	if _, err := svc.SetGame(product.ID, ProductGameInput{GameID: game.ID, Performance: 95, FPSAvg: 140, Resolution: "1440p"}); err != nil {
		t.Fatalf("upsert game failed: %v", err)
	}
	if n := countRows(t, db, &models.ProductGame{}); n != 1 {
		t.Fatalf("expected one pc game link, got %d", n)
	}
	detail, err := svc.Get(product.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(detail.Games) != 1 || detail.Games[0].Performance != 95 {
		t.Fatalf("unexpected games: %+v", detail.Games)
	}

	if err := svc.Delete(product.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if n := countRows(t, db, &models.Product{}); n != 0 {
		t.Fatalf("expected pc removed, got %d", n)
	}
	if n := countRows(t, db, &models.ProductGame{}); n != 0 {
		t.Fatalf("expected pc game links removed, got %d", n)
	}
	if err := svc.RemoveGame(product.ID, game.ID); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("expected game link not found, got %v", err)
	}
}

func TestCategoryLifecycle(t *testing.T) {
	db := openServiceTestDB(t)
	svc := NewCategoryService(repository.NewCategoryRepository(db), repository.NewProductRepository(db))

	category, err := svc.Create(CategoryInput{Name: "Workstation", Active: boolPtr(false)})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if category.Slug != "workstation" {
		t.Fatalf("unexpected slug: %s", category.Slug)
	}
	var stored models.Category
	if err := db.First(&stored, category.ID).Error; err != nil || stored.Active {
		t.Fatalf("expected inactive category persisted: %+v %v", stored, err)
	}
	if _, err := svc.Create(CategoryInput{Name: "Outra", Slug: "Workstation"}); !errors.Is(err, ErrSlugExists) {
		t.Fatalf("expected slug exists, got %v", err)
	}

	pc := seedPC(t, db, "ws-1", "7000.00", true)
	if err := db.Model(pc).Update("category_id", category.ID).Error; err != nil {
		t.Fatalf("assign category failed: %v", err)
	}
	if err := svc.Delete(category.ID); !errors.Is(err, ErrCategoryInUse) {
		t.Fatalf("expected category in use, got %v", err)
	}
	if err := db.Delete(&models.Product{}, pc.ID).Error; err != nil {
		t.Fatalf("delete pc failed: %v", err)
	}
	if err := svc.Delete(category.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := svc.Delete(category.ID); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestNewsletterSubscribeIsIdempotent(t *testing.T) {
	db := openServiceTestDB(t)
	notifier := &recordingNotifier{}
	svc := NewNewsletterService(repository.NewNewsletterRepository(db), notifier)

	created, err := svc.Subscribe("News@Example.com", "", "en")
	if err != nil || !created {
		t.Fatalf("expected new subscription, got %v %v", created, err)
	}
	created, err = svc.Subscribe("news@example.com", "footer", "en")
	if err != nil || created {
		t.Fatalf("expected existing subscription, got %v %v", created, err)
	}
	if n := countRows(t, db, &models.NewsletterSubscriber{}); n != 1 {
		t.Fatalf("expected one subscriber, got %d", n)
	}
	if len(notifier.welcomes) != 1 {
		t.Fatalf("expected one welcome, got %d", len(notifier.welcomes))
	}
	if _, err := svc.Subscribe("not-an-email", "", "en"); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("expected invalid email, got %v", err)
	}
}

func TestCustomerChangePassword(t *testing.T) {
	db := openServiceTestDB(t)
	svc := NewCustomerService(repository.NewCustomerRepository(db), repository.NewOrderRepository(db))
	hash, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	customer := &models.Customer{Email: "pw@example.com", PasswordHash: hash, Name: "Pw"}
	if err := db.Create(customer).Error; err != nil {
		t.Fatalf("create customer failed: %v", err)
	}

	if err := svc.ChangePassword(customer.ID, "wrong", "newsecret"); !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("expected mismatch, got %v", err)
	}
	if err := svc.ChangePassword(customer.ID, "secret1", "123"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := svc.ChangePassword(customer.ID, "secret1", "newsecret"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}
	var stored models.Customer
	if err := db.First(&stored, customer.ID).Error; err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if VerifyPassword(stored.PasswordHash, "newsecret") != nil {
		t.Fatalf("new password not stored")
	}
	if stored.TokenVersion != 1 {
		t.Fatalf("expected token version bump, got %d", stored.TokenVersion)
	}

	if _, err := svc.UpdateProfile(customer.ID, ProfileInput{Name: " "}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
