package repository

import (
	"fmt"
	"strings"
	"testing"

	"github.com/pixelcraft-pc/storefront/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return db
}

func createCategory(t *testing.T, db *gorm.DB, slug string) *models.Category {
	t.Helper()
	category := &models.Category{Name: strings.ToUpper(slug), Slug: slug, Active: true}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	return category
}

func createPC(t *testing.T, db *gorm.DB, slug, price string, categoryID uint, active bool) *models.Product {
	t.Helper()
	product := &models.Product{
		CategoryID: &categoryID,
		Name:       slug,
		Slug:       slug,
		Price:      models.MustMoney(price),
		SetupPrice: models.MustMoney("150"),
		Active:     true,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create pc failed: %v", err)
	}
	if !active {
		// gorm 对零值 bool 使用默认值，需显式更新
		if err := db.Model(product).Update("active", false).Error; err != nil {
			t.Fatalf("deactivate pc failed: %v", err)
		}
		product.Active = false
	}
	return product
}
