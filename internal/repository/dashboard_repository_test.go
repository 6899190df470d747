package repository

import (
	"testing"

	"github.com/pixelcraft-pc/storefront/internal/constants"
	"github.com/pixelcraft-pc/storefront/internal/models"
)

func TestDashboardRevenueCountsOnlyCompletedPayments(t *testing.T) {
	db := openTestDB(t)
	repo := NewDashboardRepository(db)
	gamer := createCategory(t, db, "gamer")
	createPC(t, db, "on", "3000", gamer.ID, true)
	createPC(t, db, "off", "3000", gamer.ID, false)

	orders := []models.Order{
		{OrderNumber: "PC20260101000001", CustomerName: "A", CustomerEmail: "a@x.com", ShippingCEP: "01001000", ShippingStreet: "Rua", ShippingCity: "SP", ShippingState: "SP", Total: models.MustMoney("2849.91"), PaymentMethod: "pix", PaymentStatus: constants.PaymentStatusCompleted, OrderStatus: constants.OrderStatusProcessing},
		{OrderNumber: "PC20260101000002", CustomerName: "B", CustomerEmail: "b@x.com", ShippingCEP: "01001000", ShippingStreet: "Rua", ShippingCity: "SP", ShippingState: "SP", Total: models.MustMoney("1000.00"), PaymentMethod: "card", PaymentStatus: constants.PaymentStatusPending, OrderStatus: constants.OrderStatusPending},
	}
	if err := db.Create(&orders).Error; err != nil {
		t.Fatalf("create orders failed: %v", err)
	}
	if err := db.Create(&models.Customer{Email: "c@x.com", Name: "C", PasswordHash: "x"}).Error; err != nil {
		t.Fatalf("create customer failed: %v", err)
	}

	row, err := repo.GetOverview()
	if err != nil {
		t.Fatalf("overview failed: %v", err)
	}
	if row.ActiveProducts != 1 || row.OrdersTotal != 2 || row.Customers != 1 {
		t.Fatalf("unexpected counts: %+v", row)
	}
	if row.Revenue.String() != "2849.91" {
		t.Fatalf("unexpected revenue: %s", row.Revenue)
	}

	statuses, err := repo.CountOrdersByStatus()
	if err != nil || len(statuses) != 2 {
		t.Fatalf("unexpected status breakdown: %+v err=%v", statuses, err)
	}
}
