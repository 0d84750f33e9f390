package repository

import (
	"fmt"
	"strings"
	"testing"

	"github.com/destore-next/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupCustomerRepositoryTest(t *testing.T) *GormCustomerRepository {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Customer{}); err != nil {
		t.Fatalf("migrate customer failed: %v", err)
	}
	return NewCustomerRepository(db)
}

func TestGrantLoyalty(t *testing.T) {
	repo := setupCustomerRepositoryTest(t)

	customer := &models.Customer{Name: "Ben"}
	if err := repo.Create(customer); err != nil {
		t.Fatalf("create customer failed: %v", err)
	}

	affected, err := repo.GrantLoyalty(customer.ID)
	if err != nil {
		t.Fatalf("grant loyalty failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("affected want 1 got %d", affected)
	}

	reloaded, err := repo.GetByID(customer.ID)
	if err != nil {
		t.Fatalf("reload customer failed: %v", err)
	}
	if !reloaded.Loyal {
		t.Fatalf("customer should be loyal after grant")
	}
}

func TestGetByIDMissingCustomer(t *testing.T) {
	repo := setupCustomerRepositoryTest(t)

	customer, err := repo.GetByID(99)
	if err != nil {
		t.Fatalf("get missing customer failed: %v", err)
	}
	if customer != nil {
		t.Fatalf("missing customer should be nil")
	}
}
