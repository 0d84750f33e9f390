package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/destore-next/internal/models"
	"github.com/destore-next/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupLoyaltyServiceTest(t *testing.T) (*LoyaltyService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Customer{}, &models.Transaction{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	svc := NewLoyaltyService(
		repository.NewCustomerRepository(db),
		repository.NewTransactionRepository(db),
	)
	return svc, db
}

func seedPurchases(t *testing.T, db *gorm.DB, customerID uint, count int) {
	t.Helper()
	for i := 0; i < count; i++ {
		txn := models.Transaction{
			CustomerID:  customerID,
			ProductID:   1,
			Cost:        models.NewMoneyFromDecimal(decimal.NewFromFloat(3.68)),
			PurchasedAt: time.Now(),
		}
		if err := db.Create(&txn).Error; err != nil {
			t.Fatalf("seed transaction failed: %v", err)
		}
	}
}

func TestCheckEligibilityThresholds(t *testing.T) {
	svc, db := setupLoyaltyServiceTest(t)

	customer := models.Customer{Name: "Ben"}
	if err := db.Create(&customer).Error; err != nil {
		t.Fatalf("create customer failed: %v", err)
	}

	// 2 次购买还不够
	seedPurchases(t, db, customer.ID, 2)
	result, err := svc.CheckEligibility(customer.ID)
	if err != nil {
		t.Fatalf("check eligibility failed: %v", err)
	}
	if result.Eligible {
		t.Fatalf("2 purchases should not be eligible")
	}
	if result.PurchaseCount != 2 {
		t.Fatalf("purchase count want 2 got %d", result.PurchaseCount)
	}

	// 第 3 次之后满足门槛
	seedPurchases(t, db, customer.ID, 1)
	result, err = svc.CheckEligibility(customer.ID)
	if err != nil {
		t.Fatalf("check eligibility failed: %v", err)
	}
	if !result.Eligible {
		t.Fatalf("3 purchases should be eligible")
	}
}

func TestCheckEligibilityAlreadyLoyal(t *testing.T) {
	svc, db := setupLoyaltyServiceTest(t)

	customer := models.Customer{Name: "Alice", Loyal: true}
	if err := db.Create(&customer).Error; err != nil {
		t.Fatalf("create customer failed: %v", err)
	}
	seedPurchases(t, db, customer.ID, 5)

	result, err := svc.CheckEligibility(customer.ID)
	if err != nil {
		t.Fatalf("check eligibility failed: %v", err)
	}
	if result.Eligible {
		t.Fatalf("loyal customer should not be eligible again")
	}
	if !result.AlreadyLoyal {
		t.Fatalf("already_loyal should be true")
	}
}

func TestEnroll(t *testing.T) {
	svc, db := setupLoyaltyServiceTest(t)

	customer := models.Customer{Name: "Chloe"}
	if err := db.Create(&customer).Error; err != nil {
		t.Fatalf("create customer failed: %v", err)
	}

	// 次数不足
	if err := svc.Enroll(customer.ID); !errors.Is(err, ErrNotEligible) {
		t.Fatalf("want ErrNotEligible got %v", err)
	}

	seedPurchases(t, db, customer.ID, 3)
	if err := svc.Enroll(customer.ID); err != nil {
		t.Fatalf("enroll failed: %v", err)
	}

	var reloaded models.Customer
	if err := db.First(&reloaded, customer.ID).Error; err != nil {
		t.Fatalf("reload customer failed: %v", err)
	}
	if !reloaded.Loyal {
		t.Fatalf("customer should be loyal after enroll")
	}

	// 已是会员再入会
	if err := svc.Enroll(customer.ID); !errors.Is(err, ErrNotEligible) {
		t.Fatalf("second enroll want ErrNotEligible got %v", err)
	}
}

func TestGrantIdempotent(t *testing.T) {
	svc, db := setupLoyaltyServiceTest(t)

	customer := models.Customer{Name: "Dan", Loyal: true}
	if err := db.Create(&customer).Error; err != nil {
		t.Fatalf("create customer failed: %v", err)
	}

	if err := svc.Grant(customer.ID); err != nil {
		t.Fatalf("grant on loyal customer should be a no-op, got %v", err)
	}
}

func TestLoyaltyMissingCustomer(t *testing.T) {
	svc, _ := setupLoyaltyServiceTest(t)

	if _, err := svc.CheckEligibility(999); !errors.Is(err, ErrCustomerNotFound) {
		t.Fatalf("check eligibility want ErrCustomerNotFound got %v", err)
	}
	if err := svc.Grant(999); !errors.Is(err, ErrCustomerNotFound) {
		t.Fatalf("grant want ErrCustomerNotFound got %v", err)
	}
}
