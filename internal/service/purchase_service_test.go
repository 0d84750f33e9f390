package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/destore-next/internal/models"
	"github.com/destore-next/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupPurchaseServiceTest(t *testing.T) (*PurchaseService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Customer{}, &models.Product{}, &models.Sale{}, &models.Transaction{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	svc := NewPurchaseService(
		repository.NewProductRepository(db),
		repository.NewCustomerRepository(db),
		repository.NewSaleRepository(db),
		repository.NewTransactionRepository(db),
	)
	return svc, db
}

func seedPurchaseFixture(t *testing.T, db *gorm.DB, loyal bool, stock int, price float64) (*models.Customer, *models.Product) {
	t.Helper()
	customer := &models.Customer{Name: "Test Customer", Loyal: loyal}
	if err := db.Create(customer).Error; err != nil {
		t.Fatalf("create customer failed: %v", err)
	}
	product := &models.Product{
		Name:  "Test Product",
		Stock: stock,
		Price: models.NewMoneyFromDecimal(decimal.NewFromFloat(price)),
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return customer, product
}

func countTransactions(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var count int64
	if err := db.Model(&models.Transaction{}).Count(&count).Error; err != nil {
		t.Fatalf("count transactions failed: %v", err)
	}
	return count
}

func TestPurchaseNonLoyalCustomer(t *testing.T) {
	svc, db := setupPurchaseServiceTest(t)
	customer, product := seedPurchaseFixture(t, db, false, 10, 50.00)

	receipt, err := svc.Purchase(customer.ID, product.ID)
	if err != nil {
		t.Fatalf("purchase failed: %v", err)
	}
	if receipt.FinalCost.String() != "52.50" {
		t.Fatalf("final cost want 52.50 got %s", receipt.FinalCost.String())
	}
	if receipt.LoyaltyApplied {
		t.Fatalf("loyalty should not apply")
	}
	if receipt.SaleType != "none" {
		t.Fatalf("sale type want none got %s", receipt.SaleType)
	}

	var reloaded models.Product
	if err := db.First(&reloaded, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if reloaded.Stock != 9 {
		t.Fatalf("stock want 9 got %d", reloaded.Stock)
	}
	if got := countTransactions(t, db); got != 1 {
		t.Fatalf("transaction count want 1 got %d", got)
	}
}

func TestPurchaseLoyalCustomerWithSale(t *testing.T) {
	svc, db := setupPurchaseServiceTest(t)
	customer, product := seedPurchaseFixture(t, db, true, 5, 100.00)

	sale := models.Sale{ProductID: product.ID, Type: "three_for_two"}
	if err := db.Create(&sale).Error; err != nil {
		t.Fatalf("create sale failed: %v", err)
	}

	receipt, err := svc.Purchase(customer.ID, product.ID)
	if err != nil {
		t.Fatalf("purchase failed: %v", err)
	}
	if receipt.FinalCost.String() != "94.50" {
		t.Fatalf("final cost want 94.50 got %s", receipt.FinalCost.String())
	}
	if !receipt.LoyaltyApplied {
		t.Fatalf("loyalty should apply")
	}
	if receipt.SaleType != "three_for_two" {
		t.Fatalf("sale type want three_for_two got %s", receipt.SaleType)
	}
	if receipt.SaleID != sale.ID {
		t.Fatalf("sale id want %d got %d", sale.ID, receipt.SaleID)
	}

	var txn models.Transaction
	if err := db.First(&txn, receipt.TransactionID).Error; err != nil {
		t.Fatalf("load transaction failed: %v", err)
	}
	if txn.Cost.String() != "94.50" {
		t.Fatalf("recorded cost want 94.50 got %s", txn.Cost.String())
	}
	if txn.SaleID != sale.ID {
		t.Fatalf("recorded sale id want %d got %d", sale.ID, txn.SaleID)
	}
}

func TestPurchaseOutOfStock(t *testing.T) {
	svc, db := setupPurchaseServiceTest(t)
	customer, product := seedPurchaseFixture(t, db, false, 0, 9.90)

	_, err := svc.Purchase(customer.ID, product.ID)
	if !errors.Is(err, ErrOutOfStock) {
		t.Fatalf("want ErrOutOfStock got %v", err)
	}

	// 整体回滚，不留流水
	if got := countTransactions(t, db); got != 0 {
		t.Fatalf("transaction count want 0 got %d", got)
	}
	var reloaded models.Product
	if err := db.First(&reloaded, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if reloaded.Stock != 0 {
		t.Fatalf("stock want 0 got %d", reloaded.Stock)
	}
}

func TestPurchaseMissingCustomer(t *testing.T) {
	svc, db := setupPurchaseServiceTest(t)
	_, product := seedPurchaseFixture(t, db, false, 3, 5.00)

	_, err := svc.Purchase(999, product.ID)
	if !errors.Is(err, ErrCustomerNotFound) {
		t.Fatalf("want ErrCustomerNotFound got %v", err)
	}
	if got := countTransactions(t, db); got != 0 {
		t.Fatalf("transaction count want 0 got %d", got)
	}
}

func TestPurchaseMissingProduct(t *testing.T) {
	svc, db := setupPurchaseServiceTest(t)
	customer, _ := seedPurchaseFixture(t, db, false, 3, 5.00)

	_, err := svc.Purchase(customer.ID, 999)
	if !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("want ErrProductNotFound got %v", err)
	}
	if got := countTransactions(t, db); got != 0 {
		t.Fatalf("transaction count want 0 got %d", got)
	}
}

func TestPurchaseDrainsStockExactly(t *testing.T) {
	svc, db := setupPurchaseServiceTest(t)
	customer, product := seedPurchaseFixture(t, db, false, 2, 4.00)

	for i := 0; i < 2; i++ {
		if _, err := svc.Purchase(customer.ID, product.ID); err != nil {
			t.Fatalf("purchase %d failed: %v", i+1, err)
		}
	}

	_, err := svc.Purchase(customer.ID, product.ID)
	if !errors.Is(err, ErrOutOfStock) {
		t.Fatalf("third purchase want ErrOutOfStock got %v", err)
	}
	if got := countTransactions(t, db); got != 2 {
		t.Fatalf("transaction count want 2 got %d", got)
	}
}
