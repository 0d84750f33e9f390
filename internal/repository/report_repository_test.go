package repository

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/destore-next/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupReportRepositoryTest(t *testing.T) (*GormReportRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Transaction{}); err != nil {
		t.Fatalf("migrate transaction failed: %v", err)
	}
	return NewReportRepository(db), db
}

func createTransactionAt(t *testing.T, db *gorm.DB, productID uint, cost float64, purchasedAt time.Time) {
	t.Helper()
	txn := models.Transaction{
		CustomerID:  1,
		ProductID:   productID,
		Cost:        models.NewMoneyFromDecimal(decimal.NewFromFloat(cost)),
		PurchasedAt: purchasedAt,
	}
	if err := db.Create(&txn).Error; err != nil {
		t.Fatalf("create transaction failed: %v", err)
	}
}

func TestCountAndRevenueSince(t *testing.T) {
	repo, db := setupReportRepositoryTest(t)
	now := time.Now()

	createTransactionAt(t, db, 1, 10.50, now.AddDate(0, 0, -1))
	createTransactionAt(t, db, 1, 21.00, now.AddDate(0, 0, -10))
	createTransactionAt(t, db, 2, 99.00, now.AddDate(0, 0, -45))

	since := now.AddDate(0, 0, -30)

	count, err := repo.CountSince(since)
	if err != nil {
		t.Fatalf("count since failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("count want 2 got %d", count)
	}

	revenue, err := repo.RevenueSince(since)
	if err != nil {
		t.Fatalf("revenue since failed: %v", err)
	}
	if revenue != 31.50 {
		t.Fatalf("revenue want 31.50 got %v", revenue)
	}
}

func TestMostPopularProductAllTime(t *testing.T) {
	repo, db := setupReportRepositoryTest(t)
	now := time.Now()

	// 窗口外的历史交易也计入热销统计
	createTransactionAt(t, db, 7, 5.00, now.AddDate(0, 0, -60))
	createTransactionAt(t, db, 7, 5.00, now.AddDate(0, 0, -50))
	createTransactionAt(t, db, 3, 8.00, now.AddDate(0, 0, -1))

	productID, err := repo.MostPopularProductID()
	if err != nil {
		t.Fatalf("most popular failed: %v", err)
	}
	if productID != 7 {
		t.Fatalf("most popular want 7 got %d", productID)
	}
}

func TestMostPopularProductTie(t *testing.T) {
	repo, db := setupReportRepositoryTest(t)
	now := time.Now()

	createTransactionAt(t, db, 5, 5.00, now)
	createTransactionAt(t, db, 2, 5.00, now)

	productID, err := repo.MostPopularProductID()
	if err != nil {
		t.Fatalf("most popular failed: %v", err)
	}
	if productID != 2 {
		t.Fatalf("tie should pick smaller id, want 2 got %d", productID)
	}
}

func TestMostPopularProductNoRows(t *testing.T) {
	repo, _ := setupReportRepositoryTest(t)

	_, err := repo.MostPopularProductID()
	if !errors.Is(err, ErrNoRows) {
		t.Fatalf("want ErrNoRows got %v", err)
	}
}
