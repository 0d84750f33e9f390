package monitor

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/destore-next/internal/models"
	"github.com/destore-next/internal/repository"
	"github.com/destore-next/internal/service"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupMonitorTest(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}); err != nil {
		t.Fatalf("migrate product failed: %v", err)
	}
	stock := service.NewStockService(nil, repository.NewProductRepository(db))
	svc, err := NewService(stock, 3600)
	if err != nil {
		t.Fatalf("new monitor service failed: %v", err)
	}
	return svc, db
}

func TestNewServiceRequiresStock(t *testing.T) {
	if _, err := NewService(nil, 60); err == nil {
		t.Fatalf("nil stock service should fail")
	}
}

func TestMonitorRunsCheckOnStart(t *testing.T) {
	svc, db := setupMonitorTest(t)

	product := models.Product{
		Name:  "Oil",
		Stock: 0,
		Price: models.NewMoneyFromDecimal(decimal.NewFromFloat(9.40)),
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- svc.Start(ctx)
	}()

	// 启动即执行一轮巡检，零库存商品被补货
	deadline := time.After(2 * time.Second)
	for {
		var reloaded models.Product
		if err := db.First(&reloaded, product.ID).Error; err != nil {
			t.Fatalf("reload product failed: %v", err)
		}
		if reloaded.Stock == 24 {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("product should be restocked on startup, stock=%d", reloaded.Stock)
		case <-time.After(10 * time.Millisecond):
		}
	}

	cancel()
	select {
	case err := <-done:
		if err != nil && err != context.Canceled {
			t.Fatalf("start returned unexpected error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("monitor should stop after context cancel")
	}
}

func TestMonitorStop(t *testing.T) {
	svc, _ := setupMonitorTest(t)

	done := make(chan error, 1)
	go func() {
		done <- svc.Start(context.Background())
	}()

	time.Sleep(50 * time.Millisecond)
	if err := svc.Stop(context.Background()); err != nil {
		t.Fatalf("stop failed: %v", err)
	}
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("start returned unexpected error after stop: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("monitor should exit after Stop")
	}

	// 重复 Stop 不报错
	if err := svc.Stop(context.Background()); err != nil {
		t.Fatalf("second stop failed: %v", err)
	}
}
