package main

import (
	"time"

	"github.com/destore-next/internal/config"
	"github.com/destore-next/internal/constants"
	"github.com/destore-next/internal/logger"
	"github.com/destore-next/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	db, err := models.OpenDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	})
	if err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}
	defer func() { _ = models.CloseDB(db) }()

	// 自动迁移
	if err := models.AutoMigrate(db); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 添加商品
	products := []models.Product{
		{Name: "Whole Milk 1L", Stock: 30, Price: models.NewMoneyFromDecimal(decimal.NewFromFloat(3.50))},
		{Name: "Sourdough Bread", Stock: 12, Price: models.NewMoneyFromDecimal(decimal.NewFromFloat(4.80))},
		{Name: "Free Range Eggs 12pk", Stock: 8, Price: models.NewMoneyFromDecimal(decimal.NewFromFloat(6.20))},
		{Name: "Ground Coffee 250g", Stock: 4, Price: models.NewMoneyFromDecimal(decimal.NewFromFloat(11.90))},
		{Name: "Olive Oil 500ml", Stock: 0, Price: models.NewMoneyFromDecimal(decimal.NewFromFloat(9.40))},
	}

	for i := range products {
		prod := &products[i]
		var existing models.Product
		if err := db.Where("name = ?", prod.Name).First(&existing).Error; err != nil {
			if err := db.Create(prod).Error; err != nil {
				stdLog.Printf("Failed to create product %s: %v", prod.Name, err)
			} else {
				stdLog.Printf("Created product: %s", prod.Name)
			}
			continue
		}
		existing.Stock = prod.Stock
		existing.Price = prod.Price
		if err := db.Save(&existing).Error; err != nil {
			stdLog.Printf("Failed to update product %s: %v", prod.Name, err)
		} else {
			stdLog.Printf("Updated product: %s", prod.Name)
		}
		prod.ID = existing.ID
	}

	// 添加促销记录
	sales := []struct {
		ProductName string
		Type        string
	}{
		{ProductName: "Whole Milk 1L", Type: constants.SaleTypeThreeForTwo},
		{ProductName: "Sourdough Bread", Type: constants.SaleTypeBOGOF},
		{ProductName: "Ground Coffee 250g", Type: constants.SaleTypeFreeDelivery},
	}

	for _, plan := range sales {
		var product models.Product
		if err := db.Where("name = ?", plan.ProductName).First(&product).Error; err != nil {
			stdLog.Printf("Skip sale seed for %s: product not found", plan.ProductName)
			continue
		}
		var existing models.Sale
		err := db.Where("product_id = ? AND type = ?", product.ID, plan.Type).
			Order("id DESC").First(&existing).Error
		if err == nil {
			stdLog.Printf("Sale already exists: %s %s", plan.ProductName, plan.Type)
			continue
		}
		sale := models.Sale{ProductID: product.ID, Type: plan.Type}
		if err := db.Create(&sale).Error; err != nil {
			stdLog.Printf("Failed to create sale for %s: %v", plan.ProductName, err)
		} else {
			stdLog.Printf("Created sale: %s %s", plan.ProductName, plan.Type)
		}
	}

	// 添加顾客
	customers := []models.Customer{
		{Name: "Alice Zhang", Loyal: true},
		{Name: "Ben Carter", Loyal: false},
		{Name: "Chloe Wong", Loyal: false},
	}

	for i := range customers {
		cust := &customers[i]
		var existing models.Customer
		if err := db.Where("name = ?", cust.Name).First(&existing).Error; err != nil {
			if err := db.Create(cust).Error; err != nil {
				stdLog.Printf("Failed to create customer %s: %v", cust.Name, err)
			} else {
				stdLog.Printf("Created customer: %s", cust.Name)
			}
			continue
		}
		stdLog.Printf("Customer already exists: %s", cust.Name)
	}

	seedTransactionCount(db, stdLog.Printf)

	stdLog.Println("Seed data created")
}

// seedTransactionCount 给非会员顾客补几笔历史交易，便于演示会员资格判定
func seedTransactionCount(db *gorm.DB, logf func(format string, v ...interface{})) {
	var customer models.Customer
	if err := db.Where("name = ?", "Ben Carter").First(&customer).Error; err != nil {
		logf("Skip transaction seed: customer not found")
		return
	}
	var product models.Product
	if err := db.Where("name = ?", "Whole Milk 1L").First(&product).Error; err != nil {
		logf("Skip transaction seed: product not found")
		return
	}

	var count int64
	if err := db.Model(&models.Transaction{}).Where("customer_id = ?", customer.ID).Count(&count).Error; err != nil {
		logf("Skip transaction seed: count failed: %v", err)
		return
	}
	if count >= 3 {
		logf("Transaction seed already present for %s", customer.Name)
		return
	}

	for i := count; i < 3; i++ {
		txn := models.Transaction{
			CustomerID:  customer.ID,
			ProductID:   product.ID,
			Cost:        product.Price,
			PurchasedAt: time.Now().AddDate(0, 0, -int(i+1)*3),
		}
		if err := db.Create(&txn).Error; err != nil {
			logf("Failed to create transaction for %s: %v", customer.Name, err)
			return
		}
	}
	logf("Seeded purchase history for %s", customer.Name)
}
