package service

import (
	"fmt"
	"time"

	"github.com/destore-next/internal/logger"
	"github.com/destore-next/internal/models"
	"github.com/destore-next/internal/pricing"
	"github.com/destore-next/internal/repository"

	"gorm.io/gorm"
)

// PurchaseService 购买流程服务
// 库存扣减、定价与流水写入在同一数据库事务内完成：
// 任一步骤失败整体回滚，不会出现扣了库存没有流水的中间态
type PurchaseService struct {
	productRepo     repository.ProductRepository
	customerRepo    repository.CustomerRepository
	saleRepo        repository.SaleRepository
	transactionRepo repository.TransactionRepository
}

// NewPurchaseService 创建购买流程服务
func NewPurchaseService(
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	saleRepo repository.SaleRepository,
	transactionRepo repository.TransactionRepository,
) *PurchaseService {
	return &PurchaseService{
		productRepo:     productRepo,
		customerRepo:    customerRepo,
		saleRepo:        saleRepo,
		transactionRepo: transactionRepo,
	}
}

// PurchaseReceipt 购买回执
type PurchaseReceipt struct {
	TransactionID  uint         `json:"transaction_id"`
	CustomerID     uint         `json:"customer_id"`
	ProductID      uint         `json:"product_id"`
	ProductName    string       `json:"product_name"`
	SaleID         uint         `json:"sale_id"`
	SaleType       string       `json:"sale_type"`
	LoyaltyApplied bool         `json:"loyalty_applied"`
	FinalCost      models.Money `json:"final_cost"`
	PurchasedAt    time.Time    `json:"purchased_at"`
}

// Purchase 执行一次单件购买
// 流程：校验顾客与商品 → 条件扣减库存 → 取生效促销并定价 → 写入交易流水
func (s *PurchaseService) Purchase(customerID, productID uint) (*PurchaseReceipt, error) {
	var receipt *PurchaseReceipt

	err := s.productRepo.Transaction(func(tx *gorm.DB) error {
		productRepo := s.productRepo.WithTx(tx)
		customerRepo := s.customerRepo.WithTx(tx)
		saleRepo := s.saleRepo.WithTx(tx)
		transactionRepo := s.transactionRepo.WithTx(tx)

		customer, err := customerRepo.GetByID(customerID)
		if err != nil {
			return fmt.Errorf("fetch customer: %w", err)
		}
		if customer == nil {
			return ErrCustomerNotFound
		}

		product, err := productRepo.GetByID(productID)
		if err != nil {
			return fmt.Errorf("fetch product: %w", err)
		}
		if product == nil {
			return ErrProductNotFound
		}

		affected, err := productRepo.DecrementStock(productID)
		if err != nil {
			return fmt.Errorf("decrement stock: %w", err)
		}
		if affected == 0 {
			return ErrOutOfStock
		}

		sale, err := saleRepo.GetActiveByProduct(productID)
		if err != nil {
			return fmt.Errorf("fetch active sale: %w", err)
		}
		var saleID uint
		saleType := ""
		if sale != nil {
			saleID = sale.ID
			saleType = sale.Type
		}

		quotation := pricing.Quote(product.Price, saleType, customer.Loyal)

		txn := &models.Transaction{
			CustomerID:  customerID,
			ProductID:   productID,
			SaleID:      saleID,
			Cost:        quotation.FinalCost,
			PurchasedAt: time.Now(),
		}
		if err := transactionRepo.Create(txn); err != nil {
			return fmt.Errorf("record transaction: %w", err)
		}

		receipt = &PurchaseReceipt{
			TransactionID:  txn.ID,
			CustomerID:     customerID,
			ProductID:      productID,
			ProductName:    product.Name,
			SaleID:         saleID,
			SaleType:       quotation.SaleType,
			LoyaltyApplied: quotation.LoyaltyApplied,
			FinalCost:      quotation.FinalCost,
			PurchasedAt:    txn.PurchasedAt,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Infow("purchase_committed",
		"transaction_id", receipt.TransactionID,
		"customer_id", receipt.CustomerID,
		"product_id", receipt.ProductID,
		"sale_type", receipt.SaleType,
		"final_cost", receipt.FinalCost.String(),
	)
	return receipt, nil
}

// RecentPurchases 查询最近 N 笔购买
func (s *PurchaseService) RecentPurchases(limit int) ([]models.Transaction, error) {
	return s.transactionRepo.ListRecent(repository.TransactionListFilter{Limit: limit})
}
