package repository

import (
	"github.com/destore-next/internal/models"

	"gorm.io/gorm"
)

// TransactionRepository 交易流水数据访问接口
type TransactionRepository interface {
	Create(txn *models.Transaction) error
	CountByCustomer(customerID uint) (int64, error)
	ListRecent(filter TransactionListFilter) ([]models.Transaction, error)
	WithTx(tx *gorm.DB) TransactionRepository
}

// GormTransactionRepository GORM 实现
type GormTransactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository 创建交易流水仓库
func NewTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{db: db}
}

// WithTx 绑定事务
func (r *GormTransactionRepository) WithTx(tx *gorm.DB) TransactionRepository {
	if tx == nil {
		return r
	}
	return &GormTransactionRepository{db: tx}
}

// Create 写入交易流水（仅追加）
func (r *GormTransactionRepository) Create(txn *models.Transaction) error {
	return r.db.Create(txn).Error
}

// CountByCustomer 统计顾客历史购买次数
func (r *GormTransactionRepository) CountByCustomer(customerID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Transaction{}).
		Where("customer_id = ?", customerID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ListRecent 获取最近 N 条交易（按成交时间倒序，同时间按 ID 倒序）
func (r *GormTransactionRepository) ListRecent(filter TransactionListFilter) ([]models.Transaction, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	query := r.db.Model(&models.Transaction{}).
		Preload("Customer").
		Preload("Product")
	if filter.CustomerID != 0 {
		query = query.Where("customer_id = ?", filter.CustomerID)
	}

	var txns []models.Transaction
	if err := query.Order("purchased_at DESC, id DESC").
		Limit(limit).
		Find(&txns).Error; err != nil {
		return nil, err
	}
	return txns, nil
}
