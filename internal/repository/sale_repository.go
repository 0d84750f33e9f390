package repository

import (
	"errors"

	"github.com/destore-next/internal/models"

	"gorm.io/gorm"
)

// SaleRepository 促销记录数据访问接口
type SaleRepository interface {
	Create(sale *models.Sale) error
	GetActiveByProduct(productID uint) (*models.Sale, error)
	WithTx(tx *gorm.DB) SaleRepository
}

// GormSaleRepository GORM 实现
type GormSaleRepository struct {
	db *gorm.DB
}

// NewSaleRepository 创建促销记录仓库
func NewSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

// WithTx 绑定事务
func (r *GormSaleRepository) WithTx(tx *gorm.DB) SaleRepository {
	if tx == nil {
		return r
	}
	return &GormSaleRepository{db: tx}
}

// Create 追加促销记录
func (r *GormSaleRepository) Create(sale *models.Sale) error {
	return r.db.Create(sale).Error
}

// GetActiveByProduct 获取商品当前生效的促销记录
// 取 ID 最大的一条（最新写入者生效）；没有记录时返回 nil
func (r *GormSaleRepository) GetActiveByProduct(productID uint) (*models.Sale, error) {
	var sale models.Sale
	if err := r.db.Where("product_id = ?", productID).
		Order("id DESC").
		First(&sale).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &sale, nil
}
