package repository

import (
	"errors"
	"strings"

	"github.com/destore-next/internal/models"

	"gorm.io/gorm"
)

// ProductRepository 商品数据访问接口
type ProductRepository interface {
	List(filter ProductListFilter) ([]models.Product, int64, error)
	GetByID(id uint) (*models.Product, error)
	Create(product *models.Product) error
	UpdatePrice(id uint, price models.Money) (int64, error)
	DecrementStock(id uint) (int64, error)
	RestockEmpty(quantity int) (int64, error)
	LowStockIDs(threshold int) ([]uint, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) ProductRepository
}

// GormProductRepository GORM 实现
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓库
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// WithTx 绑定事务
func (r *GormProductRepository) WithTx(tx *gorm.DB) ProductRepository {
	if tx == nil {
		return r
	}
	return &GormProductRepository{db: tx}
}

// Transaction 执行事务
func (r *GormProductRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// List 商品列表
func (r *GormProductRepository) List(filter ProductListFilter) ([]models.Product, int64, error) {
	var products []models.Product

	query := r.db.Model(&models.Product{})
	if search := strings.TrimSpace(filter.Search); search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("id ASC").Find(&products).Error; err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

// GetByID 根据 ID 获取商品（含促销记录）
func (r *GormProductRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.Preload("Sales", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	}).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// Create 创建商品
func (r *GormProductRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

// UpdatePrice 修改商品单价
// 调用方需已通过店长授权校验
func (r *GormProductRepository) UpdatePrice(id uint, price models.Money) (int64, error) {
	if id == 0 {
		return 0, errors.New("invalid product id")
	}
	result := r.db.Model(&models.Product{}).
		Where("id = ?", id).
		Update("price", price)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// DecrementStock 扣减一件库存
// 单条条件更新语句即库存护栏：库存为 0 时影响行数为 0，并发扣减不会出现负库存
func (r *GormProductRepository) DecrementStock(id uint) (int64, error) {
	if id == 0 {
		return 0, errors.New("invalid product id")
	}
	result := r.db.Model(&models.Product{}).
		Where("id = ? AND stock > 0", id).
		Update("stock", gorm.Expr("stock - ?", 1))
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// RestockEmpty 为所有零库存商品补货，返回补货商品数
func (r *GormProductRepository) RestockEmpty(quantity int) (int64, error) {
	if quantity <= 0 {
		return 0, errors.New("invalid restock quantity")
	}
	result := r.db.Model(&models.Product{}).
		Where("stock = ?", 0).
		Update("stock", quantity)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// LowStockIDs 返回库存不高于阈值的商品 ID 列表（升序）
func (r *GormProductRepository) LowStockIDs(threshold int) ([]uint, error) {
	ids := make([]uint, 0)
	if err := r.db.Model(&models.Product{}).
		Where("stock <= ?", threshold).
		Order("id ASC").
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
