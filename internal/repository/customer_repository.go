package repository

import (
	"errors"

	"github.com/destore-next/internal/models"

	"gorm.io/gorm"
)

// CustomerRepository 顾客数据访问接口
type CustomerRepository interface {
	GetByID(id uint) (*models.Customer, error)
	Create(customer *models.Customer) error
	GrantLoyalty(id uint) (int64, error)
	WithTx(tx *gorm.DB) CustomerRepository
}

// GormCustomerRepository GORM 实现
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository 创建顾客仓库
func NewCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCustomerRepository) WithTx(tx *gorm.DB) CustomerRepository {
	if tx == nil {
		return r
	}
	return &GormCustomerRepository{db: tx}
}

// GetByID 根据 ID 获取顾客
func (r *GormCustomerRepository) GetByID(id uint) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &customer, nil
}

// Create 创建顾客
func (r *GormCustomerRepository) Create(customer *models.Customer) error {
	return r.db.Create(customer).Error
}

// GrantLoyalty 授予会员身份
// 幂等：重复授予不报错；会员身份只升不降
func (r *GormCustomerRepository) GrantLoyalty(id uint) (int64, error) {
	if id == 0 {
		return 0, errors.New("invalid customer id")
	}
	result := r.db.Model(&models.Customer{}).
		Where("id = ?", id).
		Update("loyal", true)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
