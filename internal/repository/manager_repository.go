package repository

import (
	"errors"

	"github.com/destore-next/internal/models"

	"gorm.io/gorm"
)

// ManagerRepository 店长数据访问接口
type ManagerRepository interface {
	GetByUsername(username string) (*models.Manager, error)
	GetByID(id uint) (*models.Manager, error)
	Update(manager *models.Manager) error
}

// GormManagerRepository GORM 实现
type GormManagerRepository struct {
	db *gorm.DB
}

// NewManagerRepository 创建店长仓库
func NewManagerRepository(db *gorm.DB) *GormManagerRepository {
	return &GormManagerRepository{db: db}
}

// GetByUsername 根据用户名获取店长
func (r *GormManagerRepository) GetByUsername(username string) (*models.Manager, error) {
	var manager models.Manager
	if err := r.db.Where("username = ?", username).First(&manager).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &manager, nil
}

// GetByID 根据 ID 获取店长
func (r *GormManagerRepository) GetByID(id uint) (*models.Manager, error) {
	var manager models.Manager
	if err := r.db.First(&manager, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &manager, nil
}

// Update 更新店长
func (r *GormManagerRepository) Update(manager *models.Manager) error {
	return r.db.Save(manager).Error
}
