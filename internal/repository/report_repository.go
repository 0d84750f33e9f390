package repository

import (
	"errors"
	"time"

	"github.com/destore-next/internal/models"

	"gorm.io/gorm"
)

// ReportRepository 报表聚合查询接口
// 说明：仅聚合统计数据，不承载业务规则。
type ReportRepository interface {
	CountSince(since time.Time) (int64, error)
	RevenueSince(since time.Time) (float64, error)
	MostPopularProductID() (uint, error)
}

// 聚合查询无符合条件的行
var ErrNoRows = errors.New("repository: no rows to aggregate")

// GormReportRepository GORM 报表聚合实现
type GormReportRepository struct {
	db *gorm.DB
}

// NewReportRepository 创建报表仓库
func NewReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

// CountSince 统计指定时间之后的交易笔数
func (r *GormReportRepository) CountSince(since time.Time) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Transaction{}).
		Where("purchased_at >= ?", since).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// RevenueSince 统计指定时间之后的营收合计
func (r *GormReportRepository) RevenueSince(since time.Time) (float64, error) {
	var revenue float64
	if err := r.db.Model(&models.Transaction{}).
		Where("purchased_at >= ?", since).
		Select("COALESCE(SUM(cost), 0)").
		Scan(&revenue).Error; err != nil {
		return 0, err
	}
	return revenue, nil
}

// MostPopularProductID 全量交易中成交笔数最高的商品
// 统计口径为全部历史，不随报表窗口滚动；平手时取 ID 较小者
func (r *GormReportRepository) MostPopularProductID() (uint, error) {
	type rankingRow struct {
		ProductID uint
		Total     int64
	}
	var row rankingRow
	err := r.db.Model(&models.Transaction{}).
		Select("product_id, COUNT(*) as total").
		Group("product_id").
		Order("total DESC, product_id ASC").
		Limit(1).
		Scan(&row).Error
	if err != nil {
		return 0, err
	}
	if row.ProductID == 0 {
		return 0, ErrNoRows
	}
	return row.ProductID, nil
}
