package models

import "time"

// Sale 促销记录表（仅追加）
// 同一商品存在多条记录时，ID 最大的一条视为当前生效促销
type Sale struct {
	ID        uint      `gorm:"primarykey" json:"id"`                        // 主键
	ProductID uint      `gorm:"not null;index" json:"product_id"`            // 商品ID
	Type      string    `gorm:"type:varchar(20);not null" json:"type"`       // 促销类型（three_for_two/bogof/free_delivery/none）
	CreatedAt time.Time `gorm:"index" json:"created_at"`                     // 创建时间
}

// TableName 指定表名
func (Sale) TableName() string {
	return "sales"
}
