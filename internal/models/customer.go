package models

import "time"

// Customer 顾客表
type Customer struct {
	ID        uint      `gorm:"primarykey" json:"id"`                         // 主键
	Name      string    `gorm:"type:varchar(120);not null" json:"name"`       // 顾客姓名
	Loyal     bool      `gorm:"not null;default:false;index" json:"loyal"`    // 是否会员（只升不降）
	CreatedAt time.Time `gorm:"index" json:"created_at"`                      // 创建时间
	UpdatedAt time.Time `json:"updated_at"`                                   // 更新时间
}

// TableName 指定表名
func (Customer) TableName() string {
	return "customers"
}
