package models

import "time"

// Product 商品表
type Product struct {
	ID        uint      `gorm:"primarykey" json:"id"`                             // 主键
	Name      string    `gorm:"type:varchar(120);not null;index" json:"name"`     // 商品名称
	Stock     int       `gorm:"not null;default:0" json:"stock"`                  // 库存数量（不允许为负）
	Price     Money     `gorm:"type:decimal(20,2);not null;default:0" json:"price"` // 单价
	CreatedAt time.Time `gorm:"index" json:"created_at"`                          // 创建时间
	UpdatedAt time.Time `json:"updated_at"`                                       // 更新时间

	// 关联
	Sales []Sale `gorm:"foreignKey:ProductID" json:"sales,omitempty"` // 促销记录列表
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

// ActiveSale 返回当前生效的促销记录（最新一条，按 ID 最大者）
// 没有促销时返回 nil
func (p *Product) ActiveSale() *Sale {
	if p == nil || len(p.Sales) == 0 {
		return nil
	}
	active := &p.Sales[0]
	for i := range p.Sales {
		if p.Sales[i].ID > active.ID {
			active = &p.Sales[i]
		}
	}
	return active
}
