package models

import "time"

// Transaction 交易流水表（仅追加，写入后不可变更）
type Transaction struct {
	ID          uint      `gorm:"primarykey" json:"id"`                              // 主键
	CustomerID  uint      `gorm:"not null;index" json:"customer_id"`                 // 顾客ID
	ProductID   uint      `gorm:"not null;index" json:"product_id"`                  // 商品ID
	SaleID      uint      `gorm:"not null;default:0" json:"sale_id"`                 // 成交时生效的促销记录ID（0 表示无促销）
	Cost        Money     `gorm:"type:decimal(20,2);not null;default:0" json:"cost"` // 实付金额（含会员折扣与税）
	PurchasedAt time.Time `gorm:"not null;index" json:"purchased_at"`                // 成交时间

	// 关联
	Customer Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"` // 顾客信息
	Product  Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`   // 商品信息
}

// TableName 指定表名
func (Transaction) TableName() string {
	return "transactions"
}
