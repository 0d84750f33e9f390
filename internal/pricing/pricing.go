package pricing

import (
	"github.com/destore-next/internal/constants"
	"github.com/destore-next/internal/models"

	"github.com/shopspring/decimal"
)

// 定价参数
// 会员折扣先于税率生效
var (
	loyaltyRate = decimal.NewFromFloat(0.90) // 会员价 = 单价 * 0.90
	taxRate     = decimal.NewFromFloat(1.05) // 税率 5%，折后计税
)

// Quotation 单件购买报价明细
type Quotation struct {
	UnitPrice      models.Money `json:"unit_price"`      // 商品单价
	SaleType       string       `json:"sale_type"`       // 生效促销类型
	LoyaltyApplied bool         `json:"loyalty_applied"` // 是否享受会员折扣
	FinalCost      models.Money `json:"final_cost"`      // 实付金额（2 位小数，四舍五入）
}

// Quote 计算单件购买的实付金额
// 纯计算，不做任何存储访问：
//  1. 起始金额为商品单价；促销类型仅随报价透出，
//     3for2/BOGOF/免运费均为多件或配送层面的促销，单件购买不调整单价
//  2. 会员打 9 折
//  3. 折后加收 5% 税
//  4. 四舍五入保留 2 位小数
func Quote(unitPrice models.Money, saleType string, loyal bool) Quotation {
	if saleType == "" {
		saleType = constants.SaleTypeNone
	}

	cost := unitPrice.Decimal
	if loyal {
		cost = cost.Mul(loyaltyRate)
	}
	cost = cost.Mul(taxRate)

	return Quotation{
		UnitPrice:      unitPrice,
		SaleType:       saleType,
		LoyaltyApplied: loyal,
		FinalCost:      models.NewMoneyFromDecimal(cost),
	}
}
