package constants

// 促销类型常量
const (
	SaleTypeNone         = "none"
	SaleTypeThreeForTwo  = "three_for_two"
	SaleTypeBOGOF        = "bogof"
	SaleTypeFreeDelivery = "free_delivery"
)

// ValidSaleTypes 允许写入促销记录的类型集合
var ValidSaleTypes = map[string]bool{
	SaleTypeNone:         true,
	SaleTypeThreeForTwo:  true,
	SaleTypeBOGOF:        true,
	SaleTypeFreeDelivery: true,
}

// 库存常量
const (
	DefaultLowStockThreshold = 5  // 低库存告警阈值
	DefaultRestockQuantity   = 24 // 缺货补货数量（一箱）

	DefaultStockCheckIntervalSeconds = 300 // 库存巡检间隔
)

// 报表常量
const (
	ReportWindowDays = 30 // 购买次数与营收统计的滚动窗口
)

// 验证码提供方常量
const (
	CaptchaProviderNone  = "none"
	CaptchaProviderImage = "image"
)

// 验证码校验场景常量
const (
	CaptchaSceneManagerLogin = "manager_login"
)
