package service

import (
	"github.com/destore-next/internal/config"
	"github.com/destore-next/internal/constants"
	"github.com/destore-next/internal/logger"
	"github.com/destore-next/internal/repository"
)

// StockService 库存监测服务
type StockService struct {
	productRepo repository.ProductRepository
	threshold   int
	restockQty  int
}

// NewStockService 创建库存监测服务
func NewStockService(cfg *config.Config, productRepo repository.ProductRepository) *StockService {
	threshold := constants.DefaultLowStockThreshold
	restockQty := constants.DefaultRestockQuantity
	if cfg != nil {
		if cfg.Store.LowStockThreshold > 0 {
			threshold = cfg.Store.LowStockThreshold
		}
		if cfg.Store.RestockQuantity > 0 {
			restockQty = cfg.Store.RestockQuantity
		}
	}
	return &StockService{
		productRepo: productRepo,
		threshold:   threshold,
		restockQty:  restockQty,
	}
}

// StockCheckResult 一轮库存巡检的结果
type StockCheckResult struct {
	LowStockIDs    []uint `json:"low_stock_ids"`    // 低库存商品 ID（含零库存）
	RestockedCount int64  `json:"restocked_count"`  // 本轮补货商品数
	Threshold      int    `json:"threshold"`        // 判定低库存的阈值
	RestockQty     int    `json:"restock_quantity"` // 补货数量
}

// LowStock 返回当前低库存商品 ID 列表
func (s *StockService) LowStock() ([]uint, error) {
	return s.productRepo.LowStockIDs(s.threshold)
}

// RunStockCheck 执行一轮库存巡检
// 低库存扫描与零库存补货是两项独立检查：
// 先记录低库存名单，再对零库存商品补货
func (s *StockService) RunStockCheck() (*StockCheckResult, error) {
	lowIDs, err := s.productRepo.LowStockIDs(s.threshold)
	if err != nil {
		return nil, err
	}

	restocked, err := s.productRepo.RestockEmpty(s.restockQty)
	if err != nil {
		return nil, err
	}

	result := &StockCheckResult{
		LowStockIDs:    lowIDs,
		RestockedCount: restocked,
		Threshold:      s.threshold,
		RestockQty:     s.restockQty,
	}
	if len(lowIDs) > 0 || restocked > 0 {
		logger.Infow("stock_check_completed",
			"low_stock_ids", lowIDs,
			"restocked_count", restocked,
		)
	}
	return result, nil
}
