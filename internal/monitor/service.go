package monitor

import (
	"context"
	"errors"
	"time"

	"github.com/destore-next/internal/constants"
	"github.com/destore-next/internal/logger"
	"github.com/destore-next/internal/service"
)

// Service 库存巡检后台服务
// 周期性执行低库存扫描与零库存补货
type Service struct {
	name     string
	stock    *service.StockService
	interval time.Duration
	stopCh   chan struct{}
}

// NewService 创建库存巡检服务
func NewService(stock *service.StockService, intervalSeconds int) (*Service, error) {
	if stock == nil {
		return nil, errors.New("stock service is nil")
	}
	if intervalSeconds <= 0 {
		intervalSeconds = constants.DefaultStockCheckIntervalSeconds
	}
	return &Service{
		name:     "monitor",
		stock:    stock,
		interval: time.Duration(intervalSeconds) * time.Second,
		stopCh:   make(chan struct{}),
	}, nil
}

// Name 服务名称
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "monitor"
	}
	return s.name
}

// Start 启动服务
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.stock == nil {
		return errors.New("monitor not initialized")
	}
	s.runOnce()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.stopCh:
			return nil
		case <-ticker.C:
			s.runOnce()
		}
	}
}

// Stop 停止服务
func (s *Service) Stop(ctx context.Context) error {
	if s == nil {
		return nil
	}
	_ = ctx
	select {
	case <-s.stopCh:
	default:
		close(s.stopCh)
	}
	return nil
}

func (s *Service) runOnce() {
	if _, err := s.stock.RunStockCheck(); err != nil {
		logger.Warnw("monitor_stock_check_failed", "error", err)
	}
}
