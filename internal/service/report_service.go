package service

import (
	"errors"
	"time"

	"github.com/destore-next/internal/config"
	"github.com/destore-next/internal/constants"
	"github.com/destore-next/internal/models"
	"github.com/destore-next/internal/repository"

	"github.com/shopspring/decimal"
)

// ReportService 报表服务
type ReportService struct {
	reportRepo repository.ReportRepository
	windowDays int
}

// NewReportService 创建报表服务
func NewReportService(cfg *config.Config, reportRepo repository.ReportRepository) *ReportService {
	windowDays := constants.ReportWindowDays
	if cfg != nil && cfg.Store.ReportWindowDays > 0 {
		windowDays = cfg.Store.ReportWindowDays
	}
	return &ReportService{
		reportRepo: reportRepo,
		windowDays: windowDays,
	}
}

// MonthlyReport 月度报表
// 购买次数与营收统计最近一个窗口期；
// 最热销商品按全量历史交易计，口径与窗口期不一致，保持既有报表行为
type MonthlyReport struct {
	Purchases   int64        `json:"purchases"`    // 窗口期内购买次数
	Revenue     models.Money `json:"revenue"`      // 窗口期内营收
	MostPopular uint         `json:"most_popular"` // 全量历史最热销商品 ID
	WindowDays  int          `json:"window_days"`  // 统计窗口（天）
	GeneratedAt time.Time    `json:"generated_at"` // 生成时间
}

// Monthly 生成月度报表
// 窗口期内没有任何交易时返回 ErrReportEmpty，而不是零值报表
func (s *ReportService) Monthly() (*MonthlyReport, error) {
	since := time.Now().AddDate(0, 0, -s.windowDays)

	count, err := s.reportRepo.CountSince(since)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrReportEmpty
	}

	revenue, err := s.reportRepo.RevenueSince(since)
	if err != nil {
		return nil, err
	}

	popular, err := s.reportRepo.MostPopularProductID()
	if err != nil {
		if errors.Is(err, repository.ErrNoRows) {
			return nil, ErrReportEmpty
		}
		return nil, err
	}

	return &MonthlyReport{
		Purchases:   count,
		Revenue:     models.NewMoneyFromDecimal(decimal.NewFromFloat(revenue)),
		MostPopular: popular,
		WindowDays:  s.windowDays,
		GeneratedAt: time.Now(),
	}, nil
}
