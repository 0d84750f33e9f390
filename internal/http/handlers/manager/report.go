package manager

import (
	"errors"
	"strconv"

	"github.com/destore-next/internal/http/response"
	"github.com/destore-next/internal/service"

	"github.com/gin-gonic/gin"
)

// MonthlyReport 生成月度报表
func (h *Handler) MonthlyReport(c *gin.Context) {
	report, err := h.ReportService.Monthly()
	if err != nil {
		if errors.Is(err, service.ErrReportEmpty) {
			respondError(c, response.CodeNotFound, "统计窗口内没有交易", nil)
			return
		}
		respondError(c, response.CodeInternal, "报表生成失败", err)
		return
	}
	response.Success(c, report)
}

// RecentTransactions 查询最近 N 笔交易
func (h *Handler) RecentTransactions(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	txns, err := h.PurchaseService.RecentPurchases(limit)
	if err != nil {
		respondError(c, response.CodeInternal, "交易查询失败", err)
		return
	}
	response.Success(c, txns)
}
