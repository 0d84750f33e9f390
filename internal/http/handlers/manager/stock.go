package manager

import (
	"github.com/destore-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// LowStock 查询低库存商品 ID 列表
func (h *Handler) LowStock(c *gin.Context) {
	ids, err := h.StockService.LowStock()
	if err != nil {
		respondError(c, response.CodeInternal, "低库存查询失败", err)
		return
	}
	response.Success(c, gin.H{"low_stock_ids": ids})
}

// RunStockCheck 手动触发一轮库存巡检
func (h *Handler) RunStockCheck(c *gin.Context) {
	result, err := h.StockService.RunStockCheck()
	if err != nil {
		respondError(c, response.CodeInternal, "库存巡检失败", err)
		return
	}
	response.Success(c, result)
}
