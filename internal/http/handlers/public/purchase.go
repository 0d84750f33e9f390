package public

import (
	"github.com/destore-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// CreatePurchaseRequest 购买请求
type CreatePurchaseRequest struct {
	CustomerID uint `json:"customer_id" binding:"required"`
	ProductID  uint `json:"product_id" binding:"required"`
}

// CreatePurchase 执行一次购买
func (h *Handler) CreatePurchase(c *gin.Context) {
	var req CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}

	receipt, err := h.PurchaseService.Purchase(req.CustomerID, req.ProductID)
	if err != nil {
		respondPurchaseError(c, err)
		return
	}

	response.Success(c, receipt)
}
