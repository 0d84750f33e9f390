package manager

import (
	"errors"
	"strconv"
	"strings"

	"github.com/destore-next/internal/http/response"
	"github.com/destore-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateCustomerRequest 创建顾客请求
type CreateCustomerRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateCustomer 创建顾客档案
func (h *Handler) CreateCustomer(c *gin.Context) {
	var req CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		respondError(c, response.CodeBadRequest, "顾客姓名不能为空", nil)
		return
	}

	customer, err := h.LoyaltyService.CreateCustomer(name)
	if err != nil {
		respondError(c, response.CodeInternal, "创建顾客失败", err)
		return
	}
	response.Success(c, customer)
}

// LoyaltyEligibility 查询顾客入会资格
func (h *Handler) LoyaltyEligibility(c *gin.Context) {
	customerID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || customerID == 0 {
		respondError(c, response.CodeBadRequest, "顾客ID无效", nil)
		return
	}

	result, err := h.LoyaltyService.CheckEligibility(uint(customerID))
	if err != nil {
		if errors.Is(err, service.ErrCustomerNotFound) {
			respondError(c, response.CodeNotFound, "顾客不存在", nil)
			return
		}
		respondError(c, response.CodeInternal, "资格查询失败", err)
		return
	}

	response.Success(c, result)
}

// EnrollLoyalty 顾客入会
func (h *Handler) EnrollLoyalty(c *gin.Context) {
	customerID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || customerID == 0 {
		respondError(c, response.CodeBadRequest, "顾客ID无效", nil)
		return
	}

	if err := h.LoyaltyService.Enroll(uint(customerID)); err != nil {
		switch {
		case errors.Is(err, service.ErrCustomerNotFound):
			respondError(c, response.CodeNotFound, "顾客不存在", nil)
		case errors.Is(err, service.ErrNotEligible):
			respondError(c, response.CodeBadRequest, "顾客暂不符合入会条件", nil)
		default:
			respondError(c, response.CodeInternal, "入会失败", err)
		}
		return
	}

	response.SuccessWithMsg(c, "入会成功", nil)
}
