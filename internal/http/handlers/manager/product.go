package manager

import (
	"errors"
	"strconv"

	handlershared "github.com/destore-next/internal/http/handlers/shared"
	"github.com/destore-next/internal/http/response"
	"github.com/destore-next/internal/models"
	"github.com/destore-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateProductRequest 创建商品请求
type CreateProductRequest struct {
	Name  string `json:"name" binding:"required"`
	Stock int    `json:"stock"`
	Price string `json:"price" binding:"required"`
}

// CreateProduct 创建商品
func (h *Handler) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}

	price, err := models.NewMoneyFromString(req.Price)
	if err != nil {
		respondError(c, response.CodeBadRequest, "价格格式无效", nil)
		return
	}

	product, err := h.ProductService.Create(service.CreateProductInput{
		Name:  req.Name,
		Stock: req.Stock,
		Price: price,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidPrice) {
			respondError(c, response.CodeBadRequest, "价格不能为负", nil)
			return
		}
		respondError(c, response.CodeBadRequest, "创建商品失败", err)
		return
	}

	response.Success(c, product)
}

// ChangePriceRequest 改价请求
type ChangePriceRequest struct {
	Price string `json:"price" binding:"required"`
}

// ChangePrice 修改商品单价
// 进入该接口前已通过登录与授权校验
func (h *Handler) ChangePrice(c *gin.Context) {
	managerID, ok := getManagerID(c)
	if !ok {
		return
	}

	productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || productID == 0 {
		respondError(c, response.CodeBadRequest, "商品ID无效", nil)
		return
	}

	var req ChangePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}

	price, err := models.NewMoneyFromString(req.Price)
	if err != nil {
		respondError(c, response.CodeBadRequest, "价格格式无效", nil)
		return
	}

	if err := h.ProductService.ChangePrice(uint(productID), price); err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			respondError(c, response.CodeNotFound, "商品不存在", nil)
		case errors.Is(err, service.ErrInvalidPrice):
			respondError(c, response.CodeBadRequest, "价格不能为负", nil)
		default:
			respondError(c, response.CodeInternal, "改价失败", err)
		}
		return
	}

	handlershared.RequestLog(c).Infow("manager_price_changed",
		"manager_id", managerID,
		"product_id", productID,
		"price", price.String(),
	)
	response.SuccessWithMsg(c, "改价成功", nil)
}

// RecordPromotionRequest 追加促销请求
type RecordPromotionRequest struct {
	Type string `json:"type" binding:"required"`
}

// RecordPromotion 为商品追加促销记录
func (h *Handler) RecordPromotion(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || productID == 0 {
		respondError(c, response.CodeBadRequest, "商品ID无效", nil)
		return
	}

	var req RecordPromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}

	sale, err := h.ProductService.RecordPromotion(uint(productID), req.Type)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			respondError(c, response.CodeNotFound, "商品不存在", nil)
		case errors.Is(err, service.ErrInvalidSaleType):
			respondError(c, response.CodeBadRequest, "促销类型无效", nil)
		default:
			respondError(c, response.CodeInternal, "促销记录写入失败", err)
		}
		return
	}

	response.Success(c, sale)
}
