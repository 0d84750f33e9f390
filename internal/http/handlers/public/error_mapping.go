package public

import (
	"errors"

	handlershared "github.com/destore-next/internal/http/handlers/shared"
	"github.com/destore-next/internal/http/response"
	"github.com/destore-next/internal/service"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondError(c, code, msg, err)
}

// respondPurchaseError 统一映射购买流程的业务错误
func respondPurchaseError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCustomerNotFound):
		respondError(c, response.CodeNotFound, "顾客不存在", nil)
	case errors.Is(err, service.ErrProductNotFound):
		respondError(c, response.CodeNotFound, "商品不存在", nil)
	case errors.Is(err, service.ErrOutOfStock):
		respondError(c, response.CodeBadRequest, "商品已售罄", nil)
	default:
		respondError(c, response.CodeInternal, "购买失败", err)
	}
}
