package manager

import (
	handlershared "github.com/destore-next/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

func getManagerID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUintWithKeys(c, "manager_id", "店长ID无效", "店长ID类型无效")
}
