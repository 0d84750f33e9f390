package manager

import "github.com/destore-next/internal/provider"

// Handler 店长管理接口处理器入口
// 说明：该处理器下所有写操作都要求已通过登录与授权校验。
type Handler struct {
	*provider.Container
}

// New 创建店长处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
