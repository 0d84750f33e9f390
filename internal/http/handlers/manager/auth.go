package manager

import (
	"errors"

	"github.com/destore-next/internal/constants"
	"github.com/destore-next/internal/http/response"
	"github.com/destore-next/internal/service"

	"github.com/gin-gonic/gin"
)

// LoginRequest 店长登录请求
type LoginRequest struct {
	Username    string `json:"username" binding:"required"`
	Password    string `json:"password" binding:"required"`
	CaptchaID   string `json:"captcha_id"`
	CaptchaCode string `json:"captcha_code"`
}

// Login 店长登录
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "请求参数无效", err)
		return
	}

	if err := h.CaptchaService.Verify(constants.CaptchaSceneManagerLogin, service.CaptchaVerifyPayload{
		CaptchaID:   req.CaptchaID,
		CaptchaCode: req.CaptchaCode,
	}); err != nil {
		switch {
		case errors.Is(err, service.ErrCaptchaRequired):
			respondError(c, response.CodeBadRequest, "请输入验证码", nil)
		case errors.Is(err, service.ErrCaptchaInvalid):
			respondError(c, response.CodeBadRequest, "验证码错误", nil)
		default:
			respondError(c, response.CodeInternal, "验证码校验失败", err)
		}
		return
	}

	mgr, token, expiresAt, err := h.AuthService.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondError(c, response.CodeUnauthorized, "用户名或密码错误", nil)
			return
		}
		respondError(c, response.CodeInternal, "登录失败", err)
		return
	}

	response.Success(c, gin.H{
		"token":      token,
		"expires_at": expiresAt,
		"manager": gin.H{
			"id":       mgr.ID,
			"username": mgr.Username,
		},
	})
}

// Captcha 获取登录图片验证码
func (h *Handler) Captcha(c *gin.Context) {
	if !h.CaptchaService.Required(constants.CaptchaSceneManagerLogin) {
		response.Success(c, gin.H{"required": false})
		return
	}
	challenge, err := h.CaptchaService.GenerateImageChallenge()
	if err != nil {
		respondError(c, response.CodeInternal, "验证码生成失败", err)
		return
	}
	response.Success(c, gin.H{
		"required":     true,
		"captcha_id":   challenge.CaptchaID,
		"image_base64": challenge.ImageBase64,
	})
}
