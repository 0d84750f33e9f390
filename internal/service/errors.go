package service

import "errors"

// 业务错误定义
// handler 层通过 errors.Is 映射为响应码
var (
	ErrProductNotFound    = errors.New("product not found")
	ErrCustomerNotFound   = errors.New("customer not found")
	ErrOutOfStock         = errors.New("product out of stock")
	ErrReportEmpty        = errors.New("no transactions to aggregate")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidPrice       = errors.New("invalid product price")
	ErrInvalidSaleType    = errors.New("invalid sale type")
	ErrNotEligible        = errors.New("customer not eligible for loyalty")
	ErrCaptchaRequired    = errors.New("captcha required")
	ErrCaptchaInvalid     = errors.New("captcha invalid")
)
