package router

import (
	"sort"
	"strings"

	"github.com/destore-next/internal/authz"
	"github.com/destore-next/internal/config"
	managerhandlers "github.com/destore-next/internal/http/handlers/manager"
	publichandlers "github.com/destore-next/internal/http/handlers/public"
	"github.com/destore-next/internal/http/response"
	"github.com/destore-next/internal/logger"
	"github.com/destore-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/店长分组）
	publicHandler := publichandlers.New(c)
	managerHandler := managerhandlers.New(c)
	limiter := NewRateLimiter()
	loginRule := RateLimitRule{
		Prefix:        "rate:manager_login",
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
		Message:       "登录尝试过于频繁",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 公开接口（收银终端）
		apiV1.GET("/products", publicHandler.ListProducts)
		apiV1.GET("/products/:id", publicHandler.GetProduct)
		apiV1.POST("/purchases", publicHandler.CreatePurchase)

		// 店长接口
		manager := apiV1.Group("/manager")
		{
			// 登录接口（无需鉴权）
			manager.POST("/login", RateLimitMiddleware(limiter, loginRule, KeyByIPAndJSONField("username")), managerHandler.Login)
			manager.GET("/captcha", managerHandler.Captcha)

			// 需要鉴权的接口
			authorized := manager.Use(
				ManagerJWTAuthMiddleware(c.AuthService, c.ManagerRepo),
				ManagerRBACMiddleware(c.AuthzService),
			)
			{
				// 商品与价格管理
				authorized.POST("/products", managerHandler.CreateProduct)
				authorized.PUT("/products/:id/price", managerHandler.ChangePrice)
				authorized.POST("/products/:id/promotions", managerHandler.RecordPromotion)

				// 库存管理
				authorized.GET("/stock/low", managerHandler.LowStock)
				authorized.POST("/stock/check", managerHandler.RunStockCheck)

				// 顾客与会员管理
				authorized.POST("/customers", managerHandler.CreateCustomer)
				authorized.GET("/customers/:id/loyalty/eligibility", managerHandler.LoyaltyEligibility)
				authorized.POST("/customers/:id/loyalty", managerHandler.EnrollLoyalty)

				// 报表
				authorized.GET("/reports/monthly", managerHandler.MonthlyReport)
				authorized.GET("/transactions/recent", managerHandler.RecentTransactions)

				// 权限对象清单
				authorized.GET("/authz/permissions", func(ctx *gin.Context) {
					response.Success(ctx, buildManagerPermissionCatalog(r))
				})
			}
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}

type managerPermissionCatalogItem struct {
	Module     string `json:"module"`
	Method     string `json:"method"`
	Object     string `json:"object"`
	Permission string `json:"permission"`
}

func buildManagerPermissionCatalog(engine *gin.Engine) []managerPermissionCatalogItem {
	if engine == nil {
		return []managerPermissionCatalogItem{}
	}

	routes := engine.Routes()
	seen := make(map[string]struct{}, len(routes))
	items := make([]managerPermissionCatalogItem, 0, len(routes))

	for _, item := range routes {
		method := strings.ToUpper(strings.TrimSpace(item.Method))
		if method == "" || method == "OPTIONS" || method == "HEAD" {
			continue
		}
		if !strings.HasPrefix(item.Path, "/api/v1/manager/") {
			continue
		}
		if item.Path == "/api/v1/manager/login" || item.Path == "/api/v1/manager/captcha" {
			continue
		}
		object := authz.NormalizeObject(item.Path)
		permission := method + ":" + object
		if _, exists := seen[permission]; exists {
			continue
		}
		seen[permission] = struct{}{}
		items = append(items, managerPermissionCatalogItem{
			Module:     deriveManagerPermissionModule(object),
			Method:     method,
			Object:     object,
			Permission: permission,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Module == items[j].Module {
			if items[i].Object == items[j].Object {
				return items[i].Method < items[j].Method
			}
			return items[i].Object < items[j].Object
		}
		return items[i].Module < items[j].Module
	})

	return items
}

func deriveManagerPermissionModule(object string) string {
	normalized := strings.TrimPrefix(strings.TrimSpace(object), "/")
	if normalized == "" {
		return "system"
	}
	segments := strings.Split(normalized, "/")
	if len(segments) <= 1 {
		return segments[0]
	}
	if segments[0] != "manager" {
		return segments[0]
	}
	return segments[1]
}
