package provider

import (
	"gorm.io/gorm"

	"github.com/destore-next/internal/authz"
	"github.com/destore-next/internal/config"
	"github.com/destore-next/internal/logger"
	"github.com/destore-next/internal/repository"
	"github.com/destore-next/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config *config.Config
	DB     *gorm.DB

	// Repositories
	ManagerRepo     repository.ManagerRepository
	ProductRepo     repository.ProductRepository
	CustomerRepo    repository.CustomerRepository
	SaleRepo        repository.SaleRepository
	TransactionRepo repository.TransactionRepository
	ReportRepo      repository.ReportRepository

	// Services
	AuthzService    *authz.Service
	AuthService     *service.AuthService
	CaptchaService  *service.CaptchaService
	ProductService  *service.ProductService
	PurchaseService *service.PurchaseService
	LoyaltyService  *service.LoyaltyService
	StockService    *service.StockService
	ReportService   *service.ReportService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config, db *gorm.DB) *Container {
	c := &Container{
		Config: cfg,
		DB:     db,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	c.ManagerRepo = repository.NewManagerRepository(c.DB)
	c.ProductRepo = repository.NewProductRepository(c.DB)
	c.CustomerRepo = repository.NewCustomerRepository(c.DB)
	c.SaleRepo = repository.NewSaleRepository(c.DB)
	c.TransactionRepo = repository.NewTransactionRepository(c.DB)
	c.ReportRepo = repository.NewReportRepository(c.DB)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(c.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	// 默认店长账号绑定内置角色
	if username := c.Config.Manager.Username; username != "" {
		manager, err := c.ManagerRepo.GetByUsername(username)
		if err != nil {
			logger.Warnw("provider_lookup_default_manager_failed", "username", username, "error", err)
		} else if manager != nil {
			if err := c.AuthzService.AssignManagerRole(manager.ID, authz.RoleStoreManager); err != nil {
				logger.Warnw("provider_assign_default_manager_role_failed", "manager_id", manager.ID, "error", err)
			}
		}
	}

	c.AuthService = service.NewAuthService(c.Config, c.ManagerRepo)
	c.CaptchaService = service.NewCaptchaService(c.Config)
	c.ProductService = service.NewProductService(c.ProductRepo, c.SaleRepo)
	c.PurchaseService = service.NewPurchaseService(c.ProductRepo, c.CustomerRepo, c.SaleRepo, c.TransactionRepo)
	c.LoyaltyService = service.NewLoyaltyService(c.CustomerRepo, c.TransactionRepo)
	c.StockService = service.NewStockService(c.Config, c.ProductRepo)
	c.ReportService = service.NewReportService(c.Config, c.ReportRepo)
}
