package service

import (
	"github.com/destore-next/internal/logger"
	"github.com/destore-next/internal/models"
	"github.com/destore-next/internal/repository"
)

// 会员资格门槛：历史购买超过该次数方可入会
const loyaltyMinPurchases = 2

// LoyaltyService 会员服务
type LoyaltyService struct {
	customerRepo    repository.CustomerRepository
	transactionRepo repository.TransactionRepository
}

// NewLoyaltyService 创建会员服务
func NewLoyaltyService(customerRepo repository.CustomerRepository, transactionRepo repository.TransactionRepository) *LoyaltyService {
	return &LoyaltyService{
		customerRepo:    customerRepo,
		transactionRepo: transactionRepo,
	}
}

// EligibilityResult 会员资格评估结果
type EligibilityResult struct {
	CustomerID    uint  `json:"customer_id"`
	Eligible      bool  `json:"eligible"`
	AlreadyLoyal  bool  `json:"already_loyal"`
	PurchaseCount int64 `json:"purchase_count"`
}

// CheckEligibility 评估顾客是否可入会
// 条件：历史购买超过 2 次且尚未是会员
func (s *LoyaltyService) CheckEligibility(customerID uint) (*EligibilityResult, error) {
	customer, err := s.customerRepo.GetByID(customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ErrCustomerNotFound
	}

	count, err := s.transactionRepo.CountByCustomer(customerID)
	if err != nil {
		return nil, err
	}

	return &EligibilityResult{
		CustomerID:    customerID,
		Eligible:      count > loyaltyMinPurchases && !customer.Loyal,
		AlreadyLoyal:  customer.Loyal,
		PurchaseCount: count,
	}, nil
}

// Grant 授予会员身份（幂等，不可撤销）
func (s *LoyaltyService) Grant(customerID uint) error {
	customer, err := s.customerRepo.GetByID(customerID)
	if err != nil {
		return err
	}
	if customer == nil {
		return ErrCustomerNotFound
	}
	if customer.Loyal {
		return nil
	}
	if _, err := s.customerRepo.GrantLoyalty(customerID); err != nil {
		return err
	}
	logger.Infow("loyalty_granted", "customer_id", customerID)
	return nil
}

// Enroll 顾客入会
// 先评估资格，符合条件才授予；已是会员或次数不足返回 ErrNotEligible
func (s *LoyaltyService) Enroll(customerID uint) error {
	result, err := s.CheckEligibility(customerID)
	if err != nil {
		return err
	}
	if !result.Eligible {
		return ErrNotEligible
	}
	return s.Grant(customerID)
}

// CreateCustomer 创建顾客档案
func (s *LoyaltyService) CreateCustomer(name string) (*models.Customer, error) {
	customer := &models.Customer{Name: name}
	if err := s.customerRepo.Create(customer); err != nil {
		return nil, err
	}
	return customer, nil
}
