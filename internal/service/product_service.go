package service

import (
	"fmt"
	"strings"

	"github.com/destore-next/internal/constants"
	"github.com/destore-next/internal/logger"
	"github.com/destore-next/internal/models"
	"github.com/destore-next/internal/repository"
)

// ProductService 商品服务
type ProductService struct {
	productRepo repository.ProductRepository
	saleRepo    repository.SaleRepository
}

// NewProductService 创建商品服务
func NewProductService(productRepo repository.ProductRepository, saleRepo repository.SaleRepository) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		saleRepo:    saleRepo,
	}
}

// CreateProductInput 创建商品入参
type CreateProductInput struct {
	Name  string
	Stock int
	Price models.Money
}

// Create 创建商品
func (s *ProductService) Create(input CreateProductInput) (*models.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("product name is required")
	}
	if input.Stock < 0 {
		return nil, fmt.Errorf("product stock must not be negative")
	}
	if input.Price.IsNegative() {
		return nil, ErrInvalidPrice
	}

	product := &models.Product{
		Name:  name,
		Stock: input.Stock,
		Price: input.Price,
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Get 获取商品详情（含促销记录）
func (s *ProductService) Get(id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// List 商品列表
func (s *ProductService) List(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	return s.productRepo.List(filter)
}

// ChangePrice 修改商品单价
// 店长授权由调用方（路由层）先行完成
func (s *ProductService) ChangePrice(id uint, price models.Money) error {
	if price.IsNegative() {
		return ErrInvalidPrice
	}
	affected, err := s.productRepo.UpdatePrice(id, price)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProductNotFound
	}
	logger.Infow("product_price_changed", "product_id", id, "price", price.String())
	return nil
}

// RecordPromotion 为商品追加一条促销记录
func (s *ProductService) RecordPromotion(productID uint, saleType string) (*models.Sale, error) {
	saleType = strings.ToLower(strings.TrimSpace(saleType))
	if !constants.ValidSaleTypes[saleType] {
		return nil, ErrInvalidSaleType
	}

	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	sale := &models.Sale{
		ProductID: productID,
		Type:      saleType,
	}
	if err := s.saleRepo.Create(sale); err != nil {
		return nil, err
	}
	logger.Infow("promotion_recorded", "product_id", productID, "sale_id", sale.ID, "type", saleType)
	return sale, nil
}
