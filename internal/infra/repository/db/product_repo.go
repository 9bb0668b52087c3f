package db

import (
	"context"
	"errors"

	"github.com/luxoptic/optistore/internal/domain/model"
	"gorm.io/gorm"
)

type ProductDBRepo struct {
	db *DbDao
}

func NewProductDBRepo(db *DbDao) *ProductDBRepo {
	return &ProductDBRepo{db: db}
}

// Create - 創建商品
func (s *ProductDBRepo) CreateProduct(ctx context.Context, product *model.Product) error {
	return s.db.WithContext(ctx).Create(product).Error
}

// Read - 根據ID查詢商品
func (s *ProductDBRepo) GetProductByID(ctx context.Context, productID string) (*model.Product, error) {
	var product model.Product
	err := s.db.WithContext(ctx).First(&product, "product_id = ?", productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// Read - 根據Code查詢商品
func (s *ProductDBRepo) GetProductByCode(ctx context.Context, code string) (*model.Product, error) {
	var product model.Product
	err := s.db.WithContext(ctx).Where("code = ?", code).First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// Read - 查詢所有商品
func (s *ProductDBRepo) GetAllProducts(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := s.db.WithContext(ctx).Find(&products).Error
	return products, err
}

// Read - 根據分類查詢商品
func (s *ProductDBRepo) GetProductsByCategory(ctx context.Context, category model.ProductCategory) ([]model.Product, error) {
	var products []model.Product
	err := s.db.WithContext(ctx).Where("category = ?", category).Find(&products).Error
	return products, err
}

// Read - 根據製造商查詢商品
func (s *ProductDBRepo) GetProductsByManufacturer(ctx context.Context, manufacturerID int) ([]model.Product, error) {
	var products []model.Product
	err := s.db.WithContext(ctx).Where("manufacturer_id = ?", manufacturerID).Find(&products).Error
	return products, err
}

// 分頁查詢商品，可選分類/框型/材質過濾
func (s *ProductDBRepo) GetProductsPaginated(ctx context.Context, page, pageSize int, condition map[string]interface{}) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	offset := (page - 1) * pageSize
	query := s.db.WithContext(ctx).Model(&model.Product{})

	for key, value := range condition {
		query = query.Where(key+" = ?", value)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Offset(offset).Limit(pageSize).Find(&products).Error
	return products, total, err
}

// Update - 更新商品
func (s *ProductDBRepo) UpdateProduct(ctx context.Context, product *model.Product) error {
	return s.db.WithContext(ctx).Save(product).Error
}

// Update - 更新庫存
func (s *ProductDBRepo) UpdateStock(ctx context.Context, id string, stock uint) error {
	return s.db.WithContext(ctx).Model(&model.Product{}).Where("product_id = ?", id).
		Updates(map[string]interface{}{"stock": stock, "in_stock": stock > 0}).Error
}

// Delete - 軟刪除商品
func (s *ProductDBRepo) DeleteProduct(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Where("product_id = ?", id).Delete(&model.Product{}).Error
}

// Delete - 硬刪除商品
func (s *ProductDBRepo) HardDeleteProduct(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Unscoped().Where("product_id = ?", id).Delete(&model.Product{}).Error
}

// Read - 查詢有庫存商品
func (s *ProductDBRepo) GetProductsInStock(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := s.db.WithContext(ctx).Where("in_stock = ?", true).Find(&products).Error
	return products, err
}
