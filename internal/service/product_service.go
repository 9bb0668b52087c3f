package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/luxoptic/optistore/internal/domain/model"
	"github.com/luxoptic/optistore/internal/infra/repository/db"
	"github.com/luxoptic/optistore/internal/infra/repository/redis_repo"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrProductOutOfStock = errors.New("product out of stock")
	ErrNotProductOwner   = errors.New("product does not belong to this manufacturer")
)

type IProductService interface {
	GetProduct(ctx context.Context, productID string) (*model.Product, error)
	ListProducts(ctx context.Context, page, pageSize int, filters map[string]interface{}) ([]model.Product, int64, error)
	ListProductsByManufacturer(ctx context.Context, manufacturerID int) ([]model.Product, error)
	CreateProduct(ctx context.Context, product *model.Product) error
	UpdateProduct(ctx context.Context, product *model.Product) error
	DeleteProduct(ctx context.Context, productID string) error
	AdjustStock(ctx context.Context, productID string, manufacturerID int, stock uint) error
	SubProductStock(ctx context.Context, productID string, quantity uint) error
	RestoreProductStock(ctx context.Context, productID string, quantity uint) error
	ListCategories(ctx context.Context) ([]model.Category, error)
	ListFrameTypes(ctx context.Context) ([]model.FrameType, error)
	CreateCategory(ctx context.Context, category *model.Category) error
	DeleteCategory(ctx context.Context, id int) error
	CreateFrameType(ctx context.Context, frameType *model.FrameType) error
	DeleteFrameType(ctx context.Context, id int) error
}

// ProductService 商品資訊以db為主，庫存以redis為唯一真相來源
type ProductService struct {
	productRepo db.IProductRepository
	catalogRepo db.ICatalogRepository
	stockRepo   redis_repo.IStockRepository
}

func NewProductService(productRepo db.IProductRepository, catalogRepo db.ICatalogRepository, stockRepo redis_repo.IStockRepository) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		catalogRepo: catalogRepo,
		stockRepo:   stockRepo,
	}
}

func (s *ProductService) GetProduct(ctx context.Context, productID string) (*model.Product, error) {
	product, err := s.productRepo.GetProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

func (s *ProductService) ListProducts(ctx context.Context, page, pageSize int, filters map[string]interface{}) ([]model.Product, int64, error) {
	return s.productRepo.GetProductsPaginated(ctx, page, pageSize, filters)
}

func (s *ProductService) ListProductsByManufacturer(ctx context.Context, manufacturerID int) ([]model.Product, error) {
	return s.productRepo.GetProductsByManufacturer(ctx, manufacturerID)
}

// CreateProduct 建立商品並初始化redis庫存
func (s *ProductService) CreateProduct(ctx context.Context, product *model.Product) error {
	product.InStock = product.Stock > 0
	if err := s.productRepo.CreateProduct(ctx, product); err != nil {
		return err
	}
	if err := s.stockRepo.InitStock(ctx, product.ProductID, product.Stock); err != nil {
		return fmt.Errorf("failed to init product stock cache: %w", err)
	}
	return nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, product *model.Product) error {
	existing, err := s.productRepo.GetProductByID(ctx, product.ProductID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrProductNotFound
	}
	return s.productRepo.UpdateProduct(ctx, product)
}

func (s *ProductService) DeleteProduct(ctx context.Context, productID string) error {
	if err := s.productRepo.DeleteProduct(ctx, productID); err != nil {
		return err
	}
	return s.stockRepo.DropStock(ctx, productID)
}

// AdjustStock 製造商調整自有商品庫存
func (s *ProductService) AdjustStock(ctx context.Context, productID string, manufacturerID int, stock uint) error {
	product, err := s.productRepo.GetProductByID(ctx, productID)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrProductNotFound
	}
	if manufacturerID != 0 && product.ManufacturerID != manufacturerID {
		return ErrNotProductOwner
	}

	if err := s.productRepo.UpdateStock(ctx, productID, stock); err != nil {
		return err
	}
	return s.stockRepo.SetStock(ctx, productID, stock)
}

// SubProductStock 結帳時扣庫存，redis原子扣減
func (s *ProductService) SubProductStock(ctx context.Context, productID string, quantity uint) error {
	remaining, err := s.stockRepo.DeductStock(ctx, productID, quantity)
	if err != nil {
		if errors.Is(err, redis_repo.ErrProductStockNotEnough) {
			return fmt.Errorf("%w: product %s", ErrProductOutOfStock, productID)
		}
		return err
	}

	// db庫存非同步一致即可，失敗不rollback redis
	if err := s.productRepo.UpdateStock(ctx, productID, uint(remaining)); err != nil {
		return fmt.Errorf("failed to sync stock to db: %w", err)
	}
	return nil
}

// RestoreProductStock 取消訂單回補庫存
func (s *ProductService) RestoreProductStock(ctx context.Context, productID string, quantity uint) error {
	newStock, err := s.stockRepo.Restock(ctx, productID, quantity)
	if err != nil {
		return err
	}
	return s.productRepo.UpdateStock(ctx, productID, uint(newStock))
}

func (s *ProductService) ListCategories(ctx context.Context) ([]model.Category, error) {
	return s.catalogRepo.GetAllCategories(ctx)
}

func (s *ProductService) ListFrameTypes(ctx context.Context) ([]model.FrameType, error) {
	return s.catalogRepo.GetAllFrameTypes(ctx)
}

func (s *ProductService) CreateCategory(ctx context.Context, category *model.Category) error {
	return s.catalogRepo.CreateCategory(ctx, category)
}

func (s *ProductService) DeleteCategory(ctx context.Context, id int) error {
	return s.catalogRepo.DeleteCategory(ctx, id)
}

func (s *ProductService) CreateFrameType(ctx context.Context, frameType *model.FrameType) error {
	return s.catalogRepo.CreateFrameType(ctx, frameType)
}

func (s *ProductService) DeleteFrameType(ctx context.Context, id int) error {
	return s.catalogRepo.DeleteFrameType(ctx, id)
}

var _ IProductService = (*ProductService)(nil)
