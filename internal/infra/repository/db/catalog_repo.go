package db

import (
	"context"

	"github.com/luxoptic/optistore/internal/domain/model"
)

// CatalogRepo 分類與框型的維護，admin dashboard使用
type CatalogRepo struct {
	db *DbDao
}

func NewCatalogRepo(db *DbDao) *CatalogRepo {
	return &CatalogRepo{db: db}
}

func (s *CatalogRepo) CreateCategory(ctx context.Context, category *model.Category) error {
	return s.db.WithContext(ctx).Create(category).Error
}

func (s *CatalogRepo) GetAllCategories(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	err := s.db.WithContext(ctx).Find(&categories).Error
	return categories, err
}

func (s *CatalogRepo) UpdateCategory(ctx context.Context, category *model.Category) error {
	return s.db.WithContext(ctx).Save(category).Error
}

func (s *CatalogRepo) DeleteCategory(ctx context.Context, id int) error {
	return s.db.WithContext(ctx).Delete(&model.Category{}, id).Error
}

func (s *CatalogRepo) CreateFrameType(ctx context.Context, frameType *model.FrameType) error {
	return s.db.WithContext(ctx).Create(frameType).Error
}

func (s *CatalogRepo) GetAllFrameTypes(ctx context.Context) ([]model.FrameType, error) {
	var frameTypes []model.FrameType
	err := s.db.WithContext(ctx).Find(&frameTypes).Error
	return frameTypes, err
}

func (s *CatalogRepo) UpdateFrameType(ctx context.Context, frameType *model.FrameType) error {
	return s.db.WithContext(ctx).Save(frameType).Error
}

func (s *CatalogRepo) DeleteFrameType(ctx context.Context, id int) error {
	return s.db.WithContext(ctx).Delete(&model.FrameType{}, id).Error
}
