package model

import (
	"github.com/shopspring/decimal"
)

// ProductCategory 商品分類
type ProductCategory string

const (
	CategoryEyeglasses ProductCategory = "eyeglasses"
	CategorySunglasses ProductCategory = "sunglasses"
	CategoryAccessory  ProductCategory = "accessory"
)

func IsValidProductCategory(category string) bool {
	switch ProductCategory(category) {
	case CategoryEyeglasses, CategorySunglasses, CategoryAccessory:
		return true
	default:
		return false
	}
}

type Product struct {
	ProductID   string          `gorm:"primaryKey;type:varchar(255)" json:"product_id"`
	Code        string          `gorm:"not null;type:varchar(100);unique" json:"code"`
	Name        string          `gorm:"not null;type:varchar(100)" json:"name"`
	Price       decimal.Decimal `gorm:"not null;type:decimal(10,2)" json:"price"`
	Stock       uint            `gorm:"not null;type:int" json:"stock"`
	Reserved    uint            `gorm:"not null;type:int;default:0" json:"reserved"`
	Category    ProductCategory `gorm:"not null;type:varchar(50);index" json:"category"`
	FrameShape  string          `gorm:"type:varchar(50)" json:"frame_shape"`
	FrameColor  string          `gorm:"type:varchar(50)" json:"frame_color"`
	Material    string          `gorm:"type:varchar(50)" json:"material"`
	ImageURLs   string          `gorm:"type:text" json:"image_urls"` // 逗號分隔
	Description string          `gorm:"not null;type:text" json:"description"`
	InStock     bool            `gorm:"not null;default:true" json:"in_stock"`
	// 製造商商品管理用
	ManufacturerID int `gorm:"index" json:"manufacturer_id"`
	BaseModel
}

type Category struct {
	CategoryID int    `gorm:"primaryKey" json:"category_id"`
	Name       string `gorm:"not null;type:varchar(50);unique" json:"name"`
	ImageURL   string `gorm:"type:varchar(255)" json:"image_url"`
	BaseModel
}

type FrameType struct {
	FrameTypeID int    `gorm:"primaryKey" json:"frame_type_id"`
	Name        string `gorm:"not null;type:varchar(50);unique" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	BaseModel
}
