package model

import (
	"github.com/shopspring/decimal"
)

// LensType 鏡片類型
type LensType string

const (
	LensStandard     LensType = "standard"
	LensPrescription LensType = "prescription"
)

func IsValidLensType(t string) bool {
	switch LensType(t) {
	case LensStandard, LensPrescription:
		return true
	default:
		return false
	}
}

// LensOption 眼鏡類商品的鏡片選項，附掛在購物車項目上
type LensOption struct {
	Type   LensType        `json:"type"`
	Option string          `json:"option"` // 例如 single-vision, blue-light
	Price  decimal.Decimal `json:"price"`
	// 處方鏡片結帳前必須通過處方驗證
	PrescriptionCode string `json:"prescription_code,omitempty"`
	Verified         bool   `json:"verified"`
}

type Cart struct {
	UserID int        `json:"user_id"` // 外鍵，關聯到 User
	Items  []CartItem `json:"items"`
}

type CartItem struct {
	ProductID  string      `json:"product_id"`
	Quantity   int         `json:"quantity"`
	LensOption *LensOption `json:"lens_option,omitempty"`
}

// CartItemDetail 購物車項目還原商品資訊後的completeness view
// Redis購物車只儲存productID/quantity/lens，其餘由catalog還原
type CartItemDetail struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Category    ProductCategory `json:"category"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Amount      decimal.Decimal `json:"amount"`
	LensOption  *LensOption     `json:"lens_option,omitempty"`
}
