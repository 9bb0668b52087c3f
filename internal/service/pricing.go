package service

import (
	"github.com/luxoptic/optistore/internal/constants"
	"github.com/shopspring/decimal"
)

var (
	freeShippingThreshold = decimal.RequireFromString(constants.FreeShippingThreshold)
	flatShippingFee       = decimal.RequireFromString(constants.FlatShippingFee)
	taxRate               = decimal.RequireFromString(constants.TaxRate)
)

// Quote 結帳金額試算
// 計算全程保留精度，四捨五入只發生在顯示層
type Quote struct {
	ProductTotal decimal.Decimal `json:"product_total"`
	LensTotal    decimal.Decimal `json:"lens_total"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	Shipping     decimal.Decimal `json:"shipping"`
	Tax          decimal.Decimal `json:"tax"`
	Total        decimal.Decimal `json:"total"`
}

// ComputeQuote 定價規則
// subtotal = 商品小計 + 鏡片小計
// 運費: subtotal >= 100 或自取免運，否則固定10
// 稅: subtotal 的 5%
func ComputeQuote(productTotal, lensTotal decimal.Decimal, delivery constants.DeliveryMethodEnum) Quote {
	subtotal := productTotal.Add(lensTotal)

	shipping := flatShippingFee
	if delivery == constants.DeliveryPickup || subtotal.GreaterThanOrEqual(freeShippingThreshold) {
		shipping = decimal.Zero
	}

	tax := subtotal.Mul(taxRate)

	return Quote{
		ProductTotal: productTotal,
		LensTotal:    lensTotal,
		Subtotal:     subtotal,
		Shipping:     shipping,
		Tax:          tax,
		Total:        subtotal.Add(shipping).Add(tax),
	}
}
