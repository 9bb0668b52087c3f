package handler

import (
	"strings"

	"github.com/luxoptic/optistore/internal/api/dto"
	"github.com/luxoptic/optistore/internal/domain/model"
	"github.com/luxoptic/optistore/internal/service"
)

func convertUserModelToDTO(user *model.User) dto.UserDTO {
	return dto.UserDTO{
		UserID:      user.UserID,
		UserName:    user.UserName,
		UserEmail:   user.UserEmail,
		UserPhone:   user.UserPhone,
		UserAddress: user.UserAddress,
		Role:        string(user.Role),
		Preferences: user.Preferences,
	}
}

func convertProductModelToDTO(product *model.Product) dto.ProductDTO {
	var imageURLs []string
	if product.ImageURLs != "" {
		imageURLs = strings.Split(product.ImageURLs, ",")
	}
	return dto.ProductDTO{
		ProductID:      product.ProductID,
		Code:           product.Code,
		ProductName:    product.Name,
		Description:    product.Description,
		Category:       string(product.Category),
		Price:          product.Price.StringFixed(2),
		Stock:          int(product.Stock),
		FrameShape:     product.FrameShape,
		FrameColor:     product.FrameColor,
		FrameMaterial:  product.Material,
		ImageURLs:      imageURLs,
		InStock:        product.InStock,
		ManufacturerID: product.ManufacturerID,
	}
}

func convertLensOptionToDTO(lens *model.LensOption) *dto.LensOptionDTO {
	if lens == nil {
		return nil
	}
	return &dto.LensOptionDTO{
		Type:             string(lens.Type),
		Option:           lens.Option,
		Price:            lens.Price,
		PrescriptionCode: lens.PrescriptionCode,
		Verified:         lens.Verified,
	}
}

func convertCartDetailToDTO(details []model.CartItemDetail) []dto.CartItemDTO {
	items := make([]dto.CartItemDTO, 0, len(details))
	for _, item := range details {
		items = append(items, dto.CartItemDTO{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Category:    string(item.Category),
			Quantity:    item.Quantity,
			Price:       item.Price.StringFixed(2),
			Amount:      item.Amount.StringFixed(2),
			LensOption:  convertLensOptionToDTO(item.LensOption),
		})
	}
	return items
}

func convertOrderModelToDTO(order *model.Order) dto.OrderDTO {
	items := make([]dto.OrderItemDTO, 0, len(order.OrderItems))
	for _, item := range order.OrderItems {
		orderItem := dto.OrderItemDTO{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price.StringFixed(2),
			LensType:  item.LensType,
		}
		if item.LensType != "" {
			orderItem.LensPrice = item.LensPrice.StringFixed(2)
		}
		items = append(items, orderItem)
	}

	return dto.OrderDTO{
		OrderID:           order.OrderID,
		UserID:            order.UserID,
		Items:             items,
		Subtotal:          order.Subtotal.StringFixed(2),
		ShippingFee:       order.ShippingFee.StringFixed(2),
		Tax:               order.Tax.StringFixed(2),
		Amount:            order.Amount.StringFixed(2),
		Status:            string(order.Status),
		ShippingAddress:   order.ShippingAddress,
		DeliveryMethod:    order.DeliveryMethod,
		TrackingNumber:    order.TrackingNumber,
		EstimatedDelivery: order.EstimatedDelivery,
		OrderDate:         order.OrderDate,
	}
}

func convertOrdersToDTO(orders []model.Order) []dto.OrderDTO {
	result := make([]dto.OrderDTO, 0, len(orders))
	for i := range orders {
		result = append(result, convertOrderModelToDTO(&orders[i]))
	}
	return result
}

func convertQuoteToDTO(quote *service.Quote) dto.QuoteDTO {
	return dto.QuoteDTO{
		ProductTotal: quote.ProductTotal.StringFixed(2),
		LensTotal:    quote.LensTotal.StringFixed(2),
		Subtotal:     quote.Subtotal.StringFixed(2),
		Shipping:     quote.Shipping.StringFixed(2),
		Tax:          quote.Tax.StringFixed(2),
		Total:        quote.Total.StringFixed(2),
	}
}

func convertPrescriptionModelToDTO(p *model.Prescription) dto.PrescriptionDTO {
	return dto.PrescriptionDTO{
		PrescriptionID:    p.PrescriptionID,
		UserID:            p.UserID,
		Code:              p.Code,
		RightSphere:       p.RightSphere,
		RightCylinder:     p.RightCylinder,
		RightAxis:         p.RightAxis,
		LeftSphere:        p.LeftSphere,
		LeftCylinder:      p.LeftCylinder,
		LeftAxis:          p.LeftAxis,
		PupillaryDistance: p.PupillaryDistance,
		DoctorName:        p.DoctorName,
		DateIssued:        p.DateIssued.Format("2006-01-02"),
		ExpiryDate:        p.ExpiryDate.Format("2006-01-02"),
		Status:            string(p.Status),
		Active:            p.Active,
	}
}

func convertPrescriptionsToDTO(prescriptions []model.Prescription) []dto.PrescriptionDTO {
	result := make([]dto.PrescriptionDTO, 0, len(prescriptions))
	for i := range prescriptions {
		result = append(result, convertPrescriptionModelToDTO(&prescriptions[i]))
	}
	return result
}
