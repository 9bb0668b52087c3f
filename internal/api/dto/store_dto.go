package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductDTO 商品資訊，金額一律輸出兩位小數字串
type ProductDTO struct {
	ProductID      string   `json:"product_id"`
	Code           string   `json:"code"`
	ProductName    string   `json:"product_name"`
	Description    string   `json:"description,omitempty"`
	Category       string   `json:"category"`
	Price          string   `json:"price"`
	Stock          int      `json:"stock"`
	FrameShape     string   `json:"frame_shape,omitempty"`
	FrameColor     string   `json:"frame_color,omitempty"`
	FrameMaterial  string   `json:"frame_material,omitempty"`
	ImageURLs      []string `json:"image_urls,omitempty"`
	InStock        bool     `json:"in_stock"`
	ManufacturerID int      `json:"manufacturer_id,omitempty"`
}

type CreateProductDTO struct {
	Code          string          `json:"code"`
	ProductName   string          `json:"product_name"`
	Description   string          `json:"description"`
	Category      string          `json:"category"`
	Price         decimal.Decimal `json:"price"`
	Stock         uint            `json:"stock"`
	FrameShape    string          `json:"frame_shape"`
	FrameColor    string          `json:"frame_color"`
	FrameMaterial string          `json:"frame_material"`
	ImageURLs     []string        `json:"image_urls"`
}

type AdjustStockDTO struct {
	Stock uint `json:"stock"`
}

// PagedResponse 分頁清單外層
type PagedResponse[T any] struct {
	Items    []T   `json:"items"`
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
}

// LensOptionDTO 鏡片選項
type LensOptionDTO struct {
	Type             string          `json:"type"`
	Option           string          `json:"option"`
	Price            decimal.Decimal `json:"price"`
	PrescriptionCode string          `json:"prescription_code,omitempty"`
	Verified         bool            `json:"verified"`
}

type AddToCartDTO struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type UpdateCartQuantityDTO struct {
	Quantity int `json:"quantity"`
}

type CartItemDTO struct {
	ProductID   string         `json:"product_id"`
	ProductName string         `json:"product_name"`
	Category    string         `json:"category"`
	Quantity    int            `json:"quantity"`
	Price       string         `json:"price"`
	Amount      string         `json:"amount"`
	LensOption  *LensOptionDTO `json:"lens_option,omitempty"`
}

type CartDTO struct {
	Items        []CartItemDTO `json:"items"`
	ProductTotal string        `json:"product_total"`
	LensTotal    string        `json:"lens_total"`
}

// BillingDTO 結帳帳單資料
type BillingDTO struct {
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	City           string `json:"city"`
	State          string `json:"state"`
	Zip            string `json:"zip"`
	DeliveryMethod string `json:"delivery_method"`
}

type VerifyPrescriptionDTO struct {
	ProductID        string `json:"product_id"`
	PrescriptionCode string `json:"prescription_code"`
}

type PayDTO struct {
	CardToken string `json:"card_token"`
}

type QuoteDTO struct {
	ProductTotal string `json:"product_total"`
	LensTotal    string `json:"lens_total"`
	Subtotal     string `json:"subtotal"`
	Shipping     string `json:"shipping"`
	Tax          string `json:"tax"`
	Total        string `json:"total"`
}

type CheckoutSessionDTO struct {
	Step           string      `json:"step"`
	DeliveryMethod string      `json:"delivery_method,omitempty"`
	Billing        *BillingDTO `json:"billing,omitempty"`
}

type CheckoutResultDTO struct {
	OrderID       string   `json:"order_id"`
	TransactionID string   `json:"transaction_id"`
	Quote         QuoteDTO `json:"quote"`
}

type OrderItemDTO struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Price     string `json:"price"`
	LensType  string `json:"lens_type,omitempty"`
	LensPrice string `json:"lens_price,omitempty"`
}

type OrderDTO struct {
	OrderID           string         `json:"order_id"`
	UserID            int            `json:"user_id"`
	Items             []OrderItemDTO `json:"items"`
	Subtotal          string         `json:"subtotal"`
	ShippingFee       string         `json:"shipping_fee"`
	Tax               string         `json:"tax"`
	Amount            string         `json:"amount"`
	Status            string         `json:"status"`
	ShippingAddress   string         `json:"shipping_address"`
	DeliveryMethod    string         `json:"delivery_method"`
	TrackingNumber    string         `json:"tracking_number,omitempty"`
	EstimatedDelivery time.Time      `json:"estimated_delivery"`
	OrderDate         time.Time      `json:"order_date"`
}

type UpdateOrderStatusDTO struct {
	Status string `json:"status"`
}

type CancelOrderDTO struct {
	Reason string `json:"reason"`
}

type AssignDeliveryDTO struct {
	DeliveryUserID int `json:"delivery_user_id"`
}

// PrescriptionDTO 處方資訊
type PrescriptionDTO struct {
	PrescriptionID    int     `json:"prescription_id"`
	UserID            int     `json:"user_id"`
	Code              string  `json:"code"`
	RightSphere       float64 `json:"right_sphere"`
	RightCylinder     float64 `json:"right_cylinder"`
	RightAxis         int     `json:"right_axis"`
	LeftSphere        float64 `json:"left_sphere"`
	LeftCylinder      float64 `json:"left_cylinder"`
	LeftAxis          int     `json:"left_axis"`
	PupillaryDistance float64 `json:"pupillary_distance"`
	DoctorName        string  `json:"doctor_name"`
	DateIssued        string  `json:"date_issued"`
	ExpiryDate        string  `json:"expiry_date"`
	Status            string  `json:"status"`
	Active            bool    `json:"active"`
}

type CreatePrescriptionDTO struct {
	UserID            int     `json:"user_id"`
	Code              string  `json:"code"`
	RightSphere       float64 `json:"right_sphere"`
	RightCylinder     float64 `json:"right_cylinder"`
	RightAxis         int     `json:"right_axis"`
	LeftSphere        float64 `json:"left_sphere"`
	LeftCylinder      float64 `json:"left_cylinder"`
	LeftAxis          int     `json:"left_axis"`
	PupillaryDistance float64 `json:"pupillary_distance"`
	DateIssued        string  `json:"date_issued"`
	ExpiryDate        string  `json:"expiry_date"`
}

type UpdatePrescriptionStatusDTO struct {
	Status string `json:"status"`
}

type CreateAppointmentDTO struct {
	DoctorID    int       `json:"doctor_id"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Reason      string    `json:"reason"`
}

type UpdateAppointmentStatusDTO struct {
	Status string `json:"status"`
}

type CreateCategoryDTO struct {
	Name string `json:"name"`
}

type CreateFrameTypeDTO struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
