package constants

const (
	//分頁
	DefaultPagingSize int = 10
	DefaultPaging     int = 1

	//訂單
	OrderNumberPrefix        = "ORD-"
	FreeShippingThreshold    = "100"
	FlatShippingFee          = "10"
	TaxRate                  = "0.05"
	CartTTLHours         int = 72

	//結帳 session 過期時間
	CheckoutTTLMinutes int = 30
)

type SortOrderEnum string

const (
	DefaultSortOrder SortOrderEnum = "asc"
	SortOrderAsc     SortOrderEnum = "asc"
	SortOrderDesc    SortOrderEnum = "desc"
)

func IsValidSortOrderEnum(order string) bool {
	switch SortOrderEnum(order) {
	case SortOrderAsc, SortOrderDesc:
		return true
	default:
		return false
	}
}

// for api auth
type ContextKey string

const (
	AuthorizationHeaderKey  ContextKey = "authorization"
	AuthorizationTypeBearer ContextKey = "bearer"
	AuthorizationPayloadKey ContextKey = "authorization_payload"
)

type TokenDurationHour int

const (
	AccessTokenDuration  TokenDurationHour = 24
	RefreshTokenDuration TokenDurationHour = 72
)

type ENV string

const (
	Debug ENV = "debug"
	Dev   ENV = "development"
	Stag  ENV = "staging"
	Prod  ENV = "production"
)

type RequestID string

const (
	RequestIDKey RequestID = "request_id"
)

// DeliveryMethodEnum 結帳配送方式
type DeliveryMethodEnum string

const (
	DeliveryHome   DeliveryMethodEnum = "home"
	DeliveryPickup DeliveryMethodEnum = "pickup"
)

func IsValidDeliveryMethod(method string) bool {
	switch DeliveryMethodEnum(method) {
	case DeliveryHome, DeliveryPickup:
		return true
	default:
		return false
	}
}
