package db

import (
	"context"

	"github.com/luxoptic/optistore/internal/domain/model"
	"gorm.io/gorm"
)

// UnifiedDB 統一的資料庫介面
type UnifiedDB interface {
	// 基礎操作
	GetDB() *gorm.DB
	InitMigrate() error

	IProductRepository
	IOrderRepository
	IUserRepository
	IPrescriptionRepository
	IAppointmentRepository
	ICatalogRepository
}

// IProductRepository Product 相關操作介面
type IProductRepository interface {
	CreateProduct(ctx context.Context, product *model.Product) error
	GetProductByID(ctx context.Context, productID string) (*model.Product, error)
	GetProductByCode(ctx context.Context, code string) (*model.Product, error)
	GetAllProducts(ctx context.Context) ([]model.Product, error)
	GetProductsByCategory(ctx context.Context, category model.ProductCategory) ([]model.Product, error)
	GetProductsByManufacturer(ctx context.Context, manufacturerID int) ([]model.Product, error)
	GetProductsPaginated(ctx context.Context, page, pageSize int, condition map[string]interface{}) ([]model.Product, int64, error)
	UpdateProduct(ctx context.Context, product *model.Product) error
	UpdateStock(ctx context.Context, id string, stock uint) error
	DeleteProduct(ctx context.Context, id string) error
	HardDeleteProduct(ctx context.Context, id string) error
	GetProductsInStock(ctx context.Context) ([]model.Product, error)
}

// IOrderRepository Order 相關操作介面
type IOrderRepository interface {
	CreateOrder(ctx context.Context, order *model.Order) error
	GetOrderByID(ctx context.Context, id string) (*model.Order, error)
	GetOrdersByUserID(ctx context.Context, userID int) ([]model.Order, error)
	GetOrdersByDeliveryUser(ctx context.Context, deliveryUserID int) ([]model.Order, error)
	GetAllOrders(ctx context.Context) ([]model.Order, error)
	GetOrdersByStatus(ctx context.Context, status model.OrderStatus) ([]model.Order, error)
	GetOrdersPaginated(ctx context.Context, page, pageSize int) ([]model.Order, int64, error)
	UpdateOrder(ctx context.Context, order *model.Order) error
	UpdateOrderStatus(ctx context.Context, id string, status model.OrderStatus) error
	UpdateTrackingNumber(ctx context.Context, id string, trackingNumber string) error
	HardDeleteOrder(ctx context.Context, id string) error
	CountOrdersByStatus(ctx context.Context, status model.OrderStatus) (int64, error)
}

// IUserRepository User 相關操作介面
type IUserRepository interface {
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)
	GetUserByID(ctx context.Context, id int) (*model.User, error)
	GetAllUsers(ctx context.Context) ([]model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUsersByRole(ctx context.Context, role model.UserRole) ([]model.User, error)
	UpdateUser(ctx context.Context, user *model.User) error
	PatchUserFields(ctx context.Context, id int, updates map[string]interface{}) error
	DeleteUser(ctx context.Context, id int) error
	CountUsersByRole(ctx context.Context, role model.UserRole) (int64, error)
}

// IPrescriptionRepository Prescription 相關操作介面
type IPrescriptionRepository interface {
	CreatePrescription(ctx context.Context, prescription *model.Prescription) error
	GetPrescriptionByID(ctx context.Context, id int) (*model.Prescription, error)
	GetPrescriptionByCode(ctx context.Context, code string) (*model.Prescription, error)
	GetPrescriptionsByUserID(ctx context.Context, userID int) ([]model.Prescription, error)
	GetPrescriptionsByDoctorID(ctx context.Context, doctorID int) ([]model.Prescription, error)
	UpdatePrescription(ctx context.Context, prescription *model.Prescription) error
	UpdatePrescriptionStatus(ctx context.Context, id int, status model.PrescriptionStatus) error
	SetActivePrescription(ctx context.Context, userID, prescriptionID int) error
	DeletePrescription(ctx context.Context, id int) error
}

// IAppointmentRepository Appointment 相關操作介面
type IAppointmentRepository interface {
	CreateAppointment(ctx context.Context, appointment *model.Appointment) error
	GetAppointmentByID(ctx context.Context, id int) (*model.Appointment, error)
	GetAppointmentsByUserID(ctx context.Context, userID int) ([]model.Appointment, error)
	GetAppointmentsByDoctorID(ctx context.Context, doctorID int) ([]model.Appointment, error)
	UpdateAppointmentStatus(ctx context.Context, id int, status model.AppointmentStatus) error
	DeleteAppointment(ctx context.Context, id int) error
}

// ICatalogRepository 分類/框型 相關操作介面
type ICatalogRepository interface {
	CreateCategory(ctx context.Context, category *model.Category) error
	GetAllCategories(ctx context.Context) ([]model.Category, error)
	UpdateCategory(ctx context.Context, category *model.Category) error
	DeleteCategory(ctx context.Context, id int) error
	CreateFrameType(ctx context.Context, frameType *model.FrameType) error
	GetAllFrameTypes(ctx context.Context) ([]model.FrameType, error)
	UpdateFrameType(ctx context.Context, frameType *model.FrameType) error
	DeleteFrameType(ctx context.Context, id int) error
}

// UnifiedDBImpl 統一資料庫實現
type UnifiedDBImpl struct {
	db    *gorm.DB
	dbDao *DbDao
	*ProductDBRepo
	*OrderRepo
	*UserRepo
	*PrescriptionRepo
	*AppointmentRepo
	*CatalogRepo
}

// NewUnifiedDB 創建新的統一資料庫實例
func NewUnifiedDB(db *gorm.DB) *UnifiedDBImpl {
	dbDao := NewDbDao(db)
	return &UnifiedDBImpl{
		db:               db,
		dbDao:            dbDao,
		ProductDBRepo:    NewProductDBRepo(dbDao),
		OrderRepo:        NewOrderRepo(dbDao),
		UserRepo:         NewUserRepo(dbDao),
		PrescriptionRepo: NewPrescriptionRepo(dbDao),
		AppointmentRepo:  NewAppointmentRepo(dbDao),
		CatalogRepo:      NewCatalogRepo(dbDao),
	}
}

func (u *UnifiedDBImpl) GetDB() *gorm.DB {
	return u.db
}

func (u *UnifiedDBImpl) InitMigrate() error {
	return u.dbDao.InitMigrate()
}
