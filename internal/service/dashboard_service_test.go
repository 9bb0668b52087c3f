package service

import (
	"context"
	"testing"
	"time"

	"github.com/luxoptic/optistore/internal/domain/model"
	"github.com/luxoptic/optistore/internal/infra/repository/db"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeProductRepo struct {
	products []model.Product
}

func (f *fakeProductRepo) CreateProduct(ctx context.Context, product *model.Product) error {
	f.products = append(f.products, *product)
	return nil
}

func (f *fakeProductRepo) GetProductByID(ctx context.Context, productID string) (*model.Product, error) {
	for i := range f.products {
		if f.products[i].ProductID == productID {
			return &f.products[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeProductRepo) GetProductByCode(ctx context.Context, code string) (*model.Product, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeProductRepo) GetAllProducts(ctx context.Context) ([]model.Product, error) {
	return f.products, nil
}

func (f *fakeProductRepo) GetProductsByCategory(ctx context.Context, category model.ProductCategory) ([]model.Product, error) {
	return nil, nil
}

func (f *fakeProductRepo) GetProductsByManufacturer(ctx context.Context, manufacturerID int) ([]model.Product, error) {
	return nil, nil
}

func (f *fakeProductRepo) GetProductsPaginated(ctx context.Context, page, pageSize int, condition map[string]interface{}) ([]model.Product, int64, error) {
	return f.products, int64(len(f.products)), nil
}

func (f *fakeProductRepo) UpdateProduct(ctx context.Context, product *model.Product) error {
	return nil
}

func (f *fakeProductRepo) UpdateStock(ctx context.Context, id string, stock uint) error { return nil }

func (f *fakeProductRepo) DeleteProduct(ctx context.Context, id string) error { return nil }

func (f *fakeProductRepo) HardDeleteProduct(ctx context.Context, id string) error { return nil }

func (f *fakeProductRepo) GetProductsInStock(ctx context.Context) ([]model.Product, error) {
	return f.products, nil
}

type fakeCatalogRepo struct{}

func (f *fakeCatalogRepo) CreateCategory(ctx context.Context, category *model.Category) error {
	return nil
}

func (f *fakeCatalogRepo) GetAllCategories(ctx context.Context) ([]model.Category, error) {
	return nil, nil
}

func (f *fakeCatalogRepo) UpdateCategory(ctx context.Context, category *model.Category) error {
	return nil
}

func (f *fakeCatalogRepo) DeleteCategory(ctx context.Context, id int) error { return nil }

func (f *fakeCatalogRepo) CreateFrameType(ctx context.Context, frameType *model.FrameType) error {
	return nil
}

func (f *fakeCatalogRepo) GetAllFrameTypes(ctx context.Context) ([]model.FrameType, error) {
	return nil, nil
}

func (f *fakeCatalogRepo) UpdateFrameType(ctx context.Context, frameType *model.FrameType) error {
	return nil
}

func (f *fakeCatalogRepo) DeleteFrameType(ctx context.Context, id int) error { return nil }

// fakeStore 組合各fake repo充當UnifiedDB
type fakeStore struct {
	*fakeProductRepo
	*fakeOrderRepo
	*fakeUserRepo
	*fakePrescriptionRepo
	*fakeAppointmentRepo
	*fakeCatalogRepo
}

func (f *fakeStore) GetDB() *gorm.DB    { return nil }
func (f *fakeStore) InitMigrate() error { return nil }

var _ db.UnifiedDB = (*fakeStore)(nil)

func newFakeStore() *fakeStore {
	return &fakeStore{
		fakeProductRepo:      &fakeProductRepo{},
		fakeOrderRepo:        newFakeOrderRepo(),
		fakeUserRepo:         newFakeUserRepo(),
		fakePrescriptionRepo: &fakePrescriptionRepo{},
		fakeAppointmentRepo:  newFakeAppointmentRepo(),
		fakeCatalogRepo:      &fakeCatalogRepo{},
	}
}

func TestAdminOverviewCounts(t *testing.T) {
	store := newFakeStore()
	ctx := context.Background()

	store.fakeProductRepo.products = []model.Product{{ProductID: "p1"}, {ProductID: "p2"}}
	store.fakeOrderRepo.CreateOrder(ctx, sampleOrder("ORD-1", 1, model.OrderStatusPending))
	store.fakeOrderRepo.CreateOrder(ctx, sampleOrder("ORD-2", 2, model.OrderStatusPending))
	store.fakeOrderRepo.CreateOrder(ctx, sampleOrder("ORD-3", 1, model.OrderStatusShipped))
	store.fakeUserRepo.CreateUser(ctx, &model.User{UserID: 1, Role: model.RoleCustomer})
	store.fakeUserRepo.CreateUser(ctx, &model.User{UserID: 2, Role: model.RoleAdmin})

	svc := NewDashboardService(store)
	summary, err := svc.AdminOverview(ctx)
	require.NoError(t, err)

	require.Equal(t, int64(2), summary.Products)
	require.Equal(t, int64(2), summary.OrdersByStatus["pending"])
	require.Equal(t, int64(1), summary.OrdersByStatus["shipped"])
	require.Equal(t, int64(0), summary.OrdersByStatus["cancelled"])
	require.Equal(t, int64(1), summary.UsersByRole["customer"])
	require.Equal(t, int64(1), summary.UsersByRole["admin"])
	require.Equal(t, int64(0), summary.UsersByRole["doctor"])
}

func TestCustomerOverview(t *testing.T) {
	store := newFakeStore()
	ctx := context.Background()

	store.fakeOrderRepo.CreateOrder(ctx, sampleOrder("ORD-1", 7, model.OrderStatusPending))
	store.fakeOrderRepo.CreateOrder(ctx, sampleOrder("ORD-2", 8, model.OrderStatusPending))
	store.fakePrescriptionRepo.prescriptions = []model.Prescription{verifiedPrescription(1, 7, "RX-1")}
	store.fakeAppointmentRepo.CreateAppointment(ctx, &model.Appointment{
		UserID:      7,
		ScheduledAt: time.Now().Add(24 * time.Hour),
	})

	svc := NewDashboardService(store)
	summary, err := svc.CustomerOverview(ctx, 7)
	require.NoError(t, err)

	require.Len(t, summary.Orders, 1)
	require.Len(t, summary.Prescriptions, 1)
	require.Len(t, summary.Appointments, 1)
}
