package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/luxoptic/optistore/internal/domain/model"
	"github.com/luxoptic/optistore/internal/domain/model/event"
	"github.com/luxoptic/optistore/internal/infra/payment"
	"github.com/luxoptic/optistore/internal/infra/repository/db"
	"github.com/luxoptic/optistore/internal/infra/repository/eventdb"
	"github.com/luxoptic/optistore/internal/infra/repository/redis_repo"
	"github.com/luxoptic/optistore/internal/infra/stream"
	"github.com/shopspring/decimal"
)

// 測試用替身，只實作測試路徑會碰到的行為

type fakeProductService struct {
	products map[string]*model.Product
	stock    map[string]uint
	subErr   map[string]error

	mu           sync.Mutex
	subCalls     []string
	restoreCalls []string
}

func newFakeProductService() *fakeProductService {
	return &fakeProductService{
		products: make(map[string]*model.Product),
		stock:    make(map[string]uint),
		subErr:   make(map[string]error),
	}
}

func (f *fakeProductService) addProduct(p *model.Product) {
	f.products[p.ProductID] = p
	f.stock[p.ProductID] = p.Stock
}

func (f *fakeProductService) GetProduct(ctx context.Context, productID string) (*model.Product, error) {
	p, ok := f.products[productID]
	if !ok {
		return nil, fmt.Errorf("product %s not found", productID)
	}
	return p, nil
}

func (f *fakeProductService) ListProducts(ctx context.Context, page, pageSize int, filters map[string]interface{}) ([]model.Product, int64, error) {
	return nil, 0, nil
}

func (f *fakeProductService) ListProductsByManufacturer(ctx context.Context, manufacturerID int) ([]model.Product, error) {
	return nil, nil
}

func (f *fakeProductService) CreateProduct(ctx context.Context, product *model.Product) error {
	f.addProduct(product)
	return nil
}

func (f *fakeProductService) UpdateProduct(ctx context.Context, product *model.Product) error {
	f.products[product.ProductID] = product
	return nil
}

func (f *fakeProductService) DeleteProduct(ctx context.Context, productID string) error {
	delete(f.products, productID)
	return nil
}

func (f *fakeProductService) AdjustStock(ctx context.Context, productID string, manufacturerID int, stock uint) error {
	f.stock[productID] = stock
	return nil
}

func (f *fakeProductService) SubProductStock(ctx context.Context, productID string, quantity uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.subErr[productID]; ok {
		return err
	}
	f.subCalls = append(f.subCalls, productID)
	f.stock[productID] -= quantity
	return nil
}

func (f *fakeProductService) RestoreProductStock(ctx context.Context, productID string, quantity uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.restoreCalls = append(f.restoreCalls, productID)
	f.stock[productID] += quantity
	return nil
}

func (f *fakeProductService) ListCategories(ctx context.Context) ([]model.Category, error) {
	return nil, nil
}

func (f *fakeProductService) ListFrameTypes(ctx context.Context) ([]model.FrameType, error) {
	return nil, nil
}

func (f *fakeProductService) CreateCategory(ctx context.Context, category *model.Category) error {
	return nil
}

func (f *fakeProductService) DeleteCategory(ctx context.Context, id int) error { return nil }

func (f *fakeProductService) CreateFrameType(ctx context.Context, frameType *model.FrameType) error {
	return nil
}

func (f *fakeProductService) DeleteFrameType(ctx context.Context, id int) error { return nil }

var _ IProductService = (*fakeProductService)(nil)

type fakeCartService struct {
	cart    *model.Cart
	details []model.CartItemDetail
	cleared bool
}

func (f *fakeCartService) AddToCart(ctx context.Context, userID int, productID string, quantity int) error {
	return nil
}

func (f *fakeCartService) UpdateQuantity(ctx context.Context, userID int, productID string, quantity int) error {
	return nil
}

func (f *fakeCartService) RemoveFromCart(ctx context.Context, userID int, productID string) error {
	return nil
}

func (f *fakeCartService) ClearCart(ctx context.Context, userID int) error {
	f.cleared = true
	return nil
}

func (f *fakeCartService) UpdateLensOption(ctx context.Context, userID int, productID string, lens *model.LensOption) error {
	for i := range f.cart.Items {
		if f.cart.Items[i].ProductID == productID {
			f.cart.Items[i].LensOption = lens
		}
	}
	for i := range f.details {
		if f.details[i].ProductID == productID {
			f.details[i].LensOption = lens
		}
	}
	return nil
}

func (f *fakeCartService) GetCart(ctx context.Context, userID int) (*model.Cart, error) {
	if f.cart == nil {
		return &model.Cart{UserID: userID}, nil
	}
	return f.cart, nil
}

func (f *fakeCartService) GetCartDetail(ctx context.Context, userID int) ([]model.CartItemDetail, error) {
	return f.details, nil
}

func (f *fakeCartService) GetCartTotal(ctx context.Context, userID int) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, d := range f.details {
		total = total.Add(d.Price.Mul(decimal.NewFromInt(int64(d.Quantity))))
	}
	return total, nil
}

func (f *fakeCartService) GetLensTotal(ctx context.Context, userID int) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, d := range f.details {
		if d.LensOption == nil {
			continue
		}
		total = total.Add(d.LensOption.Price.Mul(decimal.NewFromInt(int64(d.Quantity))))
	}
	return total, nil
}

var _ ICartService = (*fakeCartService)(nil)

type fakePrescriptionRepo struct {
	prescriptions []model.Prescription
}

func (f *fakePrescriptionRepo) CreatePrescription(ctx context.Context, prescription *model.Prescription) error {
	f.prescriptions = append(f.prescriptions, *prescription)
	return nil
}

func (f *fakePrescriptionRepo) GetPrescriptionByID(ctx context.Context, id int) (*model.Prescription, error) {
	for i := range f.prescriptions {
		if f.prescriptions[i].PrescriptionID == id {
			return &f.prescriptions[i], nil
		}
	}
	return nil, nil
}

func (f *fakePrescriptionRepo) GetPrescriptionByCode(ctx context.Context, code string) (*model.Prescription, error) {
	for i := range f.prescriptions {
		if f.prescriptions[i].Code == code {
			return &f.prescriptions[i], nil
		}
	}
	return nil, nil
}

func (f *fakePrescriptionRepo) GetPrescriptionsByUserID(ctx context.Context, userID int) ([]model.Prescription, error) {
	var out []model.Prescription
	for _, p := range f.prescriptions {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePrescriptionRepo) GetPrescriptionsByDoctorID(ctx context.Context, doctorID int) ([]model.Prescription, error) {
	var out []model.Prescription
	for _, p := range f.prescriptions {
		if p.DoctorID == doctorID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePrescriptionRepo) UpdatePrescription(ctx context.Context, prescription *model.Prescription) error {
	return nil
}

func (f *fakePrescriptionRepo) UpdatePrescriptionStatus(ctx context.Context, id int, status model.PrescriptionStatus) error {
	for i := range f.prescriptions {
		if f.prescriptions[i].PrescriptionID == id {
			f.prescriptions[i].Status = status
		}
	}
	return nil
}

func (f *fakePrescriptionRepo) SetActivePrescription(ctx context.Context, userID, prescriptionID int) error {
	for i := range f.prescriptions {
		if f.prescriptions[i].UserID == userID {
			f.prescriptions[i].Active = f.prescriptions[i].PrescriptionID == prescriptionID
		}
	}
	return nil
}

func (f *fakePrescriptionRepo) DeletePrescription(ctx context.Context, id int) error { return nil }

var _ db.IPrescriptionRepository = (*fakePrescriptionRepo)(nil)

type fakeOrderRepo struct {
	orders map[string]*model.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[string]*model.Order)}
}

func (f *fakeOrderRepo) CreateOrder(ctx context.Context, order *model.Order) error {
	f.orders[order.OrderID] = order
	return nil
}

func (f *fakeOrderRepo) GetOrderByID(ctx context.Context, id string) (*model.Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return order, nil
}

func (f *fakeOrderRepo) GetOrdersByUserID(ctx context.Context, userID int) ([]model.Order, error) {
	var out []model.Order
	for _, o := range f.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) GetOrdersByDeliveryUser(ctx context.Context, deliveryUserID int) ([]model.Order, error) {
	var out []model.Order
	for _, o := range f.orders {
		if o.DeliveryUserID == deliveryUserID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) GetAllOrders(ctx context.Context) ([]model.Order, error) {
	var out []model.Order
	for _, o := range f.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (f *fakeOrderRepo) GetOrdersByStatus(ctx context.Context, status model.OrderStatus) ([]model.Order, error) {
	var out []model.Order
	for _, o := range f.orders {
		if o.Status == status {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) GetOrdersPaginated(ctx context.Context, page, pageSize int) ([]model.Order, int64, error) {
	orders, _ := f.GetAllOrders(ctx)
	return orders, int64(len(orders)), nil
}

func (f *fakeOrderRepo) UpdateOrder(ctx context.Context, order *model.Order) error {
	f.orders[order.OrderID] = order
	return nil
}

func (f *fakeOrderRepo) UpdateOrderStatus(ctx context.Context, id string, status model.OrderStatus) error {
	order, ok := f.orders[id]
	if !ok {
		return errors.New("record not found")
	}
	order.Status = status
	return nil
}

func (f *fakeOrderRepo) UpdateTrackingNumber(ctx context.Context, id string, trackingNumber string) error {
	order, ok := f.orders[id]
	if !ok {
		return errors.New("record not found")
	}
	order.TrackingNumber = trackingNumber
	return nil
}

func (f *fakeOrderRepo) HardDeleteOrder(ctx context.Context, id string) error {
	delete(f.orders, id)
	return nil
}

func (f *fakeOrderRepo) CountOrdersByStatus(ctx context.Context, status model.OrderStatus) (int64, error) {
	var count int64
	for _, o := range f.orders {
		if o.Status == status {
			count++
		}
	}
	return count, nil
}

var _ db.IOrderRepository = (*fakeOrderRepo)(nil)

type fakeUserRepo struct {
	users   map[int]*model.User
	patches []map[string]interface{}
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int]*model.User)}
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	if user.UserID == 0 {
		user.UserID = len(f.users) + 1
	}
	f.users[user.UserID] = user
	return user, nil
}

func (f *fakeUserRepo) GetUserByID(ctx context.Context, id int) (*model.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) GetAllUsers(ctx context.Context) ([]model.User, error) {
	var out []model.User
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUserRepo) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if u.UserEmail == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetUsersByRole(ctx context.Context, role model.UserRole) ([]model.User, error) {
	var out []model.User
	for _, u := range f.users {
		if u.Role == role {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) UpdateUser(ctx context.Context, user *model.User) error {
	f.users[user.UserID] = user
	return nil
}

func (f *fakeUserRepo) PatchUserFields(ctx context.Context, id int, updates map[string]interface{}) error {
	f.patches = append(f.patches, updates)
	return nil
}

func (f *fakeUserRepo) DeleteUser(ctx context.Context, id int) error {
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) CountUsersByRole(ctx context.Context, role model.UserRole) (int64, error) {
	var count int64
	for _, u := range f.users {
		if u.Role == role {
			count++
		}
	}
	return count, nil
}

var _ db.IUserRepository = (*fakeUserRepo)(nil)

type fakeJournal struct {
	appended map[string][]event.Event
	history  map[string][]eventdb.StatusRecord
}

func newFakeJournal() *fakeJournal {
	return &fakeJournal{
		appended: make(map[string][]event.Event),
		history:  make(map[string][]eventdb.StatusRecord),
	}
}

func (f *fakeJournal) AppendOrderEvent(ctx context.Context, orderID string, evt event.Event) error {
	f.appended[orderID] = append(f.appended[orderID], evt)
	return nil
}

func (f *fakeJournal) GetStatusHistory(ctx context.Context, orderID string) ([]eventdb.StatusRecord, error) {
	return f.history[orderID], nil
}

var _ eventdb.IOrderJournal = (*fakeJournal)(nil)

type fakeProducer struct {
	mu       sync.Mutex
	messages []stream.Message
}

func (f *fakeProducer) Produce(ctx context.Context, msgs []stream.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, msgs...)
	return nil
}

func (f *fakeProducer) Close() error { return nil }

var _ stream.Producer = (*fakeProducer)(nil)

type fakeSessionRepo struct {
	sessions map[int]*redis_repo.CheckoutSession
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[int]*redis_repo.CheckoutSession)}
}

func (f *fakeSessionRepo) Get(ctx context.Context, userID int) (*redis_repo.CheckoutSession, error) {
	session, ok := f.sessions[userID]
	if !ok {
		return nil, redis_repo.ErrCheckoutSessionNotFound
	}
	return session, nil
}

func (f *fakeSessionRepo) Save(ctx context.Context, session *redis_repo.CheckoutSession) error {
	f.sessions[session.UserID] = session
	return nil
}

func (f *fakeSessionRepo) Delete(ctx context.Context, userID int) error {
	delete(f.sessions, userID)
	return nil
}

var _ redis_repo.ICheckoutSessionRepo = (*fakeSessionRepo)(nil)

type fakePaymentClient struct {
	err     error
	charges []payment.ChargeRequest
}

func (f *fakePaymentClient) Charge(ctx context.Context, req payment.ChargeRequest) (*payment.ChargeResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.charges = append(f.charges, req)
	return &payment.ChargeResponse{
		TransactionID: "txn-test-001",
		Status:        "succeeded",
	}, nil
}

var _ payment.IPaymentClient = (*fakePaymentClient)(nil)

type fakeMailService struct {
	mu            sync.Mutex
	confirmations []string
	updates       []string
	appointments  []string
}

func (f *fakeMailService) SendOrderConfirmation(to string, order *model.Order, items []model.OrderItemData) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.confirmations = append(f.confirmations, to)
	return nil
}

func (f *fakeMailService) SendShippingUpdate(to string, orderID string, status model.OrderStatus, trackingNumber string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, to)
	return nil
}

func (f *fakeMailService) SendAppointmentConfirmation(to string, appointment *model.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.appointments = append(f.appointments, to)
	return nil
}

var _ IMailService = (*fakeMailService)(nil)
