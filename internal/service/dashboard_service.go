package service

import (
	"context"

	"github.com/luxoptic/optistore/internal/domain/model"
	"github.com/luxoptic/optistore/internal/infra/repository/db"
	"golang.org/x/sync/errgroup"
)

// AdminSummary 管理端總覽，各計數並發查詢
type AdminSummary struct {
	Products       int64            `json:"products"`
	OrdersByStatus map[string]int64 `json:"orders_by_status"`
	UsersByRole    map[string]int64 `json:"users_by_role"`
}

// CustomerSummary 顧客端總覽
type CustomerSummary struct {
	Orders        []model.Order        `json:"orders"`
	Prescriptions []model.Prescription `json:"prescriptions"`
	Appointments  []model.Appointment  `json:"appointments"`
}

type IDashboardService interface {
	AdminOverview(ctx context.Context) (*AdminSummary, error)
	CustomerOverview(ctx context.Context, userID int) (*CustomerSummary, error)
}

type DashboardService struct {
	store db.UnifiedDB
}

func NewDashboardService(store db.UnifiedDB) *DashboardService {
	return &DashboardService{store: store}
}

// AdminOverview 各維度計數一次查齊，任一失敗整體失敗
func (s *DashboardService) AdminOverview(ctx context.Context) (*AdminSummary, error) {
	summary := &AdminSummary{
		OrdersByStatus: make(map[string]int64),
		UsersByRole:    make(map[string]int64),
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		products, err := s.store.GetAllProducts(gCtx)
		if err != nil {
			return err
		}
		summary.Products = int64(len(products))
		return nil
	})

	orderStatuses := []model.OrderStatus{
		model.OrderStatusPending,
		model.OrderStatusProcessing,
		model.OrderStatusReadyToDeliver,
		model.OrderStatusShipped,
		model.OrderStatusDelivered,
		model.OrderStatusCancelled,
	}
	orderCounts := make([]int64, len(orderStatuses))
	for i, status := range orderStatuses {
		g.Go(func() error {
			count, err := s.store.CountOrdersByStatus(gCtx, status)
			if err != nil {
				return err
			}
			orderCounts[i] = count
			return nil
		})
	}

	roles := []model.UserRole{
		model.RoleCustomer,
		model.RoleAdmin,
		model.RoleDoctor,
		model.RoleDelivery,
		model.RoleManufacturer,
	}
	roleCounts := make([]int64, len(roles))
	for i, role := range roles {
		g.Go(func() error {
			count, err := s.store.CountUsersByRole(gCtx, role)
			if err != nil {
				return err
			}
			roleCounts[i] = count
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, status := range orderStatuses {
		summary.OrdersByStatus[string(status)] = orderCounts[i]
	}
	for i, role := range roles {
		summary.UsersByRole[string(role)] = roleCounts[i]
	}
	return summary, nil
}

// CustomerOverview 顧客dashboard的三個清單並發查詢
func (s *DashboardService) CustomerOverview(ctx context.Context, userID int) (*CustomerSummary, error) {
	summary := &CustomerSummary{}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		orders, err := s.store.GetOrdersByUserID(gCtx, userID)
		if err != nil {
			return err
		}
		summary.Orders = orders
		return nil
	})
	g.Go(func() error {
		prescriptions, err := s.store.GetPrescriptionsByUserID(gCtx, userID)
		if err != nil {
			return err
		}
		summary.Prescriptions = prescriptions
		return nil
	})
	g.Go(func() error {
		appointments, err := s.store.GetAppointmentsByUserID(gCtx, userID)
		if err != nil {
			return err
		}
		summary.Appointments = appointments
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return summary, nil
}

var _ IDashboardService = (*DashboardService)(nil)
