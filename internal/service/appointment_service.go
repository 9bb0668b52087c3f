package service

import (
	"context"
	"errors"
	"time"

	"github.com/luxoptic/optistore/internal/domain/model"
	"github.com/luxoptic/optistore/internal/infra/repository/db"
	"github.com/luxoptic/optistore/internal/metrics"
	"github.com/rs/zerolog"
)

var (
	ErrAppointmentNotExist   = errors.New("appointment is not exist")
	ErrAppointmentInPast     = errors.New("appointment time must be in the future")
	ErrNotAppointmentOwner   = errors.New("appointment does not belong to this user")
	ErrInvalidAppointmentSta = errors.New("invalid appointment status")
)

type IAppointmentService interface {
	CreateAppointment(ctx context.Context, appointment *model.Appointment) error
	GetAppointment(ctx context.Context, id int) (*model.Appointment, error)
	ListByUser(ctx context.Context, userID int) ([]model.Appointment, error)
	ListByDoctor(ctx context.Context, doctorID int) ([]model.Appointment, error)
	UpdateStatus(ctx context.Context, id int, status model.AppointmentStatus) error
	CancelByUser(ctx context.Context, userID, id int) error
}

type AppointmentService struct {
	appointmentRepo db.IAppointmentRepository
	userRepo        db.IUserRepository
	mailService     IMailService
	logger          *zerolog.Logger
	now             func() time.Time
}

func NewAppointmentService(
	appointmentRepo db.IAppointmentRepository,
	userRepo db.IUserRepository,
	mailService IMailService,
	logger *zerolog.Logger,
) *AppointmentService {
	return &AppointmentService{
		appointmentRepo: appointmentRepo,
		userRepo:        userRepo,
		mailService:     mailService,
		logger:          logger,
		now:             time.Now,
	}
}

// CreateAppointment 建立驗光預約，確認信fire-and-forget
func (s *AppointmentService) CreateAppointment(ctx context.Context, appointment *model.Appointment) error {
	if !appointment.ScheduledAt.After(s.now()) {
		return ErrAppointmentInPast
	}
	appointment.Status = model.AppointmentRequested

	if err := s.appointmentRepo.CreateAppointment(ctx, appointment); err != nil {
		return err
	}

	if user, err := s.userRepo.GetUserByID(ctx, appointment.UserID); err == nil && user != nil {
		go func(email string, appt model.Appointment) {
			if err := s.mailService.SendAppointmentConfirmation(email, &appt); err != nil {
				metrics.NotificationFailures.WithLabelValues("appointment_confirmation").Inc()
				s.logger.Error().Err(err).Int("appointment_id", appt.AppointmentID).Msg("failed to send appointment confirmation")
			}
		}(user.UserEmail, *appointment)
	}
	return nil
}

func (s *AppointmentService) GetAppointment(ctx context.Context, id int) (*model.Appointment, error) {
	appointment, err := s.appointmentRepo.GetAppointmentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotExist
	}
	return appointment, nil
}

func (s *AppointmentService) ListByUser(ctx context.Context, userID int) ([]model.Appointment, error) {
	return s.appointmentRepo.GetAppointmentsByUserID(ctx, userID)
}

func (s *AppointmentService) ListByDoctor(ctx context.Context, doctorID int) ([]model.Appointment, error) {
	return s.appointmentRepo.GetAppointmentsByDoctorID(ctx, doctorID)
}

// UpdateStatus doctor端更新預約狀態
func (s *AppointmentService) UpdateStatus(ctx context.Context, id int, status model.AppointmentStatus) error {
	switch status {
	case model.AppointmentConfirmed, model.AppointmentCompleted, model.AppointmentCancelled:
	default:
		return ErrInvalidAppointmentSta
	}

	appointment, err := s.appointmentRepo.GetAppointmentByID(ctx, id)
	if err != nil {
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotExist
	}
	return s.appointmentRepo.UpdateAppointmentStatus(ctx, id, status)
}

// CancelByUser customer取消自己的預約
func (s *AppointmentService) CancelByUser(ctx context.Context, userID, id int) error {
	appointment, err := s.appointmentRepo.GetAppointmentByID(ctx, id)
	if err != nil {
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotExist
	}
	if appointment.UserID != userID {
		return ErrNotAppointmentOwner
	}
	return s.appointmentRepo.UpdateAppointmentStatus(ctx, id, model.AppointmentCancelled)
}

var _ IAppointmentService = (*AppointmentService)(nil)
