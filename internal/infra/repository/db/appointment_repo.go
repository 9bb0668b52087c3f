package db

import (
	"context"
	"errors"

	"github.com/luxoptic/optistore/internal/domain/model"
	"gorm.io/gorm"
)

type AppointmentRepo struct {
	db *DbDao
}

func NewAppointmentRepo(db *DbDao) *AppointmentRepo {
	return &AppointmentRepo{db: db}
}

// Create - 創建預約
func (s *AppointmentRepo) CreateAppointment(ctx context.Context, appointment *model.Appointment) error {
	return s.db.WithContext(ctx).Create(appointment).Error
}

// Read - 根據ID查詢預約
func (s *AppointmentRepo) GetAppointmentByID(ctx context.Context, id int) (*model.Appointment, error) {
	var appointment model.Appointment
	err := s.db.WithContext(ctx).First(&appointment, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &appointment, nil
}

// Read - 根據用戶查詢預約
func (s *AppointmentRepo) GetAppointmentsByUserID(ctx context.Context, userID int) ([]model.Appointment, error) {
	var appointments []model.Appointment
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("scheduled_at").Find(&appointments).Error
	return appointments, err
}

// Read - 根據醫師查詢預約
func (s *AppointmentRepo) GetAppointmentsByDoctorID(ctx context.Context, doctorID int) ([]model.Appointment, error) {
	var appointments []model.Appointment
	err := s.db.WithContext(ctx).Where("doctor_id = ?", doctorID).Order("scheduled_at").Find(&appointments).Error
	return appointments, err
}

// Update - 更新預約狀態
func (s *AppointmentRepo) UpdateAppointmentStatus(ctx context.Context, id int, status model.AppointmentStatus) error {
	return s.db.WithContext(ctx).Model(&model.Appointment{}).Where("appointment_id = ?", id).Update("status", status).Error
}

// Delete - 軟刪除預約
func (s *AppointmentRepo) DeleteAppointment(ctx context.Context, id int) error {
	return s.db.WithContext(ctx).Delete(&model.Appointment{}, id).Error
}
