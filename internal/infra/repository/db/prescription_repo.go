package db

import (
	"context"
	"errors"

	"github.com/luxoptic/optistore/internal/domain/model"
	"gorm.io/gorm"
)

type PrescriptionRepo struct {
	db *DbDao
}

func NewPrescriptionRepo(db *DbDao) *PrescriptionRepo {
	return &PrescriptionRepo{db: db}
}

// Create - 創建處方，doctor role使用
func (s *PrescriptionRepo) CreatePrescription(ctx context.Context, prescription *model.Prescription) error {
	return s.db.WithContext(ctx).Create(prescription).Error
}

// Read - 根據ID查詢處方
func (s *PrescriptionRepo) GetPrescriptionByID(ctx context.Context, id int) (*model.Prescription, error) {
	var prescription model.Prescription
	err := s.db.WithContext(ctx).First(&prescription, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &prescription, nil
}

// Read - 根據Code查詢處方
// Code比對精確且區分大小寫，postgres預設collation即滿足
func (s *PrescriptionRepo) GetPrescriptionByCode(ctx context.Context, code string) (*model.Prescription, error) {
	var prescription model.Prescription
	err := s.db.WithContext(ctx).Where("code = ?", code).First(&prescription).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &prescription, nil
}

// Read - 根據用戶查詢處方
func (s *PrescriptionRepo) GetPrescriptionsByUserID(ctx context.Context, userID int) ([]model.Prescription, error) {
	var prescriptions []model.Prescription
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("date_issued desc").Find(&prescriptions).Error
	return prescriptions, err
}

// Read - 根據開立醫師查詢處方
func (s *PrescriptionRepo) GetPrescriptionsByDoctorID(ctx context.Context, doctorID int) ([]model.Prescription, error) {
	var prescriptions []model.Prescription
	err := s.db.WithContext(ctx).Where("doctor_id = ?", doctorID).Order("date_issued desc").Find(&prescriptions).Error
	return prescriptions, err
}

// Update - 更新處方
func (s *PrescriptionRepo) UpdatePrescription(ctx context.Context, prescription *model.Prescription) error {
	return s.db.WithContext(ctx).Save(prescription).Error
}

// Update - 更新處方狀態
func (s *PrescriptionRepo) UpdatePrescriptionStatus(ctx context.Context, id int, status model.PrescriptionStatus) error {
	return s.db.WithContext(ctx).Model(&model.Prescription{}).Where("prescription_id = ?", id).Update("status", status).Error
}

// Update - 設定active處方
// 同一用戶同時間只會有一張active
func (s *PrescriptionRepo) SetActivePrescription(ctx context.Context, userID, prescriptionID int) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Prescription{}).Where("user_id = ?", userID).Update("active", false).Error; err != nil {
			return err
		}
		return tx.Model(&model.Prescription{}).
			Where("prescription_id = ? AND user_id = ?", prescriptionID, userID).
			Update("active", true).Error
	})
}

// Delete - 軟刪除處方
func (s *PrescriptionRepo) DeletePrescription(ctx context.Context, id int) error {
	return s.db.WithContext(ctx).Delete(&model.Prescription{}, id).Error
}
