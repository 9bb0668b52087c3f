package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/luxoptic/optistore/internal/domain/model"
	"github.com/luxoptic/optistore/internal/infra/repository/db"
)

var (
	ErrInvalidPrescription  = errors.New("invalid prescription")
	ErrPrescriptionExpired  = errors.New("prescription has expired")
	ErrPrescriptionNotFound = errors.New("prescription not found")
	ErrNoActivePrescription = errors.New("no active prescription")
	ErrNotPrescriptionOwner = errors.New("prescription does not belong to this user")
)

type IPrescriptionService interface {
	CreatePrescription(ctx context.Context, prescription *model.Prescription) error
	GetPrescription(ctx context.Context, id int) (*model.Prescription, error)
	ListByUser(ctx context.Context, userID int) ([]model.Prescription, error)
	ListByDoctor(ctx context.Context, doctorID int) ([]model.Prescription, error)
	UpdatePrescription(ctx context.Context, prescription *model.Prescription) error
	SetStatus(ctx context.Context, id int, status model.PrescriptionStatus) error
	SetActive(ctx context.Context, userID, prescriptionID int) error
	VerifyCode(ctx context.Context, userID int, code string) (*model.Prescription, error)
	GetActivePrescription(ctx context.Context, userID int) (*model.Prescription, error)
}

type PrescriptionService struct {
	prescriptionRepo db.IPrescriptionRepository
	now              func() time.Time
}

func NewPrescriptionService(prescriptionRepo db.IPrescriptionRepository) *PrescriptionService {
	return &PrescriptionService{
		prescriptionRepo: prescriptionRepo,
		now:              time.Now,
	}
}

func (s *PrescriptionService) CreatePrescription(ctx context.Context, prescription *model.Prescription) error {
	return s.prescriptionRepo.CreatePrescription(ctx, prescription)
}

func (s *PrescriptionService) GetPrescription(ctx context.Context, id int) (*model.Prescription, error) {
	prescription, err := s.prescriptionRepo.GetPrescriptionByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if prescription == nil {
		return nil, ErrPrescriptionNotFound
	}
	return prescription, nil
}

func (s *PrescriptionService) ListByUser(ctx context.Context, userID int) ([]model.Prescription, error) {
	return s.prescriptionRepo.GetPrescriptionsByUserID(ctx, userID)
}

func (s *PrescriptionService) ListByDoctor(ctx context.Context, doctorID int) ([]model.Prescription, error) {
	return s.prescriptionRepo.GetPrescriptionsByDoctorID(ctx, doctorID)
}

func (s *PrescriptionService) UpdatePrescription(ctx context.Context, prescription *model.Prescription) error {
	return s.prescriptionRepo.UpdatePrescription(ctx, prescription)
}

func (s *PrescriptionService) SetStatus(ctx context.Context, id int, status model.PrescriptionStatus) error {
	return s.prescriptionRepo.UpdatePrescriptionStatus(ctx, id, status)
}

func (s *PrescriptionService) SetActive(ctx context.Context, userID, prescriptionID int) error {
	prescription, err := s.prescriptionRepo.GetPrescriptionByID(ctx, prescriptionID)
	if err != nil {
		return err
	}
	if prescription == nil {
		return ErrPrescriptionNotFound
	}
	if prescription.UserID != userID {
		return ErrNotPrescriptionOwner
	}
	return s.prescriptionRepo.SetActivePrescription(ctx, userID, prescriptionID)
}

// VerifyCode 處方驗證
// 精確比對使用者輸入的代碼，區分大小寫，查無即拒絕
// 錯誤:
//   - ErrInvalidPrescription: 代碼不存在、非本人、或狀態非verified
//   - ErrPrescriptionExpired: 處方已過期
func (s *PrescriptionService) VerifyCode(ctx context.Context, userID int, code string) (*model.Prescription, error) {
	prescription, err := s.prescriptionRepo.GetPrescriptionByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if prescription == nil {
		return nil, fmt.Errorf("%w: code %q not found", ErrInvalidPrescription, code)
	}
	if prescription.UserID != userID {
		return nil, fmt.Errorf("%w: code %q", ErrInvalidPrescription, code)
	}
	if prescription.Status != model.PrescriptionVerified {
		return nil, fmt.Errorf("%w: code %q is %s", ErrInvalidPrescription, code, prescription.Status)
	}
	if prescription.IsExpired(s.now()) {
		return nil, fmt.Errorf("%w: code %q expired on %s", ErrPrescriptionExpired, code, prescription.ExpiryDate.Format("2006-01-02"))
	}
	return prescription, nil
}

// GetActivePrescription 取結帳用處方
// 優先取flagged active，否則fallback到最新一張未過期的verified處方
// 過期處方永遠不會被選中
func (s *PrescriptionService) GetActivePrescription(ctx context.Context, userID int) (*model.Prescription, error) {
	prescriptions, err := s.prescriptionRepo.GetPrescriptionsByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	var fallback *model.Prescription
	for i := range prescriptions {
		p := &prescriptions[i]
		if p.Status != model.PrescriptionVerified || p.IsExpired(now) {
			continue
		}
		if p.Active {
			return p, nil
		}
		if fallback == nil {
			fallback = p
		}
	}

	if fallback != nil {
		return fallback, nil
	}
	return nil, ErrNoActivePrescription
}

var _ IPrescriptionService = (*PrescriptionService)(nil)
