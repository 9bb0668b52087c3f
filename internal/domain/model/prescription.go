package model

import "time"

// PrescriptionStatus 處方狀態，由doctor role維護
type PrescriptionStatus string

const (
	PrescriptionPending  PrescriptionStatus = "pending"
	PrescriptionVerified PrescriptionStatus = "verified"
	PrescriptionRejected PrescriptionStatus = "rejected"
)

type Prescription struct {
	PrescriptionID int `gorm:"primaryKey" json:"prescription_id"`
	// 使用者輸入驗證用的代碼，精確比對且區分大小寫
	Code   string `gorm:"not null;type:varchar(50);unique" json:"code"`
	UserID int    `gorm:"not null;index" json:"user_id"`

	RightSphere   float64 `gorm:"not null;type:decimal(4,2)" json:"right_sphere"`
	RightCylinder float64 `gorm:"not null;type:decimal(4,2)" json:"right_cylinder"`
	RightAxis     int     `gorm:"not null" json:"right_axis"`
	LeftSphere    float64 `gorm:"not null;type:decimal(4,2)" json:"left_sphere"`
	LeftCylinder  float64 `gorm:"not null;type:decimal(4,2)" json:"left_cylinder"`
	LeftAxis      int     `gorm:"not null" json:"left_axis"`

	PupillaryDistance float64            `gorm:"not null;type:decimal(4,1)" json:"pupillary_distance"`
	DoctorName        string             `gorm:"not null;type:varchar(50)" json:"doctor_name"`
	DoctorID          int                `gorm:"index" json:"doctor_id"`
	DateIssued        time.Time          `gorm:"not null" json:"date_issued"`
	ExpiryDate        time.Time          `gorm:"not null" json:"expiry_date"`
	Status            PrescriptionStatus `gorm:"not null;type:varchar(20);default:'pending'" json:"status"`
	Active            bool               `gorm:"not null;default:false" json:"active"`
	BaseModel
}

// IsExpired 過期處方不可用於結帳
func (p *Prescription) IsExpired(now time.Time) bool {
	return now.After(p.ExpiryDate)
}
