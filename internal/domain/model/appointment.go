package model

import "time"

type AppointmentStatus string

const (
	AppointmentRequested AppointmentStatus = "requested"
	AppointmentConfirmed AppointmentStatus = "confirmed"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

type Appointment struct {
	AppointmentID int               `gorm:"primaryKey" json:"appointment_id"`
	UserID        int               `gorm:"not null;index" json:"user_id"`
	DoctorID      int               `gorm:"index" json:"doctor_id"`
	ScheduledAt   time.Time         `gorm:"not null" json:"scheduled_at"`
	Reason        string            `gorm:"type:varchar(255)" json:"reason"`
	Status        AppointmentStatus `gorm:"not null;type:varchar(20);default:'requested'" json:"status"`
	BaseModel
}
