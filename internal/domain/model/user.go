package model

// UserRole 帳號角色，決定可存取的dashboard route
type UserRole string

const (
	RoleCustomer     UserRole = "customer"
	RoleAdmin        UserRole = "admin"
	RoleDoctor       UserRole = "doctor"
	RoleDelivery     UserRole = "delivery"
	RoleManufacturer UserRole = "manufacturer"
)

func IsValidUserRole(role string) bool {
	switch UserRole(role) {
	case RoleCustomer, RoleAdmin, RoleDoctor, RoleDelivery, RoleManufacturer:
		return true
	default:
		return false
	}
}

type User struct {
	UserID         int            `gorm:"primaryKey" json:"user_id"`
	UserName       string         `gorm:"not null;type:varchar(50)" json:"user_name"`
	UserEmail      string         `gorm:"unique;not null;type:varchar(50)" json:"user_email"`
	UserPhone      string         `gorm:"unique;not null;type:varchar(50)" json:"user_phone"`
	UserAddress    string         `gorm:"not null;type:varchar(255)" json:"user_address"`
	HashedPassword string         `gorm:"not null;type:varchar(255)" json:"-"`
	Role           UserRole       `gorm:"not null;type:varchar(20);default:'customer'" json:"role"`
	Preferences    string         `gorm:"type:text" json:"preferences"` // JSON blob，client自理
	Orders         []Order        `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Prescriptions  []Prescription `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	BaseModel
}
