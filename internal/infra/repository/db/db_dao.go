package db

import (
	"time"

	"github.com/luxoptic/optistore/internal/domain/model"
	"github.com/luxoptic/optistore/internal/pkg/util"
	"gorm.io/gorm"
)

type DbDao struct {
	*gorm.DB
}

func NewDbDao(conn *gorm.DB) *DbDao {
	return &DbDao{
		DB: conn,
	}
}

// 初始化db schema
// 冪等性
func (d *DbDao) InitMigrate() error {
	return d.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.Category{},
		&model.FrameType{},
		&model.Order{},
		&model.OrderItem{},
		&model.Prescription{},
		&model.Appointment{},
	)
}

// SeedDemoData 開發環境示範資料，demo帳號加兩張已驗證處方
// 冪等性，以unique key判斷已存在就跳過
func (d *DbDao) SeedDemoData() error {
	hashed, err := util.HashPassword("demo1234")
	if err != nil {
		return err
	}

	demoUser := &model.User{
		UserName:       "demo",
		UserEmail:      "demo@luxoptic.example",
		UserPhone:      "0900000001",
		UserAddress:    "100 Main St, Taipei",
		HashedPassword: hashed,
		Role:           model.RoleCustomer,
	}
	if err := d.Where("user_email = ?", demoUser.UserEmail).FirstOrCreate(demoUser).Error; err != nil {
		return err
	}

	issued := time.Now()
	prescriptions := []model.Prescription{
		{
			Code:              "RX-001",
			UserID:            demoUser.UserID,
			RightSphere:       -2.25,
			RightCylinder:     -0.50,
			RightAxis:         180,
			LeftSphere:        -2.00,
			LeftCylinder:      -0.75,
			LeftAxis:          175,
			PupillaryDistance: 62.0,
			DoctorName:        "Dr. Lin",
			DateIssued:        issued,
			ExpiryDate:        issued.AddDate(1, 0, 0),
			Status:            model.PrescriptionVerified,
			Active:            true,
		},
		{
			Code:              "RX-002",
			UserID:            demoUser.UserID,
			RightSphere:       -1.50,
			RightCylinder:     0,
			RightAxis:         0,
			LeftSphere:        -1.75,
			LeftCylinder:      -0.25,
			LeftAxis:          90,
			PupillaryDistance: 61.5,
			DoctorName:        "Dr. Lin",
			DateIssued:        issued,
			ExpiryDate:        issued.AddDate(1, 0, 0),
			Status:            model.PrescriptionVerified,
		},
	}
	for i := range prescriptions {
		if err := d.Where("code = ?", prescriptions[i].Code).FirstOrCreate(&prescriptions[i]).Error; err != nil {
			return err
		}
	}
	return nil
}
