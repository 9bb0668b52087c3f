package api

import "github.com/luxoptic/optistore/internal/api/handler"

type Server struct {
	AuthHandler         *handler.AuthHandler
	ProductHandler      *handler.ProductHandler
	CartHandler         *handler.CartHandler
	CheckoutHandler     *handler.CheckoutHandler
	OrderHandler        *handler.OrderHandler
	PrescriptionHandler *handler.PrescriptionHandler
	AppointmentHandler  *handler.AppointmentHandler
	AdminHandler        *handler.AdminHandler
	CatalogHandler      *handler.CatalogHandler
}

func NewServer(
	authHandler *handler.AuthHandler,
	productHandler *handler.ProductHandler,
	cartHandler *handler.CartHandler,
	checkoutHandler *handler.CheckoutHandler,
	orderHandler *handler.OrderHandler,
	prescriptionHandler *handler.PrescriptionHandler,
	appointmentHandler *handler.AppointmentHandler,
	adminHandler *handler.AdminHandler,
	catalogHandler *handler.CatalogHandler,
) *Server {
	return &Server{
		AuthHandler:         authHandler,
		ProductHandler:      productHandler,
		CartHandler:         cartHandler,
		CheckoutHandler:     checkoutHandler,
		OrderHandler:        orderHandler,
		PrescriptionHandler: prescriptionHandler,
		AppointmentHandler:  appointmentHandler,
		AdminHandler:        adminHandler,
		CatalogHandler:      catalogHandler,
	}
}
