package router

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	_ "github.com/luxoptic/optistore/docs"
	"github.com/luxoptic/optistore/internal/api"
	m "github.com/luxoptic/optistore/internal/api/middleware"
	"github.com/luxoptic/optistore/internal/domain/model"
	"github.com/luxoptic/optistore/internal/infra/token"
	"github.com/luxoptic/optistore/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger"
)

func SetupRouter(server *api.Server, tokenMaker token.Maker, logger *zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// 全局中間件
	r.Use(m.RequestIdMiddleware)
	r.Use(m.AuthPayloadMiddleware(tokenMaker))
	r.Use(middleware.RealIP)
	r.Use(metrics.Middleware)
	r.Use(m.LoggerMiddleware(logger))

	// Swagger 文檔
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/", http.StatusMovedPermanently)
	})
	r.Get("/swagger/*", httpSwagger.Handler())

	r.Handle("/metrics", promhttp.Handler())

	// API 路由
	r.Route("/api/v1", func(r chi.Router) {
		//Auth相關路由
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", server.AuthHandler.Register)
			r.Post("/login", server.AuthHandler.Login)
			r.With(m.AuthMiddleware).Get("/me", server.AuthHandler.Me)
			r.With(m.AuthMiddleware).Patch("/me", server.AuthHandler.UpdateProfile)
			r.With(m.AuthMiddleware).Put("/me/preferences", server.AuthHandler.UpdatePreferences)
		})

		//公開瀏覽
		r.Get("/products", server.ProductHandler.ListProducts)
		r.Get("/products/{id}", server.ProductHandler.GetProduct)
		r.Get("/categories", server.ProductHandler.ListCategories)
		r.Get("/frame-types", server.ProductHandler.ListFrameTypes)

		//customer
		r.Group(func(r chi.Router) {
			r.Use(m.AuthMiddleware)

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", server.CartHandler.GetCart)
				r.Delete("/", server.CartHandler.ClearCart)
				r.Post("/items", server.CartHandler.AddToCart)
				r.Patch("/items/{id}", server.CartHandler.UpdateQuantity)
				r.Delete("/items/{id}", server.CartHandler.RemoveItem)
				r.Put("/items/{id}/lens", server.CartHandler.SetLensOption)
			})

			r.Route("/checkout", func(r chi.Router) {
				r.Post("/", server.CheckoutHandler.Start)
				r.Get("/", server.CheckoutHandler.GetSession)
				r.Delete("/", server.CheckoutHandler.Abandon)
				r.Post("/billing", server.CheckoutHandler.SubmitBilling)
				r.Post("/verify-prescription", server.CheckoutHandler.VerifyPrescription)
				r.Get("/quote", server.CheckoutHandler.Quote)
				r.Post("/pay", server.CheckoutHandler.Pay)
			})

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", server.OrderHandler.ListOwnOrders)
				r.Get("/{id}", server.OrderHandler.GetOwnOrder)
				r.Get("/{id}/tracking", server.OrderHandler.TrackOrder)
				r.Post("/{id}/cancel", server.OrderHandler.CancelOwnOrder)
			})

			r.Route("/prescriptions", func(r chi.Router) {
				r.Get("/", server.PrescriptionHandler.ListOwn)
				r.Get("/active", server.PrescriptionHandler.GetActive)
				r.Put("/{id}/active", server.PrescriptionHandler.SetActive)
			})

			r.Route("/appointments", func(r chi.Router) {
				r.Post("/", server.AppointmentHandler.Create)
				r.Get("/", server.AppointmentHandler.ListOwn)
				r.Delete("/{id}", server.AppointmentHandler.CancelOwn)
			})

			r.Get("/dashboard", server.AdminHandler.CustomerDashboard)
		})

		//admin
		r.Route("/admin", func(r chi.Router) {
			r.Use(m.RequireRoles(model.RoleAdmin))

			r.Get("/dashboard", server.AdminHandler.Dashboard)

			r.Route("/users", func(r chi.Router) {
				r.Get("/", server.AdminHandler.ListUsers)
				r.Post("/", server.AdminHandler.CreateStaffUser)
				r.Patch("/{id}/role", server.AdminHandler.UpdateUserRole)
				r.Delete("/{id}", server.AdminHandler.DeleteUser)
			})

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", server.OrderHandler.ListAllOrders)
				r.Patch("/{id}/status", server.OrderHandler.UpdateOrderStatus)
				r.Patch("/{id}/delivery", server.OrderHandler.AssignDelivery)
			})

			r.Post("/products", server.ProductHandler.CreateProduct)
			r.Put("/products/{id}", server.ProductHandler.UpdateProduct)
			r.Delete("/products/{id}", server.ProductHandler.DeleteProduct)

			r.Post("/categories", server.CatalogHandler.CreateCategory)
			r.Delete("/categories/{id}", server.CatalogHandler.DeleteCategory)
			r.Post("/frame-types", server.CatalogHandler.CreateFrameType)
			r.Delete("/frame-types/{id}", server.CatalogHandler.DeleteFrameType)
		})

		//doctor
		r.Route("/doctor", func(r chi.Router) {
			r.Use(m.RequireRoles(model.RoleDoctor))

			r.Route("/prescriptions", func(r chi.Router) {
				r.Post("/", server.PrescriptionHandler.Create)
				r.Get("/", server.PrescriptionHandler.ListByDoctor)
				r.Patch("/{id}/status", server.PrescriptionHandler.UpdateStatus)
			})

			r.Route("/appointments", func(r chi.Router) {
				r.Get("/", server.AppointmentHandler.ListByDoctor)
				r.Patch("/{id}/status", server.AppointmentHandler.UpdateStatus)
			})
		})

		//delivery
		r.Route("/delivery", func(r chi.Router) {
			r.Use(m.RequireRoles(model.RoleDelivery))

			r.Get("/orders", server.OrderHandler.ListAssignedOrders)
			r.Patch("/orders/{id}/status", server.OrderHandler.DeliveryUpdateStatus)
		})

		//manufacturer
		r.Route("/manufacturer", func(r chi.Router) {
			r.Use(m.RequireRoles(model.RoleManufacturer))

			r.Get("/products", server.ProductHandler.ListOwnProducts)
			r.Post("/products", server.ProductHandler.CreateProduct)
			r.Patch("/products/{id}/stock", server.ProductHandler.AdjustStock)
		})
	})

	// 在設置完所有路由後打印路由樹
	fmt.Println(chi.Walk(r, func(method string, route string, handler http.Handler, middlewares ...func(http.Handler) http.Handler) error {
		fmt.Printf("%s %s\n", method, route)
		return nil
	}))
	return r
}
