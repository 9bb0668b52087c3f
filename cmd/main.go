package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/luxoptic/optistore/internal/api"
	"github.com/luxoptic/optistore/internal/api/handler"
	"github.com/luxoptic/optistore/internal/api/router"
	"github.com/luxoptic/optistore/internal/appcontext"
	"github.com/luxoptic/optistore/internal/config"
)

// @title optistore
// @version 1.0
// @description 眼鏡電商平台
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey  ApiKeyAuth
// @in                          header
// @name                        Authorization
// @description                 Description for Authorization header: Type "Bearer" followed by a space and the token. Example: "Bearer {token}"

func main() {
	app, err := appcontext.NewApplicationContext(config.GetConfig())
	if err != nil {
		log.Fatal(err)
		return
	}

	// 初始化 handler
	authHandler := handler.NewAuthHandler(app.UserService)
	productHandler := handler.NewProductHandler(app.ProductService)
	cartHandler := handler.NewCartHandler(app.CartService)
	checkoutHandler := handler.NewCheckoutHandler(app.CheckoutService)
	orderHandler := handler.NewOrderHandler(app.OrderService)
	prescriptionHandler := handler.NewPrescriptionHandler(app.PrescriptionService)
	appointmentHandler := handler.NewAppointmentHandler(app.AppointmentService)
	adminHandler := handler.NewAdminHandler(app.UserService, app.DashboardService)
	catalogHandler := handler.NewCatalogHandler(app.ProductService)

	server := api.NewServer(
		authHandler,
		productHandler,
		cartHandler,
		checkoutHandler,
		orderHandler,
		prescriptionHandler,
		appointmentHandler,
		adminHandler,
		catalogHandler,
	)

	// 設置路由
	r := router.SetupRouter(server, app.TokenMaker, app.Logger)

	// 訂單事件通知 worker
	workerCtx, stopWorker := context.WithCancel(context.Background())
	go func() {
		if err := app.OrderNotifier.Run(workerCtx); err != nil {
			log.Printf("Order notifier stopped: %v", err)
		}
	}()

	// 設定服務器參數
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", app.Cf.ServerPort),
		Handler: r,
	}

	// 設置訊號監聽
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	shutDonwCompleted := make(chan struct{}, 1)
	// 監聽退出訊號
	go func() {
		<-sigChan
		log.Println("Received shutdown signal")

		stopWorker()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}

		if err := app.Shutdown(shutdownCtx); err != nil {
			log.Printf("Application shutdown error: %v", err)
		}

		shutDonwCompleted <- struct{}{}
	}()

	// 啟動服務
	log.Printf("Server starting on %s", srv.Addr)
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatal(err)
	}
	<-shutDonwCompleted
	log.Printf("closed completed")
}
