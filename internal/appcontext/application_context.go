package appcontext

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/EventStore/EventStore-Client-Go/v4/esdb"
	"github.com/luxoptic/optistore/internal/config"
	"github.com/luxoptic/optistore/internal/constants"
	"github.com/luxoptic/optistore/internal/infra/mail"
	"github.com/luxoptic/optistore/internal/infra/payment"
	"github.com/luxoptic/optistore/internal/infra/repository/db"
	"github.com/luxoptic/optistore/internal/infra/repository/eventdb"
	"github.com/luxoptic/optistore/internal/infra/repository/redis_repo"
	"github.com/luxoptic/optistore/internal/infra/stream"
	"github.com/luxoptic/optistore/internal/infra/token"
	"github.com/luxoptic/optistore/internal/service"
	"github.com/luxoptic/optistore/internal/worker"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type ApplicationContext struct {
	Cf     *config.Config
	Logger *zerolog.Logger

	DbConn      *gorm.DB
	Store       db.UnifiedDB
	RedisClient *redis.Client
	EventDBConn *esdb.Client

	TokenMaker    token.Maker
	EmailSender   mail.EmailSender
	PaymentClient payment.IPaymentClient

	OrderProducer stream.Producer
	OrderConsumer stream.Consumer

	ProductService      service.IProductService
	CartService         service.ICartService
	PrescriptionService service.IPrescriptionService
	OrderService        service.IOrderService
	CheckoutService     service.ICheckoutService
	UserService         service.IUserService
	AppointmentService  service.IAppointmentService
	DashboardService    service.IDashboardService
	MailService         service.IMailService

	OrderNotifier *worker.OrderNotifier
}

func NewApplicationContext(cf *config.Config) (*ApplicationContext, error) {
	app := ApplicationContext{
		Cf: cf,
	}
	if err := app.Init(); err != nil {
		return nil, err
	}
	return &app, nil
}

func (app *ApplicationContext) Init() error {
	app.setUpLogger()

	if err := app.setUpdbConn(); err != nil {
		return err
	}
	if err := app.setUpRedis(); err != nil {
		return err
	}
	if err := app.setUpEventDB(); err != nil {
		return err
	}
	if err := app.setUpKafka(); err != nil {
		return err
	}
	if err := app.setTokenMaker(); err != nil {
		return err
	}
	app.setUpMail()
	app.setUpPayment()
	app.setUpServices()
	app.setUpWorkers()

	return nil
}

func (app *ApplicationContext) setUpLogger() {
	logger := zerolog.New(os.Stdout).With().
		Timestamp().
		Str("module", app.Cf.ModulerName).
		Logger()
	app.Logger = &logger
}

func (app *ApplicationContext) setUpdbConn() error {
	log.Printf("Start setup database connection")
	conn, err := db.GetDbConn(app.Cf.DbName, app.Cf.DbHost, app.Cf.DbPort, app.Cf.DbUser, app.Cf.DbPas)
	if err != nil {
		return err
	}
	app.DbConn = conn

	dao := db.NewDbDao(conn)
	if err := dao.InitMigrate(); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	if app.Cf.Environment == "development" {
		if err := dao.SeedDemoData(); err != nil {
			return fmt.Errorf("failed to seed demo data: %w", err)
		}
	}
	app.Store = db.NewUnifiedDB(conn)
	log.Printf("Finish setup database connection")
	return nil
}

func (app *ApplicationContext) setUpRedis() error {
	log.Printf("Start setup redis")
	app.RedisClient = redis.NewClient(&redis.Options{
		Addr:     app.Cf.RedisAddr,
		Password: app.Cf.RedisPassword,
	})
	log.Printf("Finish setup redis")
	return nil
}

func (app *ApplicationContext) setUpEventDB() error {
	log.Printf("Start setup eventstore")
	conn, err := eventdb.GetEventDBConn(app.Cf.EventStoreConn)
	if err != nil {
		return err
	}
	app.EventDBConn = conn
	log.Printf("Finish setup eventstore")
	return nil
}

func (app *ApplicationContext) setUpKafka() error {
	log.Printf("Start setup kafka")
	producerCfg := stream.DefaultConfig(app.Cf.KafkaBrokerList(), app.Cf.OrderEventTopic)
	producer, err := stream.NewProducer(producerCfg)
	if err != nil {
		return err
	}
	app.OrderProducer = producer

	consumerCfg := stream.DefaultConfig(app.Cf.KafkaBrokerList(), app.Cf.OrderEventTopic)
	consumerCfg.ConsumerGroup = "order-notifier"
	consumer, err := stream.NewConsumer(consumerCfg)
	if err != nil {
		return err
	}
	app.OrderConsumer = consumer
	log.Printf("Finish setup kafka")
	return nil
}

func (app *ApplicationContext) setTokenMaker() error {
	log.Printf("Start setup token maker")
	tokenMaker, err := token.NewPasetoMaker(app.Cf.AuthTokenKey)
	if err != nil {
		return fmt.Errorf("failed to create token maker: %w", err)
	}
	app.TokenMaker = tokenMaker
	log.Printf("Finish setup token maker")
	return nil
}

func (app *ApplicationContext) setUpMail() {
	log.Printf("Start setup mail sender")
	app.EmailSender = mail.NewGmailSender(app.Cf.EmailSender, app.Cf.EmailAccount, app.Cf.SmtpAuthKey)
	log.Printf("Finish setup mail sender")
}

func (app *ApplicationContext) setUpPayment() {
	log.Printf("Start setup payment client")
	app.PaymentClient = payment.NewClient(app.Cf.PaymentGatewayURL, app.Cf.PaymentAPIKey)
	log.Printf("Finish setup payment client")
}

func (app *ApplicationContext) setUpServices() {
	log.Printf("Start setup services")

	cartTTL := time.Duration(constants.CartTTLHours) * time.Hour
	cartRepo := redis_repo.NewCartRepo(app.RedisClient, cartTTL)
	stockRepo := redis_repo.NewStockRepo(app.RedisClient)
	sessionRepo := redis_repo.NewCheckoutSessionRepo(app.RedisClient, time.Duration(constants.CheckoutTTLMinutes)*time.Minute)

	journal := eventdb.NewOrderJournal(eventdb.NewEventDao(app.EventDBConn))

	app.MailService = service.NewMailService(app.EmailSender)
	app.ProductService = service.NewProductService(app.Store, app.Store, stockRepo)
	app.CartService = service.NewCartService(cartRepo, app.ProductService)
	app.PrescriptionService = service.NewPrescriptionService(app.Store)
	app.OrderService = service.NewOrderService(app.Store, app.Store, app.ProductService, journal, app.OrderProducer, app.Logger)
	app.CheckoutService = service.NewCheckoutService(
		app.CartService,
		app.ProductService,
		app.PrescriptionService,
		app.OrderService,
		app.MailService,
		sessionRepo,
		app.PaymentClient,
		app.Logger,
	)
	app.UserService = service.NewUserService(app.Store, app.TokenMaker)
	app.AppointmentService = service.NewAppointmentService(app.Store, app.Store, app.MailService, app.Logger)
	app.DashboardService = service.NewDashboardService(app.Store)

	log.Printf("Finish setup services")
}

func (app *ApplicationContext) setUpWorkers() {
	app.OrderNotifier = worker.NewOrderNotifier(app.OrderConsumer, app.MailService, app.Logger)
}

func (app *ApplicationContext) Shutdown(ctx context.Context) error {
	log.Printf("Start application shutdown")

	done := make(chan error)
	go func() {
		defer close(done)

		if app.OrderProducer != nil {
			log.Printf("Closing kafka producer...")
			if err := app.OrderProducer.Close(); err != nil {
				log.Printf("kafka producer shutdown error: %v", err)
			}
		}
		if app.OrderConsumer != nil {
			log.Printf("Closing kafka consumer...")
			if err := app.OrderConsumer.Close(); err != nil {
				log.Printf("kafka consumer shutdown error: %v", err)
			}
		}

		if app.RedisClient != nil {
			log.Printf("Closing redis connection...")
			if err := app.RedisClient.Close(); err != nil {
				log.Printf("redis shutdown error: %v", err)
			}
		}

		if app.EventDBConn != nil {
			log.Printf("Closing eventstore connection...")
			if err := app.EventDBConn.Close(); err != nil {
				log.Printf("eventstore shutdown error: %v", err)
			}
		}

		if app.DbConn != nil {
			log.Printf("Closing database connection...")
			if sqlDB, err := app.DbConn.DB(); err == nil {
				sqlDB.Close()
			}
		}

		log.Printf("Application shutdown complete")
		done <- nil
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return fmt.Errorf("shutdown timeout: %v", ctx.Err())
	}
}
