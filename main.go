package main

import (
	"log"

	"github.com/dmardones/delivery-slots/config"
	"github.com/dmardones/delivery-slots/internal/consumer"
	"github.com/dmardones/delivery-slots/internal/handler"
	"github.com/dmardones/delivery-slots/internal/middleware"
	"github.com/dmardones/delivery-slots/internal/repository"
	"github.com/dmardones/delivery-slots/internal/service"
	"github.com/dmardones/delivery-slots/pkg/database"
	"github.com/dmardones/delivery-slots/pkg/rabbitmq"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())

	// Repositories
	customerRepo := repository.NewCustomerRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	templateRepo := repository.NewTemplateRepository(db)
	slotRepo := repository.NewSlotRepository(db)
	zoneRepo := repository.NewZoneRepository(db)
	addressRepo := repository.NewAddressRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	sessionRepo := repository.NewSessionRepository(db)

	// RabbitMQ consumer: sync catalog data from the catalog service
	if cfg.RabbitURL != "" {
		mqConsumer, err := rabbitmq.NewConsumer(cfg.RabbitURL)
		if err != nil {
			log.Fatalf("failed to connect to RabbitMQ: %v", err)
		}
		defer mqConsumer.Close()

		msgs, err := mqConsumer.Consume()
		if err != nil {
			log.Fatalf("failed to start consuming: %v", err)
		}

		consumer.NewCatalogConsumer(catalogRepo).Start(msgs)
	} else {
		log.Println("RABBITMQ_URL not set, catalog consumer disabled")
	}

	// Services
	ledger := service.NewSlotLedger(slotRepo, reservationRepo)
	resolver := service.NewZoneResolver(zoneRepo)
	customerSvc := service.NewCustomerService(customerRepo)
	templateSvc := service.NewTemplateService(templateRepo)
	slotSvc := service.NewSlotService(slotRepo, templateRepo)
	zoneSvc := service.NewZoneService(zoneRepo, slotRepo)
	addressSvc := service.NewAddressService(addressRepo, customerRepo, resolver)
	reservationSvc := service.NewReservationService(reservationRepo, customerRepo, addressRepo, templateRepo, zoneRepo, ledger)
	sessionSvc := service.NewSessionService(sessionRepo, customerRepo)

	// Echo
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "delivery-slots"})
	})

	handler.NewCustomerHandler(customerSvc).RegisterRoutes(e)
	handler.NewCatalogHandler(catalogRepo).RegisterRoutes(e)
	handler.NewTemplateHandler(templateSvc).RegisterRoutes(e)
	handler.NewSlotHandler(slotSvc).RegisterRoutes(e)
	handler.NewZoneHandler(zoneSvc).RegisterRoutes(e)
	handler.NewAddressHandler(addressSvc).RegisterRoutes(e)
	handler.NewReservationHandler(reservationSvc).RegisterRoutes(e)
	handler.NewSessionHandler(sessionSvc).RegisterRoutes(e)

	log.Printf("Delivery Slots Service starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
