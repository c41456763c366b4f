// File: soupbarber/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"soupbarber/config"
	"soupbarber/cron"
	"soupbarber/database"
	bookingRepo "soupbarber/database/repository/booking"
	"soupbarber/handlers"
	"soupbarber/routes"
	"soupbarber/services/booking"
	"soupbarber/services/notification"
	"soupbarber/services/tasks"
	"soupbarber/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	loc := config.Location()

	rootCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()

	// Booking store.
	checks := map[string]utils.HealthCheck{}
	var store bookingRepo.BookingRepository
	switch config.AppConfig.BookingStore {
	case "mongo":
		database.InitDB()
		store = bookingRepo.NewMongoBookingRepo()
		if err := bookingRepo.EnsureIndexes(rootCtx, store); err != nil {
			logger.Fatal("main: failed to create booking indexes", zap.Error(err))
		}
		checks["mongo"] = func(ctx context.Context) error {
			return database.MongoClient.Ping(ctx, nil)
		}
	case "firestore", "":
		utils.FirebaseInit()
		fs := utils.GetFirestoreClient()
		store = bookingRepo.NewFirestoreBookingRepo(fs)
		checks["firestore"] = func(ctx context.Context) error {
			_, err := fs.Collection(bookingRepo.CollectionName).Limit(1).Documents(ctx).GetAll()
			return err
		}
	default:
		logger.Fatal("main: unknown BOOKING_STORE", zap.String("store", config.AppConfig.BookingStore))
	}

	cache := utils.GetCacheClient()
	checks["redis"] = func(ctx context.Context) error {
		return cache.Ping(ctx).Err()
	}
	repo := bookingRepo.NewCachedBookingRepo(store, cache, config.AppConfig.BookedSlotsCacheTTL, logger)

	// services.
	availabilityService := &booking.DefaultAvailabilityService{
		Repo:     repo,
		Location: loc,
	}
	bookingService := &booking.DefaultBookingService{
		Repo:          repo,
		OperatorEmail: config.AppConfig.OperatorEmail,
		Location:      loc,
		Logger:        logger,
	}

	var reminderClient *asynq.Client
	var reminderWorker *asynq.Server
	if config.AppConfig.NotificationsEnabled {
		notificationService, err := notification.NewDefaultNotificationService(utils.GetFCMClient(), config.AppConfig.OperatorTopic)
		if err != nil {
			logger.Fatal("main: failed to initialize notification service", zap.Error(err))
		}
		reminderClient = asynq.NewClient(cron.ReminderRedisOpt())
		bookingService.Hooks = append(bookingService.Hooks,
			notificationService,
			&tasks.ReminderScheduler{
				Client:   reminderClient,
				LeadTime: config.AppConfig.ReminderLeadTime,
				Topic:    config.AppConfig.OperatorTopic,
			},
		)
		reminderWorker = cron.InitReminderWorker(notificationService, logger)
	}

	sessions := booking.NewSessionRegistry(func() *booking.Widget {
		return booking.NewWidget(booking.WidgetConfig{
			Availability: availabilityService,
			Bookings:     bookingService,
			Location:     loc,
			Logger:       logger,
		})
	})
	sweeper, err := cron.StartSessionSweeper(sessions, config.AppConfig.SessionSweepSchedule, config.AppConfig.SessionIdleTimeout, logger)
	if err != nil {
		logger.Fatal("main: invalid session sweep schedule", zap.String("schedule", config.AppConfig.SessionSweepSchedule), zap.Error(err))
	}

	utils.StartHealthMonitor(rootCtx, time.Minute, checks)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	bookingHandler := handlers.NewBookingHandler(sessions, availabilityService, loc, logger)
	handlerBundle := handlers.NewHandlerBundle(bookingHandler)

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle, config.AppConfig.MaxRequestsPerMin)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}

	stopBackground()
	<-sweeper.Stop().Done()
	if reminderWorker != nil {
		reminderWorker.Shutdown()
	}
	if reminderClient != nil {
		if err := reminderClient.Close(); err != nil {
			logger.Warn("main: closing reminder client", zap.Error(err))
		}
	}
	if err := cache.Close(); err != nil {
		logger.Warn("main: closing redis cache", zap.Error(err))
	}
	if utils.FirestoreClient != nil {
		if err := utils.FirestoreClient.Close(); err != nil {
			logger.Warn("main: closing firestore", zap.Error(err))
		}
	}
	if database.MongoClient != nil {
		if err := database.MongoClient.Disconnect(ctx); err != nil {
			logger.Warn("main: disconnecting mongo", zap.Error(err))
		}
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
