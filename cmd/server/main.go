package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"taxidesk/internal/config"
	"taxidesk/internal/handlers"
	"taxidesk/internal/middleware"
	"taxidesk/internal/repositories/mongodb"
	"taxidesk/internal/services"
	"taxidesk/pkg/cache"
	"taxidesk/pkg/database"
	"taxidesk/pkg/logger"
	"taxidesk/pkg/maps"
	"taxidesk/pkg/payment"
	"taxidesk/pkg/push"
	"taxidesk/pkg/sms"
	"taxidesk/pkg/storage"
	"taxidesk/pkg/websocket"
	"taxidesk/routes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logFormat := "text"
	if cfg.IsProduction() {
		logFormat = "json"
	}
	log, err := logger.NewLogger(&logger.Config{
		Level:  cfg.App.LogLevel,
		Format: logFormat,
		Output: "stdout",
		Colors: !cfg.IsProduction(),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	log = log.WithField("app", cfg.App.Name)

	db, err := database.NewMongoDB(&database.DatabaseConfig{
		URI:            cfg.Database.URI,
		Database:       cfg.Database.Database,
		MaxPoolSize:    cfg.Database.MaxPoolSize,
		MinPoolSize:    cfg.Database.MinPoolSize,
		ConnectTimeout: cfg.Database.ConnectTimeout,
		SocketTimeout:  cfg.Database.SocketTimeout,
	})
	if err != nil {
		log.WithError(err).Fatal("failed to connect to mongodb")
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.EnsureIndexes(ctx, db.Database); err != nil {
		cancel()
		log.WithError(err).Fatal("failed to ensure indexes")
	}
	cancel()

	var cacheService cache.Service
	redisCache, err := cache.NewRedisCache(&cache.RedisConfig{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		log.WithError(err).Warn("redis unavailable, running without cache")
		cacheService = cache.NewNoop()
	} else {
		defer redisCache.Close()
		cacheService = redisCache
	}

	// Outbound providers, all optional in development.
	smsProvider := buildSMSProvider(cfg, log)
	pushProvider := buildPushProvider(cfg, log)
	paymentProvider := buildPaymentProvider(cfg)
	storageProvider := buildStorageProvider(cfg, log)
	estimator := buildEstimator(cfg, log)

	hub := websocket.NewHub()
	go hub.Run()

	// Repositories.
	userRepo := mongodb.NewUserRepository(db.Database)
	customerRepo := mongodb.NewCustomerRepository(db.Database)
	driverRepo := mongodb.NewDriverRepository(db.Database)
	vendorRepo := mongodb.NewVendorRepository(db.Database)
	vehicleRepo := mongodb.NewVehicleRepository(db.Database)
	serviceRepo := mongodb.NewServiceRepository(db.Database)
	tariffRepo := mongodb.NewTariffRepository(db.Database, cacheService)
	bookingRepo := mongodb.NewBookingRepository(db.Database, cacheService)
	invoiceRepo := mongodb.NewInvoiceRepository(db.Database)
	enquiryRepo := mongodb.NewEnquiryRepository(db.Database)
	traceRepo := mongodb.NewIPTraceRepository(db.Database)
	notificationRepo := mongodb.NewNotificationRepository(db.Database)

	// Services.
	authService := services.NewAuthService(userRepo, cfg.Security.JWTSecret, cfg.Security.JWTAccessTokenTTL, log)
	tariffService := services.NewTariffService(tariffRepo, log)
	notificationService := services.NewNotificationService(
		notificationRepo, customerRepo, driverRepo, smsProvider, pushProvider, hub, log)
	bookingService := services.NewBookingService(
		bookingRepo, customerRepo, driverRepo, vendorRepo, serviceRepo,
		tariffService, estimator, notificationService, log)
	invoiceService := services.NewInvoiceService(
		invoiceRepo, bookingRepo, customerRepo, paymentProvider,
		services.CompanyProfile{Name: cfg.App.Name},
		cfg.App.BaseURL+"/payments/callback", log)
	analyticsService := services.NewAnalyticsService(bookingRepo, traceRepo, cacheService, log)

	// HTTP layer.
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.CORS(cfg.Security.CORSAllowedOrigins))
	router.Use(middleware.TrafficRecorder(analyticsService))

	router.GET("/health", func(c *gin.Context) {
		status := "ok"
		code := http.StatusOK
		if err := db.Ping(); err != nil {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{"status": status, "version": cfg.App.Version})
	})

	routes.Setup(router, &routes.Handlers{
		Auth:         handlers.NewAuthHandler(authService, log),
		Booking:      handlers.NewBookingHandler(bookingService, log),
		Tariff:       handlers.NewTariffHandler(tariffService, log),
		Customer:     handlers.NewCustomerHandler(customerRepo, log),
		Driver:       handlers.NewDriverHandler(driverRepo, log),
		Vendor:       handlers.NewVendorHandler(vendorRepo, log),
		Vehicle:      handlers.NewVehicleHandler(vehicleRepo, log),
		Service:      handlers.NewServiceHandler(serviceRepo, log),
		Invoice:      handlers.NewInvoiceHandler(invoiceService, log),
		Enquiry:      handlers.NewEnquiryHandler(enquiryRepo, log),
		Notification: handlers.NewNotificationHandler(notificationService, log),
		Dashboard:    handlers.NewDashboardHandler(analyticsService, log),
		Upload:       handlers.NewUploadHandler(storageProvider, log),
		Hub:          hub,
	}, cfg.Security.JWTSecret)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.WithField("port", cfg.App.Port).Info("server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("forced shutdown")
	}
}

func buildSMSProvider(cfg *config.Config, log *logger.Logger) sms.SMSProvider {
	switch cfg.SMS.Provider {
	case "sns":
		provider, err := sms.NewAWSSNSProvider(cfg.SMS.SNSRegion, cfg.SMS.SNSSenderID)
		if err != nil {
			log.WithError(err).Warn("sns unavailable, sms disabled")
			return nil
		}
		return provider
	case "twilio":
		if cfg.SMS.TwilioAccountSID == "" {
			return nil
		}
		return sms.NewTwilioProvider(cfg.SMS.TwilioAccountSID, cfg.SMS.TwilioAuthToken, cfg.SMS.TwilioFromNumber)
	default:
		return nil
	}
}

func buildPushProvider(cfg *config.Config, log *logger.Logger) push.PushProvider {
	if cfg.Push.APNSKeyFile != "" {
		provider, err := push.NewAPNSProvider(
			cfg.Push.APNSKeyFile, cfg.Push.APNSKeyID, cfg.Push.APNSTeamID,
			cfg.Push.APNSTopic, cfg.Push.APNSProduction)
		if err == nil {
			return provider
		}
		log.WithError(err).Warn("apns unavailable")
	}
	if cfg.Push.FCMCredentialsFile != "" {
		provider, err := push.NewFCMProvider(cfg.Push.FCMCredentialsFile)
		if err == nil {
			return provider
		}
		log.WithError(err).Warn("fcm unavailable")
	}
	return nil
}

func buildPaymentProvider(cfg *config.Config) payment.PaymentProvider {
	switch cfg.Payment.Provider {
	case "stripe":
		return payment.NewStripeProvider(cfg.Payment.StripeSecretKey, cfg.Payment.StripeWebhookSecret)
	default:
		return payment.NewRazorpayProvider(
			cfg.Payment.RazorpayKeyID, cfg.Payment.RazorpayKeySecret, cfg.Payment.RazorpayWebhookSecret)
	}
}

func buildStorageProvider(cfg *config.Config, log *logger.Logger) storage.StorageProvider {
	if cfg.Storage.Provider == "s3" {
		provider, err := storage.NewS3Provider(cfg.Storage.S3Region, cfg.Storage.S3Bucket)
		if err == nil {
			return provider
		}
		log.WithError(err).Warn("s3 unavailable, falling back to local storage")
	}
	provider, err := storage.NewLocalProvider(cfg.Storage.LocalPath, cfg.Storage.LocalBaseURL)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize file storage")
	}
	return provider
}

func buildEstimator(cfg *config.Config, log *logger.Logger) maps.DistanceEstimator {
	if cfg.Maps.GoogleMapsAPIKey == "" {
		return nil
	}
	client, err := maps.NewGoogleMapsClient(cfg.Maps.GoogleMapsAPIKey, cfg.Maps.Region)
	if err != nil {
		log.WithError(err).Warn("maps client unavailable, distances entered manually")
		return nil
	}
	return client
}
