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

	"github.com/gin-gonic/gin"
	"github.com/gocampus/campus-carpool/internal/api/handlers"
	"github.com/gocampus/campus-carpool/internal/api/routes"
	"github.com/gocampus/campus-carpool/internal/config"
	"github.com/gocampus/campus-carpool/internal/service/bookingledger"
	"github.com/gocampus/campus-carpool/internal/service/geomath"
	"github.com/gocampus/campus-carpool/internal/service/ridelifecycle"
	"github.com/gocampus/campus-carpool/internal/service/ridevalidator"
	"github.com/gocampus/campus-carpool/internal/storage/postgres"
	"github.com/gocampus/campus-carpool/pkg/cache"
	"github.com/gocampus/campus-carpool/pkg/database"
	"github.com/gocampus/campus-carpool/pkg/logger"
	"github.com/gocampus/campus-carpool/pkg/monitoring"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer appLogger.Sync()

	appLogger.Info("Starting Campus Carpool Application",
		logger.String("env", cfg.Server.Env),
		logger.String("port", cfg.Server.Port),
	)

	// Initialize New Relic
	nrApp, err := monitoring.New(monitoring.Config{
		LicenseKey: cfg.NewRelic.LicenseKey,
		AppName:    cfg.NewRelic.AppName,
		Enabled:    cfg.NewRelic.Enabled,
	})
	if err != nil {
		appLogger.Warn("Failed to initialize New Relic", logger.Err(err))
	} else if nrApp.IsEnabled() {
		appLogger.Info("New Relic APM initialized successfully",
			logger.String("app_name", cfg.NewRelic.AppName))
	} else {
		appLogger.Info("New Relic APM disabled")
	}
	defer nrApp.Shutdown(10 * time.Second)

	// Initialize Redis. Optional: the ride cache is nil-safe and the
	// application serves from Postgres when Redis is absent.
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedisClient(cache.Config{
			Host:        cfg.Redis.Host,
			Port:        cfg.Redis.Port,
			Password:    cfg.Redis.Password,
			DB:          cfg.Redis.DB,
			MaxRetries:  cfg.Redis.MaxRetries,
			PoolSize:    cfg.Redis.PoolSize,
			DialTimeout: cfg.Redis.DialTimeout,
			ReadTimeout: cfg.Redis.ReadTimeout,
		})
		if err != nil {
			appLogger.Warn("Failed to connect to Redis, continuing without cache", logger.Err(err))
			redisClient = nil
		} else {
			appLogger.Info("Connected to Redis successfully")
			defer cache.Close(redisClient)
		}
	}

	// Initialize PostgreSQL
	postgresDB, err := database.NewPostgresDB(database.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.Name,
		SSLMode:  cfg.Database.SSLMode,
		MaxConns: cfg.Database.MaxConns,
		MaxIdle:  cfg.Database.MaxIdle,
	})
	if err != nil {
		appLogger.Fatal("Failed to connect to PostgreSQL", logger.Err(err))
	}
	defer postgresDB.Close()

	appLogger.Info("Connected to PostgreSQL successfully")

	// Wire repositories
	rideRepo := postgres.NewRideRepository(postgresDB)
	bookingRepo := postgres.NewBookingRepository(postgresDB)
	vehicleRepo := postgres.NewVehicleRepository(postgresDB)
	allocator := postgres.NewAllocator(postgresDB)

	rideCache := cache.NewRideCache(redisClient, cfg.Cache.TTLRideSnapshots)

	validator := ridevalidator.New(ridevalidator.Config{
		CampusCenter: geomath.Point{
			Latitude:  cfg.Campus.Latitude,
			Longitude: cfg.Campus.Longitude,
		},
		GeofenceRadiusM:   cfg.Campus.GeofenceRadiusM,
		MinLeadTime:       cfg.Rides.MinLeadTime,
		BookingHorizon:    cfg.Rides.BookingHorizon,
		MaxSeatsPerRide:   cfg.Rides.MaxSeatsPerRide,
		MinTripDistanceKm: cfg.Rides.MinTripDistanceKm,
		MaxTripDistanceKm: cfg.Rides.MaxTripDistanceKm,
	}, nil)

	estimator := geomath.NewEstimator(geomath.NewRandomTraffic())

	rideService := ridelifecycle.NewService(ridelifecycle.Deps{
		Rides:     rideRepo,
		Bookings:  bookingRepo,
		Vehicles:  vehicleRepo,
		IDs:       allocator,
		Validator: validator,
		Estimator: estimator,
		Cache:     rideCache,
		Monitor:   nrApp,
		Logger:    appLogger,
	})

	bookingService := bookingledger.NewService(bookingledger.Deps{
		Bookings:    bookingRepo,
		Rides:       rideRepo,
		Cache:       rideCache,
		Monitor:     nrApp,
		Logger:      appLogger,
		FarePerSeat: cfg.Fare.PerSeat,
	})

	// Initialize handlers with dependencies
	h := handlers.NewHandlers(rideService, bookingService, vehicleRepo, appLogger)

	// Initialize Gin router
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	// Setup all routes
	var nrApplication *newrelic.Application
	if nrApp.IsEnabled() {
		nrApplication = nrApp.Application
	}
	routes.SetupRoutes(router, h, nrApplication, cfg.CORS.AllowedOrigins)

	appLogger.Info("Routes configured successfully")

	// Create HTTP server
	srv := &http.Server{
		Addr:           fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:        router,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	// Start server in a goroutine
	go func() {
		appLogger.Info("Server starting", logger.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("Failed to start server", logger.Err(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", logger.Err(err))
	}

	appLogger.Info("Server stopped gracefully")
}
