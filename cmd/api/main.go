package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/harentsoaR/medibook-api/internal/config"
	"github.com/harentsoaR/medibook-api/internal/handlers"
	"github.com/harentsoaR/medibook-api/internal/middleware"
	"github.com/harentsoaR/medibook-api/internal/repository"
	"github.com/harentsoaR/medibook-api/internal/services"
	"github.com/harentsoaR/medibook-api/internal/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger, err := utils.NewLogger(cfg.IsProduction())
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// --- Database Connection ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	if err := client.Ping(ctx, nil); err != nil {
		logger.Fatal("MongoDB is not reachable", zap.Error(err))
	}
	db := client.Database(cfg.MongoDatabase)
	if err := repository.EnsureIndexes(ctx, db); err != nil {
		logger.Fatal("Failed to create indexes", zap.Error(err))
	}
	cancel()
	logger.Info("Connected to MongoDB", zap.String("database", cfg.MongoDatabase))

	// --- Repositories & Services ---
	loc := cfg.Location()
	doctorRepo := repository.NewDoctorRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)
	userRepo := repository.NewUserRepository(db)
	tokens := utils.NewTokenManager(cfg.JWTSecret)

	notificationSvc := services.NewNotificationService(cfg.TextbeltAPIKey, logger)
	slotSvc := services.NewSlotService(doctorRepo, appointmentRepo, loc, cfg.SlotHorizonDays, cfg.SlotDuration, logger)
	scheduleSvc := services.NewScheduleService(doctorRepo, loc, logger)
	bookingSvc := services.NewBookingService(appointmentRepo, doctorRepo, userRepo, slotSvc, notificationSvc, loc, logger)
	accountSvc := services.NewAccountService(userRepo, scheduleSvc, tokens, logger)

	if cfg.SeedsAdmin() {
		seedCtx, seedCancel := context.WithTimeout(context.Background(), 10*time.Second)
		if _, err := accountSvc.EnsureAdmin(seedCtx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			logger.Fatal("Failed to ensure admin account", zap.Error(err))
		}
		seedCancel()
	} else {
		logger.Warn("ADMIN_EMAIL is not set; doctors cannot be approved until an admin exists")
	}

	h := handlers.NewHandler(accountSvc, scheduleSvc, slotSvc, bookingSvc, logger, cfg.Timeout())

	// --- Gin Router ---
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin, logger))
	r.Use(corsMiddleware(cfg.AllowedOrigins()))

	h.RegisterRoutes(r, middleware.AuthMiddleware(tokens))

	srv := &http.Server{
		Addr:              ":" + cfg.APIPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("Starting server", zap.String("port", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := client.Disconnect(shutdownCtx); err != nil {
		logger.Error("Failed to disconnect from MongoDB", zap.Error(err))
	}
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader},
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	return cors.New(cfg)
}
