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

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"hotel-frontdesk/config"
	"hotel-frontdesk/controllers"
	"hotel-frontdesk/exports"
	"hotel-frontdesk/metrics"
	"hotel-frontdesk/notify"
	"hotel-frontdesk/routes"
	"hotel-frontdesk/services"
	"hotel-frontdesk/utils"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env not found or couldn't load it; continuing with environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ config: %v", err)
	}
	logger := config.NewLogger(cfg)

	startCtx, cancelStart := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStart()

	st, closeStore, err := config.OpenStore(startCtx, cfg, logger)
	if err != nil {
		logger.Fatalf("❌ store open failed: %v", err)
	}

	archiver, err := buildArchiver(startCtx, cfg, logger)
	if err != nil {
		logger.Fatalf("❌ export archive: %v", err)
	}

	center := notify.NewCenter()
	m := metrics.New()
	tokens := utils.NewTokenService(cfg.JWTSecret, cfg.JWTTTL)

	// Initialize services
	guestService := services.NewGuestService(st, logger, center, m)
	stayService := services.NewStayService(st, logger, center, m)
	roomService := services.NewRoomService(st, logger)
	dashboardService := services.NewDashboardService(st, stayService, logger)
	exportService := services.NewExportService(stayService, archiver, logger)
	authService := services.NewAuthService(st, tokens, logger)
	settingsService := services.NewSettingsService(st, logger)

	if err := authService.EnsureDefaultUser(startCtx); err != nil {
		logger.Fatalf("❌ seeding default user: %v", err)
	}
	if _, err := roomService.List(startCtx); err != nil {
		logger.Fatalf("❌ loading rooms: %v", err)
	}

	// Initialize controllers
	router := routes.SetupRouter(routes.Controllers{
		Auth:          controllers.NewAuthController(authService, logger),
		Guests:        controllers.NewGuestController(guestService, stayService, logger),
		Rooms:         controllers.NewRoomController(roomService, logger),
		Stays:         controllers.NewStayController(stayService, exportService, logger),
		Dashboard:     controllers.NewDashboardController(dashboardService, logger),
		Settings:      controllers.NewSettingsController(settingsService, logger),
		Notifications: controllers.NewNotificationController(center, logger),
	}, authService, m, cfg.CORSOrigins, logger)

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Infof("🚀 Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("❌ ListenAndServe(): %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Warn("⚠️  Shutdown signal received, shutting down server...")

	// websocket feeds are hijacked connections, Shutdown does not wait for them
	center.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("❌ Server forced to shutdown: %v", err)
	}
	if err := closeStore(); err != nil {
		logger.Errorf("❌ closing store: %v", err)
	}

	logger.Info("✅ Server stopped gracefully")
}

// buildArchiver returns nil when neither EXPORT_DIR nor EXPORT_S3_BUCKET is set.
func buildArchiver(ctx context.Context, cfg *config.AppConfig, logger *logrus.Logger) (services.Archiver, error) {
	var sinks exports.Multi
	if cfg.ExportDir != "" {
		fs, err := exports.NewFileSink(cfg.ExportDir)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, fs)
		logger.Infof("📁 exports archived under %s", cfg.ExportDir)
	}
	if cfg.ExportS3Bucket != "" {
		s3Sink, err := exports.NewS3Sink(ctx, exports.S3Config{
			Bucket:    cfg.ExportS3Bucket,
			Region:    cfg.ExportS3Region,
			Endpoint:  cfg.ExportS3Endpoint,
			Prefix:    "exports/",
			PathStyle: cfg.ExportS3PathStyle,
		})
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, s3Sink)
		logger.Infof("🪣 exports archived to s3://%s", cfg.ExportS3Bucket)
	}

	switch len(sinks) {
	case 0:
		return nil, nil
	case 1:
		return sinks[0], nil
	default:
		return sinks, nil
	}
}
