package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mealhut/mealhut/internal/config"
	"github.com/mealhut/mealhut/internal/database"
	"github.com/mealhut/mealhut/internal/identities"
	"github.com/mealhut/mealhut/internal/orders"
	"github.com/mealhut/mealhut/internal/server"
	"github.com/mealhut/mealhut/pkg/logger"
	"github.com/mealhut/mealhut/pkg/metrics"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zapLogger, err := logger.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zapLogger.Sync()

	var db *gorm.DB
	switch cfg.Database.Driver {
	case "sqlite":
		db, err = database.NewSQLiteDB(cfg.Database.DSN)
	default:
		db, err = database.NewPostgresDB(cfg.Database.DSN, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime)
	}
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := database.Migrate(db); err != nil {
		zapLogger.Fatal("Failed to migrate schema", zap.Error(err))
	}

	identitiesSvc, err := identities.NewService(zapLogger, db, cfg.Auth.JWTSecret, cfg.Auth.JWTExpirationHours)
	if err != nil {
		zapLogger.Fatal("Failed to create identities service", zap.Error(err))
	}

	ordersSvc, err := orders.NewService(zapLogger, db)
	if err != nil {
		zapLogger.Fatal("Failed to create orders service", zap.Error(err))
	}

	// DB pool metrics every 30s
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()
	go func() {
		for range ticker.C {
			if sqlDB, err := db.DB(); err == nil {
				stats := sqlDB.Stats()
				metrics.DBOpenConns.WithLabelValues(cfg.Database.Driver).Set(float64(stats.OpenConnections))
				metrics.DBIdleConns.WithLabelValues(cfg.Database.Driver).Set(float64(stats.Idle))
				metrics.DBInUseConns.WithLabelValues(cfg.Database.Driver).Set(float64(stats.InUse))
			}
		}
	}()

	srv := server.NewServer(zapLogger, cfg.ServerAddr, identitiesSvc, ordersSvc)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		zapLogger.Fatal("HTTP server failed", zap.Error(err))
	}

	zapLogger.Info("Server stopped")
}
