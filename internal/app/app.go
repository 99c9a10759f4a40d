package app

import (
	"context"

	"go-leave/internal/bootstrap"
	"go-leave/internal/config"
	"go-leave/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ConnectDatabase opens the postgres pool described by cfg.Database.
func ConnectDatabase(cfg *config.Config) (*gorm.DB, error) {
	return connection.ConnectGORMWithRetry(connection.PostgresConfig{
		Host:     cfg.Database.Host,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		Name:     cfg.Database.Name,
		Port:     cfg.Database.Port,
		SSLMode:  cfg.Database.SSLMode,
	}, cfg.Database.MaxRetries)
}

func ConnectRedis(cfg *config.Config) (*redis.Client, error) {
	return connection.ConnectRedisWithRetry(cfg.Redis.Addr, cfg.Redis.MaxRetries)
}

// BuildApp connects the stores, wires every module and registers the HTTP
// routes on router. The returned func closes the connections.
func BuildApp(router *gin.Engine, cfg *config.Config, auditLogger bootstrap.AuditLogger, logger *zap.Logger) (func(), error) {
	log := logger.Named("app.api")

	// 1. Setup Infrastructure
	gormDB, err := ConnectDatabase(cfg)
	if err != nil {
		return nil, err
	}
	log.Info("database connection established")

	rdb, err := ConnectRedis(cfg)
	if err != nil {
		closeDB(gormDB, log)
		return nil, err
	}
	log.Info("redis connection established")

	cleanup := func() {
		_ = rdb.Close()
		closeDB(gormDB, log)
	}

	// 2. Register Modules & Routes
	modules, err := NewModules(cfg, gormDB, rdb, logger)
	if err != nil {
		cleanup()
		return nil, err
	}
	if err := registerModules(context.Background(), router, cfg, modules, auditLogger, logger); err != nil {
		cleanup()
		return nil, err
	}

	return cleanup, nil
}

func closeDB(db *gorm.DB, log *zap.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Warn("close database failed", zap.Error(err))
	}
}
