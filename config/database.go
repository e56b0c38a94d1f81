package config

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	// CatalogDB is the raw pool used for hot counters and health checks.
	CatalogDB *pgxpool.Pool
	// CatalogGorm is the ORM handle used by everything else.
	CatalogGorm *gorm.DB
)

func InitDB(cfg *Config) error {
	if err := initPgx(cfg); err != nil {
		return err
	}
	return initGORM(cfg)
}

func initPgx(cfg *Config) error {
	ctx, cancel := WithTimeout()
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("unable to connect to catalog database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("catalog database ping failed: %w", err)
	}

	CatalogDB = pool
	zap.L().Info("✅ catalog database connected (pgx)")
	return nil
}

func initGORM(cfg *Config) error {
	gormLogger := logger.Default.LogMode(logger.Warn)
	if cfg.IsProduction() {
		gormLogger = logger.Default.LogMode(logger.Silent)
	}

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{
		Logger:         gormLogger,
		NowFunc:        func() time.Time { return time.Now().UTC() },
		TranslateError: true,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to catalog database with GORM: %w", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		sqlDB.SetConnMaxLifetime(cfg.Database.ConnLifetime)
		sqlDB.SetConnMaxIdleTime(2 * time.Minute)
	}

	CatalogGorm = db
	zap.L().Info("✅ catalog database connected (GORM)")
	return nil
}

// PingDB checks both database handles.
func PingDB(ctx context.Context) error {
	if CatalogDB == nil || CatalogGorm == nil {
		return fmt.Errorf("database not initialised")
	}
	if err := CatalogDB.Ping(ctx); err != nil {
		return fmt.Errorf("pgx ping: %w", err)
	}
	sqlDB, err := CatalogGorm.DB()
	if err != nil {
		return fmt.Errorf("gorm handle: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("gorm ping: %w", err)
	}
	return nil
}

func CloseDB() {
	if CatalogDB != nil {
		CatalogDB.Close()
		zap.L().Info("✅ catalog database connection closed (pgx)")
	}
	if CatalogGorm != nil {
		sqlDB, _ := CatalogGorm.DB()
		if sqlDB != nil {
			sqlDB.Close()
			zap.L().Info("✅ catalog database connection closed (GORM)")
		}
	}
}

// DefaultTimeout bounds a single database round trip.
const DefaultTimeout = 10 * time.Second

// WithTimeout returns a background context bounded by DefaultTimeout.
func WithTimeout() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), DefaultTimeout)
}

// WithCustomTimeout is WithTimeout for long running work such as migrations.
func WithCustomTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}
