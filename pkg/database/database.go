package database

import (
	"career_assess_backend/internal/config"
	"career_assess_backend/internal/model"
	"career_assess_backend/pkg/logger"
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DSN 按驱动拼接连接串
func DSN(cfg *config.DatabaseConfig) (string, error) {
	switch cfg.Driver {
	case "", "mysql":
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
			cfg.User,
			cfg.Password,
			cfg.Host,
			cfg.Port,
			cfg.DBName,
			cfg.Charset,
			cfg.ParseTime,
		), nil
	case "postgres":
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			cfg.Host,
			cfg.Port,
			cfg.User,
			cfg.Password,
			cfg.DBName,
			cfg.SSLMode,
		), nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func dialector(cfg *config.DatabaseConfig) (gorm.Dialector, error) {
	dsn, err := DSN(cfg)
	if err != nil {
		return nil, err
	}
	if cfg.Driver == "postgres" {
		return postgres.Open(dsn), nil
	}
	return mysql.Open(dsn), nil
}

// InitDB 打开连接、设置连接池并迁移测评记录三张表
func InitDB(ctx context.Context, cfg *config.DatabaseConfig) (*gorm.DB, error) {
	d, err := dialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(d, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		sqlDB.Close()
		return nil, err
	}
	logger.Log.Info("Database connection established", zap.String("driver", cfg.Driver), zap.String("db", cfg.DBName))

	err = db.WithContext(ctx).AutoMigrate(
		&model.TestSessionRecord{},
		&model.QuizAnswerRecord{},
		&model.TestResultRecord{},
	)
	if err != nil {
		sqlDB.Close()
		return nil, err
	}

	logger.Log.Info("Database migration completed")
	return db, nil
}
