package db

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"testprep-backend/internal/config"
	"testprep-backend/internal/model"
)

// InitFromConfig opens a PostgreSQL connection using the loaded config and
// returns the handle. The handle is passed explicitly to every repository;
// there is no package-level connection.
func InitFromConfig(cfg *config.APIConfig) (*gorm.DB, error) {
	password, err := cfg.DB.Password.Resolve()
	if err != nil {
		return nil, err
	}

	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.DB.Host, cfg.DB.Port, cfg.DB.Username, password, cfg.DB.Name, cfg.DB.SSLMode)
	if cfg.Context.TimeZone != "" {
		dsn += " TimeZone=" + cfg.Context.TimeZone
	}

	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		// TranslateError maps driver unique/not-found failures onto
		// gorm.ErrDuplicatedKey / gorm.ErrRecordNotFound.
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	if cfg.DB.Pool.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.DB.Pool.MaxOpenConns)
	}
	if cfg.DB.Pool.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.DB.Pool.MaxIdleConns)
	}
	if cfg.DB.Pool.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(cfg.DB.Pool.ConnMaxLifetime) * time.Minute)
	}

	return gdb, nil
}

// Migrate runs schema migrations for every entity.
func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&model.User{},
		&model.Question{},
		&model.Bookmark{},
		&model.Progress{},
		&model.TestAttempt{},
		&model.QuestionAttempt{},
	)
}
