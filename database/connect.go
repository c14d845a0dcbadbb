package database

import (
	"fmt"
	stdlog "log"
	"time"

	"github.com/rpupo63/blog-platform-backend/config"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the store selected by DB_TYPE: postgres, supa (Supabase postgres) or sqlite
func Open(c map[string]string) (*gorm.DB, error) {
	dbType := config.GetString(c, "DB_TYPE", "postgres")
	log.Info().Str("dbType", dbType).Msg("Connecting to database")

	var dialector gorm.Dialector
	switch dbType {
	case "postgres":
		dialector = postgres.New(postgres.Config{
			DSN: fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
				config.GetString(c, "DB_HOST", "localhost"),
				config.GetString(c, "DB_USER", "postgres"),
				config.GetString(c, "DB_PASSWORD", ""),
				config.GetString(c, "DB_NAME", "blog"),
				config.GetString(c, "DB_PORT", "5432"),
				config.GetString(c, "DB_SSLMODE", "disable"),
			),
		})
	case "supa":
		dialector = postgres.New(postgres.Config{
			DSN: fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=require",
				config.GetString(c, "SUPABASE_DB_HOST", ""),
				config.GetString(c, "SUPABASE_DB_USER", ""),
				config.GetString(c, "SUPABASE_DB_PASSWORD", ""),
				config.GetString(c, "SUPABASE_DB_NAME", ""),
				config.GetString(c, "SUPABASE_DB_PORT", "5432"),
			),
			PreferSimpleProtocol: true,
		})
	case "sqlite":
		return OpenSQLite(config.GetString(c, "SQLITE_PATH", "blog.db"))
	default:
		return nil, fmt.Errorf("unsupported DB_TYPE %q", dbType)
	}

	db, err := gorm.Open(dialector, newGormConfig())
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	// Test database connection
	var result int
	if err := db.Raw("SELECT 1").Scan(&result).Error; err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

// OpenSQLite opens a sqlite database file, or a private in-memory one for ":memory:".
// sqlite serializes writers, so the pool holds a single connection.
func OpenSQLite(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), newGormConfig())
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

func newGormConfig() *gorm.Config {
	return &gorm.Config{
		PrepareStmt:    false,
		TranslateError: true,
		Logger: logger.New(
			stdlog.New(log.Logger, "", 0),
			logger.Config{
				SlowThreshold:             10 * time.Second,
				LogLevel:                  logger.Warn,
				IgnoreRecordNotFoundError: true,
				Colorful:                  false,
			},
		),
	}
}
