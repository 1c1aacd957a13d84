package cmd

import (
	"database/sql"
	"fmt"

	"github.com/frahmantamala/finance-tracker/internal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

const driverName = "pgx"

// Databases shares one connection pool between the gorm repositories, the
// sqlx aggregate reads and goose.
type Databases struct {
	SQL  *sql.DB
	Sqlx *sqlx.DB
	Gorm *gorm.DB
}

func (d *Databases) Close() error {
	return d.SQL.Close()
}

// openSQL pins the session time zone to UTC so calendar dates bound as
// time.Time compare against DATE columns without shifting a day.
func openSQL(cfg internal.DatabaseConfig) (*sql.DB, error) {
	connConfig, err := pgx.ParseConfig(cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database source: %w", err)
	}
	connConfig.RuntimeParams["timezone"] = "UTC"

	db := stdlib.OpenDB(*connConfig)
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// verify connection; close underlying *sql.DB on failure
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// initDB initializes the database connections
func initDB(cfg internal.DatabaseConfig) (*Databases, error) {
	sqlDB, err := openSQL(cfg)
	if err != nil {
		return nil, err
	}

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Warn),
	})
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to open gorm: %w", err)
	}

	return &Databases{
		SQL:  sqlDB,
		Sqlx: sqlx.NewDb(sqlDB, driverName),
		Gorm: gormDB,
	}, nil
}
