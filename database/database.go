package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"pridenomad-hub/internal/domain/admins"
	"pridenomad-hub/internal/domain/billing"
	"pridenomad-hub/internal/domain/listings"
	"pridenomad-hub/internal/domain/users"
)

// Open connects to Postgres. Migrations are run separately by Migrate.
func Open(dsn string, debug bool) (*gorm.DB, error) {
	level := gormlogger.Warn
	if debug {
		level = gormlogger.Info
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return db, nil
}

// Models lists every persisted type in migration order.
func Models() []any {
	return []any{
		&users.User{},
		&admins.Admin{},
		&listings.Category{},
		&listings.Business{},
		&listings.Review{},
		&billing.PendingClaim{},
		&billing.Payment{},
	}
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}
