package db

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	config "github.com/Keoroanthony/go-food-ordering/configs"
	"github.com/Keoroanthony/go-food-ordering/internal/models"
)

func Open(cfg config.PostgresConfig) (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect to db: %w", err)
	}

	if err := Migrate(gdb); err != nil {
		return nil, err
	}

	log.Println("Database connected and migrated successfully")
	return gdb, nil
}

// Migrate creates or updates every storefront table.
func Migrate(gdb *gorm.DB) error {
	err := gdb.AutoMigrate(
		&models.Category{},
		&models.MenuItem{},
		&models.User{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		return fmt.Errorf("migrate db: %w", err)
	}
	return nil
}
