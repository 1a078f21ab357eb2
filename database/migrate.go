package database

import (
	"gorm.io/gorm"

	"github.com/restodesk/backoffice/models"
)

// Migrate creates or updates the schema for every entity.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Customer{},
		&models.Table{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Employee{},
	)
}
