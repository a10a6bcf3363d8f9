package database

import (
	"github.com/lennyai/lenny-be/internal/entity"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&entity.TopicHistory{},
		&entity.Preference{},
	)
	return err
}
