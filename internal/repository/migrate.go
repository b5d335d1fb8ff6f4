package repository

import "gorm.io/gorm"

// AutoMigrate creates or updates every table this package owns. Used by the
// seed command and by tests running against SQLite; production schemas are
// managed externally.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userModel{},
		&manureModel{},
		&tractorModel{},
		&nurseryCropModel{},
		&bookingModel{},
		&notificationModel{},
	)
}
