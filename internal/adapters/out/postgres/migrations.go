package postgres

import (
	"parceltrack/internal/adapters/out/postgres/addressbookrepo"
	"parceltrack/internal/adapters/out/postgres/shipmentrepo"
	"parceltrack/internal/adapters/out/postgres/userrepo"

	"gorm.io/gorm"
)

// Tables lists every table owned by the service, children before parents.
var Tables = []string{
	"shipment_comments",
	"shipment_history",
	"shipments",
	"address_book_entries",
	"users",
}

// Migrate creates or updates the schema of every table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&shipmentrepo.ShipmentDTO{},
		&shipmentrepo.HistoryEntryDTO{},
		&shipmentrepo.CommentDTO{},
		&addressbookrepo.EntryDTO{},
		&userrepo.UserDTO{},
	)
}
