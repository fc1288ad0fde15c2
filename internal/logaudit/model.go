// Package logaudit persists the log lines mirrored onto the queue by the
// RabbitMQ logger sink, and serves them back through internal-only routes.
// The table is append-only; rows are never updated.
package logaudit

import (
	"time"

	"gorm.io/gorm"
)

type Entry struct {
	Id        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Level     string    `gorm:"index;not null" json:"level"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Timestamp time.Time `gorm:"index;not null" json:"timestamp"`
	Service   string    `gorm:"index;not null" json:"service"`
	CreatedAt time.Time `json:"created_at"`
}

func (Entry) TableName() string {
	return "log_audit_entries"
}

// AutoMigrate creates or updates the audit table.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&Entry{})
}
