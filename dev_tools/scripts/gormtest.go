package main

import (
	"fmt"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// VerificationSession mirrors the API's session table. The script is a
// standalone module, so the model is declared here instead of importing the
// service.
type VerificationSession struct {
	Id            int    `gorm:"primaryKey;autoIncrement"`
	SessionId     string `gorm:"uniqueIndex;not null"`
	AccountId     string `gorm:"index"`
	IdentityKey   string
	AttestationId uint8
	State         string `gorm:"index;not null"`
	TxHash        string
	Outcome       string
	ReasonCode    string
	LastError     string
	PollAttempts  int
	VerifiedAt    int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func main() {
	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		dsn = "host=postgres user=api_user password=api_password dbname=citizens_house port=5432 sslmode=disable"
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		panic(fmt.Sprintf("failed to connect database: %v", err))
	}
	fmt.Println("Connected to database!")
	if err := db.AutoMigrate(&VerificationSession{}); err != nil {
		panic(fmt.Sprintf("migration failed: %v", err))
	}
	fmt.Println("Migration succeeded!")

	var pending int64
	if err := db.Model(&VerificationSession{}).Where("state = ?", "pending").Count(&pending).Error; err != nil {
		panic(fmt.Sprintf("count failed: %v", err))
	}
	fmt.Printf("Pending sessions: %d\n", pending)
}
