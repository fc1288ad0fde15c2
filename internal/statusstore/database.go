package statusstore

import (
	"strings"
	"sync"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/HackHumanityOrg/near-citizens-house-sub000/pkg/logger"
)

var (
	databaseConnection  *gorm.DB
	onceDatabase        sync.Once
	initializedDatabase bool
)

// InitializeDatabaseConnection opens the session database once per process.
// A key=value connection string selects postgres; anything else is treated
// as an sqlite file path (":memory:" included), which is what dev and test
// deployments run on.
func InitializeDatabaseConnection(connectionString string) {
	onceDatabase.Do(func() {
		db, err := gorm.Open(openDialector(connectionString), &gorm.Config{})
		if err != nil {
			logger.Default().Fatal(err, "Cannot establish database connection")
		}

		databaseConnection = db
		initializedDatabase = true
	})
}

func GetDatabaseConnection() *gorm.DB {
	if !initializedDatabase {
		panic("Database not initialized: call InitializeDatabaseConnection() first")
	}
	return databaseConnection
}

func openDialector(connectionString string) gorm.Dialector {
	if strings.Contains(connectionString, "host=") || strings.HasPrefix(connectionString, "postgres://") {
		return postgres.Open(connectionString)
	}
	return sqlite.Open(connectionString)
}

// AutoMigrate creates or updates the session tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&VerificationSession{})
}
