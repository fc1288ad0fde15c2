package statusstore

import (
	"github.com/HackHumanityOrg/near-citizens-house-sub000/pkg/appbuilder"
	"github.com/HackHumanityOrg/near-citizens-house-sub000/pkg/logger"
	"github.com/HackHumanityOrg/near-citizens-house-sub000/pkg/utilities"
)

type DatabaseConfig interface {
	appbuilder.AppConfig
	GetDatabaseConnectionString() string
}

// ConnectToDatabase is the builder hook the API main runs inside WithOption.
func ConnectToDatabase[T utilities.JsonConfigObj[U], U DatabaseConfig](a *appbuilder.AppBuilder[T, U]) {
	a.Logger.Info("Establishing connection to database...")
	connectionString := a.Config.GetDatabaseConnectionString()

	InitializeDatabaseConnection(connectionString)

	a.Logger.Info("Database connection established successfully.")
}

func RunMigrations(migrateDatabase bool) {
	if !migrateDatabase {
		return
	}

	migrationLogger := logger.Default()
	migrationLogger.Info("Running migrations for tables...")

	if err := AutoMigrate(GetDatabaseConnection()); err != nil {
		migrationLogger.Fatal(err, "Migrating database failed")
	}

	migrationLogger.Info("All tables created (or already exist).")
}
