package database

import (
	"fmt"
	"log"

	config "github.com/buddylink/backend/configs"
	"github.com/buddylink/backend/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	var err error
	dsn := config.Config("DATABASE_URL")

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		PrepareStmt:                              false,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		DisableNestedTransaction:                 true,
	})
	if err != nil {
		log.Fatalf("🔥 Failed to connect to database: %v", err)
	}

	fmt.Println("✅ Database connected successfully")
}

// Migrate registers every entity once, up front. Nothing in this codebase
// creates schema lazily on first use.
func Migrate() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.Event{},
		&models.Chat{},
		&models.Message{},
		&models.Block{},
	)
	if err != nil {
		log.Fatalf("🔥 Failed to migrate database: %v", err)
	}
	fmt.Println("✅ Database migration successful")
}
