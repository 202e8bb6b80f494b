package models

import (
	_ "embed"
	"log"
	"strings"

	"gorm.io/gorm"
)

//go:embed schema.sql
var schemaSQL string

// AutoMigrate runs database migrations using raw SQL so the unique
// constraints on accounts.username and trial_grants.hwid are guaranteed
// regardless of GORM version behavior. Statements run one at a time;
// pgx rejects multi-statement strings on the extended protocol.
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations using SQL schema...")

	for _, stmt := range strings.Split(schemaSQL, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}

	log.Println("Database migrations completed")
	return nil
}
