package database

import (
	"database/sql"
	_ "embed"
	"fmt"
	"log"
	"strings"
	"time"

	"jobboard/internal/platform/config"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
)

//go:embed schema.sql
var schema string

var DB *sql.DB

func Connect() {
	var err error
	DB, err = sql.Open("pgx", config.AppConfig.DBConnStr)
	if err != nil {
		log.Fatalf("Error opening database: %v", err)
	}

	DB.SetMaxOpenConns(25)
	DB.SetMaxIdleConns(25)
	DB.SetConnMaxLifetime(5 * time.Minute)

	// Verify connection
	if err = DB.Ping(); err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	fmt.Println("Successfully connected to PostgreSQL database!")
}

// Migrate applies the embedded schema. Every statement is IF NOT EXISTS, so
// running it on every start is safe. Statements are executed one at a time
// because the pgx driver's extended protocol rejects multi-statement strings.
func Migrate() {
	for _, stmt := range strings.Split(schema, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := DB.Exec(stmt); err != nil {
			log.Fatalf("Error applying database schema: %v", err)
		}
	}
	fmt.Println("Database schema is up to date.")
}

func Close() {
	if DB != nil {
		DB.Close()
		fmt.Println("Database connection closed.")
	}
}
