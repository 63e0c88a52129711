package main

import (
	"log"
	"strings"
	"survey-transform-service/internal/adapters/history"
	"survey-transform-service/internal/config"
	"survey-transform-service/internal/platform/db"
)

// dbtool creates the run history schema in Postgres (DATABASE_URL) or, when
// HISTORY_DRIVER=sqlite, in the SQLite file named by HISTORY_DSN.
func main() {
	config.LoadEnv()

	dialect := config.Get(config.KeyHistoryDriver, db.DialectPostgres)
	dsn := config.Get(config.KeyHistoryDSN, config.Get(config.KeyDatabaseURL, ""))
	if strings.TrimSpace(dsn) == "" {
		log.Fatal("DATABASE_URL or HISTORY_DSN is required")
	}

	conn, err := db.OpenDialect(dialect, dsn)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	log.Printf("Initializing run history schema dialect=%s...", dialect)
	if err := history.InitSchema(conn, dialect); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")
}
