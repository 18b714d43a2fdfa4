package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"feasibility/utils"

	_ "github.com/lib/pq"
)

// InitDB opens the raw SQL pool used for rule tables.
func InitDB(cfg utils.Config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// rule tables are read once at startup; keep the pool small
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	ctx, cancel := utils.GetFastQueryContext(context.Background())
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}
