// createtable creates or updates the API schema and exits. Useful before the
// first deploy against MySQL, where the API user may lack DDL rights.
package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"shopfront.dev/app/internal/config"
	"shopfront.dev/app/internal/db"
	"shopfront.dev/app/internal/modules/products"
	"shopfront.dev/app/internal/modules/users"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()

	gdb, err := db.Open(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close(gdb)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := db.Migrate(ctx, gdb, &products.Product{}, &users.User{}); err != nil {
		log.Fatalf("Failed to create tables: %v", err)
	}

	log.Printf("✓ products table ready (%s)", cfg.Database.Driver)
	log.Println("✓ users table ready")
}
