package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/danuarts/woodshop/config"
	"github.com/danuarts/woodshop/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	dsn := cfg.PostgresDSN()
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	username := "admin"
	password := "admin123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id int64
	err = db.QueryRow(`
		INSERT INTO admins (username, password_hash, is_admin)
		VALUES ($1, $2, true)
		ON CONFLICT (username) DO UPDATE SET password_hash = EXCLUDED.password_hash
		RETURNING id
	`, username, hash).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}
	fmt.Printf("seeded admin: id=%d username=%s password=%s\n", id, username, password)

	// Starter catalog so the storefront has something to show
	var existing int
	if err := db.QueryRow(`SELECT COUNT(*) FROM categories`).Scan(&existing); err != nil {
		log.Fatalf("failed to count categories: %v", err)
	}
	if existing > 0 {
		fmt.Println("catalog already seeded, skipping")
		return
	}

	var categoryID int64
	if err := db.QueryRow(`
		INSERT INTO categories (name, image_url) VALUES ('Tables', '')
		RETURNING id
	`).Scan(&categoryID); err != nil {
		log.Fatalf("failed to seed category: %v", err)
	}

	if _, err := db.Exec(`
		INSERT INTO products (name, description, price, main_image, stock, is_featured, category_id)
		VALUES ('Oak dining table', 'Solid oak, seats six', 499.00, '', 5, true, $1)
	`, categoryID); err != nil {
		log.Fatalf("failed to seed product: %v", err)
	}
	fmt.Println("seeded demo catalog")
}
