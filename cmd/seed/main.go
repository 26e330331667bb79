package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/oksasatya/foodshare/config"
	"github.com/oksasatya/foodshare/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	phone := "0501234567"
	password := "password123"
	username := "demoUser"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id string
	err = db.QueryRow(`
		INSERT INTO users (username, phone, password_hash, name)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (phone) DO UPDATE SET username = EXCLUDED.username, updated_at = now()
		RETURNING id
	`, username, phone, hash, "Demo User").Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s phone=%s username=%s password=%s\n", id, phone, username, password)

	var listingID int64
	err = db.QueryRow(`
		INSERT INTO food_items (user_id, item_description, pickup_address, box_option, food_types, ingredients)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE SET item_description = EXCLUDED.item_description
		RETURNING id
	`, id, "Vegetable soup, 4 portions", "12 Herzl St", "need", "{soup,vegan}", "{carrot,celery,onion}").Scan(&listingID)
	if err != nil {
		log.Fatalf("failed to seed listing: %v", err)
	}
	fmt.Printf("seeded listing: id=%d\n", listingID)
}
