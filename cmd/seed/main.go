package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"strings"
	"time"

	_ "github.com/lib/pq"
)

// Inserts a handful of sample users for local development. Existing emails
// are left untouched.
func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	dsn := strings.TrimSpace(os.Getenv("POSTGRES_DSN"))
	if dsn == "" {
		log.Fatal("POSTGRES_DSN not set; cannot seed users")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("failed to open postgres connection: %v", err)
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("failed to ping postgres: %v", err)
	}

	const insert = `
		INSERT INTO users (email, first_name, surname, birth_date, address, phone_number, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		ON CONFLICT (email) DO NOTHING`

	seeded := 0
	for _, u := range sampleUsers() {
		result, err := db.ExecContext(ctx, insert, u.email, u.firstName, u.surname, u.birthDate, u.address, u.phoneNumber)
		if err != nil {
			log.Fatalf("failed to seed user %s: %v", u.email, err)
		}
		if rows, _ := result.RowsAffected(); rows > 0 {
			seeded++
		}
	}
	log.Printf("seed completed, %d users inserted", seeded)
}

type sampleUser struct {
	email       string
	firstName   string
	surname     string
	birthDate   string
	address     string
	phoneNumber string
}

func sampleUsers() []sampleUser {
	return []sampleUser{
		{"ada.lovelace@example.com", "Ada", "Lovelace", "1990-12-10", "12 Analytical Ln", "+44-20-0001"},
		{"grace.hopper@example.com", "Grace", "Hopper", "1986-12-09", "7 Compiler Ct", "+1-202-0002"},
		{"alan.turing@example.com", "Alan", "Turing", "1992-06-23", "1 Enigma Rd", "+44-16-0003"},
	}
}
