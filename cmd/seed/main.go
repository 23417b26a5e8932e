package main

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/adiwinata/eventdesk/config"
	"github.com/adiwinata/eventdesk/pkg/helpers"
)

// The id columns have a database default, but ids are supplied here the
// same way the repositories supply them.
const (
	insertAdminStmt = `
		INSERT INTO users (id, full_name, email, password, role1, role2)
		VALUES ($1, $2, $3, $4, $5, 'ADMIN')
		ON CONFLICT (email) DO UPDATE SET role2='ADMIN', updated_at=now()
		RETURNING id
	`
	insertEventStmt = `
		INSERT INTO events (id, name, date, location, description, capacity)
		VALUES ($1, $2, now() + interval '30 days', $3, $4, $5)
		RETURNING id
	`
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "admin@eventdesk.local"
	password := "admin12345"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id string
	err = db.QueryRow(insertAdminStmt, uuid.NewString(), "Administrator", email, hash, "OTHER").Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}
	fmt.Printf("seeded admin: id=%s email=%s password=%s\n", id, email, password)

	var eventID string
	err = db.QueryRow(insertEventStmt, uuid.NewString(), "Community Meetup", "Jakarta", "Kickoff meetup for early adopters", 100).Scan(&eventID)
	if err != nil {
		log.Fatalf("failed to seed event: %v", err)
	}
	fmt.Printf("seeded event: id=%s name=%s\n", eventID, "Community Meetup")
}
