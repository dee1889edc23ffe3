// One-shot loader that replaces the admin accounts with the embedded
// dataset. Run it once against a fresh database before starting the server.
package main

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"fmt"
	"log"
	"triviaquiz/internal/common/security"
	"triviaquiz/internal/domain/model"
	"triviaquiz/internal/domain/repository"
	"triviaquiz/internal/platform/config"
	"triviaquiz/internal/platform/database"

	"github.com/google/uuid"
)

//go:embed admin_users.json
var adminUsersJSON []byte

type adminUserRecord struct {
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Username       string `json:"username"`
	Email          string `json:"email"`
	ProfilePicture string `json:"profilePicture"`
	Password       string `json:"password"`
	Role           string `json:"role"`
}

func main() {
	config.Load()
	database.Connect()
	defer database.Close()

	if err := seedAdminUsers(context.Background(), database.DB); err != nil {
		log.Fatalf("Seeding admin users failed: %v", err)
	}
	fmt.Println("Admin users successfully created")
}

func seedAdminUsers(ctx context.Context, db *sql.DB) error {
	var records []adminUserRecord
	if err := json.Unmarshal(adminUsersJSON, &records); err != nil {
		return fmt.Errorf("failed to parse embedded dataset: %w", err)
	}

	userRepo := repository.NewPgUserRepository(db)

	users := make([]model.User, 0, len(records))
	usernames := make([]string, 0, len(records))
	for _, rec := range records {
		hashed, err := security.HashPassword(rec.Password)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		users = append(users, model.User{
			ID:             uuid.NewString(),
			FirstName:      rec.FirstName,
			LastName:       rec.LastName,
			Username:       rec.Username,
			Email:          rec.Email,
			ProfilePicture: rec.ProfilePicture,
			HashedPassword: hashed,
			Role:           rec.Role,
		})
		usernames = append(usernames, rec.Username)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // Rollback if not committed

	if err := userRepo.DeleteByUsernames(ctx, tx, usernames); err != nil {
		return fmt.Errorf("failed to delete existing admin users: %w", err)
	}
	if err := userRepo.CreateMany(ctx, tx, users); err != nil {
		return fmt.Errorf("failed to insert admin users: %w", err)
	}

	return tx.Commit()
}
