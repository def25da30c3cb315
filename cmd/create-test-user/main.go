// Command create-test-user seeds a demo lawyer account for manual
// testing:
//
//	DATABASE_URL=postgres://... go run ./cmd/create-test-user
package main

import (
	"context"
	"log"
	"time"

	"lexassist-backend/config"
	"lexassist-backend/models"
	"lexassist-backend/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

const (
	testEmail    = "lawyer@example.com"
	testPassword = "testpassword123"
)

func main() {
	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create database pool: %v", err)
	}
	defer pool.Close()

	userRepo := repository.NewPostgresUserRepository(pool)

	if existing, err := userRepo.GetByEmail(ctx, testEmail); err == nil {
		log.Printf("Test user already exists: %s (%s)", existing.Email, existing.ID)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	user := &models.User{
		ID:           uuid.New(),
		Email:        testEmail,
		PasswordHash: string(hash),
		Name:         "Test Lawyer",
		Role:         models.RoleLawyer,
		Stats:        models.UserStats{},
	}

	if err := userRepo.Create(ctx, user); err != nil {
		log.Fatalf("Failed to create test user: %v", err)
	}

	log.Printf("Created test user %s / %s (id %s)", testEmail, testPassword, user.ID)
}
