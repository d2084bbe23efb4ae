package main

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/prepwise/interview-assistant/internal/adapter/repository"
	"github.com/prepwise/interview-assistant/internal/domain/entities"
	"github.com/prepwise/interview-assistant/internal/infrastructure/database"
	"github.com/prepwise/interview-assistant/pkg/config"
	pkgjwt "github.com/prepwise/interview-assistant/pkg/jwt"
)

// Seeds an organizer and a few candidates with bearer tokens for manual API
// testing. Clean up with: DELETE FROM users WHERE email LIKE '%@test.local'
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	jwtManager := pkgjwt.NewManager(cfg.JWT.Secret, cfg.JWT.Expiry)
	userRepo := repository.NewUserRepository(db)
	ctx := context.Background()

	testUsers := []struct {
		Email string
		Name  string
		Role  entities.UserRole
	}{
		{Email: "hr@test.local", Name: "Harriet", Role: entities.UserRoleOrganizer},
		{Email: "alice@test.local", Name: "Alice", Role: entities.UserRoleCandidate},
		{Email: "bob@test.local", Name: "Bob", Role: entities.UserRoleCandidate},
		{Email: "charlie@test.local", Name: "Charlie", Role: entities.UserRoleCandidate},
	}

	log.Println("Cleaning up existing test users...")
	db.Where("email LIKE ?", "%@test.local").Delete(&entities.User{})

	for _, tu := range testUsers {
		user := &entities.User{
			ID:    uuid.New(),
			Email: tu.Email,
			Name:  tu.Name,
			Role:  tu.Role,
		}

		if err := userRepo.Create(ctx, user); err != nil {
			log.Printf("Failed to create user %s: %v", tu.Email, err)
			continue
		}

		token, err := jwtManager.Generate(user.ID, user.Email, string(user.Role))
		if err != nil {
			log.Printf("Failed to generate token for %s: %v", tu.Email, err)
			continue
		}

		fmt.Printf("═══════════════════════════════════════════════════════\n")
		fmt.Printf("User:    %s (%s)\n", user.Name, user.Role)
		fmt.Printf("Email:   %s\n", user.Email)
		fmt.Printf("User ID: %s\n", user.ID)
		fmt.Printf("\nBearer token (expiry %v):\n%s\n\n", cfg.JWT.Expiry, token)
	}

	log.Println("All test users created")
}
