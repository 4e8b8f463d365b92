package main

import (
	"context"
	"fmt"
	"os"

	"github.com/copypoint/cp-backend/internal/config"
	"github.com/copypoint/cp-backend/internal/database"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintf(os.Stderr, "Usage: %s <email> <password>\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Example: %s admin@copypoint.dev mypassword\n", os.Args[0])
		os.Exit(1)
	}

	email := os.Args[1]
	password := os.Args[2]

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating hash: %v\n", err)
		os.Exit(1)
	}

	cfg := config.Load()
	ctx := context.Background()
	db, err := database.New(ctx, &cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	_, err = db.Pool().Exec(ctx,
		`INSERT INTO users (email, password_hash, status) VALUES ($1, $2, 'active')`,
		email, string(hash))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create user: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("User created successfully: %s\n", email)
}
