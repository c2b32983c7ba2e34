package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"homestay/internal/auth"
	"homestay/internal/database"
	"homestay/internal/models"
	"homestay/internal/validation"

	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	var (
		dbPath   = flag.String("db", "./data/homestay.db", "path to sqlite db")
		email    = flag.String("email", "", "admin email")
		name     = flag.String("name", "Administrator", "admin full name")
		password = flag.String("password", "", "admin password (or ADMIN_PASSWORD)")
	)
	flag.Parse()

	if *password == "" {
		*password = os.Getenv("ADMIN_PASSWORD")
	}

	in := models.RegisterInput{FullName: *name, Email: *email, Password: *password}
	if fe := validation.Struct(in); fe != nil {
		return fmt.Errorf("invalid %s: %s", fe.Field, fe.Message)
	}

	db, err := database.NewDB(*dbPath, &logger)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	user, err := db.CreateUser(ctx, in.FullName, in.Email, hash)
	if err != nil {
		if errors.Is(err, database.ErrConflict) {
			return fmt.Errorf("user %s already exists", models.NormalizeEmail(in.Email))
		}
		return fmt.Errorf("create user: %w", err)
	}

	logger.Info().Int64("id", user.ID).Str("email", user.Email).Msg("admin user created")
	return nil
}
