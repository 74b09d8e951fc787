package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"minesweeper_webapp/internal/db"
	"minesweeper_webapp/internal/logger"
	"minesweeper_webapp/internal/repository"
	"minesweeper_webapp/internal/service"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	username := flag.String("username", "testuser", "username to create or reuse")
	password := flag.String("password", "testpass123", "password for a newly created user")
	flag.Parse()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		logger.Fatal("DATABASE_URL not set")
	}

	pool := db.Connect(dsn)
	defer pool.Close()

	users := repository.NewUserRepository(pool)
	auth := service.NewAuthService(users, 0)
	ctx := context.Background()

	u, err := users.GetByUsername(ctx, *username)
	switch {
	case err == nil:
		logger.Info("user already exists", "id", u.ID)
	case errors.Is(err, repository.ErrNotFound):
		u, err = auth.Register(ctx, service.RegisterInput{
			Username:  *username,
			Password:  *password,
			FirstName: "Tester",
		})
		if err != nil {
			logger.Fatal("create user failed", "error", err)
		}
		logger.Info("user created", "id", u.ID)
	default:
		logger.Fatal("lookup user failed", "error", err)
	}

	fetched, err := users.GetByID(ctx, u.ID)
	if err != nil {
		logger.Fatal("get by id failed", "error", err)
	}
	logger.Info("fetched user", "id", fetched.ID, "username", fetched.Username, "created_at", fetched.CreatedAt)

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		logger.Fatal("JWT_SECRET not set")
	}
	service.InitJWT(secret)
	token, err := service.GenerateJWT(fetched.ID)
	if err != nil {
		logger.Fatal("failed to generate token", "error", err)
	}
	fmt.Println(token)
}
