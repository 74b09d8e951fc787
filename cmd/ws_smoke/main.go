package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"minesweeper_webapp/internal/db"
	"minesweeper_webapp/internal/logger"
	"minesweeper_webapp/internal/repository"
	"minesweeper_webapp/internal/service"

	"github.com/gorilla/websocket"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		logger.Fatal("DATABASE_URL not set")
	}
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal("JWT_SECRET not set")
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	pool := db.Connect(dsn)
	defer pool.Close()

	users := repository.NewUserRepository(pool)
	ctx := context.Background()

	u, err := users.GetByUsername(ctx, "smoke")
	if errors.Is(err, repository.ErrNotFound) {
		u, err = service.NewAuthService(users, 0).Register(ctx, service.RegisterInput{Username: "smoke", Password: "smoke-pass"})
	}
	if err != nil {
		logger.Fatal("prepare user", "error", err)
	}

	service.InitJWT(jwtSecret)
	token, err := service.GenerateJWT(u.ID)
	if err != nil {
		logger.Fatal("gen token", "error", err)
	}

	// use 127.0.0.1 to prefer IPv4 (avoid resolving to [::1])
	url := fmt.Sprintf("ws://127.0.0.1:%s/ws?token=%s", port, token)
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		logger.Fatal("dial", "error", err)
	}
	defer conn.Close()

	readMsg := func(want string) map[string]any {
		deadline := time.Now().Add(3 * time.Second)
		for time.Now().Before(deadline) {
			_ = conn.SetReadDeadline(deadline)
			_, msg, err := conn.ReadMessage()
			if err != nil {
				logger.Fatal("read", "error", err)
			}
			var obj map[string]any
			_ = json.Unmarshal(msg, &obj)
			if t, _ := obj["type"].(string); t == want || t == "error" {
				fmt.Println(string(msg))
				return obj
			}
		}
		logger.Fatal("timed out waiting for message", "type", want)
		return nil
	}

	readMsg("ready")

	send := func(v any) {
		if err := conn.WriteJSON(v); err != nil {
			logger.Fatal("write", "error", err)
		}
	}

	send(map[string]any{"type": "new", "rows": 9, "cols": 9, "mines": 10})
	readMsg("created")

	send(map[string]any{"type": "reveal", "r": 4, "c": 4})
	readMsg("update")

	logger.Info("smoke test finished")
}
