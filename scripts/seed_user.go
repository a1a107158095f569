package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/khoahotran/profile-studio/adapters/persistence"
	"github.com/khoahotran/profile-studio/internal/config"
	"github.com/khoahotran/profile-studio/internal/domain/user"
	"github.com/khoahotran/profile-studio/pkg/auth"
	"github.com/khoahotran/profile-studio/pkg/logger"
)

func main() {
	fmt.Println("adding user into database...")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("cannot load config: %v", err)
	}

	email := strings.ToLower(strings.TrimSpace(os.Getenv("SEED_USER_EMAIL")))
	password := os.Getenv("SEED_USER_PASSWORD")
	if email == "" || password == "" {
		log.Fatal("SEED_USER_EMAIL and SEED_USER_PASSWORD are required")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Fatalf("cannot hash password: %v", err)
	}

	ctx := context.Background()
	pool, err := persistence.NewPostgresPool(ctx, cfg, logger.NewNop())
	if err != nil {
		log.Fatalf("cannot connect DB: %v", err)
	}
	defer pool.Close()

	u := &user.User{Email: email, PasswordHash: hash}
	if name := os.Getenv("SEED_USER_NAME"); name != "" {
		u.Name = &name
	}
	if err := persistence.NewPostgresUserRepo(pool, logger.NewNop()).Upsert(ctx, u); err != nil {
		log.Fatalf("cannot add user: %v", err)
	}

	fmt.Printf("added or updated user '%s' (%s) successfully!\n", email, u.ID)
}
