// Command migrate applies the SQL migrations in migrations/ in lexical order
// and, when SEED_DATA=true, inserts the demo admin and shareholder accounts.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/captable/captable-api/internal/core/domain"
	"github.com/captable/captable-api/internal/infrastructure/config"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		fmt.Printf("Failed to connect to DB: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	files, err := filepath.Glob("migrations/*.sql")
	if err != nil {
		fmt.Printf("Failed to list migrations: %v\n", err)
		os.Exit(1)
	}
	sort.Strings(files)

	for _, file := range files {
		sqlBytes, err := os.ReadFile(file)
		if err != nil {
			fmt.Printf("Failed to read %s: %v\n", file, err)
			os.Exit(1)
		}
		if _, err := pool.Exec(ctx, string(sqlBytes)); err != nil {
			fmt.Printf("Migration %s failed: %v\n", file, err)
			os.Exit(1)
		}
		fmt.Printf("Applied %s\n", file)
	}

	if cfg.Database.SeedData {
		if err := seed(ctx, pool); err != nil {
			fmt.Printf("Seeding failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Seed data ensured.")
	}
}

// seed inserts a demo admin and one shareholder account, skipping whatever
// already exists.
func seed(ctx context.Context, pool *pgxpool.Pool) error {
	if err := seedUser(ctx, pool, "admin", "adminpass", domain.RoleAdmin); err != nil {
		return err
	}
	if err := seedUser(ctx, pool, "shareholder1", "shpass", domain.RoleShareholder); err != nil {
		return err
	}

	var userID int64
	if err := pool.QueryRow(ctx, `SELECT id FROM users WHERE username = 'shareholder1'`).Scan(&userID); err != nil {
		return fmt.Errorf("look up shareholder1: %w", err)
	}
	_, err := pool.Exec(ctx, `
		INSERT INTO shareholders (user_id, name, email)
		VALUES ($1, 'John Doe', 'john@example.com')
		ON CONFLICT (user_id) DO NOTHING`, userID)
	if err != nil {
		return fmt.Errorf("seed shareholder profile: %w", err)
	}
	return nil
}

func seedUser(ctx context.Context, pool *pgxpool.Pool, username, password, role string) error {
	var exists bool
	if err := pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`, username).Scan(&exists); err != nil {
		return fmt.Errorf("check user %s: %w", username, err)
	}
	if exists {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = pool.Exec(ctx, `
		INSERT INTO users (username, password_hash, role)
		VALUES ($1, $2, $3)`, username, string(hash), role)
	if err != nil {
		return fmt.Errorf("seed user %s: %w", username, err)
	}
	return nil
}
