package main

import (
	"context"
	"log"
	"os"

	"gorm.io/gorm"

	"khabarkhana/internal/config"
	"khabarkhana/internal/db"
	"khabarkhana/internal/model"
	"khabarkhana/internal/repository"
	"khabarkhana/internal/service"
)

var starterCategories = []string{
	"Politics",
	"Sports",
	"Technology",
	"Business",
	"Entertainment",
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Category{}, &model.Article{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	users := repository.NewUserRepository(gormDB)
	categories := repository.NewCategoryRepository(gormDB)

	admin, err := seedAdmin(ctx, users)
	if err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}

	created := 0
	for _, name := range starterCategories {
		if _, err := categories.FindByName(ctx, name); err == nil {
			continue
		} else if err != gorm.ErrRecordNotFound {
			log.Fatalf("Failed to check category %q: %v", name, err)
		}

		category := &model.Category{
			Name:    name,
			Slug:    service.CategorySlug(name),
			OwnerID: &admin.ID,
		}
		if err := categories.Create(ctx, category); err != nil {
			log.Fatalf("Failed to create category %q: %v", name, err)
		}
		created++
	}

	log.Printf("Seed complete: admin %q, %d new categories", admin.Username, created)
}

// seedAdmin creates the admin user unless it already exists.
func seedAdmin(ctx context.Context, users repository.UserRepository) (*model.User, error) {
	username := getEnv("SEED_ADMIN_USERNAME", "admin")
	email := getEnv("SEED_ADMIN_EMAIL", "admin@khabarkhana.local")
	password := getEnv("SEED_ADMIN_PASSWORD", "changeme123")

	if existing, err := users.FindByUsernameOrEmail(ctx, username); err == nil {
		log.Printf("Admin user %q already exists, skipping", username)
		return existing, nil
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	hash, err := service.HashPassword(password)
	if err != nil {
		return nil, err
	}

	admin := &model.User{
		Username:     username,
		Email:        email,
		FullName:     "Portal Admin",
		PasswordHash: hash,
		Role:         model.RoleAdmin,
	}
	if err := users.Create(ctx, admin); err != nil {
		return nil, err
	}
	log.Printf("Created admin user %q", username)
	return admin, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
