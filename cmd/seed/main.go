package main

import (
	"context"
	"log"
	"os"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"digimart/internal/config"
	"digimart/internal/db"
	"digimart/internal/model"
	"digimart/internal/repository"
)

// Seed bootstraps the store: the initial admin user (the public API has no
// way to grant the admin flag) and a small sample catalog. Safe to re-run;
// existing records are left alone.
func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Product{}, &model.Payment{}, &model.PaymentItem{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	productRepo := repository.NewProductRepository(gormDB)

	if err := seedAdmin(ctx, userRepo); err != nil {
		log.Fatalf("Failed to seed admin: %v", err)
	}

	created, err := seedCatalog(ctx, productRepo)
	if err != nil {
		log.Fatalf("Failed to seed catalog: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - Sample products created: %d", created)
}

func seedAdmin(ctx context.Context, users repository.UserRepository) error {
	email := getEnv("ADMIN_EMAIL", "admin@digimart.local")
	password := getEnv("ADMIN_PASSWORD", "change-me-now")

	existing, err := users.FindByEmail(ctx, email)
	if err != nil && err != gorm.ErrRecordNotFound {
		return err
	}
	if existing != nil {
		log.Printf("Admin %s already exists, skipping", email)
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		return err
	}

	admin := &model.User{
		Name:         "Store Admin",
		Email:        email,
		PasswordHash: string(hash),
		IsAdmin:      true,
	}
	if err := users.Create(ctx, admin); err != nil {
		return err
	}
	log.Printf("Admin user %s created", email)
	return nil
}

func seedCatalog(ctx context.Context, products repository.ProductRepository) (int, error) {
	samples := []model.Product{
		{
			Name:         "Invoice Generator Script",
			Price:        decimal.NewFromInt(1000),
			Description:  "Self-hosted invoice generator with GST support.",
			DownloadLink: "https://cdn.digimart.local/downloads/invoice-generator.zip",
			Discount:     20,
		},
		{
			Name:         "Telegram Alert Bot",
			Price:        decimal.NewFromInt(500),
			Description:  "Price alert bot, ready to deploy.",
			DownloadLink: "https://cdn.digimart.local/downloads/telegram-alert-bot.zip",
		},
		{
			Name:         "Portfolio Site Template",
			Price:        decimal.NewFromInt(300),
			Description:  "Single page portfolio template.",
			DownloadLink: "https://cdn.digimart.local/downloads/portfolio-template.zip",
			Discount:     10,
		},
	}

	existing, err := products.List(ctx)
	if err != nil {
		return 0, err
	}
	byName := make(map[string]struct{}, len(existing))
	for _, p := range existing {
		byName[p.Name] = struct{}{}
	}

	created := 0
	for i := range samples {
		if _, ok := byName[samples[i].Name]; ok {
			continue
		}
		if err := products.Create(ctx, &samples[i]); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
