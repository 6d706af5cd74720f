// Command createadmin seeds the single administrator account.  Running it
// again is harmless: an existing account with the same email is left as is.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/iliyamo/restaurant-reservation/internal/config"
	"github.com/iliyamo/restaurant-reservation/internal/database"
	"github.com/iliyamo/restaurant-reservation/internal/logger"
	"github.com/iliyamo/restaurant-reservation/internal/repository"
	"github.com/iliyamo/restaurant-reservation/internal/service"
)

func main() {
	var in service.SignupInput
	pflag.StringVar(&in.Email, "email", "admin@restaurant.com", "admin email")
	pflag.StringVar(&in.Password, "password", "admin123", "admin password")
	pflag.StringVar(&in.FirstName, "first-name", "Admin", "admin first name")
	pflag.StringVar(&in.LastName, "last-name", "User", "admin last name")
	pflag.StringVar(&in.Phone, "phone", "1234567890", "admin phone, 10 digits")
	migrate := pflag.Bool("migrate", true, "apply schema migrations first")
	pflag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	zl, err := logger.New(cfg.IsDevelopment())
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	dsn := cfg.MySQLDSN()
	if *migrate {
		if err := database.RunMigrations(dsn); err != nil {
			zl.Fatal("migrate", zap.Error(err))
		}
	}
	db, err := database.Open(ctx, dsn)
	if err != nil {
		zl.Fatal("open database", zap.Error(err))
	}
	defer db.Close()

	auth := service.NewAuthService(repository.NewUserRepo(db), service.AuthConfig{
		Secret:     cfg.JWTSecret,
		SessionTTL: cfg.JWTExpire,
		BcryptCost: cfg.BcryptCost,
	}, nil, zl)

	u, created, err := auth.SeedAdmin(ctx, in)
	if err != nil {
		zl.Error("seed admin", zap.Error(err))
		os.Exit(1)
	}
	if !created {
		fmt.Printf("admin already exists: %s (id %d)\n", u.Email, u.ID)
		return
	}
	fmt.Printf("admin created: %s (id %d)\n", u.Email, u.ID)
}
