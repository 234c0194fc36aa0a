package main

import (
	"context"
	"errors"
	"os"

	"simplepay/internal/config"
	"simplepay/internal/models"
	"simplepay/internal/repositories"
	"simplepay/internal/repositories/cache"
	"simplepay/internal/services/user"
	"simplepay/internal/validation"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	password := os.Getenv("SEED_PASSWORD")
	if password == "" {
		log.Fatal("SEED_PASSWORD must be set in environment")
	}

	// InitDB migrates and seeds the lookup tables.
	db, err := repositories.InitDB(cfg.DB)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer func() {
		if err := repositories.Close(db); err != nil {
			log.Warn("Failed to close database connection", zap.Error(err))
		}
	}()

	userRepo := repositories.NewUserRepository(db, cache.Noop{}, log)
	users := user.NewService(
		userRepo,
		repositories.NewUserTypeRepository(db),
		repositories.NewDocumentTypeRepository(db),
		log,
	)

	demo := []user.CreateInput{
		{
			Name:           "Demo Customer",
			Email:          "customer@simplepay.local",
			Password:       password,
			UserTypeID:     models.UserTypeCommon,
			DocumentTypeID: models.DocumentTypeCPF,
			DocumentNumber: "12345678909",
			Balance:        decimal.RequireFromString("1000.00"),
		},
		{
			Name:           "Demo Shop",
			Email:          "shop@simplepay.local",
			Password:       password,
			UserTypeID:     models.UserTypeShopkeeper,
			DocumentTypeID: models.DocumentTypeCNPJ,
			DocumentNumber: "11222333000181",
			Balance:        decimal.Zero,
		},
	}

	ctx := context.Background()
	for _, in := range demo {
		u, err := users.Create(ctx, in)
		var verr validation.Errors
		switch {
		case errors.As(err, &verr):
			log.Info("Demo user already exists", zap.String("email", in.Email))
		case err != nil:
			log.Fatal("Failed to create demo user", zap.String("email", in.Email), zap.Error(err))
		default:
			log.Info("Demo user created", zap.Uint("id", u.ID), zap.String("email", u.Email))
		}
	}
}
