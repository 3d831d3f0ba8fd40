package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/oksasatya/account-service/config"
	"github.com/oksasatya/account-service/internal/domain/entity"
	repo "github.com/oksasatya/account-service/internal/domain/repository"
	pginfra "github.com/oksasatya/account-service/internal/infrastructure/postgres"
	"github.com/oksasatya/account-service/pkg/helpers"
	"github.com/oksasatya/account-service/pkg/phone"
)

// seeds a confirmed admin account for local development
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), pginfra.PoolOptions{AppName: cfg.AppName + "-seed"})
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()
	users := pginfra.NewUserRepository(pool)

	email := "admin@example.com"
	password := "Adm1n!Passw0rd"
	if _, err := users.GetByEmail(ctx, email); err == nil {
		fmt.Printf("user %s already seeded\n", email)
		return
	} else if !errors.Is(err, repo.ErrNotFound) {
		log.Fatalf("failed to look up user: %v", err)
	}

	number, tz, err := phone.Resolver{}.Resolve("+14155552671")
	if err != nil {
		log.Fatalf("failed to resolve phone: %v", err)
	}
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}
	token, err := helpers.GenConfirmationToken()
	if err != nil {
		log.Fatalf("failed to generate token: %v", err)
	}
	code, err := helpers.GenOTPCode(helpers.ConfirmationCodeLength)
	if err != nil {
		log.Fatalf("failed to generate code: %v", err)
	}

	u := &entity.User{
		Name:         "demoAdmin",
		EmailAddress: email,
		Password:     hash,
		PhoneNumber: entity.PhoneNumber{
			CountryCode:         number.CountryCode,
			ISOCode:             number.ISOCode,
			InternationalNumber: number.InternationalNumber,
		},
		Role:                entity.RoleAdmin,
		Timezone:            tz,
		Consent:             true,
		AccountConfirmation: entity.AccountConfirmation{Token: token, Code: code},
	}
	if err := users.Create(ctx, u); err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	u.Confirm(time.Now())
	if err := users.Save(ctx, u); err != nil {
		log.Fatalf("failed to confirm seeded user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s role=%s\n", u.ID, email, u.Role)
}
