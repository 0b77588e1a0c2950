package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"

	"profhub/internal/config"
	"profhub/internal/database"
	"profhub/internal/domain"
	"profhub/internal/pkg/logger"
	"profhub/internal/repository"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const demoPassword = "password123"

type demoProfessional struct {
	name, email, phone, description string
	categories                      []string
}

var categoryNames = []string{"Plumbing", "Electrical", "Carpentry", "Painting", "Gardening", "Cleaning"}

var professionals = []demoProfessional{
	{"Marta Kowalski", "marta@profhub.dev", "+1 555 0101", "Leaks, boilers and bathroom refits.", []string{"Plumbing"}},
	{"Diego Ruiz", "diego@profhub.dev", "+1 555 0102", "Rewiring and fuse boxes.", []string{"Electrical"}},
	{"Aigerim Sadykova", "aigerim@profhub.dev", "+1 555 0103", "Custom shelving and doors.", []string{"Carpentry", "Painting"}},
	{"Tom Becker", "tom@profhub.dev", "+1 555 0104", "Lawns, hedges and seasonal planting.", []string{"Gardening"}},
	{"Lena Novak", "lena@profhub.dev", "+1 555 0105", "Move-out and deep cleaning.", []string{"Cleaning", "Painting"}},
}

var clientEmails = []string{"asel@mail.dev", "bekzat@mail.dev", "dina@mail.dev"}

func main() {
	cfg, err := config.Load()
	if err != nil {
		boot := logger.New("info", "dev", os.Stderr)
		boot.Fatal().Err(err).Msg("config load failed")
	}
	log := logger.New(cfg.LogLevel, cfg.AppEnv, os.Stdout)

	db, err := database.Connect(cfg.DatabaseURL, database.Options{Log: log, LogLevel: logger.GormLevel(cfg.LogLevel)})
	if err != nil {
		log.Fatal().Err(err).Msg("DB connection failed")
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Error().Err(err).Msg("database close failed")
		}
	}()

	log.Info().Msg("running AutoMigrate")
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("AutoMigrate failed")
	}

	if err := seed(context.Background(), db, log); err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}
	log.Info().Str("password", demoPassword).Msg("seed complete")
}

func seed(ctx context.Context, db *gorm.DB, log zerolog.Logger) error {
	// Children first so foreign keys never block the cleanup.
	log.Info().Msg("cleaning old data")
	for _, table := range []string{"reviews", "professionals_categories", "professionals", "categories", "users"} {
		if err := db.WithContext(ctx).Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clean %s: %w", table, err)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	users := repository.NewUserRepository(db)
	categories := repository.NewCategoryRepository(db)
	pros := repository.NewProfessionalRepository(db, log)
	reviews := repository.NewReviewRepository(db)

	log.Info().Msg("creating categories")
	categoryIDs := make(map[string]int64, len(categoryNames))
	for _, name := range categoryNames {
		c := &domain.Category{Name: name}
		if err := categories.Create(ctx, c); err != nil {
			return fmt.Errorf("create category %q: %w", name, err)
		}
		categoryIDs[name] = c.ID
	}

	log.Info().Msg("creating professionals")
	proIDs := make([]int64, 0, len(professionals))
	for _, dp := range professionals {
		u := &domain.User{Name: dp.name, Email: dp.email, PasswordHash: string(hash), IsActive: true}
		if err := users.Create(ctx, u); err != nil {
			return fmt.Errorf("create user %s: %w", dp.email, err)
		}

		ids := make([]int64, 0, len(dp.categories))
		for _, name := range dp.categories {
			ids = append(ids, categoryIDs[name])
		}

		p, err := pros.Create(ctx, domain.CreateProfessional{
			UserID:      u.ID,
			PhoneNumber: dp.phone,
			Description: dp.description,
			Categories:  ids,
		})
		if err != nil {
			return fmt.Errorf("create professional %s: %w", dp.email, err)
		}
		proIDs = append(proIDs, p.ID)
	}

	log.Info().Msg("creating clients and reviews")
	rng := rand.New(rand.NewSource(42))
	for i, email := range clientEmails {
		u := &domain.User{Name: fmt.Sprintf("Client %d", i+1), Email: email, PasswordHash: string(hash), IsActive: true}
		if err := users.Create(ctx, u); err != nil {
			return fmt.Errorf("create client %s: %w", email, err)
		}

		// Leave the last professional unreviewed so the ranking shows a zero.
		for _, pid := range proIDs[:len(proIDs)-1] {
			rv := &domain.Review{
				ProfessionalID: pid,
				UserID:         u.ID,
				Rating:         1 + rng.Intn(5),
				Comment:        "Seeded review",
			}
			if err := reviews.Create(ctx, rv); err != nil {
				return fmt.Errorf("create review: %w", err)
			}
		}
	}

	return nil
}
