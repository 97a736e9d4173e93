package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log"

	"anoa.com/ecoinsight/internal/entity"
	userRepo "anoa.com/ecoinsight/internal/modules/user/repository"
	wasteRepo "anoa.com/ecoinsight/internal/modules/waste/repository"
	"anoa.com/ecoinsight/pkg/apperror"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	DemoEmail    = "demo@ecoinsight.app"
	demoName     = "Eco Demo"
	demoPassword = "demo123"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.User{},
		&entity.UserAchievement{},
		&entity.Redemption{},
		&entity.WasteRecord{},
	)
}

// MigrateMongo creates the indexes the document store relies on.
func MigrateMongo(ctx context.Context, db *mongo.Database) error {
	if err := userRepo.EnsureIndexes(ctx, db); err != nil {
		return fmt.Errorf("users indexes: %w", err)
	}
	if err := wasteRepo.EnsureIndexes(ctx, db); err != nil {
		return fmt.Errorf("wastes indexes: %w", err)
	}
	return nil
}

// SeedDemoUser creates a demo account in development.
func SeedDemoUser(ctx context.Context, repo userRepo.UserRepository) error {
	_, err := repo.FindByEmail(ctx, DemoEmail)
	if err == nil {
		log.Println("Demo user already exists, skipping seed")
		return nil
	}
	if !errors.Is(err, apperror.ErrNotFound) {
		return err
	}

	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	demoUser := &entity.User{
		Name:         demoName,
		Email:        DemoEmail,
		PasswordHash: string(hashedPasswordBytes),
	}
	if err := repo.Create(ctx, demoUser); err != nil {
		return err
	}

	log.Println("✅ Demo user seeded successfully")
	log.Printf("   Email: %s", DemoEmail)
	log.Printf("   Password: %s", demoPassword)

	return nil
}
