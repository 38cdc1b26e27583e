package postgres

import (
	"context"
	"log/slog"
	"time"

	"crm/config"
	"crm/internal/domain/entity"
	"crm/internal/domain/service"
	"crm/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Migrate creates or updates the schema for all persistence models.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.UserModel{}, &model.CustomerModel{}); err != nil {
		return errors.Wrap(err, "failed to migrate schema")
	}

	return nil
}

// Seed loads the initial admin account and sample customers when the
// database is empty. It is idempotent and only runs when Database.Seed is
// enabled.
func Seed(ctx context.Context, db *gorm.DB, cfg *config.Config, hasher service.PasswordHasher, logger *slog.Logger) error {
	if cfg.Database == nil || !cfg.Database.Seed {
		return nil
	}

	if err := seedAdmin(ctx, db, cfg, hasher, logger); err != nil {
		return err
	}

	return seedCustomers(ctx, db, logger)
}

func seedAdmin(ctx context.Context, db *gorm.DB, cfg *config.Config, hasher service.PasswordHasher, logger *slog.Logger) error {
	var count int64
	if err := db.WithContext(ctx).Model(&model.UserModel{}).Count(&count).Error; err != nil {
		return errors.Wrap(err, "failed to count users")
	}
	if count > 0 {
		return nil
	}

	password := "admin"
	if cfg.Auth != nil && cfg.Auth.AdminInitialPassword != "" {
		password = cfg.Auth.AdminInitialPassword
	}

	hash, err := hasher.Hash(password)
	if err != nil {
		return errors.Wrap(err, "failed to hash admin password")
	}

	now := time.Now().UTC()
	admin := &model.UserModel{
		Username:     "admin",
		Email:        "admin@example.com",
		Role:         string(entity.RoleAdmin),
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := db.WithContext(ctx).Create(admin).Error; err != nil {
		return errors.Wrap(err, "failed to seed admin account")
	}

	logger.Info("Seeded initial admin account", slog.String("username", admin.Username))

	return nil
}

func seedCustomers(ctx context.Context, db *gorm.DB, logger *slog.Logger) error {
	var count int64
	if err := db.WithContext(ctx).Model(&model.CustomerModel{}).Count(&count).Error; err != nil {
		return errors.Wrap(err, "failed to count customers")
	}
	if count > 0 {
		return nil
	}

	samples := []*model.CustomerModel{
		{
			FirstName:        "John",
			LastName:         "Doe",
			Email:            "john.doe@example.com",
			Region:           "North America",
			RegistrationDate: time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			FirstName:        "Jane",
			LastName:         "Smith",
			Email:            "jane.smith@example.com",
			Region:           "Europe",
			RegistrationDate: time.Date(2023, 5, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			FirstName:        "Carlos",
			LastName:         "Gomez",
			Email:            "carlos.gomez@example.com",
			Region:           "South America",
			RegistrationDate: time.Date(2023, 7, 22, 0, 0, 0, 0, time.UTC),
		},
	}
	if err := db.WithContext(ctx).Create(&samples).Error; err != nil {
		return errors.Wrap(err, "failed to seed sample customers")
	}

	logger.Info("Seeded sample customers", slog.Int("count", len(samples)))

	return nil
}
