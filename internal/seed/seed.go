// Package seed creates the default school and admin account on first boot.
package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/altan/schoolhub/internal/app/models"
	appRepos "github.com/altan/schoolhub/internal/app/repositories"
	"github.com/altan/schoolhub/internal/pkg/apperrors"
	"github.com/altan/schoolhub/internal/pkg/auth"
	"github.com/altan/schoolhub/internal/pkg/logger"
)

const (
	defaultSchoolCode = "DEFAULT"
	defaultAdminEmail = "admin@schoolhub.local"

	// Initial credential, expected to be rotated after first login.
	defaultAdminPassword = "admin123!"
)

// CreateDefaultData ensures a default school and an admin user exist so the
// API is usable right after the first migration.
func CreateDefaultData(ctx context.Context, pool *pgxpool.Pool) error {
	schoolRepo := appRepos.NewSchoolRepository(pool)
	userRepo := appRepos.NewUserRepository(pool)

	school, err := schoolRepo.GetByCode(ctx, defaultSchoolCode)
	if err != nil {
		if !errors.Is(err, apperrors.ErrSchoolNotFound) {
			return err
		}
		school = &models.School{Name: "Default School", Code: defaultSchoolCode}
		if err := schoolRepo.Create(ctx, school); err != nil {
			return err
		}
		logger.Info().Int64("schoolId", school.ID).Msg("Default school created")
	}

	if _, err := userRepo.GetByEmail(ctx, defaultAdminEmail); err == nil {
		return nil
	} else if !errors.Is(err, apperrors.ErrUserNotFound) {
		return err
	}

	hashed, err := auth.HashPassword(defaultAdminPassword)
	if err != nil {
		return err
	}

	admin := &models.User{
		Email:     defaultAdminEmail,
		Password:  hashed,
		FirstName: "System",
		LastName:  "Admin",
		Role:      models.RoleAdmin,
		SchoolID:  school.ID,
		IsActive:  true,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil
		}
		return err
	}

	logger.Info().Str("email", defaultAdminEmail).Msg("Default admin account created")
	return nil
}
