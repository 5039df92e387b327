package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/clinic-admin/internal/models"
)

// SeedAdmin creates the admin account or resets its password.
func SeedAdmin(ctx context.Context, db *gorm.DB, username, password string) (*models.Admin, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, errors.New("admin username and password are required")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	admin := models.Admin{Username: username, PasswordHash: string(hashed)}
	if err := db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "username"}},
			DoUpdates: clause.AssignmentColumns([]string{"password_hash", "updated_at"}),
		}).
		Create(&admin).Error; err != nil {
		return nil, fmt.Errorf("upsert admin: %w", err)
	}

	var saved models.Admin
	if err := db.WithContext(ctx).Where("username = ?", username).First(&saved).Error; err != nil {
		return nil, err
	}
	return &saved, nil
}
