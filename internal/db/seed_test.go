package db

import (
	"context"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/clinic-admin/internal/dbtest"
	"github.com/BruksfildServices01/clinic-admin/internal/models"
)

func TestSeedAdmin_Upserts(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()

	first, err := SeedAdmin(ctx, db, " admin ", "admin123")
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if first.Username != "admin" {
		t.Errorf("expected trimmed username, got %q", first.Username)
	}

	second, err := SeedAdmin(ctx, db, "admin", "changed")
	if err != nil {
		t.Fatalf("reseed: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("expected same admin row, got %d and %d", first.ID, second.ID)
	}

	var count int64
	db.Model(&models.Admin{}).Count(&count)
	if count != 1 {
		t.Errorf("expected one admin, got %d", count)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(second.PasswordHash), []byte("changed")); err != nil {
		t.Error("password was not reset")
	}
}

func TestSeedAdmin_RequiresCredentials(t *testing.T) {
	db := dbtest.Open(t)
	if _, err := SeedAdmin(context.Background(), db, "", "x"); err == nil {
		t.Error("expected error for empty username")
	}
}
