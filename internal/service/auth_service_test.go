package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/destore-next/internal/config"
	"github.com/destore-next/internal/models"
	"github.com/destore-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAuthServiceTest(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Manager{}); err != nil {
		t.Fatalf("migrate manager failed: %v", err)
	}
	cfg := &config.Config{}
	cfg.JWT.SecretKey = "test-secret-key-for-auth-service-tests-0001"
	cfg.JWT.ExpireHours = 24
	return NewAuthService(cfg, repository.NewManagerRepository(db)), db
}

func createManager(t *testing.T, svc *AuthService, db *gorm.DB, username, password string) *models.Manager {
	t.Helper()
	hash, err := svc.HashPassword(password)
	if err != nil {
		t.Fatalf("hash password failed: %v", err)
	}
	manager := &models.Manager{Username: username, PasswordHash: hash}
	if err := db.Create(manager).Error; err != nil {
		t.Fatalf("create manager failed: %v", err)
	}
	return manager
}

func TestLoginSuccess(t *testing.T) {
	svc, db := setupAuthServiceTest(t)
	createManager(t, svc, db, "manager", "secret-password")

	manager, token, _, err := svc.Login("manager", "secret-password")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("token should not be empty")
	}
	if manager.LastLoginAt == nil {
		t.Fatalf("last login time should be recorded")
	}

	claims, err := svc.ParseJWT(token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if claims.ManagerID != manager.ID {
		t.Fatalf("claims manager id want %d got %d", manager.ID, claims.ManagerID)
	}
	if claims.Username != "manager" {
		t.Fatalf("claims username want manager got %s", claims.Username)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc, db := setupAuthServiceTest(t)
	createManager(t, svc, db, "manager", "secret-password")

	if _, _, _, err := svc.Login("manager", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password want ErrInvalidCredentials got %v", err)
	}
	if _, _, _, err := svc.Login("unknown", "secret-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown user want ErrInvalidCredentials got %v", err)
	}
}

func TestParseJWTRejectsTampered(t *testing.T) {
	svc, db := setupAuthServiceTest(t)
	manager := createManager(t, svc, db, "manager", "secret-password")

	token, _, err := svc.GenerateJWT(manager)
	if err != nil {
		t.Fatalf("generate token failed: %v", err)
	}

	if _, err := svc.ParseJWT(token + "x"); err == nil {
		t.Fatalf("tampered token should fail")
	}
	if _, err := svc.ParseJWT(""); err == nil {
		t.Fatalf("empty token should fail")
	}
}
