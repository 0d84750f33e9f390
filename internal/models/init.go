package models

import (
	"github.com/destore-next/internal/logger"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// InitDefaultManager 初始化默认店长账号
// 已存在任一店长账号时不做任何事
func InitDefaultManager(db *gorm.DB, username, password string) error {
	var count int64
	if err := db.Model(&Manager{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	if username == "" {
		username = "manager"
	}
	if password == "" {
		password = "manager123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	manager := Manager{
		Username:     username,
		PasswordHash: string(hash),
	}
	if err := db.Create(&manager).Error; err != nil {
		return err
	}

	if password == "manager123" {
		logger.Warnw("default_manager_created_with_default_password", "username", username, "password", password)
		logger.Warnw("default_manager_password_change_required", "username", username)
	} else {
		logger.Warnw("default_manager_created", "username", username, "password_hidden", true)
	}

	return nil
}
