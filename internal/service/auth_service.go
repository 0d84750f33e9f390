package service

import (
	"errors"
	"time"

	"github.com/destore-next/internal/config"
	"github.com/destore-next/internal/models"
	"github.com/destore-next/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthService 店长认证服务
type AuthService struct {
	cfg         *config.Config
	managerRepo repository.ManagerRepository
}

// NewAuthService 创建认证服务实例
func NewAuthService(cfg *config.Config, managerRepo repository.ManagerRepository) *AuthService {
	return &AuthService{
		cfg:         cfg,
		managerRepo: managerRepo,
	}
}

// HashPassword 使用 bcrypt 加密密码
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword 验证密码
func (s *AuthService) VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// JWTClaims JWT 声明
type JWTClaims struct {
	ManagerID uint   `json:"manager_id"`
	Username  string `json:"username"`
	jwt.RegisteredClaims
}

// GenerateJWT 生成 JWT Token
func (s *AuthService) GenerateJWT(manager *models.Manager) (string, time.Time, error) {
	expiresAt := time.Now().Add(time.Duration(s.cfg.JWT.ExpireHours) * time.Hour)

	claims := JWTClaims{
		ManagerID: manager.ID,
		Username:  manager.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.JWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiresAt, nil
}

// ParseJWT 解析 JWT Token
func (s *AuthService) ParseJWT(tokenString string) (*JWTClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWT.SecretKey), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("无效的 token")
}

// Login 店长登录
func (s *AuthService) Login(username, password string) (*models.Manager, string, time.Time, error) {
	manager, err := s.managerRepo.GetByUsername(username)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if manager == nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	if err := s.VerifyPassword(manager.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	token, expiresAt, err := s.GenerateJWT(manager)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	now := time.Now()
	manager.LastLoginAt = &now
	if err := s.managerRepo.Update(manager); err != nil {
		return nil, "", time.Time{}, err
	}

	return manager, token, expiresAt, nil
}
