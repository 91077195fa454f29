package services

import (
	"crypto/subtle"

	"go.uber.org/zap"

	"coffee-order-go/models"
	"coffee-order-go/utils"
)

// AuthService authenticates the single admin account.
type AuthService struct {
	admin  *models.AdminUser
	tokens *utils.TokenManager
	logger *zap.Logger
}

func NewAuthService(admin *models.AdminUser, tokens *utils.TokenManager, logger *zap.Logger) *AuthService {
	return &AuthService{
		admin:  admin,
		tokens: tokens,
		logger: logger.Named("auth_service"),
	}
}

// Login checks the credentials and returns a signed token.
func (s *AuthService) Login(username, password string) (string, error) {
	if subtle.ConstantTimeCompare([]byte(username), []byte(s.admin.Username)) != 1 {
		s.logger.Warn("Login failed: unknown user", zap.String("username", username))
		return "", ErrUnauthorized
	}
	if err := s.admin.CheckPassword(password); err != nil {
		s.logger.Warn("Login failed: bad password", zap.String("username", username))
		return "", ErrUnauthorized
	}

	token, err := s.tokens.GenerateToken(username)
	if err != nil {
		s.logger.Error("Failed to sign token", zap.Error(err))
		return "", err
	}
	return token, nil
}

// Authorize verifies a token and returns its claims.
func (s *AuthService) Authorize(token string) (*utils.Claims, error) {
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return nil, ErrForbidden
	}
	if claims.Username != s.admin.Username {
		return nil, ErrForbidden
	}
	return claims, nil
}
