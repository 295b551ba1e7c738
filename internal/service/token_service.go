package service

import (
	"errors"
	"fmt"

	"github.com/dtroode/premium-server/internal/logger"
	"github.com/dtroode/premium-server/internal/model"
)

// TokenService issues and validates session tokens.
type TokenService struct {
	manager model.TokenManager
	logger  *logger.Logger
}

func NewTokenService(manager model.TokenManager, logger *logger.Logger) *TokenService {
	return &TokenService{manager: manager, logger: logger}
}

func (s *TokenService) Issue(account model.Account) (string, error) {
	token, err := s.manager.GenerateAccessToken(account)
	if err != nil {
		s.logger.Error("Token service: failed to issue token",
			"account_id", account.ID,
			"error", err.Error())
		return "", fmt.Errorf("failed to issue token: %w", err)
	}
	return token, nil
}

// Validate returns the claims of a well-formed, unexpired token. Every
// failure is reported as model.ErrInvalidToken.
func (s *TokenService) Validate(token string) (model.SessionClaims, error) {
	if token == "" {
		return model.SessionClaims{}, model.ErrUnauthenticated
	}

	claims, err := s.manager.ParseAccessToken(token)
	if err != nil {
		s.logger.Debug("Token service: rejected token", "error", err.Error())
		if errors.Is(err, model.ErrInvalidToken) {
			return model.SessionClaims{}, err
		}
		return model.SessionClaims{}, fmt.Errorf("%w: %v", model.ErrInvalidToken, err)
	}

	return claims, nil
}
