package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/dtroode/premium-server/internal/model"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// UserClaims is the identity embedded in a session token.
type UserClaims struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
}

// Claims represents JWT claims with token type and user identity.
type Claims struct {
	jwt.RegisteredClaims
	User      UserClaims `json:"user"`
	TokenType string     `json:"typ"`
}

// JWT implements TokenManager backed by symmetric HMAC.
type JWT struct {
	secretKey []byte
	ttl       time.Duration
	now       func() time.Time
}

var _ model.TokenManager = (*JWT)(nil)

const typeAccess = "access"

// NewJWT creates a new JWT token manager with the provided secret key.
// An empty key is rejected.
func NewJWT(secretKey string) (*JWT, error) {
	if secretKey == "" {
		return nil, errors.New("jwt secret key is empty")
	}
	return &JWT{secretKey: []byte(secretKey), ttl: model.SessionTTL, now: time.Now}, nil
}

// GenerateAccessToken creates a session token for account.
func (j *JWT) GenerateAccessToken(account model.Account) (string, error) {
	now := j.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
		},
		User: UserClaims{
			ID:    account.ID,
			Email: account.Email,
			Name:  account.Name,
		},
		TokenType: typeAccess,
	})

	tokenString, err := token.SignedString(j.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return tokenString, nil
}

// ParseAccessToken validates a session token and extracts its claims.
// Every failure is reported as model.ErrInvalidToken.
func (j *JWT) ParseAccessToken(tokenString string) (model.SessionClaims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return j.secretKey, nil
	}, jwt.WithTimeFunc(j.now), jwt.WithExpirationRequired())
	if err != nil {
		return model.SessionClaims{}, fmt.Errorf("%w: %w", model.ErrInvalidToken, err)
	}
	if !token.Valid {
		return model.SessionClaims{}, model.ErrInvalidToken
	}
	if claims.TokenType != typeAccess {
		return model.SessionClaims{}, fmt.Errorf("%w: token type mismatch: %s", model.ErrInvalidToken, claims.TokenType)
	}
	if claims.User.ID == uuid.Nil || claims.Subject != claims.User.ID.String() {
		return model.SessionClaims{}, fmt.Errorf("%w: subject mismatch", model.ErrInvalidToken)
	}

	return model.SessionClaims{
		AccountID: claims.User.ID,
		Email:     claims.User.Email,
		Name:      claims.User.Name,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
