package service

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Ha-Xuan-Hau/FAPCL-sub000/internal/models"
	appErrors "github.com/Ha-Xuan-Hau/FAPCL-sub000/pkg/errors"
)

// TokenService validates access tokens issued by the host identity provider.
// Issuance lives outside this service.
type TokenService struct {
	secret []byte
}

// NewTokenService constructs the validator with the shared HS256 secret.
func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret)}
}

// ValidateToken parses and validates an access token returning the claims.
func (s *TokenService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}

	return claims, nil
}
