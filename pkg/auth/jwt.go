package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenClaims is the identity asserted by a patient bearer token
type TokenClaims struct {
	PatientID uuid.UUID `json:"patient_id"`
	Email     string    `json:"email"`
	jwt.RegisteredClaims
}

type TokenService interface {
	GenerateToken(patientID uuid.UUID, email string) (string, error)
	ValidateToken(token string) (*TokenClaims, error)
}

type tokenService struct {
	secret      []byte
	expiryHours int
}

func NewTokenService(secret string, expiryHours int) TokenService {
	if expiryHours <= 0 {
		expiryHours = 24
	}
	return &tokenService{
		secret:      []byte(secret),
		expiryHours: expiryHours,
	}
}

func (s *tokenService) GenerateToken(patientID uuid.UUID, email string) (string, error) {
	now := time.Now()
	claims := TokenClaims{
		PatientID: patientID,
		Email:     email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   patientID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(s.expiryHours) * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (s *tokenService) ValidateToken(tokenStr string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &TokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
