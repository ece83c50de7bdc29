package auth

import (
	"time"

	"cartonnerie-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

type JWTCustomClaims struct {
	StaffID string `json:"staff_id"`
	Name    string `json:"name"`
	jwt.RegisteredClaims
}

func GenerateToken(secret string, staff *models.Staff) (string, error) {
	claims := &JWTCustomClaims{
		StaffID: staff.ID,
		Name:    staff.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)), // 1 jour
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
