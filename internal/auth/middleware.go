package auth

import (
	"fmt"
	"strings"

	"cartonnerie-backend/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	CtxStaffIDKey   = "staff_id"
	CtxStaffNameKey = "staff_name"
)

func JWTMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "En-tête Authorization manquant")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return fiber.NewError(fiber.StatusUnauthorized, "Le format doit être 'Bearer <token>'")
		}

		tokenStr := parts[1]

		token, err := jwt.ParseWithClaims(tokenStr, &JWTCustomClaims{}, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("méthode de signature invalide")
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "Token invalide ou expiré")
		}

		claims, ok := token.Claims.(*JWTCustomClaims)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Token illisible")
		}

		c.Locals(CtxStaffIDKey, claims.StaffID)
		c.Locals(CtxStaffNameKey, claims.Name)

		return c.Next()
	}
}

// OperatorFromContext: identité de l'opérateur connecté, posée par le middleware.
func OperatorFromContext(c *fiber.Ctx) (string, string, error) {
	id, ok := c.Locals(CtxStaffIDKey).(string)
	if !ok || id == "" {
		return "", "", fiber.NewError(fiber.StatusForbidden, "Opérateur inconnu")
	}
	name, _ := c.Locals(CtxStaffNameKey).(string)
	return id, name, nil
}
