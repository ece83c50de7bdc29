package auth

import (
	"cartonnerie-backend/internal/config"
	"cartonnerie-backend/internal/database"
	"cartonnerie-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	StaffID  string `json:"staffId"`
	Password string `json:"password"`
}

type LoginStaffResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	RoleAr string `json:"roleAr"`
	RoleFr string `json:"roleFr"`
}

// GET /api/auth/staff (public)
// Liste minimale pour l'écran de connexion: jamais de salaire ni de hash.
func ListLoginStaffHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var rows []models.Staff
		if err := database.DB.Order("name asc").Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Liste du personnel indisponible")
		}

		res := make([]LoginStaffResponse, 0, len(rows))
		for _, s := range rows {
			res = append(res, LoginStaffResponse{
				ID:     s.ID,
				Name:   s.Name,
				RoleAr: s.RoleAr,
				RoleFr: s.RoleFr,
			})
		}
		return c.JSON(res)
	}
}

// POST /api/auth/login
func LoginHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corps de requête invalide")
		}

		if body.StaffID == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "staffId et password obligatoires")
		}

		var staff models.Staff
		if err := database.DB.First(&staff, "id = ?", body.StaffID).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Identifiant ou mot de passe incorrect")
		}

		if staff.PasswordHash == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Cet employé n'a pas de compte de connexion")
		}

		if err := bcrypt.CompareHashAndPassword([]byte(staff.PasswordHash), []byte(body.Password)); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Identifiant ou mot de passe incorrect")
		}

		token, err := GenerateToken(cfg.JWTSecret, &staff)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Création du token impossible")
		}

		return c.JSON(fiber.Map{
			"token": token,
			"user": fiber.Map{
				"id":     staff.ID,
				"name":   staff.Name,
				"roleAr": staff.RoleAr,
				"roleFr": staff.RoleFr,
			},
		})
	}
}

// POST /api/auth/logout
// Les tokens sont sans état: la déconnexion se réduit à jeter le token
// côté client, l'appel sert de point de démontage explicite.
func LogoutHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// GET /api/auth/me
// Restauration de session: le client rejoue son token au démarrage.
func MeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		staffID, _, err := OperatorFromContext(c)
		if err != nil {
			return err
		}

		var staff models.Staff
		if err := database.DB.First(&staff, "id = ?", staffID).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Session expirée, reconnecte-toi")
		}

		return c.JSON(fiber.Map{
			"id":     staff.ID,
			"name":   staff.Name,
			"roleAr": staff.RoleAr,
			"roleFr": staff.RoleFr,
		})
	}
}
