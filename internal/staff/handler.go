package staff

import (
	"fmt"
	"log"
	"strings"
	"time"

	"cartonnerie-backend/internal/audit"
	"cartonnerie-backend/internal/auth"
	"cartonnerie-backend/internal/database"
	"cartonnerie-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type CreateStaffRequest struct {
	Name     string  `json:"name"`
	RoleAr   string  `json:"roleAr"`
	RoleFr   string  `json:"roleFr"`
	Salary   float64 `json:"salary"`
	Password string  `json:"password"` // optionnel: vide = pas de compte
}

type UpdateStaffRequest struct {
	Name     *string  `json:"name"`
	RoleAr   *string  `json:"roleAr"`
	RoleFr   *string  `json:"roleFr"`
	Salary   *float64 `json:"salary"`
	Password *string  `json:"password"`
}

// StaffResponse: jamais de hash de mot de passe dans la vue.
type StaffResponse struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	RoleAr          string  `json:"roleAr"`
	RoleFr          string  `json:"roleFr"`
	Salary          float64 `json:"salary"`
	LastPaymentDate *string `json:"lastPaymentDate"`
	AdvanceTaken    float64 `json:"advanceTaken"`
	HasAccount      bool    `json:"hasAccount"`
}

func staffResponse(s models.Staff) StaffResponse {
	var lastPayment *string
	if s.LastPaymentDate != nil {
		d := s.LastPaymentDate.Format("2006-01-02")
		lastPayment = &d
	}
	return StaffResponse{
		ID:              s.ID,
		Name:            s.Name,
		RoleAr:          s.RoleAr,
		RoleFr:          s.RoleFr,
		Salary:          s.Salary,
		LastPaymentDate: lastPayment,
		AdvanceTaken:    s.AdvanceTaken,
		HasAccount:      s.PasswordHash != "",
	}
}

// GET /api/staff
func ListStaffHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var rows []models.Staff
		if err := database.DB.Order("name asc").Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Personnel indisponible")
		}

		res := make([]StaffResponse, 0, len(rows))
		for _, s := range rows {
			res = append(res, staffResponse(s))
		}
		return c.JSON(res)
	}
}

// POST /api/staff
func CreateStaffHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateStaffRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corps de requête invalide")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" || body.RoleAr == "" || body.RoleFr == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name, roleAr et roleFr obligatoires")
		}
		if body.Salary < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "salary ne peut pas être négatif")
		}

		s := models.Staff{
			ID:     uuid.NewString(),
			Name:   body.Name,
			RoleAr: body.RoleAr,
			RoleFr: body.RoleFr,
			Salary: body.Salary,
		}

		if body.Password != "" {
			hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Hachage du mot de passe impossible")
			}
			s.PasswordHash = string(hash)
		}

		if err := database.DB.Create(&s).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Employé non enregistré")
		}

		writeAudit(c, s.ID, models.AuditActionCreate, fmt.Sprintf("Employé ajouté: %s", s.Name), nil, staffResponse(s))

		return c.Status(fiber.StatusCreated).JSON(staffResponse(s))
	}
}

// PUT /api/staff/:id
func UpdateStaffHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var s models.Staff
		if err := database.DB.First(&s, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Employé introuvable")
		}
		before := staffResponse(s)

		var body UpdateStaffRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corps de requête invalide")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "name ne peut pas être vide")
			}
			s.Name = name
		}
		if body.RoleAr != nil {
			s.RoleAr = *body.RoleAr
		}
		if body.RoleFr != nil {
			s.RoleFr = *body.RoleFr
		}
		if body.Salary != nil {
			if *body.Salary < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "salary ne peut pas être négatif")
			}
			s.Salary = *body.Salary
		}
		if body.Password != nil && *body.Password != "" {
			hash, err := bcrypt.GenerateFromPassword([]byte(*body.Password), bcrypt.DefaultCost)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Hachage du mot de passe impossible")
			}
			s.PasswordHash = string(hash)
		}

		if err := database.DB.Save(&s).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Employé non mis à jour")
		}

		writeAudit(c, s.ID, models.AuditActionUpdate, fmt.Sprintf("Employé modifié: %s", s.Name), before, staffResponse(s))

		return c.JSON(staffResponse(s))
	}
}

// DELETE /api/staff/:id
func DeleteStaffHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var s models.Staff
		if err := database.DB.First(&s, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Employé introuvable")
		}

		if err := database.DB.Delete(&models.Staff{}, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Employé non supprimé")
		}

		writeAudit(c, s.ID, models.AuditActionDelete, fmt.Sprintf("Employé supprimé: %s", s.Name), staffResponse(s), nil)

		return c.SendStatus(fiber.StatusNoContent)
	}
}

type AdvanceRequest struct {
	Amount float64 `json:"amount"`
}

// POST /api/staff/:id/advance
// Avance sur salaire: augmente advanceTaken, l'argent sort en catégorie Salary.
func TakeAdvanceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var body AdvanceRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corps de requête invalide")
		}
		if body.Amount <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "amount doit être > 0")
		}

		var s models.Staff
		if err := database.DB.First(&s, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Employé introuvable")
		}

		// L'avance cumulée ne doit pas dépasser le salaire: le net à payer
		// resterait négatif
		newAdvance := decimal.NewFromFloat(s.AdvanceTaken).Add(decimal.NewFromFloat(body.Amount))
		if newAdvance.GreaterThan(decimal.NewFromFloat(s.Salary)) {
			return fiber.NewError(fiber.StatusBadRequest, "L'avance cumulée dépasserait le salaire")
		}
		before := staffResponse(s)

		err := database.DB.Transaction(func(tx *gorm.DB) error {
			s.AdvanceTaken = newAdvance.InexactFloat64()
			if err := tx.Save(&s).Error; err != nil {
				return err
			}

			exp := models.Expense{
				ID:          uuid.NewString(),
				Type:        models.ExpenseTypeExpense,
				Category:    models.CategorySalary,
				Description: fmt.Sprintf("Avance sur salaire: %s", s.Name),
				Amount:      body.Amount,
				Date:        time.Now(),
			}
			return tx.Create(&exp).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Avance non enregistrée")
		}

		writeAudit(c, s.ID, models.AuditActionUpdate,
			fmt.Sprintf("Avance de %.2f DA pour %s", body.Amount, s.Name), before, staffResponse(s))

		return c.JSON(staffResponse(s))
	}
}

// POST /api/staff/:id/pay-salary
// Paie le net (salaire - avances), trace l'écriture Salary, remet l'avance à
// zéro et date le paiement.
func PaySalaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var s models.Staff
		if err := database.DB.First(&s, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Employé introuvable")
		}
		before := staffResponse(s)

		net := decimal.NewFromFloat(s.Salary).Sub(decimal.NewFromFloat(s.AdvanceTaken))
		if net.IsNegative() {
			return fiber.NewError(fiber.StatusConflict, "Avance supérieure au salaire, régularise d'abord")
		}

		now := time.Now()
		err := database.DB.Transaction(func(tx *gorm.DB) error {
			s.LastPaymentDate = &now
			s.AdvanceTaken = 0
			if err := tx.Save(&s).Error; err != nil {
				return err
			}

			if net.IsZero() {
				// Tout le salaire était déjà avancé, rien à sortir en caisse
				return nil
			}

			exp := models.Expense{
				ID:          uuid.NewString(),
				Type:        models.ExpenseTypeExpense,
				Category:    models.CategorySalary,
				Description: fmt.Sprintf("Salaire: %s", s.Name),
				Amount:      net.InexactFloat64(),
				Date:        now,
			}
			return tx.Create(&exp).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Paiement non enregistré")
		}

		writeAudit(c, s.ID, models.AuditActionUpdate,
			fmt.Sprintf("Salaire payé: %s - %.2f DA net", s.Name, net.InexactFloat64()), before, staffResponse(s))

		return c.JSON(staffResponse(s))
	}
}

func writeAudit(c *fiber.Ctx, entityID string, action models.AuditAction, desc string, before, after any) {
	operatorID, operatorName, err := auth.OperatorFromContext(c)
	if err != nil {
		return
	}
	if logErr := audit.WriteLog(audit.LogOptions{
		StaffID:     operatorID,
		StaffName:   operatorName,
		EntityType:  "staff",
		EntityID:    entityID,
		Action:      action,
		Description: desc,
		Before:      before,
		After:       after,
	}); logErr != nil {
		log.Printf("Audit log non écrit: %v", logErr)
	}
}
