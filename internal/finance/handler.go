package finance

import (
	"fmt"
	"log"
	"time"

	"cartonnerie-backend/internal/audit"
	"cartonnerie-backend/internal/auth"
	"cartonnerie-backend/internal/database"
	"cartonnerie-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CreateExpenseRequest struct {
	Type        models.ExpenseType `json:"type"`
	Category    string             `json:"category"`
	Description string             `json:"description"`
	Amount      float64            `json:"amount"`
	Date        string             `json:"date"` // "2025-12-09"
	IsRecurring bool               `json:"isRecurring"`
}

type ExpenseResponse struct {
	ID          string             `json:"id"`
	Type        models.ExpenseType `json:"type"`
	Category    string             `json:"category"`
	Description string             `json:"description"`
	Amount      float64            `json:"amount"`
	Date        string             `json:"date"`
	IsRecurring bool               `json:"isRecurring"`
}

func expenseResponse(e models.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:          e.ID,
		Type:        e.Type,
		Category:    e.Category,
		Description: e.Description,
		Amount:      e.Amount,
		Date:        e.Date.Format("2006-01-02"),
		IsRecurring: e.IsRecurring,
	}
}

// POST /api/expenses
func CreateExpenseHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateExpenseRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corps de requête invalide")
		}

		if body.Type != models.ExpenseTypeIncome && body.Type != models.ExpenseTypeExpense {
			return fiber.NewError(fiber.StatusBadRequest, "type doit être 'income' ou 'expense'")
		}
		// Catégories inconnues rejetées ici, jamais à l'agrégation
		if !models.ValidExpenseCategory(body.Category) {
			return fiber.NewError(fiber.StatusBadRequest, "category invalide")
		}
		if body.Amount <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "amount doit être > 0")
		}

		d, err := time.Parse("2006-01-02", body.Date)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Le format de date doit être 'YYYY-MM-DD'")
		}

		exp := models.Expense{
			ID:          uuid.NewString(),
			Type:        body.Type,
			Category:    body.Category,
			Description: body.Description,
			Amount:      body.Amount,
			Date:        d,
			IsRecurring: body.IsRecurring,
		}

		if err := database.DB.Create(&exp).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Écriture non enregistrée")
		}

		operatorID, operatorName, opErr := auth.OperatorFromContext(c)
		if opErr == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				StaffID:     operatorID,
				StaffName:   operatorName,
				EntityType:  "expense",
				EntityID:    exp.ID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("Écriture ajoutée: %s - %.2f DA", exp.Category, exp.Amount),
				Before:      nil,
				After:       expenseResponse(exp),
			}); logErr != nil {
				log.Printf("Audit log non écrit: %v", logErr)
			}
		}

		return c.Status(fiber.StatusCreated).JSON(expenseResponse(exp))
	}
}

// GET /api/expenses?from=...&to=...&type=...&category=...
func ListExpensesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Expense{})

		if fromStr := c.Query("from"); fromStr != "" {
			from, err := time.Parse("2006-01-02", fromStr)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "from invalide")
			}
			dbq = dbq.Where("date >= ?", from)
		}
		if toStr := c.Query("to"); toStr != "" {
			to, err := time.Parse("2006-01-02", toStr)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "to invalide")
			}
			// Jour inclus, horodatages compris
			dbq = dbq.Where("date < ?", to.AddDate(0, 0, 1))
		}
		if typ := c.Query("type"); typ != "" {
			if typ != string(models.ExpenseTypeIncome) && typ != string(models.ExpenseTypeExpense) {
				return fiber.NewError(fiber.StatusBadRequest, "type invalide")
			}
			dbq = dbq.Where("type = ?", typ)
		}
		if cat := c.Query("category"); cat != "" {
			if !models.ValidExpenseCategory(cat) {
				return fiber.NewError(fiber.StatusBadRequest, "category invalide")
			}
			dbq = dbq.Where("category = ?", cat)
		}

		var rows []models.Expense
		if err := dbq.Order("date desc, id asc").Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Écritures indisponibles")
		}

		res := make([]ExpenseResponse, 0, len(rows))
		for _, r := range rows {
			res = append(res, expenseResponse(r))
		}
		return c.JSON(res)
	}
}

type SummaryResponse struct {
	From string `json:"from"`
	To   string `json:"to"`
	Summary
}

// parseWindow: fenêtre [from, to[ depuis la query, mois courant par défaut.
// Le paramètre to désigne le dernier jour inclus; la borne retournée est le
// lendemain à minuit, pour que les horodatages du dernier jour (commandes,
// salaires saisis en cours de journée) restent dans la fenêtre.
func parseWindow(c *fiber.Ctx) (time.Time, time.Time, error) {
	fromStr := c.Query("from")
	toStr := c.Query("to")

	if fromStr == "" && toStr == "" {
		now := time.Now()
		from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return from, from.AddDate(0, 1, 0), nil
	}
	if fromStr == "" || toStr == "" {
		return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "from et to vont ensemble (YYYY-MM-DD)")
	}

	from, err := time.Parse("2006-01-02", fromStr)
	if err != nil {
		return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "from invalide")
	}
	to, err := time.Parse("2006-01-02", toStr)
	if err != nil {
		return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "to invalide")
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "to est avant from")
	}
	return from, to.AddDate(0, 0, 1), nil
}

// GET /api/finance/summary?from=...&to=...
func SummaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		from, to, err := parseWindow(c)
		if err != nil {
			return err
		}

		summary, err := loadSummary(from, to)
		if err != nil {
			return err
		}

		return c.JSON(SummaryResponse{
			From:    from.Format("2006-01-02"),
			To:      to.AddDate(0, 0, -1).Format("2006-01-02"),
			Summary: summary,
		})
	}
}

func loadSummary(from, to time.Time) (Summary, error) {
	// Les récurrentes d'avant la fenêtre comptent aussi: pas de filtre de
	// date sur elles côté SQL
	var expenses []models.Expense
	if err := database.DB.
		Where("(date >= ? AND date < ?) OR (is_recurring = ? AND date < ?)", from, to, true, to).
		Find(&expenses).Error; err != nil {
		return Summary{}, fiber.NewError(fiber.StatusInternalServerError, "Écritures indisponibles")
	}

	var orders []models.Order
	if err := database.DB.
		Where("status = ? AND date >= ? AND date < ?", models.OrderStatusCompleted, from, to).
		Find(&orders).Error; err != nil {
		return Summary{}, fiber.NewError(fiber.StatusInternalServerError, "Commandes indisponibles")
	}

	return Summarize(expenses, orders, from, to), nil
}
