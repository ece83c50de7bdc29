package production

import (
	"fmt"
	"log"
	"time"

	"cartonnerie-backend/internal/audit"
	"cartonnerie-backend/internal/auth"
	"cartonnerie-backend/internal/core"
	"cartonnerie-backend/internal/database"
	"cartonnerie-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type ConsumptionLineRequest struct {
	MaterialID    string  `json:"materialId"`
	AmountPerUnit float64 `json:"amountPerUnit"`
}

type RunProductionRequest struct {
	ProductID        string                   `json:"productId"`
	QuantityProduced float64                  `json:"quantityProduced"`
	WasteAmount      float64                  `json:"wasteAmount"`
	Consumption      []ConsumptionLineRequest `json:"consumption"`
}

type ProductionLogResponse struct {
	ID               string  `json:"id"`
	Date             string  `json:"date"`
	ProductID        string  `json:"productId"`
	QuantityProduced float64 `json:"quantityProduced"`
	WasteAmount      float64 `json:"wasteAmount"`
	OperatorID       string  `json:"operatorId"`
}

func logResponse(entry models.ProductionLog) ProductionLogResponse {
	return ProductionLogResponse{
		ID:               entry.ID,
		Date:             entry.Date.Format("2006-01-02"),
		ProductID:        entry.ProductID,
		QuantityProduced: entry.QuantityProduced,
		WasteAmount:      entry.WasteAmount,
		OperatorID:       entry.OperatorID,
	}
}

// POST /api/production
func RunProductionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RunProductionRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corps de requête invalide")
		}

		operatorID, operatorName, err := auth.OperatorFromContext(c)
		if err != nil {
			return err
		}

		req := Request{
			ProductID:        body.ProductID,
			QuantityProduced: body.QuantityProduced,
			WasteAmount:      body.WasteAmount,
		}
		for _, line := range body.Consumption {
			req.Consumption = append(req.Consumption, ConsumptionLine{
				MaterialID:    line.MaterialID,
				AmountPerUnit: line.AmountPerUnit,
			})
		}

		entry, err := Run(database.DB, req, operatorID)
		if err != nil {
			return core.HTTPError(err, "Cycle de production non enregistré")
		}

		if logErr := audit.WriteLog(audit.LogOptions{
			StaffID:     operatorID,
			StaffName:   operatorName,
			EntityType:  "production",
			EntityID:    entry.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Cycle de production: %.2f unités de %s", entry.QuantityProduced, entry.ProductID),
			Before:      nil,
			After:       logResponse(*entry),
		}); logErr != nil {
			// Le journal n'est pas critique, on trace seulement
			log.Printf("Audit log non écrit: %v", logErr)
		}

		return c.Status(fiber.StatusCreated).JSON(logResponse(*entry))
	}
}

// GET /api/production/logs?from=...&to=...&product_id=...
func ListProductionLogsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.ProductionLog{})

		if fromStr := c.Query("from"); fromStr != "" {
			from, err := time.Parse("2006-01-02", fromStr)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "from invalide (YYYY-MM-DD)")
			}
			dbq = dbq.Where("date >= ?", from)
		}
		if toStr := c.Query("to"); toStr != "" {
			to, err := time.Parse("2006-01-02", toStr)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "to invalide (YYYY-MM-DD)")
			}
			// Jour inclus, horodatages compris
			dbq = dbq.Where("date < ?", to.AddDate(0, 0, 1))
		}
		if pid := c.Query("product_id"); pid != "" {
			dbq = dbq.Where("product_id = ?", pid)
		}

		var rows []models.ProductionLog
		if err := dbq.Order("date desc, created_at desc").Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Journal de production indisponible")
		}

		res := make([]ProductionLogResponse, 0, len(rows))
		for _, r := range rows {
			res = append(res, logResponse(r))
		}
		return c.JSON(res)
	}
}
