package inventory

import (
	"fmt"
	"log"
	"strings"

	"cartonnerie-backend/internal/audit"
	"cartonnerie-backend/internal/auth"
	"cartonnerie-backend/internal/database"
	"cartonnerie-backend/internal/models"
	"cartonnerie-backend/internal/stock"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CreateMaterialRequest struct {
	NameAr      string   `json:"nameAr"`
	NameFr      string   `json:"nameFr"`
	Quantity    float64  `json:"quantity"`
	MaxQuantity float64  `json:"maxQuantity"`
	Unit        string   `json:"unit"`
	MinLevel    float64  `json:"minLevel"`
	Supplier    string   `json:"supplier"`
	Price       *float64 `json:"price"`
}

type UpdateMaterialRequest struct {
	NameAr      *string  `json:"nameAr"`
	NameFr      *string  `json:"nameFr"`
	Quantity    *float64 `json:"quantity"`
	MaxQuantity *float64 `json:"maxQuantity"`
	Unit        *string  `json:"unit"`
	MinLevel    *float64 `json:"minLevel"`
	Supplier    *string  `json:"supplier"`
	Price       *float64 `json:"price"`
}

// MaterialResponse: la vue plus le statut dérivé (jamais stocké).
type MaterialResponse struct {
	MaterialView
	Status  stock.Status `json:"status"`
	Percent float64      `json:"percent"`
}

func materialResponse(m models.RawMaterial) MaterialResponse {
	return MaterialResponse{
		MaterialView: MaterialToView(m),
		Status:       stock.Evaluate(m.Quantity, m.MinLevel),
		Percent:      stock.Percent(m.Quantity, m.MaxQuantity),
	}
}

// Invariant cible après toute mutation directe: 0 <= quantity <= maxQuantity.
// Violation rejetée, jamais corrigée en silence.
func checkMaterialBounds(quantity, maxQuantity, minLevel float64) error {
	if maxQuantity <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "maxQuantity doit être > 0")
	}
	if quantity < 0 {
		return fiber.NewError(fiber.StatusBadRequest, "quantity ne peut pas être négative")
	}
	if quantity > maxQuantity {
		return fiber.NewError(fiber.StatusBadRequest, "quantity ne peut pas dépasser maxQuantity")
	}
	if minLevel < 0 {
		return fiber.NewError(fiber.StatusBadRequest, "minLevel ne peut pas être négatif")
	}
	return nil
}

// GET /api/materials
func ListMaterialsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var rows []models.RawMaterial
		if err := database.DB.Order("name_fr asc").Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Matières premières indisponibles")
		}

		res := make([]MaterialResponse, 0, len(rows))
		for _, m := range rows {
			res = append(res, materialResponse(m))
		}
		return c.JSON(res)
	}
}

// POST /api/materials
func CreateMaterialHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateMaterialRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corps de requête invalide")
		}

		body.NameAr = strings.TrimSpace(body.NameAr)
		body.NameFr = strings.TrimSpace(body.NameFr)
		if body.NameAr == "" || body.NameFr == "" {
			return fiber.NewError(fiber.StatusBadRequest, "nameAr et nameFr obligatoires")
		}
		if !models.ValidMaterialUnit(body.Unit) {
			return fiber.NewError(fiber.StatusBadRequest, "unit invalide (kg, l, watt, pcs, roll, m)")
		}
		if err := checkMaterialBounds(body.Quantity, body.MaxQuantity, body.MinLevel); err != nil {
			return err
		}
		if body.Price != nil && *body.Price < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "price ne peut pas être négatif")
		}

		m := models.RawMaterial{
			ID:          uuid.NewString(),
			NameAr:      body.NameAr,
			NameFr:      body.NameFr,
			Quantity:    body.Quantity,
			MaxQuantity: body.MaxQuantity,
			Unit:        body.Unit,
			MinLevel:    body.MinLevel,
			Supplier:    body.Supplier,
			Price:       body.Price,
		}

		if err := database.DB.Create(&m).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Matière non enregistrée")
		}

		writeInventoryAudit(c, "material", m.ID, models.AuditActionCreate,
			fmt.Sprintf("Matière ajoutée: %s", m.NameFr), nil, MaterialToView(m))

		return c.Status(fiber.StatusCreated).JSON(materialResponse(m))
	}
}

// PUT /api/materials/:id
func UpdateMaterialHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var m models.RawMaterial
		if err := database.DB.First(&m, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Matière introuvable")
		}
		before := MaterialToView(m)

		var body UpdateMaterialRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corps de requête invalide")
		}

		if body.NameAr != nil {
			name := strings.TrimSpace(*body.NameAr)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "nameAr ne peut pas être vide")
			}
			m.NameAr = name
		}
		if body.NameFr != nil {
			name := strings.TrimSpace(*body.NameFr)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "nameFr ne peut pas être vide")
			}
			m.NameFr = name
		}
		if body.Unit != nil {
			if !models.ValidMaterialUnit(*body.Unit) {
				return fiber.NewError(fiber.StatusBadRequest, "unit invalide")
			}
			m.Unit = *body.Unit
		}
		if body.Quantity != nil {
			m.Quantity = *body.Quantity
		}
		if body.MaxQuantity != nil {
			m.MaxQuantity = *body.MaxQuantity
		}
		if body.MinLevel != nil {
			m.MinLevel = *body.MinLevel
		}
		if body.Supplier != nil {
			m.Supplier = *body.Supplier
		}
		if body.Price != nil {
			if *body.Price < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "price ne peut pas être négatif")
			}
			m.Price = body.Price
		}

		if err := checkMaterialBounds(m.Quantity, m.MaxQuantity, m.MinLevel); err != nil {
			return err
		}

		if err := database.DB.Save(&m).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Matière non mise à jour")
		}

		writeInventoryAudit(c, "material", m.ID, models.AuditActionUpdate,
			fmt.Sprintf("Matière modifiée: %s", m.NameFr), before, MaterialToView(m))

		return c.JSON(materialResponse(m))
	}
}

// DELETE /api/materials/:id
func DeleteMaterialHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var m models.RawMaterial
		if err := database.DB.First(&m, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Matière introuvable")
		}

		if err := database.DB.Delete(&models.RawMaterial{}, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Matière non supprimée")
		}

		writeInventoryAudit(c, "material", m.ID, models.AuditActionDelete,
			fmt.Sprintf("Matière supprimée: %s", m.NameFr), MaterialToView(m), nil)

		return c.SendStatus(fiber.StatusNoContent)
	}
}

func writeInventoryAudit(c *fiber.Ctx, entityType, entityID string, action models.AuditAction, desc string, before, after any) {
	operatorID, operatorName, err := auth.OperatorFromContext(c)
	if err != nil {
		return
	}
	if logErr := audit.WriteLog(audit.LogOptions{
		StaffID:     operatorID,
		StaffName:   operatorName,
		EntityType:  entityType,
		EntityID:    entityID,
		Action:      action,
		Description: desc,
		Before:      before,
		After:       after,
	}); logErr != nil {
		log.Printf("Audit log non écrit: %v", logErr)
	}
}
