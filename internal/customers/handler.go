package customers

import (
	"fmt"
	"log"
	"strings"

	"cartonnerie-backend/internal/audit"
	"cartonnerie-backend/internal/auth"
	"cartonnerie-backend/internal/database"
	"cartonnerie-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CreateCustomerRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

type UpdateCustomerRequest struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email"`
	Address *string `json:"address"`
}

type CustomerResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

func customerResponse(cu models.Customer) CustomerResponse {
	return CustomerResponse{
		ID:      cu.ID,
		Name:    cu.Name,
		Phone:   cu.Phone,
		Email:   cu.Email,
		Address: cu.Address,
	}
}

// GET /api/customers
func ListCustomersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var rows []models.Customer
		if err := database.DB.Order("name asc").Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Clients indisponibles")
		}

		res := make([]CustomerResponse, 0, len(rows))
		for _, cu := range rows {
			res = append(res, customerResponse(cu))
		}
		return c.JSON(res)
	}
}

// POST /api/customers
func CreateCustomerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateCustomerRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corps de requête invalide")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name obligatoire")
		}

		cu := models.Customer{
			ID:      uuid.NewString(),
			Name:    body.Name,
			Phone:   body.Phone,
			Email:   strings.TrimSpace(strings.ToLower(body.Email)),
			Address: body.Address,
		}

		if err := database.DB.Create(&cu).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Client non enregistré")
		}

		writeAudit(c, cu.ID, models.AuditActionCreate, fmt.Sprintf("Client ajouté: %s", cu.Name), nil, customerResponse(cu))

		return c.Status(fiber.StatusCreated).JSON(customerResponse(cu))
	}
}

// PUT /api/customers/:id
func UpdateCustomerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var cu models.Customer
		if err := database.DB.First(&cu, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Client introuvable")
		}
		before := customerResponse(cu)

		var body UpdateCustomerRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corps de requête invalide")
		}

		if body.Name != nil {
			name := strings.TrimSpace(*body.Name)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "name ne peut pas être vide")
			}
			cu.Name = name
		}
		if body.Phone != nil {
			cu.Phone = *body.Phone
		}
		if body.Email != nil {
			cu.Email = strings.TrimSpace(strings.ToLower(*body.Email))
		}
		if body.Address != nil {
			cu.Address = *body.Address
		}

		if err := database.DB.Save(&cu).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Client non mis à jour")
		}

		// Le nom dénormalisé des commandes ouvertes suit le client
		if body.Name != nil {
			database.DB.Model(&models.Order{}).
				Where("customer_id = ? AND status IN ?", cu.ID,
					[]models.OrderStatus{models.OrderStatusPending, models.OrderStatusProcessing}).
				Update("customer_name", cu.Name)
		}

		writeAudit(c, cu.ID, models.AuditActionUpdate, fmt.Sprintf("Client modifié: %s", cu.Name), before, customerResponse(cu))

		return c.JSON(customerResponse(cu))
	}
}

// DELETE /api/customers/:id
func DeleteCustomerHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var cu models.Customer
		if err := database.DB.First(&cu, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Client introuvable")
		}

		var orderCount int64
		database.DB.Model(&models.Order{}).Where("customer_id = ?", id).Count(&orderCount)
		if orderCount > 0 {
			return fiber.NewError(fiber.StatusConflict, "Client avec des commandes, suppression interdite")
		}

		if err := database.DB.Delete(&models.Customer{}, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Client non supprimé")
		}

		writeAudit(c, cu.ID, models.AuditActionDelete, fmt.Sprintf("Client supprimé: %s", cu.Name), customerResponse(cu), nil)

		return c.SendStatus(fiber.StatusNoContent)
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
		EntityType:  "customer",
		EntityID:    entityID,
		Action:      action,
		Description: desc,
		Before:      before,
		After:       after,
	}); logErr != nil {
		log.Printf("Audit log non écrit: %v", logErr)
	}
}
