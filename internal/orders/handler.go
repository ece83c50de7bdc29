package orders

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

type OrderItemRequest struct {
	ProductID   string   `json:"productId"`
	ProductName string   `json:"productName"`
	Quantity    float64  `json:"quantity"`
	UnitPrice   float64  `json:"unitPrice"`
	Total       *float64 `json:"total"`
}

type CreateOrderRequest struct {
	CustomerID  string             `json:"customerId"`
	Date        string             `json:"date"` // "2025-12-09"
	Items       []OrderItemRequest `json:"items"`
	TotalAmount *float64           `json:"totalAmount"`
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status"`
}

type OrderItemResponse struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Total       float64 `json:"total"`
}

type OrderResponse struct {
	ID           string              `json:"id"`
	CustomerID   string              `json:"customerId"`
	CustomerName string              `json:"customerName"`
	Date         string              `json:"date"`
	Status       models.OrderStatus  `json:"status"`
	TotalAmount  float64             `json:"totalAmount"`
	Items        []OrderItemResponse `json:"items"`
}

func orderResponse(o models.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemResponse{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Total:       it.Total,
		})
	}
	return OrderResponse{
		ID:           o.ID,
		CustomerID:   o.CustomerID,
		CustomerName: o.CustomerName,
		Date:         o.Date.Format("2006-01-02"),
		Status:       o.Status,
		TotalAmount:  o.TotalAmount,
		Items:        items,
	}
}

// POST /api/orders
func CreateOrderHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateOrderRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corps de requête invalide")
		}

		if body.CustomerID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "customerId obligatoire")
		}

		var date time.Time
		if body.Date != "" {
			var err error
			date, err = time.Parse("2006-01-02", body.Date)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Le format de date doit être 'YYYY-MM-DD'")
			}
		}

		in := CreateInput{
			CustomerID:    body.CustomerID,
			Date:          date,
			DeclaredTotal: body.TotalAmount,
		}
		for _, it := range body.Items {
			in.Items = append(in.Items, ItemInput{
				ProductID:   it.ProductID,
				ProductName: it.ProductName,
				Quantity:    it.Quantity,
				UnitPrice:   it.UnitPrice,
				Total:       it.Total,
			})
		}

		order, err := Create(database.DB, in)
		if err != nil {
			return core.HTTPError(err, "Commande non enregistrée")
		}

		operatorID, operatorName, opErr := auth.OperatorFromContext(c)
		if opErr == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				StaffID:     operatorID,
				StaffName:   operatorName,
				EntityType:  "order",
				EntityID:    order.ID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("Commande créée: %s - %.2f DA", order.CustomerName, order.TotalAmount),
				Before:      nil,
				After:       orderResponse(*order),
			}); logErr != nil {
				log.Printf("Audit log non écrit: %v", logErr)
			}
		}

		return c.Status(fiber.StatusCreated).JSON(orderResponse(*order))
	}
}

// GET /api/orders?status=...&customer_id=...&from=...&to=...
func ListOrdersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Order{}).Preload("Items")

		if status := c.Query("status"); status != "" {
			if !models.ValidOrderStatus(models.OrderStatus(status)) {
				return fiber.NewError(fiber.StatusBadRequest, "status invalide")
			}
			dbq = dbq.Where("status = ?", status)
		}
		if cid := c.Query("customer_id"); cid != "" {
			dbq = dbq.Where("customer_id = ?", cid)
		}
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

		var rows []models.Order
		if err := dbq.Order("date desc, id asc").Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Commandes indisponibles")
		}

		res := make([]OrderResponse, 0, len(rows))
		for _, o := range rows {
			res = append(res, orderResponse(o))
		}
		return c.JSON(res)
	}
}

// PUT /api/orders/:id/status
func UpdateOrderStatusHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var body UpdateOrderStatusRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corps de requête invalide")
		}

		var before models.Order
		if err := database.DB.Preload("Items").First(&before, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Commande introuvable")
		}

		order, err := Transition(database.DB, id, body.Status)
		if err != nil {
			return core.HTTPError(err, "Changement de statut impossible")
		}

		operatorID, operatorName, opErr := auth.OperatorFromContext(c)
		if opErr == nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				StaffID:     operatorID,
				StaffName:   operatorName,
				EntityType:  "order",
				EntityID:    order.ID,
				Action:      models.AuditActionUpdate,
				Description: fmt.Sprintf("Commande %s: %s -> %s", order.ID, before.Status, order.Status),
				Before:      orderResponse(before),
				After:       orderResponse(*order),
			}); logErr != nil {
				log.Printf("Audit log non écrit: %v", logErr)
			}
		}

		return c.JSON(orderResponse(*order))
	}
}
