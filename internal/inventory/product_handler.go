package inventory

import (
	"fmt"
	"strings"

	"cartonnerie-backend/internal/database"
	"cartonnerie-backend/internal/models"
	"cartonnerie-backend/internal/stock"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CreateProductRequest struct {
	NameAr      string  `json:"nameAr"`
	NameFr      string  `json:"nameFr"`
	Quantity    float64 `json:"quantity"`
	MaxQuantity float64 `json:"maxQuantity"`
	Unit        string  `json:"unit"`
	Price       float64 `json:"price"`
}

type UpdateProductRequest struct {
	NameAr      *string  `json:"nameAr"`
	NameFr      *string  `json:"nameFr"`
	Quantity    *float64 `json:"quantity"`
	MaxQuantity *float64 `json:"maxQuantity"`
	Unit        *string  `json:"unit"`
	Price       *float64 `json:"price"`
}

type ProductResponse struct {
	ProductView
	Status  stock.Status `json:"status"`
	Percent float64      `json:"percent"`
}

func productResponse(p models.Product) ProductResponse {
	// Pas de minLevel sur les produits: seuil bas à 20% de la capacité,
	// critique à la moitié de ce seuil.
	return ProductResponse{
		ProductView: ProductToView(p),
		Status:      stock.Evaluate(p.Quantity, p.MaxQuantity*0.2),
		Percent:     stock.Percent(p.Quantity, p.MaxQuantity),
	}
}

// GET /api/products
func ListProductsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var rows []models.Product
		if err := database.DB.Order("name_fr asc").Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Produits indisponibles")
		}

		res := make([]ProductResponse, 0, len(rows))
		for _, p := range rows {
			res = append(res, productResponse(p))
		}
		return c.JSON(res)
	}
}

// POST /api/products
func CreateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corps de requête invalide")
		}

		body.NameAr = strings.TrimSpace(body.NameAr)
		body.NameFr = strings.TrimSpace(body.NameFr)
		if body.NameAr == "" || body.NameFr == "" {
			return fiber.NewError(fiber.StatusBadRequest, "nameAr et nameFr obligatoires")
		}
		if !models.ValidProductUnit(body.Unit) {
			return fiber.NewError(fiber.StatusBadRequest, "unit invalide (kg, l, watt, pcs, roll, m, carton, plate)")
		}
		if body.Price <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "price doit être > 0")
		}
		if body.MaxQuantity <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "maxQuantity doit être > 0")
		}
		if body.Quantity < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "quantity ne peut pas être négative")
		}
		if body.Quantity > body.MaxQuantity {
			return fiber.NewError(fiber.StatusBadRequest, "quantity ne peut pas dépasser maxQuantity")
		}

		p := models.Product{
			ID:          uuid.NewString(),
			NameAr:      body.NameAr,
			NameFr:      body.NameFr,
			Quantity:    body.Quantity,
			MaxQuantity: body.MaxQuantity,
			Unit:        body.Unit,
			Price:       body.Price,
		}

		if err := database.DB.Create(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Produit non enregistré")
		}

		writeInventoryAudit(c, "product", p.ID, models.AuditActionCreate,
			fmt.Sprintf("Produit ajouté: %s", p.NameFr), nil, ProductToView(p))

		return c.Status(fiber.StatusCreated).JSON(productResponse(p))
	}
}

// PUT /api/products/:id
func UpdateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var p models.Product
		if err := database.DB.First(&p, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Produit introuvable")
		}
		before := ProductToView(p)

		var body UpdateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corps de requête invalide")
		}

		if body.NameAr != nil {
			name := strings.TrimSpace(*body.NameAr)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "nameAr ne peut pas être vide")
			}
			p.NameAr = name
		}
		if body.NameFr != nil {
			name := strings.TrimSpace(*body.NameFr)
			if name == "" {
				return fiber.NewError(fiber.StatusBadRequest, "nameFr ne peut pas être vide")
			}
			p.NameFr = name
		}
		if body.Unit != nil {
			if !models.ValidProductUnit(*body.Unit) {
				return fiber.NewError(fiber.StatusBadRequest, "unit invalide")
			}
			p.Unit = *body.Unit
		}
		if body.Price != nil {
			if *body.Price <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "price doit être > 0")
			}
			p.Price = *body.Price
		}
		if body.Quantity != nil {
			p.Quantity = *body.Quantity
		}
		if body.MaxQuantity != nil {
			p.MaxQuantity = *body.MaxQuantity
		}

		if p.MaxQuantity <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "maxQuantity doit être > 0")
		}
		if p.Quantity < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "quantity ne peut pas être négative")
		}
		if p.Quantity > p.MaxQuantity {
			return fiber.NewError(fiber.StatusBadRequest, "quantity ne peut pas dépasser maxQuantity")
		}

		if err := database.DB.Save(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Produit non mis à jour")
		}

		writeInventoryAudit(c, "product", p.ID, models.AuditActionUpdate,
			fmt.Sprintf("Produit modifié: %s", p.NameFr), before, ProductToView(p))

		return c.JSON(productResponse(p))
	}
}

// DELETE /api/products/:id
func DeleteProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var p models.Product
		if err := database.DB.First(&p, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Produit introuvable")
		}

		// Un produit référencé par une commande ouverte ne doit pas disparaître
		var openCount int64
		database.DB.Model(&models.OrderItem{}).
			Joins("JOIN orders ON orders.id = order_items.order_id").
			Where("order_items.product_id = ? AND orders.status IN ?", id,
				[]models.OrderStatus{models.OrderStatusPending, models.OrderStatusProcessing}).
			Count(&openCount)
		if openCount > 0 {
			return fiber.NewError(fiber.StatusConflict, "Produit utilisé par une commande en cours")
		}

		if err := database.DB.Delete(&models.Product{}, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Produit non supprimé")
		}

		writeInventoryAudit(c, "product", p.ID, models.AuditActionDelete,
			fmt.Sprintf("Produit supprimé: %s", p.NameFr), ProductToView(p), nil)

		return c.SendStatus(fiber.StatusNoContent)
	}
}
