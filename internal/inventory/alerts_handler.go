package inventory

import (
	"cartonnerie-backend/internal/database"
	"cartonnerie-backend/internal/models"
	"cartonnerie-backend/internal/stock"

	"github.com/gofiber/fiber/v2"
)

type AlertsResponse struct {
	Materials []MaterialResponse `json:"materials"`
	Products  []ProductResponse  `json:"products"`
}

// GET /api/inventory/alerts
// Tout ce qui n'est pas OK, matières et produits confondus.
func ListAlertsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var materials []models.RawMaterial
		if err := database.DB.Order("name_fr asc").Find(&materials).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Matières premières indisponibles")
		}

		var products []models.Product
		if err := database.DB.Order("name_fr asc").Find(&products).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Produits indisponibles")
		}

		res := AlertsResponse{
			Materials: make([]MaterialResponse, 0),
			Products:  make([]ProductResponse, 0),
		}
		for _, m := range materials {
			if r := materialResponse(m); r.Status != stock.StatusOK {
				res.Materials = append(res.Materials, r)
			}
		}
		for _, p := range products {
			if r := productResponse(p); r.Status != stock.StatusOK {
				res.Products = append(res.Products, r)
			}
		}

		return c.JSON(res)
	}
}
