package audit

import (
	"fmt"

	"cartonnerie-backend/internal/database"
	"cartonnerie-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type AuditLogResponse struct {
	ID          uint               `json:"id"`
	CreatedAt   string             `json:"createdAt"`
	StaffID     string             `json:"staffId"`
	StaffName   string             `json:"staffName"`
	EntityType  string             `json:"entityType"`
	EntityID    string             `json:"entityId"`
	Action      models.AuditAction `json:"action"`
	Description string             `json:"description"`
}

// GET /api/audit-logs?entity_type=order&entity_id=...&staff_id=...&limit=100
func ListAuditLogsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.AuditLog{})

		if entityType := c.Query("entity_type"); entityType != "" {
			dbq = dbq.Where("entity_type = ?", entityType)
		}
		if entityID := c.Query("entity_id"); entityID != "" {
			dbq = dbq.Where("entity_id = ?", entityID)
		}
		if staffID := c.Query("staff_id"); staffID != "" {
			dbq = dbq.Where("staff_id = ?", staffID)
		}

		limit := 100
		if limitStr := c.Query("limit"); limitStr != "" {
			var l int
			if _, err := fmt.Sscan(limitStr, &l); err != nil || l < 1 || l > 1000 {
				return fiber.NewError(fiber.StatusBadRequest, "limit invalide (1-1000)")
			}
			limit = l
		}

		var rows []models.AuditLog
		if err := dbq.Order("created_at desc").Limit(limit).Find(&rows).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Journal indisponible")
		}

		res := make([]AuditLogResponse, 0, len(rows))
		for _, r := range rows {
			res = append(res, AuditLogResponse{
				ID:          r.ID,
				CreatedAt:   r.CreatedAt.Format("2006-01-02 15:04:05"),
				StaffID:     r.StaffID,
				StaffName:   r.StaffName,
				EntityType:  r.EntityType,
				EntityID:    r.EntityID,
				Action:      r.Action,
				Description: r.Description,
			})
		}
		return c.JSON(res)
	}
}
