package audit

import (
	"encoding/json"
	"fmt"

	"cartonnerie-backend/internal/database"
	"cartonnerie-backend/internal/models"
)

type LogOptions struct {
	StaffID     string
	StaffName   string
	EntityType  string
	EntityID    string
	Action      models.AuditAction
	Description string
	Before      any
	After       any
}

func WriteLog(opts LogOptions) error {
	// jsonb Postgres: "null" plutôt qu'une chaîne vide
	beforeStr := "null"
	afterStr := "null"

	if opts.Before != nil {
		if b, err := json.Marshal(opts.Before); err == nil {
			beforeStr = string(b)
		}
	}
	if opts.After != nil {
		if b, err := json.Marshal(opts.After); err == nil {
			afterStr = string(b)
		}
	}

	log := models.AuditLog{
		StaffID:     opts.StaffID,
		StaffName:   opts.StaffName,
		EntityType:  opts.EntityType,
		EntityID:    opts.EntityID,
		Action:      opts.Action,
		Description: opts.Description,
		BeforeData:  beforeStr,
		AfterData:   afterStr,
	}

	if err := database.DB.Create(&log).Error; err != nil {
		return fmt.Errorf("audit log non enregistré: %w", err)
	}

	return nil
}
