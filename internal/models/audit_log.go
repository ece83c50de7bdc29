package models

import "time"

type AuditAction string

const (
	AuditActionCreate AuditAction = "create"
	AuditActionUpdate AuditAction = "update"
	AuditActionDelete AuditAction = "delete"
)

type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	// Quel employé ?
	StaffID   string `gorm:"size:36;index" json:"staff_id"`
	StaffName string `gorm:"size:100" json:"staff_name"` // dénormalisé

	// Quelle entité ? (ex: "material", "product", "order", "expense", "production")
	EntityType string `gorm:"size:50;index" json:"entity_type"`
	EntityID   string `gorm:"size:36;index" json:"entity_id"`

	// Type d'opération: create/update/delete
	Action AuditAction `gorm:"size:20" json:"action"`

	// Petit résumé lisible
	Description string `gorm:"size:255" json:"description"`

	// État avant et après (JSON)
	BeforeData string `gorm:"type:jsonb" json:"before_data"`
	AfterData  string `gorm:"type:jsonb" json:"after_data"`
}
