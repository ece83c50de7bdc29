package models

import "time"

// ProductionLog: trace d'un cycle de production (transformation matières -> produit).
type ProductionLog struct {
	ID               string `gorm:"primaryKey;size:36"`
	Date             time.Time `gorm:"index;not null"`
	ProductID        string    `gorm:"size:36;index;not null"`
	QuantityProduced float64   `gorm:"not null"`
	WasteAmount      float64   `gorm:"not null"` // kg perdus pendant le cycle, ne rentre pas en stock
	OperatorID       string    `gorm:"size:36"`  // employé ayant lancé le cycle
	CreatedAt        time.Time
}
