package models

import "time"

// RawMaterial: matière première en stock.
// Invariant: 0 <= quantity, max_quantity sert uniquement à l'affichage en pourcentage.
type RawMaterial struct {
	ID          string  `gorm:"primaryKey;size:36"`
	NameAr      string  `gorm:"size:100;not null"`
	NameFr      string  `gorm:"size:100;not null"`
	Quantity    float64 `gorm:"not null"`
	MaxQuantity float64 `gorm:"not null"`
	Unit        string  `gorm:"size:10;not null"` // kg, l, watt, pcs, roll, m
	MinLevel    float64 `gorm:"not null"`         // seuil de réapprovisionnement
	Supplier    string  `gorm:"size:100"`
	Price       *float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
