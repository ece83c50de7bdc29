package models

import "time"

// Product: produit fini (cartons, plaques...)
type Product struct {
	ID          string  `gorm:"primaryKey;size:36"`
	NameAr      string  `gorm:"size:100;not null"`
	NameFr      string  `gorm:"size:100;not null"`
	Quantity    float64 `gorm:"not null"`
	MaxQuantity float64 `gorm:"not null"`
	Unit        string  `gorm:"size:10;not null"` // unités matières + carton, plate
	Price       float64 `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
