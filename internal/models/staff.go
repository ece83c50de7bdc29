package models

import "time"

// Staff: employé de l'atelier. Le rôle est un intitulé bilingue, pas une autorisation.
type Staff struct {
	ID              string  `gorm:"primaryKey;size:36"`
	Name            string  `gorm:"size:100;not null"`
	RoleAr          string  `gorm:"size:100;not null"`
	RoleFr          string  `gorm:"size:100;not null"`
	Salary          float64 `gorm:"not null"`
	LastPaymentDate *time.Time
	AdvanceTaken    float64 `gorm:"not null;default:0"` // avance sur salaire, déduite du net à payer
	PasswordHash    string  `gorm:"size:255"`           // vide = pas de compte de connexion
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
