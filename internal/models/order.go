package models

import "time"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusCompleted  OrderStatus = "COMPLETED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// Order: commande client.
// Invariant: total_amount == somme des totaux de lignes.
type Order struct {
	ID           string `gorm:"primaryKey;size:36"`
	CustomerID   string `gorm:"size:36;index;not null"`
	CustomerName string `gorm:"size:100;not null"` // dénormalisé pour l'affichage
	Date         time.Time   `gorm:"index;not null"`
	Status       OrderStatus `gorm:"size:20;not null"`
	TotalAmount  float64     `gorm:"not null"`
	Items        []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// OrderItem: ligne de commande. total == quantity * unit_price, toujours.
type OrderItem struct {
	ID          uint   `gorm:"primaryKey"`
	OrderID     string `gorm:"size:36;index;not null"`
	ProductID   string `gorm:"size:36;index;not null"`
	ProductName string `gorm:"size:100;not null"` // dénormalisé
	Quantity    float64 `gorm:"not null"`
	UnitPrice   float64 `gorm:"not null"`
	Total       float64 `gorm:"not null"`
}
