package models

import "time"

type ExpenseType string

const (
	ExpenseTypeIncome  ExpenseType = "income"
	ExpenseTypeExpense ExpenseType = "expense"
)

// Catégories fixes (rejetées à la saisie si inconnues, jamais à l'agrégation)
const (
	CategoryUtility     = "Utility"
	CategoryMaintenance = "Maintenance"
	CategoryRawMaterial = "RawMaterial"
	CategorySalary      = "Salary"
	CategorySales       = "Sales"
	CategoryOther       = "Other"
)

var expenseCategories = map[string]bool{
	CategoryUtility:     true,
	CategoryMaintenance: true,
	CategoryRawMaterial: true,
	CategorySalary:      true,
	CategorySales:       true,
	CategoryOther:       true,
}

func ValidExpenseCategory(c string) bool {
	return expenseCategories[c]
}

// Expense: entrée ou sortie d'argent.
type Expense struct {
	ID          string      `gorm:"primaryKey;size:36"`
	Type        ExpenseType `gorm:"size:10;not null"` // income | expense
	Category    string      `gorm:"size:30;index;not null"`
	Description string      `gorm:"size:255"`
	Amount      float64     `gorm:"not null"`
	Date        time.Time   `gorm:"index;not null"`
	IsRecurring bool        `gorm:"not null;default:false"` // comptée une fois par mois dans la fenêtre
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
