package orders

import (
	"fmt"

	"cartonnerie-backend/internal/core"
	"cartonnerie-backend/internal/models"

	"github.com/shopspring/decimal"
)

// Machine à états des commandes:
// PENDING -> PROCESSING -> COMPLETED
// PENDING | PROCESSING -> CANCELLED
// COMPLETED et CANCELLED sont terminaux.
var transitions = map[models.OrderStatus][]models.OrderStatus{
	models.OrderStatusPending:    {models.OrderStatusProcessing, models.OrderStatusCancelled},
	models.OrderStatusProcessing: {models.OrderStatusCompleted, models.OrderStatusCancelled},
	models.OrderStatusCompleted:  {},
	models.OrderStatusCancelled:  {},
}

func CanTransition(from, to models.OrderStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ItemInput: ligne de commande côté appelant. Total est optionnel;
// s'il est fourni et faux, c'est une erreur, jamais une correction silencieuse.
type ItemInput struct {
	ProductID   string
	ProductName string
	Quantity    float64
	UnitPrice   float64
	Total       *float64
}

// BuildItems: valide les lignes et calcule les totaux en décimal
// (les sommes sont exactes et indépendantes de l'ordre des lignes).
// Invariant posé ici: item.total == quantity * unit_price.
func BuildItems(inputs []ItemInput) ([]models.OrderItem, float64, error) {
	if len(inputs) == 0 {
		return nil, 0, &core.ValidationError{Reason: "une commande doit avoir au moins une ligne"}
	}

	items := make([]models.OrderItem, 0, len(inputs))
	sum := decimal.Zero
	for i, in := range inputs {
		if in.ProductID == "" {
			return nil, 0, &core.ValidationError{Reason: fmt.Sprintf("ligne %d sans produit", i+1)}
		}
		if in.Quantity <= 0 {
			return nil, 0, &core.ValidationError{Reason: fmt.Sprintf("ligne %d: quantité doit être > 0", i+1)}
		}
		if in.UnitPrice <= 0 {
			return nil, 0, &core.ValidationError{Reason: fmt.Sprintf("ligne %d: prix unitaire doit être > 0", i+1)}
		}

		lineTotal := decimal.NewFromFloat(in.Quantity).Mul(decimal.NewFromFloat(in.UnitPrice))
		if in.Total != nil && !decimal.NewFromFloat(*in.Total).Equal(lineTotal) {
			return nil, 0, &core.ValidationError{
				Reason: fmt.Sprintf("ligne %d: total déclaré %.2f ≠ quantité × prix %.2f", i+1, *in.Total, lineTotal.InexactFloat64()),
			}
		}

		items = append(items, models.OrderItem{
			ProductID:   in.ProductID,
			ProductName: in.ProductName,
			Quantity:    in.Quantity,
			UnitPrice:   in.UnitPrice,
			Total:       lineTotal.InexactFloat64(),
		})
		sum = sum.Add(lineTotal)
	}

	return items, sum.InexactFloat64(), nil
}

// CheckDeclaredTotal: un total fourni par l'appelant qui ne colle pas
// à la somme des lignes est rejeté.
func CheckDeclaredTotal(declared *float64, computed float64) error {
	if declared == nil {
		return nil
	}
	if !decimal.NewFromFloat(*declared).Equal(decimal.NewFromFloat(computed)) {
		return &core.ValidationError{
			Reason: fmt.Sprintf("total déclaré %.2f ≠ somme des lignes %.2f", *declared, computed),
		}
	}
	return nil
}

// CompletionNeeds: quantités à décrémenter par produit quand la commande
// passe à COMPLETED. Les lignes d'un même produit sont cumulées.
func CompletionNeeds(items []models.OrderItem) map[string]float64 {
	needs := make(map[string]float64, len(items))
	for _, it := range items {
		needs[it.ProductID] += it.Quantity
	}
	return needs
}
