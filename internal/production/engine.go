package production

import (
	"fmt"
	"sort"

	"cartonnerie-backend/internal/core"
)

// ConsumptionLine: consommation d'une matière par unité produite.
type ConsumptionLine struct {
	MaterialID    string
	AmountPerUnit float64
}

// Request: demande d'un cycle de production.
type Request struct {
	ProductID        string
	QuantityProduced float64
	WasteAmount      float64 // kg perdus, enregistrés mais jamais remis en stock
	Consumption      []ConsumptionLine
}

// PlanResult: effets calculés d'un cycle accepté. Rien n'est appliqué ici,
// l'application se fait en une seule transaction côté base.
type PlanResult struct {
	Required          map[string]float64 // matière -> quantité consommée
	NewMaterialStocks map[string]float64
	NewProductStock   float64
}

// Plan: valide et calcule un cycle de production. Pur: ne touche ni la base
// ni les instantanés passés en entrée. Tout ou rien: la moindre matière en
// défaut rejette le cycle entier.
func Plan(productStock float64, materialStocks map[string]float64, req Request) (*PlanResult, error) {
	if req.QuantityProduced <= 0 {
		return nil, &core.ValidationError{Reason: "la quantité produite doit être > 0"}
	}
	if req.WasteAmount < 0 {
		return nil, &core.ValidationError{Reason: "le déchet ne peut pas être négatif"}
	}
	if len(req.Consumption) == 0 {
		return nil, &core.ValidationError{Reason: "au moins une matière consommée est requise"}
	}

	required := make(map[string]float64, len(req.Consumption))
	for _, line := range req.Consumption {
		if line.MaterialID == "" {
			return nil, &core.ValidationError{Reason: "ligne de consommation sans matière"}
		}
		if line.AmountPerUnit < 0 {
			return nil, &core.ValidationError{Reason: fmt.Sprintf("taux négatif pour la matière %s", line.MaterialID)}
		}
		if _, dup := required[line.MaterialID]; dup {
			return nil, &core.ValidationError{Reason: fmt.Sprintf("matière %s en double", line.MaterialID)}
		}
		required[line.MaterialID] = line.AmountPerUnit * req.QuantityProduced
	}

	newStocks := make(map[string]float64, len(required))
	var short []string
	for id, need := range required {
		cur, ok := materialStocks[id]
		if !ok {
			return nil, &core.ValidationError{Reason: fmt.Sprintf("matière inconnue: %s", id)}
		}
		rest := cur - need
		if rest < 0 {
			short = append(short, id)
			continue
		}
		newStocks[id] = rest
	}
	if len(short) > 0 {
		sort.Strings(short)
		return nil, &core.InsufficientStockError{Entity: "material", IDs: short}
	}

	// Le stock produit peut dépasser max_quantity: plafond d'affichage
	// uniquement, le pourcentage est borné côté évaluateur.
	return &PlanResult{
		Required:          required,
		NewMaterialStocks: newStocks,
		NewProductStock:   productStock + req.QuantityProduced,
	}, nil
}
