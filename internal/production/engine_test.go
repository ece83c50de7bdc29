package production

import (
	"errors"
	"testing"

	"cartonnerie-backend/internal/core"
)

func TestPlan_Success(t *testing.T) {
	// A: 10kg, B: 5kg ; taux A=2/unité, B=1/unité ; 3 unités -> A=4, B=2
	materials := map[string]float64{"A": 10, "B": 5}
	req := Request{
		ProductID:        "P1",
		QuantityProduced: 3,
		Consumption: []ConsumptionLine{
			{MaterialID: "A", AmountPerUnit: 2},
			{MaterialID: "B", AmountPerUnit: 1},
		},
	}

	plan, err := Plan(7, materials, req)
	if err != nil {
		t.Fatalf("Plan a échoué: %v", err)
	}

	if plan.NewMaterialStocks["A"] != 4 {
		t.Errorf("stock A = %v, attendu 4", plan.NewMaterialStocks["A"])
	}
	if plan.NewMaterialStocks["B"] != 2 {
		t.Errorf("stock B = %v, attendu 2", plan.NewMaterialStocks["B"])
	}
	if plan.NewProductStock != 10 {
		t.Errorf("stock produit = %v, attendu 10", plan.NewProductStock)
	}
	if plan.Required["A"] != 6 || plan.Required["B"] != 3 {
		t.Errorf("besoins = %v, attendu A=6 B=3", plan.Required)
	}
}

func TestPlan_InsufficientRejectsWholeRun(t *testing.T) {
	// 6 unités: B passerait à -1, tout le cycle est rejeté
	materials := map[string]float64{"A": 10, "B": 5}
	req := Request{
		ProductID:        "P1",
		QuantityProduced: 6,
		Consumption: []ConsumptionLine{
			{MaterialID: "A", AmountPerUnit: 2},
			{MaterialID: "B", AmountPerUnit: 1},
		},
	}

	_, err := Plan(0, materials, req)
	var ins *core.InsufficientStockError
	if !errors.As(err, &ins) {
		t.Fatalf("attendu InsufficientStockError, reçu %v", err)
	}
	if len(ins.IDs) != 2 || ins.IDs[0] != "A" || ins.IDs[1] != "B" {
		t.Errorf("matières en défaut = %v, attendu [A B]", ins.IDs)
	}

	// L'instantané d'entrée n'est jamais modifié
	if materials["A"] != 10 || materials["B"] != 5 {
		t.Errorf("instantané modifié: %v", materials)
	}
}

func TestPlan_ReportsOnlyShortMaterials(t *testing.T) {
	materials := map[string]float64{"A": 100, "B": 2}
	req := Request{
		ProductID:        "P1",
		QuantityProduced: 3,
		Consumption: []ConsumptionLine{
			{MaterialID: "A", AmountPerUnit: 2},
			{MaterialID: "B", AmountPerUnit: 1},
		},
	}

	_, err := Plan(0, materials, req)
	var ins *core.InsufficientStockError
	if !errors.As(err, &ins) {
		t.Fatalf("attendu InsufficientStockError, reçu %v", err)
	}
	if len(ins.IDs) != 1 || ins.IDs[0] != "B" {
		t.Errorf("matières en défaut = %v, attendu [B]", ins.IDs)
	}
}

func TestPlan_ExactStockSucceeds(t *testing.T) {
	// La limite exacte (reste zéro) est acceptée
	materials := map[string]float64{"A": 6}
	req := Request{
		ProductID:        "P1",
		QuantityProduced: 3,
		Consumption:      []ConsumptionLine{{MaterialID: "A", AmountPerUnit: 2}},
	}

	plan, err := Plan(0, materials, req)
	if err != nil {
		t.Fatalf("Plan a échoué: %v", err)
	}
	if plan.NewMaterialStocks["A"] != 0 {
		t.Errorf("stock A = %v, attendu 0", plan.NewMaterialStocks["A"])
	}
}

func TestPlan_RejectsBadInput(t *testing.T) {
	materials := map[string]float64{"A": 10}
	base := Request{
		ProductID:   "P1",
		Consumption: []ConsumptionLine{{MaterialID: "A", AmountPerUnit: 2}},
	}

	cases := []struct {
		name string
		mut  func(r *Request)
	}{
		{"quantité nulle", func(r *Request) { r.QuantityProduced = 0 }},
		{"quantité négative", func(r *Request) { r.QuantityProduced = -2 }},
		{"déchet négatif", func(r *Request) { r.QuantityProduced = 1; r.WasteAmount = -1 }},
		{"sans consommation", func(r *Request) { r.QuantityProduced = 1; r.Consumption = nil }},
		{"taux négatif", func(r *Request) {
			r.QuantityProduced = 1
			r.Consumption = []ConsumptionLine{{MaterialID: "A", AmountPerUnit: -1}}
		}},
		{"matière en double", func(r *Request) {
			r.QuantityProduced = 1
			r.Consumption = []ConsumptionLine{
				{MaterialID: "A", AmountPerUnit: 1},
				{MaterialID: "A", AmountPerUnit: 2},
			}
		}},
	}

	for _, tc := range cases {
		req := base
		tc.mut(&req)
		_, err := Plan(0, materials, req)
		var v *core.ValidationError
		if !errors.As(err, &v) {
			t.Errorf("%s: attendu ValidationError, reçu %v", tc.name, err)
		}
	}
}

func TestPlan_UnknownMaterial(t *testing.T) {
	_, err := Plan(0, map[string]float64{"A": 10}, Request{
		ProductID:        "P1",
		QuantityProduced: 1,
		Consumption:      []ConsumptionLine{{MaterialID: "Z", AmountPerUnit: 1}},
	})
	var v *core.ValidationError
	if !errors.As(err, &v) {
		t.Fatalf("attendu ValidationError pour matière inconnue, reçu %v", err)
	}
}

func TestPlan_WasteDoesNotEnterStock(t *testing.T) {
	plan, err := Plan(5, map[string]float64{"A": 100}, Request{
		ProductID:        "P1",
		QuantityProduced: 10,
		WasteAmount:      3,
		Consumption:      []ConsumptionLine{{MaterialID: "A", AmountPerUnit: 1}},
	})
	if err != nil {
		t.Fatalf("Plan a échoué: %v", err)
	}
	// Le déchet est tracé mais n'augmente pas le stock produit
	if plan.NewProductStock != 15 {
		t.Errorf("stock produit = %v, attendu 15", plan.NewProductStock)
	}
}
