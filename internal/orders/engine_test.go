package orders

import (
	"errors"
	"testing"

	"cartonnerie-backend/internal/core"
	"cartonnerie-backend/internal/models"
)

func TestBuildItems_ComputesTotals(t *testing.T) {
	// [{2 x 50}, {1 x 30}] -> total 130
	items, total, err := BuildItems([]ItemInput{
		{ProductID: "P1", ProductName: "Carton simple", Quantity: 2, UnitPrice: 50},
		{ProductID: "P2", ProductName: "Plaque ondulée", Quantity: 1, UnitPrice: 30},
	})
	if err != nil {
		t.Fatalf("BuildItems a échoué: %v", err)
	}
	if total != 130 {
		t.Errorf("total = %v, attendu 130", total)
	}
	if items[0].Total != 100 || items[1].Total != 30 {
		t.Errorf("totaux de lignes = %v / %v, attendu 100 / 30", items[0].Total, items[1].Total)
	}
}

func TestBuildItems_RejectsWrongLineTotal(t *testing.T) {
	bad := 99.0
	_, _, err := BuildItems([]ItemInput{
		{ProductID: "P1", Quantity: 2, UnitPrice: 50, Total: &bad},
	})
	var v *core.ValidationError
	if !errors.As(err, &v) {
		t.Fatalf("attendu ValidationError pour total de ligne faux, reçu %v", err)
	}
}

func TestBuildItems_AcceptsMatchingLineTotal(t *testing.T) {
	good := 100.0
	_, total, err := BuildItems([]ItemInput{
		{ProductID: "P1", Quantity: 2, UnitPrice: 50, Total: &good},
	})
	if err != nil {
		t.Fatalf("BuildItems a échoué: %v", err)
	}
	if total != 100 {
		t.Errorf("total = %v, attendu 100", total)
	}
}

func TestBuildItems_RejectsBadLines(t *testing.T) {
	cases := []struct {
		name string
		in   []ItemInput
	}{
		{"vide", nil},
		{"sans produit", []ItemInput{{Quantity: 1, UnitPrice: 10}}},
		{"quantité nulle", []ItemInput{{ProductID: "P1", Quantity: 0, UnitPrice: 10}}},
		{"prix nul", []ItemInput{{ProductID: "P1", Quantity: 1, UnitPrice: 0}}},
		{"prix négatif", []ItemInput{{ProductID: "P1", Quantity: 1, UnitPrice: -5}}},
	}

	for _, tc := range cases {
		_, _, err := BuildItems(tc.in)
		var v *core.ValidationError
		if !errors.As(err, &v) {
			t.Errorf("%s: attendu ValidationError, reçu %v", tc.name, err)
		}
	}
}

func TestCheckDeclaredTotal(t *testing.T) {
	if err := CheckDeclaredTotal(nil, 130); err != nil {
		t.Errorf("total absent: pas d'erreur attendue, reçu %v", err)
	}

	good := 130.0
	if err := CheckDeclaredTotal(&good, 130); err != nil {
		t.Errorf("total correct: pas d'erreur attendue, reçu %v", err)
	}

	bad := 120.0
	err := CheckDeclaredTotal(&bad, 130)
	var v *core.ValidationError
	if !errors.As(err, &v) {
		t.Errorf("total faux: attendu ValidationError, reçu %v", err)
	}
}

func TestCanTransition_StateMachine(t *testing.T) {
	allowed := []struct{ from, to models.OrderStatus }{
		{models.OrderStatusPending, models.OrderStatusProcessing},
		{models.OrderStatusPending, models.OrderStatusCancelled},
		{models.OrderStatusProcessing, models.OrderStatusCompleted},
		{models.OrderStatusProcessing, models.OrderStatusCancelled},
	}
	for _, tr := range allowed {
		if !CanTransition(tr.from, tr.to) {
			t.Errorf("%s -> %s devrait être permis", tr.from, tr.to)
		}
	}

	forbidden := []struct{ from, to models.OrderStatus }{
		{models.OrderStatusCancelled, models.OrderStatusProcessing},
		{models.OrderStatusCancelled, models.OrderStatusPending},
		{models.OrderStatusCompleted, models.OrderStatusPending},
		{models.OrderStatusCompleted, models.OrderStatusCancelled},
		{models.OrderStatusPending, models.OrderStatusCompleted}, // saut d'étape
		{models.OrderStatusPending, models.OrderStatusPending},
	}
	for _, tr := range forbidden {
		if CanTransition(tr.from, tr.to) {
			t.Errorf("%s -> %s devrait être rejeté", tr.from, tr.to)
		}
	}
}

func TestCompletionNeeds_MergesSameProduct(t *testing.T) {
	needs := CompletionNeeds([]models.OrderItem{
		{ProductID: "P1", Quantity: 2},
		{ProductID: "P2", Quantity: 1},
		{ProductID: "P1", Quantity: 3},
	})
	if needs["P1"] != 5 {
		t.Errorf("besoin P1 = %v, attendu 5", needs["P1"])
	}
	if needs["P2"] != 1 {
		t.Errorf("besoin P2 = %v, attendu 1", needs["P2"])
	}
}

func TestBuildItems_DecimalExactness(t *testing.T) {
	// 0.1 * 3 en flottant vaut 0.30000000000000004; en décimal le total
	// déclaré 0.3 doit passer
	declared := 0.3
	_, total, err := BuildItems([]ItemInput{
		{ProductID: "P1", Quantity: 3, UnitPrice: 0.1, Total: &declared},
	})
	if err != nil {
		t.Fatalf("BuildItems a échoué: %v", err)
	}
	if total != 0.3 {
		t.Errorf("total = %v, attendu 0.3", total)
	}
}
