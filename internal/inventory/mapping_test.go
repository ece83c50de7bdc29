package inventory

import (
	"testing"

	"cartonnerie-backend/internal/models"
)

func TestMaterialMapping_RoundTrip(t *testing.T) {
	price := 120.5
	m := models.RawMaterial{
		ID:          "mat-1",
		NameAr:      "ورق كرافت",
		NameFr:      "Papier kraft",
		Quantity:    340,
		MaxQuantity: 1000,
		Unit:        models.UnitKg,
		MinLevel:    100,
		Supplier:    "SARL Emballage Sud",
		Price:       &price,
	}

	back := MaterialFromView(MaterialToView(m))
	if back != m {
		t.Errorf("aller-retour matière non identique:\n  avant: %+v\n  après: %+v", m, back)
	}
}

func TestMaterialMapping_RoundTrip_NilPrice(t *testing.T) {
	m := models.RawMaterial{
		ID:          "mat-2",
		NameAr:      "غراء",
		NameFr:      "Colle",
		Quantity:    50,
		MaxQuantity: 80,
		Unit:        models.UnitL,
		MinLevel:    10,
		Supplier:    "",
		Price:       nil,
	}

	back := MaterialFromView(MaterialToView(m))
	if back != m {
		t.Errorf("aller-retour matière (prix absent) non identique:\n  avant: %+v\n  après: %+v", m, back)
	}
}

func TestProductMapping_RoundTrip(t *testing.T) {
	p := models.Product{
		ID:          "prod-1",
		NameAr:      "كرتون مموج",
		NameFr:      "Carton ondulé",
		Quantity:    75,
		MaxQuantity: 500,
		Unit:        models.UnitCarton,
		Price:       45,
	}

	back := ProductFromView(ProductToView(p))
	if back != p {
		t.Errorf("aller-retour produit non identique:\n  avant: %+v\n  après: %+v", p, back)
	}
}
