package inventory

import "cartonnerie-backend/internal/models"

// Mappage schéma de stockage (snake_case) <-> schéma de vue (camelCase).
// Pur, total, réversible par entité; les tests vérifient l'aller-retour.
// Les horodatages gorm ne font pas partie de la vue.

type MaterialView struct {
	ID          string   `json:"id"`
	NameAr      string   `json:"nameAr"`
	NameFr      string   `json:"nameFr"`
	Quantity    float64  `json:"quantity"`
	MaxQuantity float64  `json:"maxQuantity"`
	Unit        string   `json:"unit"`
	MinLevel    float64  `json:"minLevel"`
	Supplier    string   `json:"supplier"`
	Price       *float64 `json:"price,omitempty"`
}

func MaterialToView(m models.RawMaterial) MaterialView {
	return MaterialView{
		ID:          m.ID,
		NameAr:      m.NameAr,
		NameFr:      m.NameFr,
		Quantity:    m.Quantity,
		MaxQuantity: m.MaxQuantity,
		Unit:        m.Unit,
		MinLevel:    m.MinLevel,
		Supplier:    m.Supplier,
		Price:       m.Price,
	}
}

func MaterialFromView(v MaterialView) models.RawMaterial {
	return models.RawMaterial{
		ID:          v.ID,
		NameAr:      v.NameAr,
		NameFr:      v.NameFr,
		Quantity:    v.Quantity,
		MaxQuantity: v.MaxQuantity,
		Unit:        v.Unit,
		MinLevel:    v.MinLevel,
		Supplier:    v.Supplier,
		Price:       v.Price,
	}
}

type ProductView struct {
	ID          string  `json:"id"`
	NameAr      string  `json:"nameAr"`
	NameFr      string  `json:"nameFr"`
	Quantity    float64 `json:"quantity"`
	MaxQuantity float64 `json:"maxQuantity"`
	Unit        string  `json:"unit"`
	Price       float64 `json:"price"`
}

func ProductToView(p models.Product) ProductView {
	return ProductView{
		ID:          p.ID,
		NameAr:      p.NameAr,
		NameFr:      p.NameFr,
		Quantity:    p.Quantity,
		MaxQuantity: p.MaxQuantity,
		Unit:        p.Unit,
		Price:       p.Price,
	}
}

func ProductFromView(v ProductView) models.Product {
	return models.Product{
		ID:          v.ID,
		NameAr:      v.NameAr,
		NameFr:      v.NameFr,
		Quantity:    v.Quantity,
		MaxQuantity: v.MaxQuantity,
		Unit:        v.Unit,
		Price:       v.Price,
	}
}
