package production

import (
	"errors"
	"time"

	"cartonnerie-backend/internal/core"
	"cartonnerie-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Run: applique un cycle de production en une seule transaction.
// Les décréments matière sont des UPDATE conditionnels (quantity >= besoin):
// zéro ligne touchée veut dire qu'un autre opérateur a écrit entre-temps.
// Dans ce cas on recharge, on revalide et on retente une fois.
func Run(db *gorm.DB, req Request, operatorID string) (*models.ProductionLog, error) {
	log, err := attempt(db, req, operatorID)

	var conflict *core.ConflictError
	if errors.As(err, &conflict) {
		// État frais, deuxième et dernière tentative
		log, err = attempt(db, req, operatorID)
	}
	return log, err
}

func attempt(db *gorm.DB, req Request, operatorID string) (*models.ProductionLog, error) {
	var product models.Product
	if err := db.First(&product, "id = ?", req.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &core.ValidationError{Reason: "produit introuvable"}
		}
		return nil, err
	}

	ids := make([]string, 0, len(req.Consumption))
	for _, line := range req.Consumption {
		ids = append(ids, line.MaterialID)
	}

	var materials []models.RawMaterial
	if err := db.Where("id IN ?", ids).Find(&materials).Error; err != nil {
		return nil, err
	}

	stocks := make(map[string]float64, len(materials))
	for _, m := range materials {
		stocks[m.ID] = m.Quantity
	}

	plan, err := Plan(product.Quantity, stocks, req)
	if err != nil {
		return nil, err
	}

	entry := &models.ProductionLog{
		ID:               uuid.NewString(),
		Date:             time.Now(),
		ProductID:        product.ID,
		QuantityProduced: req.QuantityProduced,
		WasteAmount:      req.WasteAmount,
		OperatorID:       operatorID,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		for id, need := range plan.Required {
			if need == 0 {
				continue
			}
			res := tx.Model(&models.RawMaterial{}).
				Where("id = ? AND quantity >= ?", id, need).
				Update("quantity", gorm.Expr("quantity - ?", need))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				// Validé sur l'instantané mais perdu en base: écriture concurrente
				return &core.ConflictError{Entity: "material", ID: id}
			}
		}

		if err := tx.Model(&models.Product{}).
			Where("id = ?", product.ID).
			Update("quantity", gorm.Expr("quantity + ?", req.QuantityProduced)).Error; err != nil {
			return err
		}

		return tx.Create(entry).Error
	})
	if err != nil {
		return nil, err
	}

	return entry, nil
}
