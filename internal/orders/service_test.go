package orders

import (
	"errors"
	"testing"

	"cartonnerie-backend/internal/core"

	"gorm.io/gorm"
)

func TestGuardAffected(t *testing.T) {
	// Zéro ligne touchée = l'état a bougé depuis l'instantané: conflit,
	// la transaction de complétion doit tout annuler, statut compris.
	err := guardAffected(&gorm.DB{RowsAffected: 0}, "order", "o-1")
	var conflict *core.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("zéro ligne touchée: attendu ConflictError, reçu %v", err)
	}
	if conflict.Entity != "order" || conflict.ID != "o-1" {
		t.Errorf("conflit sur %s/%s, attendu order/o-1", conflict.Entity, conflict.ID)
	}

	if err := guardAffected(&gorm.DB{RowsAffected: 1}, "product", "p-1"); err != nil {
		t.Errorf("une ligne touchée: attendu nil, reçu %v", err)
	}

	// Une erreur SQL passe telle quelle, jamais requalifiée en conflit
	dbErr := errors.New("connexion perdue")
	err = guardAffected(&gorm.DB{Error: dbErr, RowsAffected: 0}, "product", "p-1")
	if !errors.Is(err, dbErr) {
		t.Errorf("erreur SQL: attendu l'erreur d'origine, reçu %v", err)
	}
	if errors.As(err, &conflict) {
		t.Errorf("erreur SQL requalifiée en conflit: %v", err)
	}
}
