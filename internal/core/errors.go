package core

import (
	"fmt"
	"strings"
)

// Erreurs typées des moteurs (production, commandes).
// Les handlers les traduisent en statut HTTP, les moteurs ne paniquent jamais.

// ValidationError: entrée malformée ou incohérente, aucun appel distant tenté.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// InsufficientStockError: le besoin dépasse le stock disponible.
// IDs liste toutes les entités en défaut, pas seulement la première.
type InsufficientStockError struct {
	Entity string // "material" ou "product"
	IDs    []string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuffisant (%s): %s", e.Entity, strings.Join(e.IDs, ", "))
}

// ConflictError: la base a divergé du dernier instantané connu
// (écriture concurrente), après épuisement du retry.
type ConflictError struct {
	Entity string
	ID     string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflit d'écriture sur %s %s, réessaie", e.Entity, e.ID)
}
