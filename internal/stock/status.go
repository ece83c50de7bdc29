package stock

// Status: classement OK/LOW/CRITICAL d'une quantité en stock
// par rapport à son seuil minimum.
type Status string

const (
	StatusOK       Status = "OK"
	StatusLow      Status = "LOW"
	StatusCritical Status = "CRITICAL"
)

// CriticalFactor: fraction du seuil minimum sous laquelle le stock est critique.
const CriticalFactor = 0.5

// Evaluate: pur, total, déterministe. minLevel <= 0 veut dire "pas de seuil":
// le statut reste OK tant qu'il reste quelque chose.
func Evaluate(quantity, minLevel float64) Status {
	if minLevel <= 0 {
		if quantity <= 0 {
			return StatusCritical
		}
		return StatusOK
	}

	if quantity <= minLevel*CriticalFactor {
		return StatusCritical
	}
	if quantity <= minLevel {
		return StatusLow
	}
	return StatusOK
}

// Percent: taux de remplissage pour l'affichage, borné à [0, 100].
// maxQuantity invalide donne 0, jamais de division par zéro.
func Percent(quantity, maxQuantity float64) float64 {
	if maxQuantity <= 0 {
		return 0
	}
	p := quantity / maxQuantity * 100
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
