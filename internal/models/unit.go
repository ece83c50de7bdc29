package models

// Unités de mesure autorisées (alignées sur le schéma de stockage)
const (
	UnitKg   = "kg"
	UnitL    = "l"
	UnitWatt = "watt"
	UnitPcs  = "pcs"
	UnitRoll = "roll"
	UnitM    = "m"

	// Unités supplémentaires, produits finis uniquement
	UnitCarton = "carton"
	UnitPlate  = "plate"
)

var materialUnits = map[string]bool{
	UnitKg:   true,
	UnitL:    true,
	UnitWatt: true,
	UnitPcs:  true,
	UnitRoll: true,
	UnitM:    true,
}

func ValidMaterialUnit(u string) bool {
	return materialUnits[u]
}

func ValidProductUnit(u string) bool {
	return materialUnits[u] || u == UnitCarton || u == UnitPlate
}
