package core

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// HTTPError: traduit une erreur moteur en erreur fiber.
// 400 validation, 409 conflit, 422 stock insuffisant, sinon le repli fourni.
func HTTPError(err error, fallback string) error {
	var v *ValidationError
	if errors.As(err, &v) {
		return fiber.NewError(fiber.StatusBadRequest, v.Reason)
	}

	var ins *InsufficientStockError
	if errors.As(err, &ins) {
		return fiber.NewError(fiber.StatusUnprocessableEntity,
			fmt.Sprintf("Stock insuffisant: %s", strings.Join(ins.IDs, ", ")))
	}

	var conf *ConflictError
	if errors.As(err, &conf) {
		return fiber.NewError(fiber.StatusConflict,
			"Modification concurrente détectée, recharge les données et réessaie")
	}

	return fiber.NewError(fiber.StatusInternalServerError, fallback)
}
