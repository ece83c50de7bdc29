package dashboard

import (
	"fmt"
	"time"

	"cartonnerie-backend/internal/database"
	"cartonnerie-backend/internal/finance"
	"cartonnerie-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type SummaryResponse struct {
	PendingOrders    int64   `json:"pendingOrders"`
	ProcessingOrders int64   `json:"processingOrders"`
	StaffCount       int64   `json:"staffCount"`
	CustomerCount    int64   `json:"customerCount"`
	MonthIncome      float64 `json:"monthIncome"`
	MonthExpense     float64 `json:"monthExpense"`
	MonthNet         float64 `json:"monthNet"`
}

// GET /api/dashboard/summary
// Chiffres d'en-tête du tableau de bord, mois courant.
func SummaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var res SummaryResponse

		database.DB.Model(&models.Order{}).Where("status = ?", models.OrderStatusPending).Count(&res.PendingOrders)
		database.DB.Model(&models.Order{}).Where("status = ?", models.OrderStatusProcessing).Count(&res.ProcessingOrders)
		database.DB.Model(&models.Staff{}).Count(&res.StaffCount)
		database.DB.Model(&models.Customer{}).Count(&res.CustomerCount)

		now := time.Now()
		from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		// Borne haute exclusive, les horodatages du dernier jour comptent
		to := from.AddDate(0, 1, 0)

		var expenses []models.Expense
		if err := database.DB.
			Where("(date >= ? AND date < ?) OR (is_recurring = ? AND date < ?)", from, to, true, to).
			Find(&expenses).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Écritures indisponibles")
		}
		var orders []models.Order
		if err := database.DB.
			Where("status = ? AND date >= ? AND date < ?", models.OrderStatusCompleted, from, to).
			Find(&orders).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Commandes indisponibles")
		}

		s := finance.Summarize(expenses, orders, from, to)
		res.MonthIncome = s.TotalIncome
		res.MonthExpense = s.TotalExpense
		res.MonthNet = s.Net

		return c.JSON(res)
	}
}

type ChartPoint struct {
	Label   string  `json:"label"` // premier jour du mois
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Net     float64 `json:"net"`
}

type RevenueChartResponse struct {
	Months int          `json:"months"`
	Points []ChartPoint `json:"points"`
}

// GET /api/dashboard/revenue-chart?months=6
// Revenus vs dépenses par mois, du plus ancien au plus récent.
func RevenueChartHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		months := 6
		if mStr := c.Query("months"); mStr != "" {
			var m int
			if _, err := fmt.Sscan(mStr, &m); err != nil || m < 1 || m > 24 {
				return fiber.NewError(fiber.StatusBadRequest, "months invalide (1-24)")
			}
			months = m
		}

		now := time.Now()
		points := make([]ChartPoint, 0, months)

		for i := months - 1; i >= 0; i-- {
			first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -i, 0)
			next := first.AddDate(0, 1, 0)

			var expenses []models.Expense
			if err := database.DB.
				Where("(date >= ? AND date < ?) OR (is_recurring = ? AND date < ?)", first, next, true, next).
				Find(&expenses).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Écritures indisponibles")
			}
			var orders []models.Order
			if err := database.DB.
				Where("status = ? AND date >= ? AND date < ?", models.OrderStatusCompleted, first, next).
				Find(&orders).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Commandes indisponibles")
			}

			s := finance.Summarize(expenses, orders, first, next)
			points = append(points, ChartPoint{
				Label:   first.Format("2006-01"),
				Income:  s.TotalIncome,
				Expense: s.TotalExpense,
				Net:     s.Net,
			})
		}

		return c.JSON(RevenueChartResponse{Months: months, Points: points})
	}
}
