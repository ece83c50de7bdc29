package finance

import (
	"time"

	"cartonnerie-backend/internal/models"

	"github.com/shopspring/decimal"
)

type CategoryTotal struct {
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

type Summary struct {
	TotalIncome  float64                  `json:"totalIncome"`
	TotalExpense float64                  `json:"totalExpense"`
	Net          float64                  `json:"net"`
	ByCategory   map[string]CategoryTotal `json:"byCategory"`
}

// Summarize: agrège revenus et dépenses sur une fenêtre [from, to[.
// La borne haute est exclusive pour qu'une journée entière (horodatages
// compris) tienne dans la fenêtre du mois. Pur et déterministe: sommes en
// décimal, l'ordre des entrées n'a aucun effet, une collection vide donne
// des zéros. Le revenu inclut les commandes COMPLETED de la fenêtre
// (catégorie Sales).
func Summarize(expenses []models.Expense, orders []models.Order, from, to time.Time) Summary {
	income := decimal.Zero
	expense := decimal.Zero

	type catAcc struct {
		income  decimal.Decimal
		expense decimal.Decimal
	}
	byCat := make(map[string]catAcc)

	for _, e := range expenses {
		n := occurrences(e, from, to)
		if n == 0 {
			continue
		}
		amount := decimal.NewFromFloat(e.Amount).Mul(decimal.NewFromInt(int64(n)))

		acc := byCat[e.Category]
		if e.Type == models.ExpenseTypeIncome {
			income = income.Add(amount)
			acc.income = acc.income.Add(amount)
		} else {
			expense = expense.Add(amount)
			acc.expense = acc.expense.Add(amount)
		}
		byCat[e.Category] = acc
	}

	for _, o := range orders {
		if o.Status != models.OrderStatusCompleted {
			continue
		}
		if o.Date.Before(from) || !o.Date.Before(to) {
			continue
		}
		amount := decimal.NewFromFloat(o.TotalAmount)
		income = income.Add(amount)
		acc := byCat[models.CategorySales]
		acc.income = acc.income.Add(amount)
		byCat[models.CategorySales] = acc
	}

	out := Summary{
		TotalIncome:  income.InexactFloat64(),
		TotalExpense: expense.InexactFloat64(),
		Net:          income.Sub(expense).InexactFloat64(),
		ByCategory:   make(map[string]CategoryTotal, len(byCat)),
	}
	for cat, acc := range byCat {
		out.ByCategory[cat] = CategoryTotal{
			Income:  acc.income.InexactFloat64(),
			Expense: acc.expense.InexactFloat64(),
		}
	}
	return out
}

// occurrences: nombre de fois qu'une écriture compte dans la fenêtre.
// Une écriture récurrente vaut une occurrence par mois depuis sa date
// d'origine jusqu'à la fin de la fenêtre (période mensuelle).
func occurrences(e models.Expense, from, to time.Time) int {
	if !e.IsRecurring {
		if e.Date.Before(from) || !e.Date.Before(to) {
			return 0
		}
		return 1
	}

	n := 0
	for k := 0; ; k++ {
		d := monthlyOccurrence(e.Date, k)
		if !d.Before(to) {
			break
		}
		if !d.Before(from) {
			n++
		}
	}
	return n
}

// monthlyOccurrence: k-ième échéance mensuelle d'une écriture. Chaque échéance
// est calculée depuis le mois d'origine, jamais en cumulant, sinon un 31
// janvier déborderait sur le 3 mars. Le jour est ramené au dernier jour du
// mois quand le mois cible est plus court: le 31 janvier donne le 28 février
// puis revient au 31 mars.
func monthlyOccurrence(origin time.Time, k int) time.Time {
	first := time.Date(origin.Year(), origin.Month(), 1,
		origin.Hour(), origin.Minute(), origin.Second(), origin.Nanosecond(),
		origin.Location()).AddDate(0, k, 0)
	day := origin.Day()
	if last := first.AddDate(0, 1, -1).Day(); day > last {
		day = last
	}
	return first.AddDate(0, 0, day-1)
}
