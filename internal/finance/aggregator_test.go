package finance

import (
	"reflect"
	"testing"
	"time"

	"cartonnerie-backend/internal/models"
)

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestSummarize_BasicTotals(t *testing.T) {
	// [{income,100},{expense,40},{expense,15}] -> revenu 100, dépense 55, net 45
	expenses := []models.Expense{
		{Type: models.ExpenseTypeIncome, Category: models.CategoryOther, Amount: 100, Date: day("2026-03-05")},
		{Type: models.ExpenseTypeExpense, Category: models.CategoryUtility, Amount: 40, Date: day("2026-03-10")},
		{Type: models.ExpenseTypeExpense, Category: models.CategoryMaintenance, Amount: 15, Date: day("2026-03-20")},
	}

	s := Summarize(expenses, nil, day("2026-03-01"), day("2026-04-01"))
	if s.TotalIncome != 100 {
		t.Errorf("revenu = %v, attendu 100", s.TotalIncome)
	}
	if s.TotalExpense != 55 {
		t.Errorf("dépense = %v, attendu 55", s.TotalExpense)
	}
	if s.Net != 45 {
		t.Errorf("net = %v, attendu 45", s.Net)
	}
	if s.ByCategory[models.CategoryUtility].Expense != 40 {
		t.Errorf("Utility = %v, attendu 40", s.ByCategory[models.CategoryUtility].Expense)
	}
}

func TestSummarize_EmptyInput(t *testing.T) {
	s := Summarize(nil, nil, day("2026-01-01"), day("2027-01-01"))
	if s.TotalIncome != 0 || s.TotalExpense != 0 || s.Net != 0 {
		t.Errorf("entrée vide: attendu des zéros, reçu %+v", s)
	}
	if len(s.ByCategory) != 0 {
		t.Errorf("entrée vide: byCategory devrait être vide, reçu %v", s.ByCategory)
	}
}

func TestSummarize_CompletedOrdersAsIncome(t *testing.T) {
	orders := []models.Order{
		{Status: models.OrderStatusCompleted, TotalAmount: 130, Date: day("2026-03-12")},
		{Status: models.OrderStatusPending, TotalAmount: 999, Date: day("2026-03-13")},   // ignorée
		{Status: models.OrderStatusCompleted, TotalAmount: 70, Date: day("2026-04-02")},  // hors fenêtre
		{Status: models.OrderStatusCancelled, TotalAmount: 500, Date: day("2026-03-14")}, // ignorée
	}

	s := Summarize(nil, orders, day("2026-03-01"), day("2026-04-01"))
	if s.TotalIncome != 130 {
		t.Errorf("revenu = %v, attendu 130 (seule la commande COMPLETED de la fenêtre)", s.TotalIncome)
	}
	if s.ByCategory[models.CategorySales].Income != 130 {
		t.Errorf("Sales = %v, attendu 130", s.ByCategory[models.CategorySales].Income)
	}
}

func TestSummarize_RecurringMonthly(t *testing.T) {
	// Loyer récurrent depuis janvier: 3 occurrences dans janvier-mars
	expenses := []models.Expense{
		{Type: models.ExpenseTypeExpense, Category: models.CategoryOther, Amount: 200, Date: day("2026-01-15"), IsRecurring: true},
	}

	s := Summarize(expenses, nil, day("2026-01-01"), day("2026-04-01"))
	if s.TotalExpense != 600 {
		t.Errorf("dépense = %v, attendu 600 (3 mois x 200)", s.TotalExpense)
	}

	// Fenêtre février seulement: une seule occurrence (le 15 février)
	s = Summarize(expenses, nil, day("2026-02-01"), day("2026-03-01"))
	if s.TotalExpense != 200 {
		t.Errorf("dépense = %v, attendu 200 (une occurrence)", s.TotalExpense)
	}

	// Fenêtre avant la date d'origine: rien
	s = Summarize(expenses, nil, day("2025-01-01"), day("2026-01-01"))
	if s.TotalExpense != 0 {
		t.Errorf("dépense = %v, attendu 0 (récurrence pas encore commencée)", s.TotalExpense)
	}
}

func TestSummarize_RecurringEndOfMonthOrigin(t *testing.T) {
	// Écriture du 31 janvier: février n'a pas de 31, l'échéance tombe le
	// dernier jour du mois puis revient au 31 en mars.
	expenses := []models.Expense{
		{Type: models.ExpenseTypeExpense, Category: models.CategoryOther, Amount: 200, Date: day("2026-01-31"), IsRecurring: true},
	}

	s := Summarize(expenses, nil, day("2026-02-01"), day("2026-03-01"))
	if s.TotalExpense != 200 {
		t.Errorf("fenêtre février: dépense = %v, attendu 200 (une occurrence mensuelle)", s.TotalExpense)
	}

	s = Summarize(expenses, nil, day("2026-03-01"), day("2026-04-01"))
	if s.TotalExpense != 200 {
		t.Errorf("fenêtre mars: dépense = %v, attendu 200 (échéance revenue au 31)", s.TotalExpense)
	}

	s = Summarize(expenses, nil, day("2026-01-01"), day("2026-05-01"))
	if s.TotalExpense != 800 {
		t.Errorf("janvier-avril: dépense = %v, attendu 800 (4 occurrences)", s.TotalExpense)
	}
}

func TestSummarize_LastDayTimestamps(t *testing.T) {
	// La borne haute est le premier jour suivant, exclu: une commande
	// horodatée en cours du dernier jour reste dans la fenêtre.
	lastDayAfternoon := time.Date(2026, 3, 31, 15, 0, 0, 0, time.UTC)
	orders := []models.Order{
		{Status: models.OrderStatusCompleted, TotalAmount: 500, Date: lastDayAfternoon},
	}
	expenses := []models.Expense{
		{Type: models.ExpenseTypeExpense, Category: models.CategorySalary, Amount: 90, Date: lastDayAfternoon},
	}

	s := Summarize(expenses, orders, day("2026-03-01"), day("2026-04-01"))
	if s.TotalIncome != 500 {
		t.Errorf("revenu = %v, attendu 500 (commande du 31 mars)", s.TotalIncome)
	}
	if s.TotalExpense != 90 {
		t.Errorf("dépense = %v, attendu 90 (salaire du 31 mars)", s.TotalExpense)
	}

	// La borne elle-même est dehors
	s = Summarize(nil, []models.Order{
		{Status: models.OrderStatusCompleted, TotalAmount: 100, Date: day("2026-04-01")},
	}, day("2026-03-01"), day("2026-04-01"))
	if s.TotalIncome != 0 {
		t.Errorf("revenu = %v, attendu 0 (le 1er avril est hors fenêtre)", s.TotalIncome)
	}
}

func TestSummarize_NonRecurringOutsideWindow(t *testing.T) {
	expenses := []models.Expense{
		{Type: models.ExpenseTypeExpense, Category: models.CategoryOther, Amount: 50, Date: day("2026-02-15")},
	}
	s := Summarize(expenses, nil, day("2026-03-01"), day("2026-04-01"))
	if s.TotalExpense != 0 {
		t.Errorf("dépense = %v, attendu 0 (hors fenêtre)", s.TotalExpense)
	}
}

func TestSummarize_Idempotent(t *testing.T) {
	expenses := []models.Expense{
		{Type: models.ExpenseTypeIncome, Category: models.CategorySales, Amount: 300, Date: day("2026-03-01")},
		{Type: models.ExpenseTypeExpense, Category: models.CategorySalary, Amount: 120, Date: day("2026-03-02"), IsRecurring: true},
	}
	orders := []models.Order{
		{Status: models.OrderStatusCompleted, TotalAmount: 80, Date: day("2026-03-03")},
	}

	a := Summarize(expenses, orders, day("2026-03-01"), day("2026-04-01"))
	b := Summarize(expenses, orders, day("2026-03-01"), day("2026-04-01"))
	if !reflect.DeepEqual(a, b) {
		t.Errorf("deux exécutions sur la même entrée divergent:\n  a: %+v\n  b: %+v", a, b)
	}
}

func TestSummarize_OrderIndependent(t *testing.T) {
	e1 := models.Expense{Type: models.ExpenseTypeExpense, Category: models.CategoryUtility, Amount: 0.1, Date: day("2026-03-01")}
	e2 := models.Expense{Type: models.ExpenseTypeExpense, Category: models.CategoryUtility, Amount: 0.2, Date: day("2026-03-02")}
	e3 := models.Expense{Type: models.ExpenseTypeExpense, Category: models.CategoryUtility, Amount: 0.3, Date: day("2026-03-03")}

	a := Summarize([]models.Expense{e1, e2, e3}, nil, day("2026-03-01"), day("2026-04-01"))
	b := Summarize([]models.Expense{e3, e1, e2}, nil, day("2026-03-01"), day("2026-04-01"))
	if !reflect.DeepEqual(a, b) {
		t.Errorf("le résultat dépend de l'ordre des entrées:\n  a: %+v\n  b: %+v", a, b)
	}
	if a.TotalExpense != 0.6 {
		t.Errorf("dépense = %v, attendu exactement 0.6 (sommes décimales)", a.TotalExpense)
	}
}
