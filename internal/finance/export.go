package finance

import (
	"fmt"
	"sort"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

// GET /api/finance/summary/export?from=...&to=...
// Fichier Excel du résumé financier pour la comptabilité.
func ExportSummaryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		from, to, err := parseWindow(c)
		if err != nil {
			return err
		}

		summary, err := loadSummary(from, to)
		if err != nil {
			return err
		}
		// Borne haute exclusive, le fichier affiche le dernier jour inclus
		lastDay := to.AddDate(0, 0, -1)

		f := excelize.NewFile()
		defer f.Close()

		sheet := "Résumé"
		f.SetSheetName("Sheet1", sheet)

		f.SetCellValue(sheet, "A1", "Période")
		f.SetCellValue(sheet, "B1", fmt.Sprintf("du %s au %s", from.Format("2006-01-02"), lastDay.Format("2006-01-02")))

		f.SetCellValue(sheet, "A3", "Revenus")
		f.SetCellValue(sheet, "B3", summary.TotalIncome)
		f.SetCellValue(sheet, "A4", "Dépenses")
		f.SetCellValue(sheet, "B4", summary.TotalExpense)
		f.SetCellValue(sheet, "A5", "Net")
		f.SetCellValue(sheet, "B5", summary.Net)

		f.SetCellValue(sheet, "A7", "Catégorie")
		f.SetCellValue(sheet, "B7", "Revenus")
		f.SetCellValue(sheet, "C7", "Dépenses")

		// Ordre stable des catégories dans le fichier
		cats := make([]string, 0, len(summary.ByCategory))
		for cat := range summary.ByCategory {
			cats = append(cats, cat)
		}
		sort.Strings(cats)

		row := 8
		for _, cat := range cats {
			totals := summary.ByCategory[cat]
			f.SetCellValue(sheet, fmt.Sprintf("A%d", row), cat)
			f.SetCellValue(sheet, fmt.Sprintf("B%d", row), totals.Income)
			f.SetCellValue(sheet, fmt.Sprintf("C%d", row), totals.Expense)
			row++
		}

		buf, err := f.WriteToBuffer()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Export impossible")
		}

		filename := fmt.Sprintf("finance_%s_%s.xlsx", from.Format("20060102"), lastDay.Format("20060102"))
		c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		return c.Send(buf.Bytes())
	}
}
