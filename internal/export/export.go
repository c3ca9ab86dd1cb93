// Package export arma el libro de Excel de un pedido escalado: una hoja de
// resumen con las variables del pedido y una hoja con el desglose de costos
// por ingrediente.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/dulcehorno/rollos/internal/recipes"
	"github.com/dulcehorno/rollos/internal/scaling"
)

const (
	summarySheet     = "Resumen"
	ingredientsSheet = "Ingredientes"

	currencyFormat = `"$"#,##0.00`
	percentFormat  = `0.00%`
)

// OrderReport reúne todo lo que el libro necesita de un pedido ya calculado.
type OrderReport struct {
	Recipe         recipes.Recipe
	Order          scaling.Order
	UnitPrice      float64
	PriceSource    string
	MarginFraction float64
}

// OrderWorkbook construye el libro con las hojas Resumen e Ingredientes,
// columnas monetarias con dos decimales y el margen como porcentaje.
func OrderWorkbook(report OrderReport) (*excelize.File, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(summarySheet)
	if err != nil {
		return nil, fmt.Errorf("create summary sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if _, err := f.NewSheet(ingredientsSheet); err != nil {
		return nil, fmt.Errorf("create ingredients sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("drop default sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("create bold style: %w", err)
	}
	currency, err := f.NewStyle(&excelize.Style{CustomNumFmt: strPtr(currencyFormat)})
	if err != nil {
		return nil, fmt.Errorf("create currency style: %w", err)
	}
	percent, err := f.NewStyle(&excelize.Style{CustomNumFmt: strPtr(percentFormat)})
	if err != nil {
		return nil, fmt.Errorf("create percent style: %w", err)
	}

	if err := writeSummary(f, report, bold, currency, percent); err != nil {
		return nil, err
	}
	if err := writeIngredients(f, report.Order, bold, currency); err != nil {
		return nil, err
	}
	return f, nil
}

type summaryRow struct {
	variable string
	value    any
	style    int // 0 = sin formato especial
}

func writeSummary(f *excelize.File, report OrderReport, bold, currency, percent int) error {
	income := report.UnitPrice * float64(report.Order.OrderQty)
	profit := scaling.Profit(report.UnitPrice, report.Order.OrderQty, report.Order.TotalCost)

	rows := []summaryRow{
		{"Receta", report.Recipe.Name, 0},
		{"Unidades por batch", report.Recipe.UnitsPerBatch, 0},
		{"Unidades del pedido", report.Order.OrderQty, 0},
		{"Factor de escala", report.Order.Factor, 0},
		{"Costo total del pedido", report.Order.TotalCost, currency},
		{"Costo por unidad", report.Order.UnitCost, currency},
		{"Precio unitario aplicado", report.UnitPrice, currency},
		{"Margen considerado", report.MarginFraction, percent},
		{"Fuente del precio", report.PriceSource, 0},
		{"Ingreso total", income, currency},
		{"Ganancia estimada", profit, currency},
	}

	if err := setHeader(f, summarySheet, bold, "Variable", "Valor"); err != nil {
		return err
	}
	for i, row := range rows {
		n := i + 2
		if err := f.SetCellValue(summarySheet, fmt.Sprintf("A%d", n), row.variable); err != nil {
			return fmt.Errorf("write summary row %d: %w", n, err)
		}
		if err := f.SetCellValue(summarySheet, fmt.Sprintf("B%d", n), row.value); err != nil {
			return fmt.Errorf("write summary row %d: %w", n, err)
		}
		if row.style != 0 {
			cell := fmt.Sprintf("B%d", n)
			if err := f.SetCellStyle(summarySheet, cell, cell, row.style); err != nil {
				return fmt.Errorf("style summary row %d: %w", n, err)
			}
		}
	}

	if err := f.SetColWidth(summarySheet, "A", "A", 30); err != nil {
		return fmt.Errorf("widen summary columns: %w", err)
	}
	if err := f.SetColWidth(summarySheet, "B", "B", 24); err != nil {
		return fmt.Errorf("widen summary columns: %w", err)
	}
	return nil
}

func writeIngredients(f *excelize.File, order scaling.Order, bold, currency int) error {
	if err := setHeader(f, ingredientsSheet, bold,
		"Ingrediente", "Unidad", "Cantidad total", "Costo unitario usado (MXN)", "Costo total (MXN)"); err != nil {
		return err
	}

	for i, line := range order.Lines {
		n := i + 2
		values := []any{line.Ingredient, line.Unit, line.ScaledQty, line.CostPerUnit, line.LineCost}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, n)
			if err != nil {
				return fmt.Errorf("resolve ingredient cell: %w", err)
			}
			if err := f.SetCellValue(ingredientsSheet, cell, value); err != nil {
				return fmt.Errorf("write ingredient row %d: %w", n, err)
			}
		}
		for _, col := range []string{"D", "E"} {
			cell := fmt.Sprintf("%s%d", col, n)
			if err := f.SetCellStyle(ingredientsSheet, cell, cell, currency); err != nil {
				return fmt.Errorf("style ingredient row %d: %w", n, err)
			}
		}
	}

	if err := f.SetColWidth(ingredientsSheet, "A", "B", 28); err != nil {
		return fmt.Errorf("widen ingredient columns: %w", err)
	}
	if err := f.SetColWidth(ingredientsSheet, "C", "E", 20); err != nil {
		return fmt.Errorf("widen ingredient columns: %w", err)
	}
	return nil
}

func setHeader(f *excelize.File, sheet string, bold int, titles ...string) error {
	for i, title := range titles {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("resolve header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, title); err != nil {
			return fmt.Errorf("write header of %s: %w", sheet, err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, bold); err != nil {
			return fmt.Errorf("style header of %s: %w", sheet, err)
		}
	}
	return nil
}

func strPtr(s string) *string { return &s }
