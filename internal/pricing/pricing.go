// Package pricing calcula el costo unitario de un batch de producción y el
// precio sugerido de venta a partir de ingredientes, indirectos y mano de
// obra. Todas las funciones son puras: cada interacción recalcula desde los
// insumos actuales, sin estado intermedio.
package pricing

import "github.com/dulcehorno/rollos/internal/units"

// IngredientLine representa una materia prima capturada para un batch.
type IngredientLine struct {
	Name          string
	QtyPerBatch   float64
	Unit          string
	PurchasePrice float64
	PurchaseUnit  string
}

// LineCost contiene los derivados de una fila de ingrediente.
type LineCost struct {
	IngredientLine
	PricePerUnit  float64
	CostPerBatch  float64
	CostPerUnit   float64
	CrossCategory bool
}

// IngredientCosts agrupa el costeo de la lista completa de ingredientes.
// BatchSizeValid queda en false cuando el tamaño del batch no permite
// prorratear por unidad; los costos unitarios se reportan en 0 y el caller
// debe advertirlo, nunca fallar.
type IngredientCosts struct {
	Lines          []LineCost
	TotalBatchCost float64
	CostPerUnit    float64
	BatchSizeValid bool
}

// AggregateIngredients convierte el precio de compra de cada fila a la unidad
// de uso, acumula el costo del batch y lo prorratea al tamaño de batch dado.
func AggregateIngredients(lines []IngredientLine, batchSize float64) IngredientCosts {
	result := IngredientCosts{
		Lines:          make([]LineCost, 0, len(lines)),
		BatchSizeValid: batchSize > 0,
	}

	for _, line := range lines {
		cost := LineCost{
			IngredientLine: line,
			PricePerUnit:   units.ConvertPrice(line.PurchasePrice, line.PurchaseUnit, line.Unit),
			CrossCategory:  !units.Compatible(line.PurchaseUnit, line.Unit),
		}
		cost.CostPerBatch = line.QtyPerBatch * cost.PricePerUnit
		if result.BatchSizeValid {
			cost.CostPerUnit = cost.CostPerBatch / batchSize
		}
		result.Lines = append(result.Lines, cost)
		result.TotalBatchCost += cost.CostPerBatch
	}

	if result.BatchSizeValid {
		result.CostPerUnit = result.TotalBatchCost / batchSize
	}
	return result
}

// LaborPerUnit prorratea el costo de mano de obra de un batch a cada unidad
// producida. Con batch inválido devuelve 0 junto con el total del batch.
func LaborPerUnit(hoursPerBatch, hourlyRate, batchSize float64) (batchCost, unitCost float64) {
	batchCost = hoursPerBatch * hourlyRate
	if batchSize > 0 {
		unitCost = batchCost / batchSize
	}
	return batchCost, unitCost
}

// FixedOverheadPerUnit prorratea los costos fijos mensuales entre la
// producción mensual estimada. Con producción inválida devuelve 0.
func FixedOverheadPerUnit(monthlyFixed map[string]float64, monthlyOutput float64) (total, unitCost float64) {
	for _, amount := range monthlyFixed {
		total += amount
	}
	if monthlyOutput > 0 {
		unitCost = total / monthlyOutput
	}
	return total, unitCost
}

// VariableOverheadPerUnit suma los indirectos que ya están expresados por
// unidad (empaque, etiquetas, bolsas). No hay prorrateo.
func VariableOverheadPerUnit(perUnit map[string]float64) float64 {
	var total float64
	for _, amount := range perUnit {
		total += amount
	}
	return total
}

// MarginPresets son las fracciones de margen que ofrece el selector.
var MarginPresets = []float64{0.10, 0.20, 0.30, 0.40, 0.50, 1.00}

// MarginSelection elige entre un preset del selector o un margen capturado a
// mano. Custom debe marcarse explícitamente; un preset fuera de la lista no
// se interpreta como personalizado.
type MarginSelection struct {
	Preset         float64
	Custom         bool
	CustomFraction float64
}

// Fraction devuelve la fracción de margen efectiva de la selección.
func (m MarginSelection) Fraction() float64 {
	if m.Custom {
		return m.CustomFraction
	}
	return m.Preset
}

// Quote es el resultado final del costeo: costo total por unidad, precio
// sugerido con margen y, solo cuando hay impuesto configurado, el precio con
// impuesto. PriceWithTax en nil distingue "sin impuesto" de un impuesto de
// valor cero.
type Quote struct {
	TotalUnitCost  float64
	SuggestedPrice float64
	PriceWithTax   *float64
}

// Price combina los cuatro componentes de costo por unidad y aplica margen e
// impuesto.
func Price(ingredientCost, fixedOverhead, variableOverhead, laborCost, marginFraction, taxPercent float64) Quote {
	quote := Quote{
		TotalUnitCost: ingredientCost + fixedOverhead + variableOverhead + laborCost,
	}
	quote.SuggestedPrice = quote.TotalUnitCost * (1 + marginFraction)
	if taxPercent > 0 {
		withTax := quote.SuggestedPrice * (1 + taxPercent/100)
		quote.PriceWithTax = &withTax
	}
	return quote
}

// Shared es la foto de valores que la calculadora de precios comparte con el
// punto de equilibrio y el escalador. Los campos son opcionales: solo se
// llenan una vez calculados, y viajan de forma explícita entre vistas en
// lugar de vivir en estado global.
type Shared struct {
	SuggestedPrice    *float64
	UnitCost          *float64
	MonthlyFixedCosts *float64
	MarginFraction    *float64
}
