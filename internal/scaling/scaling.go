// Package scaling escala una receta guardada al tamaño de un pedido puntual
// y calcula el costo, precio y ganancia del pedido completo.
package scaling

import "github.com/dulcehorno/rollos/internal/recipes"

// Line es un ingrediente ya escalado al pedido.
type Line struct {
	Ingredient  string
	Unit        string
	ScaledQty   float64
	CostPerUnit float64
	LineCost    float64
	MissingCost bool
}

// Order es el resultado de escalar una receta. Conserva la cantidad pedida y
// el factor de escala para reportes posteriores (por ejemplo la exportación),
// de modo que el caller no los recalcule.
type Order struct {
	Lines     []Line
	OrderQty  int
	Factor    float64
	TotalCost float64
	UnitCost  float64
}

// Empty informa si el escalado no produjo resultado por precondiciones
// inválidas; el caller debe mostrar guía en vez de totales.
func (o Order) Empty() bool {
	return len(o.Lines) == 0
}

// MissingCosts lista los ingredientes sin costo unitario capturado, para
// advertir que el costo del pedido está incompleto.
func (o Order) MissingCosts() []string {
	var names []string
	for _, line := range o.Lines {
		if line.MissingCost {
			names = append(names, line.Ingredient)
		}
	}
	return names
}

// Scale escala linealmente las cantidades y costos de una receta a la
// cantidad pedida. Con receta sin rendimiento válido, pedido no positivo o
// sin ingredientes devuelve un Order explícitamente vacío; nunca falla por
// división entre cero.
func Scale(recipe recipes.Recipe, rows []recipes.Ingredient, orderQty int) Order {
	order := Order{OrderQty: orderQty}
	if recipe.UnitsPerBatch <= 0 || orderQty <= 0 || len(rows) == 0 {
		return order
	}

	order.Factor = float64(orderQty) / recipe.UnitsPerBatch
	order.Lines = make([]Line, 0, len(rows))
	for _, row := range rows {
		var cost float64
		if row.CostPerUnitQty != nil {
			cost = *row.CostPerUnitQty
		}
		line := Line{
			Ingredient:  row.Ingredient,
			Unit:        row.UnitQty,
			ScaledQty:   row.QtyPerBatch * order.Factor,
			CostPerUnit: cost,
			MissingCost: cost == 0,
		}
		line.LineCost = line.ScaledQty * line.CostPerUnit
		order.Lines = append(order.Lines, line)
		order.TotalCost += line.LineCost
	}
	order.UnitCost = order.TotalCost / float64(orderQty)
	return order
}

// Fuentes de precio unitario del pedido, en orden de prioridad.
const (
	PriceSourceReference = "Precio importado de la calculadora de precios"
	PriceSourceMargin    = "Margen aplicado"
	PriceSourceManual    = "Precio manual"
)

// ResolveUnitPrice decide el precio unitario del pedido: primero un precio de
// referencia externo positivo, después el costo unitario con margen cuando el
// margen está habilitado, y al final el precio manual capturado.
func ResolveUnitPrice(referencePrice *float64, applyMargin bool, marginFraction, orderUnitCost, manualPrice float64) (price float64, source string) {
	if referencePrice != nil && *referencePrice > 0 {
		return *referencePrice, PriceSourceReference
	}
	if applyMargin {
		return orderUnitCost * (1 + marginFraction), PriceSourceMargin
	}
	return manualPrice, PriceSourceManual
}

// Profit calcula la ganancia del pedido: ingreso total menos costo total.
func Profit(unitPrice float64, orderQty int, totalCost float64) float64 {
	return unitPrice*float64(orderQty) - totalCost
}

// EstimateCostPerUnit estima el costo por unidad producida de una receta a
// partir de sus ingredientes guardados. Devuelve nil cuando la receta no
// rinde, no tiene ingredientes o ningún ingrediente tiene costo.
func EstimateCostPerUnit(recipe recipes.Recipe, rows []recipes.Ingredient) *float64 {
	if recipe.UnitsPerBatch <= 0 || len(rows) == 0 {
		return nil
	}
	var total float64
	for _, row := range rows {
		if row.CostPerUnitQty != nil {
			total += row.QtyPerBatch * *row.CostPerUnitQty
		}
	}
	if total == 0 {
		return nil
	}
	estimate := total / recipe.UnitsPerBatch
	return &estimate
}
