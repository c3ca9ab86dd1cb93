// Package breakeven calcula el punto de equilibrio de la operación: margen
// de contribución, unidades y ventas necesarias para cubrir costos, y las
// unidades requeridas para una utilidad objetivo.
//
// Los resultados indefinidos (margen de contribución no positivo, volumen
// esperado inválido) se representan con NaN y deben verificarse con Defined
// antes de graficarse o exportarse.
package breakeven

import (
	"errors"
	"math"
)

// ErrNegativeBreakEven indica un punto de equilibrio negativo, posible solo
// con costos fijos negativos. Se reporta al usuario en vez de mostrarse.
var ErrNegativeBreakEven = errors.New("el punto de equilibrio resulta negativo; revisa tus costos")

// Result contiene el análisis de equilibrio para un precio, costo variable
// unitario y costos fijos dados.
type Result struct {
	ContributionMargin float64
	BreakEvenUnits     float64
	BreakEvenRevenue   float64
}

// Defined informa si el punto de equilibrio existe. Con margen de
// contribución no positivo no hay equilibrio posible y el caller debe
// explicar que el precio tiene que superar al costo variable.
func (r Result) Defined() bool {
	return !math.IsNaN(r.BreakEvenUnits)
}

// Compute calcula margen de contribución, unidades de equilibrio y ventas de
// equilibrio. Con mcu <= 0 las unidades y ventas quedan en NaN.
func Compute(price, unitVariableCost, fixedCosts float64) Result {
	mcu := price - unitVariableCost
	if mcu <= 0 {
		return Result{
			ContributionMargin: mcu,
			BreakEvenUnits:     math.NaN(),
			BreakEvenRevenue:   math.NaN(),
		}
	}

	qBE := fixedCosts / mcu
	return Result{
		ContributionMargin: mcu,
		BreakEvenUnits:     qBE,
		BreakEvenRevenue:   qBE * price,
	}
}

// Validate detecta la condición de equilibrio negativo sobre un resultado
// definido.
func (r Result) Validate() error {
	if r.Defined() && r.BreakEvenUnits < 0 {
		return ErrNegativeBreakEven
	}
	return nil
}

// UnitsForTargetProfit calcula cuántas unidades hay que vender para alcanzar
// una utilidad objetivo. NaN cuando el margen de contribución no es positivo.
// Solo tiene sentido llamarla con utilidad > 0.
func UnitsForTargetProfit(price, unitVariableCost, fixedCosts, targetProfit float64) float64 {
	mcu := price - unitVariableCost
	if mcu <= 0 {
		return math.NaN()
	}
	return (fixedCosts + targetProfit) / mcu
}

// SafetyMargin calcula qué fracción del volumen esperado está por encima del
// punto de equilibrio. NaN con volumen no positivo o equilibrio indefinido.
func SafetyMargin(expectedVolume, breakEvenUnits float64) float64 {
	if expectedVolume <= 0 || math.IsNaN(breakEvenUnits) {
		return math.NaN()
	}
	return (expectedVolume - breakEvenUnits) / expectedVolume
}
