// Package units resuelve unidades de compra y de uso para convertir precios
// entre ellas. La tabla cubre las unidades que aceptan los formularios de
// ingredientes (peso, volumen y pieza, con sus alias en español).
package units

import "strings"

// Category agrupa unidades convertibles entre sí. Convertir entre categorías
// distintas no tiene sentido aritmético y se trata como passthrough.
type Category string

const (
	Weight Category = "weight"
	Volume Category = "volume"
	Piece  Category = "piece"
)

// Unit describe una unidad de medida y su factor hacia la unidad base de su
// categoría (gramos, mililitros o piezas).
type Unit struct {
	Category Category
	ToBase   float64
}

var table = map[string]Unit{
	"kg":        {Weight, 1000},
	"kilogramo": {Weight, 1000},
	"kilo":      {Weight, 1000},
	"g":         {Weight, 1},
	"gramo":     {Weight, 1},
	"l":         {Volume, 1000},
	"lt":        {Volume, 1000},
	"litro":     {Volume, 1000},
	"ml":        {Volume, 1},
	"mililitro": {Volume, 1},
	"pza":       {Piece, 1},
	"pieza":     {Piece, 1},
	"pz":        {Piece, 1},
	"unidad":    {Piece, 1},
}

// Lookup resuelve el nombre de una unidad sin distinguir mayúsculas ni
// espacios alrededor. El segundo valor indica si la unidad es conocida.
func Lookup(name string) (Unit, bool) {
	u, ok := table[strings.ToLower(strings.TrimSpace(name))]
	return u, ok
}

// ConvertPrice convierte un precio por unidad `from` a precio por unidad `to`.
// Si alguna unidad es desconocida, o si las categorías no coinciden, devuelve
// el precio sin modificar: las unidades llegan de texto libre y el cálculo
// nunca debe fallar por una unidad mal escrita. Usa Compatible para detectar
// el caso passthrough cuando el caller quiera advertirlo.
func ConvertPrice(price float64, from, to string) float64 {
	fromUnit, okFrom := Lookup(from)
	toUnit, okTo := Lookup(to)
	if !okFrom || !okTo {
		return price
	}
	if fromUnit.Category != toUnit.Category {
		return price
	}

	pricePerBase := price / fromUnit.ToBase
	return pricePerBase * toUnit.ToBase
}

// Compatible informa si dos nombres de unidad resuelven a la misma categoría.
// Devuelve false también cuando alguna unidad es desconocida.
func Compatible(from, to string) bool {
	fromUnit, okFrom := Lookup(from)
	toUnit, okTo := Lookup(to)
	return okFrom && okTo && fromUnit.Category == toUnit.Category
}

// IngredientUnits son las unidades de uso que ofrece el editor de recetas.
var IngredientUnits = []string{"g", "ml", "pza"}

// DefaultIngredientUnit se aplica cuando una fila llega sin unidad.
const DefaultIngredientUnit = "g"
