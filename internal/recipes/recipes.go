// Package recipes persiste recetas con sus ingredientes en SQLite y define
// la taxonomía de errores que el resto del servicio reutiliza.
package recipes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dulcehorno/rollos/internal/units"
)

// ErrStorage envuelve cualquier falla del motor de almacenamiento. Los
// detalles del driver se registran en el log; al caller solo le llega este
// error genérico para que la capa de presentación muestre un mensaje
// consistente.
var ErrStorage = errors.New("error de almacenamiento de recetas")

// ValidationError señala entrada inválida del usuario. Se detecta en la
// frontera, antes de tocar la base de datos.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Recipe es una receta guardada: cuántas unidades rinde un batch y sus notas.
type Recipe struct {
	ID            int64
	Name          string
	UnitsPerBatch float64
	Notes         string
}

// Ingredient es una fila de ingrediente de una receta. CostPerUnitQty en nil
// significa "costo todavía desconocido", distinto de costo cero.
type Ingredient struct {
	ID             int64
	Ingredient     string
	QtyPerBatch    float64
	UnitQty        string
	CostPerUnitQty *float64
}

// Store opera el esquema recipes/recipe_ingredients sobre una conexión
// SQLite ya migrada.
type Store struct {
	db *sql.DB
}

// NewStore construye un Store sobre la base dada.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// UpsertRecipe crea o reemplaza una receta por nombre y devuelve su id. El
// nombre se guarda recortado; unidades por batch debe ser positivo.
func (s *Store) UpsertRecipe(ctx context.Context, name string, unitsPerBatch float64, notes string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, &ValidationError{Field: "name", Message: "el nombre de la receta no puede estar vacío"}
	}
	if unitsPerBatch <= 0 {
		return 0, &ValidationError{Field: "units_per_batch", Message: "las unidades por batch deben ser mayores a cero"}
	}

	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO recipes (name, units_per_batch, notes)
		VALUES (?, ?, ?)
		ON CONFLICT(name)
		DO UPDATE SET units_per_batch = excluded.units_per_batch,
		              notes = excluded.notes
		RETURNING id
	`, name, unitsPerBatch, nullableText(notes)).Scan(&id)
	if err != nil {
		slog.Error("no pude guardar la receta", "op", "UpsertRecipe", "name", name, "error", err)
		return 0, fmt.Errorf("%w: guardar receta", ErrStorage)
	}
	return id, nil
}

// ReplaceIngredients reemplaza por completo los ingredientes de una receta en
// una sola transacción: borra lo existente e inserta el set saneado. Así la
// lista persistida siempre es exactamente la última enviada, sin filas
// huérfanas.
//
// Saneo: filas con ingrediente en blanco se descartan; la unidad vacía se
// sustituye por "g"; el costo es opcional.
func (s *Store) ReplaceIngredients(ctx context.Context, recipeID int64, rows []Ingredient) error {
	sanitized := make([]Ingredient, 0, len(rows))
	for _, row := range rows {
		row.Ingredient = strings.TrimSpace(row.Ingredient)
		if row.Ingredient == "" {
			continue
		}
		if row.QtyPerBatch < 0 {
			return &ValidationError{Field: "qty_per_batch", Message: "cada ingrediente debe tener una cantidad mayor o igual a cero"}
		}
		row.UnitQty = strings.TrimSpace(row.UnitQty)
		if row.UnitQty == "" {
			row.UnitQty = units.DefaultIngredientUnit
		}
		sanitized = append(sanitized, row)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		slog.Error("no pude abrir la transacción de ingredientes", "op", "ReplaceIngredients", "recipe_id", recipeID, "error", err)
		return fmt.Errorf("%w: actualizar ingredientes", ErrStorage)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM recipe_ingredients WHERE recipe_id = ?`, recipeID); err != nil {
		slog.Error("no pude limpiar los ingredientes previos", "op", "ReplaceIngredients", "recipe_id", recipeID, "error", err)
		return fmt.Errorf("%w: actualizar ingredientes", ErrStorage)
	}

	for _, row := range sanitized {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO recipe_ingredients (recipe_id, ingredient, qty_per_batch, unit_qty, cost_per_unit_qty)
			VALUES (?, ?, ?, ?, ?)
		`, recipeID, row.Ingredient, row.QtyPerBatch, row.UnitQty, row.CostPerUnitQty)
		if err != nil {
			slog.Error("no pude insertar un ingrediente", "op", "ReplaceIngredients", "recipe_id", recipeID, "ingredient", row.Ingredient, "error", err)
			return fmt.Errorf("%w: actualizar ingredientes", ErrStorage)
		}
	}

	if err := tx.Commit(); err != nil {
		slog.Error("no pude confirmar la transacción de ingredientes", "op", "ReplaceIngredients", "recipe_id", recipeID, "error", err)
		return fmt.Errorf("%w: actualizar ingredientes", ErrStorage)
	}
	return nil
}

// GetRecipe recupera una receta por id. El segundo valor indica si existe.
func (s *Store) GetRecipe(ctx context.Context, id int64) (Recipe, bool, error) {
	var (
		recipe Recipe
		notes  sql.NullString
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, units_per_batch, notes
		FROM recipes
		WHERE id = ?
	`, id).Scan(&recipe.ID, &recipe.Name, &recipe.UnitsPerBatch, &notes)
	if errors.Is(err, sql.ErrNoRows) {
		return Recipe{}, false, nil
	}
	if err != nil {
		slog.Error("no pude obtener la receta", "op", "GetRecipe", "recipe_id", id, "error", err)
		return Recipe{}, false, fmt.Errorf("%w: consultar receta", ErrStorage)
	}
	recipe.Notes = notes.String
	return recipe, true, nil
}

// GetIngredients devuelve los ingredientes de una receta en orden de captura.
func (s *Store) GetIngredients(ctx context.Context, recipeID int64) ([]Ingredient, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, ingredient, qty_per_batch, unit_qty, cost_per_unit_qty
		FROM recipe_ingredients
		WHERE recipe_id = ?
		ORDER BY id
	`, recipeID)
	if err != nil {
		slog.Error("no pude obtener los ingredientes", "op", "GetIngredients", "recipe_id", recipeID, "error", err)
		return nil, fmt.Errorf("%w: consultar ingredientes", ErrStorage)
	}
	defer rows.Close()

	ingredients := make([]Ingredient, 0)
	for rows.Next() {
		var (
			row  Ingredient
			cost sql.NullFloat64
		)
		if err := rows.Scan(&row.ID, &row.Ingredient, &row.QtyPerBatch, &row.UnitQty, &cost); err != nil {
			slog.Error("no pude leer una fila de ingrediente", "op", "GetIngredients", "recipe_id", recipeID, "error", err)
			return nil, fmt.Errorf("%w: consultar ingredientes", ErrStorage)
		}
		if cost.Valid {
			row.CostPerUnitQty = &cost.Float64
		}
		ingredients = append(ingredients, row)
	}
	if err := rows.Err(); err != nil {
		slog.Error("no pude recorrer los ingredientes", "op", "GetIngredients", "recipe_id", recipeID, "error", err)
		return nil, fmt.Errorf("%w: consultar ingredientes", ErrStorage)
	}
	return ingredients, nil
}

// ListRecipes devuelve todas las recetas ordenadas por nombre sin distinguir
// mayúsculas.
func (s *Store) ListRecipes(ctx context.Context) ([]Recipe, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, units_per_batch, COALESCE(notes, '')
		FROM recipes
		ORDER BY name COLLATE NOCASE
	`)
	if err != nil {
		slog.Error("no pude listar las recetas", "op", "ListRecipes", "error", err)
		return nil, fmt.Errorf("%w: listar recetas", ErrStorage)
	}
	defer rows.Close()

	recipes := make([]Recipe, 0)
	for rows.Next() {
		var recipe Recipe
		if err := rows.Scan(&recipe.ID, &recipe.Name, &recipe.UnitsPerBatch, &recipe.Notes); err != nil {
			slog.Error("no pude leer una receta", "op", "ListRecipes", "error", err)
			return nil, fmt.Errorf("%w: listar recetas", ErrStorage)
		}
		recipes = append(recipes, recipe)
	}
	if err := rows.Err(); err != nil {
		slog.Error("no pude recorrer las recetas", "op", "ListRecipes", "error", err)
		return nil, fmt.Errorf("%w: listar recetas", ErrStorage)
	}
	return recipes, nil
}

// DeleteRecipe elimina una receta; la llave foránea con ON DELETE CASCADE
// arrastra sus ingredientes.
func (s *Store) DeleteRecipe(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM recipes WHERE id = ?`, id); err != nil {
		slog.Error("no pude eliminar la receta", "op", "DeleteRecipe", "recipe_id", id, "error", err)
		return fmt.Errorf("%w: eliminar receta", ErrStorage)
	}
	return nil
}

func nullableText(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}
