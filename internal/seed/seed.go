// Package seed deja la base con una receta de ejemplo para que el primer
// arranque no muestre un catálogo vacío.
package seed

import (
	"database/sql"
	"fmt"
)

const defaultRecipeName = "Rollos clásicos"

// defaultIngredients son las filas de ejemplo del editor: cantidades de un
// batch de 24 rollos, costos aún por capturar.
var defaultIngredients = []struct {
	name string
	qty  float64
	unit string
}{
	{"Harina de trigo", 1200, "g"},
	{"Azúcar mascabado", 350, "g"},
	{"Mantequilla / canela", 420, "g"},
}

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
	Updates int
}

// Run executes the startup seed in an idempotent way.
func Run(db *sql.DB) (Stats, error) {
	tx, err := db.Begin()
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}

	if err := ensureDefaultRecipe(tx, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	return stats, nil
}

func ensureDefaultRecipe(tx *sql.Tx, stats *Stats) error {
	var exists bool
	if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM recipes WHERE name = ? LIMIT 1)`, defaultRecipeName).Scan(&exists); err != nil {
		return fmt.Errorf("check default recipe existence: %w", err)
	}
	if exists {
		return nil
	}

	var recipeID int64
	if err := tx.QueryRow(`
		INSERT INTO recipes (name, units_per_batch, notes)
		VALUES (?, ?, ?)
		RETURNING id
	`, defaultRecipeName, 24.0, "Receta de ejemplo; ajusta cantidades y captura costos.").Scan(&recipeID); err != nil {
		return fmt.Errorf("insert default recipe: %w", err)
	}
	stats.Inserts++

	for _, ing := range defaultIngredients {
		if _, err := tx.Exec(`
			INSERT INTO recipe_ingredients (recipe_id, ingredient, qty_per_batch, unit_qty, cost_per_unit_qty)
			VALUES (?, ?, ?, ?, NULL)
		`, recipeID, ing.name, ing.qty, ing.unit); err != nil {
			return fmt.Errorf("insert default ingredient %q: %w", ing.name, err)
		}
		stats.Inserts++
	}

	return nil
}
