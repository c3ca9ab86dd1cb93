package recipes

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	_ "modernc.org/sqlite"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	// Cada conexión nueva vería una base en memoria distinta.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA foreign_keys = ON`); err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}

	_, err = db.Exec(`
		CREATE TABLE recipes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT UNIQUE NOT NULL,
			units_per_batch REAL NOT NULL,
			notes TEXT
		);
		CREATE TABLE recipe_ingredients (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			recipe_id INTEGER NOT NULL,
			ingredient TEXT NOT NULL,
			qty_per_batch REAL NOT NULL,
			unit_qty TEXT NOT NULL,
			cost_per_unit_qty REAL,
			FOREIGN KEY(recipe_id) REFERENCES recipes(id) ON DELETE CASCADE
		);
	`)
	if err != nil {
		t.Fatalf("failed creating schema: %v", err)
	}

	return NewStore(db)
}

func floatPtr(v float64) *float64 { return &v }

func TestUpsertRecipe_Validation(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	var validationErr *ValidationError

	if _, err := store.UpsertRecipe(ctx, "   ", 24, ""); !errors.As(err, &validationErr) {
		t.Fatalf("blank name: expected ValidationError, got %v", err)
	}
	if _, err := store.UpsertRecipe(ctx, "Rollos clásicos", 0, ""); !errors.As(err, &validationErr) {
		t.Fatalf("zero units per batch: expected ValidationError, got %v", err)
	}
}

func TestUpsertRecipe_InsertThenUpdateByName(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.UpsertRecipe(ctx, "  Rollos clásicos  ", 24, "masa madre")
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	again, err := store.UpsertRecipe(ctx, "Rollos clásicos", 36, "")
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if again != id {
		t.Fatalf("upsert by name must keep the id: first=%d second=%d", id, again)
	}

	recipe, ok, err := store.GetRecipe(ctx, id)
	if err != nil || !ok {
		t.Fatalf("get recipe: ok=%v err=%v", ok, err)
	}
	if recipe.Name != "Rollos clásicos" {
		t.Fatalf("name must be stored trimmed, got %q", recipe.Name)
	}
	if recipe.UnitsPerBatch != 36 {
		t.Fatalf("units_per_batch must be replaced, got %v", recipe.UnitsPerBatch)
	}
	if recipe.Notes != "" {
		t.Fatalf("notes must be replaced wholesale, got %q", recipe.Notes)
	}
}

func TestReplaceIngredients_RoundTripAndSanitize(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.UpsertRecipe(ctx, "Rollos clásicos", 24, "")
	if err != nil {
		t.Fatalf("upsert recipe: %v", err)
	}

	// La fila en blanco se descarta, la sin unidad recibe "g" y la sin
	// costo queda NULL.
	rows := []Ingredient{
		{Ingredient: "Harina de trigo", QtyPerBatch: 1200, UnitQty: "g", CostPerUnitQty: floatPtr(0.38)},
		{Ingredient: "   ", QtyPerBatch: 99, UnitQty: "g"},
		{Ingredient: "Azúcar mascabado", QtyPerBatch: 350},
		{Ingredient: "Mantequilla / canela", QtyPerBatch: 420, UnitQty: "g"},
	}

	if err := store.ReplaceIngredients(ctx, id, rows); err != nil {
		t.Fatalf("replace ingredients: %v", err)
	}

	got, err := store.GetIngredients(ctx, id)
	if err != nil {
		t.Fatalf("get ingredients: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 sanitized rows, got %d: %+v", len(got), got)
	}
	if got[0].Ingredient != "Harina de trigo" || got[0].CostPerUnitQty == nil || *got[0].CostPerUnitQty != 0.38 {
		t.Fatalf("unexpected first row: %+v", got[0])
	}
	if got[1].UnitQty != "g" {
		t.Fatalf("missing unit must default to g, got %q", got[1].UnitQty)
	}
	if got[2].CostPerUnitQty != nil {
		t.Fatalf("unknown cost must stay NULL, got %v", *got[2].CostPerUnitQty)
	}
}

func TestReplaceIngredients_IdempotentOnRepeatedSubmission(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.UpsertRecipe(ctx, "Rollos clásicos", 24, "")
	if err != nil {
		t.Fatalf("upsert recipe: %v", err)
	}

	rows := []Ingredient{
		{Ingredient: "Harina de trigo", QtyPerBatch: 1200, UnitQty: "g", CostPerUnitQty: floatPtr(0.38)},
		{Ingredient: "Azúcar mascabado", QtyPerBatch: 350, UnitQty: "g", CostPerUnitQty: floatPtr(0.048)},
	}

	for i := 0; i < 5; i++ {
		if err := store.ReplaceIngredients(ctx, id, rows); err != nil {
			t.Fatalf("replace (iteration=%d): %v", i, err)
		}
	}

	got, err := store.GetIngredients(ctx, id)
	if err != nil {
		t.Fatalf("get ingredients: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("repeated submission must not accumulate rows, got %d", len(got))
	}
}

func TestReplaceIngredients_NegativeQtyRejected(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.UpsertRecipe(ctx, "Rollos clásicos", 24, "")
	if err != nil {
		t.Fatalf("upsert recipe: %v", err)
	}

	var validationErr *ValidationError
	err = store.ReplaceIngredients(ctx, id, []Ingredient{
		{Ingredient: "Harina de trigo", QtyPerBatch: -1, UnitQty: "g"},
	})
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError for negative qty, got %v", err)
	}
}

func TestListRecipes_OrderedByNameCaseInsensitive(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"zanahoria", "Arándano", "canela"} {
		if _, err := store.UpsertRecipe(ctx, name, 24, ""); err != nil {
			t.Fatalf("upsert %q: %v", name, err)
		}
	}

	recipes, err := store.ListRecipes(ctx)
	if err != nil {
		t.Fatalf("list recipes: %v", err)
	}
	if len(recipes) != 3 {
		t.Fatalf("expected 3 recipes, got %d", len(recipes))
	}
	if recipes[0].Name != "Arándano" || recipes[1].Name != "canela" || recipes[2].Name != "zanahoria" {
		t.Fatalf("recipes are not sorted case-insensitively: %+v", recipes)
	}
}

func TestDeleteRecipe_CascadesToIngredients(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.UpsertRecipe(ctx, "Rollos clásicos", 24, "")
	if err != nil {
		t.Fatalf("upsert recipe: %v", err)
	}
	if err := store.ReplaceIngredients(ctx, id, []Ingredient{
		{Ingredient: "Harina de trigo", QtyPerBatch: 1200, UnitQty: "g"},
	}); err != nil {
		t.Fatalf("replace ingredients: %v", err)
	}

	if err := store.DeleteRecipe(ctx, id); err != nil {
		t.Fatalf("delete recipe: %v", err)
	}

	if _, ok, err := store.GetRecipe(ctx, id); err != nil || ok {
		t.Fatalf("recipe must be gone: ok=%v err=%v", ok, err)
	}
	got, err := store.GetIngredients(ctx, id)
	if err != nil {
		t.Fatalf("get ingredients after delete: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("ingredient rows must cascade on delete, got %d", len(got))
	}
}

func TestGetRecipe_MissingIsNotAnError(t *testing.T) {
	store := newTestStore(t)

	_, ok, err := store.GetRecipe(context.Background(), 999)
	if err != nil {
		t.Fatalf("missing recipe must not error: %v", err)
	}
	if ok {
		t.Fatal("missing recipe reported as found")
	}
}
