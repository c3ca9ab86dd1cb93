package units

import (
	"math"
	"testing"
)

func nearlyEqual(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("%s = %v, want %v", name, got, want)
	}
}

func TestConvertPrice_SameUnitIsIdentity(t *testing.T) {
	for _, unit := range []string{"kg", "g", "l", "ml", "pza", "unidad"} {
		nearlyEqual(t, "ConvertPrice(42, "+unit+", "+unit+")", ConvertPrice(42, unit, unit), 42)
	}
}

func TestConvertPrice_KilogramToGram(t *testing.T) {
	// 380 MXN por kilo de harina son 0.38 MXN por gramo.
	nearlyEqual(t, "kg->g", ConvertPrice(380, "kg", "g"), 0.38)
	nearlyEqual(t, "g->kg", ConvertPrice(0.38, "g", "kg"), 380)
}

func TestConvertPrice_LiterToMilliliter(t *testing.T) {
	nearlyEqual(t, "l->ml", ConvertPrice(25, "l", "ml"), 0.025)
	nearlyEqual(t, "lt->litro", ConvertPrice(25, "lt", "litro"), 25)
}

func TestConvertPrice_SpanishAliases(t *testing.T) {
	nearlyEqual(t, "kilogramo->gramo", ConvertPrice(380, "kilogramo", "gramo"), 0.38)
	nearlyEqual(t, "pieza->pza", ConvertPrice(12, "pieza", "pza"), 12)
}

func TestConvertPrice_TrimsAndIgnoresCase(t *testing.T) {
	nearlyEqual(t, "' KG '->g", ConvertPrice(380, " KG ", "g"), 0.38)
	nearlyEqual(t, "Litro->ML", ConvertPrice(18, "Litro", "ML"), 0.018)
}

func TestConvertPrice_CrossCategoryPassthrough(t *testing.T) {
	nearlyEqual(t, "kg->pza", ConvertPrice(380, "kg", "pza"), 380)
	nearlyEqual(t, "ml->g", ConvertPrice(9, "ml", "g"), 9)
}

func TestConvertPrice_UnknownUnitPassthrough(t *testing.T) {
	nearlyEqual(t, "costal->g", ConvertPrice(770, "costal", "g"), 770)
	nearlyEqual(t, "kg->manojo", ConvertPrice(770, "kg", "manojo"), 770)
	nearlyEqual(t, "empty units", ConvertPrice(770, "", ""), 770)
}

func TestCompatible(t *testing.T) {
	if !Compatible("kg", "gramo") {
		t.Fatal("kg and gramo should be compatible")
	}
	if Compatible("kg", "ml") {
		t.Fatal("kg and ml must not be compatible")
	}
	if Compatible("costal", "g") {
		t.Fatal("unknown units must not be compatible")
	}
}

func TestLookup(t *testing.T) {
	u, ok := Lookup("  Kilo ")
	if !ok {
		t.Fatal("expected kilo to resolve")
	}
	if u.Category != Weight || u.ToBase != 1000 {
		t.Fatalf("unexpected unit data: %+v", u)
	}

	if _, ok := Lookup("onza"); ok {
		t.Fatal("onza is not in the table")
	}
}
