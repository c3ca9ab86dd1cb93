package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-chi/chi/v5"

	"github.com/dulcehorno/rollos/internal/breakeven"
	"github.com/dulcehorno/rollos/internal/export"
	"github.com/dulcehorno/rollos/internal/pricing"
	"github.com/dulcehorno/rollos/internal/recipes"
	"github.com/dulcehorno/rollos/internal/scaling"
)

const storageErrMessage = "No pude completar la operación de almacenamiento. Intenta de nuevo."

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "cuerpo JSON inválido")
		return false
	}
	return true
}

// storeError traduce la taxonomía del paquete recipes a HTTP: entrada
// inválida a 400 con el mensaje del campo, cualquier falla de almacenamiento
// a 500 con un único mensaje genérico.
func storeError(w http.ResponseWriter, err error) {
	var validationErr *recipes.ValidationError
	if errors.As(err, &validationErr) {
		writeError(w, http.StatusBadRequest, validationErr.Message)
		return
	}
	writeError(w, http.StatusInternalServerError, storageErrMessage)
}

func (s *server) handleMeta(w http.ResponseWriter, r *http.Request) {
	meta := map[string]any{
		"service":    "rollos",
		"ai_enabled": s.cfg.AIEnabled(),
	}
	if !s.cfg.AIEnabled() {
		meta["ai_message"] = "Configura GEMINI_API_KEY en tu entorno para habilitar el análisis con IA."
	}
	writeJSON(w, http.StatusOK, meta)
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// --- Calculadora de precios ---

type ingredientLineRequest struct {
	Name          string  `json:"name"`
	QtyPerBatch   float64 `json:"qty_per_batch"`
	Unit          string  `json:"unit"`
	PurchasePrice float64 `json:"purchase_price"`
	PurchaseUnit  string  `json:"purchase_unit"`
}

type marginRequest struct {
	PresetPercent float64 `json:"preset_percent"`
	Custom        bool    `json:"custom"`
	CustomPercent float64 `json:"custom_percent"`
}

type quoteRequest struct {
	BatchSize         float64                 `json:"batch_size"`
	Ingredients       []ingredientLineRequest `json:"ingredients"`
	FixedOverheads    map[string]float64      `json:"fixed_overheads"`
	MonthlyOutput     float64                 `json:"monthly_output"`
	VariableOverheads map[string]float64      `json:"variable_overheads"`
	HoursPerBatch     float64                 `json:"hours_per_batch"`
	HourlyRate        float64                 `json:"hourly_rate"`
	Margin            marginRequest           `json:"margin"`
	TaxPercent        float64                 `json:"tax_percent"`
}

type quoteLineResponse struct {
	Name         string  `json:"name"`
	QtyPerBatch  float64 `json:"qty_per_batch"`
	Unit         string  `json:"unit"`
	PricePerUnit float64 `json:"price_per_unit"`
	CostPerBatch float64 `json:"cost_per_batch"`
	CostPerUnit  float64 `json:"cost_per_unit"`
}

type quoteResponse struct {
	Lines                   []quoteLineResponse `json:"lines"`
	TotalBatchCost          float64             `json:"total_batch_cost"`
	IngredientCostPerUnit   float64             `json:"ingredient_cost_per_unit"`
	FixedOverheadPerUnit    float64             `json:"fixed_overhead_per_unit"`
	VariableOverheadPerUnit float64             `json:"variable_overhead_per_unit"`
	LaborCostPerUnit        float64             `json:"labor_cost_per_unit"`
	TotalUnitCost           float64             `json:"total_unit_cost"`
	SuggestedPrice          float64             `json:"suggested_price"`
	PriceWithTax            *float64            `json:"price_with_tax"`
	Warnings                []string            `json:"warnings"`
}

func marginFraction(req marginRequest) (float64, error) {
	if req.Custom {
		if req.CustomPercent < 0 {
			return 0, fmt.Errorf("el margen personalizado debe ser mayor o igual a 0")
		}
		return req.CustomPercent / 100, nil
	}
	for _, preset := range pricing.MarginPresets {
		if math.Abs(preset-req.PresetPercent/100) < 1e-9 {
			return preset, nil
		}
	}
	return 0, fmt.Errorf("margen %v%% no reconocido; usa un preset o marca custom", req.PresetPercent)
}

func validateQuoteRequest(req quoteRequest) error {
	for _, line := range req.Ingredients {
		if strings.TrimSpace(line.Name) == "" {
			return fmt.Errorf("cada ingrediente necesita un nombre")
		}
		if line.QtyPerBatch < 0 {
			return fmt.Errorf("la cantidad de %q debe ser mayor o igual a 0", line.Name)
		}
		if line.PurchasePrice < 0 {
			return fmt.Errorf("el precio de compra de %q debe ser mayor o igual a 0", line.Name)
		}
	}
	for name, amount := range req.FixedOverheads {
		if amount < 0 {
			return fmt.Errorf("el costo fijo %q debe ser mayor o igual a 0", name)
		}
	}
	for name, amount := range req.VariableOverheads {
		if amount < 0 {
			return fmt.Errorf("el indirecto variable %q debe ser mayor o igual a 0", name)
		}
	}
	if req.HoursPerBatch < 0 || req.HourlyRate < 0 {
		return fmt.Errorf("horas y sueldo por hora deben ser mayores o iguales a 0")
	}
	if req.TaxPercent < 0 || req.TaxPercent > 100 {
		return fmt.Errorf("el impuesto debe estar entre 0 y 100")
	}
	return nil
}

func (s *server) handlePricingQuote(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := validateQuoteRequest(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	margin, err := marginFraction(req.Margin)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	lines := make([]pricing.IngredientLine, 0, len(req.Ingredients))
	for _, line := range req.Ingredients {
		lines = append(lines, pricing.IngredientLine{
			Name:          strings.TrimSpace(line.Name),
			QtyPerBatch:   line.QtyPerBatch,
			Unit:          line.Unit,
			PurchasePrice: line.PurchasePrice,
			PurchaseUnit:  line.PurchaseUnit,
		})
	}

	costs := pricing.AggregateIngredients(lines, req.BatchSize)
	fixedTotal, fixedPerUnit := pricing.FixedOverheadPerUnit(req.FixedOverheads, req.MonthlyOutput)
	variablePerUnit := pricing.VariableOverheadPerUnit(req.VariableOverheads)
	_, laborPerUnit := pricing.LaborPerUnit(req.HoursPerBatch, req.HourlyRate, req.BatchSize)

	quote := pricing.Price(costs.CostPerUnit, fixedPerUnit, variablePerUnit, laborPerUnit, margin, req.TaxPercent)

	warnings := make([]string, 0)
	if !costs.BatchSizeValid {
		warnings = append(warnings, "El tamaño del batch debe ser mayor a 0 para obtener costos unitarios.")
	}
	if len(req.FixedOverheads) > 0 && req.MonthlyOutput <= 0 {
		warnings = append(warnings, "Captura la producción mensual estimada para prorratear los costos fijos.")
	}
	resp := quoteResponse{
		Lines:                   make([]quoteLineResponse, 0, len(costs.Lines)),
		TotalBatchCost:          costs.TotalBatchCost,
		IngredientCostPerUnit:   costs.CostPerUnit,
		FixedOverheadPerUnit:    fixedPerUnit,
		VariableOverheadPerUnit: variablePerUnit,
		LaborCostPerUnit:        laborPerUnit,
		TotalUnitCost:           quote.TotalUnitCost,
		SuggestedPrice:          quote.SuggestedPrice,
		PriceWithTax:            quote.PriceWithTax,
		Warnings:                warnings,
	}
	for _, line := range costs.Lines {
		if line.CrossCategory {
			resp.Warnings = append(resp.Warnings,
				fmt.Sprintf("Las unidades de %q no son convertibles entre sí; el precio se usó sin convertir.", line.Name))
		}
		resp.Lines = append(resp.Lines, quoteLineResponse{
			Name:         line.Name,
			QtyPerBatch:  line.QtyPerBatch,
			Unit:         line.Unit,
			PricePerUnit: line.PricePerUnit,
			CostPerBatch: line.CostPerBatch,
			CostPerUnit:  line.CostPerUnit,
		})
	}

	// Comparte los resultados con el punto de equilibrio y el escalador.
	s.mu.Lock()
	suggested := quote.SuggestedPrice
	unitCost := quote.TotalUnitCost
	marginCopy := margin
	s.shared.SuggestedPrice = &suggested
	s.shared.UnitCost = &unitCost
	s.shared.MarginFraction = &marginCopy
	if len(req.FixedOverheads) > 0 {
		fixed := fixedTotal
		s.shared.MonthlyFixedCosts = &fixed
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, resp)
}

// --- Punto de equilibrio ---

type breakEvenRequest struct {
	UnitPrice        *float64 `json:"unit_price"`
	UnitVariableCost *float64 `json:"unit_variable_cost"`
	FixedCosts       *float64 `json:"fixed_costs"`
	TargetProfit     float64  `json:"target_profit"`
	ExpectedVolume   float64  `json:"expected_volume"`
}

type breakEvenResponse struct {
	ContributionMargin   float64  `json:"contribution_margin"`
	BreakEvenUnits       float64  `json:"break_even_units"`
	BreakEvenRevenue     float64  `json:"break_even_revenue"`
	UnitsForTargetProfit *float64 `json:"units_for_target_profit,omitempty"`
	SafetyMargin         *float64 `json:"safety_margin,omitempty"`
}

// resolveBreakEvenInputs completa los campos ausentes del request con la foto
// compartida por la calculadora de precios.
func (s *server) resolveBreakEvenInputs(req breakEvenRequest) (price, cvu, cf float64, err error) {
	s.mu.Lock()
	shared := s.shared
	s.mu.Unlock()

	if req.UnitPrice == nil {
		req.UnitPrice = shared.SuggestedPrice
	}
	if req.UnitVariableCost == nil {
		req.UnitVariableCost = shared.UnitCost
	}
	if req.FixedCosts == nil {
		req.FixedCosts = shared.MonthlyFixedCosts
	}

	if req.UnitPrice == nil || req.UnitVariableCost == nil || req.FixedCosts == nil {
		return 0, 0, 0, fmt.Errorf("faltan supuestos: precio unitario, costo variable unitario y costos fijos")
	}
	return *req.UnitPrice, *req.UnitVariableCost, *req.FixedCosts, nil
}

func (s *server) handleBreakEven(w http.ResponseWriter, r *http.Request) {
	var req breakEvenRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	price, cvu, cf, err := s.resolveBreakEvenInputs(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result := breakeven.Compute(price, cvu, cf)
	if !result.Defined() {
		writeError(w, http.StatusUnprocessableEntity,
			"El precio debe superar al costo variable unitario para alcanzar el equilibrio.")
		return
	}
	if err := result.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	resp := breakEvenResponse{
		ContributionMargin: result.ContributionMargin,
		BreakEvenUnits:     result.BreakEvenUnits,
		BreakEvenRevenue:   result.BreakEvenRevenue,
	}
	if req.TargetProfit > 0 {
		required := breakeven.UnitsForTargetProfit(price, cvu, cf, req.TargetProfit)
		resp.UnitsForTargetProfit = &required
	}
	if margin := breakeven.SafetyMargin(req.ExpectedVolume, result.BreakEvenUnits); !math.IsNaN(margin) {
		resp.SafetyMargin = &margin
	}

	writeJSON(w, http.StatusOK, resp)
}

// --- Recetas ---

type recipeIngredientPayload struct {
	Ingredient     string   `json:"ingredient"`
	QtyPerBatch    float64  `json:"qty_per_batch"`
	UnitQty        string   `json:"unit_qty"`
	CostPerUnitQty *float64 `json:"cost_per_unit_qty"`
}

type recipeSaveRequest struct {
	Name          string                    `json:"name"`
	UnitsPerBatch float64                   `json:"units_per_batch"`
	Notes         string                    `json:"notes"`
	Ingredients   []recipeIngredientPayload `json:"ingredients"`
}

type recipeResponse struct {
	ID            int64                     `json:"id"`
	Name          string                    `json:"name"`
	UnitsPerBatch float64                   `json:"units_per_batch"`
	Notes         string                    `json:"notes"`
	Ingredients   []recipeIngredientPayload `json:"ingredients,omitempty"`
}

func parseRecipeID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "id de receta inválido")
		return 0, false
	}
	return id, true
}

func ingredientPayloads(rows []recipes.Ingredient) []recipeIngredientPayload {
	payloads := make([]recipeIngredientPayload, 0, len(rows))
	for _, row := range rows {
		payloads = append(payloads, recipeIngredientPayload{
			Ingredient:     row.Ingredient,
			QtyPerBatch:    row.QtyPerBatch,
			UnitQty:        row.UnitQty,
			CostPerUnitQty: row.CostPerUnitQty,
		})
	}
	return payloads
}

func (s *server) handleRecipesList(w http.ResponseWriter, r *http.Request) {
	list, err := s.store.ListRecipes(r.Context())
	if err != nil {
		storeError(w, err)
		return
	}

	resp := make([]recipeResponse, 0, len(list))
	for _, recipe := range list {
		resp = append(resp, recipeResponse{
			ID:            recipe.ID,
			Name:          recipe.Name,
			UnitsPerBatch: recipe.UnitsPerBatch,
			Notes:         recipe.Notes,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *server) handleRecipeSave(w http.ResponseWriter, r *http.Request) {
	var req recipeSaveRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	rows := make([]recipes.Ingredient, 0, len(req.Ingredients))
	hasIngredient := false
	for _, payload := range req.Ingredients {
		if strings.TrimSpace(payload.Ingredient) != "" {
			hasIngredient = true
		}
		rows = append(rows, recipes.Ingredient{
			Ingredient:     payload.Ingredient,
			QtyPerBatch:    payload.QtyPerBatch,
			UnitQty:        payload.UnitQty,
			CostPerUnitQty: payload.CostPerUnitQty,
		})
	}
	if !hasIngredient {
		writeError(w, http.StatusBadRequest, "agrega al menos un ingrediente")
		return
	}

	id, err := s.store.UpsertRecipe(r.Context(), req.Name, req.UnitsPerBatch, req.Notes)
	if err != nil {
		storeError(w, err)
		return
	}
	if err := s.store.ReplaceIngredients(r.Context(), id, rows); err != nil {
		storeError(w, err)
		return
	}

	s.writeRecipe(w, r, id, http.StatusOK)
}

func (s *server) handleRecipeGet(w http.ResponseWriter, r *http.Request) {
	id, ok := parseRecipeID(w, r)
	if !ok {
		return
	}
	s.writeRecipe(w, r, id, http.StatusOK)
}

func (s *server) writeRecipe(w http.ResponseWriter, r *http.Request, id int64, status int) {
	recipe, found, err := s.store.GetRecipe(r.Context(), id)
	if err != nil {
		storeError(w, err)
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "receta no encontrada")
		return
	}
	rows, err := s.store.GetIngredients(r.Context(), id)
	if err != nil {
		storeError(w, err)
		return
	}

	writeJSON(w, status, recipeResponse{
		ID:            recipe.ID,
		Name:          recipe.Name,
		UnitsPerBatch: recipe.UnitsPerBatch,
		Notes:         recipe.Notes,
		Ingredients:   ingredientPayloads(rows),
	})
}

func (s *server) handleRecipeDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseRecipeID(w, r)
	if !ok {
		return
	}
	if err := s.store.DeleteRecipe(r.Context(), id); err != nil {
		storeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- Escalador de pedidos ---

type scaleRequest struct {
	OrderQty       int      `json:"order_qty"`
	MarginPercent  *float64 `json:"margin_percent"`
	ApplyMargin    *bool    `json:"apply_margin"`
	ReferencePrice *float64 `json:"reference_price"`
	ManualPrice    float64  `json:"manual_price"`
}

type scaleLineResponse struct {
	Ingredient  string  `json:"ingredient"`
	Unit        string  `json:"unit"`
	ScaledQty   float64 `json:"scaled_qty"`
	CostPerUnit float64 `json:"cost_per_unit"`
	LineCost    float64 `json:"line_cost"`
}

type scaleResponse struct {
	OrderQty     int                 `json:"order_qty"`
	Factor       float64             `json:"factor"`
	Lines        []scaleLineResponse `json:"lines"`
	TotalCost    float64             `json:"total_cost"`
	UnitCost     float64             `json:"unit_cost"`
	UnitPrice    float64             `json:"unit_price"`
	PriceSource  string              `json:"price_source"`
	TotalIncome  float64             `json:"total_income"`
	Profit       float64             `json:"profit"`
	MissingCosts []string            `json:"missing_costs,omitempty"`
}

// scaleOrder carga la receta y produce el pedido escalado; centraliza los
// guards compartidos entre el endpoint de escalado y el de exportación.
func (s *server) scaleOrder(w http.ResponseWriter, r *http.Request, id int64, orderQty int) (recipes.Recipe, scaling.Order, bool) {
	recipe, found, err := s.store.GetRecipe(r.Context(), id)
	if err != nil {
		storeError(w, err)
		return recipes.Recipe{}, scaling.Order{}, false
	}
	if !found {
		writeError(w, http.StatusNotFound, "receta no encontrada")
		return recipes.Recipe{}, scaling.Order{}, false
	}
	if orderQty <= 0 {
		writeError(w, http.StatusBadRequest, "las unidades del pedido deben ser mayores a cero")
		return recipes.Recipe{}, scaling.Order{}, false
	}

	rows, err := s.store.GetIngredients(r.Context(), id)
	if err != nil {
		storeError(w, err)
		return recipes.Recipe{}, scaling.Order{}, false
	}

	order := scaling.Scale(recipe, rows, orderQty)
	if order.Empty() {
		switch {
		case recipe.UnitsPerBatch <= 0:
			writeError(w, http.StatusUnprocessableEntity, "la receta no tiene unidades por batch válidas")
		default:
			writeError(w, http.StatusUnprocessableEntity, "esta receta no tiene ingredientes registrados aún")
		}
		return recipes.Recipe{}, scaling.Order{}, false
	}
	return recipe, order, true
}

// resolveScalePrice aplica la política de precio del pedido con los defaults
// del request: margen del 30% aplicado salvo indicación contraria. Devuelve
// también el margen que consideró, para que los reportes muestren el mismo
// valor con el que se fijó el precio.
func (s *server) resolveScalePrice(req scaleRequest, order scaling.Order) (price float64, source string, margin float64) {
	margin = 0.30
	if req.MarginPercent != nil {
		margin = *req.MarginPercent / 100
	} else {
		s.mu.Lock()
		if s.shared.MarginFraction != nil {
			margin = *s.shared.MarginFraction
		}
		s.mu.Unlock()
	}
	applyMargin := true
	if req.ApplyMargin != nil {
		applyMargin = *req.ApplyMargin
	}
	price, source = scaling.ResolveUnitPrice(req.ReferencePrice, applyMargin, margin, order.UnitCost, req.ManualPrice)
	return price, source, margin
}

func (s *server) handleRecipeScale(w http.ResponseWriter, r *http.Request) {
	id, ok := parseRecipeID(w, r)
	if !ok {
		return
	}
	var req scaleRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.MarginPercent != nil && (*req.MarginPercent < 0 || *req.MarginPercent > 100) {
		writeError(w, http.StatusBadRequest, "el margen debe estar entre 0 y 100")
		return
	}

	_, order, ok := s.scaleOrder(w, r, id, req.OrderQty)
	if !ok {
		return
	}

	price, source, _ := s.resolveScalePrice(req, order)
	resp := scaleResponse{
		OrderQty:     order.OrderQty,
		Factor:       order.Factor,
		Lines:        make([]scaleLineResponse, 0, len(order.Lines)),
		TotalCost:    order.TotalCost,
		UnitCost:     order.UnitCost,
		UnitPrice:    price,
		PriceSource:  source,
		TotalIncome:  price * float64(order.OrderQty),
		Profit:       scaling.Profit(price, order.OrderQty, order.TotalCost),
		MissingCosts: order.MissingCosts(),
	}
	for _, line := range order.Lines {
		resp.Lines = append(resp.Lines, scaleLineResponse{
			Ingredient:  line.Ingredient,
			Unit:        line.Unit,
			ScaledQty:   line.ScaledQty,
			CostPerUnit: line.CostPerUnit,
			LineCost:    line.LineCost,
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *server) handleRecipeExport(w http.ResponseWriter, r *http.Request) {
	id, ok := parseRecipeID(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	orderQty, err := strconv.Atoi(query.Get("order"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "el parámetro order debe ser un entero")
		return
	}

	req := scaleRequest{OrderQty: orderQty}
	if raw := query.Get("margin_percent"); raw != "" {
		margin, err := strconv.ParseFloat(raw, 64)
		if err != nil || margin < 0 || margin > 100 {
			writeError(w, http.StatusBadRequest, "el margen debe estar entre 0 y 100")
			return
		}
		req.MarginPercent = &margin
	}
	if raw := query.Get("apply_margin"); raw != "" {
		apply := raw != "0" && !strings.EqualFold(raw, "false")
		req.ApplyMargin = &apply
	}
	if raw := query.Get("reference_price"); raw != "" {
		reference, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "el precio de referencia debe ser numérico")
			return
		}
		req.ReferencePrice = &reference
	}
	if raw := query.Get("manual_price"); raw != "" {
		manual, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "el precio manual debe ser numérico")
			return
		}
		req.ManualPrice = manual
	}

	recipe, order, ok := s.scaleOrder(w, r, id, orderQty)
	if !ok {
		return
	}

	price, source, margin := s.resolveScalePrice(req, order)

	workbook, err := export.OrderWorkbook(export.OrderReport{
		Recipe:         recipe,
		Order:          order,
		UnitPrice:      price,
		PriceSource:    source,
		MarginFraction: margin,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "no pude generar el archivo de Excel")
		return
	}
	defer workbook.Close()

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+exportFilename(recipe.Name)+`"`)
	if err := workbook.Write(w); err != nil {
		// Los encabezados ya salieron; solo queda registrar la falla.
		slog.Error("no se pudo escribir el archivo de Excel", "recipe_id", id, "error", err)
	}
}

// exportFilename arma un nombre de archivo seguro para el encabezado
// Content-Disposition: minúsculas, espacios como guiones bajos y solo
// letras, dígitos, guiones y guiones bajos.
func exportFilename(recipeName string) string {
	name := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(recipeName)), " ", "_")
	name = strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			return r
		case r == '_' || r == '-':
			return r
		}
		return -1
	}, name)
	if name == "" {
		return "pedido.xlsx"
	}
	return "pedido_" + name + ".xlsx"
}
