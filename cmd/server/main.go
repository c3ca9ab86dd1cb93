package main

import (
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dulcehorno/rollos/internal/config"
	"github.com/dulcehorno/rollos/internal/db"
	"github.com/dulcehorno/rollos/internal/migrations"
	"github.com/dulcehorno/rollos/internal/pricing"
	"github.com/dulcehorno/rollos/internal/recipes"
	"github.com/dulcehorno/rollos/internal/seed"
	"github.com/dulcehorno/rollos/pkg/logging"
)

type server struct {
	store *recipes.Store
	cfg   config.Config

	// shared es la foto de valores calculados que la calculadora de precios
	// comparte con el punto de equilibrio (ver pricing.Shared). Servicio de
	// un solo usuario; el mutex solo protege contra requests simultáneos.
	mu     sync.Mutex
	shared pricing.Shared
}

func main() {
	logging.Setup()

	cfg := config.Load()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		slog.Error("no pude abrir la base de datos", "path", cfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := migrations.Up(database, cfg.MigrationsDir); err != nil {
		slog.Error("no pude aplicar las migraciones", "dir", cfg.MigrationsDir, "error", err)
		os.Exit(1)
	}

	stats, err := seed.Run(database)
	if err != nil {
		slog.Error("no pude sembrar la receta inicial", "error", err)
		os.Exit(1)
	}
	if stats.Inserts > 0 {
		slog.Info("receta de ejemplo creada", "inserts", stats.Inserts)
	}

	srv := &server{store: recipes.NewStore(database), cfg: cfg}

	addr := ":" + cfg.Port
	slog.Info("escuchando", "addr", addr)
	if err := http.ListenAndServe(addr, srv.router()); err != nil {
		slog.Error("el servidor se detuvo", "error", err)
		os.Exit(1)
	}
}

func (s *server) router() http.Handler {
	r := chi.NewRouter()
	r.Use(requestLogger)

	r.Get("/", s.handleMeta)
	r.Get("/healthz", s.handleHealth)

	r.Post("/pricing/quote", s.handlePricingQuote)
	r.Post("/breakeven", s.handleBreakEven)

	r.Get("/recipes", s.handleRecipesList)
	r.Post("/recipes", s.handleRecipeSave)
	r.Get("/recipes/{id}", s.handleRecipeGet)
	r.Delete("/recipes/{id}", s.handleRecipeDelete)
	r.Post("/recipes/{id}/scale", s.handleRecipeScale)
	r.Get("/recipes/{id}/export", s.handleRecipeExport)

	return r
}

// requestLogger registra cada request con su duración.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Debug("request atendido",
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}
