package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_PATH", "")
	t.Setenv("PORT", "")
	t.Setenv("MIGRATIONS_DIR", "")
	t.Setenv("GEMINI_API_KEY", "")

	cfg := Load()

	if cfg.DBPath != "./recipes.db" {
		t.Fatalf("DBPath=%q, want default", cfg.DBPath)
	}
	if cfg.Port != "8080" {
		t.Fatalf("Port=%q, want default", cfg.Port)
	}
	if cfg.MigrationsDir != "migrations" {
		t.Fatalf("MigrationsDir=%q, want default", cfg.MigrationsDir)
	}
	if cfg.AIEnabled() {
		t.Fatal("AI must be disabled without a credential")
	}
}

func TestLoad_AIEnabledWithCredential(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")

	if !Load().AIEnabled() {
		t.Fatal("AI must be enabled with a credential")
	}
}
