package config

import (
	"bufio"
	"errors"
	"os"
	"strings"
)

// loadDotEnv carga pares KEY=VALUE de un archivo dotenv al entorno del
// proceso, para poder dejar DB_PATH, PORT o GEMINI_API_KEY en un .env local
// sin exportarlos a mano. Es deliberadamente mínimo.
//
// Reglas:
// - Las líneas vacías y las que empiezan con # se ignoran.
// - "export KEY=VALUE" se acepta.
// - Los valores pueden ir entre comillas simples o dobles; se quitan.
// - Las variables ya presentes en el entorno no se sobreescriben.
func loadDotEnv(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "export ") {
			line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
		}

		k, v, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		k = strings.TrimSpace(k)
		v = strings.TrimSpace(v)
		if k == "" {
			continue
		}

		// Strip surrounding quotes.
		if len(v) >= 2 {
			if (v[0] == '"' && v[len(v)-1] == '"') || (v[0] == '\'' && v[len(v)-1] == '\'') {
				v = v[1 : len(v)-1]
			}
		}

		if os.Getenv(k) != "" {
			continue
		}
		_ = os.Setenv(k, v)
	}
	if err := sc.Err(); err != nil {
		return err
	}
	return nil
}
