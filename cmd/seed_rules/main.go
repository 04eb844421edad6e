// seed_rules agrega al archivo de tarifarios uno nuevo a partir del vigente, con el calendario
// de festivos leído de un CSV (fecha;nombre). Pensado para el alta anual de tarifarios.
//
// Uso: go run ./cmd/seed_rules -valid-from 2026-01-01 -holidays helgdagar-2026.csv [-charset iso-8859-1]
// Por defecto lee y reescribe config/rulesets.yaml; -out escribe en otro archivo.
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/TollFee-api/internal/domain/entity"
	"github.com/jhoicas/TollFee-api/internal/domain/toll"
	"github.com/jhoicas/TollFee-api/internal/infrastructure/rulefile"
)

func main() {
	basePath := flag.String("base", "config/rulesets.yaml", "archivo YAML de tarifarios")
	outPath := flag.String("out", "", "archivo de salida (por defecto -base)")
	holidaysPath := flag.String("holidays", "", "CSV de festivos: fecha;nombre")
	charset := flag.String("charset", "utf-8", "codificación del CSV: utf-8 o iso-8859-1")
	validFrom := flag.String("valid-from", "", "fecha de vigencia del nuevo tarifario (YYYY-MM-DD)")
	flag.Parse()

	if *validFrom == "" || *holidaysPath == "" {
		flag.Usage()
		os.Exit(2)
	}
	if *outPath == "" {
		*outPath = *basePath
	}

	start, err := entity.ParseDate(*validFrom)
	if err != nil {
		fatalf("valid-from: %v", err)
	}
	sets, err := rulefile.NewSource(*basePath).LoadRuleSets(context.Background())
	if err != nil {
		fatalf("leer tarifarios: %v", err)
	}
	f, err := os.Open(*holidaysPath)
	if err != nil {
		fatalf("abrir CSV: %v", err)
	}
	holidays, err := readHolidays(f, *charset)
	f.Close()
	if err != nil {
		fatalf("leer festivos: %v", err)
	}

	catalog, err := toll.NewCatalog(sets...)
	if err != nil {
		fatalf("tarifarios existentes: %v", err)
	}
	base, err := catalog.RuleSetFor(start)
	if err != nil {
		fatalf("no hay tarifario previo a %s: %v", start, err)
	}
	next := nextRuleSet(base, start, holidays)
	if _, err := toll.NewCatalog(append(sets, next)...); err != nil {
		fatalf("nuevo tarifario: %v", err)
	}

	var buf bytes.Buffer
	if err := rulefile.Encode(&buf, append(sets, next)); err != nil {
		fatalf("serializar: %v", err)
	}
	if err := os.WriteFile(*outPath, buf.Bytes(), 0o644); err != nil {
		fatalf("escribir %s: %v", *outPath, err)
	}
	fmt.Printf("Generado %s: tarifario %s con %d festivos (base %s)\n", *outPath, next.Name, len(holidays), base.ValidFrom)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
