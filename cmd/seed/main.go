// seed genera la migración de municipios (tabla ciudades) a partir del CSV del INE.
//
// Uso: go run ./cmd/seed [ruta/municipios.csv]
// Por defecto busca municipios.csv en el directorio actual. El fichero está en ISO-8859-1,
// separado por ';': código provincia; nombre provincia; código municipio; nombre municipio.
// Escribe: internal/infrastructure/postgres/migrations/000003_ciudades.{up,down}.sql
package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

const migrationName = "000003_ciudades"

type municipio struct {
	id          int64 // código INE: provincia*1000 + municipio
	nombre      string
	provinciaID int64
}

func main() {
	csvPath := "municipios.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}
	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	municipios, err := parseMunicipios(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	dir := filepath.Join(findModuleRoot(), "internal", "infrastructure", "postgres", "migrations")
	upPath := filepath.Join(dir, migrationName+".up.sql")
	downPath := filepath.Join(dir, migrationName+".down.sql")
	if err := writeFile(upPath, func(w io.Writer) error { return writeUp(w, municipios) }); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir %s: %v\n", upPath, err)
		os.Exit(1)
	}
	if err := writeFile(downPath, writeDown); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir %s: %v\n", downPath, err)
		os.Exit(1)
	}

	fmt.Printf("Generado %s: %d municipios\n", upPath, len(municipios))
}

// parseMunicipios decodifica el CSV Latin-1. Omite la cabecera y las líneas sin códigos numéricos.
func parseMunicipios(r io.Reader) ([]municipio, error) {
	cr := csv.NewReader(transform.NewReader(r, charmap.ISO8859_1.NewDecoder()))
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	seen := make(map[int64]bool)
	var out []municipio
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(rec) < 4 {
			continue
		}
		prov, err1 := strconv.ParseInt(strings.TrimSpace(rec[0]), 10, 64)
		mun, err2 := strconv.ParseInt(strings.TrimSpace(rec[2]), 10, 64)
		nombre := strings.TrimSpace(rec[3])
		if err1 != nil || err2 != nil || nombre == "" {
			continue
		}
		if prov < 1 || prov > 52 {
			return nil, fmt.Errorf("código de provincia fuera de rango: %d (%s)", prov, nombre)
		}
		id := prov*1000 + mun
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, municipio{id: id, nombre: nombre, provinciaID: prov})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out, nil
}

func writeUp(w io.Writer, municipios []municipio) error {
	var b strings.Builder
	b.WriteString("-- Municipios de España (código INE). Generado por cmd/seed.\n\n")
	if len(municipios) > 0 {
		b.WriteString("INSERT INTO ciudades (id, nombre, provincia_id) VALUES\n")
		for i, m := range municipios {
			sep := ","
			if i == len(municipios)-1 {
				sep = ""
			}
			fmt.Fprintf(&b, "  (%d, '%s', %d)%s\n", m.id, escapeSQL(m.nombre), m.provinciaID, sep)
		}
		b.WriteString("ON CONFLICT (id) DO UPDATE SET nombre = EXCLUDED.nombre, provincia_id = EXCLUDED.provincia_id;\n\n")
	}
	b.WriteString("SELECT setval(pg_get_serial_sequence('ciudades', 'id'), GREATEST((SELECT COALESCE(max(id), 0) FROM ciudades), 1));\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func writeDown(w io.Writer) error {
	_, err := io.WriteString(w, "DELETE FROM ciudades;\n")
	return err
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
