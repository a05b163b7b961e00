// Package directory serves the bundled madeireiras listing: a read-only,
// semicolon-delimited CSV parsed once at startup and filtered in memory.
package directory

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// canonicalHeader is the one schema this application accepts. The dataset
// circulated in comma-delimited variants with other column sets; those are
// migration debt and rejected at load time.
var canonicalHeader = []string{
	"Loja Concorrente", "Rede", "Bairro", "Municipios", "Estado", "UF", "Localizacao", "Territorio",
}

// Supplier is one row of the directory
type Supplier struct {
	Name        string `json:"name"`        // Loja Concorrente
	Rede        string `json:"rede"`        // Store network
	Bairro      string `json:"bairro"`      // Neighborhood
	Municipio   string `json:"municipio"`   // Municipality
	Estado      string `json:"estado"`      // State name
	UF          string `json:"uf"`          // Two-letter state code
	Localizacao string `json:"localizacao"` // Free-form location text
	Territorio  string `json:"territorio"`  // Sales territory
}

// Filter selects directory rows; empty facets match everything and active
// facets combine with logical AND
type Filter struct {
	Rede      string // Exact network match
	Bairro    string // Exact neighborhood match
	Municipio string // Exact municipality match
	UF        string // Exact state code match
	Query     string // Case-insensitive substring over name/municipio/bairro/estado
}

// Facets holds the distinct values available for each filter
type Facets struct {
	Redes      []string `json:"redes"`
	Bairros    []string `json:"bairros"`
	Municipios []string `json:"municipios"`
	UFs        []string `json:"ufs"`
}

// Directory is the parsed, immutable supplier listing
type Directory struct {
	suppliers []Supplier
}

// Load reads and parses the CSV at path
func Load(path string) (*Directory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads the directory CSV. Rows shorter than the header are padded with
// empty strings; rows with an empty name column are dropped.
func Parse(r io.Reader) (*Directory, error) {
	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1 // Rows with missing trailing columns are legal
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading directory header: %w", err)
	}
	if err := validateHeader(header); err != nil {
		return nil, err
	}

	var suppliers []Supplier
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading directory row: %w", err)
		}
		// Pad short rows so every column access is safe
		for len(record) < len(canonicalHeader) {
			record = append(record, "")
		}
		if strings.TrimSpace(record[0]) == "" {
			continue // Name column is the row's identity; skip blanks
		}
		suppliers = append(suppliers, Supplier{
			Name:        strings.TrimSpace(record[0]),
			Rede:        strings.TrimSpace(record[1]),
			Bairro:      strings.TrimSpace(record[2]),
			Municipio:   strings.TrimSpace(record[3]),
			Estado:      strings.TrimSpace(record[4]),
			UF:          strings.TrimSpace(record[5]),
			Localizacao: strings.TrimSpace(record[6]),
			Territorio:  strings.TrimSpace(record[7]),
		})
	}
	return &Directory{suppliers: suppliers}, nil
}

// validateHeader checks the CSV against the canonical schema
func validateHeader(header []string) error {
	if len(header) != len(canonicalHeader) {
		return fmt.Errorf("directory header has %d columns, want %d", len(header), len(canonicalHeader))
	}
	for i, want := range canonicalHeader {
		if strings.TrimSpace(strings.TrimPrefix(header[i], "\uFEFF")) != want {
			return fmt.Errorf("directory header column %d is %q, want %q", i, header[i], want)
		}
	}
	return nil
}

// Len returns the number of parsed rows
func (d *Directory) Len() int {
	return len(d.suppliers)
}

// Find returns every supplier matching the filter
func (d *Directory) Find(f Filter) []Supplier {
	query := strings.ToLower(strings.TrimSpace(f.Query))
	matched := make([]Supplier, 0, len(d.suppliers))
	for _, s := range d.suppliers {
		if f.Rede != "" && s.Rede != f.Rede {
			continue
		}
		if f.Bairro != "" && s.Bairro != f.Bairro {
			continue
		}
		if f.Municipio != "" && s.Municipio != f.Municipio {
			continue
		}
		if f.UF != "" && s.UF != f.UF {
			continue
		}
		if query != "" && !matchesQuery(s, query) {
			continue
		}
		matched = append(matched, s)
	}
	return matched
}

// matchesQuery reports whether the lowercase query appears in the searchable columns
func matchesQuery(s Supplier, query string) bool {
	for _, field := range []string{s.Name, s.Municipio, s.Bairro, s.Estado} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

// Facets returns the distinct, sorted values per filterable column
func (d *Directory) Facets() Facets {
	redes := map[string]struct{}{}
	bairros := map[string]struct{}{}
	municipios := map[string]struct{}{}
	ufs := map[string]struct{}{}
	for _, s := range d.suppliers {
		if s.Rede != "" {
			redes[s.Rede] = struct{}{}
		}
		if s.Bairro != "" {
			bairros[s.Bairro] = struct{}{}
		}
		if s.Municipio != "" {
			municipios[s.Municipio] = struct{}{}
		}
		if s.UF != "" {
			ufs[s.UF] = struct{}{}
		}
	}
	return Facets{
		Redes:      sortedKeys(redes),
		Bairros:    sortedKeys(bairros),
		Municipios: sortedKeys(municipios),
		UFs:        sortedKeys(ufs),
	}
}

// sortedKeys flattens a string set into a sorted slice
func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
