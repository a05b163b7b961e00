package directory

import (
	"reflect"
	"strings"
	"testing"
)

const sampleCSV = `Loja Concorrente;Rede;Bairro;Municipios;Estado;UF;Localizacao;Territorio
Madeireira Central;Rede A;Centro;Campinas;São Paulo;SP;Rua das Árvores 10;Leste
Madeiras do Sul;Rede B;Centro;Porto Alegre;Rio Grande do Sul;RS;Av. Ipiranga 200;Sul
Depósito Norte;Rede A;Jardim;Campinas;São Paulo;SP
;Rede C;Centro;Niterói;Rio de Janeiro;RJ;Rua X;Fluminense
Serraria Leste;Rede C;Industrial;Niterói;Rio de Janeiro;RJ;Rua Y 5;Fluminense
`

func mustParse(t *testing.T, csv string) *Directory {
	t.Helper()
	d, err := Parse(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return d
}

func TestParse(t *testing.T) {
	d := mustParse(t, sampleCSV)

	// The empty-name row is dropped, everything else kept
	if d.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", d.Len())
	}

	// Short rows pad missing trailing columns with empty strings
	short := d.Find(Filter{Bairro: "Jardim"})
	if len(short) != 1 {
		t.Fatalf("Find(Bairro=Jardim) returned %d rows, want 1", len(short))
	}
	if short[0].Localizacao != "" || short[0].Territorio != "" {
		t.Errorf("short row trailing columns = (%q, %q), want empty", short[0].Localizacao, short[0].Territorio)
	}
}

func TestParseRejectsWrongSchema(t *testing.T) {
	tests := []struct {
		name string
		csv  string
	}{
		{"comma delimited variant", "Loja Concorrente,Rede,Bairro,Municipios,Estado,UF,Localizacao,Territorio\nX,A,B,C,D,SP,L,T\n"},
		{"missing columns", "Loja Concorrente;Rede;Bairro\nX;A;B\n"},
		{"renamed column", "Nome;Rede;Bairro;Municipios;Estado;UF;Localizacao;Territorio\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(strings.NewReader(tt.csv)); err == nil {
				t.Error("Parse() error = nil, want schema error")
			}
		})
	}
}

func TestFindFacetsAreCommutative(t *testing.T) {
	d := mustParse(t, sampleCSV)

	// rede-then-uf must equal uf-then-rede; Find applies all facets as AND so
	// exercise it through equivalent filter orderings on a combined struct
	both := d.Find(Filter{Rede: "Rede A", UF: "SP"})
	swapped := d.Find(Filter{UF: "SP", Rede: "Rede A"})
	if !reflect.DeepEqual(both, swapped) {
		t.Errorf("filter order changed the result: %v vs %v", both, swapped)
	}
	if len(both) != 2 {
		t.Errorf("Find(Rede A, SP) = %d rows, want 2", len(both))
	}

	// Narrowing with another facet keeps the AND semantics
	narrowed := d.Find(Filter{Rede: "Rede A", UF: "SP", Bairro: "Centro"})
	if len(narrowed) != 1 || narrowed[0].Name != "Madeireira Central" {
		t.Errorf("Find(Rede A, SP, Centro) = %v, want only Madeireira Central", narrowed)
	}
}

func TestFindQuery(t *testing.T) {
	d := mustParse(t, sampleCSV)

	tests := []struct {
		query string
		want  int
	}{
		{"madeir", 2},   // matches two names
		{"CAMPINAS", 2}, // case-insensitive municipality match
		{"rio", 2},      // Rio Grande do Sul + Rio de Janeiro via estado
		{"nope", 0},
	}
	for _, tt := range tests {
		if got := len(d.Find(Filter{Query: tt.query})); got != tt.want {
			t.Errorf("Find(Query=%q) = %d rows, want %d", tt.query, got, tt.want)
		}
	}

	// Query combines with facets as AND
	got := d.Find(Filter{Query: "madeir", UF: "RS"})
	if len(got) != 1 || got[0].Name != "Madeiras do Sul" {
		t.Errorf("Find(madeir, RS) = %v, want only Madeiras do Sul", got)
	}
}

func TestFacets(t *testing.T) {
	d := mustParse(t, sampleCSV)
	f := d.Facets()

	if !reflect.DeepEqual(f.Redes, []string{"Rede A", "Rede B", "Rede C"}) {
		t.Errorf("Redes = %v, want sorted distinct networks", f.Redes)
	}
	if !reflect.DeepEqual(f.UFs, []string{"RJ", "RS", "SP"}) {
		t.Errorf("UFs = %v, want [RJ RS SP]", f.UFs)
	}
	if !reflect.DeepEqual(f.Municipios, []string{"Campinas", "Niterói", "Porto Alegre"}) {
		t.Errorf("Municipios = %v, want sorted distinct municipalities", f.Municipios)
	}
}
