package cep

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		raw    string
		want   string
		wantOK bool
	}{
		{"01310-100", "01310100", true},
		{"01310100", "01310100", true},
		{"01310", "01310", false},
		{"abc", "", false},
		{" 01.310-100 ", "01310100", true},
	}
	for _, tt := range tests {
		got, ok := Normalize(tt.raw)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("Normalize(%q) = (%q, %v), want (%q, %v)", tt.raw, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestLookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/01310100/json/":
			w.Write([]byte(`{"logradouro":"Avenida Paulista","bairro":"Bela Vista","localidade":"São Paulo","uf":"SP"}`))
		case "/99999999/json/":
			w.Write([]byte(`{"erro": true}`))
		case "/88888888/json/":
			// Newer API versions return erro as a string
			w.Write([]byte(`{"erro": "true"}`))
		default:
			w.WriteHeader(http.StatusBadRequest)
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL)

	addr, err := client.Lookup(context.Background(), "01310-100")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if addr.Street != "Avenida Paulista" || addr.City != "São Paulo" || addr.State != "SP" {
		t.Errorf("Lookup() = %+v, want Avenida Paulista / São Paulo / SP", addr)
	}

	for _, code := range []string{"99999999", "88888888"} {
		if _, err := client.Lookup(context.Background(), code); !errors.Is(err, ErrNotFound) {
			t.Errorf("Lookup(%s) error = %v, want ErrNotFound", code, err)
		}
	}

	if _, err := client.Lookup(context.Background(), "123"); err == nil {
		t.Error("Lookup with short code: want error, got nil")
	}
}

func TestFillEmpty(t *testing.T) {
	found := &Address{Street: "Avenida Paulista", City: "São Paulo", State: "SP"}

	street, city, state := "", "Campinas", ""
	FillEmpty(found, &street, &city, &state)

	if street != "Avenida Paulista" {
		t.Errorf("street = %q, want Avenida Paulista", street)
	}
	if city != "Campinas" {
		t.Errorf("city = %q, want the previously entered Campinas kept", city)
	}
	if state != "SP" {
		t.Errorf("state = %q, want SP", state)
	}
}
