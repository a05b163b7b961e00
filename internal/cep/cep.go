// Package cep resolves Brazilian postal codes to addresses through ViaCEP.
package cep

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL is the public ViaCEP endpoint
const DefaultBaseURL = "https://viacep.com.br/ws"

// ErrNotFound indicates the service does not know the postal code
var ErrNotFound = errors.New("cep not found")

// Address is the resolved portion of a postal code lookup
type Address struct {
	Street       string `json:"street"`       // logradouro
	Neighborhood string `json:"neighborhood"` // bairro
	City         string `json:"city"`         // localidade
	State        string `json:"state"`        // uf
}

// Normalize strips non-digits from raw and reports whether the result is a
// valid 8-digit postal code
func Normalize(raw string) (string, bool) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	code := b.String()
	return code, len(code) == 8
}

// Client queries the lookup service
type Client struct {
	baseURL string
	hc      *http.Client
}

// NewClient returns a lookup client; an empty baseURL selects the public endpoint
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: 5 * time.Second},
	}
}

// viaCEPPayload mirrors the service response; Erro is set on unknown codes
type viaCEPPayload struct {
	Logradouro string          `json:"logradouro"`
	Bairro     string          `json:"bairro"`
	Localidade string          `json:"localidade"`
	Uf         string          `json:"uf"`
	Erro       json.RawMessage `json:"erro"` // bool or string depending on API version
}

// notFound reports whether the payload is the service's "unknown code" answer
func (p *viaCEPPayload) notFound() bool {
	s := strings.Trim(string(p.Erro), `"`)
	return s == "true"
}

// Lookup resolves an 8-digit postal code. Invalid codes and unknown codes
// return errors; the caller decides whether that is fatal.
func (c *Client) Lookup(ctx context.Context, raw string) (*Address, error) {
	code, ok := Normalize(raw)
	if !ok {
		return nil, fmt.Errorf("invalid cep %q", raw)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+code+"/json/", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cep lookup returned status %d", resp.StatusCode)
	}
	var payload viaCEPPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}
	if payload.notFound() {
		return nil, ErrNotFound
	}
	return &Address{
		Street:       payload.Logradouro,
		Neighborhood: payload.Bairro,
		City:         payload.Localidade,
		State:        payload.Uf,
	}, nil
}

// FillEmpty back-fills only the empty targets from the resolved address. A
// value the user already typed is never overwritten.
func FillEmpty(found *Address, street, city, state *string) {
	if found == nil {
		return
	}
	if *street == "" {
		*street = found.Street
	}
	if *city == "" {
		*city = found.City
	}
	if *state == "" {
		*state = found.State
	}
}
