// Package cep resolves Brazilian postal codes to addresses via the
// ViaCEP API, with a small in-process cache in front of it.
package cep

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/cheiadearte/storefront/internal/core/domain"
	"github.com/cheiadearte/storefront/internal/core/port"
)

var _ port.PostalLookup = (*Client)(nil)

const (
	defaultAPIURL  = "https://viacep.com.br/ws"
	requestTimeout = 5 * time.Second
	cacheSize      = 512
)

type viaCEPResponse struct {
	CEP          string `json:"cep"`
	Street       string `json:"logradouro"`
	Neighborhood string `json:"bairro"`
	City         string `json:"localidade"`
	State        string `json:"uf"`
	Erro         bool   `json:"erro"`
}

type Config struct {
	APIURL string
}

type Client struct {
	apiURL     string
	httpClient *http.Client
	cache      *lru.Cache[string, domain.Address]
}

func New(cfg Config) (*Client, error) {
	const op = "cep.New"

	apiURL := cfg.APIURL
	if apiURL == "" {
		apiURL = defaultAPIURL
	}

	cache, err := lru.New[string, domain.Address](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Client{
		apiURL:     apiURL,
		httpClient: &http.Client{Timeout: requestTimeout},
		cache:      cache,
	}, nil
}

// LookupAddress resolves a sanitized 8-digit postal code. Unknown
// codes return port.ErrNotFound; lookups are cached, postal data
// changes rarely enough that entries never expire.
func (c *Client) LookupAddress(
	ctx context.Context, cep string,
) (domain.Address, error) {
	const op = "cep.Client.LookupAddress"

	if err := ctx.Err(); err != nil {
		return domain.Address{}, fmt.Errorf("%s: %w", op, err)
	}

	if addr, ok := c.cache.Get(cep); ok {
		return addr, nil
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet,
		fmt.Sprintf("%s/%s/json/", c.apiURL, cep), nil,
	)
	if err != nil {
		return domain.Address{}, fmt.Errorf("%s: %w", op, err)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Address{}, fmt.Errorf("%s: %w", op, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return domain.Address{}, fmt.Errorf(
			"%s: unexpected status: %s", op, res.Status)
	}

	var decoded viaCEPResponse
	if err := json.NewDecoder(res.Body).Decode(&decoded); err != nil {
		return domain.Address{}, fmt.Errorf("%s: %w", op, err)
	}

	if decoded.Erro {
		return domain.Address{}, fmt.Errorf("%s: %w", op, port.ErrNotFound)
	}

	addr := domain.Address{
		CEP:          cep,
		Street:       decoded.Street,
		Neighborhood: decoded.Neighborhood,
		City:         decoded.City,
		State:        decoded.State,
	}
	c.cache.Add(cep, addr)
	return addr, nil
}
