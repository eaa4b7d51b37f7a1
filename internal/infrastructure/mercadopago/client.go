package mercadopago

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/caioolkk/semcensura-loja/internal/config"
)

// Item is a single line of a checkout preference in the shape the
// Mercado Pago API expects.
type Item struct {
	Title      string  `json:"title"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	CurrencyID string  `json:"currency_id"`
}

// Client creates checkout preferences against the Mercado Pago API.
// The call is a single outbound HTTPS request with no built-in retry;
// callers decide what a failure means for them.
type Client interface {
	CreatePreference(ctx context.Context, items []Item, payerEmail, externalRef string) (string, error)
}

type backURLs struct {
	Success string `json:"success"`
	Failure string `json:"failure"`
	Pending string `json:"pending"`
}

type preferenceRequest struct {
	Items             []Item   `json:"items"`
	Payer             payer    `json:"payer"`
	BackURLs          backURLs `json:"back_urls"`
	ExternalReference string   `json:"external_reference"`
}

type payer struct {
	Email string `json:"email"`
}

type preferenceResponse struct {
	ID string `json:"id"`
}

type client struct {
	httpClient  *http.Client
	baseURL     string
	accessToken string
	backURLs    backURLs
}

func NewClient(cfg *config.Config) Client {
	return &client{
		httpClient:  &http.Client{Timeout: cfg.MercadoPagoTimeout},
		baseURL:     cfg.MercadoPagoBaseURL,
		accessToken: cfg.MercadoPagoAccessToken,
		backURLs: backURLs{
			Success: cfg.FrontendBaseURL + "/compra-aprovada",
			Failure: cfg.FrontendBaseURL + "/compra-recusada",
			Pending: cfg.FrontendBaseURL + "/compra-pendente",
		},
	}
}

func (c *client) CreatePreference(ctx context.Context, items []Item, payerEmail, externalRef string) (string, error) {
	body, err := json.Marshal(preferenceRequest{
		Items:             items,
		Payer:             payer{Email: payerEmail},
		BackURLs:          c.backURLs,
		ExternalReference: externalRef,
	})
	if err != nil {
		return "", fmt.Errorf("marshal preference request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/checkout/preferences", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build preference request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("call preference API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Keep a short excerpt of the body for the logs; providers put the
		// actionable message there.
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("preference API returned %d: %s", resp.StatusCode, excerpt)
	}

	var pref preferenceResponse
	if err := json.NewDecoder(resp.Body).Decode(&pref); err != nil {
		return "", fmt.Errorf("decode preference response: %w", err)
	}
	if pref.ID == "" {
		return "", fmt.Errorf("preference response missing id")
	}
	return pref.ID, nil
}
