package mercadopago

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/caioolkk/semcensura-loja/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string) Client {
	return NewClient(&config.Config{
		MercadoPagoBaseURL:     baseURL,
		MercadoPagoAccessToken: "TEST-TOKEN",
		MercadoPagoTimeout:     2 * time.Second,
		FrontendBaseURL:        "https://loja.example.com",
	})
}

func testItems() []Item {
	return []Item{{Title: "Shirt", Quantity: 2, UnitPrice: 19.90, CurrencyID: "BRL"}}
}

func TestCreatePreference_HappyPath(t *testing.T) {
	var got preferenceRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/checkout/preferences", r.URL.Path)
		assert.Equal(t, "Bearer TEST-TOKEN", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "PREF-1"})
	}))
	defer srv.Close()

	id, err := newTestClient(srv.URL).CreatePreference(context.Background(), testItems(), "b@x.com", "order-1")

	require.NoError(t, err)
	assert.Equal(t, "PREF-1", id)
	assert.Equal(t, testItems(), got.Items)
	assert.Equal(t, "b@x.com", got.Payer.Email)
	assert.Equal(t, "order-1", got.ExternalReference)
	assert.Equal(t, "https://loja.example.com/compra-aprovada", got.BackURLs.Success)
}

func TestCreatePreference_Non2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "invalid access token"})
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).CreatePreference(context.Background(), testItems(), "b@x.com", "order-1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestCreatePreference_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).CreatePreference(context.Background(), testItems(), "b@x.com", "order-1")
	require.Error(t, err)
}

func TestCreatePreference_MissingID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{})
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).CreatePreference(context.Background(), testItems(), "b@x.com", "order-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing id")
}

func TestCreatePreference_ServerUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // shut down before calling

	_, err := newTestClient(srv.URL).CreatePreference(context.Background(), testItems(), "b@x.com", "order-1")
	require.Error(t, err)
}

func TestCreatePreference_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newTestClient(srv.URL).CreatePreference(ctx, testItems(), "b@x.com", "order-1")
	require.Error(t, err)
}
