package totalexpress

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"shipping-table-generator/internal/tablegen/domain"
	internal_error "shipping-table-generator/internal/tablegen/error"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validResponse = `<?xml version="1.0" encoding="utf-8"?>
<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/">
  <soapenv:Body>
    <calcularFreteResponse>
      <CodigoProc>1</CodigoProc>
      <DadosFrete>
        <ValorServico>11,08</ValorServico>
        <Prazo>4</Prazo>
      </DadosFrete>
    </calcularFreteResponse>
  </soapenv:Body>
</soapenv:Envelope>`

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

func testInput() *domain.QuoteInput {
	return &domain.QuoteInput{
		Tier:            domain.TierStandard,
		DestinationCode: 1000001,
		WeightGrams:     125,
		DeclaredValue:   decimal.Zero,
		Dimensions:      domain.Dimensions{HeightCm: 10, WidthCm: 15, DepthCm: 20},
	}
}

func newTestClient(endpoint string) *client {
	return NewClient(endpoint, "user", "secret", 2*time.Second, 10*time.Millisecond, testLogger())
}

func TestQuote_SendsExpectedEnvelope(t *testing.T) {
	var gotBody string
	var gotContentType string
	var gotUser, gotPass string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		gotUser, gotPass, _ = req.BasicAuth()
		gotContentType = req.Header.Get("Content-Type")
		body, _ := io.ReadAll(req.Body)
		gotBody = string(body)
		io.WriteString(w, validResponse)
	}))
	defer server.Close()

	result, err := newTestClient(server.URL).Quote(context.Background(), testInput())
	require.NoError(t, err)

	assert.Equal(t, "user", gotUser)
	assert.Equal(t, "secret", gotPass)
	assert.Equal(t, "text/xml; charset=utf-8", gotContentType)

	assert.Contains(t, gotBody, "<TipoServico>STD</TipoServico>")
	assert.Contains(t, gotBody, "<CepDestino>01000001</CepDestino>", "destination must be zero-padded to 8 digits")
	assert.Contains(t, gotBody, "<Peso>0,13</Peso>", "weight must be kilograms with a comma separator")
	assert.Contains(t, gotBody, "<ValorDeclarado>0,00</ValorDeclarado>")
	assert.Contains(t, gotBody, "<TipoEntrega>0</TipoEntrega>")
	assert.Contains(t, gotBody, "<ServicoCOD>false</ServicoCOD>")
	assert.Contains(t, gotBody, "<Altura>10</Altura>")
	assert.Contains(t, gotBody, "<Largura>15</Largura>")
	assert.Contains(t, gotBody, "<Profundidade>20</Profundidade>")

	assert.True(t, result.MoneyCost.Equal(decimal.RequireFromString("11.08")))
	assert.Equal(t, 4, result.TimeDays)
}

func TestQuote_InvalidInput(t *testing.T) {
	input := testInput()
	input.WeightGrams = 0

	_, err := newTestClient("http://localhost:1").Quote(context.Background(), input)
	require.Error(t, err)
	assert.IsType(t, internal_error.ValidationError(""), err)
}

func TestQuote_RejectedCredentials(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			http.Error(w, "denied", status)
		}))

		_, err := newTestClient(server.URL).Quote(context.Background(), testInput())
		require.Error(t, err)
		assert.IsType(t, internal_error.AuthenticationError(""), err, "status %d", status)

		server.Close()
	}
}

func TestQuote_UnexpectedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Quote(context.Background(), testInput())
	require.Error(t, err)
	assert.IsType(t, internal_error.TransportError(""), err)
}

func TestQuote_ConnectionFailureAfterRetry(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {}))
	endpoint := server.URL
	server.Close()

	_, err := newTestClient(endpoint).Quote(context.Background(), testInput())
	require.Error(t, err)
	assert.IsType(t, internal_error.TransportError(""), err)
}

func TestQuote_RetriesOnceOnConnectionFailure(t *testing.T) {
	var attempts atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if attempts.Add(1) == 1 {
			// Kill the connection without a response to simulate a
			// transient transport failure.
			hijacker, ok := w.(http.Hijacker)
			if assert.True(t, ok) {
				conn, _, err := hijacker.Hijack()
				if assert.NoError(t, err) {
					conn.Close()
				}
			}
			return
		}
		io.WriteString(w, validResponse)
	}))
	defer server.Close()

	result, err := newTestClient(server.URL).Quote(context.Background(), testInput())
	require.NoError(t, err)
	assert.Equal(t, int32(2), attempts.Load())
	assert.Equal(t, 4, result.TimeDays)
}

func TestQuote_MalformedResponses(t *testing.T) {
	cases := map[string]string{
		"not xml":           `{"cost": 11.08}`,
		"refused quote":     `<Envelope><Body><calcularFreteResponse><CodigoProc>0</CodigoProc></calcularFreteResponse></Body></Envelope>`,
		"missing fields":    `<Envelope><Body><calcularFreteResponse><CodigoProc>1</CodigoProc></calcularFreteResponse></Body></Envelope>`,
		"non-decimal cost":  `<Envelope><Body><calcularFreteResponse><CodigoProc>1</CodigoProc><DadosFrete><ValorServico>abc</ValorServico><Prazo>4</Prazo></DadosFrete></calcularFreteResponse></Body></Envelope>`,
		"non-integer prazo": `<Envelope><Body><calcularFreteResponse><CodigoProc>1</CodigoProc><DadosFrete><ValorServico>11,08</ValorServico><Prazo>soon</Prazo></DadosFrete></calcularFreteResponse></Body></Envelope>`,
	}

	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				io.WriteString(w, payload)
			}))
			defer server.Close()

			_, err := newTestClient(server.URL).Quote(context.Background(), testInput())
			require.Error(t, err)
			assert.IsType(t, internal_error.MalformedResponseError(""), err)
		})
	}
}
