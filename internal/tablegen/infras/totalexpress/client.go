package totalexpress

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"shipping-table-generator/internal/tablegen/domain"
	internal_error "shipping-table-generator/internal/tablegen/error"
	"shipping-table-generator/internal/tablegen/usecase"

	"github.com/shopspring/decimal"
)

// SOAP 1.1 envelope for the calcularFrete operation. The provider expects
// comma decimal separators on Peso and ValorDeclarado and an 8-digit
// zero-padded CepDestino.
const envelopeFormat = `<?xml version="1.0" encoding="utf-8"?>
<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/" xmlns:urn="urn:calcularFrete">
  <soapenv:Body>
    <urn:calcularFrete>
      <TipoServico>%s</TipoServico>
      <CepDestino>%s</CepDestino>
      <Peso>%s</Peso>
      <ValorDeclarado>%s</ValorDeclarado>
      <TipoEntrega>0</TipoEntrega>
      <ServicoCOD>false</ServicoCOD>
      <Altura>%d</Altura>
      <Largura>%d</Largura>
      <Profundidade>%d</Profundidade>
    </urn:calcularFrete>
  </soapenv:Body>
</soapenv:Envelope>`

type calcularFreteResponse struct {
	CodigoProc   string `xml:"Body>calcularFreteResponse>CodigoProc"`
	ValorServico string `xml:"Body>calcularFreteResponse>DadosFrete>ValorServico"`
	Prazo        string `xml:"Body>calcularFreteResponse>DadosFrete>Prazo"`
}

type client struct {
	endpoint  string
	username  string
	password  string
	retryWait time.Duration
	http      *http.Client
	logger    *slog.Logger
}

var _ usecase.PricingClient = (*client)(nil)

func NewClient(
	endpoint string,
	username string,
	password string,
	timeout time.Duration,
	retryWait time.Duration,
	logger *slog.Logger,
) *client {
	return &client{
		endpoint:  endpoint,
		username:  username,
		password:  password,
		retryWait: retryWait,
		http:      &http.Client{Timeout: timeout},
		logger:    logger,
	}
}

func (c *client) Quote(ctx context.Context, input *domain.QuoteInput) (*domain.QuoteResult, error) {
	logger := c.logger.With(
		slog.String("infra", "totalexpress"),
		slog.String("tier", input.Tier.Code()),
		slog.Int("destination", input.DestinationCode),
		slog.Int("weight_grams", input.WeightGrams),
	)

	if err := input.Validate(); err != nil {
		logger.Error("input validation failed", slog.Any("error", err))
		return nil, internal_error.ValidationError(err.Error())
	}

	envelope := buildEnvelope(input)

	resp, err := c.post(ctx, envelope)
	if err != nil {
		logger.Warn("connection failed: retrying once", slog.Any("error", err))
		time.Sleep(c.retryWait)

		resp, err = c.post(ctx, envelope)
		if err != nil {
			logger.Error("connection failed after retry", slog.Any("error", err))
			return nil, internal_error.TransportError(err.Error())
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		logger.Error("credentials rejected", slog.Int("status_code", resp.StatusCode))
		return nil, internal_error.AuthenticationError(fmt.Sprintf("credentials rejected with status %d", resp.StatusCode))
	}

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		logger.Error("unexpected status", slog.Int("status_code", resp.StatusCode))
		return nil, internal_error.TransportError(fmt.Sprintf("unexpected status %d: %s", resp.StatusCode, string(b)))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Error("failed to read response body", slog.Any("error", err))
		return nil, internal_error.TransportError(err.Error())
	}

	result, err := parseResponse(body)
	if err != nil {
		logger.Error("failed to parse response", slog.Any("error", err))
		return nil, err
	}

	return result, nil
}

func (c *client) post(ctx context.Context, envelope string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(envelope))
	if err != nil {
		return nil, err
	}

	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")
	req.Header.Set("SOAPAction", "")

	return c.http.Do(req)
}

func buildEnvelope(input *domain.QuoteInput) string {
	return fmt.Sprintf(envelopeFormat,
		input.Tier.Code(),
		fmt.Sprintf("%08d", input.DestinationCode),
		wireDecimal(weightKg(input.WeightGrams)),
		wireDecimal(input.DeclaredValue),
		input.Dimensions.HeightCm,
		input.Dimensions.WidthCm,
		input.Dimensions.DepthCm,
	)
}

func weightKg(grams int) decimal.Decimal {
	return decimal.NewFromInt(int64(grams)).Div(decimal.NewFromInt(1000))
}

// wireDecimal renders a value with two decimals and the comma separator the
// provider expects.
func wireDecimal(d decimal.Decimal) string {
	return strings.Replace(d.StringFixed(2), ".", ",", 1)
}

// parseResponse extracts the cost and time fields, treating anything short
// of a complete successful payload as malformed. The wire format is not
// under this system's control, so nothing here assumes well-formed input.
func parseResponse(body []byte) (*domain.QuoteResult, error) {
	var parsed calcularFreteResponse
	if err := xml.Unmarshal(body, &parsed); err != nil {
		return nil, internal_error.MalformedResponseError(fmt.Sprintf("not a parsable envelope: %s", err))
	}

	if parsed.CodigoProc != "1" {
		return nil, internal_error.MalformedResponseError(fmt.Sprintf("provider did not return a quote (CodigoProc=%q)", parsed.CodigoProc))
	}

	if parsed.ValorServico == "" || parsed.Prazo == "" {
		return nil, internal_error.MalformedResponseError("response is missing DadosFrete fields")
	}

	moneyCost, err := decimal.NewFromString(strings.Replace(parsed.ValorServico, ",", ".", 1))
	if err != nil {
		return nil, internal_error.MalformedResponseError(fmt.Sprintf("ValorServico %q is not a decimal", parsed.ValorServico))
	}

	timeDays, err := strconv.Atoi(strings.TrimSpace(parsed.Prazo))
	if err != nil {
		return nil, internal_error.MalformedResponseError(fmt.Sprintf("Prazo %q is not an integer", parsed.Prazo))
	}

	return &domain.QuoteResult{MoneyCost: moneyCost, TimeDays: timeDays}, nil
}
