package main

import (
	"encoding/xml"
	"flag"
	"fmt"
	"hash/fnv"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"strconv"
	"strings"
)

// totalstub mimics the Total Express calcularFrete endpoint so a full batch
// run can be exercised offline. Prices are deterministic per request, so
// repeated runs against the stub produce identical tables.

var logger = slog.New(slog.NewTextHandler(os.Stdout, nil))

type calcularFreteRequest struct {
	TipoServico string `xml:"Body>calcularFrete>TipoServico"`
	CepDestino  string `xml:"Body>calcularFrete>CepDestino"`
	Peso        string `xml:"Body>calcularFrete>Peso"`
}

const responseFormat = `<?xml version="1.0" encoding="utf-8"?>
<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/">
  <soapenv:Body>
    <calcularFreteResponse>
      <CodigoProc>1</CodigoProc>
      <DadosFrete>
        <ValorServico>%s</ValorServico>
        <Prazo>%d</Prazo>
      </DadosFrete>
    </calcularFreteResponse>
  </soapenv:Body>
</soapenv:Envelope>`

func main() {
	addr := flag.String("addr", ":9090", "listen address")
	flag.Parse()

	http.HandleFunc("/webservice_calculo_frete.php", func(w http.ResponseWriter, req *http.Request) {
		defer req.Body.Close()

		username, password, ok := req.BasicAuth()
		if !ok || username == "" || password == "" {
			w.Header().Set("WWW-Authenticate", `Basic realm="totalstub"`)
			http.Error(w, "missing credentials", http.StatusUnauthorized)
			return
		}

		body, err := io.ReadAll(req.Body)
		if err != nil {
			http.Error(w, "failed to read body: "+err.Error(), http.StatusBadRequest)
			return
		}

		var call calcularFreteRequest
		if err := xml.Unmarshal(body, &call); err != nil {
			http.Error(w, "failed to decode body as soap envelope: "+err.Error(), http.StatusBadRequest)
			return
		}

		if call.TipoServico == "" || call.CepDestino == "" || call.Peso == "" {
			http.Error(w, "missing calcularFrete fields", http.StatusBadRequest)
			return
		}

		price, days := quoteFor(call.TipoServico, call.CepDestino, call.Peso)

		logger.Info("quote served",
			slog.String("tier", call.TipoServico),
			slog.String("cep", call.CepDestino),
			slog.String("peso", call.Peso),
			slog.String("price", price),
			slog.Int("days", days),
		)

		w.Header().Set("Content-Type", "text/xml; charset=utf-8")
		fmt.Fprintf(w, responseFormat, price, days)
	})

	logger.Info("listening", slog.String("addr", *addr))
	if err := http.ListenAndServe(*addr, nil); err != nil {
		logger.Error("server stopped", slog.Any("error", err))
	}
}

// quoteFor prices a request from a seed derived from its parameters, so the
// same cell always gets the same quote.
func quoteFor(tier string, cep string, peso string) (string, int) {
	seed := hashSeed(tier + "|" + cep + "|" + peso)
	rng := rand.New(rand.NewSource(seed))

	base := 18.90
	if tier == "EXP" {
		base = 31.50
	}

	weightKg, err := strconv.ParseFloat(strings.Replace(peso, ",", ".", 1), 64)
	if err != nil {
		weightKg = 1.0
	}

	price := base + weightKg*2.40
	price += price * (rng.Float64() - 0.5) * 0.2

	days := transitDays(cep)
	if tier == "EXP" {
		days = max(1, days-2)
	}

	return strings.Replace(fmt.Sprintf("%.2f", price), ".", ",", 1), days
}

// transitDays grows with the distance proxy of the CEP region digit.
func transitDays(cep string) int {
	if cep == "" {
		return 7
	}

	digit := int(cep[0] - '0')
	if digit < 0 || digit > 9 {
		return 7
	}

	return 3 + digit
}

func hashSeed(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
