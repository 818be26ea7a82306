package httpserver

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/go-petr/pet-bank-datagen/internal/domain"
	"github.com/go-petr/pet-bank-datagen/pkg/configpkg"
	"github.com/go-petr/pet-bank-datagen/pkg/web"
)

func testConfig() configpkg.Config {
	return configpkg.Config{
		Environement:        "test",
		TargetClients:       3,
		MinTransactions:     2,
		MaxTransactions:     6,
		WindowStart:         time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		WindowEnd:           time.Date(2025, time.October, 26, 0, 0, 0, 0, time.UTC),
		OpeningWindowDays:   30,
		OpeningAmountMin:    5000,
		OpeningAmountMax:    20000,
		AmountMin:           50,
		AmountMax:           5000,
		Seed:                42,
		Locale:              "es_MX",
		AccountNumberOffset: 10000,
	}
}

func newTestServer(t *testing.T) *Server {
	t.Helper()

	server, err := New(zerolog.Nop(), testConfig())
	if err != nil {
		t.Fatalf("New(logger, config) returned error: %v", err)
	}

	return server
}

func TestHealthz(t *testing.T) {
	server := newTestServer(t)

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if recorder.Code != http.StatusOK {
		t.Errorf("Status code: got %v, want %v", recorder.Code, http.StatusOK)
	}
}

func TestLocales(t *testing.T) {
	server := newTestServer(t)

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/locales", nil))

	res := web.Response{Data: &localesData{}}
	if err := json.NewDecoder(recorder.Body).Decode(&res); err != nil {
		t.Fatalf("Decoding response body error: %v", err)
	}

	got := res.Data.(*localesData).Locales
	if len(got) == 0 || !contains(got, "es_MX") {
		t.Errorf("locales = %v, want es_MX among them", got)
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}

	return false
}

func TestGenerateDatasetAndMetrics(t *testing.T) {
	server := newTestServer(t)

	generate := func() []byte {
		req := httptest.NewRequest(http.MethodPost, "/datasets", bytes.NewReader([]byte(`{"clients": 4}`)))
		recorder := httptest.NewRecorder()
		server.ServeHTTP(recorder, req)

		if recorder.Code != http.StatusOK {
			t.Fatalf("Status code: got %v, want %v, body %s", recorder.Code, http.StatusOK, recorder.Body.String())
		}

		return recorder.Body.Bytes()
	}

	first := generate()

	var res struct {
		Data struct {
			Dataset domain.Dataset        `json:"dataset"`
			Stats   domain.SynthesisStats `json:"stats"`
		} `json:"data"`
	}

	if err := json.Unmarshal(first, &res); err != nil {
		t.Fatalf("Decoding response body error: %v", err)
	}

	if got := len(res.Data.Dataset.Clients); got != 4 {
		t.Errorf("len(Clients) = %d, want 4", got)
	}

	if got, want := len(res.Data.Dataset.Transactions), res.Data.Stats.Realized(); got != want {
		t.Errorf("len(Transactions) = %d, stats report %d", got, want)
	}

	if second := generate(); !bytes.Equal(first, second) {
		t.Errorf("equal requests produced different datasets")
	}

	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body, err := io.ReadAll(recorder.Body)
	if err != nil {
		t.Fatalf("Reading metrics error: %v", err)
	}

	if !strings.Contains(string(body), "datagen_datasets_total 2") {
		t.Errorf("metrics do not count 2 datasets:\n%s", body)
	}
}
