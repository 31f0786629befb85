package httptransport_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"marketplace-ledger-service/internal/events"
	"marketplace-ledger-service/internal/ledger"
	"marketplace-ledger-service/internal/metrics"
	"marketplace-ledger-service/internal/service"
	"marketplace-ledger-service/internal/store/memory"
	httptransport "marketplace-ledger-service/internal/transport/http"
)

// ---- helpers ----

func newTestRouter(t *testing.T) (http.Handler, *events.Recorder) {
	t.Helper()
	rec := &events.Recorder{}
	m := metrics.New()
	svc := service.NewLedgerService(memory.New(), ledger.New(ledger.DefaultPolicy()),
		service.WithEmitter(rec),
		service.WithMetrics(m),
	)
	return httptransport.Routes(httptransport.NewHandler(svc), m.Handler()), rec
}

func do(t *testing.T, router http.Handler, method, path, caller, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if caller != "" {
		req.Header.Set(httptransport.CallerHeader, caller)
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func expectStatus(t *testing.T, rr *httptest.ResponseRecorder, code int) {
	t.Helper()
	if rr.Code != code {
		t.Fatalf("expected %d, got %d, body=%s", code, rr.Code, rr.Body.String())
	}
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var got map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v, body=%s", err, rr.Body.String())
	}
	return got
}

// ---- tests ----

func TestHTTP_JobEscrowScenario(t *testing.T) {
	router, rec := newTestRouter(t)

	rr := do(t, router, http.MethodPost, "/jobs", "", `{"id":"J1","creator":"GC","maker":"GM","price":"100"}`)
	expectStatus(t, rr, http.StatusCreated)
	got := decodeBody(t, rr)
	if got["price"] != "100" || got["is_completed"] != false {
		t.Fatalf("unexpected job: %v", got)
	}

	rr = do(t, router, http.MethodPost, "/jobs/J1/release", "", "")
	expectStatus(t, rr, http.StatusConflict)
	if len(rec.Events()) != 0 {
		t.Fatalf("expected no events, got %v", rec.Events())
	}

	rr = do(t, router, http.MethodPost, "/jobs/J1/complete", "", "")
	expectStatus(t, rr, http.StatusOK)

	rr = do(t, router, http.MethodPost, "/jobs/J1/release", "", "")
	expectStatus(t, rr, http.StatusOK)
	if got := decodeBody(t, rr); got["event"] != "PaymentReleased" || got["job_id"] != "J1" {
		t.Fatalf("unexpected release response: %v", got)
	}

	evs := rec.Events()
	if len(evs) != 1 || evs[0] != (events.PaymentReleased{JobID: "J1"}) {
		t.Fatalf("expected one PaymentReleased(J1), got %v", evs)
	}

	rr = do(t, router, http.MethodGet, "/jobs/J1", "", "")
	expectStatus(t, rr, http.StatusOK)
	if got := decodeBody(t, rr); got["is_completed"] != true {
		t.Fatalf("expected completed job, got %v", got)
	}
}

func TestHTTP_ResaleScenario(t *testing.T) {
	router, rec := newTestRouter(t)

	expectStatus(t, do(t, router, http.MethodPost, "/nfts", "", `{"id":"N1","owner":"GALICE","metadata":"ipfs://m"}`), http.StatusCreated)

	rr := do(t, router, http.MethodPost, "/nfts/N1/listing", "GALICE", `{"price":"50"}`)
	expectStatus(t, rr, http.StatusOK)
	if got := decodeBody(t, rr); got["status"] != "listed" || got["price"] != "50" {
		t.Fatalf("unexpected listing: %v", got)
	}

	rr = do(t, router, http.MethodPost, "/nfts/N1/buy", "", `{"buyer":"GBOB"}`)
	expectStatus(t, rr, http.StatusOK)

	rr = do(t, router, http.MethodGet, "/nfts/N1", "", "")
	expectStatus(t, rr, http.StatusOK)
	if got := decodeBody(t, rr); got["owner"] != "GBOB" {
		t.Fatalf("expected owner GBOB, got %v", got)
	}

	rr = do(t, router, http.MethodPost, "/nfts/N1/buy", "", `{"buyer":"GCAROL"}`)
	expectStatus(t, rr, http.StatusConflict)

	rr = do(t, router, http.MethodGet, "/nfts/N1/listing", "", "")
	expectStatus(t, rr, http.StatusOK)
	if got := decodeBody(t, rr); got["status"] != "sold" {
		t.Fatalf("expected sold listing, got %v", got)
	}

	evs := rec.Events()
	if len(evs) != 1 || evs[0] != (events.NFTSold{NFTID: "N1"}) {
		t.Fatalf("expected one NFTSold(N1), got %v", evs)
	}
}

func TestHTTP_Accounts(t *testing.T) {
	router, _ := newTestRouter(t)

	rr := do(t, router, http.MethodPost, "/accounts", "GALICE", `{"role":"creator","address":"GALICE"}`)
	expectStatus(t, rr, http.StatusCreated)

	rr = do(t, router, http.MethodGet, "/accounts/GALICE", "", "")
	expectStatus(t, rr, http.StatusOK)
	if got := decodeBody(t, rr); got["role"] != "creator" {
		t.Fatalf("expected creator role, got %v", got)
	}

	// someone else's address
	rr = do(t, router, http.MethodPost, "/accounts", "GMALLORY", `{"role":"shopper","address":"GALICE"}`)
	expectStatus(t, rr, http.StatusForbidden)

	rr = do(t, router, http.MethodPost, "/accounts", "GBOB", `{"role":"admin","address":"GBOB"}`)
	expectStatus(t, rr, http.StatusBadRequest)

	rr = do(t, router, http.MethodPost, "/accounts", "GBOB", `{"role":"Maker","address":"GBOB"}`)
	expectStatus(t, rr, http.StatusCreated)
	if got := decodeBody(t, rr); got["role"] != "maker" {
		t.Fatalf("expected role maker, got %v", got)
	}
}

func TestHTTP_ErrorMapping(t *testing.T) {
	router, rec := newTestRouter(t)

	tests := []struct {
		name   string
		method string
		path   string
		caller string
		body   string
		want   int
	}{
		{"missing job", http.MethodGet, "/jobs/NOPE", "", "", http.StatusNotFound},
		{"complete missing job", http.MethodPost, "/jobs/NOPE/complete", "", "", http.StatusNotFound},
		{"missing account", http.MethodGet, "/accounts/GNOBODY", "", "", http.StatusNotFound},
		{"missing listing", http.MethodGet, "/nfts/N9/listing", "", "", http.StatusNotFound},
		{"buy unlisted", http.MethodPost, "/nfts/N9/buy", "", `{"buyer":"GBOB"}`, http.StatusNotFound},
		{"bad json", http.MethodPost, "/jobs", "", `{"id":`, http.StatusBadRequest},
		{"bad price", http.MethodPost, "/jobs", "", `{"id":"J2","creator":"GC","maker":"GM","price":"abc"}`, http.StatusBadRequest},
		{"bad id", http.MethodPost, "/nfts", "", `{"id":"has space","owner":"GALICE","metadata":""}`, http.StatusBadRequest},
		{"list without caller", http.MethodPost, "/nfts/N1/listing", "", `{"price":"5"}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, router, tt.method, tt.path, tt.caller, tt.body)
			expectStatus(t, rr, tt.want)
			if msg := decodeBody(t, rr)["message"]; msg == nil || msg == "" {
				t.Fatalf("expected error message, body=%s", rr.Body.String())
			}
		})
	}

	if len(rec.Events()) != 0 {
		t.Fatalf("expected no events after failures, got %v", rec.Events())
	}
}

func TestHTTP_ListRequiresOwner(t *testing.T) {
	router, _ := newTestRouter(t)

	expectStatus(t, do(t, router, http.MethodPost, "/nfts", "", `{"id":"N1","owner":"GALICE","metadata":""}`), http.StatusCreated)

	rr := do(t, router, http.MethodPost, "/nfts/N1/listing", "GMALLORY", `{"price":"1"}`)
	expectStatus(t, rr, http.StatusForbidden)

	rr = do(t, router, http.MethodGet, "/nfts/N1/listing", "", "")
	expectStatus(t, rr, http.StatusNotFound)
}

func TestHTTP_HealthAndMetrics(t *testing.T) {
	router, _ := newTestRouter(t)

	rr := do(t, router, http.MethodGet, "/health", "", "")
	expectStatus(t, rr, http.StatusOK)
	if strings.TrimSpace(rr.Body.String()) != "ok" {
		t.Fatalf("expected ok, got %s", rr.Body.String())
	}

	expectStatus(t, do(t, router, http.MethodGet, "/jobs/NOPE", "", ""), http.StatusNotFound)

	rr = do(t, router, http.MethodGet, "/metrics", "", "")
	expectStatus(t, rr, http.StatusOK)
	if !strings.Contains(rr.Body.String(), "ledger_calls_total") {
		t.Fatalf("expected ledger_calls_total in metrics output")
	}
}
