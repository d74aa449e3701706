package router

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/mamadbah2/dairy/internal/domain/models"
	"github.com/mamadbah2/dairy/internal/repository/memory"
	"github.com/mamadbah2/dairy/internal/repository/snapshot"
	"github.com/mamadbah2/dairy/internal/server/handlers"
	"github.com/mamadbah2/dairy/internal/service/farm"
	"github.com/mamadbah2/dairy/internal/service/insight"
	"github.com/mamadbah2/dairy/internal/service/reporting"
)

func clock() time.Time { return time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC) }

func newTestEngine(t *testing.T, secret string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := snapshot.NewRepository(memory.New(), nil)
	svc := farm.NewService(repo, models.DefaultCostModel(), clock, nil)
	insightSvc := insight.NewService(nil, svc, nil, nil, nil)
	reportSvc := reporting.NewService(svc, nil, nil, nil, "", nil)

	return New(Handlers{
		Farm:    handlers.NewFarmHandler(svc, nil),
		Metrics: handlers.NewMetricsHandler(svc, nil),
		Insight: handlers.NewInsightHandler(insightSvc, nil),
		Reports: handlers.NewReportHandler(reportSvc, nil, nil),
	}, secret, nil)
}

func do(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return out
}

func TestHealthz(t *testing.T) {
	w := do(t, newTestEngine(t, ""), http.MethodGet, "/healthz", "")
	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", w.Code)
	}
}

func TestMutationAndMetricsFlow(t *testing.T) {
	r := newTestEngine(t, "")

	w := do(t, r, http.MethodPost, "/api/cows", `{"name":"Gauri","cowNumber":"7","purchasePrice":"50000"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("register cow: %d %s", w.Code, w.Body.String())
	}
	cowID, _ := decode(t, w)["id"].(string)
	if cowID == "" {
		t.Fatalf("cow id missing")
	}

	w = do(t, r, http.MethodPost, "/api/milk-sales", `{"quantity":10,"rate":32}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("add sale: %d %s", w.Code, w.Body.String())
	}

	w = do(t, r, http.MethodGet, "/api/metrics/daily", "")
	daily := decode(t, w)
	if daily["milkRevenue"] != "320" || daily["date"] != "2026-03-15" {
		t.Fatalf("unexpected daily summary %v", daily)
	}

	w = do(t, r, http.MethodGet, "/api/metrics/herd", "")
	if herd := decode(t, w); herd["value"] != "50000" || herd["activeCows"] != float64(1) {
		t.Fatalf("unexpected herd %v", herd)
	}

	w = do(t, r, http.MethodPost, "/api/animals/"+cowID+"/status", `{"status":"Sold"}`)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("sale without price: expected 422, got %d", w.Code)
	}

	w = do(t, r, http.MethodPost, "/api/animals/"+cowID+"/status", `{"status":"Sold","salePrice":"70000"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("sell cow: %d %s", w.Code, w.Body.String())
	}

	w = do(t, r, http.MethodGet, "/api/cows?archived=true", "")
	var archived []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &archived); err != nil || len(archived) != 1 {
		t.Fatalf("unexpected archived cows %s", w.Body.String())
	}

	w = do(t, r, http.MethodGet, "/api/metrics/pnl?period=1m", "")
	if pnl := decode(t, w); pnl["animalSaleRevenue"] != "70000" {
		t.Fatalf("unexpected pnl %v", pnl)
	}
}

func TestErrorMapping(t *testing.T) {
	r := newTestEngine(t, "")

	cases := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"missing fields", http.MethodPost, "/api/cows", `{}`, http.StatusUnprocessableEntity},
		{"malformed body", http.MethodPost, "/api/cows", `{"name":`, http.StatusBadRequest},
		{"empty body", http.MethodPost, "/api/milk-sales", "", http.StatusBadRequest},
		{"non-numeric quantity", http.MethodPost, "/api/milk-sales", `{"quantity":"abc","rate":"32"}`, http.StatusUnprocessableEntity},
		{"wrong field type", http.MethodPost, "/api/cows", `{"name":5}`, http.StatusUnprocessableEntity},
		{"unknown animal", http.MethodPost, "/api/animals/ghost/status", `{"status":"Dead","confirmed":true}`, http.StatusNotFound},
		{"unknown worker", http.MethodPost, "/api/labours/ghost/attendance", `{"status":"present"}`, http.StatusNotFound},
		{"unknown period", http.MethodGet, "/api/metrics/report?period=2W", "", http.StatusUnprocessableEntity},
		{"unknown calf growth", http.MethodGet, "/api/calves/ghost/growth", "", http.StatusNotFound},
		{"unknown investment", http.MethodGet, "/api/animals/ghost/investment", "", http.StatusNotFound},
		{"unknown diet", http.MethodPost, "/api/animals/ghost/diet/keto", "", http.StatusUnprocessableEntity},
		{"calculator without input", http.MethodGet, "/api/calculator", "", http.StatusUnprocessableEntity},
		{"bad archived flag", http.MethodGet, "/api/calves?archived=maybe", "", http.StatusUnprocessableEntity},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := do(t, r, tc.method, tc.path, tc.body)
			if w.Code != tc.want {
				t.Fatalf("expected %d, got %d: %s", tc.want, w.Code, w.Body.String())
			}
			if _, ok := decode(t, w)["error"]; !ok {
				t.Fatalf("error body missing: %s", w.Body.String())
			}
		})
	}
}

func TestCalculator(t *testing.T) {
	r := newTestEngine(t, "")
	w := do(t, r, http.MethodGet, "/api/calculator?kg=103", "")
	if out := decode(t, w); out["litres"] != "100" {
		t.Fatalf("unexpected conversion %v", out)
	}
	w = do(t, r, http.MethodGet, "/api/calculator?litres=100", "")
	if out := decode(t, w); out["kg"] != "103" {
		t.Fatalf("unexpected conversion %v", out)
	}
}

func TestToggleModule(t *testing.T) {
	r := newTestEngine(t, "")
	w := do(t, r, http.MethodPost, "/api/modules/FEED_LOG/toggle", "")
	if w.Code != http.StatusOK {
		t.Fatalf("toggle: %d %s", w.Code, w.Body.String())
	}
	modules, _ := decode(t, w)["dashboardModules"].([]any)
	if len(modules) != len(models.DefaultModules()) {
		t.Fatalf("unexpected modules %v", modules)
	}
}

func TestSyncWithoutIntegrations(t *testing.T) {
	w := do(t, newTestEngine(t, ""), http.MethodPost, "/api/sync", "")
	if w.Code != http.StatusOK {
		t.Fatalf("sync: %d %s", w.Code, w.Body.String())
	}
	if out := decode(t, w); out["insight"] != insight.FallbackInsight {
		t.Fatalf("unexpected sync result %v", out)
	}
}

func TestScanSlipWithoutProviderIsNotice(t *testing.T) {
	r := newTestEngine(t, "")

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("image", "slip.jpg")
	if err != nil {
		t.Fatalf("form file: %v", err)
	}
	_, _ = part.Write([]byte("jpeg bytes"))
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/slips/scan", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("scan: %d %s", w.Code, w.Body.String())
	}
	if _, ok := decode(t, w)["notice"]; !ok {
		t.Fatalf("expected notice, got %s", w.Body.String())
	}

	if w := do(t, r, http.MethodPost, "/api/slips/scan", ""); w.Code != http.StatusBadRequest {
		t.Fatalf("missing image: expected 400, got %d", w.Code)
	}
}

func TestDailyReportEndpoints(t *testing.T) {
	r := newTestEngine(t, "")
	w := do(t, r, http.MethodGet, "/api/reports/daily", "")
	if out := decode(t, w); out["summary"] == "" || out["report"] == nil {
		t.Fatalf("unexpected report %v", out)
	}
	if w := do(t, r, http.MethodPost, "/api/reports/daily", ""); w.Code != http.StatusAccepted {
		t.Fatalf("publish: expected 202, got %d", w.Code)
	}
	if w := do(t, r, http.MethodPost, "/api/messages", `{"to":"1","message":"hi"}`); w.Code != http.StatusServiceUnavailable {
		t.Fatalf("messages without whatsapp: expected 503, got %d", w.Code)
	}
}

func TestBearerAuth(t *testing.T) {
	const secret = "s3cret"
	r := newTestEngine(t, secret)

	if w := do(t, r, http.MethodGet, "/healthz", ""); w.Code != http.StatusOK {
		t.Fatalf("healthz must stay public, got %d", w.Code)
	}
	if w := do(t, r, http.MethodGet, "/api/snapshot", ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}

	sign := func(key string, method jwt.SigningMethod) string {
		token := jwt.NewWithClaims(method, jwt.RegisteredClaims{
			Subject:   "owner",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		})
		s, err := token.SignedString([]byte(key))
		if err != nil {
			t.Fatalf("sign: %v", err)
		}
		return s
	}

	for _, tc := range []struct {
		name  string
		token string
		want  int
	}{
		{"valid", sign(secret, jwt.SigningMethodHS256), http.StatusOK},
		{"wrong key", sign("other", jwt.SigningMethodHS256), http.StatusUnauthorized},
		{"wrong algorithm", sign(secret, jwt.SigningMethodHS512), http.StatusUnauthorized},
	} {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/snapshot", nil)
			req.Header.Set("Authorization", "Bearer "+tc.token)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, w.Code)
			}
		})
	}
}
