package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/JFRG28/money-monitor-vWeb/internal/core"
	"github.com/JFRG28/money-monitor-vWeb/internal/log"
	"github.com/JFRG28/money-monitor-vWeb/internal/memory"
	"github.com/JFRG28/money-monitor-vWeb/internal/services"
)

type testEnvelope struct {
	Success    bool              `json:"success"`
	Data       json.RawMessage   `json:"data"`
	Message    string            `json:"message"`
	Errors     []core.FieldError `json:"errors"`
	Pagination *struct {
		Page  int `json:"page"`
		Limit int `json:"limit"`
		Total int `json:"total"`
		Pages int `json:"pages"`
	} `json:"pagination"`
}

func newTestHandler(t *testing.T, rateLimit int) http.Handler {
	t.Helper()

	store := memory.New()
	return NewServer(Options{
		Records:   services.NewRecordService(store, nil),
		Debts:     services.NewDebtService(store, nil),
		Balance:   services.NewBalanceService(store, nil),
		Dashboard: services.NewDashboardService(store, store),

		CacheSize:          10,
		CacheTTL:           time.Minute,
		RateLimitPerMinute: rateLimit,
		Logger:             log.New(log.DefaultConfig()),
	}).Handler()
}

func doRequest(t *testing.T, h http.Handler, method, target, body string) (*httptest.ResponseRecorder, testEnvelope) {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	var env testEnvelope
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope from %s %s: %v (body: %s)", method, target, err, rr.Body.String())
	}
	return rr, env
}

const validRecordBody = `{
	"concept": "Depósito",
	"amount": 281.00,
	"expense_type": "Variable",
	"payment_method": "Transferencia",
	"month": "Agosto",
	"year": 2025,
	"charge_date": "2025-08-10",
	"pay_date": "2025-08-15",
	"category": "E"
}`

func TestCreateRecordEnvelope(t *testing.T) {
	h := newTestHandler(t, 1000)

	rr, env := doRequest(t, h, http.MethodPost, "/api/records", validRecordBody)
	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body: %s)", rr.Code, rr.Body.String())
	}
	if !env.Success || env.Message == "" {
		t.Errorf("envelope = %+v, want success with message", env)
	}

	var rec core.Record
	if err := json.Unmarshal(env.Data, &rec); err != nil {
		t.Fatalf("decode record: %v", err)
	}
	if rec.ID == 0 || rec.Amount.Cents != 28100 || rec.Tag != "NA" {
		t.Errorf("created record = %+v", rec)
	}
}

func TestCreateRecordValidationErrorList(t *testing.T) {
	h := newTestHandler(t, 1000)

	rr, env := doRequest(t, h, http.MethodPost, "/api/records", `{"concept": ""}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	if env.Success {
		t.Error("success should be false")
	}
	// Every violation must come back at once, not just the first.
	if len(env.Errors) < 5 {
		t.Errorf("errors = %v, want the full violation list", env.Errors)
	}
}

func TestCreateRecordMalformedBody(t *testing.T) {
	h := newTestHandler(t, 1000)

	rr, env := doRequest(t, h, http.MethodPost, "/api/records", `{not json`)
	if rr.Code != http.StatusBadRequest || env.Success {
		t.Errorf("status = %d, success = %v; want 400, false", rr.Code, env.Success)
	}
}

func TestGetRecordNotFound(t *testing.T) {
	h := newTestHandler(t, 1000)

	rr, env := doRequest(t, h, http.MethodGet, "/api/records/42", "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
	if env.Success || env.Message == "" {
		t.Errorf("envelope = %+v", env)
	}

	rr, _ = doRequest(t, h, http.MethodGet, "/api/records/abc", "")
	if rr.Code != http.StatusBadRequest {
		t.Errorf("non-numeric id: status = %d, want 400", rr.Code)
	}
}

func TestListRecordsPaginationMeta(t *testing.T) {
	h := newTestHandler(t, 1000)

	for i := 0; i < 3; i++ {
		rr, _ := doRequest(t, h, http.MethodPost, "/api/records", validRecordBody)
		if rr.Code != http.StatusCreated {
			t.Fatalf("seed %d: status %d", i, rr.Code)
		}
	}

	rr, env := doRequest(t, h, http.MethodGet, "/api/records?page=1&limit=2", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if env.Pagination == nil {
		t.Fatal("pagination meta missing")
	}
	if env.Pagination.Total != 3 || env.Pagination.Pages != 2 || env.Pagination.Limit != 2 {
		t.Errorf("pagination = %+v", env.Pagination)
	}

	var records []core.Record
	if err := json.Unmarshal(env.Data, &records); err != nil {
		t.Fatalf("decode records: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("page size = %d, want 2", len(records))
	}
}

func TestListRecordsInvalidFilter(t *testing.T) {
	h := newTestHandler(t, 1000)

	rr, env := doRequest(t, h, http.MethodGet, "/api/records?month=Augusto&year=abc", "")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	if len(env.Errors) == 0 {
		t.Errorf("expected field errors, got %+v", env)
	}
}

func TestUpdateRecordPartialMerge(t *testing.T) {
	h := newTestHandler(t, 1000)

	_, created := doRequest(t, h, http.MethodPost, "/api/records", validRecordBody)
	var rec core.Record
	if err := json.Unmarshal(created.Data, &rec); err != nil {
		t.Fatalf("decode created: %v", err)
	}

	rr, env := doRequest(t, h, http.MethodPut, "/api/records/1", `{"amount": 300.50}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", rr.Code, rr.Body.String())
	}

	var updated core.Record
	if err := json.Unmarshal(env.Data, &updated); err != nil {
		t.Fatalf("decode updated: %v", err)
	}
	if updated.Amount.Cents != 30050 {
		t.Errorf("amount = %d, want 30050", updated.Amount.Cents)
	}
	// Fields absent from the patch keep their stored values.
	if updated.Concept != rec.Concept || updated.MonthName != rec.MonthName {
		t.Errorf("untouched fields changed: %+v", updated)
	}
}

// Bodies may carry keys the payload does not know (clients echo whole
// objects back, id and timestamps included); those keys are dropped,
// never rejected.
func TestMutationBodiesIgnoreUnknownKeys(t *testing.T) {
	h := newTestHandler(t, 1000)

	body := strings.TrimSuffix(validRecordBody, "\n}") + `,
	"extraneous": "ignored"
}`
	rr, _ := doRequest(t, h, http.MethodPost, "/api/records", body)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create with unknown key: status = %d, want 201 (body: %s)", rr.Code, rr.Body.String())
	}

	// GET-then-PUT the whole object: the echoed read-only fields must
	// not get the update rejected.
	_, env := doRequest(t, h, http.MethodGet, "/api/records/1", "")
	rr, env = doRequest(t, h, http.MethodPut, "/api/records/1", string(env.Data))
	if rr.Code != http.StatusOK {
		t.Fatalf("PUT of echoed object: status = %d, want 200 (body: %s)", rr.Code, rr.Body.String())
	}
	var updated core.Record
	if err := json.Unmarshal(env.Data, &updated); err != nil {
		t.Fatalf("decode updated: %v", err)
	}
	if updated.Amount.Cents != 28100 || updated.Concept != "Depósito" {
		t.Errorf("round-tripped record changed: %+v", updated)
	}

	rr, _ = doRequest(t, h, http.MethodPost, "/api/debts",
		`{"type": "T", "item": "TDC", "amount": 100.00, "date": "2025-08-01", "id": 99}`)
	if rr.Code != http.StatusCreated {
		t.Errorf("debt with unknown key: status = %d, want 201", rr.Code)
	}

	rr, _ = doRequest(t, h, http.MethodPost, "/api/balance",
		`{"type": "D", "concept": "Cuenta", "amount": 10.00, "expected_amount": 10.00, "created_at": "2025-08-01T00:00:00Z"}`)
	if rr.Code != http.StatusCreated {
		t.Errorf("balance item with unknown key: status = %d, want 201", rr.Code)
	}
}

func TestDeleteRecordThenGet(t *testing.T) {
	h := newTestHandler(t, 1000)

	doRequest(t, h, http.MethodPost, "/api/records", validRecordBody)

	rr, env := doRequest(t, h, http.MethodDelete, "/api/records/1", "")
	if rr.Code != http.StatusOK || !env.Success {
		t.Fatalf("delete: status = %d, envelope = %+v", rr.Code, env)
	}

	rr, _ = doRequest(t, h, http.MethodGet, "/api/records/1", "")
	if rr.Code != http.StatusNotFound {
		t.Errorf("get after delete: status = %d, want 404", rr.Code)
	}

	rr, _ = doRequest(t, h, http.MethodDelete, "/api/records/1", "")
	if rr.Code != http.StatusNotFound {
		t.Errorf("second delete: status = %d, want 404", rr.Code)
	}
}

func TestDashboardScenarioAndInvalidation(t *testing.T) {
	h := newTestHandler(t, 1000)

	bodies := []string{
		validRecordBody, // 281.00 E
		`{"concept": "Puntos", "amount": -10.00, "expense_type": "Variable",
		  "payment_method": "Transferencia", "month": "Agosto", "year": 2025,
		  "charge_date": "2025-08-11", "pay_date": "2025-08-11", "category": "I"}`,
		`{"concept": "Vianney má", "amount": 867.00, "expense_type": "Variable",
		  "payment_method": "Transferencia", "month": "Agosto", "year": 2025,
		  "charge_date": "2025-08-12", "pay_date": "2025-08-12", "category": "E"}`,
	}
	for i, b := range bodies {
		rr, _ := doRequest(t, h, http.MethodPost, "/api/records", b)
		if rr.Code != http.StatusCreated {
			t.Fatalf("seed %d: status %d", i, rr.Code)
		}
	}

	rr, env := doRequest(t, h, http.MethodGet, "/api/dashboard?month=Agosto&year=2025", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	var dash struct {
		TotalExpenses  core.Money `json:"total_expenses"`
		TotalIncome    core.Money `json:"total_income"`
		MonthlyBalance core.Money `json:"monthly_balance"`
	}
	if err := json.Unmarshal(env.Data, &dash); err != nil {
		t.Fatalf("decode dashboard: %v", err)
	}
	if dash.TotalExpenses.Cents != 114800 {
		t.Errorf("total expenses = %s, want 1148.00", dash.TotalExpenses)
	}
	if dash.TotalIncome.Cents != -1000 {
		t.Errorf("total income = %s, want -10.00", dash.TotalIncome)
	}
	if dash.MonthlyBalance.Cents != -115800 {
		t.Errorf("monthly balance = %s, want -1158.00", dash.MonthlyBalance)
	}

	// A mutation must invalidate the cached payload.
	doRequest(t, h, http.MethodDelete, "/api/records/3", "")

	_, env = doRequest(t, h, http.MethodGet, "/api/dashboard?month=Agosto&year=2025", "")
	if err := json.Unmarshal(env.Data, &dash); err != nil {
		t.Fatalf("decode dashboard: %v", err)
	}
	if dash.TotalExpenses.Cents != 28100 {
		t.Errorf("total expenses after delete = %s, want 281.00", dash.TotalExpenses)
	}
}

func TestDashboardInvalidScope(t *testing.T) {
	h := newTestHandler(t, 1000)

	rr, env := doRequest(t, h, http.MethodGet, "/api/dashboard?month=August&year=1990", "")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	if len(env.Errors) != 2 {
		t.Errorf("errors = %v, want violations on month and year", env.Errors)
	}
}

func TestCatalogs(t *testing.T) {
	h := newTestHandler(t, 1000)

	rr, env := doRequest(t, h, http.MethodGet, "/api/catalogs/months", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	var months []string
	if err := json.Unmarshal(env.Data, &months); err != nil {
		t.Fatalf("decode months: %v", err)
	}
	if len(months) != 12 || months[7] != "Agosto" {
		t.Errorf("months = %v", months)
	}

	_, env = doRequest(t, h, http.MethodGet, "/api/catalogs/expense-types", "")
	var types []string
	if err := json.Unmarshal(env.Data, &types); err != nil {
		t.Fatalf("decode types: %v", err)
	}
	if len(types) != 4 {
		t.Errorf("expense types = %v, want 4 entries", types)
	}
}

func TestDebtEndpoints(t *testing.T) {
	h := newTestHandler(t, 1000)

	body := `{"type": "T", "item": "TDC Banorte", "amount": 5000.00, "date": "2025-08-01"}`
	rr, env := doRequest(t, h, http.MethodPost, "/api/debts", body)
	if rr.Code != http.StatusCreated || !env.Success {
		t.Fatalf("create debt: status = %d, body = %s", rr.Code, rr.Body.String())
	}

	rr, env = doRequest(t, h, http.MethodGet, "/api/debts", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("list debts: status = %d", rr.Code)
	}
	var debts []core.Debt
	if err := json.Unmarshal(env.Data, &debts); err != nil {
		t.Fatalf("decode debts: %v", err)
	}
	if len(debts) != 1 || debts[0].Amount.Cents != 500000 {
		t.Errorf("debts = %+v", debts)
	}

	rr, env = doRequest(t, h, http.MethodPost, "/api/debts", `{"type": "Z"}`)
	if rr.Code != http.StatusBadRequest || len(env.Errors) == 0 {
		t.Errorf("invalid debt: status = %d, errors = %v", rr.Code, env.Errors)
	}
}

func TestBalanceDifferenceComputed(t *testing.T) {
	h := newTestHandler(t, 1000)

	body := `{"type": "D", "concept": "Cuenta nómina", "amount": 900.00, "expected_amount": 1000.00}`
	rr, env := doRequest(t, h, http.MethodPost, "/api/balance", body)
	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d (body: %s)", rr.Code, rr.Body.String())
	}

	var item core.BalanceItem
	if err := json.Unmarshal(env.Data, &item); err != nil {
		t.Fatalf("decode item: %v", err)
	}
	if item.Difference == nil || item.Difference.Cents != 10000 {
		t.Errorf("difference = %v, want 100.00", item.Difference)
	}
}

func TestHealthEndpoints(t *testing.T) {
	h := newTestHandler(t, 1000)

	rr, _ := doRequest(t, h, http.MethodGet, "/healthz", "")
	if rr.Code != http.StatusOK {
		t.Errorf("healthz = %d, want 200", rr.Code)
	}
	rr, _ = doRequest(t, h, http.MethodGet, "/readyz", "")
	if rr.Code != http.StatusOK {
		t.Errorf("readyz without pinger = %d, want 200", rr.Code)
	}
}

func TestUnknownRouteEnvelope(t *testing.T) {
	h := newTestHandler(t, 1000)

	rr, env := doRequest(t, h, http.MethodGet, "/api/nope", "")
	if rr.Code != http.StatusNotFound || env.Success {
		t.Errorf("status = %d, envelope = %+v", rr.Code, env)
	}
}

func TestRateLimitOnMutations(t *testing.T) {
	h := newTestHandler(t, 2)

	for i := 0; i < 2; i++ {
		rr, _ := doRequest(t, h, http.MethodPost, "/api/records", validRecordBody)
		if rr.Code != http.StatusCreated {
			t.Fatalf("request %d: status = %d", i, rr.Code)
		}
	}

	rr, env := doRequest(t, h, http.MethodPost, "/api/records", validRecordBody)
	if rr.Code != http.StatusTooManyRequests || env.Success {
		t.Errorf("status = %d, want 429", rr.Code)
	}

	// Reads stay unthrottled.
	rr, _ = doRequest(t, h, http.MethodGet, "/api/records", "")
	if rr.Code != http.StatusOK {
		t.Errorf("read after limit: status = %d, want 200", rr.Code)
	}
}
