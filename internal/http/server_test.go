package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cashbook/internal/core"
	"cashbook/internal/ledger"
	"cashbook/internal/log"
	"cashbook/internal/store/memory"
)

func testLogger() *log.Logger {
	return log.New(log.Config{Handler: slog.NewTextHandler(io.Discard, nil)})
}

type testEnv struct {
	server  *Server
	service *ledger.Service
	cookie  *http.Cookie
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st := memory.New()
	logger := testLogger()
	service := ledger.NewService(st, logger, ledger.WithClock(func() time.Time {
		return time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC)
	}))

	hash, err := HashPassword("secret")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if _, err := service.SeedUser(context.Background(), "alice", hash); err != nil {
		t.Fatalf("SeedUser: %v", err)
	}

	srv := NewServer(":0", service, st, time.Hour, logger)
	t.Cleanup(func() { _ = srv.Shutdown(context.Background()) })

	env := &testEnv{server: srv, service: service}
	env.login(t, "alice", "secret")
	return env
}

func (e *testEnv) login(t *testing.T, username, password string) {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"username": username, "password": password})
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	e.server.Server.Handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, body %s", rec.Code, rec.Body.String())
	}
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookieName {
			e.cookie = c
			return
		}
	}
	t.Fatal("login did not set a session cookie")
}

func (e *testEnv) do(t *testing.T, method, target string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, body)
	if e.cookie != nil {
		req.AddCookie(e.cookie)
	}
	rec := httptest.NewRecorder()
	e.server.Server.Handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return v
}

func addTransaction(t *testing.T, env *testEnv, payload map[string]any) transactionView {
	t.Helper()
	rec := env.do(t, http.MethodPost, "/api/transactions", payload)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add transaction status = %d, body %s", rec.Code, rec.Body.String())
	}
	return decodeBody[transactionView](t, rec)
}

func TestHealthEndpoints(t *testing.T) {
	env := newTestEnv(t)
	for _, path := range []string{"/healthz", "/readyz"} {
		rec := env.do(t, http.MethodGet, path, nil)
		if rec.Code != http.StatusOK {
			t.Errorf("%s status = %d, want 200", path, rec.Code)
		}
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	env := newTestEnv(t)

	body, _ := json.Marshal(map[string]string{"username": "alice", "password": "wrong"})
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	env.server.Server.Handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("wrong password status = %d, want 401", rec.Code)
	}

	body, _ = json.Marshal(map[string]string{"username": "nobody", "password": "x"})
	req = httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	rec = httptest.NewRecorder()
	env.server.Server.Handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("unknown user status = %d, want 401", rec.Code)
	}
}

func TestAPIRequiresSession(t *testing.T) {
	env := newTestEnv(t)
	env.cookie = nil
	rec := env.do(t, http.MethodGet, "/api/dashboard", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestLogoutInvalidatesSession(t *testing.T) {
	env := newTestEnv(t)
	if rec := env.do(t, http.MethodPost, "/logout", nil); rec.Code != http.StatusNoContent {
		t.Fatalf("logout status = %d", rec.Code)
	}
	if rec := env.do(t, http.MethodGet, "/api/dashboard", nil); rec.Code != http.StatusUnauthorized {
		t.Errorf("status after logout = %d, want 401", rec.Code)
	}
}

func TestAddAndDashboard(t *testing.T) {
	env := newTestEnv(t)

	added := addTransaction(t, env, map[string]any{
		"description":  "salary",
		"amount":       "3000.00",
		"kind":         "income",
		"category":     "Salário",
		"due_date":     "2026-08-05",
		"settled":      true,
		"payment_date": "2026-08-05",
	})
	if added.ID == "" || added.Status != core.LabelReceived {
		t.Errorf("added = %+v", added)
	}

	addTransaction(t, env, map[string]any{
		"description": "rent",
		"amount":      "1200",
		"kind":        "expense",
		"category":    "Moradia",
		"due_date":    "2026-08-10",
		"settled":     true,
	})

	rec := env.do(t, http.MethodGet, "/api/dashboard", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("dashboard status = %d", rec.Code)
	}
	view := decodeBody[dashboardView](t, rec)
	if len(view.Transactions) != 2 {
		t.Fatalf("dashboard has %d transactions, want 2", len(view.Transactions))
	}
	// due date descending
	if view.Transactions[0].Description != "rent" {
		t.Errorf("first transaction = %s, want rent", view.Transactions[0].Description)
	}
	if view.Balance.Cents != 180000 {
		t.Errorf("balance = %d, want 180000", view.Balance.Cents)
	}
	if len(view.NetFlow) != 6 {
		t.Errorf("net flow has %d points, want 6", len(view.NetFlow))
	}
	if len(view.ByCategory.Labels) != 1 || view.ByCategory.Labels[0] != "Moradia" {
		t.Errorf("by_category labels = %v", view.ByCategory.Labels)
	}
}

func TestDashboardFilters(t *testing.T) {
	env := newTestEnv(t)

	addTransaction(t, env, map[string]any{
		"description": "salary", "amount": "3000", "kind": "income",
		"category": "Salário", "due_date": "2026-08-05",
		"settled": true, "payment_date": "2026-08-05",
	})
	addTransaction(t, env, map[string]any{
		"description": "invoice", "amount": "999", "kind": "expense",
		"category": "Outros", "due_date": "2026-08-20",
	})

	rec := env.do(t, http.MethodGet, "/api/dashboard?filter_status=settled", nil)
	view := decodeBody[dashboardView](t, rec)
	if len(view.Transactions) != 1 || view.Transactions[0].Description != "salary" {
		t.Errorf("settled filter = %+v", view.Transactions)
	}

	rec = env.do(t, http.MethodGet, "/api/dashboard?filter_type=expense", nil)
	view = decodeBody[dashboardView](t, rec)
	if len(view.Transactions) != 1 || view.Transactions[0].Description != "invoice" {
		t.Errorf("kind filter = %+v", view.Transactions)
	}

	rec = env.do(t, http.MethodGet, "/api/dashboard?filter_date=2026-08-05", nil)
	view = decodeBody[dashboardView](t, rec)
	if len(view.Transactions) != 1 || view.Transactions[0].Description != "salary" {
		t.Errorf("date filter = %+v", view.Transactions)
	}

	// balance is unchanged by filters
	if view.Balance.Cents != 300000 {
		t.Errorf("filtered balance = %d, want 300000", view.Balance.Cents)
	}
}

func TestAddTransactionInvalidAmount(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodPost, "/api/transactions", map[string]any{
		"description": "x", "amount": "abc", "kind": "expense",
		"category": "Outros", "due_date": "2026-08-01",
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", rec.Code)
	}
}

func TestEditTransaction(t *testing.T) {
	env := newTestEnv(t)
	added := addTransaction(t, env, map[string]any{
		"description": "rent", "amount": "1200", "kind": "expense",
		"category": "Moradia", "due_date": "2026-08-10",
	})

	rec := env.do(t, http.MethodPost, "/api/transactions/edit", map[string]any{
		"id": added.ID, "description": "rent august", "amount": "1250",
		"kind": "expense", "category": "Moradia", "due_date": "2026-08-12",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("edit status = %d, body %s", rec.Code, rec.Body.String())
	}
	got := decodeBody[transactionView](t, rec)
	if got.Description != "rent august" || got.Amount.Cents != 125000 {
		t.Errorf("edit result = %+v", got)
	}

	rec = env.do(t, http.MethodPost, "/api/transactions/edit", map[string]any{
		"id": "ghost", "description": "x", "amount": "1",
		"kind": "expense", "category": "Outros", "due_date": "2026-08-01",
	})
	if rec.Code != http.StatusNotFound {
		t.Errorf("edit missing status = %d, want 404", rec.Code)
	}
}

func TestSettleAndDeleteTransaction(t *testing.T) {
	env := newTestEnv(t)
	added := addTransaction(t, env, map[string]any{
		"description": "invoice", "amount": "999", "kind": "expense",
		"category": "Outros", "due_date": "2026-09-20",
	})

	rec := env.do(t, http.MethodPost, "/api/transactions/settle", map[string]any{"id": added.ID})
	if rec.Code != http.StatusOK {
		t.Fatalf("settle status = %d", rec.Code)
	}
	got := decodeBody[transactionView](t, rec)
	if got.Status != core.LabelPaid {
		t.Errorf("status = %q, want paid", got.Status)
	}
	if got.PaymentDate.String() != "2026-08-31" {
		t.Errorf("payment date = %q, want today", got.PaymentDate.String())
	}

	rec = env.do(t, http.MethodPost, "/api/transactions/delete", map[string]any{"id": added.ID})
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}
	rec = env.do(t, http.MethodPost, "/api/transactions/delete", map[string]any{"id": added.ID})
	if rec.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", rec.Code)
	}
}

func TestReportsEndpoints(t *testing.T) {
	env := newTestEnv(t)

	addTransaction(t, env, map[string]any{
		"description": "salary", "amount": "3000", "kind": "income",
		"category": "Salário", "due_date": "2026-08-05",
		"settled": true, "payment_date": "2026-08-05",
	})
	addTransaction(t, env, map[string]any{
		"description": "invoice", "amount": "999", "kind": "expense",
		"category": "Outros", "due_date": "2026-08-20",
	})

	rec := env.do(t, http.MethodGet, "/api/reports", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("reports status = %d", rec.Code)
	}
	simple := decodeBody[simpleReportView](t, rec)
	if len(simple.Income) != 1 || len(simple.Expense) != 0 {
		t.Errorf("simple report = %d income / %d expense", len(simple.Income), len(simple.Expense))
	}

	rec = env.do(t, http.MethodGet, "/api/reports/detailed", nil)
	detailed := decodeBody[detailedReportView](t, rec)
	if len(detailed.Transactions) != 2 {
		t.Errorf("detailed report = %d transactions, want 2", len(detailed.Transactions))
	}
	if detailed.Balance.Cents != 300000 {
		t.Errorf("detailed balance = %d, want 300000", detailed.Balance.Cents)
	}

	// unparsable bound renders empty, never errors
	rec = env.do(t, http.MethodGet, "/api/reports?start_date=junk", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("reports with junk bound status = %d", rec.Code)
	}
	simple = decodeBody[simpleReportView](t, rec)
	if len(simple.Income)+len(simple.Expense) != 0 {
		t.Errorf("junk bound report not empty: %+v", simple)
	}
}

func TestRecordsEndpoint(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/records?kind=category", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list records status = %d", rec.Code)
	}
	cats := decodeBody[[]recordView](t, rec)
	if len(cats) != len(core.DefaultCategoryNames) {
		t.Errorf("got %d categories, want %d", len(cats), len(core.DefaultCategoryNames))
	}

	rec = env.do(t, http.MethodPost, "/api/records?kind=category", map[string]string{"name": "Streaming"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("add record status = %d, body %s", rec.Code, rec.Body.String())
	}
	created := decodeBody[recordView](t, rec)
	if created.Group != core.CustomCategoryGroup {
		t.Errorf("group = %q, want %q", created.Group, core.CustomCategoryGroup)
	}

	rec = env.do(t, http.MethodGet, "/api/records?kind=wallet", nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown kind status = %d, want 400", rec.Code)
	}

	rec = env.do(t, http.MethodPost, "/api/records?kind=client", map[string]string{"name": " "})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("blank name status = %d, want 422", rec.Code)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/api/transactions", nil)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
	rec = env.do(t, http.MethodPost, "/api/dashboard", nil)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}
