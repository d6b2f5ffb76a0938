package sip

import (
	"context"
	"net/http"
	"testing"
	"time"

	"investease-api/internal/cache"
	"investease-api/internal/testutil"

	"github.com/go-chi/chi/v5"
)

func newTestRouter(t *testing.T, store cache.Store) http.Handler {
	t.Helper()
	if err := InitMetrics(); err != nil {
		t.Fatalf("initializing sip metrics: %v", err)
	}

	r := chi.NewRouter()
	RegisterRoutes(r, NewHandler(store))
	return r
}

func postJSON(path, body string) *http.Request {
	return testutil.NewJSONRequest(http.MethodPost, path, body)
}

func TestCalculateReturnsCalculation(t *testing.T) {
	router := newTestRouter(t, nil)

	w := testutil.ExecuteRequest(postJSON("/api/sip/calc", `{"monthly_amount":5000,"expected_return":12,"time_period":10}`), router)
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	var resp CalcResponse
	testutil.DecodeJSONBody(t, w.Body, &resp)

	if resp.Status != "success" {
		t.Fatalf("expected status %q, got %q", "success", resp.Status)
	}

	want := Calculation{
		FutureValue:   1161695.38,
		TotalInvested: 600000,
		TotalReturns:  561695.38,
		MonthlyAmount: 5000,
		AnnualReturn:  12,
		TimePeriod:    10,
	}
	if resp.Calculation != want {
		t.Fatalf("expected %+v, got %+v", want, resp.Calculation)
	}
}

func TestCalculateRejectsInvalidInput(t *testing.T) {
	router := newTestRouter(t, nil)

	tests := []struct {
		name string
		body string
		code int
	}{
		{"malformed json", `{"monthly_amount":`, http.StatusBadRequest},
		{"zero amount", `{"monthly_amount":0,"expected_return":12,"time_period":10}`, http.StatusUnprocessableEntity},
		{"zero period", `{"monthly_amount":1000,"expected_return":12,"time_period":0}`, http.StatusUnprocessableEntity},
		{"missing fields", `{}`, http.StatusUnprocessableEntity},
		{"overflow at negative rate", `{"monthly_amount":1e305,"expected_return":-12,"time_period":1e6}`, http.StatusUnprocessableEntity},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := testutil.ExecuteRequest(postJSON("/api/sip/calc", tc.body), router)
			testutil.CheckResponseCode(t, tc.code, w.Code)

			var body map[string]string
			testutil.DecodeJSONBody(t, w.Body, &body)
			if body["error"] == "" {
				t.Fatal("expected error message in body")
			}
		})
	}
}

type countingStore struct {
	cache.Store
	gets, sets int
}

func (c *countingStore) Get(ctx context.Context, key string) (string, bool) {
	c.gets++
	return c.Store.Get(ctx, key)
}

func (c *countingStore) Set(ctx context.Context, key, value string) error {
	c.sets++
	return c.Store.Set(ctx, key, value)
}

func TestCalculateServesRepeatsFromCache(t *testing.T) {
	store := &countingStore{Store: cache.NewMemory(time.Minute)}
	router := newTestRouter(t, store)

	body := `{"monthly_amount":1000,"expected_return":0,"time_period":5}`

	var first, second CalcResponse
	w := testutil.ExecuteRequest(postJSON("/api/sip/calc", body), router)
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)
	testutil.DecodeJSONBody(t, w.Body, &first)

	w = testutil.ExecuteRequest(postJSON("/api/sip/calc", body), router)
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)
	testutil.DecodeJSONBody(t, w.Body, &second)

	if store.gets != 2 || store.sets != 1 {
		t.Fatalf("expected 2 gets and 1 set, got %d gets and %d sets", store.gets, store.sets)
	}
	if first != second {
		t.Fatalf("cached response %+v differs from computed %+v", second, first)
	}
	if second.Calculation.FutureValue != 60000 || second.Calculation.TotalReturns != 0 {
		t.Fatalf("unexpected cached calculation %+v", second.Calculation)
	}
}

func TestCalculateIgnoresCorruptCacheEntry(t *testing.T) {
	store := cache.NewMemory(time.Minute)
	req := Request{MonthlyAmount: 1000, ExpectedReturn: 0, TimePeriod: 5}
	if err := store.Set(context.Background(), cacheKey(req), "not json"); err != nil {
		t.Fatalf("seeding cache: %v", err)
	}

	router := newTestRouter(t, store)
	w := testutil.ExecuteRequest(postJSON("/api/sip/calc", `{"monthly_amount":1000,"expected_return":0,"time_period":5}`), router)
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	var resp CalcResponse
	testutil.DecodeJSONBody(t, w.Body, &resp)
	if resp.Calculation.FutureValue != 60000 {
		t.Fatalf("expected recomputed future value 60000, got %v", resp.Calculation.FutureValue)
	}
}

func TestProjectionReturnsYearlySchedule(t *testing.T) {
	router := newTestRouter(t, nil)

	w := testutil.ExecuteRequest(postJSON("/api/sip/projection", `{"monthly_amount":5000,"expected_return":12,"time_period":3,"inflation":6}`), router)
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	var resp ScheduleResponse
	testutil.DecodeJSONBody(t, w.Body, &resp)

	if len(resp.Projection.Years) != 3 {
		t.Fatalf("expected 3 yearly points, got %d", len(resp.Projection.Years))
	}
	for _, p := range resp.Projection.Years {
		if p.RealValue == nil {
			t.Fatalf("expected real_value on year %d", p.Year)
		}
	}
	if resp.Projection.Final.TotalInvested != 180000 {
		t.Fatalf("expected total invested 180000, got %v", resp.Projection.Final.TotalInvested)
	}
}

func TestProjectionRejectsInvalidInflation(t *testing.T) {
	router := newTestRouter(t, nil)

	for _, body := range []string{
		`{"monthly_amount":5000,"expected_return":12,"time_period":3,"inflation":-150}`,
		`{"monthly_amount":1e6,"expected_return":12,"time_period":100,"inflation":-99.999}`,
	} {
		w := testutil.ExecuteRequest(postJSON("/api/sip/projection", body), router)
		testutil.CheckResponseCode(t, http.StatusUnprocessableEntity, w.Code)
	}
}
