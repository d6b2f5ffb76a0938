package advisor

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"investease-api/internal/observability"
	"investease-api/internal/testutil"

	"github.com/go-chi/chi/v5"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	if err := InitMetrics(); err != nil {
		t.Fatalf("initializing advisor metrics: %v", err)
	}

	c, err := DefaultCatalog()
	if err != nil {
		t.Fatalf("loading catalog: %v", err)
	}

	r := chi.NewRouter()
	RegisterRoutes(r, NewHandler(New(c)))
	return r
}

func TestRecommendHandlerEchoesProfile(t *testing.T) {
	router := newTestRouter(t)

	req := testutil.NewJSONRequest(http.MethodPost, "/api/recommend",
		`{"age":28,"investment_amount":10000,"risk_preference":"Low","monthly_income":50000}`)
	w := testutil.ExecuteRequest(req, router)
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	var body map[string]any
	testutil.DecodeJSONBody(t, w.Body, &body)

	if body["status"] != "success" {
		t.Fatalf("expected status success, got %#v", body["status"])
	}

	rec, ok := body["recommendation"].(map[string]any)
	if !ok {
		t.Fatalf("expected recommendation object, got %#v", body["recommendation"])
	}
	if rec["expected_return"] != "8-10%" {
		t.Fatalf("expected 8-10%%, got %#v", rec["expected_return"])
	}
	alloc, ok := rec["allocation"].(map[string]any)
	if !ok || alloc["Fixed Deposits"] != float64(40) {
		t.Fatalf("unexpected allocation %#v", rec["allocation"])
	}

	profile, ok := body["user_profile"].(map[string]any)
	if !ok {
		t.Fatalf("expected user_profile object, got %#v", body["user_profile"])
	}
	if profile["monthly_income"] != float64(50000) {
		t.Fatalf("expected monthly_income 50000, got %#v", profile["monthly_income"])
	}
	if v, present := profile["savings"]; !present || v != nil {
		t.Fatalf("expected savings to be null, got %#v (present=%t)", v, present)
	}
}

func TestRecommendHandlerErrors(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name string
		body string
		code int
		msg  string
	}{
		{"malformed", `{"age":`, http.StatusBadRequest, "invalid request body"},
		{"unknown risk", `{"age":30,"investment_amount":5000,"risk_preference":"Extreme"}`, http.StatusBadRequest, "Invalid risk preference"},
		{"too young", `{"age":16,"investment_amount":5000,"risk_preference":"Low"}`, http.StatusUnprocessableEntity, ""},
		{"unknown risk and too young", `{"age":16,"investment_amount":5000,"risk_preference":"Extreme"}`, http.StatusBadRequest, "Invalid risk preference"},
		{"missing risk", `{"age":30,"investment_amount":5000}`, http.StatusBadRequest, "Invalid risk preference"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := testutil.ExecuteRequest(testutil.NewJSONRequest(http.MethodPost, "/api/recommend", tc.body), router)
			testutil.CheckResponseCode(t, tc.code, w.Code)

			var body map[string]string
			testutil.DecodeJSONBody(t, w.Body, &body)
			if body["error"] == "" {
				t.Fatal("expected error message")
			}
			if tc.msg != "" && body["error"] != tc.msg {
				t.Fatalf("expected error %q, got %q", tc.msg, body["error"])
			}
		})
	}
}

func TestCompareHandler(t *testing.T) {
	router := newTestRouter(t)

	w := testutil.ExecuteRequest(httptest.NewRequest(http.MethodGet, "/api/compare", nil), router)
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	var resp CompareResponse
	testutil.DecodeJSONBody(t, w.Body, &resp)

	if len(resp.Plans) != 3 {
		t.Fatalf("expected 3 plans, got %d", len(resp.Plans))
	}
	if resp.Plans[2].LockIn != "5 years" {
		t.Fatalf("expected aggressive plan lock-in of 5 years, got %q", resp.Plans[2].LockIn)
	}
}

func TestStubHandlers(t *testing.T) {
	router := newTestRouter(t)

	w := testutil.ExecuteRequest(httptest.NewRequest(http.MethodGet, "/api/report/pdf", nil), router)
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	var report map[string]any
	testutil.DecodeJSONBody(t, w.Body, &report)
	if report["message"] != reportPendingMessage {
		t.Fatalf("unexpected report message %#v", report["message"])
	}
	if v, present := report["download_url"]; !present || v != nil {
		t.Fatalf("expected null download_url, got %#v", v)
	}

	w = testutil.ExecuteRequest(testutil.NewJSONRequest(http.MethodPost, "/api/ml/predict",
		`{"age":30,"investment_amount":5000,"risk_preference":"Medium"}`), router)
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	var prediction map[string]any
	testutil.DecodeJSONBody(t, w.Body, &prediction)
	if prediction["message"] != predictionPendingMessage {
		t.Fatalf("unexpected prediction message %#v", prediction["message"])
	}
	if v, present := prediction["prediction"]; !present || v != nil {
		t.Fatalf("expected null prediction, got %#v", v)
	}

	w = testutil.ExecuteRequest(testutil.NewJSONRequest(http.MethodPost, "/api/ml/predict",
		`{"age":5,"investment_amount":5000,"risk_preference":"Medium"}`), router)
	testutil.CheckResponseCode(t, http.StatusUnprocessableEntity, w.Code)
}

func TestHandlersStartSpanAndLogCompletion(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	oldTracer := tracer
	tracer = sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)).Tracer("advisor")
	t.Cleanup(func() { tracer = oldTracer })

	core, logs := observer.New(zap.InfoLevel)
	oldLogger := observability.Logger
	observability.Logger = zap.New(core)
	t.Cleanup(func() { observability.Logger = oldLogger })

	router := newTestRouter(t)
	profile := `{"age":30,"investment_amount":5000,"risk_preference":"Medium"}`

	requests := []*http.Request{
		testutil.NewJSONRequest(http.MethodPost, "/api/recommend", profile),
		httptest.NewRequest(http.MethodGet, "/api/compare", nil),
		httptest.NewRequest(http.MethodGet, "/api/report/pdf", nil),
		testutil.NewJSONRequest(http.MethodPost, "/api/ml/predict", profile),
	}
	for _, req := range requests {
		w := testutil.ExecuteRequest(req, router)
		testutil.CheckResponseCode(t, http.StatusOK, w.Code)
	}

	wantSpans := []string{"advisor.recommend", "advisor.compare", "advisor.report", "advisor.predict"}
	spans := recorder.Ended()
	if len(spans) != len(wantSpans) {
		t.Fatalf("expected %d spans, got %d", len(wantSpans), len(spans))
	}
	for i, want := range wantSpans {
		if got := spans[i].Name(); got != want {
			t.Fatalf("span %d: expected %q, got %q", i, want, got)
		}
	}

	wantLogs := []string{"recommendation served", "plan comparison served", "report requested", "prediction requested"}
	entries := logs.All()
	if len(entries) != len(wantLogs) {
		t.Fatalf("expected %d log entries, got %d", len(wantLogs), len(entries))
	}
	for i, want := range wantLogs {
		if entries[i].Message != want {
			t.Fatalf("log %d: expected %q, got %q", i, want, entries[i].Message)
		}
	}
}
