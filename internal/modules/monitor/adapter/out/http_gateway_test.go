package out_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"evwatch/internal/modules/monitor/adapter/out"
	"evwatch/internal/modules/monitor/domain"
)

func TestSubmitForAnalysisSuccess(t *testing.T) {
	t.Parallel()
	var gotPath, gotField, gotFilename, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		file, header, err := r.FormFile("file")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		defer file.Close()
		gotField = "file"
		gotFilename = header.Filename
		b, _ := io.ReadAll(file)
		gotBody = string(b)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"filename": "sessions.csv",
			"total_sessions": 5,
			"anomalies_found": 1,
			"anomalies": [
				{"session_id": "s-1", "anomaly_type": "dos_attack", "timestamp": "2026-03-01T08:00:00Z", "duration": 2}
			]
		}`))
	}))
	defer srv.Close()

	gateway := out.NewHTTPAnalysisGateway(srv.URL, 5*time.Second, nil)
	report, err := gateway.SubmitForAnalysis(context.Background(), "sessions.csv", strings.NewReader("session_id\ns-1\n"))
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if gotPath != "/predict/" {
		t.Fatalf("path = %q, want /predict/", gotPath)
	}
	if gotField != "file" || gotFilename != "sessions.csv" {
		t.Fatalf("form part = %q/%q", gotField, gotFilename)
	}
	if gotBody != "session_id\ns-1\n" {
		t.Fatalf("uploaded body = %q", gotBody)
	}
	if report.TotalSessions != 5 || report.AnomaliesFound != 1 || len(report.Anomalies) != 1 {
		t.Fatalf("report = %+v", report)
	}
	if report.Anomalies[0].DurationMin == nil || *report.Anomalies[0].DurationMin != 2 {
		t.Fatalf("duration = %v, want 2", report.Anomalies[0].DurationMin)
	}
}

func TestSubmitForAnalysisServerDetail(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail": "Only CSV files are supported."}`))
	}))
	defer srv.Close()

	gateway := out.NewHTTPAnalysisGateway(srv.URL, 5*time.Second, nil)
	_, err := gateway.SubmitForAnalysis(context.Background(), "sessions.csv", strings.NewReader("x"))

	var serverErr *domain.ServerError
	if !errors.As(err, &serverErr) {
		t.Fatalf("err = %v, want *ServerError", err)
	}
	if serverErr.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", serverErr.StatusCode)
	}
	if serverErr.Detail != "Only CSV files are supported." {
		t.Fatalf("detail = %q", serverErr.Detail)
	}
}

func TestSubmitForAnalysisUnreachable(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	gateway := out.NewHTTPAnalysisGateway(srv.URL, time.Second, nil)
	_, err := gateway.SubmitForAnalysis(context.Background(), "sessions.csv", strings.NewReader("x"))
	if !errors.Is(err, domain.ErrBackendUnreachable) {
		t.Fatalf("err = %v, want ErrBackendUnreachable", err)
	}
}

func TestSubmitForAnalysisMalformedResponse(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	gateway := out.NewHTTPAnalysisGateway(srv.URL, 5*time.Second, nil)
	_, err := gateway.SubmitForAnalysis(context.Background(), "sessions.csv", strings.NewReader("x"))
	if err == nil {
		t.Fatalf("malformed body should fail decode")
	}
	if errors.Is(err, domain.ErrBackendUnreachable) {
		t.Fatalf("decode failure must not look like an unreachable backend")
	}
}

func TestFetchLogBatch(t *testing.T) {
	t.Parallel()
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"anomalies": [
			{"session_id": "s-1", "anomaly_type": "billing_fraud", "timestamp": "2026-03-01T08:00:00Z"},
			{"session_id": "s-2", "anomaly_type": "multi_user_conflict", "timestamp": "2026-03-01T08:05:00Z"}
		]}`))
	}))
	defer srv.Close()

	gateway := out.NewHTTPAnalysisGateway(srv.URL, 5*time.Second, nil)
	records, err := gateway.FetchLogBatch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if gotPath != "/logs/" {
		t.Fatalf("path = %q, want /logs/", gotPath)
	}
	if len(records) != 2 || records[0].SessionID != "s-1" || records[1].AnomalyType != "multi_user_conflict" {
		t.Fatalf("records = %+v", records)
	}
}

func TestFetchLogBatchServerError(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	gateway := out.NewHTTPAnalysisGateway(srv.URL, 5*time.Second, nil)
	_, err := gateway.FetchLogBatch(context.Background())
	var serverErr *domain.ServerError
	if !errors.As(err, &serverErr) || serverErr.StatusCode != http.StatusInternalServerError {
		t.Fatalf("err = %v, want *ServerError 500", err)
	}
}
