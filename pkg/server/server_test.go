package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cloudsaver/billing-advisor/pkg/analyzer"
	"github.com/cloudsaver/billing-advisor/pkg/config"
	"github.com/cloudsaver/billing-advisor/pkg/models"
)

func newTestServer() *Server {
	cfg := config.NewConfig()
	cfg.OpenAIAPIKey = ""
	return NewServer(analyzer.New(cfg), cfg)
}

func uploadRequest(t *testing.T, filename, content string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("CreateFormFile failed: %v", err)
	}
	if _, err := fw.Write([]byte(content)); err != nil {
		t.Fatalf("writing form file failed: %v", err)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/analyze", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestHandleRoot(t *testing.T) {
	srv := newTestServer()
	rec := httptest.NewRecorder()

	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "running") {
		t.Errorf("Unexpected root body: %s", rec.Body.String())
	}
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer()
	rec := httptest.NewRecorder()

	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
}

func TestAnalyzeRejectsNonCSV(t *testing.T) {
	srv := newTestServer()
	rec := httptest.NewRecorder()

	srv.Router().ServeHTTP(rec, uploadRequest(t, "billing.xlsx", "not a csv"))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 for non-CSV upload, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Invalid file type") {
		t.Errorf("Expected invalid file type detail, got %s", rec.Body.String())
	}
}

func TestAnalyzeRejectsMissingFile(t *testing.T) {
	srv := newTestServer()
	rec := httptest.NewRecorder()

	req := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader(""))
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 for missing upload, got %d", rec.Code)
	}
}

func TestAnalyzeReturnsSummary(t *testing.T) {
	srv := newTestServer()
	rec := httptest.NewRecorder()

	csv := "Service,Resource Name,CPU Utilization (%),Usage Hours,Monthly Cost\n" +
		"compute-engine-vm,web-1,5,720,100\n"
	srv.Router().ServeHTTP(rec, uploadRequest(t, "billing.csv", csv))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var summary models.Summary
	if err := json.Unmarshal(rec.Body.Bytes(), &summary); err != nil {
		t.Fatalf("Response is not a summary: %v", err)
	}
	if summary.NumFindings != 1 {
		t.Fatalf("Expected 1 finding, got %d", summary.NumFindings)
	}
	if summary.Findings[0].Issue != models.IssueResizeInstance {
		t.Errorf("Expected resize_instance, got %q", summary.Findings[0].Issue)
	}
	if summary.TotalEstimatedMonthlySavings != 45.0 {
		t.Errorf("Expected 45.0 savings, got %v", summary.TotalEstimatedMonthlySavings)
	}
}

func TestAnalyzeUppercaseExtension(t *testing.T) {
	srv := newTestServer()
	rec := httptest.NewRecorder()

	srv.Router().ServeHTTP(rec, uploadRequest(t, "BILLING.CSV", "Service,Cost\n"))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200 for uppercase .CSV, got %d", rec.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer()

	// run one analysis so the counters move
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, uploadRequest(t, "billing.csv", "Service,Cost\n"))
	if rec.Code != http.StatusOK {
		t.Fatalf("analysis failed: %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200 from /metrics, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "advisor_analyses_total 1") {
		t.Errorf("Expected analyses counter in metrics output:\n%s", rec.Body.String())
	}
}
