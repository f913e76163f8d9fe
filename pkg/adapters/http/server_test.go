package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/flowguard"
	"github.com/aretw0/flowguard/internal/logging"
	"github.com/aretw0/flowguard/pkg/activation"
	"github.com/aretw0/flowguard/pkg/adapters/memory"
	"github.com/aretw0/flowguard/pkg/domain"
	"github.com/aretw0/flowguard/pkg/observability"
)

const validBody = `{
  "nodes": [
    {"id": "start", "type": "start"},
    {"id": "ask", "type": "question", "data": {"question": "Nome?", "variableName": "nome"}},
    {"id": "hello", "type": "message", "data": {"text": "Olá {{nome}}"}}
  ],
  "edges": [{"from": "start", "to": "ask"}, {"from": "ask", "to": "hello"}]
}`

const invalidBody = `{
  "nodes": [
    {"id": "start", "type": "start"},
    {"id": "hello", "type": "message", "data": {"text": "Olá {{sobrenome}}"}}
  ],
  "edges": [{"from": "start", "to": "hello"}]
}`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	metrics := observability.NewMetrics()
	validator := flowguard.New(flowguard.WithRecorder(metrics))
	store := memory.NewStore()

	handler, err := NewHandler(&Server{
		Validator: validator,
		Service:   activation.NewService(store, store, activation.WithValidator(validator)),
		Metrics:   metrics.Handler(),
		Logger:    logging.NewNop(),
	})
	require.NoError(t, err)

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url, body string) (*http.Response, map[string]any) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), method, url, strings.NewReader(body))
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	if resp.StatusCode != http.StatusNoContent && strings.Contains(resp.Header.Get("Content-Type"), "json") {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	}
	return resp, out
}

func TestLoadSpec(t *testing.T) {
	doc, err := LoadSpec(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, doc.Paths.Find("/v1/validate"))
}

func TestValidateFlow(t *testing.T) {
	srv := newTestServer(t)

	resp, body := do(t, http.MethodPost, srv.URL+"/v1/validate", validBody)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["isValid"])
	assert.Empty(t, body["errors"])

	resp, body = do(t, http.MethodPost, srv.URL+"/v1/validate", invalidBody)
	assert.Equal(t, http.StatusOK, resp.StatusCode, "an invalid flow is still a successful validation")
	assert.Equal(t, false, body["isValid"])
	errs := body["errors"].([]any)
	require.Len(t, errs, 1)
	first := errs[0].(map[string]any)
	assert.Equal(t, "missing_variable", first["type"])
	assert.Equal(t, "hello", first["nodeId"])
}

func TestValidateFlow_RejectsMalformedRequests(t *testing.T) {
	srv := newTestServer(t)

	cases := map[string]string{
		"not json":      `{`,
		"missing edges": `{"nodes": []}`,
		"null nodes":    `{"nodes": null, "edges": []}`,
		"edge shape":    `{"nodes": [], "edges": [{"from": "a"}]}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			resp, out := do(t, http.MethodPost, srv.URL+"/v1/validate", body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.NotEmpty(t, out["error"])
		})
	}
}

func TestFlowLifecycle(t *testing.T) {
	srv := newTestServer(t)

	resp, body := do(t, http.MethodPut, srv.URL+"/v1/flows/welcome", invalidBody)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "welcome", body["flowId"])

	// Publishing an invalid flow is refused with the report.
	resp, body = do(t, http.MethodPost, srv.URL+"/v1/flows/welcome/publish", "")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	result := body["result"].(map[string]any)
	assert.Equal(t, false, result["isValid"])

	// Fix the flow and publish again.
	resp, _ = do(t, http.MethodPut, srv.URL+"/v1/flows/welcome", validBody)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = do(t, http.MethodPost, srv.URL+"/v1/flows/welcome/publish", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	reportID := body["id"]

	resp, body = do(t, http.MethodGet, srv.URL+"/v1/flows/welcome/validation", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, reportID, body["id"])

	resp, _ = do(t, http.MethodPost, srv.URL+"/v1/flows/welcome/deactivate", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = do(t, http.MethodDelete, srv.URL+"/v1/flows/welcome", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, body = do(t, http.MethodGet, srv.URL+"/v1/flows/welcome/validation", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "deleting a flow drops its report")
	assert.Equal(t, domain.ErrReportNotFound.Error(), body["error"])

	resp, body = do(t, http.MethodPost, srv.URL+"/v1/flows/welcome/publish", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, domain.ErrFlowNotFound.Error(), body["error"])
}

func TestListFlows(t *testing.T) {
	srv := newTestServer(t)

	do(t, http.MethodPut, srv.URL+"/v1/flows/b", validBody)
	do(t, http.MethodPut, srv.URL+"/v1/flows/a", validBody)
	do(t, http.MethodPost, srv.URL+"/v1/flows/b/publish", "")

	resp, err := http.Get(srv.URL + "/v1/flows")
	require.NoError(t, err)
	defer resp.Body.Close()

	var flows []flowSummary
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&flows))
	assert.Equal(t, []flowSummary{
		{ID: "a", Status: domain.StatusDraft},
		{ID: "b", Status: domain.StatusActive},
	}, flows)
}

func TestLatestReport_NotFound(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := do(t, http.MethodGet, srv.URL+"/v1/flows/ghost/validation", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestOperationalEndpoints(t *testing.T) {
	srv := newTestServer(t)

	resp, body := do(t, http.MethodGet, srv.URL+"/healthz", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])

	resp, body = do(t, http.MethodGet, srv.URL+"/info", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "1.0.0", body["api_version"])

	specResp, err := http.Get(srv.URL + "/openapi.yaml")
	require.NoError(t, err)
	defer specResp.Body.Close()
	assert.Equal(t, "text/yaml", specResp.Header.Get("Content-Type"))

	do(t, http.MethodPost, srv.URL+"/v1/validate", validBody)
	metricsResp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer metricsResp.Body.Close()
	buf := new(strings.Builder)
	_, _ = io.Copy(buf, metricsResp.Body)
	assert.Contains(t, buf.String(), `flowguard_validations_total{valid="true"} 1`)
}

func TestStorageRoutesWithoutService(t *testing.T) {
	handler, err := NewHandler(&Server{Logger: logging.NewNop()})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/flows", nil))
	assert.Equal(t, http.StatusNotImplemented, rec.Code)

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/validate", strings.NewReader(validBody))
	req.Header.Set("Content-Type", "application/json")
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
