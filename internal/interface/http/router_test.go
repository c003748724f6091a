package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/part-describer/internal/domain/description"
	"github.com/yanqian/part-describer/internal/infra/config"
	"github.com/yanqian/part-describer/internal/infra/sessionstore"
	apperrors "github.com/yanqian/part-describer/pkg/errors"
)

func TestRouter_NormalizeSuccess(t *testing.T) {
	server := newRouterUnderTest(t, newDescriptionService(t), config.RateLimitConfig{})

	recorder := performRequest(server, http.MethodPost, "/api/v1/descriptions/normalize", `{"text":"aluminum blind rivet with 1/4 diameter, domed head"}`)
	require.Equal(t, http.StatusOK, recorder.Code)

	var got description.NormalizeResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	require.Equal(t, []string{"RIVET, ALUMINUM, BLIND, DOMED, HEAD, 1/4 DIAMETER"}, got.Descriptions)
}

func TestRouter_NormalizeBlankReturnsEmptyList(t *testing.T) {
	server := newRouterUnderTest(t, newDescriptionService(t), config.RateLimitConfig{})

	recorder := performRequest(server, http.MethodPost, "/api/v1/descriptions/normalize", `{"text":"   "}`)
	require.Equal(t, http.StatusOK, recorder.Code)
	require.JSONEq(t, `{"descriptions":[]}`, recorder.Body.String())
}

func TestRouter_NormalizeInvalidJSON(t *testing.T) {
	server := newRouterUnderTest(t, newDescriptionService(t), config.RateLimitConfig{})

	recorder := performRequest(server, http.MethodPost, "/api/v1/descriptions/normalize", `{"text":123}`)
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	errBody := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, "invalid_request", errBody["error"]["code"])
	require.NotEmpty(t, errBody["error"]["message"])
}

func TestRouter_SessionFlow(t *testing.T) {
	server := newRouterUnderTest(t, newDescriptionService(t), config.RateLimitConfig{})

	recorder := performRequest(server, http.MethodPost, "/api/v1/sessions", "")
	require.Equal(t, http.StatusCreated, recorder.Code)
	var created map[string]string
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &created))
	session := created["sessionId"]
	require.NotEmpty(t, session)
	base := "/api/v1/sessions/" + session

	recorder = performRequest(server, http.MethodPost, base+"/generate", `{"text":"steel hex bolts"}`)
	require.Equal(t, http.StatusOK, recorder.Code)
	var generated description.GenerateResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &generated))
	require.True(t, generated.Generated)
	require.Equal(t, "BOLT, STEEL, HEX", generated.Description)
	require.Len(t, generated.History, 1)
	require.Equal(t, "steel hex bolts", generated.History[0].Text)

	recorder = performRequest(server, http.MethodGet, base+"/history", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	require.Equal(t, []string{"steel hex bolts"}, decodeEntryTexts(t, recorder.Body.Bytes()))

	for _, text := range []string{"BOLT, STEEL, HEX", "RIVET"} {
		recorder = performRequest(server, http.MethodPost, base+"/saved", `{"text":"`+text+`"}`)
		require.Equal(t, http.StatusCreated, recorder.Code)
	}
	require.Equal(t, []string{"RIVET", "BOLT, STEEL, HEX"}, decodeEntryTexts(t, recorder.Body.Bytes()))

	recorder = performRequest(server, http.MethodDelete, base+"/saved/0", "")
	require.Equal(t, http.StatusNoContent, recorder.Code)

	recorder = performRequest(server, http.MethodGet, base+"/saved", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	require.Equal(t, []string{"BOLT, STEEL, HEX"}, decodeEntryTexts(t, recorder.Body.Bytes()))

	recorder = performRequest(server, http.MethodDelete, base+"/history/3", "")
	require.Equal(t, http.StatusNotFound, recorder.Code)
	require.Equal(t, "not_found", decodeErrorBody(t, recorder.Body.Bytes())["error"]["code"])

	recorder = performRequest(server, http.MethodDelete, base+"/history/first", "")
	require.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestRouter_SaveRejectsBlankText(t *testing.T) {
	server := newRouterUnderTest(t, newDescriptionService(t), config.RateLimitConfig{})

	recorder := performRequest(server, http.MethodPost, "/api/v1/sessions/s1/saved", `{"text":"  "}`)
	require.Equal(t, http.StatusBadRequest, recorder.Code)
	require.Contains(t, decodeErrorBody(t, recorder.Body.Bytes())["error"]["message"], "text cannot be empty")
}

func TestRouter_EditAttributes(t *testing.T) {
	server := newRouterUnderTest(t, newDescriptionService(t), config.RateLimitConfig{})

	recorder := performRequest(server, http.MethodPost, "/api/v1/descriptions/attributes", `{"description":"RIVET, STEEL, HEX","op":"move","index":2,"target":1}`)
	require.Equal(t, http.StatusOK, recorder.Code)
	require.JSONEq(t, `{"description":"RIVET, HEX, STEEL","attributes":["RIVET","HEX","STEEL"]}`, recorder.Body.String())

	recorder = performRequest(server, http.MethodPost, "/api/v1/descriptions/attributes", `{"description":"RIVET","op":"delete","index":4}`)
	require.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestRouter_StoreFailureIsInternalError(t *testing.T) {
	svc := &stubDescriptionService{
		generateFn: func(ctx context.Context, req description.GenerateRequest) (description.GenerateResponse, error) {
			return description.GenerateResponse{}, apperrors.Wrap(apperrors.CodeStoreError, "failed to record history", errors.New("valkey down"))
		},
	}
	server := newRouterUnderTest(t, svc, config.RateLimitConfig{})

	recorder := performRequest(server, http.MethodPost, "/api/v1/sessions/s1/generate", `{"text":"rivet"}`)
	require.Equal(t, http.StatusInternalServerError, recorder.Code)
	require.Equal(t, "generate_failed", decodeErrorBody(t, recorder.Body.Bytes())["error"]["code"])
}

func TestRouter_RateLimitPerSession(t *testing.T) {
	limit := config.RateLimitConfig{Enabled: true, RequestsPerMinute: 1, Burst: 2}
	server := newRouterUnderTest(t, newDescriptionService(t), limit)

	for i := 0; i < 2; i++ {
		recorder := performRequest(server, http.MethodGet, "/api/v1/sessions/s1/history", "")
		require.Equal(t, http.StatusOK, recorder.Code)
	}
	recorder := performRequest(server, http.MethodGet, "/api/v1/sessions/s1/history", "")
	require.Equal(t, http.StatusTooManyRequests, recorder.Code)
	require.Equal(t, "rate_limit_exceeded", decodeErrorBody(t, recorder.Body.Bytes())["error"]["code"])

	recorder = performRequest(server, http.MethodGet, "/api/v1/sessions/s2/history", "")
	require.Equal(t, http.StatusOK, recorder.Code)
}

func TestRouter_HealthMetricsAndPreflight(t *testing.T) {
	server := newRouterUnderTest(t, newDescriptionService(t), config.RateLimitConfig{})

	recorder := performRequest(server, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	require.JSONEq(t, `{"status":"ok"}`, recorder.Body.String())

	performRequest(server, http.MethodPost, "/api/v1/descriptions/normalize", `{"text":"rivet"}`)
	recorder = performRequest(server, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	require.Contains(t, recorder.Body.String(), "describer_normalizations_total")

	recorder = performRequest(server, http.MethodOptions, "/api/v1/descriptions/normalize", "")
	require.Equal(t, http.StatusNoContent, recorder.Code)
	require.Contains(t, recorder.Header().Get("Access-Control-Allow-Methods"), "DELETE")
}

func TestRateLimiterRefills(t *testing.T) {
	limiter := newRateLimiter(config.RateLimitConfig{RequestsPerMinute: 60, Burst: 1})
	start := time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC)

	require.True(t, limiter.allow("k", start))
	require.False(t, limiter.allow("k", start.Add(100*time.Millisecond)))
	require.True(t, limiter.allow("k", start.Add(2*time.Second)))
}

func performRequest(server *http.Server, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)
	return rec
}

func newRouterUnderTest(t *testing.T, svc description.Service, limit config.RateLimitConfig) *http.Server {
	t.Helper()
	handler := NewHandler(svc, newTestLogger())
	cfg := &config.Config{
		HTTP: config.HTTPConfig{
			Address:      ":0",
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
			RateLimit:    limit,
		},
	}
	return NewRouter(cfg, handler)
}

func newDescriptionService(t *testing.T) description.Service {
	t.Helper()
	svc, err := description.NewService(description.Config{CacheSize: 16}, sessionstore.NewMemoryStore(0), newTestLogger())
	require.NoError(t, err)
	return svc
}

func newTestLogger() *slog.Logger {
	handler := slog.NewTextHandler(io.Discard, nil)
	return slog.New(handler)
}

type stubDescriptionService struct {
	description.Service
	generateFn func(ctx context.Context, req description.GenerateRequest) (description.GenerateResponse, error)
}

func (s *stubDescriptionService) Generate(ctx context.Context, req description.GenerateRequest) (description.GenerateResponse, error) {
	if s.generateFn != nil {
		return s.generateFn(ctx, req)
	}
	return description.GenerateResponse{}, nil
}

func decodeErrorBody(t *testing.T, raw []byte) map[string]map[string]string {
	t.Helper()
	var body map[string]map[string]string
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

func decodeEntryTexts(t *testing.T, raw []byte) []string {
	t.Helper()
	var body struct {
		Entries []description.Entry `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))
	out := make([]string, 0, len(body.Entries))
	for _, e := range body.Entries {
		out = append(out, e.Text)
	}
	return out
}
