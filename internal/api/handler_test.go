package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap/zaptest"

	"github.com/lvonguyen/cspm-advisor/internal/advisor"
	"github.com/lvonguyen/cspm-advisor/internal/llm"
	"github.com/lvonguyen/cspm-advisor/internal/recommendation"
	"github.com/lvonguyen/cspm-advisor/internal/report"
)

type cannedProvider struct {
	content string
	err     error
}

func (p cannedProvider) Complete(context.Context, llm.CompletionRequest) (*llm.CompletionResponse, error) {
	if p.err != nil {
		return nil, p.err
	}
	return &llm.CompletionResponse{Content: p.content}, nil
}

func (p cannedProvider) ModelName() string { return "canned" }

type memPrefs struct {
	dark bool
	err  error
}

func (m *memPrefs) DarkMode(context.Context) (bool, error) { return m.dark, m.err }

func (m *memPrefs) SetDarkMode(_ context.Context, on bool) error {
	if m.err != nil {
		return m.err
	}
	m.dark = on
	return nil
}

type staticContext string

func (s staticContext) BuildContext(context.Context) string { return string(s) }

type testServer struct {
	e     *echo.Echo
	store *recommendation.Store
	prefs *memPrefs
}

func newTestServer(t *testing.T, provider llm.Provider) testServer {
	t.Helper()
	logger := zaptest.NewLogger(t)

	store := recommendation.NewStore()
	store.Replace(recommendation.Seed())

	prefs := &memPrefs{}
	h := NewHandler(
		store,
		advisor.NewGenerator(provider, advisor.DefaultGeneratorConfig(), logger),
		staticContext("AWS and GCP production estate"),
		advisor.NewChatSession(provider, advisor.ChatConfig{}, time.Date(2024, 7, 20, 0, 0, 0, 0, time.UTC), logger),
		prefs,
		logger,
	)
	h.now = func() time.Time { return time.Date(2024, 7, 20, 0, 0, 0, 0, time.UTC) }

	return testServer{e: NewRouter(h, logger), store: store, prefs: prefs}
}

func (s testServer) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

func ids(recs []recommendation.Recommendation) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.ID
	}
	return out
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, llm.Unavailable{})

	rec := s.do(t, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestListRecommendations_PendingByRisk(t *testing.T) {
	s := newTestServer(t, llm.Unavailable{})

	rec := s.do(t, http.MethodGet, "/api/recommendations?view=pending&sort=risk", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var got listResponse
	decode(t, rec, &got)
	assert.Equal(t, recommendation.ViewPending, got.View)
	assert.False(t, got.Loading)
	assert.Equal(t, 7, got.Count)
	assert.Equal(t, []string{"rec-4", "rec-1", "rec-2", "rec-6", "rec-3", "rec-5", "rec-7"}, ids(got.Recommendations))
}

func TestListRecommendations_DefaultsToAll(t *testing.T) {
	s := newTestServer(t, llm.Unavailable{})
	s.store.SetLoading(true)

	rec := s.do(t, http.MethodGet, "/api/recommendations", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var got listResponse
	decode(t, rec, &got)
	assert.Equal(t, 24, got.Count)
	assert.True(t, got.Loading)
	assert.Equal(t, recommendation.SortDefault, got.Sort)
}

func TestListRecommendations_BadParams(t *testing.T) {
	s := newTestServer(t, llm.Unavailable{})

	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodGet, "/api/recommendations?sort=newest", "").Code)
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodGet, "/api/recommendations?view=archived", "").Code)
}

func TestUpdateStatus(t *testing.T) {
	s := newTestServer(t, llm.Unavailable{})

	rec := s.do(t, http.MethodPatch, "/api/recommendations/rec-1", `{"status":"Approved"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var got recommendation.Recommendation
	decode(t, rec, &got)
	assert.Equal(t, recommendation.StatusApproved, got.Status)

	// the approved record moves to the implemented view
	rec = s.do(t, http.MethodGet, "/api/recommendations?view=implemented", "")
	var list listResponse
	decode(t, rec, &list)
	assert.Equal(t, 18, list.Count)
}

func TestUpdateStatus_Errors(t *testing.T) {
	s := newTestServer(t, llm.Unavailable{})
	before := s.store.All()

	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPatch, "/api/recommendations/rec-1", `{"status":"Done"}`).Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodPatch, "/api/recommendations/missing", `{"status":"Rejected"}`).Code)
	assert.Equal(t, before, s.store.All())
}

func TestGauges(t *testing.T) {
	s := newTestServer(t, llm.Unavailable{})

	rec := s.do(t, http.MethodGet, "/api/gauges", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"deployment":67,"scale_optimize":48}`, rec.Body.String())
}

func TestSummary(t *testing.T) {
	s := newTestServer(t, llm.Unavailable{})

	rec := s.do(t, http.MethodGet, "/api/summary", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var got recommendation.Summary
	decode(t, rec, &got)
	assert.Equal(t, 24, got.Total)
	assert.Equal(t, 7, got.Pending)
	assert.Equal(t, 17, got.Implemented)
}

func TestMetrics(t *testing.T) {
	s := newTestServer(t, llm.Unavailable{})

	rec := s.do(t, http.MethodGet, "/api/metrics", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"current":"00:27:23"`)
	assert.Contains(t, rec.Body.String(), `"date":"2024-08-01"`)
}

func TestGenerate(t *testing.T) {
	s := newTestServer(t, cannedProvider{content: `[{"title":"Enable CSPM","description":"d","rationale":"r","implementationInstructions":"i","riskLevel":"High","effort":"Low"}]`})

	rec := s.do(t, http.MethodPost, "/api/recommendations/generate", `{}`)

	require.Equal(t, http.StatusOK, rec.Code)
	all := s.store.All()
	require.Len(t, all, 1)
	assert.Equal(t, "Enable CSPM", all[0].Title)
	assert.Equal(t, recommendation.StatusPending, all[0].Status)
	assert.False(t, s.store.Loading())
}

func TestGenerate_FailureYieldsErrorRecord(t *testing.T) {
	s := newTestServer(t, llm.Unavailable{})

	rec := s.do(t, http.MethodPost, "/api/recommendations/generate", `{"context":"new tenant"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	all := s.store.All()
	require.Len(t, all, 1)
	assert.Equal(t, "Error: Could not generate recommendations", all[0].Title)
}

func TestExport(t *testing.T) {
	s := newTestServer(t, llm.Unavailable{})

	rec := s.do(t, http.MethodGet, "/api/recommendations/export?sort=risk", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "recommendations.xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(report.SheetPending)
	require.NoError(t, err)
	assert.Len(t, rows, 8)
}

func TestChat(t *testing.T) {
	s := newTestServer(t, cannedProvider{content: "Start with CSPM onboarding."})

	rec := s.do(t, http.MethodPost, "/api/chat/messages", `{"text":"Where do I start?"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var reply advisor.ChatMessage
	decode(t, rec, &reply)
	assert.Equal(t, advisor.ChatRoleModel, reply.Role)
	assert.Equal(t, "Start with CSPM onboarding.", reply.Text)

	rec = s.do(t, http.MethodGet, "/api/chat/messages", "")
	var transcript []advisor.ChatMessage
	decode(t, rec, &transcript)
	require.Len(t, transcript, 3)
	assert.Equal(t, advisor.WelcomeMessage, transcript[0].Text)
	assert.Equal(t, "Where do I start?", transcript[1].Text)
}

func TestChat_FailureAndEmpty(t *testing.T) {
	s := newTestServer(t, cannedProvider{err: errors.New("quota exceeded")})

	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPost, "/api/chat/messages", `{"text":"   "}`).Code)

	rec := s.do(t, http.MethodPost, "/api/chat/messages", `{"text":"hello"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var reply advisor.ChatMessage
	decode(t, rec, &reply)
	assert.Equal(t, advisor.FallbackReply, reply.Text)
}

func TestPreferences(t *testing.T) {
	s := newTestServer(t, llm.Unavailable{})

	rec := s.do(t, http.MethodGet, "/api/preferences", "")
	assert.JSONEq(t, `{"dark_mode":false}`, rec.Body.String())

	rec = s.do(t, http.MethodPut, "/api/preferences", `{"dark_mode":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, s.prefs.dark)

	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPut, "/api/preferences", `{}`).Code)

	s.prefs.err = errors.New("disk full")
	assert.Equal(t, http.StatusInternalServerError, s.do(t, http.MethodGet, "/api/preferences", "").Code)
}
