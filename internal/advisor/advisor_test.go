package advisor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/lvonguyen/cspm-advisor/internal/llm"
	"github.com/lvonguyen/cspm-advisor/internal/recommendation"
)

// fakeProvider returns canned responses and records requests.
type fakeProvider struct {
	mu       sync.Mutex
	content  string
	err      error
	requests []llm.CompletionRequest
}

func (f *fakeProvider) Complete(_ context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return &llm.CompletionResponse{Content: f.content}, nil
}

func (f *fakeProvider) ModelName() string { return "fake" }

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

const generatedJSON = `Here you go:
[
  {"title": "Enable CSPM", "description": "d1", "rationale": "r1", "implementationInstructions": "1. a\n2. b", "riskLevel": "High", "effort": "Low"},
  {"title": "Bad risk", "description": "d2", "rationale": "r2", "implementationInstructions": "x", "riskLevel": "Severe", "effort": "Low"},
  {"title": "Harden IAM", "description": "d3", "rationale": "r3", "implementationInstructions": "y", "riskLevel": "critical", "effort": "medium"}
]`

// ---------- Generator ----------

func TestGenerate_ParsesAndSkipsInvalid(t *testing.T) {
	p := &fakeProvider{content: generatedJSON}
	g := NewGenerator(p, DefaultGeneratorConfig(), zaptest.NewLogger(t))
	g.newID = sequentialIDs()

	recs := g.Generate(context.Background(), "AWS prod accounts onboarded")
	require.Len(t, recs, 2)

	assert.Equal(t, "id-1", recs[0].ID)
	assert.Equal(t, "Enable CSPM", recs[0].Title)
	assert.Equal(t, recommendation.RiskHigh, recs[0].RiskLevel)
	assert.Equal(t, recommendation.EffortLow, recs[0].Effort)
	assert.Equal(t, recommendation.StatusPending, recs[0].Status)
	assert.Nil(t, recs[0].DeploymentIncrease)

	assert.Equal(t, recommendation.RiskCritical, recs[1].RiskLevel)
	assert.Equal(t, recommendation.EffortMedium, recs[1].Effort)

	require.Len(t, p.requests, 1)
	assert.True(t, p.requests[0].JSON)
	assert.Contains(t, p.requests[0].Messages[0].Content, "AWS prod accounts onboarded")
}

func TestGenerate_ProviderFailureYieldsErrorRecord(t *testing.T) {
	p := &fakeProvider{err: errors.New("quota exceeded")}
	g := NewGenerator(p, DefaultGeneratorConfig(), zaptest.NewLogger(t))

	recs := g.Generate(context.Background(), "ctx")
	require.Len(t, recs, 1)
	assert.True(t, strings.HasPrefix(recs[0].Title, "Error:"))
	assert.Equal(t, recommendation.RiskMedium, recs[0].RiskLevel)
	assert.Equal(t, recommendation.EffortLow, recs[0].Effort)
	assert.Equal(t, recommendation.StatusPending, recs[0].Status)
	assert.NotEmpty(t, recs[0].ID)
}

func TestGenerate_UnparseableYieldsErrorRecord(t *testing.T) {
	for _, content := range []string{
		"no json here",
		"[not json]",
		`[{"title": "x", "riskLevel": "nope", "effort": "Low"}]`,
		"[]",
	} {
		g := NewGenerator(&fakeProvider{content: content}, DefaultGeneratorConfig(), zaptest.NewLogger(t))
		recs := g.Generate(context.Background(), "ctx")
		require.Len(t, recs, 1, content)
		assert.Equal(t, "Error: Could not generate recommendations", recs[0].Title)
	}
}

func TestGenerate_UnavailableProvider(t *testing.T) {
	g := NewGenerator(llm.Unavailable{}, DefaultGeneratorConfig(), zaptest.NewLogger(t))
	recs := g.Generate(context.Background(), "ctx")
	require.Len(t, recs, 1)
	assert.Equal(t, "Error: Could not generate recommendations", recs[0].Title)
}

// ---------- ChatSession ----------

func newTestSession(t *testing.T, p llm.Provider) *ChatSession {
	s := NewChatSession(p, ChatConfig{ModelName: "fake"}, time.Date(2024, 7, 20, 0, 0, 0, 0, time.UTC), zaptest.NewLogger(t))
	return s
}

func TestChat_StartsWithWelcome(t *testing.T) {
	s := newTestSession(t, &fakeProvider{})
	msgs := s.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, ChatRoleModel, msgs[0].Role)
	assert.Equal(t, WelcomeMessage, msgs[0].Text)
}

func TestChat_SendSuccess(t *testing.T) {
	p := &fakeProvider{content: "Enable MFA first."}
	s := newTestSession(t, p)

	reply := s.Send(context.Background(), "Where do I start?")
	assert.Equal(t, ChatRoleModel, reply.Role)
	assert.Equal(t, "Enable MFA first.", reply.Text)

	msgs := s.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, ChatRoleUser, msgs[1].Role)
	assert.Equal(t, "Where do I start?", msgs[1].Text)
	assert.Equal(t, reply, msgs[2])

	require.Len(t, p.requests, 1)
	req := p.requests[0]
	assert.Contains(t, req.System, "2024-07-20")
	// the welcome message is transcript-only
	require.Len(t, req.Messages, 1)
	assert.Equal(t, llm.Message{Role: llm.RoleUser, Content: "Where do I start?"}, req.Messages[0])
}

func TestChat_SendFailureUsesFallback(t *testing.T) {
	s := newTestSession(t, &fakeProvider{err: errors.New("network down")})

	reply := s.Send(context.Background(), "Is my S3 bucket public?")
	assert.Equal(t, FallbackReply, reply.Text)

	msgs := s.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, ChatRoleUser, msgs[1].Role)
	assert.Equal(t, "Is my S3 bucket public?", msgs[1].Text)
	assert.Equal(t, FallbackReply, msgs[2].Text)
}

func TestChat_HistoryGrowsAcrossTurns(t *testing.T) {
	p := &fakeProvider{content: "ok"}
	s := newTestSession(t, p)

	s.Send(context.Background(), "one")
	s.Send(context.Background(), "two")

	require.Len(t, p.requests, 2)
	assert.Equal(t, []llm.Message{
		{Role: llm.RoleUser, Content: "one"},
		{Role: llm.RoleModel, Content: "ok"},
		{Role: llm.RoleUser, Content: "two"},
	}, p.requests[1].Messages)
	assert.Len(t, s.Messages(), 5)
}

func TestChat_FailedTurnLeftOutOfHistory(t *testing.T) {
	p := &fakeProvider{err: errors.New("quota exceeded")}
	s := newTestSession(t, p)

	assert.Equal(t, FallbackReply, s.Send(context.Background(), "first").Text)

	p.mu.Lock()
	p.err = nil
	p.content = "recovered"
	p.mu.Unlock()

	assert.Equal(t, "recovered", s.Send(context.Background(), "second").Text)

	require.Len(t, p.requests, 2)
	assert.Equal(t, []llm.Message{{Role: llm.RoleUser, Content: "second"}}, p.requests[1].Messages)
	// the transcript still shows the failed exchange
	assert.Len(t, s.Messages(), 5)
}

func TestChat_ConcurrentSendsStayPaired(t *testing.T) {
	s := newTestSession(t, &fakeProvider{content: "ok"})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.Send(context.Background(), fmt.Sprintf("q%d", i))
		}(i)
	}
	wg.Wait()

	msgs := s.Messages()
	require.Len(t, msgs, 21)
	for i := 1; i < len(msgs); i += 2 {
		assert.Equal(t, ChatRoleUser, msgs[i].Role)
		assert.Equal(t, ChatRoleModel, msgs[i+1].Role)
	}
}

// ---------- Loader ----------

type fakePosture struct {
	text string
	err  error
}

func (f fakePosture) PostureContext(context.Context) (string, error) { return f.text, f.err }

func TestLoader_Seed(t *testing.T) {
	store := recommendation.NewStore()
	l := NewLoader(store, nil, nil, LoaderConfig{Source: SourceSeed, Delay: time.Millisecond}, zaptest.NewLogger(t))

	require.NoError(t, l.Load(context.Background()))
	assert.Equal(t, len(recommendation.Seed()), store.Len())
	assert.False(t, store.Loading())
}

func TestLoader_SeedCancelled(t *testing.T) {
	store := recommendation.NewStore()
	l := NewLoader(store, nil, nil, LoaderConfig{Source: SourceSeed, Delay: time.Hour}, zaptest.NewLogger(t))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, l.Load(ctx), context.Canceled)
	assert.Equal(t, 0, store.Len())
	assert.False(t, store.Loading())
}

func TestLoader_GenerateUsesPostureContext(t *testing.T) {
	p := &fakeProvider{content: generatedJSON}
	store := recommendation.NewStore()
	g := NewGenerator(p, DefaultGeneratorConfig(), zaptest.NewLogger(t))
	l := NewLoader(store, g, fakePosture{text: "3 CRITICAL findings in aws"},
		LoaderConfig{Source: SourceGenerate, Context: "Customer runs EKS"}, zaptest.NewLogger(t))

	require.NoError(t, l.Load(context.Background()))
	assert.Equal(t, 2, store.Len())

	prompt := p.requests[0].Messages[0].Content
	assert.Contains(t, prompt, "Customer runs EKS")
	assert.Contains(t, prompt, "3 CRITICAL findings in aws")
}

func TestLoader_KeepsRecordsAlreadyInStore(t *testing.T) {
	store := recommendation.NewStore()
	l := NewLoader(store, nil, nil, LoaderConfig{Source: SourceSeed, Delay: 200 * time.Millisecond}, zaptest.NewLogger(t))

	done := make(chan error, 1)
	go func() { done <- l.Load(context.Background()) }()
	require.Eventually(t, store.Loading, time.Second, time.Millisecond)

	// a generate request finishes while the initial load is still waiting
	store.SetLoading(true)
	store.Replace([]recommendation.Recommendation{{ID: "gen-1", Title: "Generated", Status: recommendation.StatusPending}})
	store.SetLoading(false)
	assert.True(t, store.Loading(), "initial load still in flight")

	require.NoError(t, <-done)
	all := store.All()
	require.Len(t, all, 1)
	assert.Equal(t, "gen-1", all[0].ID)
	assert.False(t, store.Loading())
}

func TestLoader_GenerateHonorsDelay(t *testing.T) {
	p := &fakeProvider{content: generatedJSON}
	store := recommendation.NewStore()
	g := NewGenerator(p, DefaultGeneratorConfig(), zaptest.NewLogger(t))
	l := NewLoader(store, g, nil, LoaderConfig{Source: SourceGenerate, Delay: time.Hour}, zaptest.NewLogger(t))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, l.Load(ctx), context.Canceled)
	assert.Empty(t, p.requests)
	assert.Equal(t, 0, store.Len())
	assert.False(t, store.Loading())
}

func TestLoader_BuildContextToleratesPostureError(t *testing.T) {
	l := NewLoader(recommendation.NewStore(), nil, fakePosture{err: errors.New("denied")},
		LoaderConfig{Context: "base"}, zaptest.NewLogger(t))
	assert.Equal(t, "base", l.BuildContext(context.Background()))

	l = NewLoader(recommendation.NewStore(), nil, nil, LoaderConfig{}, zaptest.NewLogger(t))
	assert.NotEmpty(t, l.BuildContext(context.Background()))
}
