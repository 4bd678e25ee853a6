package recommendation

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_UpdateStatus(t *testing.T) {
	s := NewStore()
	s.Replace(scenarioFixtures())

	require.True(t, s.UpdateStatus("a", StatusApproved))

	rec, ok := s.Get("a")
	require.True(t, ok)
	assert.Equal(t, StatusApproved, rec.Status)
	assert.Equal(t, RiskCritical, rec.RiskLevel)
	assert.Empty(t, rec.ImplementedOn)

	// other records untouched
	assert.Equal(t, scenarioFixtures()[1:], s.All()[1:])
}

func TestStore_UpdateStatusUnknownIDIsNoop(t *testing.T) {
	s := NewStore()
	s.Replace(Seed())
	before := s.All()

	assert.False(t, s.UpdateStatus("missing", StatusRejected))
	assert.Equal(t, before, s.All())
}

func TestStore_ReopenIsAllowed(t *testing.T) {
	s := NewStore()
	s.Replace(scenarioFixtures())

	require.True(t, s.UpdateStatus("b", StatusPending))
	pending, implemented := Partition(s.All())
	assert.Len(t, pending, 3)
	assert.Empty(t, implemented)
	assert.Equal(t, Gauges{}, Aggregate(implemented))
}

func TestStore_AllReturnsCopy(t *testing.T) {
	s := NewStore()
	s.Replace(scenarioFixtures())

	got := s.All()
	got[0].Status = StatusRejected

	rec, _ := s.Get("a")
	assert.Equal(t, StatusPending, rec.Status)
}

func TestStore_ReplaceCopiesInput(t *testing.T) {
	recs := scenarioFixtures()
	s := NewStore()
	s.Replace(recs)
	recs[0].ID = "changed"

	_, ok := s.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 3, s.Len())
}

func TestStore_Loading(t *testing.T) {
	s := NewStore()
	assert.False(t, s.Loading())
	s.SetLoading(true)
	assert.True(t, s.Loading())
}

func TestStore_OverlappingLoadsKeepFlag(t *testing.T) {
	s := NewStore()
	s.SetLoading(true)
	s.SetLoading(true)

	s.SetLoading(false)
	assert.True(t, s.Loading(), "one load still in flight")

	s.SetLoading(false)
	assert.False(t, s.Loading())

	// an unpaired end does not underflow
	s.SetLoading(false)
	s.SetLoading(true)
	assert.True(t, s.Loading())
}

func TestStore_ReplaceIfEmpty(t *testing.T) {
	s := NewStore()
	assert.True(t, s.ReplaceIfEmpty(scenarioFixtures()))
	assert.Equal(t, 3, s.Len())

	assert.False(t, s.ReplaceIfEmpty(Seed()))
	assert.Equal(t, 3, s.Len())
	_, ok := s.Get("a")
	assert.True(t, ok)
}

func TestStore_ConcurrentUpdates(t *testing.T) {
	s := NewStore()
	s.Replace(Seed())

	var wg sync.WaitGroup
	for _, r := range Seed() {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			s.UpdateStatus(id, StatusApproved)
			_ = s.All()
		}(r.ID)
	}
	wg.Wait()

	_, implemented := Partition(s.All())
	assert.Len(t, implemented, len(Seed()))
}

func TestSeed_UniqueIDs(t *testing.T) {
	seen := map[string]bool{}
	for _, r := range Seed() {
		assert.False(t, seen[r.ID], "duplicate id %s", r.ID)
		seen[r.ID] = true
		assert.Contains(t, RiskSeverity, r.RiskLevel)
		assert.Contains(t, EffortSeverity, r.Effort)
		if r.Status == StatusApproved {
			assert.NotEmpty(t, r.ImplementedOn)
		}
	}
	pending, implemented := Partition(Seed())
	assert.Len(t, pending, 7)
	assert.Len(t, implemented, 17)
}

func TestParseEnums(t *testing.T) {
	risk, err := ParseRiskLevel("critical")
	require.NoError(t, err)
	assert.Equal(t, RiskCritical, risk)

	effort, err := ParseEffort(" HIGH ")
	require.NoError(t, err)
	assert.Equal(t, EffortHigh, effort)

	status, err := ParseStatus("Rejected")
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, status)

	_, err = ParseRiskLevel("severe")
	assert.Error(t, err)
	_, err = ParseEffort("")
	assert.Error(t, err)
	_, err = ParseStatus("done")
	assert.Error(t, err)
}
