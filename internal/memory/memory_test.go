package memory

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testEmbedding is a deterministic local embedding so tests never touch a
// provider. Token hashes bucketed into a fixed-dimension unit vector.
func testEmbedding(_ context.Context, text string) ([]float32, error) {
	const dim = 32
	v := make([]float32, dim)
	for _, tok := range strings.Fields(strings.ToLower(text)) {
		h := fnv.New32a()
		h.Write([]byte(tok))
		v[h.Sum32()%dim]++
	}

	var norm float64
	for _, x := range v {
		norm += float64(x) * float64(x)
	}
	if norm == 0 {
		v[0] = 1
		return v, nil
	}
	norm = math.Sqrt(norm)
	for i := range v {
		v[i] = float32(float64(v[i]) / norm)
	}
	return v, nil
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir(), testEmbedding)
	require.NoError(t, err)
	require.True(t, s.Available())
	return s
}

func TestStoreAnswer_And_WeakAreas(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	ok := s.StoreAnswer(ctx, "s1", "What is a goroutine?", []string{"a thread"}, []string{"a lightweight routine"}, "Concurrency", "Moderate", 30.0)
	require.True(t, ok)
	require.True(t, s.StoreAnswer(ctx, "s1", "What does defer do?", []string{"wrong"}, []string{"delays a call"}, "Concurrency", "Easy", 0.0))
	require.True(t, s.StoreAnswer(ctx, "s1", "What is a slice?", []string{"a view"}, []string{"a view"}, "Basics", "Easy", 100.0))

	weak := s.WeakAreas(ctx, "s1", 5)
	assert.Equal(t, []string{"Concurrency"}, weak)
}

func TestWeakAreas_RanksByIncorrectFrequency(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	// Two misses in Concurrency, one in Basics: Concurrency ranks first.
	require.True(t, s.StoreAnswer(ctx, "s1", "q1", nil, []string{"x"}, "Concurrency", "Easy", 0))
	require.True(t, s.StoreAnswer(ctx, "s1", "q2", nil, []string{"x"}, "Concurrency", "Easy", 10))
	require.True(t, s.StoreAnswer(ctx, "s1", "q3", nil, []string{"x"}, "Basics", "Easy", 20))

	weak := s.WeakAreas(ctx, "s1", 5)
	require.Len(t, weak, 2)
	assert.Equal(t, "Concurrency", weak[0])
	assert.Equal(t, "Basics", weak[1])
}

func TestWeakAreas_CorrectRecordsDoNotCount(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	// At or above the cutoff counts as correct.
	require.True(t, s.StoreAnswer(ctx, "s1", "q1", nil, []string{"x"}, "Basics", "Easy", 70.0))
	require.True(t, s.StoreAnswer(ctx, "s1", "q2", nil, []string{"x"}, "Basics", "Easy", 100.0))

	assert.Empty(t, s.WeakAreas(ctx, "s1", 5))
}

func TestWeakAreas_EmptyStore(t *testing.T) {
	s := newTestStore(t)
	assert.Empty(t, s.WeakAreas(context.Background(), "s1", 5))
}

func TestStoreAnswer_UpsertsBySessionAndQuestion(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	// Resubmitting the identical question must replace, not duplicate.
	require.True(t, s.StoreAnswer(ctx, "s1", "q1", nil, []string{"x"}, "Basics", "Easy", 0))
	require.True(t, s.StoreAnswer(ctx, "s1", "q1", []string{"x"}, []string{"x"}, "Basics", "Easy", 100))

	summary := s.HistorySummary(ctx, "s1")
	assert.Equal(t, "Past performance: 1/1 correct. Weak areas from history: none identified.", summary)
}

func TestHistorySummary(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.True(t, s.StoreAnswer(ctx, "s1", "q1", nil, []string{"x"}, "Concurrency", "Easy", 0))
	require.True(t, s.StoreAnswer(ctx, "s1", "q2", nil, []string{"x"}, "Basics", "Easy", 40))
	require.True(t, s.StoreAnswer(ctx, "s1", "q3", []string{"x"}, []string{"x"}, "Basics", "Easy", 90))

	summary := s.HistorySummary(ctx, "s1")
	assert.Equal(t, "Past performance: 1/3 correct. Weak areas from history: Basics, Concurrency.", summary)
}

func TestHistorySummary_EmptyStore(t *testing.T) {
	s := newTestStore(t)
	assert.Equal(t, "", s.HistorySummary(context.Background(), "s1"))
}

func TestClear_ThenQueriesReturnEmpty(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.True(t, s.StoreAnswer(ctx, "s1", "q1", nil, []string{"x"}, "Basics", "Easy", 0))
	require.True(t, s.Clear(ctx, "s1"))

	assert.Empty(t, s.WeakAreas(ctx, "s1", 5))
	assert.Equal(t, "", s.HistorySummary(ctx, "s1"))
}

func TestClear_EmptySessionIsSuccessfulNoOp(t *testing.T) {
	s := newTestStore(t)
	assert.True(t, s.Clear(context.Background(), "never-seen"))
}

func TestNoCrossSessionLeakage(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.True(t, s.StoreAnswer(ctx, "s1", "q1", nil, []string{"x"}, "Concurrency", "Easy", 0))
	require.True(t, s.StoreAnswer(ctx, "s2", "q1", nil, []string{"x"}, "History", "Easy", 0))

	for _, topic := range s.WeakAreas(ctx, "s1", 5) {
		assert.NotEqual(t, "History", topic, "weak areas leaked another session's topic")
	}
	assert.NotContains(t, s.HistorySummary(ctx, "s1"), "History")
}

func TestNilStore_Degrades(t *testing.T) {
	ctx := context.Background()
	var s *Store

	assert.False(t, s.Available())
	assert.False(t, s.StoreAnswer(ctx, "s1", "q", nil, nil, "t", "Easy", 0))
	assert.Empty(t, s.WeakAreas(ctx, "s1", 5))
	assert.Equal(t, "", s.HistorySummary(ctx, "s1"))
	assert.False(t, s.Clear(ctx, "s1"))
}
