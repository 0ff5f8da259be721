package matcher_test

import (
	"testing"

	"github.com/jonesrussell/north-cloud/ercwiki/internal/matcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatch_NoCandidates(t *testing.T) {
	t.Parallel()

	res := matcher.Match("Enrollment Rate", nil)
	assert.False(t, res.Matched)
	assert.Equal(t, -1, res.Index)
	assert.Empty(t, res.Candidate)
	assert.Zero(t, res.Score)
}

func TestMatch_TokenOverlap(t *testing.T) {
	t.Parallel()

	res := matcher.Match("enrollment-rate", []string{"Enrollment Rate Trends", "Graduation Rate"})
	require.True(t, res.Matched)
	assert.Equal(t, "Enrollment Rate Trends", res.Candidate)
	assert.Equal(t, 0, res.Index)
	assert.GreaterOrEqual(t, res.Score, 0.5)
}

func TestMatch_ExactAlwaysWins(t *testing.T) {
	t.Parallel()

	// The first candidate reaches 1.0 by token overlap only.
	candidates := []string{"Rate Enrollment", "Enrollment Rate", "enrollment rate"}

	res := matcher.Match("Enrollment Rate", candidates)
	require.True(t, res.Matched)
	assert.Equal(t, 1, res.Index)
	assert.Equal(t, "Enrollment Rate", res.Candidate)
	assert.InDelta(t, 1.0, res.Score, 1e-9)
}

func TestMatch_TiesGoToEarliest(t *testing.T) {
	t.Parallel()

	res := matcher.Match("rate", []string{"Graduation Rate", "Retention Rate"})
	require.True(t, res.Matched)
	assert.Equal(t, 0, res.Index)
	assert.InDelta(t, 0.9, res.Score, 1e-9)
}

func TestMatch_ResultIsMemberOfCandidates(t *testing.T) {
	t.Parallel()

	candidates := []string{"Student ID", "Term Code", "Course Number", "Semester Credit Hours"}
	names := []string{"student-id", "TERM", "credit hours", "zzz", "", "Course Number"}

	for _, name := range names {
		res := matcher.Match(name, candidates)
		if !res.Matched {
			assert.Equal(t, -1, res.Index, name)
			continue
		}
		require.GreaterOrEqual(t, res.Index, 0, name)
		require.Less(t, res.Index, len(candidates), name)
		assert.Equal(t, candidates[res.Index], res.Candidate, name)
		assert.GreaterOrEqual(t, res.Score, matcher.DefaultThreshold, name)
		assert.LessOrEqual(t, res.Score, 1.0, name)
	}
}

func TestMatch_BelowThresholdReportsScore(t *testing.T) {
	t.Parallel()

	res := matcher.Match("alpha beta gamma", []string{"alpha delta epsilon zeta"})
	assert.False(t, res.Matched)
	assert.Equal(t, -1, res.Index)
	assert.InDelta(t, 1.0/6.0, res.Score, 1e-9)
}

func TestMatcher_ThresholdBoundary(t *testing.T) {
	t.Parallel()

	// Jaccard of {alpha, beta} and {alpha, beta, gamma, delta} is exactly 0.5.
	candidates := []string{"alpha beta gamma delta"}

	tests := []struct {
		name      string
		threshold float64
		matched   bool
	}{
		{"default", 0, true},
		{"equal", 0.5, true},
		{"just above", 0.5000001, false},
		{"lower", 0.499999, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := matcher.New(tt.threshold).Match("beta alpha", candidates)
			assert.Equal(t, tt.matched, res.Matched)
			assert.InDelta(t, 0.5, res.Score, 1e-9)
		})
	}
}

func TestMatch_RejectsJustBelowThreshold(t *testing.T) {
	t.Parallel()

	// {b, a} vs {a, c, b, d, e}: 2/5 = 0.4, rejected at 0.4 + epsilon.
	m := matcher.New(0.400001)
	res := m.Match("b a", []string{"a c b d e"})
	assert.False(t, res.Matched)

	res = matcher.New(0.4).Match("b a", []string{"a c b d e"})
	assert.True(t, res.Matched)
}

func TestNew_NonPositiveThresholdUsesDefault(t *testing.T) {
	t.Parallel()

	// 2/5 = 0.4 is below DefaultThreshold.
	for _, threshold := range []float64{0, -1} {
		res := matcher.New(threshold).Match("b a", []string{"a c b d e"})
		assert.False(t, res.Matched)
		assert.InDelta(t, 0.4, res.Score, 1e-9)
	}

	res := matcher.New(0.01).Match("b a", []string{"a c b d e"})
	assert.True(t, res.Matched)
}

func TestMatch_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	candidates := []string{"  Enrollment RATE ", "Other"}
	snapshot := append([]string(nil), candidates...)

	res := matcher.Match("enrollment rate", candidates)
	assert.Equal(t, snapshot, candidates)
	assert.Equal(t, "  Enrollment RATE ", res.Candidate)
}

func TestMatch_Deterministic(t *testing.T) {
	t.Parallel()

	candidates := []string{"Fall Enrollment", "Spring Enrollment", "Enrollment Status"}
	first := matcher.Match("enrollment", candidates)
	for range 10 {
		assert.Equal(t, first, matcher.Match("enrollment", candidates))
	}
}

func TestMatch_EmptyNameNeverMatches(t *testing.T) {
	t.Parallel()

	res := matcher.Match("!!!", []string{"", "???"})
	assert.False(t, res.Matched)
	assert.Zero(t, res.Score)
}
