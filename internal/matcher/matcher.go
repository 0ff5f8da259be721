// Package matcher pairs free-text variable names with page headings using a
// small, deterministic similarity score.
//
// A candidate's score is the highest of:
//
//   - 1.0 when the normalized strings are equal
//   - 0.9 when one normalized string contains the other
//   - the Jaccard index of their word sets
//
// The best-scoring candidate wins, ties going to the earliest one. It is
// accepted when its score reaches the threshold.
package matcher

import "strings"

// DefaultThreshold is the minimum accepted score.
const DefaultThreshold = 0.5

const (
	exactScore       = 1.0
	containmentScore = 0.9
)

// Result is the outcome of matching one name. Index is -1 and Matched is false
// when nothing was accepted; Score still reports the best score seen.
type Result struct {
	Candidate string
	Index     int
	Score     float64
	Matched   bool
}

func noMatch(score float64) Result {
	return Result{Index: -1, Score: score}
}

// Matcher matches names against candidate headings.
type Matcher struct {
	// Threshold is the minimum accepted score. Zero or less means DefaultThreshold.
	Threshold float64
}

// New returns a Matcher with the given threshold. A threshold of zero or
// less selects DefaultThreshold, so there is no "accept any score" setting;
// callers wanting a looser match pass a small positive value.
func New(threshold float64) Matcher {
	return Matcher{Threshold: threshold}
}

func (m Matcher) threshold() float64 {
	if m.Threshold <= 0 {
		return DefaultThreshold
	}
	return m.Threshold
}

// Match returns the best candidate for name using DefaultThreshold.
func Match(name string, candidates []string) Result {
	return Matcher{}.Match(name, candidates)
}

// Match returns the best candidate for name. Inputs are not modified.
func (m Matcher) Match(name string, candidates []string) Result {
	return m.match(Normalize(name), candidates, nil)
}

// match scores the candidates not present in skip. A name that normalizes to
// nothing never matches.
func (m Matcher) match(normName string, candidates []string, skip map[int]bool) Result {
	best := noMatch(0)
	if normName == "" {
		return best
	}

	for i, candidate := range candidates {
		if skip[i] {
			continue
		}

		normCandidate := Normalize(candidate)
		if normName == normCandidate {
			best = Result{Candidate: candidate, Index: i, Score: exactScore}
			break
		}

		score := similarity(normName, normCandidate)
		if best.Index == -1 || score > best.Score {
			best = Result{Candidate: candidate, Index: i, Score: score}
		}
	}

	if best.Index == -1 || best.Score < m.threshold() {
		return noMatch(best.Score)
	}

	best.Matched = true
	return best
}

// Score returns the similarity of a and b in [0, 1].
func Score(a, b string) float64 {
	na, nb := Normalize(a), Normalize(b)
	if na == nb {
		return exactScore
	}
	return similarity(na, nb)
}

// similarity scores two distinct normalized strings.
func similarity(a, b string) float64 {
	score := jaccard(tokens(a), tokens(b))
	if a != "" && b != "" && (strings.Contains(a, b) || strings.Contains(b, a)) {
		score = max(score, containmentScore)
	}
	return score
}

func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	intersection := 0
	for t := range a {
		if _, ok := b[t]; ok {
			intersection++
		}
	}

	union := len(a) + len(b) - intersection
	return float64(intersection) / float64(union)
}
