package matcher

// Pool hands out candidates so that none is assigned twice. Each Claim
// considers only the candidates that are still unclaimed.
type Pool struct {
	matcher    Matcher
	candidates []string
	claimed    map[int]bool
}

// NewPool returns a pool over candidates. The slice is copied.
func (m Matcher) NewPool(candidates []string) *Pool {
	return &Pool{
		matcher:    m,
		candidates: append([]string(nil), candidates...),
		claimed:    make(map[int]bool),
	}
}

// Claim matches name against the unclaimed candidates and, when a match is
// accepted, removes the winner from the pool. Result.Index refers to the
// position in the original candidate list.
func (p *Pool) Claim(name string) Result {
	res := p.matcher.match(Normalize(name), p.candidates, p.claimed)
	if res.Matched {
		p.claimed[res.Index] = true
	}
	return res
}

// Remaining returns the number of unclaimed candidates.
func (p *Pool) Remaining() int {
	return len(p.candidates) - len(p.claimed)
}

// Assign matches names in order against one shared pool, greedily and
// without backtracking. The result has one entry per name.
func (m Matcher) Assign(names, candidates []string) []Result {
	pool := m.NewPool(candidates)

	results := make([]Result, len(names))
	for i, name := range names {
		results[i] = pool.Claim(name)
	}
	return results
}

// Assign is Matcher.Assign with DefaultThreshold.
func Assign(names, candidates []string) []Result {
	return Matcher{}.Assign(names, candidates)
}
