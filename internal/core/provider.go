package core

import "sort"

// Provider is the callback surface the SAT-kernel adapter drives the
// resolution through: it never inspects the universe directly, only
// ever asks Provider for candidates, whether a candidate matches a
// requirement, how candidates should be preferred, and what a
// solvable's own requirements and conflicts are. This mirrors the
// DependencyProvider/Interner split the upstream resolver is built
// around, collapsed into a single Go type since this package has
// no async cancellation boundary to keep separate.
type Provider struct {
	universe *Universe
}

// NewProvider wraps a loaded Universe in a Provider.
func NewProvider(u *Universe) *Provider {
	return &Provider{universe: u}
}

// GetCandidates returns every known SolvableId for a package name, in
// no particular order; callers sort with SortCandidates.
func (p *Provider) GetCandidates(name NameId) []SolvableId {
	return p.universe.ByName[name]
}

// FilterCandidates returns the subset of candidates contained in the
// version set vs. When inverse is true it returns the subset NOT
// contained in vs, used to evaluate a Constrains relationship without
// needing a second interned range for every conflict.
func (p *Provider) FilterCandidates(candidates []SolvableId, vs VersionSetId, inverse bool) []SolvableId {
	_, rng, ok := p.universe.Pool.ResolveVersionSet(vs)
	if !ok {
		return nil
	}
	out := make([]SolvableId, 0, len(candidates))
	for _, c := range candidates {
		_, version, _, ok := p.universe.Pool.ResolveSolvable(c)
		if !ok {
			continue
		}
		if rng.Contains(version) != inverse {
			out = append(out, c)
		}
	}
	return out
}

// SortCandidates orders candidates from most to least preferred:
// higher Debian version first, so the cost function built in kernel.go
// can bias the solver toward newer versions without needing to invert
// a comparator at every call site.
func (p *Provider) SortCandidates(candidates []SolvableId) []SolvableId {
	out := append([]SolvableId(nil), candidates...)
	sort.SliceStable(out, func(i, j int) bool {
		_, vi, _, _ := p.universe.Pool.ResolveSolvable(out[i])
		_, vj, _, _ := p.universe.Pool.ResolveSolvable(out[j])
		return vi.Compare(vj) > 0
	})
	return out
}

// GetDependencies returns the requirements (version-set unions) and
// constraints (version sets a coexisting package of that name must
// fall inside of: the complement of each conflict) declared by a
// solvable.
func (p *Provider) GetDependencies(s SolvableId) (requirements []VersionSetUnionId, constraints []VersionSetId) {
	return p.universe.Requirements[s], p.universe.Constraints[s]
}

// DisplaySolvable, DisplayName and DisplayVersionSet forward to the
// Pool for diagnostic rendering; the kernel adapter never formats
// identifiers itself.
func (p *Provider) DisplaySolvable(id SolvableId) string { return p.universe.Pool.DisplaySolvable(id) }
func (p *Provider) DisplayName(id NameId) string          { return p.universe.Pool.DisplayName(id) }
func (p *Provider) DisplayVersionSet(id VersionSetId) string {
	return p.universe.Pool.DisplayVersionSet(id)
}
func (p *Provider) DisplayMergedSolvables(ids []SolvableId) string {
	return p.universe.Pool.DisplayMergedSolvables(ids)
}
