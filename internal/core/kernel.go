package core

import (
	"context"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/crillab/gophersat/solver"
)

// installedBonus biases the cost function heavily toward keeping an
// already-installed package selected: it has to outweigh every
// plausible version-preference weight, since those are small integers
// bounded by how many versions a single package has.
const installedBonus = 1 << 20

// UnsolvableProblem carries enough interned identifiers to render a
// human-readable explanation of why no solution exists, without the
// kernel adapter needing to know how to format anything itself.
type UnsolvableProblem struct {
	Requirements []Requirement
	Constraints  []VersionSetId
}

// Solve drives gophersat through the Provider Adapter to pick one
// SolvableId per name that satisfies every hard Requirement and
// Constraint in req, every transitive requirement and conflict
// declared by the solvables it pulls in, while preferring newer
// versions and, where a soft Requirement names an already-installed
// package, preferring to keep it selected.
//
// It returns the chosen solvables on success, or a nil slice alongside a
// non-nil UnsolvableProblem when gophersat proves the CNF encoding unsat.
func Solve(ctx context.Context, p *Provider, u *Universe, req CompiledRequest) ([]SolvableId, *UnsolvableProblem, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	numVars := len(u.Pool.solvables)
	if numVars == 0 {
		return nil, nil, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("universe contains no packages to solve over")
	}

	b := &clauseBuilder{provider: p, universe: u}
	b.addAtMostOnePerName()
	if err := b.addRootRequirements(req.Requirements); err != nil {
		return nil, nil, err
	}
	b.addRootConstraints(req.Constraints)
	b.addTransitiveClauses()

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	problem := solver.ParseSliceNb(b.clauses, numVars)
	problem.SetCostFunc(b.costLits, b.costWeights)
	sat := solver.New(problem)
	cost := sat.Minimize()
	if cost < 0 {
		return nil, &UnsolvableProblem{Requirements: req.Requirements, Constraints: req.Constraints}, nil
	}

	model := sat.Model()
	var chosen []SolvableId
	for id := 1; id <= numVars; id++ {
		if id-1 < len(model) && model[id-1] {
			chosen = append(chosen, SolvableId(id))
		}
	}
	return chosen, nil, nil
}

// clauseBuilder accumulates CNF clauses and cost-function weights for
// one Solve invocation. SolvableId doubles as the gophersat variable
// id: the Pool assigns ids contiguously from 1 in intern order, which
// is exactly the numbering gophersat's ParseSliceNb expects.
type clauseBuilder struct {
	provider *Provider
	universe *Universe
	clauses  [][]int

	costLits    []solver.Lit
	costWeights []int
	weighted    map[SolvableId]bool
}

func (b *clauseBuilder) addAtMostOnePerName() {
	for _, ids := range b.universe.ByName {
		sorted := b.provider.SortCandidates(ids)
		for i, id := range sorted {
			b.addCost(id, i)
		}
		for i := 0; i < len(ids); i++ {
			for j := i + 1; j < len(ids); j++ {
				b.clauses = append(b.clauses, []int{-int(ids[i]), -int(ids[j])})
			}
		}
	}
}

func (b *clauseBuilder) addCost(id SolvableId, preferenceRank int) {
	if b.weighted == nil {
		b.weighted = make(map[SolvableId]bool)
	}
	if b.weighted[id] {
		return
	}
	b.weighted[id] = true
	b.costLits = append(b.costLits, solver.IntToLit(int32(id)))
	b.costWeights = append(b.costWeights, preferenceRank)
}

func (b *clauseBuilder) addRootRequirements(requirements []Requirement) error {
	for _, req := range requirements {
		candidates, err := b.unionCandidates(req.Union)
		if err != nil {
			return err
		}
		if len(candidates) == 0 {
			if req.Soft {
				continue
			}
			// An empty clause: nothing can satisfy this requirement, so the
			// encoding is unsat and Solve reports an UnsolvableProblem.
			b.clauses = append(b.clauses, []int{})
			continue
		}
		if req.Soft {
			b.biasTowardInstalled(candidates)
			continue
		}
		b.clauses = append(b.clauses, intSlice(candidates))
	}
	return nil
}

// biasTowardInstalled makes dropping whichever candidate in candidates
// is already installed cost installedBonus, so the solver keeps it
// selected unless a hard requirement or conflict forces it out.
func (b *clauseBuilder) biasTowardInstalled(candidates []SolvableId) {
	installed := make(map[SolvableId]bool, len(b.universe.Installed))
	for _, id := range b.universe.Installed {
		installed[id] = true
	}
	for _, id := range candidates {
		if installed[id] {
			b.lowerCost(id, installedBonus)
		}
	}
}

// lowerCost makes selecting id cheaper by amount relative to leaving it
// out. The amount is charged on the negated literal, so every weight
// stays non-negative and a negative Minimize result only ever means
// unsat.
func (b *clauseBuilder) lowerCost(id SolvableId, amount int) {
	b.costLits = append(b.costLits, solver.IntToLit(int32(id)).Negation())
	b.costWeights = append(b.costWeights, amount)
}

// addRootConstraints forbids every candidate that does NOT fall
// inside the constraint's version set: a Constraint names the range a
// chosen candidate must fall inside of to coexist, so its complement
// is what gets excluded (see CompileRequest's remove-token handling).
func (b *clauseBuilder) addRootConstraints(constraints []VersionSetId) {
	for _, vs := range constraints {
		name, _, ok := b.universe.Pool.ResolveVersionSet(vs)
		if !ok {
			continue
		}
		candidates := b.provider.GetCandidates(name)
		forbidden := b.provider.FilterCandidates(candidates, vs, true)
		for _, id := range forbidden {
			b.clauses = append(b.clauses, []int{-int(id)})
		}
	}
}

func (b *clauseBuilder) addTransitiveClauses() {
	for _, id := range b.universe.Solvables {
		deps := Dependencies(b.provider, id)
		for _, union := range deps.Requirements {
			candidates, err := b.unionCandidates(union)
			if err != nil || len(candidates) == 0 {
				b.clauses = append(b.clauses, []int{-int(id)})
				continue
			}
			clause := append([]int{-int(id)}, intSlice(candidates)...)
			b.clauses = append(b.clauses, clause)
		}
		for _, vs := range deps.Constraints {
			name, _, ok := b.universe.Pool.ResolveVersionSet(vs)
			if !ok {
				continue
			}
			candidates := b.provider.GetCandidates(name)
			// vs is the allowed (complement-of-conflict) range; anything
			// outside it is what this solvable actually conflicts with.
			conflicting := b.provider.FilterCandidates(candidates, vs, true)
			for _, c := range conflicting {
				if c == id {
					continue
				}
				b.clauses = append(b.clauses, []int{-int(id), -int(c)})
			}
		}
	}
}

// unionCandidates resolves every member version set of a union and
// returns the deduplicated set of solvables satisfying any of them:
// the OR semantics a Debian alternation requires.
func (b *clauseBuilder) unionCandidates(union VersionSetUnionId) ([]SolvableId, error) {
	members, ok := b.universe.Pool.ResolveVersionSetUnion(union)
	if !ok {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("unknown version set union")
	}
	seen := make(map[SolvableId]bool)
	var out []SolvableId
	for _, vs := range members {
		name, _, ok := b.universe.Pool.ResolveVersionSet(vs)
		if !ok {
			continue
		}
		candidates := b.provider.GetCandidates(name)
		matching := b.provider.FilterCandidates(candidates, vs, false)
		for _, c := range matching {
			if !seen[c] {
				seen[c] = true
				out = append(out, c)
			}
		}
	}
	return out, nil
}

func intSlice(ids []SolvableId) []int {
	out := make([]int, len(ids))
	for i, id := range ids {
		out[i] = int(id)
	}
	return out
}
