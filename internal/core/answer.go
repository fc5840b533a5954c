package core

import (
	"strings"

	"aptedsp/internal/types"
)

// BuildAnswer diffs the solver's chosen solvables against the
// packages already installed in the universe and emits the action
// list an EDSP answer carries: an Install for every chosen solvable
// that is not already installed, followed by a Remove for every
// installed package whose name did not make it into the chosen set.
// Installs are emitted before removes, matching the order a package
// manager needs to apply them in when upgrades and drops are mixed
// (install the replacement before dropping what it replaces).
func BuildAnswer(pool *Pool, chosen []SolvableId) types.Answer {
	chosenNames := make(map[NameId]SolvableId, len(chosen))
	for _, id := range chosen {
		name, _, _, ok := pool.ResolveSolvable(id)
		if !ok {
			continue
		}
		chosenNames[name] = id
	}

	var installs, removes []types.Action
	for _, id := range chosen {
		name, version, pkg, ok := pool.ResolveSolvable(id)
		if !ok || pkg == nil {
			continue
		}
		if pkg.Installed {
			continue
		}
		installs = append(installs, types.Action{
			Kind:         types.ActionInstall,
			RecordID:     pkg.ID,
			Package:      pool.ResolveName(name),
			Version:      version.String(),
			Architecture: pkg.Architecture,
		})
	}

	for id := 1; id <= len(pool.solvables); id++ {
		solvableID := SolvableId(id)
		name, version, pkg, ok := pool.ResolveSolvable(solvableID)
		if !ok || pkg == nil || !pkg.Installed {
			continue
		}
		if _, stillChosen := chosenNames[name]; stillChosen {
			continue
		}
		removes = append(removes, types.Action{
			Kind:         types.ActionRemove,
			RecordID:     pkg.ID,
			Package:      pool.ResolveName(name),
			Version:      version.String(),
			Architecture: pkg.Architecture,
		})
	}

	actions := make([]types.Action, 0, len(installs)+len(removes))
	actions = append(actions, installs...)
	actions = append(actions, removes...)
	return types.Answer{Actions: actions}
}

// BuildUnsolvableAnswer renders an UnsolvableProblem into the
// error-kind answer an EDSP document carries when no solution exists.
func BuildUnsolvableAnswer(p *Provider, problem *UnsolvableProblem) types.Answer {
	var b strings.Builder
	b.WriteString("unable to satisfy:")
	for _, req := range problem.Requirements {
		members, ok := p.universe.Pool.ResolveVersionSetUnion(req.Union)
		if !ok {
			continue
		}
		b.WriteString("\n  - ")
		if req.Soft {
			b.WriteString("(soft) ")
		}
		parts := make([]string, 0, len(members))
		for _, vs := range members {
			parts = append(parts, p.DisplayVersionSet(vs))
		}
		b.WriteString(strings.Join(parts, " | "))
	}
	for _, vs := range problem.Constraints {
		b.WriteString("\n  - must not install ")
		b.WriteString(p.DisplayVersionSet(vs))
	}
	return types.Answer{Err: &types.AnswerError{
		Kind:    types.ErrorUnsolvable,
		Message: b.String(),
	}}
}

// BuildCancelledAnswer renders a context cancellation into the
// cancelled-kind answer.
func BuildCancelledAnswer(reason string) types.Answer {
	return types.Answer{Err: &types.AnswerError{
		Kind:    types.ErrorCancelled,
		Message: reason,
	}}
}
