package core

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"aptedsp/internal/types"
)

// CompiledRequest is the solver-facing form of an EDSP Request: the
// hard requirements an install action imposes, the hard constraints a
// remove action imposes, and the soft requirements that keep
// already-installed packages installed unless something forces them
// out.
type CompiledRequest struct {
	Requirements []Requirement
	Constraints  []VersionSetId
}

// CompileRequest turns a Request into a CompiledRequest against the
// given Universe:
//   - each name in Actions.Install becomes a hard Requirement over the
//     full-range version set for that name (any version will do, the
//     SortCandidates preference decides which);
//   - each name in Actions.Remove becomes a hard Constraint over the
//     empty range for that name: a constraint names the range a
//     chosen candidate must fall INSIDE of to coexist, so an empty
//     range makes every candidate of that name unsatisfiable;
//   - every other installed package becomes a soft Requirement, so the
//     solver prefers to keep it but may drop it to satisfy a remove or
//     resolve a conflict.
func CompileRequest(ctx context.Context, pool *Pool, u *Universe, req types.Request) (CompiledRequest, error) {
	var out CompiledRequest

	installNames := splitFields(req.Actions.Install)
	removeNames := splitFields(req.Actions.Remove)
	removeSet := make(map[string]struct{}, len(removeNames))
	for _, n := range removeNames {
		removeSet[n] = struct{}{}
	}

	var unknownInstall, unknownRemove []string
	for _, name := range installNames {
		nameID := pool.InternName(name)
		if len(u.ByName[nameID]) == 0 {
			unknownInstall = append(unknownInstall, name)
		}
		vs := pool.InternVersionSet(nameID, Full())
		union := pool.InternVersionSetUnion([]VersionSetId{vs})
		out.Requirements = append(out.Requirements, Requirement{Union: union})
	}

	for _, name := range removeNames {
		nameID := pool.InternName(name)
		if len(u.ByName[nameID]) == 0 {
			unknownRemove = append(unknownRemove, name)
		}
		vs := pool.InternVersionSet(nameID, Empty())
		out.Constraints = append(out.Constraints, vs)
	}

	if len(unknownInstall) > 0 {
		log.Ctx(ctx).Warn().
			Strs("names", unknownInstall).
			Msg("install request names no known package (will be unsatisfiable)")
	}
	if len(unknownRemove) > 0 {
		log.Ctx(ctx).Warn().
			Strs("names", unknownRemove).
			Msg("remove request names no known package (vacuously satisfied)")
	}

	for _, solvableID := range u.Installed {
		nameID, _, pkg, ok := pool.ResolveSolvable(solvableID)
		if !ok || pkg == nil {
			continue
		}
		if _, removed := removeSet[pkg.Name]; removed {
			continue
		}
		vs := pool.InternVersionSet(nameID, Full())
		union := pool.InternVersionSetUnion([]VersionSetId{vs})
		out.Requirements = append(out.Requirements, Requirement{Union: union, Soft: true})
	}

	if len(out.Requirements) == 0 && len(out.Constraints) == 0 {
		return out, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("request compiles to no requirements or constraints")
	}
	return out, nil
}

func splitFields(s string) []string {
	fields := strings.Fields(s)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}
