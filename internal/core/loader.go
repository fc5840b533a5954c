package core

import (
	"context"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"aptedsp/internal/types"
)

// Universe is the interned form of a Scenario: every package has been
// parsed into a SolvableId, every relation into a VersionSetId (or a
// VersionSetUnionId for alternations), against a shared Pool.
type Universe struct {
	Pool *Pool

	// Solvables lists every interned package in universe order.
	Solvables []SolvableId

	// Installed holds the subset of Solvables whose source package
	// record has Installed set.
	Installed []SolvableId

	// ByName indexes Solvables by their NameId for candidate lookup.
	ByName map[NameId][]SolvableId

	// Requirements maps a SolvableId to the set of VersionSetUnionIds
	// its Depends field compiles to: one union per Dependency entry
	// (a union of one member when there is no alternation).
	Requirements map[SolvableId][]VersionSetUnionId

	// Constraints maps a SolvableId to the VersionSetIds its Conflicts
	// field compiles to. Each entry is the *complement* of the
	// conflicting relationship's range: a constraint names the range a
	// coexisting candidate of that name must fall inside of, so the
	// complement of "conflicts with qux (>= 2)" is "compatible only
	// with qux versions below 2".
	Constraints map[SolvableId][]VersionSetId
}

// LoadUniverse interns every package, relation and dependency in a
// Scenario against a fresh Pool and returns the resulting Universe.
func LoadUniverse(ctx context.Context, scenario types.Scenario) (*Universe, error) {
	pool := NewPool()
	u := &Universe{
		Pool:         pool,
		ByName:       make(map[NameId][]SolvableId),
		Requirements: make(map[SolvableId][]VersionSetUnionId),
		Constraints:  make(map[SolvableId][]VersionSetId),
	}

	for i := range scenario.Universe {
		pkg := &scenario.Universe[i]
		assert.NotEmpty(ctx, pkg.Name, "package name must be set")
		assert.NotEmpty(ctx, pkg.ID, "package id must be set")
		nameID := pool.InternName(pkg.Name)
		version, err := NewVersion(pkg.Version)
		if err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("package " + pkg.Name + ": invalid version").
				WithCause(err)
		}
		solvableID := pool.InternSolvable(nameID, version, pkg)
		u.Solvables = append(u.Solvables, solvableID)
		u.ByName[nameID] = append(u.ByName[nameID], solvableID)
		if pkg.Installed {
			u.Installed = append(u.Installed, solvableID)
		}

		unions, err := internDependencies(pool, pkg.Depends)
		if err != nil {
			return nil, err
		}
		u.Requirements[solvableID] = unions

		constraints, err := internConflicts(pool, pkg.Conflicts)
		if err != nil {
			return nil, err
		}
		u.Constraints[solvableID] = constraints
	}

	log.Ctx(ctx).Debug().
		Int("packages", len(u.Solvables)).
		Int("names", len(u.ByName)).
		Int("installed", len(u.Installed)).
		Msg("universe loaded")
	return u, nil
}

// internDependencies compiles a package's Depends field into one
// VersionSetUnionId per Dependency entry, in declaration order.
func internDependencies(pool *Pool, deps []types.Dependency) ([]VersionSetUnionId, error) {
	unions := make([]VersionSetUnionId, 0, len(deps))
	for _, dep := range deps {
		members := make([]VersionSetId, 0, 1+len(dep.Alternates))
		rels := append([]types.Relationship{dep.First}, dep.Alternates...)
		for _, rel := range rels {
			vsID, err := internRelationship(pool, rel)
			if err != nil {
				return nil, err
			}
			members = append(members, vsID)
		}
		unions = append(unions, pool.InternVersionSetUnion(members))
	}
	return unions, nil
}

// internConflicts compiles a package's Conflicts field into the
// version sets a coexisting candidate must fall inside of: the
// complement of each conflicting relationship's own range.
func internConflicts(pool *Pool, conflicts []types.Relationship) ([]VersionSetId, error) {
	out := make([]VersionSetId, 0, len(conflicts))
	for _, rel := range conflicts {
		nameID, rng, err := relationshipRange(pool, rel)
		if err != nil {
			return nil, err
		}
		out = append(out, pool.InternVersionSet(nameID, rng.Complement()))
	}
	return out, nil
}

func internRelationship(pool *Pool, rel types.Relationship) (VersionSetId, error) {
	nameID, rng, err := relationshipRange(pool, rel)
	if err != nil {
		return 0, err
	}
	return pool.InternVersionSet(nameID, rng), nil
}

func relationshipRange(pool *Pool, rel types.Relationship) (NameId, Range, error) {
	nameID := pool.InternName(rel.Package)
	version := ""
	if rel.HasVersion {
		version = rel.Version
	}
	rng, err := RangeFromRelationship(string(rel.Relation), version)
	if err != nil {
		return 0, Range{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("relationship on " + rel.Package).
			WithCause(err)
	}
	return nameID, rng, nil
}
