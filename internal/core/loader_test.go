package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aptedsp/internal/types"
)

// ---------------------------------------------------------------------------
// LoadUniverse
// ---------------------------------------------------------------------------

func TestLoadUniverseCandidateCompleteness(t *testing.T) {
	// Every package in the universe must resolve to a SolvableId that
	// appears in its own name's candidate list (spec.md §8 "Candidate
	// completeness").
	scenario := types.Scenario{
		Universe: []types.Package{
			{Name: "foo", Version: "1.0", ID: "foo=1.0"},
			{Name: "foo", Version: "2.0", ID: "foo=2.0"},
			{Name: "bar", Version: "1.0", ID: "bar=1.0"},
		},
	}

	u, err := LoadUniverse(context.Background(), scenario)
	require.NoError(t, err)

	for i, pkg := range scenario.Universe {
		nameID := u.Pool.InternName(pkg.Name)
		version, err := NewVersion(pkg.Version)
		require.NoError(t, err)
		solvableID := u.Pool.InternSolvable(nameID, version, &scenario.Universe[i])

		assert.Contains(t, u.ByName[nameID], solvableID)
	}
	assert.Len(t, u.Solvables, 3)
}

func TestLoadUniversePreservesDeclarationOrder(t *testing.T) {
	scenario := types.Scenario{
		Universe: []types.Package{
			{Name: "foo", Version: "3.0", ID: "foo=3.0"},
			{Name: "foo", Version: "1.0", ID: "foo=1.0"},
			{Name: "foo", Version: "2.0", ID: "foo=2.0"},
		},
	}
	u, err := LoadUniverse(context.Background(), scenario)
	require.NoError(t, err)

	nameID := u.Pool.InternName("foo")
	var versions []string
	for _, id := range u.ByName[nameID] {
		_, v, _, ok := u.Pool.ResolveSolvable(id)
		require.True(t, ok)
		versions = append(versions, v.String())
	}
	assert.Equal(t, []string{"3.0", "1.0", "2.0"}, versions)
}

func TestLoadUniverseTracksInstalled(t *testing.T) {
	scenario := types.Scenario{
		Universe: []types.Package{
			{Name: "foo", Version: "1.0", ID: "foo=1.0", Installed: true},
			{Name: "bar", Version: "1.0", ID: "bar=1.0"},
		},
	}
	u, err := LoadUniverse(context.Background(), scenario)
	require.NoError(t, err)
	require.Len(t, u.Installed, 1)

	name, _, pkg, ok := u.Pool.ResolveSolvable(u.Installed[0])
	require.True(t, ok)
	assert.Equal(t, "foo", u.Pool.ResolveName(name))
	assert.True(t, pkg.Installed)
}

func TestLoadUniverseCompilesDependsAsUnions(t *testing.T) {
	scenario := types.Scenario{
		Universe: []types.Package{
			{
				Name: "baz", Version: "1.0", ID: "baz=1.0",
				Depends: []types.Dependency{
					{First: types.Relationship{Package: "a"}, Alternates: []types.Relationship{{Package: "b"}}},
				},
			},
			{Name: "a", Version: "1.0", ID: "a=1.0"},
			{Name: "b", Version: "1.0", ID: "b=1.0"},
		},
	}
	u, err := LoadUniverse(context.Background(), scenario)
	require.NoError(t, err)

	bazName := u.Pool.InternName("baz")
	bazID := u.ByName[bazName][0]
	unions := u.Requirements[bazID]
	require.Len(t, unions, 1)

	members, ok := u.Pool.ResolveVersionSetUnion(unions[0])
	require.True(t, ok)
	assert.Len(t, members, 2)
}

func TestLoadUniverseCompilesConflictsAsComplements(t *testing.T) {
	scenario := types.Scenario{
		Universe: []types.Package{
			{
				Name: "bar", Version: "1.0", ID: "bar=1.0",
				Conflicts: []types.Relationship{
					{Package: "foo", Relation: types.RelationLaterEqual, Version: "2.0", HasVersion: true},
				},
			},
			{Name: "foo", Version: "1.0", ID: "foo=1.0"},
		},
	}
	u, err := LoadUniverse(context.Background(), scenario)
	require.NoError(t, err)

	barName := u.Pool.InternName("bar")
	barID := u.ByName[barName][0]
	constraints := u.Constraints[barID]
	require.Len(t, constraints, 1)

	_, rng, ok := u.Pool.ResolveVersionSet(constraints[0])
	require.True(t, ok)
	assert.True(t, rng.Equal(StrictlyLowerThan(mustVersion(t, "2.0"))))
}

func TestLoadUniverseRejectsMalformedVersion(t *testing.T) {
	scenario := types.Scenario{
		Universe: []types.Package{
			{Name: "foo", Version: "not-a-version!!", ID: "foo"},
		},
	}
	_, err := LoadUniverse(context.Background(), scenario)
	assert.Error(t, err)
}
