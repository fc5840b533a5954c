package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aptedsp/internal/types"
)

// ---------------------------------------------------------------------------
// BuildAnswer
// ---------------------------------------------------------------------------

func TestBuildAnswerInstallsNewSolvables(t *testing.T) {
	scenario := types.Scenario{
		Universe: []types.Package{
			{Name: "baz", Version: "1.0", ID: "baz=1.0", Architecture: "amd64"},
		},
	}
	u := mustUniverse(t, scenario)
	answer := BuildAnswer(u.Pool, u.Solvables)

	require.Len(t, answer.Actions, 1)
	action := answer.Actions[0]
	assert.Equal(t, types.ActionInstall, action.Kind)
	assert.Equal(t, "baz=1.0", action.RecordID)
	assert.Equal(t, "baz", action.Package)
	assert.Equal(t, "1.0", action.Version)
	assert.Equal(t, "amd64", action.Architecture)
}

func TestBuildAnswerFullActionShape(t *testing.T) {
	// Deep-compares the whole Action record, not just one field at a
	// time: go-cmp gives a readable diff when any field drifts, which
	// a field-by-field assert.Equal chain would not (spec.md §6's
	// Install action field set).
	scenario := types.Scenario{
		Universe: []types.Package{
			{Name: "baz", Version: "1.0", ID: "baz=1.0", Architecture: "amd64"},
		},
	}
	u := mustUniverse(t, scenario)
	answer := BuildAnswer(u.Pool, u.Solvables)

	want := []types.Action{
		{Kind: types.ActionInstall, RecordID: "baz=1.0", Package: "baz", Version: "1.0", Architecture: "amd64"},
	}
	if diff := cmp.Diff(want, answer.Actions); diff != "" {
		t.Errorf("BuildAnswer() mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildAnswerDoesNotReinstallAlreadyInstalled(t *testing.T) {
	scenario := types.Scenario{
		Universe: []types.Package{
			{Name: "foo", Version: "1.0", ID: "foo=1.0", Installed: true},
		},
	}
	u := mustUniverse(t, scenario)
	answer := BuildAnswer(u.Pool, u.Solvables)
	assert.Empty(t, answer.Actions)
}

func TestBuildAnswerRemovesDroppedInstalledNames(t *testing.T) {
	scenario := types.Scenario{
		Universe: []types.Package{
			{Name: "foo", Version: "1.0", ID: "foo=1.0", Installed: true},
			{Name: "bar", Version: "1.0", ID: "bar=1.0"},
		},
	}
	u := mustUniverse(t, scenario)
	barName := u.Pool.InternName("bar")
	chosen := u.ByName[barName]

	answer := BuildAnswer(u.Pool, chosen)
	require.Len(t, answer.Actions, 2)
	assert.Equal(t, types.ActionInstall, answer.Actions[0].Kind)
	assert.Equal(t, "bar", answer.Actions[0].Package)
	assert.Equal(t, types.ActionRemove, answer.Actions[1].Kind)
	assert.Equal(t, "foo", answer.Actions[1].Package)
}

func TestBuildAnswerUpgradeIsInstallNotRemove(t *testing.T) {
	// A solvable for the same name at a different version appearing in
	// the solution triggers Install, not Remove, even though the
	// originally installed version is gone (spec.md §4.6 step 3).
	scenario := types.Scenario{
		Universe: []types.Package{
			{Name: "foo", Version: "1.0", ID: "foo=1.0", Installed: true},
			{Name: "foo", Version: "2.0", ID: "foo=2.0"},
		},
	}
	u := mustUniverse(t, scenario)
	fooName := u.Pool.InternName("foo")
	var v2 SolvableId
	for _, id := range u.ByName[fooName] {
		_, v, _, _ := u.Pool.ResolveSolvable(id)
		if v.String() == "2.0" {
			v2 = id
		}
	}
	require.NotZero(t, v2)

	answer := BuildAnswer(u.Pool, []SolvableId{v2})
	require.Len(t, answer.Actions, 1)
	assert.Equal(t, types.ActionInstall, answer.Actions[0].Kind)
	assert.Equal(t, "foo=2.0", answer.Actions[0].RecordID)
}

func TestBuildAnswerActionPartitioningIsDisjoint(t *testing.T) {
	scenario := types.Scenario{
		Universe: []types.Package{
			{Name: "foo", Version: "1.0", ID: "foo=1.0", Installed: true},
			{Name: "bar", Version: "1.0", ID: "bar=1.0"},
		},
	}
	u := mustUniverse(t, scenario)
	barName := u.Pool.InternName("bar")
	answer := BuildAnswer(u.Pool, u.ByName[barName])

	installed := make(map[string]bool)
	removed := make(map[string]bool)
	for _, a := range answer.Actions {
		switch a.Kind {
		case types.ActionInstall:
			installed[a.Package] = true
		case types.ActionRemove:
			removed[a.Package] = true
		}
	}
	for name := range installed {
		assert.False(t, removed[name], "package %q must not be both installed and removed", name)
	}
}
