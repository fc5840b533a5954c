package adapters

import (
	"context"
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"aptedsp/internal/types"
)

// yamlScenario is the on-disk fixture shape: Debian relationship
// syntax as plain strings, parsed through the same helpers the EDSP
// reader uses so a YAML fixture and a wire document agree on meaning.
type yamlScenario struct {
	Install  string            `yaml:"install"`
	Remove   string            `yaml:"remove"`
	Universe []yamlPackage     `yaml:"universe"`
}

type yamlPackage struct {
	Package      string `yaml:"package"`
	Version      string `yaml:"version"`
	Architecture string `yaml:"architecture"`
	Installed    bool   `yaml:"installed"`
	ID           string `yaml:"id"`
	Depends      string `yaml:"depends"`
	PreDepends   string `yaml:"pre_depends"`
	Conflicts    string `yaml:"conflicts"`
	Breaks       string `yaml:"breaks"`
}

// ScenarioFileAdapter loads a Scenario from a YAML fixture file,
// used by offline tests and the CLI's --format yaml mode. It
// implements ports.ScenarioSource.
type ScenarioFileAdapter struct {
	Path string
}

// NewScenarioFileAdapter returns an adapter bound to a YAML fixture
// path.
func NewScenarioFileAdapter(path string) *ScenarioFileAdapter {
	return &ScenarioFileAdapter{Path: path}
}

// ReadScenario implements ports.ScenarioSource.
func (a *ScenarioFileAdapter) ReadScenario(_ context.Context) (types.Scenario, error) {
	data, err := os.ReadFile(a.Path)
	if err != nil {
		return types.Scenario{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("scenario fixture not found").
			WithCause(err)
	}
	var doc yamlScenario
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return types.Scenario{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid scenario fixture").
			WithCause(err)
	}
	return scenarioFromYAML(doc)
}

func scenarioFromYAML(doc yamlScenario) (types.Scenario, error) {
	scenario := types.Scenario{
		Request: types.Request{
			Actions: types.Actions{Install: doc.Install, Remove: doc.Remove},
		},
	}
	for _, p := range doc.Universe {
		pkg := types.Package{
			Name:         p.Package,
			Version:      p.Version,
			Architecture: p.Architecture,
			Installed:    p.Installed,
			ID:           p.ID,
		}
		if pkg.ID == "" {
			pkg.ID = p.Package + "=" + p.Version
		}
		deps, err := parseDependencyField(p.Depends)
		if err != nil {
			return types.Scenario{}, err
		}
		pkg.Depends = deps

		preDeps, err := parseDependencyField(p.PreDepends)
		if err != nil {
			return types.Scenario{}, err
		}
		pkg.PreDepends = preDeps

		conflicts, err := parseRelationshipList(p.Conflicts)
		if err != nil {
			return types.Scenario{}, err
		}
		pkg.Conflicts = conflicts

		breaks, err := parseRelationshipList(p.Breaks)
		if err != nil {
			return types.Scenario{}, err
		}
		pkg.Breaks = breaks

		scenario.Universe = append(scenario.Universe, pkg)
	}
	return scenario, nil
}
