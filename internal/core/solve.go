package core

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"aptedsp/internal/types"
)

// SolveScenario is the resolution core's single entrypoint: it loads a
// Scenario into an interned Universe, compiles its Request into hard
// and soft solver demands, runs the SAT-kernel adapter, and builds the
// resulting Answer. Every other file in this package exists to serve
// one stage of this pipeline.
func SolveScenario(ctx context.Context, scenario types.Scenario) (types.Answer, error) {
	log.Ctx(ctx).Debug().
		Int("packages", len(scenario.Universe)).
		Str("install", scenario.Request.Actions.Install).
		Str("remove", scenario.Request.Actions.Remove).
		Msg("solve starting")

	universe, err := LoadUniverse(ctx, scenario)
	if err != nil {
		return types.Answer{}, err
	}

	compiled, err := CompileRequest(ctx, universe.Pool, universe, scenario.Request)
	if err != nil {
		return types.Answer{}, err
	}

	provider := NewProvider(universe)
	chosen, problem, err := Solve(ctx, provider, universe, compiled)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			log.Ctx(ctx).Debug().Err(err).Msg("solve cancelled")
			return BuildCancelledAnswer(err.Error()), nil
		}
		return types.Answer{}, err
	}
	if problem != nil {
		log.Ctx(ctx).Debug().
			Int("requirements", len(problem.Requirements)).
			Int("constraints", len(problem.Constraints)).
			Msg("solve unsolvable")
		return BuildUnsolvableAnswer(provider, problem), nil
	}

	log.Ctx(ctx).Debug().Int("chosen", len(chosen)).Msg("solve finished")
	return BuildAnswer(universe.Pool, chosen), nil
}
