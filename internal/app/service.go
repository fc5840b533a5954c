package app

import (
	"context"

	"aptedsp/internal/core"
	"aptedsp/internal/ports"
	"aptedsp/internal/types"
)

// Service is the application-layer entrypoint the CLI drives: it owns
// no state of its own beyond the ports wired into it, and delegates
// all resolution logic to internal/core.
type Service struct {
	Source ports.ScenarioSource
	Sink   ports.AnswerSink
}

// NewService returns a Service bound to the given transport ports.
func NewService(source ports.ScenarioSource, sink ports.AnswerSink) Service {
	return Service{Source: source, Sink: sink}
}

// Solve reads a Scenario from Source, resolves it, and writes the
// resulting Answer to Sink.
func (s Service) Solve(ctx context.Context) (types.Answer, error) {
	scenario, err := s.Source.ReadScenario(ctx)
	if err != nil {
		return types.Answer{}, err
	}
	answer, err := core.SolveScenario(ctx, scenario)
	if err != nil {
		return types.Answer{}, err
	}
	if err := s.Sink.WriteAnswer(answer); err != nil {
		return types.Answer{}, err
	}
	return answer, nil
}
