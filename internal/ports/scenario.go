package ports

import (
	"context"

	"aptedsp/internal/types"
)

// ScenarioSource reads an EDSP request document from wherever the
// caller's transport puts it (stdin for the apt interactive protocol,
// a file for offline fixtures and tests).
type ScenarioSource interface {
	ReadScenario(ctx context.Context) (types.Scenario, error)
}

// AnswerSink writes a solved Answer back out in EDSP answer-document
// form.
type AnswerSink interface {
	WriteAnswer(types.Answer) error
}
