package adapters

import (
	"bufio"
	"fmt"
	"io"

	"aptedsp/internal/types"
)

// EDSPWriter writes an Answer as an EDSP answer document: one stanza
// per action for a Solution, or a single Error stanza.
type EDSPWriter struct {
	w *bufio.Writer
}

// NewEDSPWriter wraps a writer that will receive an EDSP answer
// document.
func NewEDSPWriter(w io.Writer) *EDSPWriter {
	return &EDSPWriter{w: bufio.NewWriter(w)}
}

// WriteAnswer implements ports.AnswerSink.
func (e *EDSPWriter) WriteAnswer(answer types.Answer) error {
	if answer.IsError() {
		if err := e.writeError(*answer.Err); err != nil {
			return err
		}
		return e.w.Flush()
	}
	for _, action := range answer.Actions {
		if err := e.writeAction(action); err != nil {
			return err
		}
	}
	return e.w.Flush()
}

func (e *EDSPWriter) writeAction(action types.Action) error {
	field := fieldNameForKind(action.Kind)
	if _, err := fmt.Fprintf(e.w, "%s: %s\n", field, action.RecordID); err != nil {
		return err
	}
	if action.Package != "" {
		if _, err := fmt.Fprintf(e.w, "Package: %s\n", action.Package); err != nil {
			return err
		}
	}
	if action.Version != "" {
		if _, err := fmt.Fprintf(e.w, "Version: %s\n", action.Version); err != nil {
			return err
		}
	}
	if action.Architecture != "" {
		if _, err := fmt.Fprintf(e.w, "Architecture: %s\n", action.Architecture); err != nil {
			return err
		}
	}
	_, err := e.w.WriteString("\n")
	return err
}

func (e *EDSPWriter) writeError(answerErr types.AnswerError) error {
	if _, err := fmt.Fprintf(e.w, "Error: %s\n", answerErr.Kind); err != nil {
		return err
	}
	_, err := fmt.Fprintf(e.w, "Message: %s\n\n", answerErr.Message)
	return err
}

func fieldNameForKind(kind types.ActionKind) string {
	switch kind {
	case types.ActionInstall:
		return "Install"
	case types.ActionRemove:
		return "Remove"
	case types.ActionAutoremove:
		return "Autoremove"
	default:
		return "Install"
	}
}
