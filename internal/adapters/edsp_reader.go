package adapters

import (
	"bufio"
	"context"
	"io"
	"net/textproto"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"aptedsp/internal/types"
)

// knownPackageFields lists the stanza fields parsePackageStanza
// understands. Anything else present in a Package stanza is accepted
// but ignored, and reported via a warn log rather than silently
// dropped.
var knownPackageFields = map[string]struct{}{
	"Package":      {},
	"Version":      {},
	"Architecture": {},
	"Id":           {},
	"Installed":    {},
	"Depends":      {},
	"Pre-Depends":  {},
	"Conflicts":    {},
	"Breaks":       {},
}

// EDSPReader reads an EDSP 0.5 request document: an RFC822-style
// stream of stanzas separated by blank lines, the first being the
// Request stanza and the rest Package stanzas. This is transport
// plumbing around the resolution core, not part of it; the core only
// ever sees the already-parsed Scenario value this produces.
type EDSPReader struct {
	r io.Reader
}

// NewEDSPReader wraps a reader positioned at the start of an EDSP
// document.
func NewEDSPReader(r io.Reader) *EDSPReader {
	return &EDSPReader{r: r}
}

// ReadScenario implements ports.ScenarioSource.
func (e *EDSPReader) ReadScenario(ctx context.Context) (types.Scenario, error) {
	tp := textproto.NewReader(bufio.NewReader(e.r))

	requestHeader, err := tp.ReadMIMEHeader()
	if err != nil && err != io.EOF {
		return types.Scenario{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to read request stanza").
			WithCause(err)
	}
	scenario := types.Scenario{
		Request: types.Request{
			Architecture: requestHeader.Get("Architecture"),
			Actions: types.Actions{
				Install: requestHeader.Get("Install"),
				Remove:  requestHeader.Get("Remove"),
			},
		},
	}

	for {
		header, err := tp.ReadMIMEHeader()
		if len(header) == 0 && err == io.EOF {
			break
		}
		if err != nil && err != io.EOF {
			return types.Scenario{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("failed to read package stanza").
				WithCause(err)
		}
		pkg, parseErr := parsePackageStanza(header)
		if parseErr != nil {
			return types.Scenario{}, parseErr
		}
		if unknown := unknownFields(header); len(unknown) > 0 {
			log.Ctx(ctx).Warn().
				Str("package", pkg.Name).
				Strs("fields", unknown).
				Msg("skipping unrecognized stanza fields")
		}
		scenario.Universe = append(scenario.Universe, pkg)
		if err == io.EOF {
			break
		}
	}
	return scenario, nil
}

// unknownFields returns the stanza field names parsePackageStanza
// does not understand, in no particular order (MIMEHeader is a map).
func unknownFields(header textproto.MIMEHeader) []string {
	var out []string
	for key := range header {
		if _, ok := knownPackageFields[key]; !ok {
			out = append(out, key)
		}
	}
	return out
}

func parsePackageStanza(header textproto.MIMEHeader) (types.Package, error) {
	name := header.Get("Package")
	if name == "" {
		return types.Package{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("package stanza missing Package field")
	}
	pkg := types.Package{
		Name:         name,
		Version:      header.Get("Version"),
		Architecture: header.Get("Architecture"),
		ID:           header.Get("ID"),
		Installed:    strings.EqualFold(strings.TrimSpace(header.Get("Installed")), "true"),
	}

	deps, err := parseDependencyField(header.Get("Depends"))
	if err != nil {
		return types.Package{}, err
	}
	pkg.Depends = deps

	preDeps, err := parseDependencyField(header.Get("Pre-Depends"))
	if err != nil {
		return types.Package{}, err
	}
	pkg.PreDepends = preDeps

	conflicts, err := parseRelationshipList(header.Get("Conflicts"))
	if err != nil {
		return types.Package{}, err
	}
	pkg.Conflicts = conflicts

	breaks, err := parseRelationshipList(header.Get("Breaks"))
	if err != nil {
		return types.Package{}, err
	}
	pkg.Breaks = breaks

	return pkg, nil
}

// parseDependencyField splits a comma-separated Depends/Pre-Depends
// field into its Dependency entries, each itself a pipe-separated
// alternation.
func parseDependencyField(field string) ([]types.Dependency, error) {
	if strings.TrimSpace(field) == "" {
		return nil, nil
	}
	var deps []types.Dependency
	for _, group := range strings.Split(field, ",") {
		group = strings.TrimSpace(group)
		if group == "" {
			continue
		}
		alts, err := parseRelationshipList(group)
		if err != nil {
			return nil, err
		}
		if len(alts) == 0 {
			continue
		}
		deps = append(deps, types.Dependency{First: alts[0], Alternates: alts[1:]})
	}
	return deps, nil
}

// parseRelationshipList parses a " | "-separated or ", "-separated
// list of "name" or "name (op version)" relationships.
func parseRelationshipList(field string) ([]types.Relationship, error) {
	if strings.TrimSpace(field) == "" {
		return nil, nil
	}
	var out []types.Relationship
	for _, part := range strings.FieldsFunc(field, func(r rune) bool { return r == '|' || r == ',' }) {
		rel, err := parseRelationship(part)
		if err != nil {
			return nil, err
		}
		out = append(out, rel)
	}
	return out, nil
}

func parseRelationship(part string) (types.Relationship, error) {
	part = strings.TrimSpace(part)
	open := strings.IndexByte(part, '(')
	if open < 0 {
		return types.Relationship{Package: part}, nil
	}
	close := strings.IndexByte(part, ')')
	if close < open {
		return types.Relationship{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("malformed relationship: " + part)
	}
	name := strings.TrimSpace(part[:open])
	constraint := strings.TrimSpace(part[open+1 : close])
	fields := strings.Fields(constraint)
	if len(fields) != 2 {
		return types.Relationship{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("malformed version constraint: " + part)
	}
	return types.Relationship{
		Package:    name,
		Relation:   types.Relation(fields[0]),
		Version:    fields[1],
		HasVersion: true,
	}, nil
}
