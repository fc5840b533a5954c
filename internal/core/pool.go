package core

import (
	"strings"

	"aptedsp/internal/types"
)

// NameId identifies an interned package name.
type NameId int32

// SolvableId identifies an interned (name, version) solvable. Negative
// values are reserved; the zero value is never a valid id (the pool
// starts its counters at 1).
type SolvableId int32

// VersionSetId identifies an interned (NameId, Range) requirement.
type VersionSetId int32

// StringId identifies an interned display string, used for diagnostic
// output that does not need to round-trip back into the data model.
type StringId int32

// VersionSetUnionId identifies an interned, ordered list of
// VersionSetIds: the encoding of a Debian alternation "a | b | c" once
// every alternative has been resolved to a version set against its own
// package name.
type VersionSetUnionId int32

type solvableKey struct {
	name    NameId
	version string
}

type versionSetKey struct {
	name  NameId
	range_ string
}

// Pool is the interning table the resolution core runs on: every
// other component in this package addresses packages, version
// constraints and display strings exclusively through the small
// integer ids this type hands out. Interning a name, solvable, version
// set or string is idempotent: interning the same payload twice
// returns the same id. Version set unions are not deduplicated.
type Pool struct {
	names    []string
	nameIdx  map[string]NameId

	solvables    []solvable
	solvableIdx  map[solvableKey]SolvableId

	versionSets    []versionSet
	versionSetIdx  map[versionSetKey]VersionSetId

	strings    []string
	stringIdx  map[string]StringId

	unions [][]VersionSetId
}

type solvable struct {
	name    NameId
	version Version
	pkg     *types.Package
}

type versionSet struct {
	name  NameId
	rng   Range
}

// NewPool returns an empty interning pool.
func NewPool() *Pool {
	return &Pool{
		nameIdx:       make(map[string]NameId),
		solvableIdx:   make(map[solvableKey]SolvableId),
		versionSetIdx: make(map[versionSetKey]VersionSetId),
		stringIdx:     make(map[string]StringId),
	}
}

// InternName interns a package name and returns its id.
func (p *Pool) InternName(name string) NameId {
	if id, ok := p.nameIdx[name]; ok {
		return id
	}
	p.names = append(p.names, name)
	id := NameId(len(p.names))
	p.nameIdx[name] = id
	return id
}

// ResolveName returns the name a NameId was interned from.
func (p *Pool) ResolveName(id NameId) string {
	if int(id) < 1 || int(id) > len(p.names) {
		return ""
	}
	return p.names[id-1]
}

// InternSolvable interns a (name, version) pair carrying the source
// package record, and returns its id.
func (p *Pool) InternSolvable(name NameId, version Version, pkg *types.Package) SolvableId {
	key := solvableKey{name: name, version: version.key()}
	if id, ok := p.solvableIdx[key]; ok {
		return id
	}
	p.solvables = append(p.solvables, solvable{name: name, version: version, pkg: pkg})
	id := SolvableId(len(p.solvables))
	p.solvableIdx[key] = id
	return id
}

// ResolveSolvable returns the interned name, version and source
// package record for a SolvableId.
func (p *Pool) ResolveSolvable(id SolvableId) (NameId, Version, *types.Package, bool) {
	if int(id) < 1 || int(id) > len(p.solvables) {
		return 0, Version{}, nil, false
	}
	s := p.solvables[id-1]
	return s.name, s.version, s.pkg, true
}

// InternVersionSet interns a (name, range) requirement and returns its
// id.
func (p *Pool) InternVersionSet(name NameId, rng Range) VersionSetId {
	key := versionSetKey{name: name, range_: rng.key()}
	if id, ok := p.versionSetIdx[key]; ok {
		return id
	}
	p.versionSets = append(p.versionSets, versionSet{name: name, rng: rng})
	id := VersionSetId(len(p.versionSets))
	p.versionSetIdx[key] = id
	return id
}

// ResolveVersionSet returns the interned name and range for a
// VersionSetId.
func (p *Pool) ResolveVersionSet(id VersionSetId) (NameId, Range, bool) {
	if int(id) < 1 || int(id) > len(p.versionSets) {
		return 0, Range{}, false
	}
	vs := p.versionSets[id-1]
	return vs.name, vs.rng, true
}

// InternVersionSetUnion interns an ordered list of VersionSetIds that
// together encode a Debian alternation. Members may name different
// packages; callers build the list with one entry per
// alternative, in the order the alternation listed them, since a
// solver may offer the first satisfiable alternative preferentially.
func (p *Pool) InternVersionSetUnion(members []VersionSetId) VersionSetUnionId {
	p.unions = append(p.unions, append([]VersionSetId(nil), members...))
	return VersionSetUnionId(len(p.unions))
}

// ResolveVersionSetUnion returns the member VersionSetIds of a union.
func (p *Pool) ResolveVersionSetUnion(id VersionSetUnionId) ([]VersionSetId, bool) {
	if int(id) < 1 || int(id) > len(p.unions) {
		return nil, false
	}
	return p.unions[id-1], true
}

// InternString interns a display string and returns its id.
func (p *Pool) InternString(s string) StringId {
	if id, ok := p.stringIdx[s]; ok {
		return id
	}
	p.strings = append(p.strings, s)
	id := StringId(len(p.strings))
	p.stringIdx[s] = id
	return id
}

// ResolveString returns the string an id was interned from.
func (p *Pool) ResolveString(id StringId) string {
	if int(id) < 1 || int(id) > len(p.strings) {
		return ""
	}
	return p.strings[id-1]
}

// DisplayName returns a human-readable form of a NameId for
// diagnostics.
func (p *Pool) DisplayName(id NameId) string {
	return p.ResolveName(id)
}

// DisplaySolvable returns "name version" for a SolvableId.
func (p *Pool) DisplaySolvable(id SolvableId) string {
	name, version, _, ok := p.ResolveSolvable(id)
	if !ok {
		return "<unknown solvable>"
	}
	return p.ResolveName(name) + " " + version.String()
}

// DisplayVersionSet returns "name (op version)" style text for a
// VersionSetId, suitable for unsolvable-problem diagnostics.
func (p *Pool) DisplayVersionSet(id VersionSetId) string {
	name, rng, ok := p.ResolveVersionSet(id)
	if !ok {
		return "<unknown version set>"
	}
	return p.ResolveName(name) + " " + displayRange(rng)
}

// DisplayMergedSolvables renders a list of SolvableIds sharing the
// same name as a single comma-joined version list, e.g.
// "libfoo (1.0, 1.1, 2.0)". An empty slice renders as the empty
// string, matching the upstream resolver's guard against emitting a
// dangling "()" when nothing merged.
func (p *Pool) DisplayMergedSolvables(ids []SolvableId) string {
	if len(ids) == 0 {
		return ""
	}
	versions := make([]string, 0, len(ids))
	var name string
	for _, id := range ids {
		n, v, _, ok := p.ResolveSolvable(id)
		if !ok {
			continue
		}
		name = p.ResolveName(n)
		versions = append(versions, v.String())
	}
	return name + " (" + strings.Join(versions, ", ") + ")"
}

func displayRange(r Range) string {
	switch r.kind {
	case rangeFull:
		return "(any version)"
	case rangeEmpty:
		return "(no version)"
	case rangeSingleton:
		return "(= " + r.bound.String() + ")"
	case rangeNotEqual:
		return "(!= " + r.bound.String() + ")"
	case rangeLowerStrict:
		return "(<< " + r.bound.String() + ")"
	case rangeLowerOrEqual:
		return "(<= " + r.bound.String() + ")"
	case rangeHigherOrEqual:
		return "(>= " + r.bound.String() + ")"
	case rangeHigherStrict:
		return "(>> " + r.bound.String() + ")"
	default:
		return ""
	}
}
