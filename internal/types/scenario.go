// Package types holds the plain data values that flow between an EDSP
// request document and the resolution core: the scenario the package
// manager sends, and the answer the solver sends back.
package types

// Relation is a Debian version comparison operator as it appears in a
// dependency or conflict relationship: "name (>= 1.0)".
type Relation string

const (
	RelationEarlier      Relation = "<<"
	RelationEarlierEqual Relation = "<="
	RelationEqual        Relation = "="
	RelationLaterEqual   Relation = ">="
	RelationLater        Relation = ">>"
)

// Relationship is a single package name plus an optional version
// constraint, e.g. "libfoo" or "libfoo (>= 1.2)".
type Relationship struct {
	Package    string
	Relation   Relation
	Version    string
	HasVersion bool
}

// Dependency is a non-empty alternation of Relationships: "a | b | c".
// First is kept distinguished from Alternates only so a legacy,
// first-alternate-only codepath could be built on top of it; this
// repository always consumes the full alternation (see
// core.Provider.GetDependencies) and encodes it as a version-set union.
type Dependency struct {
	First      Relationship
	Alternates []Relationship
}

// Package is a single (name, version) record from the universe plus
// its relations. PreDepends and Breaks are carried for round-tripping
// EDSP documents but are not consumed by the solver.
type Package struct {
	Name         string
	Version      string
	Architecture string
	Installed    bool
	ID           string

	Depends    []Dependency
	PreDepends []Dependency
	Conflicts  []Relationship
	Breaks     []Relationship
}

// Actions is the set of whitespace-delimited package-name lists a
// request can carry. Only Install and Remove are implemented; the
// other EDSP 0.5 request flags (Upgrade-All, Forbid-Remove,
// Forbid-New-Install, Autoremove) are out of scope for this solver
// and are parsed nowhere in this repository.
type Actions struct {
	Install string
	Remove  string
}

// Request is the "Request:" stanza of an EDSP document.
type Request struct {
	Architecture string
	Actions      Actions
}

// Scenario is a full EDSP request: a Request plus the universe of
// known packages.
type Scenario struct {
	Request  Request
	Universe []Package
}
