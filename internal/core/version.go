// Package core implements the APT dependency resolution core: version
// and range algebra, the interning pool, the universe loader, the
// provider adapter, the request compiler, the SAT-kernel adapter, and
// the answer builder.
package core

import (
	"github.com/ZanzyTHEbar/errbuilder-go"
	debversion "github.com/knqyf263/go-deb-version"
)

// Version is an opaque, totally-ordered Debian version token. Equality
// is structural (delegated to the underlying parsed value, not the
// original string), and instances are immutable once created.
type Version struct {
	raw    string
	parsed debversion.Version
}

// NewVersion parses a Debian version string.
func NewVersion(raw string) (Version, error) {
	parsed, err := debversion.NewVersion(raw)
	if err != nil {
		return Version{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid debian version: " + raw).
			WithCause(err)
	}
	return Version{raw: raw, parsed: parsed}, nil
}

// Compare returns -1, 0 or 1 using Debian version comparison semantics.
func (v Version) Compare(other Version) int {
	return v.parsed.Compare(other.parsed)
}

// Equal reports whether two versions are the same under Debian version
// comparison.
func (v Version) Equal(other Version) bool {
	return v.parsed.Equal(other.parsed)
}

// String returns the original, unparsed version string.
func (v Version) String() string {
	return v.raw
}

// key returns a canonical string used to intern this version's value
// for equality purposes. It is the parsed representation's own string
// form rather than the original input. Versions that compare equal but
// print differently in that form (such as "1.0" and "1.00") get
// distinct keys.
func (v Version) key() string {
	return v.parsed.String()
}
