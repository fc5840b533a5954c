package core

import "github.com/ZanzyTHEbar/errbuilder-go"

// errBadRelation reports an unrecognized Debian relation operator,
// e.g. anything other than <<, <=, =, >=, >>.
func errBadRelation(op string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg("unknown relation operator: " + op)
}
