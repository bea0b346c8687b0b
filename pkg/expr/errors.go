package expr

import "errors"

var (
	// ErrBadVariableName is returned by ParseVar for names that are not
	// of the form "xK" with K >= 1.
	ErrBadVariableName = errors.New("expr: malformed variable name")

	// ErrUnknownVariable is returned by ParseVarNamed when the name
	// matches no entry in the variable table.
	ErrUnknownVariable = errors.New("expr: unknown variable")

	// ErrAmbiguousVariable is returned by ParseVarNamed when the name
	// matches more than one entry in the variable table.
	ErrAmbiguousVariable = errors.New("expr: ambiguous variable")
)
