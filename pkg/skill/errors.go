package skill

import "fmt"

// MalformedDocumentError indicates that a skill file's frontmatter could
// not be parsed: an opened delimiter that is never closed, metadata that is
// not valid YAML, or recognized keys with the wrong shape.
type MalformedDocumentError struct {
	Reason string
}

func (e *MalformedDocumentError) Error() string {
	return fmt.Sprintf("malformed skill document: %s", e.Reason)
}

// UnboundVariableError indicates that a declared template variable was not
// supplied a binding by the caller.
type UnboundVariableError struct {
	Name string
}

func (e *UnboundVariableError) Error() string {
	return fmt.Sprintf("unbound template variable %q", e.Name)
}

// UnknownVariableError indicates that the caller supplied a binding for a
// variable the execution block does not declare. Bindings must match the
// declared set exactly so that a typo cannot silently produce a different
// command than intended.
type UnknownVariableError struct {
	Name string
}

func (e *UnknownVariableError) Error() string {
	return fmt.Sprintf("unknown template variable %q", e.Name)
}
