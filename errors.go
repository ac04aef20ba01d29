package vitrine

import "fmt"

// UnknownRefError reports a configuration reference to an ID missing from
// a registry.
type UnknownRefError struct {
	Registry string
	ID       string
	Section  string
}

func (e *UnknownRefError) Error() string {
	if e.Section != "" {
		return fmt.Sprintf("section %q: unknown %s id %q", e.Section, e.Registry, e.ID)
	}
	return fmt.Sprintf("unknown %s id %q", e.Registry, e.ID)
}

// BadOptionsError reports options that violate a definition's settings
// schema.
type BadOptionsError struct {
	ID      string
	Section string
	Err     error
}

func (e *BadOptionsError) Error() string {
	if e.Section != "" {
		return fmt.Sprintf("section %q: %q: %v", e.Section, e.ID, e.Err)
	}
	return fmt.Sprintf("%q: %v", e.ID, e.Err)
}

func (e *BadOptionsError) Unwrap() error { return e.Err }
