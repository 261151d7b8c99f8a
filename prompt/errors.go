package prompt

import (
	"errors"
	"fmt"
)

var (
	// ErrNoGeneralTemplate indicates the store has no general template to
	// fall back to. This is a configuration error: the general template
	// must always be registered.
	ErrNoGeneralTemplate = errors.New("no general template registered")

	// ErrTemplateNotFound indicates a lookup for an unregistered category.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrNoDefault indicates a restore was requested for a category that
	// has no embedded default.
	ErrNoDefault = errors.New("no embedded default for category")
)

// RenderError reports a template placeholder that could not be resolved
// from the record. Unresolved placeholders are a contract violation,
// never a silent blank.
type RenderError struct {
	Category    string
	Placeholder string
	Reason      string
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s template: placeholder {%s}: %s", e.Category, e.Placeholder, e.Reason)
}
