package wiki2html

import "errors"

// Sentinel errors for library operations.
var (
	// ErrInvalidUTF8 indicates the input is not valid UTF-8 text.
	ErrInvalidUTF8 = errors.New("input is not valid UTF-8")

	// ErrInputTooLarge indicates the input exceeds the configured size limit.
	ErrInputTooLarge = errors.New("input too large")

	// ErrTemplateNotFound is returned by template lookups for unknown names.
	// The compiler absorbs it and renders a placeholder.
	ErrTemplateNotFound = errors.New("template not found")
)
