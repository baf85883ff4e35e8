package datpedia

import "fmt"

// DiagnosticKind identifies a non-fatal finding about a document.
type DiagnosticKind string

// Diagnostic kinds.
const (
	DiagnosticDuplicateStylesheet DiagnosticKind = "duplicate_stylesheet"
	DiagnosticUnrecognizedLink    DiagnosticKind = "unrecognized_link"
	DiagnosticDanglingLink        DiagnosticKind = "dangling_link"
	DiagnosticMissingSource       DiagnosticKind = "missing_source"
)

// Diagnostic is a non-fatal finding reported while processing a document.
type Diagnostic struct {
	Kind   DiagnosticKind `json:"kind"`
	Slug   string         `json:"slug"`
	Detail string         `json:"detail"`
}

// String returns a human-readable line for the diagnostic stream.
func (d Diagnostic) String() string {
	var msg string
	switch d.Kind {
	case DiagnosticDuplicateStylesheet:
		msg = "duplicate stylesheet ignored"
	case DiagnosticUnrecognizedLink:
		msg = "non-standard link skipped"
	case DiagnosticDanglingLink:
		msg = "link target not in corpus"
	case DiagnosticMissingSource:
		msg = "skipping"
	default:
		msg = string(d.Kind)
	}
	if d.Detail == "" {
		return fmt.Sprintf("%s: %s", d.Slug, msg)
	}
	return fmt.Sprintf("%s: %s: %s", d.Slug, msg, d.Detail)
}
