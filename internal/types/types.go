// Package types holds the shared data model for the context assembly pipeline.
package types

// Kind marks the provenance of a SourceUnit.
type Kind string

const (
	// KindSource units are auto-collected from the workspace on each refresh.
	KindSource Kind = "source"

	// KindReference units are explicitly added by the user and persist until
	// removed or cleared.
	KindReference Kind = "reference"
)

// SourceUnit is one file's identity plus its current textual payload.
// Content holds either the full raw text, a structural digest, or a truncated
// excerpt. Each transformation replaces Content wholesale, never partially.
type SourceUnit struct {
	Path    string
	Name    string
	Content string
	Kind    Kind

	// Truncated is set by the packer when the unit was cut down to fit the
	// remaining budget. The assembler labels the section accordingly.
	Truncated bool
}

// ContextStats reports pre-packing totals for the current context state.
// TotalSize is the sum of all unit content lengths regardless of whether the
// units end up packed into a prompt.
type ContextStats struct {
	ReferenceFiles  int `json:"reference_files"`
	SourceFiles     int `json:"source_files"`
	TotalSize       int `json:"total_size"`
	EstimatedTokens int `json:"estimated_tokens"`
}
