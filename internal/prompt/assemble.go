package prompt

import (
	"fmt"
	"strings"

	"ctxforge/internal/logging"
	"ctxforge/internal/types"
)

const (
	preamble = "You are an AI programming assistant. Use the project context below to answer the user's question.\n\n"

	sourceSectionHeader    = "## Project Source Files\n\n"
	referenceSectionHeader = "## Reference Files (Manually Added)\n\n"
	summarySectionHeader   = "## Context Summary\n\n"
	questionSectionHeader  = "## User Question\n\n"

	sectionSeparator = "\n\n"

	// hardCapReserve is removed from maxPromptChars when the assembled
	// prompt overflows, leaving room for the truncation marker.
	hardCapReserve = 100

	hardCapMarker = "\n\n[Prompt truncated to fit the length limit]"
)

// PreambleLength is the fixed preamble cost the packer subtracts up front.
func PreambleLength() int {
	return len(preamble)
}

// UserSectionLength is the cost of the user question section for a message.
func UserSectionLength(userMessage string) int {
	return len(questionSectionHeader) + len(userMessage)
}

// Assemble lays the packed units out into the final prompt text. The result
// never exceeds maxPromptChars: if the concatenation overflows despite the
// packer's budgeting, the whole string is hard-truncated as a last resort.
func Assemble(included []types.SourceUnit, skippedCount int, userMessage string, maxPromptChars int) string {
	timer := logging.StartTimer(logging.CategoryPrompt, "Assemble")
	defer timer.Stop()

	var sources, refs []types.SourceUnit
	for _, u := range included {
		if u.Kind == types.KindReference {
			refs = append(refs, u)
		} else {
			sources = append(sources, u)
		}
	}

	var b strings.Builder
	b.WriteString(preamble)

	if len(sources) > 0 {
		b.WriteString(sourceSectionHeader)
		writeUnitSections(&b, sources)
	}
	if len(refs) > 0 {
		b.WriteString(referenceSectionHeader)
		writeUnitSections(&b, refs)
	}
	if skippedCount > 0 {
		b.WriteString(summarySectionHeader)
		fmt.Fprintf(&b, "Included %d source files and %d reference files. %d files were skipped to fit the length budget.%s",
			len(sources), len(refs), skippedCount, sectionSeparator)
	}

	b.WriteString(questionSectionHeader)
	b.WriteString(userMessage)

	out := b.String()
	if len(out) > maxPromptChars {
		logging.Get(logging.CategoryPrompt).Warn(
			"assembled prompt overflowed budget (%d > %d), hard-truncating", len(out), maxPromptChars)
		cut := maxPromptChars - hardCapReserve
		if cut < 0 {
			cut = 0
		}
		out = out[:cut] + hardCapMarker
		if len(out) > maxPromptChars {
			out = out[:maxPromptChars]
		}
	}
	return out
}

func writeUnitSections(b *strings.Builder, units []types.SourceUnit) {
	for i, u := range units {
		b.WriteString(sectionHeader(i+1, u))
		b.WriteString(u.Content)
		b.WriteString(sectionSeparator)
	}
}
