package prompt

import (
	"fmt"

	"ctxforge/internal/logging"
	"ctxforge/internal/summary"
	"ctxforge/internal/types"
)

const (
	// truncateThreshold is the minimum leftover budget worth spending on a
	// truncated version of an oversized file.
	truncateThreshold = 500

	// truncateReserve is held back from the leftover for the section header
	// and the truncation marker.
	truncateReserve = 200
)

// sectionHeader renders the fixed per-file header. The same rendering is
// used for budget math and for the final layout so the two stay consistent.
func sectionHeader(index int, u types.SourceUnit) string {
	label := ""
	if u.Truncated {
		label = " (truncated)"
	}
	return fmt.Sprintf("### %d. %s%s\n", index, u.Name, label)
}

// sectionLength is the rendered cost of one unit: header, content, separator.
func sectionLength(index int, u types.SourceUnit) int {
	return len(sectionHeader(index, u)) + len(u.Content) + len(sectionSeparator)
}

// Pack greedily fills the prompt in priority order within the character
// budget. When a unit does not fit whole and the leftover budget exceeds the
// threshold, a truncated version of that one unit is included and packing
// stops entirely; otherwise packing stops without it. Every unit that did not
// make it counts as skipped.
func Pack(units []types.SourceUnit, maxPromptChars, preambleChars, userMessageChars int) ([]types.SourceUnit, int) {
	timer := logging.StartTimer(logging.CategoryPrompt, "Pack")
	defer timer.Stop()

	remaining := maxPromptChars - preambleChars - userMessageChars

	var included []types.SourceUnit
	for i, u := range units {
		need := sectionLength(i+1, u)
		if need <= remaining {
			included = append(included, u)
			remaining -= need
			continue
		}

		leftover := remaining
		if leftover > truncateThreshold {
			t := u
			t.Content = summary.Truncate(u.Content, leftover-truncateReserve)
			t.Truncated = true
			included = append(included, t)
			skipped := len(units) - (i + 1)
			logging.PromptDebug("packed %d units (last truncated to %d chars), skipped %d",
				len(included), leftover-truncateReserve, skipped)
			return included, skipped
		}

		skipped := len(units) - i
		logging.PromptDebug("packed %d units, skipped %d (leftover %d below threshold)",
			len(included), skipped, leftover)
		return included, skipped
	}

	logging.PromptDebug("packed all %d units", len(included))
	return included, 0
}
