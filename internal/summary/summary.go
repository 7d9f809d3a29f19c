// Package summary produces compact structural digests of source files for
// prompt inclusion. Java files go through a heuristic line scanner,
// TypeScript/JavaScript through a tree-sitter AST walk, and everything else
// through generic truncation. Every path is bounded by the caller-supplied
// length cap and never panics out of Summarize.
package summary

import (
	"path/filepath"
	"strings"

	"ctxforge/internal/logging"
)

// Language selects the summarization strategy for a file.
type Language string

const (
	LangGeneric    Language = "generic"
	LangJava       Language = "java"
	LangTypeScript Language = "typescript"
	LangJavaScript Language = "javascript"
)

// fallbackLength bounds the generic truncation used when a structural
// extractor fails.
const fallbackLength = 1000

const truncationMarker = "\n... (content truncated)"

// DetectLanguage maps a file path to its summarization language.
func DetectLanguage(path string) Language {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".java":
		return LangJava
	case ".ts", ".tsx":
		return LangTypeScript
	case ".js", ".jsx", ".mjs", ".cjs":
		return LangJavaScript
	default:
		return LangGeneric
	}
}

// Summarize produces a digest of content bounded by maxLen. Structural
// extraction failures fall back to generic truncation at fallbackLength; the
// result is always passed through one more generic truncation as a final cap.
func Summarize(content string, lang Language, maxLen int) string {
	var out string
	var ok bool

	switch lang {
	case LangJava:
		out, ok = summarizeJava(content)
	case LangTypeScript, LangJavaScript:
		out, ok = summarizeTypeScript(content, lang)
	default:
		out, ok = Truncate(content, maxLen), true
	}

	if !ok {
		logging.SummaryDebug("structural summarization failed (%s), using generic truncation", lang)
		out = Truncate(content, fallbackLength)
	}

	// Unconditional second cap regardless of which branch produced the result
	return Truncate(out, maxLen)
}

// Truncate bounds content to maxLen characters. The cut prefers the last line
// boundary when that boundary lies past 80% of the cut point, so mid-line
// truncation is avoided when the saved fraction is small. The marker is
// accounted for inside maxLen, which makes Truncate idempotent:
// Truncate(Truncate(s, n), n) == Truncate(s, n).
func Truncate(content string, maxLen int) string {
	if maxLen < 0 {
		maxLen = 0
	}
	if len(content) <= maxLen {
		return content
	}
	if maxLen <= len(truncationMarker) {
		return content[:maxLen]
	}

	cut := maxLen - len(truncationMarker)
	head := content[:cut]
	if nl := strings.LastIndexByte(head, '\n'); nl > cut*8/10 {
		head = head[:nl]
	}
	return head + truncationMarker
}
