package prompt

import (
	"strings"
	"testing"

	"ctxforge/internal/types"
)

func TestAssemble_Layout(t *testing.T) {
	included := []types.SourceUnit{
		{Path: "src/a.ts", Name: "a.ts", Content: "class A {}", Kind: types.KindSource},
		{Path: "notes.md", Name: "notes.md", Content: "remember this", Kind: types.KindReference},
	}

	out := Assemble(included, 0, "how does A work?", 100000)

	if !strings.HasPrefix(out, preamble) {
		t.Error("prompt should open with the preamble")
	}
	for _, want := range []string{
		"## Project Source Files",
		"### 1. a.ts",
		"class A {}",
		"## Reference Files (Manually Added)",
		"### 1. notes.md",
		"remember this",
		"## User Question",
		"how does A work?",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in prompt:\n%s", want, out)
		}
	}
	if strings.Contains(out, "## Context Summary") {
		t.Error("summary section should be absent when nothing was skipped")
	}
}

func TestAssemble_SummarySectionWhenSkipped(t *testing.T) {
	included := []types.SourceUnit{
		{Path: "src/a.ts", Name: "a.ts", Content: "class A {}", Kind: types.KindSource},
	}

	out := Assemble(included, 3, "question", 100000)
	if !strings.Contains(out, "## Context Summary") {
		t.Error("summary section should be present when files were skipped")
	}
	if !strings.Contains(out, "3 files were skipped") {
		t.Errorf("summary should report the skip count:\n%s", out)
	}
}

func TestAssemble_TruncatedLabel(t *testing.T) {
	included := []types.SourceUnit{
		{Path: "src/a.ts", Name: "a.ts", Content: "partial", Kind: types.KindSource, Truncated: true},
	}

	out := Assemble(included, 0, "q", 100000)
	if !strings.Contains(out, "### 1. a.ts (truncated)") {
		t.Errorf("truncated unit should be labeled in its header:\n%s", out)
	}
}

func TestAssemble_EmptyIncluded(t *testing.T) {
	out := Assemble(nil, 0, "just a question", 100000)
	if strings.Contains(out, "## Project Source Files") || strings.Contains(out, "## Reference Files") {
		t.Error("empty sections should be omitted entirely")
	}
	if !strings.Contains(out, "just a question") {
		t.Error("user message must always be present")
	}
}

func TestAssemble_HardCap(t *testing.T) {
	included := []types.SourceUnit{
		{Path: "src/a.ts", Name: "a.ts", Content: strings.Repeat("x", 5000), Kind: types.KindSource},
	}

	max := 1000
	out := Assemble(included, 0, "q", max)
	if len(out) > max {
		t.Fatalf("assembled prompt %d chars exceeds the hard cap %d", len(out), max)
	}
	if !strings.Contains(out, "[Prompt truncated to fit the length limit]") {
		t.Error("hard-capped prompt should carry the marker")
	}
}

func TestAssemble_HardCapAtTinyBudget(t *testing.T) {
	included := []types.SourceUnit{
		{Path: "src/a.ts", Name: "a.ts", Content: strings.Repeat("x", 5000), Kind: types.KindSource},
	}

	// Budget below the marker reserve: the final clamp still holds.
	max := 30
	out := Assemble(included, 0, "q", max)
	if len(out) > max {
		t.Fatalf("assembled prompt %d chars exceeds the hard cap %d", len(out), max)
	}
}

func TestAssemble_LongUserMessagePreservedUpToCap(t *testing.T) {
	msg := "important question " + strings.Repeat("with lots of detail ", 200)
	max := 1200
	out := Assemble(nil, 0, msg, max)
	if len(out) > max {
		t.Fatalf("assembled prompt %d chars exceeds the hard cap %d", len(out), max)
	}
	if !strings.Contains(out, "## User Question") {
		t.Error("question section header should survive the hard cap")
	}
	if !strings.Contains(out, "important question") {
		t.Error("the head of the user message should survive the hard cap")
	}
}

func TestAssemble_UserMessageVerbatim(t *testing.T) {
	msg := "Why does `Pack()` stop early?\nSecond line."
	out := Assemble(nil, 0, msg, 100000)
	if !strings.HasSuffix(out, msg) {
		t.Errorf("user message should close the prompt verbatim:\n%s", out)
	}
}
