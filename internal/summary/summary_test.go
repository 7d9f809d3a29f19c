package summary

import (
	"strings"
	"testing"
)

func TestTruncate_ShortContentUnchanged(t *testing.T) {
	content := "short content"
	if got := Truncate(content, 100); got != content {
		t.Errorf("content below maxLen should pass through, got %q", got)
	}
}

func TestTruncate_ExactLengthUnchanged(t *testing.T) {
	content := strings.Repeat("a", 50)
	if got := Truncate(content, 50); got != content {
		t.Errorf("content at exactly maxLen should pass through, got %q", got)
	}
}

func TestTruncate_BoundsResult(t *testing.T) {
	content := strings.Repeat("x", 5000)
	got := Truncate(content, 300)
	if len(got) > 300 {
		t.Errorf("truncated length %d exceeds maxLen 300", len(got))
	}
	if !strings.Contains(got, "(content truncated)") {
		t.Error("truncated content should carry the marker")
	}
}

func TestTruncate_Idempotent(t *testing.T) {
	content := strings.Repeat("line of text\n", 200)
	once := Truncate(content, 500)
	twice := Truncate(once, 500)
	if once != twice {
		t.Errorf("truncation is not idempotent:\nonce:  %q\ntwice: %q", once, twice)
	}
}

func TestTruncate_PrefersLineBoundaryNearCut(t *testing.T) {
	// Lines are short, so the last newline before the cut lands past 80% of
	// the cut point and the truncation should end on a line boundary.
	content := strings.Repeat("0123456789\n", 100)
	got := Truncate(content, 400)
	body := strings.TrimSuffix(got, "\n... (content truncated)")
	if !strings.HasSuffix(body, "9") {
		t.Errorf("expected cut at a line boundary, got tail %q", body[len(body)-12:])
	}
	if len(got) > 400 {
		t.Errorf("length %d exceeds maxLen", len(got))
	}
}

func TestTruncate_MidLineWhenBoundaryCostly(t *testing.T) {
	// A single enormous line: cutting back to the last newline would discard
	// most of the budget, so the cut stays mid-line.
	content := "short\n" + strings.Repeat("y", 5000)
	got := Truncate(content, 1000)
	if len(got) > 1000 {
		t.Errorf("length %d exceeds maxLen", len(got))
	}
	if len(got) < 900 {
		t.Errorf("cut discarded too much content: %d chars kept", len(got))
	}
}

func TestDetectLanguage(t *testing.T) {
	cases := []struct {
		path string
		want Language
	}{
		{"src/Main.java", LangJava},
		{"src/app.ts", LangTypeScript},
		{"src/app.tsx", LangTypeScript},
		{"lib/util.js", LangJavaScript},
		{"lib/util.mjs", LangJavaScript},
		{"README.md", LangGeneric},
		{"main.go", LangGeneric},
	}
	for _, tc := range cases {
		if got := DetectLanguage(tc.path); got != tc.want {
			t.Errorf("DetectLanguage(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}

func TestSummarize_GenericRespectsMaxLen(t *testing.T) {
	content := strings.Repeat("filler text here\n", 500)
	got := Summarize(content, LangGeneric, 2000)
	if len(got) > 2000 {
		t.Errorf("generic summary length %d exceeds cap", len(got))
	}
}

func TestSummarize_StructuralOutputAlsoCapped(t *testing.T) {
	// A Java file with enough members to overflow a tiny cap: the final
	// unconditional truncation must still bound the digest.
	var b strings.Builder
	b.WriteString("public class Big {\n")
	for i := 0; i < 200; i++ {
		b.WriteString("  public void method")
		b.WriteString(strings.Repeat("x", 20))
		b.WriteString("(int a) {}\n")
	}
	b.WriteString("}\n")

	got := Summarize(b.String(), LangJava, 500)
	if len(got) > 500 {
		t.Errorf("structural summary length %d exceeds cap", len(got))
	}
}

func TestSummarize_NoStructureFallsBackToTruncation(t *testing.T) {
	content := "just some prose with no declarations at all\n" + strings.Repeat("more prose\n", 50)
	got := Summarize(content, LangJava, 3000)
	if !strings.HasPrefix(got, "just some prose") {
		t.Errorf("expected generic fallback to preserve the head, got %q", got[:40])
	}
}
