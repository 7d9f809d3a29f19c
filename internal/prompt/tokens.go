package prompt

import (
	"unicode/utf8"

	tiktoken "github.com/pkoukk/tiktoken-go"

	"ctxforge/internal/types"
)

// TokenCounter estimates token counts for stats reporting. It uses the
// cl100k_base encoding when available and falls back to a character
// heuristic (~4 chars per token) when the encoding cannot be loaded, e.g.
// offline.
type TokenCounter struct {
	enc           *tiktoken.Tiktoken
	charsPerToken float64
}

// NewTokenCounter creates a token counter, loading the encoding lazily once.
func NewTokenCounter() *TokenCounter {
	tc := &TokenCounter{charsPerToken: 4.0}
	if enc, err := tiktoken.GetEncoding("cl100k_base"); err == nil {
		tc.enc = enc
	}
	return tc
}

// CountString estimates tokens in a string.
func (tc *TokenCounter) CountString(s string) int {
	if s == "" {
		return 0
	}
	if tc.enc != nil {
		return len(tc.enc.Encode(s, nil, nil))
	}
	return int(float64(utf8.RuneCountInString(s)) / tc.charsPerToken)
}

// CountUnits estimates total tokens across all unit contents.
func (tc *TokenCounter) CountUnits(units []types.SourceUnit) int {
	total := 0
	for _, u := range units {
		total += tc.CountString(u.Content)
	}
	return total
}
