package llm

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/joseph-ayodele/court-orders/constants"
)

func TestBuildUserPrompt(t *testing.T) {
	p := BuildUserPrompt("  ORDER: freeze all associated bank accounts of 1234567890  ", constants.ActionNames(), 0)

	assert.Contains(t, p, "[freeze_account, issue_notice, release_funds, suspend_accounts]")
	assert.Contains(t, p, `"Freeze all associated bank accounts" -> freeze_account`)
	assert.True(t, strings.HasSuffix(p, "ORDER: freeze all associated bank accounts of 1234567890"))
}

func TestBuildUserPromptTruncates(t *testing.T) {
	p := BuildUserPrompt(strings.Repeat("a", 50), nil, 10)
	assert.Contains(t, p, strings.Repeat("a", 10)+"\n…(truncated)")
	assert.NotContains(t, p, strings.Repeat("a", 11))
}

func TestBuildUserPromptTruncatesOnRuneBoundary(t *testing.T) {
	p := BuildUserPrompt(strings.Repeat("é", 10), nil, 5)
	assert.True(t, utf8.ValidString(p))
	assert.Contains(t, p, "Document:\néé\n…(truncated)")
}
