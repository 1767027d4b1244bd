package llm

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// SystemPrompt is sent as the system message on every inference call.
const SystemPrompt = "You are a precise document parser. Always return valid JSON."

// inference hints map common court-order phrasing onto action names.
var actionHints = [][2]string{
	{"Freeze all associated bank accounts", "freeze_account"},
	{"Release the funds", "release_funds"},
	{"Suspend all accounts", "suspend_accounts"},
	{"Issue a notice", "issue_notice"},
}

// BuildUserPrompt asks for the national ID and the action, restricted to the
// given action names, and embeds the document text.
func BuildUserPrompt(text string, actions []string, maxChars int) string {
	var b strings.Builder
	b.WriteString("Extract the following fields from this court order document.\n")
	b.WriteString("1. national_id: the person's national identification number (10-12 digits). Use null if absent.\n")
	b.WriteString("2. action: exactly one of [")
	b.WriteString(strings.Join(actions, ", "))
	b.WriteString("]. Infer it from the wording when the name is not written literally. Use null if none applies.\n")
	b.WriteString("Examples:\n")
	for _, h := range actionHints {
		fmt.Fprintf(&b, "- %q -> %s\n", h[0], h[1])
	}
	b.WriteString("Respond with a JSON object with keys \"national_id\" and \"action\" only.\n\n")
	b.WriteString("Document:\n")
	t := strings.TrimSpace(text)
	if maxChars > 0 && len(t) > maxChars {
		cut := maxChars
		for cut > 0 && !utf8.RuneStart(t[cut]) {
			cut--
		}
		b.WriteString(t[:cut])
		b.WriteString("\n…(truncated)")
	} else {
		b.WriteString(t)
	}
	return b.String()
}
