package fields

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/joseph-ayodele/court-orders/constants"
)

var (
	reNationalID = regexp.MustCompile(`(?i)\b(?:National ID|ID|NID|identification number)\s*(?:number)?[:\s]*([0-9\s]{6,})\b`)
	reAction     = regexp.MustCompile(`(?i)\bAction[:\s]*(freeze_account|release_funds|suspend_accounts|issue_notice)\b`)
	reSpaces     = regexp.MustCompile(`\s+`)
)

// NormalizeWhitespace collapses whitespace runs to one space and trims the ends.
func NormalizeWhitespace(s string) string {
	return strings.TrimSpace(reSpaces.ReplaceAllString(s, " "))
}

// MatchRegex runs the deterministic patterns over text. The national ID is taken
// from the text as-is (line structure intact); the action from its
// whitespace-normalized form. Both see a compatibility-folded copy so full-width
// digits and letters match.
func MatchRegex(text string) Fields {
	folded := norm.NFKC.String(text)

	var out Fields
	if m := reNationalID.FindStringSubmatch(folded); m != nil {
		if nid := strings.Join(strings.Fields(m[1]), ""); nid != "" {
			out.NationalID = &nid
		}
	}
	if m := reAction.FindStringSubmatch(NormalizeWhitespace(folded)); m != nil {
		if a, ok := constants.CanonicalAction(m[1]); ok {
			action := string(a)
			out.Action = &action
		}
	}
	return out
}
