package constants

import (
	"sort"
	"strings"
)

// ActionName identifies one of the administrative actions a court order can request.
type ActionName string

const (
	IssueNotice     ActionName = "issue_notice"
	FreezeAccount   ActionName = "freeze_account"
	ReleaseFunds    ActionName = "release_funds"
	SuspendAccounts ActionName = "suspend_accounts"
)

var allActions = []ActionName{
	IssueNotice,
	FreezeAccount,
	ReleaseFunds,
	SuspendAccounts,
}

// AllActions returns the closed action set in declaration order.
func AllActions() []ActionName {
	out := make([]ActionName, len(allActions))
	copy(out, allActions)
	return out
}

// ActionNames returns the action names sorted alphabetically.
func ActionNames() []string {
	result := make([]string, len(allActions))
	for i, a := range allActions {
		result[i] = string(a)
	}
	sort.Strings(result)
	return result
}

// IsAction reports whether s is exactly one of the registered action names.
func IsAction(s string) bool {
	for _, a := range allActions {
		if string(a) == s {
			return true
		}
	}
	return false
}

// CanonicalAction lower-cases and trims input and returns the matching action.
func CanonicalAction(input string) (ActionName, bool) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		return "", false
	}
	for _, a := range allActions {
		if normalized == string(a) {
			return a, true
		}
	}
	return "", false
}
