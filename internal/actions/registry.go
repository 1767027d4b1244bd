package actions

import (
	"fmt"
	"log/slog"

	"github.com/joseph-ayodele/court-orders/constants"
)

// Handler executes one administrative action for a customer and describes what it did.
type Handler func(logger *slog.Logger, customerID string) (string, error)

// registry is the closed action table. Adding an action is a code change.
var registry = map[constants.ActionName]Handler{
	constants.IssueNotice:     issueNotice,
	constants.FreezeAccount:   freezeAccount,
	constants.ReleaseFunds:    releaseFunds,
	constants.SuspendAccounts: suspendAccounts,
}

// Lookup returns the handler registered for name.
func Lookup(name string) (Handler, bool) {
	h, ok := registry[constants.ActionName(name)]
	return h, ok
}

// Description is the human-readable label used in handler results.
func Description(name constants.ActionName) string {
	switch name {
	case constants.IssueNotice:
		return "Issue notice"
	case constants.FreezeAccount:
		return "Freeze account"
	case constants.ReleaseFunds:
		return "Release funds"
	case constants.SuspendAccounts:
		return "Suspend accounts"
	}
	return string(name)
}

func describe(logger *slog.Logger, name constants.ActionName, customerID string) string {
	msg := fmt.Sprintf("%s for %s", Description(name), customerID)
	logger.Info("action.executed", "action", string(name), "customer_id", customerID)
	return msg
}

// The handlers stand in for calls into core banking; they only report.

func issueNotice(logger *slog.Logger, customerID string) (string, error) {
	return describe(logger, constants.IssueNotice, customerID), nil
}

func freezeAccount(logger *slog.Logger, customerID string) (string, error) {
	return describe(logger, constants.FreezeAccount, customerID), nil
}

func releaseFunds(logger *slog.Logger, customerID string) (string, error) {
	return describe(logger, constants.ReleaseFunds, customerID), nil
}

func suspendAccounts(logger *slog.Logger, customerID string) (string, error) {
	return describe(logger, constants.SuspendAccounts, customerID), nil
}
