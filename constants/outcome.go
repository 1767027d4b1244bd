package constants

// Outcome is the terminal classification of one pipeline run.
type Outcome string

const (
	OutcomeDispatched            Outcome = "DISPATCHED"
	OutcomeRejectedNotFound      Outcome = "REJECTED_NOT_FOUND"
	OutcomeRejectedInvalidAction Outcome = "REJECTED_INVALID_ACTION"
	OutcomeFailed                Outcome = "FAILED" // processing error caught at the top level
)
