package pipeline

import (
	"github.com/google/uuid"

	"github.com/joseph-ayodele/court-orders/constants"
	"github.com/joseph-ayodele/court-orders/internal/fields"
)

// State is a node of the processing state machine.
type State string

const (
	StateStart                 State = "start"
	StateTextExtracted         State = "text_extracted"
	StateFieldsExtracted       State = "fields_extracted"
	StateCustomerChecked       State = "customer_checked"
	StateDispatched            State = "dispatched"
	StateRejectedNotFound      State = "rejected_not_found"
	StateRejectedInvalidAction State = "rejected_invalid_action"
	StateFailed                State = "failed"
	StateDone                  State = "done"
)

// Run is the state of one document moving through the pipeline. Stages take a
// Run by value and return the next one.
type Run struct {
	ID              uuid.UUID
	Document        []byte
	Kind            constants.DocumentKind
	Method          string
	Pages           int
	Warnings        []string
	Text            string
	Fields          fields.Fields
	FieldSource     fields.Source
	CustomerID      *string
	CustomerChecked bool
	State           State
	Outcome         constants.Outcome
	Result          string
}

func newRun(doc []byte) Run {
	return Run{ID: uuid.New(), Document: doc, State: StateStart}
}

// Summary is the JSON view of a finished Run.
type Summary struct {
	RunID       string                 `json:"run_id"`
	Kind        constants.DocumentKind `json:"document_kind,omitempty"`
	Method      string                 `json:"method,omitempty"`
	Pages       int                    `json:"pages"`
	TextChars   int                    `json:"text_chars"`
	Warnings    []string               `json:"warnings,omitempty"`
	NationalID  *string                `json:"national_id"`
	Action      *string                `json:"action"`
	FieldSource fields.Source          `json:"field_source,omitempty"`
	CustomerID  *string                `json:"customer_id"`
	Outcome     constants.Outcome      `json:"outcome"`
	Result      string                 `json:"result"`
}

func (r Run) Summary() Summary {
	return Summary{
		RunID:       r.ID.String(),
		Kind:        r.Kind,
		Method:      r.Method,
		Pages:       r.Pages,
		TextChars:   len(r.Text),
		Warnings:    r.Warnings,
		NationalID:  r.Fields.NationalID,
		Action:      r.Fields.Action,
		FieldSource: r.FieldSource,
		CustomerID:  r.CustomerID,
		Outcome:     r.Outcome,
		Result:      r.Result,
	}
}
