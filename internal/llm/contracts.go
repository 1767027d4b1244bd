package llm

import "context"

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Inference is the shape returned by a field-inference backend. Neither field is
// trusted until it has been through ValidateInference.
type Inference struct {
	NationalID   *string `json:"national_id"`
	Action       *string `json:"action"`
	Status       string  `json:"status"`
	ErrorMessage string  `json:"error_message,omitempty"`
}

// FieldInferencer extracts court-order fields from free text.
type FieldInferencer interface {
	InferFields(ctx context.Context, text string) (Inference, error)
}

// ErrorInference is the null result reported alongside a backend failure.
func ErrorInference(err error) Inference {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return Inference{Status: StatusError, ErrorMessage: msg}
}
