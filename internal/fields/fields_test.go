package fields

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/joseph-ayodele/court-orders/internal/llm"
)

type stubInferencer struct {
	inf   llm.Inference
	err   error
	panic bool
	calls int
	text  string
}

func (s *stubInferencer) InferFields(_ context.Context, text string) (llm.Inference, error) {
	s.calls++
	s.text = text
	if s.panic {
		panic("backend bug")
	}
	return s.inf, s.err
}

func TestExtractRegexCompleteSkipsFallback(t *testing.T) {
	stub := &stubInferencer{}
	e := NewExtractor(stub, nil)

	got, src := e.Extract(context.Background(), "National ID: 1234567890\nAction: freeze_account")

	assert.Equal(t, 0, stub.calls)
	assert.Equal(t, SourceRegex, src)
	if diff := cmp.Diff(Fields{NationalID: ptr("1234567890"), Action: ptr("freeze_account")}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractFallbackReplacesPartialRegex(t *testing.T) {
	text := "National ID: 1234567890\nThe court orders that all associated bank accounts be frozen."
	stub := &stubInferencer{inf: llm.Inference{
		NationalID: ptr("998877665544"),
		Action:     ptr("freeze_account"),
		Status:     llm.StatusSuccess,
	}}
	e := NewExtractor(stub, nil)

	got, src := e.Extract(context.Background(), text)

	assert.Equal(t, 1, stub.calls)
	assert.Equal(t, text, stub.text, "fallback sees the original text")
	assert.Equal(t, SourceFallback, src)
	assert.Equal(t, "998877665544", *got.NationalID, "no merging with the regex hit")
	assert.Equal(t, "freeze_account", *got.Action)
}

func TestExtractFallbackDoesNotMergeMissingFields(t *testing.T) {
	stub := &stubInferencer{inf: llm.Inference{Action: ptr("issue_notice"), Status: llm.StatusSuccess}}
	got, _ := NewExtractor(stub, nil).Extract(context.Background(), "National ID: 1234567890")

	assert.Nil(t, got.NationalID)
	assert.Equal(t, "issue_notice", *got.Action)
}

func TestExtractFallbackValidation(t *testing.T) {
	stub := &stubInferencer{inf: llm.Inference{
		NationalID: ptr("12"),
		Action:     ptr("delete_everything"),
		Status:     llm.StatusSuccess,
	}}
	got, _ := NewExtractor(stub, nil).Extract(context.Background(), "no labels here")

	assert.Equal(t, 1, stub.calls)
	assert.Nil(t, got.NationalID)
	assert.Nil(t, got.Action)
}

func TestExtractFallbackDegradesToNulls(t *testing.T) {
	tests := []struct {
		name string
		stub *stubInferencer
	}{
		{"error", &stubInferencer{err: errors.New("timeout"), inf: llm.ErrorInference(errors.New("timeout"))}},
		{"status error", &stubInferencer{inf: llm.Inference{NationalID: ptr("1234567890"), Status: llm.StatusError}}},
		{"panic", &stubInferencer{panic: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, src := NewExtractor(tt.stub, nil).Extract(context.Background(), "Action: issue_notice")
			assert.Equal(t, SourceFallback, src)
			assert.Equal(t, Fields{}, got)
		})
	}

	got, _ := NewExtractor(nil, nil).Extract(context.Background(), "Action: issue_notice")
	assert.Equal(t, Fields{}, got)
}

func TestFieldsRendering(t *testing.T) {
	assert.Equal(t, "None", Fields{}.NationalIDOrNone())
	assert.Equal(t, "None", Fields{}.ActionOrNone())
	assert.Equal(t, "42", Fields{NationalID: ptr("42")}.NationalIDOrNone())
	assert.False(t, Fields{NationalID: ptr("42")}.Complete())
}
