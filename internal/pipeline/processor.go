// Package pipeline runs one court order through text extraction, field
// extraction, customer resolution and action dispatch.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/joseph-ayodele/court-orders/constants"
	"github.com/joseph-ayodele/court-orders/internal/common"
	"github.com/joseph-ayodele/court-orders/internal/customer"
	"github.com/joseph-ayodele/court-orders/internal/extract"
	"github.com/joseph-ayodele/court-orders/internal/fields"
)

// FieldExtractor turns document text into national ID and action.
type FieldExtractor interface {
	Extract(ctx context.Context, text string) (fields.Fields, fields.Source)
}

// Dispatcher executes a registered action for a customer.
type Dispatcher interface {
	Dispatch(ctx context.Context, customerID, action string) string
}

// Deps are the capabilities a Processor needs. Resolver may be nil, in which
// case every customer is unknown.
type Deps struct {
	TextExtractor extract.TextExtractor
	Fields        FieldExtractor
	Resolver      customer.Resolver
	Dispatcher    Dispatcher
	Logger        *slog.Logger
}

type Processor struct {
	deps   Deps
	logger *slog.Logger
}

func NewProcessor(deps Deps) *Processor {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{deps: deps, logger: logger}
}

// Process runs the state machine and returns the outcome message. It never
// panics and never returns an empty string.
func (p *Processor) Process(ctx context.Context, doc []byte) string {
	return p.ProcessDetailed(ctx, doc).Result
}

// ProcessDetailed is Process returning the terminal Run.
func (p *Processor) ProcessDetailed(ctx context.Context, doc []byte) (run Run) {
	run = newRun(doc)
	ctx = common.WithRunID(ctx, run.ID)
	start := time.Now()

	p.logger.Info("pipeline.run.start",
		"run_id", run.ID,
		"request_id", common.RequestIDFromContext(ctx),
		"bytes", len(doc),
	)

	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("pipeline.run.panic", "run_id", run.ID, "state", run.State, "panic", r)
			run = failed(run, common.PanicError(r))
		}
		if run.Result == "" {
			run = failed(run, fmt.Errorf("no result at state %s", run.State))
		}
		p.logger.Info("pipeline.run.done",
			"run_id", run.ID,
			"outcome", run.Outcome,
			"final_state", run.State,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		run.Document = nil
		run.State = StateDone
	}()

	run = p.extractText(ctx, run)
	run = p.extractFields(ctx, run)
	run = p.checkCustomer(ctx, run)
	run = p.decide(ctx, run)
	return run
}

func failed(run Run, err error) Run {
	run.State = StateFailed
	run.Outcome = constants.OutcomeFailed
	run.Result = fmt.Sprintf("Error processing document: %v", err)
	return run
}
