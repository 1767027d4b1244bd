package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/joseph-ayodele/court-orders/constants"
	"github.com/joseph-ayodele/court-orders/internal/actions"
)

// extractText coerces every extraction failure to empty text.
func (p *Processor) extractText(ctx context.Context, run Run) Run {
	start := time.Now()
	res, err := p.deps.TextExtractor.Extract(ctx, run.Document)
	run.Document = nil
	run.Kind = res.Kind
	run.Method = res.Method
	run.Pages = res.Pages
	run.Warnings = res.Warnings
	if err != nil {
		p.logger.Warn("pipeline.text.error", "run_id", run.ID, "error", err)
		run.Text = ""
	} else {
		run.Text = res.Text
	}
	run.State = StateTextExtracted
	p.logger.Info("pipeline.text.ok",
		"run_id", run.ID,
		"kind", run.Kind,
		"chars", len(run.Text),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return run
}

func (p *Processor) extractFields(ctx context.Context, run Run) Run {
	run.Fields, run.FieldSource = p.deps.Fields.Extract(ctx, run.Text)
	run.State = StateFieldsExtracted
	p.logger.Info("pipeline.fields.ok",
		"run_id", run.ID,
		"source", run.FieldSource,
		"national_id", run.Fields.NationalIDOrNone(),
		"action", run.Fields.ActionOrNone(),
	)
	return run
}

// checkCustomer resolves the national ID. Store errors count as not found.
func (p *Processor) checkCustomer(ctx context.Context, run Run) Run {
	run.State = StateCustomerChecked
	run.CustomerChecked = true
	if run.Fields.NationalID == nil {
		return run
	}
	if p.deps.Resolver == nil {
		p.logger.Warn("pipeline.customer.unavailable", "run_id", run.ID)
		return run
	}
	id, found, err := p.deps.Resolver.Resolve(ctx, *run.Fields.NationalID)
	if err != nil {
		p.logger.Error("customer.resolve.error", "run_id", run.ID, "error", err)
		return run
	}
	if found {
		run.CustomerID = &id
	}
	p.logger.Info("pipeline.customer.checked", "run_id", run.ID, "found", found)
	return run
}

func (p *Processor) decide(ctx context.Context, run Run) Run {
	switch {
	case run.CustomerID == nil:
		run.State = StateRejectedNotFound
		run.Outcome = constants.OutcomeRejectedNotFound
		run.Result = fmt.Sprintf("National ID %s not found. Order discarded.", run.Fields.NationalIDOrNone())
	case run.Fields.Action == nil || !constants.IsAction(*run.Fields.Action):
		run.State = StateRejectedInvalidAction
		run.Outcome = constants.OutcomeRejectedInvalidAction
		run.Result = actions.InvalidActionMessage(run.Fields.ActionOrNone())
	default:
		run.State = StateDispatched
		run.Outcome = constants.OutcomeDispatched
		run.Result = p.deps.Dispatcher.Dispatch(ctx, *run.CustomerID, *run.Fields.Action)
	}
	return run
}
