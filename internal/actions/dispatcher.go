package actions

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/joseph-ayodele/court-orders/internal/common"
)

// InvalidActionMessage is returned for any action outside the registry.
func InvalidActionMessage(action string) string {
	return fmt.Sprintf("Invalid action '%s'. Cannot process.", action)
}

// Dispatcher validates an action name and runs its handler.
type Dispatcher struct {
	logger   *slog.Logger
	handlers map[string]Handler
}

func NewDispatcher(logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{logger: logger}
}

// WithHandlers returns a dispatcher that uses handlers instead of the registry.
// Names absent from handlers are invalid.
func (d *Dispatcher) WithHandlers(handlers map[string]Handler) *Dispatcher {
	return &Dispatcher{logger: d.logger, handlers: handlers}
}

func (d *Dispatcher) lookup(action string) (Handler, bool) {
	if d.handlers != nil {
		h, ok := d.handlers[action]
		return h, ok
	}
	return Lookup(action)
}

// Dispatch runs action for customerID. It never panics; unknown actions and
// handler failures are reported in the returned string.
func (d *Dispatcher) Dispatch(ctx context.Context, customerID, action string) (result string) {
	h, ok := d.lookup(action)
	if !ok {
		d.logger.Warn("action.dispatch.invalid", "action", action, "customer_id", customerID)
		return InvalidActionMessage(action)
	}

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			err := common.PanicError(r)
			d.logger.Error("action.dispatch.panic", "action", action, "customer_id", customerID, "error", err)
			result = fmt.Sprintf("Error executing action: %v", err)
		}
	}()

	out, err := h(d.logger, customerID)
	if err != nil {
		d.logger.Error("action.dispatch.error",
			"action", action, "customer_id", customerID, "error", err,
			"run_id", common.RunIDFromContext(ctx),
			"request_id", common.RequestIDFromContext(ctx))
		return fmt.Sprintf("Error executing action: %v", err)
	}
	d.logger.Info("action.dispatch.ok",
		"action", action, "customer_id", customerID,
		"elapsed_ms", time.Since(start).Milliseconds(),
		"run_id", common.RunIDFromContext(ctx),
		"request_id", common.RequestIDFromContext(ctx))
	return out
}
