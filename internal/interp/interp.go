// Package interp provides the embedded remap interpreter that executes
// transformation programs against single events.
package interp

import (
	"context"
	"fmt"

	"github.com/addisonj/vector/internal/domain"
)

// Interpreter executes one program against one event. It is total: it
// always returns an outcome and never panics past this boundary.
// Execution is synchronous and deterministic per event.
type Interpreter interface {
	Execute(ctx context.Context, program string, event any) domain.Outcome
}

// Engine is the built-in remap interpreter. Its builtin table is
// compiled once, asynchronously, at construction; Execute blocks until
// that initialization completes.
type Engine struct {
	ready    chan struct{}
	builtins map[string]builtin
}

// NewEngine creates the engine and starts its one-time initialization.
func NewEngine() *Engine {
	e := &Engine{ready: make(chan struct{})}
	go func() {
		e.builtins = builtinTable()
		close(e.ready)
	}()
	return e
}

// Ready is closed once the engine is initialized and runs become
// actionable.
func (e *Engine) Ready() <-chan struct{} {
	return e.ready
}

// Execute compiles the program and evaluates it against the event. The
// event is mutated in place; callers pass a freshly decoded value per
// record. Compile and runtime diagnostics surface as failure outcomes.
func (e *Engine) Execute(ctx context.Context, program string, event any) domain.Outcome {
	select {
	case <-e.ready:
	case <-ctx.Done():
		return domain.Failure(fmt.Sprintf("interpreter unavailable: %v", ctx.Err()))
	}

	stmts, err := compile(program)
	if err != nil {
		return domain.Failure(err.Error())
	}

	result, err := evalProgram(stmts, event, e.builtins)
	if err != nil {
		return domain.Failure(err.Error())
	}
	return domain.Success(result)
}
