package playground

import (
	"context"

	"github.com/addisonj/vector/internal/domain"
	"github.com/addisonj/vector/internal/interp"
)

// Run executes the full pipeline for one session: classify the event
// text, dispatch every record, render the outcomes. Every failure path
// ends in rendered text; Run never returns a blank output.
func Run(ctx context.Context, eng interp.Interpreter, sess domain.Session) Rendered {
	in := Classify(sess.Event)
	outcomes := Dispatch(ctx, eng, sess.Program, in)
	return Render(in.Mode, outcomes)
}
