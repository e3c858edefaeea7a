package playground

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/addisonj/vector/internal/domain"
	"github.com/addisonj/vector/internal/interp"
)

// Dispatch runs the program against the classified input and returns
// one outcome per record, in input order. In batch mode a record that
// fails to parse contributes a failure outcome at its position and the
// remaining lines still run; the result always has exactly one entry
// per input line.
func Dispatch(ctx context.Context, eng interp.Interpreter, program string, in Classified) []domain.Outcome {
	if in.Mode == ModeBatch {
		outcomes := make([]domain.Outcome, 0, len(in.Lines))
		for _, line := range in.Lines {
			outcomes = append(outcomes, executeRaw(ctx, eng, program, line))
		}
		return outcomes
	}
	return []domain.Outcome{executeRaw(ctx, eng, program, in.Raw)}
}

func executeRaw(ctx context.Context, eng interp.Interpreter, program, raw string) domain.Outcome {
	var event any
	if err := json.Unmarshal([]byte(raw), &event); err != nil {
		return domain.Failure(fmt.Sprintf("error parsing event: %v", err))
	}
	return eng.Execute(ctx, program, event)
}
