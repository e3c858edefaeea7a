// Package policy gates program admission for the hosted playground.
package policy

import (
	"context"
	"fmt"

	"github.com/open-policy-agent/opa/rego"
)

// Engine is the OPA policy engine.
type Engine struct {
	query rego.PreparedEvalQuery
}

// NewEngine creates a new policy engine with the given policy content.
func NewEngine(ctx context.Context, policyContent string) (*Engine, error) {
	r := rego.New(
		rego.Query("data.playground.decision"),
		rego.Module("playground.rego", policyContent),
	)

	query, err := r.PrepareForEval(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare rego: %w", err)
	}

	return &Engine{query: query}, nil
}

// Evaluate checks the playground policy. Input carries program_bytes,
// event_bytes, line_count and the configured limits. Returns the
// decision ("allow" or "block") and an optional reason.
func (e *Engine) Evaluate(ctx context.Context, input interface{}) (string, string, error) {
	results, err := e.query.Eval(ctx, rego.EvalInput(input))
	if err != nil {
		return "", "", fmt.Errorf("failed to evaluate policy: %w", err)
	}

	if len(results) == 0 || len(results[0].Expressions) == 0 {
		// The policy is expected to define a default decision.
		return "allow", "default", nil
	}

	val := results[0].Expressions[0].Value
	if s, ok := val.(string); ok {
		return s, "", nil
	}
	if m, ok := val.(map[string]interface{}); ok {
		decision, _ := m["decision"].(string)
		reason, _ := m["reason"].(string)
		if decision != "" {
			return decision, reason, nil
		}
	}

	return "allow", "unexpected return type", nil
}

// DefaultPolicy is the default policy content: block runs whose program
// or event text exceeds the configured limits.
const DefaultPolicy = `
package playground

import rego.v1

default decision := {"decision": "allow", "reason": ""}

decision := {"decision": "block", "reason": "program exceeds the size limit"} if {
	input.program_bytes > input.max_program_bytes
}

decision := {"decision": "block", "reason": "event exceeds the size limit"} if {
	input.program_bytes <= input.max_program_bytes
	input.event_bytes > input.max_event_bytes
}
`
