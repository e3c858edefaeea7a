package policy_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/addisonj/vector/policy"
)

func input(programBytes, eventBytes int) map[string]interface{} {
	return map[string]interface{}{
		"program_bytes":     programBytes,
		"event_bytes":       eventBytes,
		"line_count":        1,
		"max_program_bytes": 100,
		"max_event_bytes":   200,
	}
}

func TestEvaluateDefaultPolicy(t *testing.T) {
	ctx := context.Background()
	engine, err := policy.NewEngine(ctx, policy.DefaultPolicy)
	assert.NoError(t, err)

	t.Run("Allow Within Limits", func(t *testing.T) {
		decision, _, err := engine.Evaluate(ctx, input(50, 50))
		assert.NoError(t, err)
		assert.Equal(t, "allow", decision)
	})

	t.Run("Block Oversized Program", func(t *testing.T) {
		decision, reason, err := engine.Evaluate(ctx, input(101, 50))
		assert.NoError(t, err)
		assert.Equal(t, "block", decision)
		assert.Equal(t, "program exceeds the size limit", reason)
	})

	t.Run("Block Oversized Event", func(t *testing.T) {
		decision, reason, err := engine.Evaluate(ctx, input(50, 201))
		assert.NoError(t, err)
		assert.Equal(t, "block", decision)
		assert.Equal(t, "event exceeds the size limit", reason)
	})
}
