package interp_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/addisonj/vector/internal/interp"
)

func execute(t *testing.T, program string, event any) (any, string) {
	t.Helper()
	eng := interp.NewEngine()
	out := eng.Execute(context.Background(), program, event)
	return out.Result, out.Msg
}

func TestReadyCloses(t *testing.T) {
	eng := interp.NewEngine()
	select {
	case <-eng.Ready():
	case <-time.After(5 * time.Second):
		t.Fatal("engine never became ready")
	}
}

func TestDelField(t *testing.T) {
	result, msg := execute(t, "del(.foo)", map[string]any{"foo": float64(1), "bar": float64(2)})
	assert.Empty(t, msg)
	assert.Equal(t, map[string]any{"bar": float64(2)}, result)
}

func TestDelMissingFieldIsNoop(t *testing.T) {
	result, msg := execute(t, "del(.nope)", map[string]any{"a": float64(1)})
	assert.Empty(t, msg)
	assert.Equal(t, map[string]any{"a": float64(1)}, result)
}

func TestAssignLiteral(t *testing.T) {
	result, msg := execute(t, `.status = "ok"`, map[string]any{})
	assert.Empty(t, msg)
	assert.Equal(t, map[string]any{"status": "ok"}, result)
}

func TestAssignCreatesNestedObjects(t *testing.T) {
	result, msg := execute(t, `.a.b.c = true`, map[string]any{})
	assert.Empty(t, msg)
	assert.Equal(t, map[string]any{"a": map[string]any{"b": map[string]any{"c": true}}}, result)
}

func TestAssignFromPath(t *testing.T) {
	result, msg := execute(t, ".dst = .src", map[string]any{"src": float64(42)})
	assert.Empty(t, msg)
	assert.Equal(t, float64(42), result.(map[string]any)["dst"])
}

func TestMissingPathIsNull(t *testing.T) {
	result, msg := execute(t, ".dst = .does.not.exist", map[string]any{})
	assert.Empty(t, msg)
	assert.Equal(t, map[string]any{"dst": nil}, result)
}

func TestBuiltins(t *testing.T) {
	event := map[string]any{"message": "Hello", "tags": []any{"a", "b"}}
	program := ".message = upcase(.message)\n.lower = downcase(\"LOUD\")\n.n = length(.tags)\n.s = to_string(.n)\n.has = exists(.message)"

	result, msg := execute(t, program, event)
	assert.Empty(t, msg)
	m := result.(map[string]any)
	assert.Equal(t, "HELLO", m["message"])
	assert.Equal(t, "loud", m["lower"])
	assert.Equal(t, float64(2), m["n"])
	assert.Equal(t, "2", m["s"])
	assert.Equal(t, true, m["has"])
}

func TestSemicolonsAndComments(t *testing.T) {
	result, msg := execute(t, "del(.a); del(.b) # cleanup", map[string]any{"a": float64(1), "b": float64(2), "c": float64(3)})
	assert.Empty(t, msg)
	assert.Equal(t, map[string]any{"c": float64(3)}, result)
}

func TestSyntaxError(t *testing.T) {
	_, msg := execute(t, ".foo =", map[string]any{})
	assert.Contains(t, msg, "syntax error at line 1")
}

func TestUndefinedFunction(t *testing.T) {
	_, msg := execute(t, "nope(.x)", map[string]any{})
	assert.Contains(t, msg, `undefined function "nope"`)
}

func TestUndefinedVariable(t *testing.T) {
	_, msg := execute(t, "foo", map[string]any{})
	assert.Contains(t, msg, `undefined variable "foo"`)
}

func TestRuntimeTypeError(t *testing.T) {
	_, msg := execute(t, ".x = upcase(.n)", map[string]any{"n": float64(1)})
	assert.Contains(t, msg, "upcase")
	assert.Contains(t, msg, "error at line 1")
}

func TestCompileErrorLeavesEventUntouched(t *testing.T) {
	event := map[string]any{"keep": "me"}
	eng := interp.NewEngine()

	out := eng.Execute(context.Background(), "del(.keep)\n.bad = = 1", event)
	assert.False(t, out.Ok())
	assert.Contains(t, out.Msg, "syntax error at line 2")
	assert.Equal(t, map[string]any{"keep": "me"}, event)
}

func TestCannotAssignRoot(t *testing.T) {
	_, msg := execute(t, `. = "x"`, map[string]any{})
	assert.Contains(t, msg, "cannot assign to the root path")
}

func TestDelRequiresPath(t *testing.T) {
	_, msg := execute(t, `del("foo")`, map[string]any{})
	assert.Contains(t, msg, "del expects a path argument")
}
