package interp

import (
	"encoding/json"
	"fmt"
	"strings"
)

type builtin struct {
	arity int
	fn    func(args []any) (any, error)
}

func evalProgram(stmts []stmt, event any, builtins map[string]builtin) (any, error) {
	for _, s := range stmts {
		switch st := s.(type) {
		case assignStmt:
			v, err := evalExpr(st.value, st.line, event, builtins)
			if err != nil {
				return nil, err
			}
			if err := setPath(event, st.target.segs, v, st.line); err != nil {
				return nil, err
			}
		case exprStmt:
			// Evaluated for effects (del) and for surfacing errors;
			// the value is discarded.
			if _, err := evalExpr(st.e, st.line, event, builtins); err != nil {
				return nil, err
			}
		}
	}
	return event, nil
}

func evalExpr(e expr, line int, event any, builtins map[string]builtin) (any, error) {
	switch ex := e.(type) {
	case litExpr:
		return ex.val, nil
	case pathExpr:
		return getPath(event, ex.segs), nil
	case callExpr:
		return evalCall(ex, line, event, builtins)
	default:
		return nil, runtimeErr(line, "internal: unknown expression")
	}
}

func evalCall(call callExpr, line int, event any, builtins map[string]builtin) (any, error) {
	// del and exists operate on the path itself, not its value.
	switch call.name {
	case "del":
		p, err := pathArg(call, line)
		if err != nil {
			return nil, err
		}
		return delPath(event, p.segs), nil
	case "exists":
		p, err := pathArg(call, line)
		if err != nil {
			return nil, err
		}
		return existsPath(event, p.segs), nil
	}

	b, ok := builtins[call.name]
	if !ok {
		return nil, runtimeErr(line, fmt.Sprintf("undefined function %q", call.name))
	}
	if len(call.args) != b.arity {
		return nil, runtimeErr(line, fmt.Sprintf("%s expects %d argument(s), got %d", call.name, b.arity, len(call.args)))
	}
	args := make([]any, len(call.args))
	for i, a := range call.args {
		v, err := evalExpr(a, line, event, builtins)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	v, err := b.fn(args)
	if err != nil {
		return nil, runtimeErr(line, fmt.Sprintf("%s: %v", call.name, err))
	}
	return v, nil
}

func pathArg(call callExpr, line int) (pathExpr, error) {
	if len(call.args) != 1 {
		return pathExpr{}, runtimeErr(line, fmt.Sprintf("%s expects 1 path argument, got %d", call.name, len(call.args)))
	}
	p, ok := call.args[0].(pathExpr)
	if !ok {
		return pathExpr{}, runtimeErr(line, fmt.Sprintf("%s expects a path argument like .field", call.name))
	}
	if len(p.segs) == 0 {
		return pathExpr{}, runtimeErr(line, fmt.Sprintf("%s cannot operate on the root path", call.name))
	}
	return p, nil
}

// getPath resolves a dot path; missing or non-object steps yield null.
func getPath(root any, segs []string) any {
	cur := root
	for _, s := range segs {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur, ok = m[s]
		if !ok {
			return nil
		}
	}
	return cur
}

// setPath assigns into the event, creating intermediate objects and
// overwriting non-object intermediates, matching remap assignment
// semantics.
func setPath(root any, segs []string, v any, line int) error {
	m, ok := root.(map[string]any)
	if !ok {
		return runtimeErr(line, fmt.Sprintf("cannot assign %s: event is not an object", pathString(segs)))
	}
	for _, s := range segs[:len(segs)-1] {
		next, ok := m[s].(map[string]any)
		if !ok {
			next = map[string]any{}
			m[s] = next
		}
		m = next
	}
	m[segs[len(segs)-1]] = v
	return nil
}

// delPath removes the field and returns its prior value, or null if the
// path did not resolve.
func delPath(root any, segs []string) any {
	m, ok := root.(map[string]any)
	if !ok {
		return nil
	}
	for _, s := range segs[:len(segs)-1] {
		m, ok = m[s].(map[string]any)
		if !ok {
			return nil
		}
	}
	last := segs[len(segs)-1]
	v, ok := m[last]
	if !ok {
		return nil
	}
	delete(m, last)
	return v
}

func existsPath(root any, segs []string) bool {
	cur := root
	for _, s := range segs {
		m, ok := cur.(map[string]any)
		if !ok {
			return false
		}
		cur, ok = m[s]
		if !ok {
			return false
		}
	}
	return true
}

func pathString(segs []string) string {
	return "." + strings.Join(segs, ".")
}

func builtinTable() map[string]builtin {
	return map[string]builtin{
		"upcase": {arity: 1, fn: func(args []any) (any, error) {
			s, ok := args[0].(string)
			if !ok {
				return nil, fmt.Errorf("expected a string argument")
			}
			return strings.ToUpper(s), nil
		}},
		"downcase": {arity: 1, fn: func(args []any) (any, error) {
			s, ok := args[0].(string)
			if !ok {
				return nil, fmt.Errorf("expected a string argument")
			}
			return strings.ToLower(s), nil
		}},
		"length": {arity: 1, fn: func(args []any) (any, error) {
			switch v := args[0].(type) {
			case string:
				return float64(len(v)), nil
			case []any:
				return float64(len(v)), nil
			case map[string]any:
				return float64(len(v)), nil
			default:
				return nil, fmt.Errorf("expected a string, array or object argument")
			}
		}},
		"to_string": {arity: 1, fn: func(args []any) (any, error) {
			if s, ok := args[0].(string); ok {
				return s, nil
			}
			data, err := json.Marshal(args[0])
			if err != nil {
				return nil, fmt.Errorf("value is not representable")
			}
			return string(data), nil
		}},
	}
}
