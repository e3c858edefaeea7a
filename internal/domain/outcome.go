package domain

// Outcome is the result of applying a program to one event. It mirrors
// the interpreter wire contract: a success carries `output: true` plus
// the transformed result, a failure carries only `msg`. Exactly one
// variant is ever populated.
type Outcome struct {
	Output bool   `json:"output,omitempty"`
	Result any    `json:"result,omitempty"`
	Msg    string `json:"msg,omitempty"`
}

// Success returns a success outcome holding the transformed event.
func Success(result any) Outcome {
	return Outcome{Output: true, Result: result}
}

// Failure returns a failure outcome holding an interpreter diagnostic.
func Failure(msg string) Outcome {
	return Outcome{Msg: msg}
}

// Ok reports whether the outcome is the success variant.
func (o Outcome) Ok() bool {
	return o.Output
}
