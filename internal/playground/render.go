package playground

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/addisonj/vector/internal/domain"
)

// Rendered is the text destined for the output surface. JSONValid is
// false whenever the text might not be a single well-formed JSON value
// (failure messages, or any batch output), so the client can disable
// structural linting on that surface.
type Rendered struct {
	Text      string `json:"text"`
	JSONValid bool   `json:"json_valid"`
}

// Render turns the outcomes into output text. Single-mode successes are
// indented JSON; failures are the diagnostic message verbatim. Batch
// mode emits exactly one line per outcome, in order, with successes as
// compact JSON. There is no aggregation or summarizing.
func Render(mode Mode, outcomes []domain.Outcome) Rendered {
	if mode == ModeBatch {
		lines := make([]string, 0, len(outcomes))
		for _, o := range outcomes {
			if o.Ok() {
				lines = append(lines, marshalResult(o.Result, false))
			} else {
				lines = append(lines, o.Msg)
			}
		}
		return Rendered{Text: strings.Join(lines, "\n")}
	}

	o := outcomes[0]
	if !o.Ok() {
		return Rendered{Text: o.Msg}
	}
	return Rendered{Text: marshalResult(o.Result, true), JSONValid: true}
}

func marshalResult(result any, indent bool) string {
	var data []byte
	var err error
	if indent {
		data, err = json.MarshalIndent(result, "", "  ")
	} else {
		data, err = json.Marshal(result)
	}
	if err != nil {
		// Interpreter results come from decoded JSON, so this is
		// effectively unreachable; keep the surface non-blank anyway.
		return fmt.Sprintf("error rendering result: %v", err)
	}
	return string(data)
}
