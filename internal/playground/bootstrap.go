package playground

import (
	"context"
	"net/url"

	"github.com/addisonj/vector/internal/domain"
	"github.com/addisonj/vector/internal/interp"
	"github.com/addisonj/vector/internal/share"
)

// View is the result of one page-load restoration attempt.
type View struct {
	// Attempted is true when a state token was present in the address.
	Attempted bool
	// Restored is true when the token decoded and the session below
	// should populate the editor surfaces.
	Restored bool
	Session  domain.Session
	// Output holds the auto-run result on success, or the decode
	// diagnostic on failure. Meaningless unless Attempted.
	Output Rendered
}

// Bootstrap performs the one-shot restoration from the page address.
// With no state parameter it does nothing observable. With one, it
// decodes the token and either populates the session and runs it as if
// the user had pressed run, or reports the decode diagnostic while
// leaving the editor surfaces untouched.
func Bootstrap(ctx context.Context, eng interp.Interpreter, query url.Values) View {
	token := query.Get(share.QueryParam)
	if token == "" {
		return View{}
	}

	sess, err := share.Decode(token)
	if err != nil {
		return View{Attempted: true, Output: Rendered{Text: err.Error()}}
	}

	return View{
		Attempted: true,
		Restored:  true,
		Session:   sess,
		Output:    Run(ctx, eng, sess),
	}
}
