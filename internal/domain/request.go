package domain

// RunRequest asks the playground to execute a program against the
// current event text.
type RunRequest struct {
	Program string `json:"program"`
	Event   string `json:"event"`
}

// RunResponse carries the rendered output of one run. JSONValid tells
// the client editor whether the output text is a single well-formed
// JSON value, so it can toggle structural linting on the output
// surface.
type RunResponse struct {
	RunID     string `json:"run_id"`
	Output    string `json:"output"`
	JSONValid bool   `json:"json_valid"`
}

// ShareRequest asks for a shareable token of the given session.
type ShareRequest struct {
	Program string `json:"program"`
	Event   string `json:"event"`
}

// ShareResponse carries the encoded state token and the full URL that
// restores the session on load.
type ShareResponse struct {
	State string `json:"state"`
	URL   string `json:"url"`
}
