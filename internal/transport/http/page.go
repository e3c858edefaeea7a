package http

import (
	"bytes"
	"html/template"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/addisonj/vector/internal/playground"
)

// Starter session shown when no state token restores one.
const (
	defaultProgram = "del(.foo)\n.status = \"ok\"\n"
	defaultEvent   = "{\"foo\": 1, \"message\": \"hello world\"}"
)

var pageTmpl = template.Must(template.New("playground").Parse(pageHTML))

type pageData struct {
	Program   string
	Event     string
	Output    string
	JSONValid bool
}

func (h *Handler) renderPage(c echo.Context, view playground.View) error {
	data := pageData{Program: defaultProgram, Event: defaultEvent}
	if view.Restored {
		data.Program = view.Session.Program
		data.Event = view.Session.Event
	}
	if view.Attempted {
		data.Output = view.Output.Text
		data.JSONValid = view.Output.JSONValid
	}

	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, data); err != nil {
		log.Printf("ERROR: failed to render page: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to render page"})
	}
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

const pageHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Remap Playground</title>
<style>
body { font-family: sans-serif; margin: 1rem; }
textarea, pre { width: 100%; font-family: monospace; box-sizing: border-box; }
textarea { height: 10rem; }
pre { min-height: 4rem; background: #f4f4f4; padding: 0.5rem; white-space: pre-wrap; }
</style>
</head>
<body>
<h1>Remap Playground</h1>
<label>Program</label>
<textarea id="program">{{.Program}}</textarea>
<label>Event (one JSON value, or one per line for a batch)</label>
<textarea id="event">{{.Event}}</textarea>
<button id="run">Run</button>
<button id="share">Share</button>
<label>Output</label>
<pre id="output">{{.Output}}</pre>
<script>
const body = () => JSON.stringify({
  program: document.getElementById("program").value,
  event: document.getElementById("event").value,
});
document.getElementById("run").addEventListener("click", async () => {
  const resp = await fetch("/api/run", { method: "POST", headers: { "Content-Type": "application/json" }, body: body() });
  const data = await resp.json();
  document.getElementById("output").textContent = data.output ?? data.error;
});
document.getElementById("share").addEventListener("click", async () => {
  const resp = await fetch("/api/share", { method: "POST", headers: { "Content-Type": "application/json" }, body: body() });
  const data = await resp.json();
  if (data.url) { history.replaceState(null, "", data.url); }
});
</script>
</body>
</html>
`
