// Package http provides the HTTP transport for the playground service.
package http

import (
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/addisonj/vector/internal/config"
	"github.com/addisonj/vector/internal/domain"
	"github.com/addisonj/vector/internal/interp"
	"github.com/addisonj/vector/internal/playground"
	"github.com/addisonj/vector/internal/share"
	"github.com/addisonj/vector/policy"
)

// Handler handles HTTP requests.
type Handler struct {
	cfg    *config.Config
	eng    interp.Interpreter
	policy *policy.Engine
}

// NewHandler creates a new handler.
func NewHandler(cfg *config.Config, eng interp.Interpreter, policyEngine *policy.Engine) *Handler {
	return &Handler{
		cfg:    cfg,
		eng:    eng,
		policy: policyEngine,
	}
}

// RegisterRoutes registers routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Index)
	e.POST("/api/run", h.Run)
	e.POST("/api/share", h.Share)
	e.GET("/health", h.Health)
}

// Index serves the playground page. If the address carries a state
// token, the session is restored and executed before the page renders,
// so a shared link shows its result without a manual run.
func (h *Handler) Index(c echo.Context) error {
	view := playground.Bootstrap(c.Request().Context(), h.eng, c.QueryParams())
	return h.renderPage(c, view)
}

// Run executes the submitted session and returns the rendered output.
func (h *Handler) Run(c echo.Context) error {
	var req domain.RunRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	ctx := c.Request().Context()
	runID := "run_" + uuid.New().String()[:8]

	in := playground.Classify(req.Event)

	decision, reason, err := h.policy.Evaluate(ctx, policyInput(h.cfg, req.Program, req.Event, in))
	if err != nil {
		log.Printf("ERROR: policy evaluation failed: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "policy evaluation failed"})
	}
	if decision == "block" {
		log.Printf("WARN: %s blocked by policy: %s", runID, reason)
		return c.JSON(http.StatusOK, domain.RunResponse{
			RunID:  runID,
			Output: "program rejected: " + reason,
		})
	}

	outcomes := playground.Dispatch(ctx, h.eng, req.Program, in)
	rendered := playground.Render(in.Mode, outcomes)

	return c.JSON(http.StatusOK, domain.RunResponse{
		RunID:     runID,
		Output:    rendered.Text,
		JSONValid: rendered.JSONValid,
	})
}

// Share encodes the submitted session into a state token and answers
// with the shareable URL. The output surface is untouched: sharing
// never runs the program.
func (h *Handler) Share(c echo.Context) error {
	var req domain.ShareRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	token, err := share.Encode(domain.Session{Program: req.Program, Event: req.Event})
	if err != nil {
		log.Printf("ERROR: failed to encode session: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to encode session"})
	}

	shareURL := strings.TrimSuffix(h.cfg.BaseURL, "/") + "/?" + share.QueryParam + "=" + url.QueryEscape(token)
	return c.JSON(http.StatusOK, domain.ShareResponse{State: token, URL: shareURL})
}

// Health returns health status.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": "0.1.0",
	})
}

// policyInput builds the admission policy input for one run.
func policyInput(cfg *config.Config, program, event string, in playground.Classified) map[string]interface{} {
	lineCount := 1
	if in.Mode == playground.ModeBatch {
		lineCount = len(in.Lines)
	}
	return map[string]interface{}{
		"program_bytes":     len(program),
		"event_bytes":       len(event),
		"line_count":        lineCount,
		"max_program_bytes": cfg.MaxProgramBytes,
		"max_event_bytes":   cfg.MaxEventBytes,
	}
}
