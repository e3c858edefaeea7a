// Package domain defines the core domain models for the playground.
package domain

// Session is the unit of shareable playground state: a transformation
// program plus the raw event text it runs against. The event text is
// either a single JSON value (possibly pretty-printed) or one JSON
// value per line in batch mode.
type Session struct {
	Program string `json:"program"`
	Event   string `json:"event"`
}
