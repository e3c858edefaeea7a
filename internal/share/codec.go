// Package share encodes playground sessions into URL-safe state tokens
// and back. A token is the base64 (URL alphabet, no padding) form of the
// session's JSON representation.
package share

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/addisonj/vector/internal/domain"
)

// QueryParam is the query string key carrying the state token.
const QueryParam = "state"

// DecodeError reports a token that could not be turned back into a
// session. It keeps the offending token so callers can show it in a
// diagnostic instead of silently dropping the share link.
type DecodeError struct {
	Token string
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid state token %q: %v", e.Token, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Encode serializes the session to a state token. Encoding is
// deterministic: the same session always yields the same token.
func Encode(sess domain.Session) (string, error) {
	data, err := json.Marshal(sess)
	if err != nil {
		return "", fmt.Errorf("failed to marshal session: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(data), nil
}

// Decode reverses Encode. Any failure (bad base64, invalid JSON, wrong
// shape) is reported as a *DecodeError; Decode never panics on
// malformed input.
//
// Tokens minted by other tooling sometimes carry the event as an inline
// JSON value rather than a string; those are accepted and the value is
// re-serialized as the event text.
func Decode(token string) (domain.Session, error) {
	data, err := decodeBase64(token)
	if err != nil {
		return domain.Session{}, &DecodeError{Token: token, Err: err}
	}

	var raw struct {
		Program *string         `json:"program"`
		Event   json.RawMessage `json:"event"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return domain.Session{}, &DecodeError{Token: token, Err: err}
	}
	if raw.Program == nil {
		return domain.Session{}, &DecodeError{Token: token, Err: fmt.Errorf("missing program field")}
	}

	sess := domain.Session{Program: *raw.Program}
	if len(raw.Event) > 0 {
		var s string
		if err := json.Unmarshal(raw.Event, &s); err == nil {
			sess.Event = s
		} else {
			sess.Event = string(raw.Event)
		}
	}
	return sess, nil
}

// decodeBase64 accepts both raw and padded URL-safe alphabets; padded
// tokens show up when links pass through tools that re-encode them.
func decodeBase64(token string) ([]byte, error) {
	if data, err := base64.RawURLEncoding.DecodeString(token); err == nil {
		return data, nil
	}
	data, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64: %w", err)
	}
	return data, nil
}
