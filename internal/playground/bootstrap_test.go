package playground_test

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/addisonj/vector/internal/domain"
	"github.com/addisonj/vector/internal/interp"
	"github.com/addisonj/vector/internal/playground"
	"github.com/addisonj/vector/internal/share"
)

func TestBootstrapNoToken(t *testing.T) {
	eng := interp.NewEngine()

	view := playground.Bootstrap(context.Background(), eng, url.Values{})
	assert.False(t, view.Attempted)
	assert.False(t, view.Restored)
	assert.Empty(t, view.Output.Text)
}

func TestBootstrapRestoresAndRuns(t *testing.T) {
	eng := interp.NewEngine()
	sess := domain.Session{Program: "del(.foo)", Event: `{"foo": 1}`}
	token, err := share.Encode(sess)
	assert.NoError(t, err)

	view := playground.Bootstrap(context.Background(), eng, url.Values{share.QueryParam: {token}})
	assert.True(t, view.Attempted)
	assert.True(t, view.Restored)
	assert.Equal(t, sess, view.Session)
	// The restored session ran without a manual trigger.
	assert.Equal(t, "{}", view.Output.Text)
	assert.True(t, view.Output.JSONValid)
}

func TestBootstrapBadTokenLeavesEditorsUntouched(t *testing.T) {
	eng := interp.NewEngine()

	view := playground.Bootstrap(context.Background(), eng, url.Values{share.QueryParam: {"%%%"}})
	assert.True(t, view.Attempted)
	assert.False(t, view.Restored)
	assert.Empty(t, view.Session.Program)
	assert.Contains(t, view.Output.Text, "invalid state token")
	assert.False(t, view.Output.JSONValid)
}
