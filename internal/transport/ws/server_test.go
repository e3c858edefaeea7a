package ws_test

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/addisonj/vector/internal/config"
	"github.com/addisonj/vector/internal/domain"
	"github.com/addisonj/vector/internal/interp"
	"github.com/addisonj/vector/internal/transport/ws"
)

func dialTestServer(t *testing.T) *websocket.Conn {
	t.Helper()

	cfg := &config.Config{
		WSReadTimeout:  5 * time.Second,
		WSWriteTimeout: 5 * time.Second,
		MaxMessageSize: 1 << 20,
	}
	server := ws.NewServer(cfg, interp.NewEngine())

	e := echo.New()
	e.GET("/ws", server.HandleLiveRun)
	httpServer := httptest.NewServer(e)
	t.Cleanup(httpServer.Close)

	wsURL := "ws" + strings.TrimPrefix(httpServer.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestLiveRun(t *testing.T) {
	conn := dialTestServer(t)

	err := conn.WriteJSON(domain.RunRequest{
		Program: "del(.foo)",
		Event:   `{"foo": 1, "bar": 2}`,
	})
	assert.NoError(t, err)

	var resp domain.RunResponse
	assert.NoError(t, conn.ReadJSON(&resp))
	assert.True(t, strings.HasPrefix(resp.RunID, "run_"))
	assert.Equal(t, "{\n  \"bar\": 2\n}", resp.Output)
	assert.True(t, resp.JSONValid)
}

func TestLiveRunFramesAnsweredInOrder(t *testing.T) {
	conn := dialTestServer(t)

	assert.NoError(t, conn.WriteJSON(domain.RunRequest{Program: `.n = 1`, Event: `{}`}))
	assert.NoError(t, conn.WriteJSON(domain.RunRequest{Program: `.n = 2`, Event: `{}`}))

	var first, second domain.RunResponse
	assert.NoError(t, conn.ReadJSON(&first))
	assert.NoError(t, conn.ReadJSON(&second))
	assert.Contains(t, first.Output, "\"n\": 1")
	assert.Contains(t, second.Output, "\"n\": 2")
}

func TestLiveRunInvalidFrame(t *testing.T) {
	conn := dialTestServer(t)

	assert.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))

	var resp map[string]string
	assert.NoError(t, conn.ReadJSON(&resp))
	assert.Equal(t, "invalid request frame", resp["error"])
}
