// Package ws provides the live-run WebSocket endpoint: the client sends
// a session per frame and gets the rendered output back, so editors can
// evaluate as the user types.
package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/addisonj/vector/internal/config"
	"github.com/addisonj/vector/internal/domain"
	"github.com/addisonj/vector/internal/interp"
	"github.com/addisonj/vector/internal/playground"
)

// Server handles WebSocket connections.
type Server struct {
	cfg      *config.Config
	eng      interp.Interpreter
	upgrader websocket.Upgrader
}

// NewServer creates a new WebSocket server.
func NewServer(cfg *config.Config, eng interp.Interpreter) *Server {
	return &Server{
		cfg: cfg,
		eng: eng,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				// The playground is open; the page itself is the client.
				return true
			},
		},
	}
}

// HandleLiveRun handles WebSocket upgrade and the run loop. Each text
// frame carries a RunRequest; each reply frame carries the RunResponse.
// Evaluation is synchronous, so frames are answered in order.
func (s *Server) HandleLiveRun(c echo.Context) error {
	conn, err := s.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		log.Printf("Failed to upgrade WebSocket: %v", err)
		return err
	}
	defer conn.Close()

	conn.SetReadLimit(s.cfg.MaxMessageSize)
	ctx := c.Request().Context()

	for {
		conn.SetReadDeadline(time.Now().Add(s.cfg.WSReadTimeout))
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			return nil
		}

		var req domain.RunRequest
		if err := json.Unmarshal(message, &req); err != nil {
			s.write(conn, map[string]string{"error": "invalid request frame"})
			continue
		}

		rendered := playground.Run(ctx, s.eng, domain.Session{Program: req.Program, Event: req.Event})
		s.write(conn, domain.RunResponse{
			RunID:     "run_" + uuid.New().String()[:8],
			Output:    rendered.Text,
			JSONValid: rendered.JSONValid,
		})
	}
}

func (s *Server) write(conn *websocket.Conn, v interface{}) {
	conn.SetWriteDeadline(time.Now().Add(s.cfg.WSWriteTimeout))
	if err := conn.WriteJSON(v); err != nil {
		log.Printf("Failed to write message: %v", err)
	}
}
