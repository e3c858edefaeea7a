package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/addisonj/vector/internal/transport/ws"
)

// NewServer creates and configures the playground HTTP server.
func NewServer(h *Handler, wsServer *ws.Server) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Register Routes
	h.RegisterRoutes(e)
	e.GET("/ws", wsServer.HandleLiveRun)

	return e
}
