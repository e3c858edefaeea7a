package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/addisonj/vector/internal/config"
	"github.com/addisonj/vector/internal/interp"
	handler "github.com/addisonj/vector/internal/transport/http"
	"github.com/addisonj/vector/internal/transport/ws"
	"github.com/addisonj/vector/policy"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log.Printf("Starting playground...")
	log.Printf("HTTP Port: %d", cfg.HTTPPort)
	log.Printf("Base URL: %s", cfg.BaseURL)

	// Initialize the interpreter engine and wait for its one-time
	// initialization; run requests are not actionable before this.
	eng := interp.NewEngine()
	<-eng.Ready()
	log.Printf("Interpreter ready")

	// Initialize policy engine
	ctx := context.Background()
	policyEngine, err := policy.NewEngine(ctx, policy.DefaultPolicy)
	if err != nil {
		log.Fatalf("Failed to initialize policy engine: %v", err)
	}

	// Initialize handlers
	h := handler.NewHandler(cfg, eng, policyEngine)
	wsServer := ws.NewServer(cfg, eng)

	// Create Echo server
	server := handler.NewServer(h, wsServer)

	// Start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		if err := server.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	log.Printf("Playground started on port %d", cfg.HTTPPort)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down playground...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Failed to shutdown server gracefully: %v", err)
	}

	log.Println("Playground stopped")
}
