/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the mortgage scenario engine server.
  Handles configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Parse command-line flags
  2. Initialize SQLite store
  3. Connect the result cache (Redis or in-process)
  4. Create API handler with dependencies
  5. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port    HTTP server port (default: 8080)
  -db      SQLite database path (default: mortgage.db)
           Use ":memory:" for in-memory database
  -redis   Redis address for the result cache (default: $REDIS_ADDR;
           empty falls back to an in-process cache)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close database and cache connections
  4. Exit

EXAMPLES:
  # Run with file database and local Redis
  ./server -db="./data/mortgage.db" -redis="localhost:6379"

  # Run fully in-process
  ./server -db=":memory:"

SEE ALSO:
  - api/server.go: Router configuration
  - api/handlers.go: HTTP handlers
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/warp/mortgage-engine/api"
	"github.com/warp/mortgage-engine/cache"
	"github.com/warp/mortgage-engine/store/sqlite"
)

func main() {
	// Flags
	port := flag.Int("port", 8080, "HTTP server port")
	dbPath := flag.String("db", "mortgage.db", "SQLite database path")
	redisAddr := flag.String("redis", os.Getenv("REDIS_ADDR"), "Redis address for the result cache (empty = in-process cache)")
	flag.Parse()

	// Initialize store
	store, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()

	// Initialize result cache
	var resultCache cache.ResultCache
	if *redisAddr != "" {
		redisCache := cache.NewRedis(*redisAddr)
		if err := redisCache.Ping(context.Background()); err != nil {
			log.Fatalf("Failed to connect to Redis at %s: %v", *redisAddr, err)
		}
		defer redisCache.Close()
		resultCache = redisCache
		log.Printf("Result cache: Redis at %s", *redisAddr)
	} else {
		resultCache = cache.NewMemory()
		log.Printf("Result cache: in-process")
	}

	// Initialize handler and router
	handler := api.NewHandler(store, resultCache)
	router := api.NewRouter(handler)

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("🚀 Server starting on http://localhost:%d", *port)
		log.Printf("📊 API available at http://localhost:%d/api", *port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
