package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/derob357/sisters-promise/internal/api"
	"github.com/derob357/sisters-promise/internal/catalog"
	"github.com/derob357/sisters-promise/internal/checkout"
	"github.com/derob357/sisters-promise/internal/config"
	"github.com/derob357/sisters-promise/internal/contact"
	"github.com/derob357/sisters-promise/internal/pkg/logger"
	"github.com/derob357/sisters-promise/internal/ratelimit"
	"github.com/derob357/sisters-promise/internal/recaptcha"
	"github.com/derob357/sisters-promise/internal/square"
)

// checkPortAvailable verifies that the target port is not already in use.
// This prevents confusion from a stale process occupying the port.
func checkPortAvailable(host string, port int) error {
	addr := fmt.Sprintf("%s:%d", host, port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("port %d is already in use (addr %s): %v\n"+
			"  Hint: Run 'lsof -i :%d' to find the blocking process", port, addr, err, port)
	}
	ln.Close()
	return nil
}

func main() {
	cfg, err := config.LoadFromEnv("config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	if cfg.Server.Development {
		logger.SetLevel(logger.DEBUG)
	}

	// Pre-flight check: verify the target port is available
	host := cfg.Server.GetHost()
	port := cfg.Server.Port
	if err := checkPortAvailable(host, port); err != nil {
		log.Fatalf("Pre-flight check FAILED: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Upstream clients
	squareClient := square.NewClient(cfg.Square)
	verifier := recaptcha.NewClient(cfg.Recaptcha)

	// Services
	catalogService := catalog.NewService(squareClient)
	checkoutService := checkout.NewService(squareClient, cfg.Square.LocationID)
	contactService := contact.NewService(verifier, cfg.Recaptcha.MinScore)

	// Rate-limit stores: Redis when configured and reachable, otherwise
	// per-process memory counters.
	limiters := api.Limiters{
		General:  ratelimit.NewMemoryLimiter(ratelimit.GeneralPolicy),
		Contact:  ratelimit.NewMemoryLimiter(ratelimit.ContactPolicy),
		Checkout: ratelimit.NewMemoryLimiter(ratelimit.CheckoutPolicy),
	}
	var redisClient *redis.Client
	if cfg.Redis.URL != "" {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			redisClient = redis.NewClient(&redis.Options{Addr: cfg.Redis.URL})
		} else {
			redisClient = redis.NewClient(opts)
		}
		pingCtx, pingCancel := context.WithTimeout(ctx, 3*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.Printf("Warning: Redis connection failed (%s): %v — falling back to in-memory rate limiting", cfg.Redis.URL, err)
			redisClient.Close()
			redisClient = nil
		} else {
			limiters = api.Limiters{
				General:  ratelimit.NewRedisLimiter(redisClient, ratelimit.GeneralPolicy),
				Contact:  ratelimit.NewRedisLimiter(redisClient, ratelimit.ContactPolicy),
				Checkout: ratelimit.NewRedisLimiter(redisClient, ratelimit.CheckoutPolicy),
			}
			log.Printf("Redis connected: %s (shared rate-limit counters enabled)", cfg.Redis.URL)
		}
		pingCancel()
	}

	handlers := api.NewHandlers(cfg, catalogService, checkoutService, contactService)
	server := api.NewServer(cfg, handlers, limiters)

	// Setup graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		addr := fmt.Sprintf("%s:%d", host, port)
		log.Printf("Starting gateway on %s (environment: %s)", addr, cfg.Server.Environment)
		if err := server.ListenAndServe(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-done
	log.Println("Shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	if redisClient != nil {
		redisClient.Close()
	}

	log.Println("Server stopped")
}
