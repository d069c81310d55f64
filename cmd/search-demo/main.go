package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/Sternrassler/paginated-search/pkg/items"
	"github.com/Sternrassler/paginated-search/pkg/logging"
	"github.com/Sternrassler/paginated-search/pkg/metrics"
	"github.com/Sternrassler/paginated-search/pkg/search"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func main() {
	logging.Setup(logging.ConfigFromEnv(os.Getenv))
	logger := logging.NewLogger("demo")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := configFromEnv(os.Getenv)
	if err != nil {
		logger.Fatal().Err(err).Msg("Invalid configuration")
	}

	if redisURL := getEnv("REDIS_URL", ""); redisURL != "" {
		provider, closeRedis, err := redisProvider(ctx, redisURL, getEnv("REDIS_ITEMS_KEY", items.DefaultRedisKey))
		if err != nil {
			logger.Fatal().Err(err).Str("redis_url", redisURL).Msg("Failed to set up Redis provider")
		}
		defer closeRedis()
		cfg.Provider = provider
		logger.Info().Str("redis_url", redisURL).Str("key", provider.Key()).Msg("Using Redis item provider")
	}

	gen, err := search.New(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create search generator")
	}

	if addr := getEnv("HTTP_ADDR", ""); addr != "" {
		serve(ctx, addr, gen, logger)
		return
	}

	term := strings.Join(os.Args[1:], " ")
	if err := runConsole(ctx, gen, term, os.Stdout); err != nil {
		logger.Error().Err(err).Str("search_term", term).Msg("Search failed")
		os.Exit(1)
	}
}

// configFromEnv reads SEARCH_PAGE_SIZE and SEARCH_DELAY over the defaults.
func configFromEnv(getenv func(string) string) (search.Config, error) {
	cfg := search.DefaultConfig()

	if v := getenv("SEARCH_PAGE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("parse SEARCH_PAGE_SIZE: %w", err)
		}
		cfg.PageSize = n
	}

	if v := getenv("SEARCH_DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("parse SEARCH_DELAY: %w", err)
		}
		cfg.SimulatedDelay = d
	}

	return cfg, nil
}

// redisProvider connects to Redis and seeds the item list when it is empty.
func redisProvider(ctx context.Context, addr, key string) (*items.RedisProvider, func(), error) {
	redisClient := redis.NewClient(&redis.Options{Addr: addr})
	closeFn := func() { redisClient.Close() }

	if err := redisClient.Ping(ctx).Err(); err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("connect to redis: %w", err)
	}

	provider, err := items.NewRedisProvider(redisClient, key)
	if err != nil {
		closeFn()
		return nil, nil, err
	}

	n, err := provider.Len(ctx)
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	if n == 0 {
		if err := provider.Load(ctx, items.Countries); err != nil {
			closeFn()
			return nil, nil, err
		}
	}

	return provider, closeFn, nil
}

// runConsole prints each result of a search as it arrives.
func runConsole(ctx context.Context, gen *search.Generator, term string, w io.Writer) error {
	sub := gen.Subscribe(ctx, term)

	for result := range sub.C() {
		switch r := result.(type) {
		case search.StreamStarting:
			fmt.Fprintf(w, "Searching for %q\n", r.SearchTerm)
		case search.PageReady:
			fmt.Fprintf(w, "Page %d: %s\n", r.PageNumber, strings.Join(r.Items, ", "))
		}
	}

	if err := sub.Err(); err != nil {
		return err
	}
	fmt.Fprintln(w, "Done")
	return nil
}

func serve(ctx context.Context, addr string, gen *search.Generator, logger zerolog.Logger) {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthHandler)
	mux.HandleFunc("/search", searchHandler(gen))
	mux.Handle("/metrics", metrics.Handler())

	server := &http.Server{Addr: addr, Handler: mux}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	logger.Info().Str("addr", addr).Msg("Starting search demo server")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("Server failed")
	}
	logger.Info().Msg("Server stopped")
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "OK")
}

// wireResult is the JSON line written per result by /search.
type wireResult struct {
	Type       string   `json:"type"`
	SearchTerm string   `json:"search_term"`
	PageNumber int      `json:"page,omitempty"`
	Items      []string `json:"items,omitempty"`
}

func toWire(result search.Result) wireResult {
	switch r := result.(type) {
	case search.PageReady:
		return wireResult{Type: "page_ready", SearchTerm: r.SearchTerm, PageNumber: r.PageNumber, Items: r.Items}
	default:
		return wireResult{Type: "stream_starting", SearchTerm: result.Term()}
	}
}

// searchHandler streams the results of ?q= as newline-delimited JSON.
// The search stops when the client disconnects.
func searchHandler(gen *search.Generator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stream := gen.Search(r.Context(), r.URL.Query().Get("q"))
		defer stream.Close()

		w.Header().Set("Content-Type", "application/x-ndjson")
		flusher, _ := w.(http.Flusher)
		enc := json.NewEncoder(w)

		for stream.Next() {
			if err := enc.Encode(toWire(stream.Result())); err != nil {
				return
			}
			if flusher != nil {
				flusher.Flush()
			}
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
