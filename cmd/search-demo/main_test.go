package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Sternrassler/paginated-search/pkg/items"
	"github.com/Sternrassler/paginated-search/pkg/metrics"
	"github.com/Sternrassler/paginated-search/pkg/search"
	"github.com/rs/zerolog"
)

func newTestGenerator(t *testing.T) *search.Generator {
	t.Helper()

	logger := zerolog.Nop()
	gen, err := search.New(search.Config{
		PageSize: search.DefaultPageSize,
		Delayer:  search.NoDelay,
		Provider: items.NewStaticProvider([]string{"Albania", "Algeria", "Andorra", "Angola", "Anguilla"}),
		Logger:   &logger,
	})
	if err != nil {
		t.Fatalf("Failed to create generator: %v", err)
	}
	return gen
}

func TestHealthEndpoint(t *testing.T) {
	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	healthHandler(w, req)

	resp := w.Result()
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}
	if string(body) != "OK" {
		t.Errorf("Expected body 'OK', got %s", string(body))
	}
}

func TestMetricsEndpoint(t *testing.T) {
	gen := newTestGenerator(t)
	if _, err := gen.Collect(context.Background(), "a"); err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	req := httptest.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(w, req)

	resp := w.Result()
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	bodyStr := string(body)
	for _, name := range []string{"search_streams_started_total", "search_pages_emitted_total", "search_streams_finished_total"} {
		if !strings.Contains(bodyStr, name) {
			t.Errorf("Expected metrics output to contain %s", name)
		}
	}
}

func TestSearchHandler(t *testing.T) {
	handler := searchHandler(newTestGenerator(t))

	req := httptest.NewRequest("GET", "/search?q=a", nil)
	w := httptest.NewRecorder()
	handler(w, req)

	resp := w.Result()
	if ct := resp.Header.Get("Content-Type"); ct != "application/x-ndjson" {
		t.Errorf("Content-Type = %q", ct)
	}

	var lines []wireResult
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		var line wireResult
		if err := json.Unmarshal(scanner.Bytes(), &line); err != nil {
			t.Fatalf("invalid JSON line %q: %v", scanner.Text(), err)
		}
		lines = append(lines, line)
	}

	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	if lines[0].Type != "stream_starting" || lines[0].SearchTerm != "a" {
		t.Errorf("first line = %+v", lines[0])
	}
	if lines[2].Type != "page_ready" || lines[2].PageNumber != 2 || len(lines[2].Items) != 1 {
		t.Errorf("last line = %+v", lines[2])
	}
}

func TestSearchHandler_BlankTerm(t *testing.T) {
	handler := searchHandler(newTestGenerator(t))

	req := httptest.NewRequest("GET", "/search", nil)
	w := httptest.NewRecorder()
	handler(w, req)

	body := strings.TrimSpace(w.Body.String())
	if strings.Count(body, "\n") != 0 || !strings.Contains(body, "stream_starting") {
		t.Errorf("body = %q, want a single stream_starting line", body)
	}
}

func TestRunConsole(t *testing.T) {
	var buf bytes.Buffer
	if err := runConsole(context.Background(), newTestGenerator(t), "An", &buf); err != nil {
		t.Fatalf("runConsole failed: %v", err)
	}

	want := "Searching for \"An\"\nPage 1: Albania, Andorra, Angola, Anguilla\nDone\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestRunConsole_Cancelled(t *testing.T) {
	logger := zerolog.Nop()
	gen, err := search.New(search.Config{
		PageSize:       search.DefaultPageSize,
		SimulatedDelay: time.Hour,
		Provider:       items.CountriesProvider(),
		Logger:         &logger,
	})
	if err != nil {
		t.Fatalf("Failed to create generator: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	var buf bytes.Buffer
	if err := runConsole(ctx, gen, "an", &buf); err == nil {
		t.Error("expected cancellation error")
	}
	if strings.Contains(buf.String(), "Done") {
		t.Errorf("cancelled search printed Done: %q", buf.String())
	}
}

func TestConfigFromEnv(t *testing.T) {
	tests := []struct {
		name      string
		env       map[string]string
		wantSize  int
		wantDelay time.Duration
		wantErr   bool
	}{
		{name: "defaults", env: map[string]string{}, wantSize: 4, wantDelay: 200 * time.Millisecond},
		{name: "overrides", env: map[string]string{"SEARCH_PAGE_SIZE": "10", "SEARCH_DELAY": "50ms"}, wantSize: 10, wantDelay: 50 * time.Millisecond},
		{name: "bad page size", env: map[string]string{"SEARCH_PAGE_SIZE": "ten"}, wantErr: true},
		{name: "bad delay", env: map[string]string{"SEARCH_DELAY": "soon"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := configFromEnv(func(key string) string { return tt.env[key] })
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if cfg.PageSize != tt.wantSize {
				t.Errorf("PageSize = %d, want %d", cfg.PageSize, tt.wantSize)
			}
			if cfg.SimulatedDelay != tt.wantDelay {
				t.Errorf("SimulatedDelay = %s, want %s", cfg.SimulatedDelay, tt.wantDelay)
			}
		})
	}
}
