package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/weegigs/wee-counter-go/counter"
	"github.com/weegigs/wee-counter-go/support"
)

type test = func(t *testing.T)

func incrementsThroughServer(server *Server) test {
	return func(t *testing.T) {
		r := httptest.NewRequest("POST", "/actions", strings.NewReader(`{"action":"counter:increment-by-amount","payload":{"amount":7}}`))
		r.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		server.Handler.ServeHTTP(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"value":7`)
	}
}

func readsState(server *Server) test {
	return func(t *testing.T) {
		w := httptest.NewRecorder()
		server.Handler.ServeHTTP(w, httptest.NewRequest("GET", "/state", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"$type":"counter:counter"`)
	}
}

func TestCounterServer(t *testing.T) {
	config := support.Config{
		ListenAddr:   ":0",
		AsyncDelay:   10 * time.Millisecond,
		JournalLimit: 10,
		LogLevel:     "disabled",
	}
	logger := zerolog.Nop()

	store, cleanup := NewCounterStore(config, &logger, nil)
	defer cleanup()

	server := NewServer(config, NewCounterHandler(store, &logger))

	t.Run("increment counter", incrementsThroughServer(server))
	t.Run("read state", readsState(server))
}

func TestShutdownTimeout(t *testing.T) {
	assert.Equal(t, 3*time.Second, shutdownTimeout(counter.Dependencies{}))
	assert.Equal(t, 3*time.Second, shutdownTimeout(counter.Dependencies{Delay: -time.Second}))
	assert.Equal(t, 21*time.Second, shutdownTimeout(counter.Dependencies{Delay: 10 * time.Second}))
}
