package main

import (
	"context"
	"net/http"
	"time"

	"github.com/google/wire"
	"github.com/rs/zerolog"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/weegigs/wee-counter-go/connectors/wehttp"
	"github.com/weegigs/wee-counter-go/counter"
	"github.com/weegigs/wee-counter-go/support"
	"github.com/weegigs/wee-counter-go/we"
)

type Server struct {
	Config  support.Config
	Handler http.Handler
}

// NewCounterStore takes the tracer provider so the store is closed before
// telemetry shuts down.
func NewCounterStore(config support.Config, log *zerolog.Logger, _ *sdktrace.TracerProvider) (*counter.Store, func()) {
	dependencies := counter.Dependencies{Clock: we.SystemClock{}, Delay: config.AsyncDelay}
	store := counter.NewStore(
		dependencies,
		we.WithLogger(log),
		we.WithJournalLimit(config.JournalLimit),
	)

	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout(dependencies))
		defer cancel()

		if err := store.Close(ctx); err != nil {
			log.Warn().Err(err).Msg("counter store closed with pending tasks")
		}
	}

	return store, cleanup
}

// shutdownTimeout leaves a pending asynchronous increment enough time to apply.
func shutdownTimeout(dependencies counter.Dependencies) time.Duration {
	return 2*dependencies.AsyncDelay() + time.Second
}

func NewCounterHandler(store *counter.Store, log *zerolog.Logger) http.Handler {
	handler := wehttp.NewHandler[counter.Counter, counter.Action](
		store,
		counter.DecodeAction,
		wehttp.Logger(log),
		wehttp.Operation("counter"),
	)

	return withLogging(handler)
}

func NewServer(config support.Config, handler http.Handler) *Server {
	return &Server{Config: config, Handler: handler}
}

var service = wire.NewSet(
	NewCounterStore,
	NewCounterHandler,
	NewServer,
)

var Live = wire.NewSet(
	support.LoadConfig,
	support.NewLogger,
	support.InitTelemetry,
	service,
)
