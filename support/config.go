package support

import (
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/weegigs/wee-counter-go/counter"
	"github.com/weegigs/wee-counter-go/we"
)

type Exporter string

const (
	NoExporter        Exporter = "none"
	ConsoleExporter   Exporter = "console"
	HoneycombExporter Exporter = "honeycomb"
	JaegerExporter    Exporter = "jaeger"
)

const (
	DefaultServiceName       = "counter"
	DefaultHoneycombEndpoint = "api.honeycomb.io:443"
	DefaultJaegerEndpoint    = "http://localhost:14268/api/traces"
)

type Config struct {
	ListenAddr   string
	AsyncDelay   time.Duration
	JournalLimit int
	LogLevel     string
	Telemetry    TelemetryConfig
}

type TelemetryConfig struct {
	ServiceName       string
	Exporter          Exporter
	HoneycombEndpoint string
	HoneycombTeam     string
	HoneycombDataset  string
	JaegerEndpoint    string
}

func env(name string, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}

	return fallback
}

// LoadConfig reads the server configuration from the environment.
func LoadConfig() (Config, error) {
	delay, err := time.ParseDuration(env("COUNTER_ASYNC_DELAY", counter.DefaultDelay.String()))
	if err != nil {
		return Config{}, errors.Wrap(err, "invalid COUNTER_ASYNC_DELAY")
	}
	if delay <= 0 {
		return Config{}, errors.Errorf("invalid COUNTER_ASYNC_DELAY: delay must be positive, got %s", delay)
	}

	limit, err := strconv.Atoi(env("COUNTER_JOURNAL_LIMIT", strconv.Itoa(we.DefaultJournalLimit)))
	if err != nil {
		return Config{}, errors.Wrap(err, "invalid COUNTER_JOURNAL_LIMIT")
	}

	telemetry := TelemetryConfig{
		ServiceName:       env("TELEMETRY_SERVICE_NAME", DefaultServiceName),
		Exporter:          Exporter(env("TELEMETRY_EXPORTER", string(NoExporter))),
		HoneycombEndpoint: env("HONEYCOMB_ENDPOINT", DefaultHoneycombEndpoint),
		HoneycombTeam:     os.Getenv("HONEYCOMB_TEAM"),
		HoneycombDataset:  os.Getenv("HONEYCOMB_DATASET"),
		JaegerEndpoint:    env("JAEGER_ENDPOINT", DefaultJaegerEndpoint),
	}

	switch telemetry.Exporter {
	case NoExporter, ConsoleExporter, JaegerExporter:
	case HoneycombExporter:
		if telemetry.HoneycombTeam == "" || telemetry.HoneycombDataset == "" {
			return Config{}, errors.New("honeycomb exporter requires HONEYCOMB_TEAM and HONEYCOMB_DATASET")
		}
	default:
		return Config{}, errors.Errorf("unknown TELEMETRY_EXPORTER %q", telemetry.Exporter)
	}

	return Config{
		ListenAddr:   env("COUNTER_LISTEN_ADDR", ":9080"),
		AsyncDelay:   delay,
		JournalLimit: limit,
		LogLevel:     env("COUNTER_LOG_LEVEL", "info"),
		Telemetry:    telemetry,
	}, nil
}
