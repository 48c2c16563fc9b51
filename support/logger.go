package support

import (
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

func NewLogger(config Config) (*zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(config.LogLevel)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid log level %q", config.LogLevel)
	}

	logger := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
	return &logger, nil
}
