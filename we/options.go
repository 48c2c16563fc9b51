package we

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type StoreOption func(*storeOptions)

type storeOptions struct {
	clock        Clock
	log          *zerolog.Logger
	journalLimit int
}

func defaultStoreOptions() storeOptions {
	return storeOptions{
		clock:        SystemClock{},
		log:          &log.Logger,
		journalLimit: DefaultJournalLimit,
	}
}

func WithClock(clock Clock) StoreOption {
	return func(options *storeOptions) {
		if clock != nil {
			options.clock = clock
		}
	}
}

func WithLogger(log *zerolog.Logger) StoreOption {
	return func(options *storeOptions) {
		if log != nil {
			options.log = log
		}
	}
}

// WithJournalLimit bounds the number of recorded actions kept by the store. A
// limit of zero or less disables the journal.
func WithJournalLimit(limit int) StoreOption {
	return func(options *storeOptions) {
		options.journalLimit = limit
	}
}
