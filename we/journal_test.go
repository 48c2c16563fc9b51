package we

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func record(n int) RecordedAction {
	return RecordedAction{Revision: Revision(fmt.Sprintf("%026d", n)), Action: "we:add"}
}

func TestJournal(t *testing.T) {
	t.Run("keeps the most recent records", func(t *testing.T) {
		journal := NewJournal(3)
		for i := 1; i <= 5; i++ {
			journal.Record(record(i))
		}

		records := journal.Records()
		assert.Equal(t, []RecordedAction{record(3), record(4), record(5)}, records)
	})

	t.Run("is disabled by a non positive limit", func(t *testing.T) {
		journal := NewJournal(0)
		journal.Record(record(1))

		assert.Empty(t, journal.Records())
	})

	t.Run("returns a copy", func(t *testing.T) {
		journal := NewJournal(2)
		journal.Record(record(1))

		records := journal.Records()
		records[0].Action = "we:changed"

		assert.Equal(t, ActionName("we:add"), journal.Records()[0].Action)
	})
}
