package we

import "sync"

const DefaultJournalLimit = 1000

type RecordedAction struct {
	Revision  Revision               `json:"revision"`
	Action    ActionName             `json:"action"`
	Timestamp Timestamp              `json:"timestamp"`
	Metadata  RecordedActionMetadata `json:"metadata"`
	Data      Data                   `json:"data"`
}

// Journal keeps the most recent applied actions, oldest first.
type Journal struct {
	lk      sync.RWMutex
	limit   int
	records []RecordedAction
}

func NewJournal(limit int) *Journal {
	return &Journal{limit: limit}
}

func (j *Journal) Record(record RecordedAction) {
	if j.limit <= 0 {
		return
	}

	j.lk.Lock()
	defer j.lk.Unlock()

	if len(j.records) >= j.limit {
		n := copy(j.records, j.records[len(j.records)-j.limit+1:])
		j.records = j.records[:n]
	}

	j.records = append(j.records, record)
}

func (j *Journal) Records() []RecordedAction {
	j.lk.RLock()
	defer j.lk.RUnlock()

	records := make([]RecordedAction, len(j.records))
	copy(records, j.records)

	return records
}
