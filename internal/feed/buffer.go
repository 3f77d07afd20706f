package feed

import "github.com/MusikAnimal/event-streams/internal/models"

// Buffer is the capped, newest-first list of display records behind the
// feed table. Admission is always at the head; eviction always trims the
// oldest tail rows, so after any Admit the length never exceeds the cap.
// There is no dedup: every event is a distinct row.
//
// The buffer is not internally locked. It is owned by a single controller
// session, which serializes access.
type Buffer struct {
	limit   int
	records []models.DisplayRecord
}

// NewBuffer creates a buffer with the display cap clamped to the valid
// range.
func NewBuffer(limit int) *Buffer {
	limit = models.ClampLimit(limit)
	return &Buffer{
		limit:   limit,
		records: make([]models.DisplayRecord, 0, limit),
	}
}

// Admit inserts a record at the newest position, evicting from the oldest
// end if the buffer is over capacity.
func (b *Buffer) Admit(rec models.DisplayRecord) {
	b.records = append([]models.DisplayRecord{rec}, b.records...)
	if len(b.records) > b.limit {
		b.records = b.records[:b.limit]
	}
}

// Clear empties the buffer.
func (b *Buffer) Clear() {
	b.records = b.records[:0]
}

// Len returns the number of buffered records.
func (b *Buffer) Len() int {
	return len(b.records)
}

// Cap returns the clamped display cap.
func (b *Buffer) Cap() int {
	return b.limit
}

// Records returns a copy of the buffered records, newest first.
func (b *Buffer) Records() []models.DisplayRecord {
	out := make([]models.DisplayRecord, len(b.records))
	copy(out, b.records)
	return out
}
