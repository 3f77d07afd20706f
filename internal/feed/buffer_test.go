package feed

import (
	"fmt"
	"testing"

	"github.com/MusikAnimal/event-streams/internal/models"
)

func recN(n int) models.DisplayRecord {
	return models.DisplayRecord{Title: fmt.Sprintf("Page %d", n)}
}

func TestBufferCapInvariant(t *testing.T) {
	b := NewBuffer(5)
	for i := 0; i < 50; i++ {
		b.Admit(recN(i))
		if b.Len() > 5 {
			t.Fatalf("after admit %d: len = %d, cap = 5", i, b.Len())
		}
	}
}

func TestBufferEvictionOrder(t *testing.T) {
	b := NewBuffer(3)
	for i := 1; i <= 7; i++ {
		b.Admit(recN(i))
	}

	got := b.Records()
	want := []string{"Page 7", "Page 6", "Page 5"}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i, title := range want {
		if got[i].Title != title {
			t.Errorf("records[%d] = %q, want %q (newest first)", i, got[i].Title, title)
		}
	}
}

func TestBufferDuplicatesAllowed(t *testing.T) {
	b := NewBuffer(10)
	b.Admit(recN(1))
	b.Admit(recN(1))
	if b.Len() != 2 {
		t.Errorf("duplicate rows must stay distinct: len = %d, want 2", b.Len())
	}
}

func TestBufferClear(t *testing.T) {
	b := NewBuffer(10)
	for i := 0; i < 4; i++ {
		b.Admit(recN(i))
	}
	b.Clear()
	if b.Len() != 0 {
		t.Errorf("len after clear = %d, want 0", b.Len())
	}
	b.Admit(recN(99))
	if b.Len() != 1 {
		t.Errorf("buffer unusable after clear: len = %d, want 1", b.Len())
	}
}

func TestBufferLimitClamp(t *testing.T) {
	tests := []struct {
		limit int
		want  int
	}{
		{0, models.DefaultLimit},
		{-3, 1},
		{1, 1},
		{20, 20},
		{9999, 5000},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("limit=%d", tt.limit), func(t *testing.T) {
			b := NewBuffer(tt.limit)
			if b.Cap() != tt.want {
				t.Errorf("Cap() = %d, want %d", b.Cap(), tt.want)
			}
		})
	}
}

func TestBufferRecordsIsCopy(t *testing.T) {
	b := NewBuffer(5)
	b.Admit(recN(1))
	snap := b.Records()
	snap[0].Title = "mutated"
	if b.Records()[0].Title != "Page 1" {
		t.Error("Records() must return a copy, not the backing slice")
	}
}
