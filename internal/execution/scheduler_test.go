package execution

import (
	"testing"
)

func TestRoundRobinScheduler_Schedule(t *testing.T) {
	scheduler := NewRoundRobinScheduler()

	tests := []struct {
		name        string
		files       []string
		workerCount int
		expected    []int // Expected share sizes
	}{
		{"even split", []string{"a", "b", "c", "d"}, 2, []int{2, 2}},
		{"uneven split", []string{"a", "b", "c"}, 2, []int{2, 1}},
		{"more workers than files", []string{"a"}, 3, []int{1, 0, 0}},
		{"no workers", []string{"a", "b"}, 0, []int{2}},
		{"no files", nil, 2, []int{0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shares := scheduler.Schedule(tt.files, tt.workerCount)
			if len(shares) != len(tt.expected) {
				t.Fatalf("expected %d shares, got %d", len(tt.expected), len(shares))
			}
			for i, share := range shares {
				if share == nil {
					t.Errorf("share %d is nil", i)
				}
				if len(share) != tt.expected[i] {
					t.Errorf("share %d: expected %d files, got %d", i, tt.expected[i], len(share))
				}
			}
		})
	}
}
