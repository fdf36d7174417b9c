package engine

import (
	"errors"
	"sort"
	"testing"

	"github.com/rs-patil/cropadvisor/internal/model"
)

func TestTopCandidates(t *testing.T) {
	labels := []string{"apple", "banana", "maize", "rice", "wheat"}

	tests := []struct {
		name  string
		probs []float64
		n     int
		want  []string
	}{
		{
			name:  "orders by probability descending",
			probs: []float64{0.05, 0.1, 0.25, 0.5, 0.1},
			n:     3,
			want:  []string{"rice", "maize", "banana"},
		},
		{
			name:  "default n caps at five",
			probs: []float64{0.2, 0.2, 0.2, 0.2, 0.2},
			n:     0,
			want:  []string{"apple", "banana", "maize", "rice", "wheat"},
		},
		{
			name:  "ties broken by label order",
			probs: []float64{0.1, 0.3, 0.3, 0.2, 0.1},
			n:     2,
			want:  []string{"banana", "maize"},
		},
		{
			name:  "n larger than label set",
			probs: []float64{0.5, 0.1, 0.1, 0.2, 0.1},
			n:     10,
			want:  []string{"apple", "rice", "banana", "maize", "wheat"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TopCandidates(tt.probs, labels, tt.n)
			if err != nil {
				t.Fatalf("TopCandidates: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d candidates, want %d", len(got), len(tt.want))
			}
			for i, want := range tt.want {
				if got[i].Crop != want {
					t.Errorf("candidate[%d] = %s, want %s", i, got[i].Crop, want)
				}
			}
			if !sort.SliceIsSorted(got, func(i, j int) bool {
				return got[i].Probability > got[j].Probability
			}) {
				t.Error("output not sorted by probability descending")
			}
		})
	}
}

func TestTopCandidatesInvalidDistribution(t *testing.T) {
	_, err := TopCandidates([]float64{0.5, 0.5}, []string{"rice", "maize", "apple"}, 2)
	if !errors.Is(err, ErrInvalidDistribution) {
		t.Fatalf("got %v, want ErrInvalidDistribution", err)
	}
}

func TestTopCandidatesDeterministic(t *testing.T) {
	labels := []string{"a", "b", "c", "d"}
	probs := []float64{0.25, 0.25, 0.25, 0.25}
	first, _ := TopCandidates(probs, labels, 4)
	for i := 0; i < 10; i++ {
		again, _ := TopCandidates(probs, labels, 4)
		for j := range first {
			if again[j] != first[j] {
				t.Fatalf("run %d: candidate[%d] = %v, want %v", i, j, again[j], first[j])
			}
		}
	}
}

func topScores(pairs ...model.SuitabilityScore) []model.SuitabilityScore { return pairs }
