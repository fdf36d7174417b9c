package engine

import (
	"sort"

	"github.com/rs-patil/cropadvisor/internal/model"
)

// DefaultTopN is the candidate count used when the caller passes n <= 0.
const DefaultTopN = 5

// TopCandidates selects the n highest-probability crops from a classifier
// distribution. probs must be aligned to labels; a length mismatch returns
// ErrInvalidDistribution. Output is ordered by probability descending with
// ties broken by label order, so results are fully deterministic.
func TopCandidates(probs []float64, labels []string, n int) ([]model.SuitabilityScore, error) {
	if len(probs) != len(labels) {
		return nil, ErrInvalidDistribution
	}
	if n <= 0 {
		n = DefaultTopN
	}

	scores := make([]model.SuitabilityScore, len(labels))
	for i, label := range labels {
		scores[i] = model.SuitabilityScore{Crop: label, Probability: probs[i]}
	}
	// Stable keeps equal probabilities in label order.
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Probability > scores[j].Probability
	})

	if n > len(scores) {
		n = len(scores)
	}
	return scores[:n], nil
}
