package classifier

import (
	"math"
	"testing"

	"github.com/rs-patil/cropadvisor/internal/model"
)

func TestNewLoadsEmbeddedArtifact(t *testing.T) {
	c, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := len(c.Labels()); got != 22 {
		t.Fatalf("got %d labels, want 22", got)
	}
	for i := 1; i < len(c.Labels()); i++ {
		if c.Labels()[i-1] >= c.Labels()[i] {
			t.Fatalf("labels not sorted: %q before %q", c.Labels()[i-1], c.Labels()[i])
		}
	}
}

func TestPredictReturnsDistribution(t *testing.T) {
	c, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	probs, err := c.Predict(model.SoilParameters{
		Nitrogen: 80, Phosphorus: 48, Potassium: 40,
		Temperature: 24, Humidity: 82, PH: 6.4, Rainfall: 230,
	})
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if len(probs) != len(c.Labels()) {
		t.Fatalf("got %d probabilities, want %d", len(probs), len(c.Labels()))
	}

	sum := 0.0
	for i, p := range probs {
		if p < 0 || p > 1 {
			t.Errorf("probs[%d] = %g out of [0,1]", i, p)
		}
		sum += p
	}
	if math.Abs(sum-1.0) > 1e-9 {
		t.Errorf("probabilities sum to %g, want 1", sum)
	}
}

func TestPredictClassifiesKnownProfiles(t *testing.T) {
	c, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	tests := []struct {
		want string
		soil model.SoilParameters
	}{
		{"rice", model.SoilParameters{Nitrogen: 80, Phosphorus: 48, Potassium: 40, Temperature: 24, Humidity: 82, PH: 6.4, Rainfall: 236}},
		{"chickpea", model.SoilParameters{Nitrogen: 40, Phosphorus: 68, Potassium: 80, Temperature: 19, Humidity: 17, PH: 7.3, Rainfall: 80}},
		{"grapes", model.SoilParameters{Nitrogen: 23, Phosphorus: 132, Potassium: 200, Temperature: 24, Humidity: 82, PH: 6.0, Rainfall: 70}},
		{"coffee", model.SoilParameters{Nitrogen: 101, Phosphorus: 29, Potassium: 30, Temperature: 25.5, Humidity: 59, PH: 6.8, Rainfall: 158}},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			probs, err := c.Predict(tt.soil)
			if err != nil {
				t.Fatalf("Predict: %v", err)
			}
			best, bestP := "", -1.0
			for i, p := range probs {
				if p > bestP {
					best, bestP = c.Labels()[i], p
				}
			}
			if best != tt.want {
				t.Errorf("top crop = %s (p=%.3f), want %s", best, bestP, tt.want)
			}
		})
	}
}

func TestPredictDeterministic(t *testing.T) {
	c, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	soil := model.SoilParameters{Nitrogen: 50, Phosphorus: 50, Potassium: 50, Temperature: 25, Humidity: 70, PH: 6.5, Rainfall: 100}
	first, err := c.Predict(soil)
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := c.Predict(soil)
		if err != nil {
			t.Fatalf("Predict: %v", err)
		}
		for j := range first {
			if first[j] != again[j] {
				t.Fatalf("run %d: probs[%d] = %g, first run %g", i, j, again[j], first[j])
			}
		}
	}
}

func TestLoadRejectsMalformedArtifacts(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"invalid json", `{`},
		{"no labels", `{"labels":[],"features":["N"],"class_means":[],"feature_variance":[1]}`},
		{"variance count mismatch", `{"labels":["rice"],"features":["N","P"],"class_means":[[1,2]],"feature_variance":[1]}`},
		{"mean row mismatch", `{"labels":["rice"],"features":["N"],"class_means":[[1,2]],"feature_variance":[1]}`},
		{"zero variance", `{"labels":["rice"],"features":["N"],"class_means":[[1]],"feature_variance":[0]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := load([]byte(tt.raw)); err == nil {
				t.Error("load accepted malformed artifact")
			}
		})
	}
}
