// Package classifier scores soil parameters against the trained crop
// suitability model. The model ships as an embedded artifact so the server
// has no runtime dependency on a model registry.
package classifier

import (
	"fmt"
	"math"

	json "github.com/goccy/go-json"

	"github.com/rs-patil/cropadvisor/internal/model"
)

// Classifier produces a probability distribution over crop labels for a
// set of soil readings. Predict returns one probability per label, in the
// same order Labels reports.
type Classifier interface {
	Labels() []string
	Predict(soil model.SoilParameters) ([]float64, error)
}

// artifact is the serialized model: per-class feature means plus a shared
// per-feature variance, both in the feature order the model was trained on.
type artifact struct {
	Labels          []string    `json:"labels"`
	Features        []string    `json:"features"`
	ClassMeans      [][]float64 `json:"class_means"`
	FeatureVariance []float64   `json:"feature_variance"`
}

// ModelClassifier is a Gaussian naive Bayes classifier with uniform class
// priors. It is immutable after construction and safe for concurrent use.
type ModelClassifier struct {
	labels    []string
	means     [][]float64
	variances []float64
	// precomputed -0.5*log(2πσ²) per feature
	logNorm []float64
}

// New loads the embedded model artifact.
func New() (*ModelClassifier, error) {
	return load(modelArtifact)
}

func load(raw []byte) (*ModelClassifier, error) {
	var a artifact
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, fmt.Errorf("decode model artifact: %w", err)
	}
	if len(a.Labels) == 0 {
		return nil, fmt.Errorf("model artifact has no labels")
	}
	if len(a.Features) != len(a.FeatureVariance) {
		return nil, fmt.Errorf("model artifact: %d features but %d variances", len(a.Features), len(a.FeatureVariance))
	}
	if len(a.ClassMeans) != len(a.Labels) {
		return nil, fmt.Errorf("model artifact: %d labels but %d mean rows", len(a.Labels), len(a.ClassMeans))
	}
	for i, row := range a.ClassMeans {
		if len(row) != len(a.Features) {
			return nil, fmt.Errorf("model artifact: mean row %d has %d values, want %d", i, len(row), len(a.Features))
		}
	}
	for i, v := range a.FeatureVariance {
		if v <= 0 {
			return nil, fmt.Errorf("model artifact: non-positive variance for feature %s", a.Features[i])
		}
	}

	logNorm := make([]float64, len(a.FeatureVariance))
	for i, v := range a.FeatureVariance {
		logNorm[i] = -0.5 * math.Log(2*math.Pi*v)
	}
	return &ModelClassifier{
		labels:    a.Labels,
		means:     a.ClassMeans,
		variances: a.FeatureVariance,
		logNorm:   logNorm,
	}, nil
}

// Labels returns the crop labels in model order.
func (c *ModelClassifier) Labels() []string {
	return c.labels
}

// Predict computes the posterior distribution over crops via per-class
// Gaussian log-likelihoods and a numerically stable softmax.
func (c *ModelClassifier) Predict(soil model.SoilParameters) ([]float64, error) {
	x := soil.FeatureVector()
	if len(x) != len(c.variances) {
		return nil, fmt.Errorf("feature vector has %d values, model expects %d", len(x), len(c.variances))
	}

	logLik := make([]float64, len(c.labels))
	for ci, means := range c.means {
		ll := 0.0
		for fi, v := range x {
			d := v - means[fi]
			ll += c.logNorm[fi] - d*d/(2*c.variances[fi])
		}
		logLik[ci] = ll
	}
	return softmax(logLik), nil
}

// softmax exponentiates shifted log-likelihoods so the largest term maps
// to exp(0), avoiding underflow across distant classes.
func softmax(logLik []float64) []float64 {
	maxLL := math.Inf(-1)
	for _, v := range logLik {
		if v > maxLL {
			maxLL = v
		}
	}
	out := make([]float64, len(logLik))
	sum := 0.0
	for i, v := range logLik {
		out[i] = math.Exp(v - maxLL)
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}
