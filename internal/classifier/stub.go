package classifier

import "github.com/rs-patil/cropadvisor/internal/model"

// StubClassifier returns a fixed distribution regardless of input. Handler
// and engine tests use it to pin classifier output.
type StubClassifier struct {
	CropLabels    []string
	Probabilities []float64
	Err           error
}

func (s *StubClassifier) Labels() []string { return s.CropLabels }

func (s *StubClassifier) Predict(model.SoilParameters) ([]float64, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]float64, len(s.Probabilities))
	copy(out, s.Probabilities)
	return out, nil
}
