package engine

import "errors"

var (
	// ErrInvalidDistribution means the classifier output length does not
	// match the label set. Fatal to the ranking step; never defaulted.
	ErrInvalidDistribution = errors.New("probability vector does not match label set")

	// ErrUnknownCrop means a requested crop is absent from the reference
	// store. Callers degrade gracefully: rotation returns an empty plan
	// and suitability falls back to parameter-threshold scoring.
	ErrUnknownCrop = errors.New("crop not present in reference store")
)
