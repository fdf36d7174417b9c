// Package gateway is the HTTP surface of the advisory service. It
// orchestrates the classifier, the decision engine and the external data
// providers; all domain rules live in internal/engine.
package gateway

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/rs-patil/cropadvisor/internal/classifier"
	"github.com/rs-patil/cropadvisor/internal/engine"
	"github.com/rs-patil/cropadvisor/internal/model"
	"github.com/rs-patil/cropadvisor/internal/services/recorder"
	"github.com/rs-patil/cropadvisor/pkg/eventbus"
)

// WeatherSource provides daily forecasts.
type WeatherSource interface {
	Forecast(ctx context.Context, lat, lon float64) []model.WeatherDay
}

// SoilSource provides soil profiles.
type SoilSource interface {
	Profile(ctx context.Context, lat, lon float64) model.SoilData
}

// GeocodeSource resolves coordinates to place names.
type GeocodeSource interface {
	Reverse(ctx context.Context, lat, lon float64) model.LocationInfo
}

// MarketSource provides simulated market context.
type MarketSource interface {
	AnalyzeAll(crops []string) []model.MarketAnalysis
	Trends() model.MarketTrends
}

// Gateway holds every collaborator the handlers need.
type Gateway struct {
	classifier classifier.Classifier
	store      *engine.Store
	weather    WeatherSource
	soil       SoilSource
	geocode    GeocodeSource
	market     MarketSource
	recorder   *recorder.Recorder
	bus        eventbus.Publisher
	log        zerolog.Logger

	topN        int
	defaultFarm float64
}

// Deps bundles the Gateway collaborators.
type Deps struct {
	Classifier  classifier.Classifier
	Store       *engine.Store
	Weather     WeatherSource
	Soil        SoilSource
	Geocode     GeocodeSource
	Market      MarketSource
	Recorder    *recorder.Recorder
	Bus         eventbus.Publisher
	Log         zerolog.Logger
	TopN        int
	DefaultFarm float64
}

func New(d Deps) *Gateway {
	if d.TopN <= 0 {
		d.TopN = engine.DefaultTopN
	}
	if d.DefaultFarm <= 0 {
		d.DefaultFarm = 1.0
	}
	if d.Bus == nil {
		d.Bus = eventbus.Nop{}
	}
	return &Gateway{
		classifier:  d.Classifier,
		store:       d.Store,
		weather:     d.Weather,
		soil:        d.Soil,
		geocode:     d.Geocode,
		market:      d.Market,
		recorder:    d.Recorder,
		bus:         d.Bus,
		log:         d.Log,
		topN:        d.TopN,
		defaultFarm: d.DefaultFarm,
	}
}

// candidates runs the classifier and keeps the top-N crops.
func (g *Gateway) candidates(soil model.SoilParameters) ([]model.SuitabilityScore, error) {
	probs, err := g.classifier.Predict(soil)
	if err != nil {
		return nil, err
	}
	return engine.TopCandidates(probs, g.classifier.Labels(), g.topN)
}
