package model

// SoilParameters carries the seven features the classifier was trained on.
// Values are taken as-is: out-of-range readings are diagnosed by the
// treatment engine, never rejected here.
type SoilParameters struct {
	Nitrogen    float64 `json:"N"`  // kg/ha
	Phosphorus  float64 `json:"P"`  // kg/ha
	Potassium   float64 `json:"K"`  // kg/ha
	Temperature float64 `json:"temperature"` // °C
	Humidity    float64 `json:"humidity"`    // %
	PH          float64 `json:"ph"`
	Rainfall    float64 `json:"rainfall"` // mm
}

// Parameter is a single named soil reading. Slices of Parameter preserve
// order, which the treatment engine relies on for deterministic output.
type Parameter struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Parameter names in the canonical feature order.
const (
	ParamNitrogen    = "N"
	ParamPhosphorus  = "P"
	ParamPotassium   = "K"
	ParamTemperature = "temperature"
	ParamHumidity    = "humidity"
	ParamPH          = "ph"
	ParamRainfall    = "rainfall"
)

// ParameterOrder is the canonical iteration order for soil parameters,
// matching the classifier feature order.
var ParameterOrder = []string{
	ParamNitrogen, ParamPhosphorus, ParamPotassium,
	ParamTemperature, ParamHumidity, ParamPH, ParamRainfall,
}

// Parameters expands the struct into the canonical ordered list.
func (s SoilParameters) Parameters() []Parameter {
	return []Parameter{
		{ParamNitrogen, s.Nitrogen},
		{ParamPhosphorus, s.Phosphorus},
		{ParamPotassium, s.Potassium},
		{ParamTemperature, s.Temperature},
		{ParamHumidity, s.Humidity},
		{ParamPH, s.PH},
		{ParamRainfall, s.Rainfall},
	}
}

// FeatureVector returns the readings in classifier feature order.
func (s SoilParameters) FeatureVector() []float64 {
	return []float64{s.Nitrogen, s.Phosphorus, s.Potassium, s.Temperature, s.Humidity, s.PH, s.Rainfall}
}

// OrderedParameters filters an arbitrary name→value mapping down to the
// known parameters, in canonical order. Unknown names are dropped; absent
// names are skipped, never zero-filled.
func OrderedParameters(values map[string]float64) []Parameter {
	out := make([]Parameter, 0, len(values))
	for _, name := range ParameterOrder {
		if v, ok := values[name]; ok {
			out = append(out, Parameter{Name: name, Value: v})
		}
	}
	return out
}
