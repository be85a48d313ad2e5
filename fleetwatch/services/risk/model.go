// Package risk scores a vehicle's near-term failure probability with a
// logistic-regression model trained offline. The artifact file carries the
// exported coefficients; the package only does the forward pass.
package risk

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
)

// DefaultThreshold is the positive-class probability above which a vehicle
// is classified High. Policy constant, not learned.
const DefaultThreshold = 0.6

const (
	RiskHigh = "High"
	RiskLow  = "Low"
)

const (
	AlertHigh = "Immediate service recommended"
	AlertLow  = "Vehicle operating normally"
)

// Artifact is the serialized form of the trained classifier.
type Artifact struct {
	Version      string    `json:"version"`
	Features     []string  `json:"features"`
	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`
}

// Model is read-only after Load and safe for concurrent use.
type Model struct {
	artifact  Artifact
	threshold float64
}

type Input struct {
	Age        float64
	Mileage    float64
	EngineTemp float64
	ErrorCount float64
}

type Result struct {
	Risk      string  `json:"risk"`
	RiskScore float64 `json:"risk_score"`
	Alert     string  `json:"alert"`
}

// Load reads and validates the model artifact. Callers are expected to treat
// any error as fatal at startup; there is no per-request recovery.
func Load(path string, threshold float64) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model artifact: %w", err)
	}
	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("parse model artifact: %w", err)
	}
	return New(a, threshold)
}

func New(a Artifact, threshold float64) (*Model, error) {
	if len(a.Features) == 0 {
		return nil, fmt.Errorf("model artifact has no features")
	}
	if len(a.Coefficients) != len(a.Features) {
		return nil, fmt.Errorf("model artifact has %d coefficients for %d features",
			len(a.Coefficients), len(a.Features))
	}
	if threshold <= 0 || threshold >= 1 {
		threshold = DefaultThreshold
	}
	return &Model{artifact: a, threshold: threshold}, nil
}

func (m *Model) Version() string { return m.artifact.Version }

func (m *Model) Threshold() float64 { return m.threshold }

// Score runs the forward pass. Feature order follows the artifact so a
// retrained model with reordered columns still scores correctly; a feature
// name the service does not know contributes zero.
func (m *Model) Score(in Input) Result {
	z := m.artifact.Intercept
	for i, name := range m.artifact.Features {
		z += m.artifact.Coefficients[i] * featureValue(in, name)
	}
	p := sigmoid(z)

	risk := RiskLow
	alert := AlertLow
	if p > m.threshold {
		risk = RiskHigh
		alert = AlertHigh
	}
	return Result{
		Risk:      risk,
		RiskScore: math.Round(p*10000) / 100,
		Alert:     alert,
	}
}

func featureValue(in Input, name string) float64 {
	switch name {
	case "age":
		return in.Age
	case "mileage":
		return in.Mileage
	case "engine_temp":
		return in.EngineTemp
	case "error_count":
		return in.ErrorCount
	}
	return 0
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}
