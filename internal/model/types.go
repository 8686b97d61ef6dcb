package model

// ApplyRecord captures one operator application within a mutation session.
type ApplyRecord struct {
	Step       int    `json:"step"`
	Operator   string `json:"operator"`
	OperatorID string `json:"operator_id"`
	// Shift is the sampled shift for shifting operators; zero otherwise.
	Shift int `json:"shift,omitempty"`
}

// WeightSnapshot is the adaptive weight vector of a tuned operator after one
// application.
type WeightSnapshot struct {
	OperatorID string    `json:"operator_id"`
	Step       int       `json:"step"`
	Weights    []float64 `json:"weights"`
}
