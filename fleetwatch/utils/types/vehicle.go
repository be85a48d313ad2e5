package types

import "fleetwatch/fleetwatch/sources/psql/models"

// ScoredVehicle is the read-side view: the persisted row plus the derived
// risk fields, recomputed on every read.
type ScoredVehicle struct {
	models.Vehicle
	Risk      string  `json:"risk"`
	RiskScore float64 `json:"risk_score"`
	Alert     string  `json:"alert"`
}

// ReportSummary aggregates a scored listing for the reports page.
type ReportSummary struct {
	TotalVehicles int `json:"total_vehicles"`
	HighRisk      int `json:"high_risk"`
	LowRisk       int `json:"low_risk"`
	Notified      int `json:"notified"`
}
