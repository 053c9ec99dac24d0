package domain

// AnomalyRecord is the backend's wire shape for one flagged session. All
// fields beyond the identifying triple are optional; absent numerics arrive
// as nil rather than zero so defaults stay distinguishable.
type AnomalyRecord struct {
	SessionID         string   `json:"session_id"`
	AnomalyType       string   `json:"anomaly_type"`
	Timestamp         string   `json:"timestamp"`
	UserID            string   `json:"user_id,omitempty"`
	ChargingStationID string   `json:"charging_station_id,omitempty"`
	EnergyConsumed    *float64 `json:"energy_consumed,omitempty"`
	AmountBilled      *float64 `json:"amount_billed,omitempty"`
	DurationMin       *float64 `json:"duration,omitempty"`
}

// AnalysisReport is the response envelope of POST /predict/.
type AnalysisReport struct {
	Filename       string          `json:"filename"`
	TotalSessions  int             `json:"total_sessions"`
	AnomaliesFound int             `json:"anomalies_found"`
	Anomalies      []AnomalyRecord `json:"anomalies"`
}
