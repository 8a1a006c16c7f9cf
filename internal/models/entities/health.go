package entities

import "time"

// DependencyStatus is the outcome of pinging one backing service.
type DependencyStatus struct {
	Status    string `json:"status"`
	Details   string `json:"details"`
	LatencyMS int64  `json:"latency_ms"`
}

type HealthCheckResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]DependencyStatus `json:"dependencies"`
	UpSince      time.Time                   `json:"up_since"`
	Uptime       string                      `json:"uptime"`
}
