package dto

type IncidentResponse struct {
	Type        string  `json:"type"`
	Description string  `json:"description"`
	Severity    string  `json:"severity"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
}

type TrafficInfoResponse struct {
	Level          string             `json:"level"`
	Message        string             `json:"message"`
	IncidentsCount int                `json:"incidents_count"`
	TrafficImpact  string             `json:"traffic_impact,omitempty"`
	Congestion     string             `json:"congestion,omitempty"`
	Source         string             `json:"source"`
	Details        []string           `json:"details"`
	HasTraffic     bool               `json:"has_traffic"`
	HasIncidents   bool               `json:"has_incidents"`
	Incidents      []IncidentResponse `json:"incidents"`
}
