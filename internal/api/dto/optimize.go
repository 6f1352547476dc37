package dto

type OptimizeRequest struct {
	Points       []int     `json:"points"`
	UserLocation []float64 `json:"user_location"` // [lat, lon]
	AvoidTraffic *bool     `json:"avoid_traffic"` // defaults to true
}

type ScheduleEntryResponse struct {
	Order         int    `json:"order"`
	StopID        int    `json:"stop_id"`
	Address       string `json:"address"`
	ArrivalTime   string `json:"arrival_time"`
	DepartureTime string `json:"departure_time"`
	Date          string `json:"date"`
	ClientType    string `json:"client_type"`
	Duration      int    `json:"duration"`
	WorkTime      string `json:"work_time"`
	LunchTime     string `json:"lunch_time"`
}

type RoutePointResponse struct {
	Order     int     `json:"order"`
	StopID    int     `json:"stop_id"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	Address   string  `json:"address"`
	Type      string  `json:"type"`
	WorkTime  string  `json:"work_time"`
	LunchTime string  `json:"lunch_time"`
}

type OptimizeResponse struct {
	Points           []RoutePointResponse    `json:"points"`
	Schedule         []ScheduleEntryResponse `json:"schedule"`
	TotalPoints      int                     `json:"total_points"`
	TotalDistanceKm  float64                 `json:"total_distance_km"`
	DurationMin      float64                 `json:"duration_min"`
	RouteDurationMin float64                 `json:"route_duration_min"`
	VIPCount         int                     `json:"vip_count"`
	StandardCount    int                     `json:"standard_count"`
	AvoidTraffic     bool                    `json:"avoid_traffic"`
	TrafficInfo      *TrafficInfoResponse    `json:"traffic_info,omitempty"`
}
