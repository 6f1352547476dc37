package dto

type StopResponse struct {
	ID            int     `json:"id"`
	Address       string  `json:"address"`
	Lat           float64 `json:"lat"`
	Lon           float64 `json:"lon"`
	ClientType    string  `json:"client_type"`
	WorkTimeStart string  `json:"work_time_start"`
	WorkTimeEnd   string  `json:"work_time_end"`
	LunchStart    string  `json:"lunch_start"`
	LunchEnd      string  `json:"lunch_end"`
	VisitDuration int     `json:"visit_duration"`
}

type ListStopsResponse struct {
	Stops []StopResponse `json:"stops"`
}

type AddStopRequest struct {
	Address       string   `json:"address"`
	ClientType    string   `json:"client_type"`
	Lat           *float64 `json:"lat"`
	Lon           *float64 `json:"lon"`
	WorkTimeStart string   `json:"work_time_start"`
	WorkTimeEnd   string   `json:"work_time_end"`
	LunchStart    string   `json:"lunch_start"`
	LunchEnd      string   `json:"lunch_end"`
}

type AddStopResponse struct {
	StopID     int `json:"stop_id"`
	TotalStops int `json:"total_stops"`
}

type DeleteStopRequest struct {
	StopID *int `json:"stop_id"`
}

type DeleteStopsResponse struct {
	Deleted    int `json:"deleted"`
	TotalStops int `json:"total_stops"`
}

type UploadStopsResponse struct {
	Imported   int `json:"imported"`
	TotalStops int `json:"total_stops"`
}
