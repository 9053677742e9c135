package response

import "time"

type CapacityReportItem struct {
	ShowtimeID    string    `json:"showtime_id"`
	MovieTitle    string    `json:"movie_title"`
	TheaterName   string    `json:"theater_name"`
	StartTime     time.Time `json:"start_time"`
	TotalSeats    int       `json:"total_seats"`
	ReservedSeats int       `json:"reserved_seats"`
	Occupancy     float64   `json:"occupancy"`
}

type RevenueReportItem struct {
	ShowtimeID   string    `json:"showtime_id"`
	MovieTitle   string    `json:"movie_title"`
	StartTime    time.Time `json:"start_time"`
	Reservations int64     `json:"reservations"`
	Revenue      float64   `json:"revenue"`
}

type RevenueReportResponse struct {
	Items        []RevenueReportItem `json:"items"`
	TotalRevenue float64             `json:"total_revenue"`
}
