package request

// TheaterRowRequest describes one row of the seat layout.
type TheaterRowRequest struct {
	RowLabel  string `json:"row_label" validate:"required,max=10"`
	SeatCount int    `json:"seat_count" validate:"required,gt=0,max=100"`
	SeatType  string `json:"seat_type" validate:"required,oneof=regular premium vip"`
}

type CreateTheaterRequest struct {
	Name string              `json:"name" validate:"required,max=255"`
	Rows []TheaterRowRequest `json:"rows" validate:"required,min=1,dive"`
}
