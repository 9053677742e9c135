package entity

type Theater struct {
	Base
	Name       string `db:"name"`
	TotalSeats int    `db:"total_seats"`
}
