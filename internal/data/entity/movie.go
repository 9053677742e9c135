package entity

type Movie struct {
	Base
	Title             string  `db:"title"`
	Description       *string `db:"description"`
	PosterURL         *string `db:"poster_url"`
	Genre             string  `db:"genre"`
	DurationInMinutes int     `db:"duration_in_minutes"`
	Rating            float64 `db:"rating"`
}
