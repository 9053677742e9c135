package request

type CreateMovieRequest struct {
	Title             string  `json:"title" validate:"required,max=255"`
	Description       *string `json:"description,omitempty"`
	PosterURL         *string `json:"poster_url,omitempty"`
	Genre             string  `json:"genre" validate:"required,max=50"`
	DurationInMinutes int     `json:"duration_in_minutes" validate:"required,gt=0"`
	Rating            float64 `json:"rating" validate:"min=0,max=10"`
}

type UpdateMovieRequest struct {
	Title             string  `json:"title" validate:"required,max=255"`
	Description       *string `json:"description,omitempty"`
	PosterURL         *string `json:"poster_url,omitempty"`
	Genre             string  `json:"genre" validate:"required,max=50"`
	DurationInMinutes int     `json:"duration_in_minutes" validate:"required,gt=0"`
	Rating            float64 `json:"rating" validate:"min=0,max=10"`
}
