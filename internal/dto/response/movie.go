package response

import (
	"time"

	"movie-reservation/internal/data/entity"
)

type MovieResponse struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Description       *string   `json:"description,omitempty"`
	PosterURL         *string   `json:"poster_url,omitempty"`
	Genre             string    `json:"genre"`
	DurationInMinutes int       `json:"duration_in_minutes"`
	Rating            float64   `json:"rating"`
	CreatedAt         time.Time `json:"created_at"`
}

// Helper converters
func MovieToResponse(movie *entity.Movie) MovieResponse {
	return MovieResponse{
		ID:                movie.ID.String(),
		Title:             movie.Title,
		Description:       movie.Description,
		PosterURL:         movie.PosterURL,
		Genre:             movie.Genre,
		DurationInMinutes: movie.DurationInMinutes,
		Rating:            movie.Rating,
		CreatedAt:         movie.CreatedAt,
	}
}

func MoviesToResponse(movies []*entity.Movie) []MovieResponse {
	out := make([]MovieResponse, 0, len(movies))
	for _, movie := range movies {
		out = append(out, MovieToResponse(movie))
	}
	return out
}
