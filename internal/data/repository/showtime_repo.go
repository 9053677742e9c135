package repository

import (
	"context"
	"fmt"
	"time"

	"movie-reservation/internal/data/entity"
	"movie-reservation/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ShowtimeRepository interface {
	Create(ctx context.Context, showtime *entity.Showtime) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Showtime, error)
	FindAll(ctx context.Context, movieID *uuid.UUID, date *time.Time, limit, offset int) ([]*entity.Showtime, error)
	Count(ctx context.Context, movieID *uuid.UUID, date *time.Time) (int64, error)
	CountOverlapping(ctx context.Context, theaterID uuid.UUID, startTime, endTime time.Time, excludeID uuid.UUID) (int64, error)
	Update(ctx context.Context, showtime *entity.Showtime) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type showtimeRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewShowtimeRepository(db database.PgxIface, log *zap.Logger) ShowtimeRepository {
	return &showtimeRepository{
		db:  db,
		log: log.With(zap.String("repository", "showtime")),
	}
}

func (r *showtimeRepository) Create(ctx context.Context, showtime *entity.Showtime) error {
	query := `
		INSERT INTO showtimes (id, movie_id, theater_id, start_time, end_time, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		showtime.ID,
		showtime.MovieID,
		showtime.TheaterID,
		showtime.StartTime,
		showtime.EndTime,
		showtime.Price,
		showtime.CreatedAt,
		showtime.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create showtime",
			zap.Error(err),
			zap.String("movie_id", showtime.MovieID.String()),
			zap.String("theater_id", showtime.TheaterID.String()),
		)
		return fmt.Errorf("create showtime for movie %s theater %s: %w",
			showtime.MovieID.String(), showtime.TheaterID.String(), err)
	}

	return nil
}

func (r *showtimeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Showtime, error) {
	query := `
		SELECT id, movie_id, theater_id, start_time, end_time, price, created_at, updated_at
		FROM showtimes
		WHERE id = $1
	`

	var showtime entity.Showtime
	err := r.db.QueryRow(ctx, query, id).Scan(
		&showtime.ID,
		&showtime.MovieID,
		&showtime.TheaterID,
		&showtime.StartTime,
		&showtime.EndTime,
		&showtime.Price,
		&showtime.CreatedAt,
		&showtime.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find showtime by ID",
			zap.Error(err),
			zap.String("showtime_id", id.String()),
		)
		return nil, fmt.Errorf("find showtime by ID %s: %w", id.String(), err)
	}

	return &showtime, nil
}

func (r *showtimeRepository) FindAll(ctx context.Context, movieID *uuid.UUID, date *time.Time, limit, offset int) ([]*entity.Showtime, error) {
	query := `
		SELECT id, movie_id, theater_id, start_time, end_time, price, created_at, updated_at
		FROM showtimes
		WHERE ($1::uuid IS NULL OR movie_id = $1)
		  AND ($2::date IS NULL OR start_time::date = $2)
		ORDER BY start_time
		LIMIT $3 OFFSET $4
	`

	rows, err := r.db.Query(ctx, query, movieID, date, limit, offset)
	if err != nil {
		r.log.Error("Failed to list showtimes", zap.Error(err))
		return nil, fmt.Errorf("list showtimes: %w", err)
	}
	defer rows.Close()

	var showtimes []*entity.Showtime
	for rows.Next() {
		var showtime entity.Showtime
		err := rows.Scan(
			&showtime.ID,
			&showtime.MovieID,
			&showtime.TheaterID,
			&showtime.StartTime,
			&showtime.EndTime,
			&showtime.Price,
			&showtime.CreatedAt,
			&showtime.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan showtime row", zap.Error(err))
			return nil, fmt.Errorf("scan showtime row: %w", err)
		}
		showtimes = append(showtimes, &showtime)
	}

	return showtimes, nil
}

func (r *showtimeRepository) Count(ctx context.Context, movieID *uuid.UUID, date *time.Time) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM showtimes
		WHERE ($1::uuid IS NULL OR movie_id = $1)
		  AND ($2::date IS NULL OR start_time::date = $2)
	`

	var count int64
	err := r.db.QueryRow(ctx, query, movieID, date).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count showtimes", zap.Error(err))
		return 0, fmt.Errorf("count showtimes: %w", err)
	}

	return count, nil
}

// CountOverlapping counts showtimes in the same theater whose time range
// intersects [startTime, endTime). Used to reject double-scheduling.
func (r *showtimeRepository) CountOverlapping(ctx context.Context, theaterID uuid.UUID, startTime, endTime time.Time, excludeID uuid.UUID) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM showtimes
		WHERE theater_id = $1
		  AND id <> $4
		  AND start_time < $3
		  AND end_time > $2
	`

	var count int64
	err := r.db.QueryRow(ctx, query, theaterID, startTime, endTime, excludeID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count overlapping showtimes",
			zap.Error(err),
			zap.String("theater_id", theaterID.String()),
		)
		return 0, fmt.Errorf("count overlapping showtimes in theater %s: %w", theaterID.String(), err)
	}

	return count, nil
}

func (r *showtimeRepository) Update(ctx context.Context, showtime *entity.Showtime) error {
	query := `
		UPDATE showtimes
		SET movie_id = $2, theater_id = $3, start_time = $4, end_time = $5, price = $6, updated_at = $7
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		showtime.ID,
		showtime.MovieID,
		showtime.TheaterID,
		showtime.StartTime,
		showtime.EndTime,
		showtime.Price,
		showtime.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update showtime",
			zap.Error(err),
			zap.String("showtime_id", showtime.ID.String()),
		)
		return fmt.Errorf("update showtime %s: %w", showtime.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update showtime %s: %w", showtime.ID.String(), ErrNotFound)
	}

	return nil
}

func (r *showtimeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM showtimes WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete showtime",
			zap.Error(err),
			zap.String("showtime_id", id.String()),
		)
		return fmt.Errorf("delete showtime %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete showtime %s: %w", id.String(), ErrNotFound)
	}

	r.log.Info("Showtime deleted", zap.String("showtime_id", id.String()))
	return nil
}
