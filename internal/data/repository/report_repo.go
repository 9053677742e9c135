package repository

import (
	"context"
	"fmt"
	"time"

	"movie-reservation/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CapacityRow is one showtime's occupancy in the capacity report.
type CapacityRow struct {
	ShowtimeID    uuid.UUID
	MovieTitle    string
	TheaterName   string
	StartTime     time.Time
	TotalSeats    int
	ReservedSeats int
}

// RevenueRow is one showtime's confirmed revenue in the revenue report.
type RevenueRow struct {
	ShowtimeID   uuid.UUID
	MovieTitle   string
	StartTime    time.Time
	Reservations int64
	Revenue      float64
}

// ReportRepository serves the read-side admin rollups. Pure aggregation,
// no concurrency hazard.
type ReportRepository interface {
	CapacityByShowtime(ctx context.Context, from, to *time.Time) ([]*CapacityRow, error)
	RevenueByShowtime(ctx context.Context, from, to *time.Time) ([]*RevenueRow, error)
}

type reportRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReportRepository(db database.PgxIface, log *zap.Logger) ReportRepository {
	return &reportRepository{
		db:  db,
		log: log.With(zap.String("repository", "report")),
	}
}

func (r *reportRepository) CapacityByShowtime(ctx context.Context, from, to *time.Time) ([]*CapacityRow, error) {
	query := `
		SELECT st.id, m.title, t.name, st.start_time, t.total_seats,
		       COUNT(rs.seat_id) AS reserved_seats
		FROM showtimes st
		INNER JOIN movies m ON m.id = st.movie_id
		INNER JOIN theaters t ON t.id = st.theater_id
		LEFT JOIN reservations res ON res.showtime_id = st.id AND res.status = 'confirmed'
		LEFT JOIN reservation_seats rs ON rs.reservation_id = res.id
		WHERE ($1::date IS NULL OR st.start_time::date >= $1)
		  AND ($2::date IS NULL OR st.start_time::date <= $2)
		GROUP BY st.id, m.title, t.name, st.start_time, t.total_seats
		ORDER BY st.start_time
	`

	rows, err := r.db.Query(ctx, query, from, to)
	if err != nil {
		r.log.Error("Failed to query capacity report", zap.Error(err))
		return nil, fmt.Errorf("query capacity report: %w", err)
	}
	defer rows.Close()

	var report []*CapacityRow
	for rows.Next() {
		var row CapacityRow
		err := rows.Scan(
			&row.ShowtimeID,
			&row.MovieTitle,
			&row.TheaterName,
			&row.StartTime,
			&row.TotalSeats,
			&row.ReservedSeats,
		)
		if err != nil {
			r.log.Error("Failed to scan capacity row", zap.Error(err))
			return nil, fmt.Errorf("scan capacity row: %w", err)
		}
		report = append(report, &row)
	}

	return report, nil
}

func (r *reportRepository) RevenueByShowtime(ctx context.Context, from, to *time.Time) ([]*RevenueRow, error) {
	query := `
		SELECT st.id, m.title, st.start_time,
		       COUNT(res.id) AS reservations,
		       COALESCE(SUM(res.total_price), 0) AS revenue
		FROM showtimes st
		INNER JOIN movies m ON m.id = st.movie_id
		LEFT JOIN reservations res ON res.showtime_id = st.id AND res.status = 'confirmed'
		WHERE ($1::date IS NULL OR st.start_time::date >= $1)
		  AND ($2::date IS NULL OR st.start_time::date <= $2)
		GROUP BY st.id, m.title, st.start_time
		ORDER BY st.start_time
	`

	rows, err := r.db.Query(ctx, query, from, to)
	if err != nil {
		r.log.Error("Failed to query revenue report", zap.Error(err))
		return nil, fmt.Errorf("query revenue report: %w", err)
	}
	defer rows.Close()

	var report []*RevenueRow
	for rows.Next() {
		var row RevenueRow
		err := rows.Scan(
			&row.ShowtimeID,
			&row.MovieTitle,
			&row.StartTime,
			&row.Reservations,
			&row.Revenue,
		)
		if err != nil {
			r.log.Error("Failed to scan revenue row", zap.Error(err))
			return nil, fmt.Errorf("scan revenue row: %w", err)
		}
		report = append(report, &row)
	}

	return report, nil
}
