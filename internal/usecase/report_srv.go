package usecase

import (
	"context"
	"time"

	"movie-reservation/internal/data/repository"
	"movie-reservation/internal/dto/response"

	"go.uber.org/zap"
)

// ReportService serves the admin rollups. Read-only aggregation over
// confirmed reservations.
type ReportService interface {
	GetCapacityReport(ctx context.Context, from, to *time.Time) ([]response.CapacityReportItem, error)
	GetRevenueReport(ctx context.Context, from, to *time.Time) (*response.RevenueReportResponse, error)
}

type reportService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewReportService(repo *repository.Repository, log *zap.Logger) ReportService {
	return &reportService{
		repo: repo,
		log:  log.With(zap.String("service", "report")),
	}
}

func (s *reportService) GetCapacityReport(ctx context.Context, from, to *time.Time) ([]response.CapacityReportItem, error) {
	rows, err := s.repo.Report.CapacityByShowtime(ctx, from, to)
	if err != nil {
		return nil, err
	}

	items := make([]response.CapacityReportItem, 0, len(rows))
	for _, row := range rows {
		occupancy := 0.0
		if row.TotalSeats > 0 {
			occupancy = float64(row.ReservedSeats) / float64(row.TotalSeats)
		}
		items = append(items, response.CapacityReportItem{
			ShowtimeID:    row.ShowtimeID.String(),
			MovieTitle:    row.MovieTitle,
			TheaterName:   row.TheaterName,
			StartTime:     row.StartTime,
			TotalSeats:    row.TotalSeats,
			ReservedSeats: row.ReservedSeats,
			Occupancy:     occupancy,
		})
	}

	return items, nil
}

func (s *reportService) GetRevenueReport(ctx context.Context, from, to *time.Time) (*response.RevenueReportResponse, error) {
	rows, err := s.repo.Report.RevenueByShowtime(ctx, from, to)
	if err != nil {
		return nil, err
	}

	resp := &response.RevenueReportResponse{
		Items: make([]response.RevenueReportItem, 0, len(rows)),
	}
	for _, row := range rows {
		resp.Items = append(resp.Items, response.RevenueReportItem{
			ShowtimeID:   row.ShowtimeID.String(),
			MovieTitle:   row.MovieTitle,
			StartTime:    row.StartTime,
			Reservations: row.Reservations,
			Revenue:      row.Revenue,
		})
		resp.TotalRevenue += row.Revenue
	}

	return resp, nil
}
