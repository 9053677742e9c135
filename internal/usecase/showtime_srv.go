package usecase

import (
	"context"
	"fmt"
	"time"

	"movie-reservation/internal/data/entity"
	"movie-reservation/internal/data/repository"
	"movie-reservation/internal/dto/request"
	"movie-reservation/internal/dto/response"
	"movie-reservation/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ShowtimeService interface {
	// Public
	GetShowtimes(ctx context.Context, movieID string, date *time.Time, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ShowtimeResponse], error)
	GetShowtimeByID(ctx context.Context, showtimeID string) (*response.ShowtimeResponse, error)

	// Admin endpoints
	CreateShowtime(ctx context.Context, req *request.CreateShowtimeRequest) (*response.ShowtimeResponse, error)
	UpdateShowtime(ctx context.Context, showtimeID string, req *request.UpdateShowtimeRequest) (*response.ShowtimeResponse, error)
	DeleteShowtime(ctx context.Context, showtimeID string) error
}

type showtimeService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewShowtimeService(repo *repository.Repository, log *zap.Logger) ShowtimeService {
	return &showtimeService{
		repo: repo,
		log:  log.With(zap.String("service", "showtime")),
	}
}

func (s *showtimeService) GetShowtimes(ctx context.Context, movieID string, date *time.Time, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ShowtimeResponse], error) {
	var movieUUID *uuid.UUID
	if movieID != "" {
		id, err := uuid.Parse(movieID)
		if err != nil {
			return nil, fmt.Errorf("invalid movie ID format %s: %w", movieID, err)
		}
		movieUUID = &id
	}

	showtimes, err := s.repo.Showtime.FindAll(ctx, movieUUID, date, req.Limit(), req.Offset())
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Showtime.Count(ctx, movieUUID, date)
	if err != nil {
		return nil, err
	}

	return response.NewPaginatedResponse(response.ShowtimesToResponse(showtimes), req.Page, req.Limit(), total), nil
}

func (s *showtimeService) GetShowtimeByID(ctx context.Context, showtimeID string) (*response.ShowtimeResponse, error) {
	showtimeUUID, err := uuid.Parse(showtimeID)
	if err != nil {
		return nil, fmt.Errorf("invalid showtime ID format %s: %w", showtimeID, err)
	}

	showtime, err := s.repo.Showtime.FindByID(ctx, showtimeUUID)
	if err != nil {
		return nil, err
	}
	if showtime == nil {
		return nil, fmt.Errorf("showtime %s: %w", showtimeID, repository.ErrNotFound)
	}

	resp := response.ShowtimeToResponse(showtime)
	return &resp, nil
}

func (s *showtimeService) CreateShowtime(ctx context.Context, req *request.CreateShowtimeRequest) (*response.ShowtimeResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create showtime validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	movieUUID, err := uuid.Parse(req.MovieID)
	if err != nil {
		return nil, fmt.Errorf("invalid movie ID format %s: %w", req.MovieID, err)
	}
	theaterUUID, err := uuid.Parse(req.TheaterID)
	if err != nil {
		return nil, fmt.Errorf("invalid theater ID format %s: %w", req.TheaterID, err)
	}

	movie, err := s.repo.Movie.FindByID(ctx, movieUUID)
	if err != nil {
		return nil, err
	}
	if movie == nil {
		return nil, fmt.Errorf("movie %s: %w", req.MovieID, repository.ErrNotFound)
	}

	theater, err := s.repo.Theater.FindByID(ctx, theaterUUID)
	if err != nil {
		return nil, err
	}
	if theater == nil {
		return nil, fmt.Errorf("theater %s: %w", req.TheaterID, repository.ErrNotFound)
	}

	if err := s.checkOverlap(ctx, theaterUUID, req.StartTime, req.EndTime, uuid.Nil); err != nil {
		return nil, err
	}

	now := time.Now()
	showtime := &entity.Showtime{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		MovieID:   movieUUID,
		TheaterID: theaterUUID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Price:     req.Price,
	}

	if err := s.repo.Showtime.Create(ctx, showtime); err != nil {
		return nil, err
	}

	s.log.Info("Showtime created",
		zap.String("showtime_id", showtime.ID.String()),
		zap.String("movie_id", req.MovieID),
		zap.String("theater_id", req.TheaterID),
		zap.Time("start_time", req.StartTime),
	)

	resp := response.ShowtimeToResponse(showtime)
	return &resp, nil
}

func (s *showtimeService) UpdateShowtime(ctx context.Context, showtimeID string, req *request.UpdateShowtimeRequest) (*response.ShowtimeResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update showtime validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	showtimeUUID, err := uuid.Parse(showtimeID)
	if err != nil {
		return nil, fmt.Errorf("invalid showtime ID format %s: %w", showtimeID, err)
	}

	showtime, err := s.repo.Showtime.FindByID(ctx, showtimeUUID)
	if err != nil {
		return nil, err
	}
	if showtime == nil {
		return nil, fmt.Errorf("showtime %s: %w", showtimeID, repository.ErrNotFound)
	}

	movieUUID, err := uuid.Parse(req.MovieID)
	if err != nil {
		return nil, fmt.Errorf("invalid movie ID format %s: %w", req.MovieID, err)
	}
	theaterUUID, err := uuid.Parse(req.TheaterID)
	if err != nil {
		return nil, fmt.Errorf("invalid theater ID format %s: %w", req.TheaterID, err)
	}

	if err := s.checkOverlap(ctx, theaterUUID, req.StartTime, req.EndTime, showtimeUUID); err != nil {
		return nil, err
	}

	showtime.MovieID = movieUUID
	showtime.TheaterID = theaterUUID
	showtime.StartTime = req.StartTime
	showtime.EndTime = req.EndTime
	showtime.Price = req.Price
	showtime.UpdatedAt = time.Now()

	if err := s.repo.Showtime.Update(ctx, showtime); err != nil {
		return nil, err
	}

	s.log.Info("Showtime updated", zap.String("showtime_id", showtimeID))

	resp := response.ShowtimeToResponse(showtime)
	return &resp, nil
}

func (s *showtimeService) DeleteShowtime(ctx context.Context, showtimeID string) error {
	showtimeUUID, err := uuid.Parse(showtimeID)
	if err != nil {
		return fmt.Errorf("invalid showtime ID format %s: %w", showtimeID, err)
	}

	if err := s.repo.Showtime.Delete(ctx, showtimeUUID); err != nil {
		return err
	}

	s.log.Info("Showtime deleted", zap.String("showtime_id", showtimeID))
	return nil
}

// checkOverlap rejects a showtime whose [start, end) window intersects an
// existing one in the same theater. excludeID skips the showtime being
// updated.
func (s *showtimeService) checkOverlap(ctx context.Context, theaterID uuid.UUID, startTime, endTime time.Time, excludeID uuid.UUID) error {
	overlapping, err := s.repo.Showtime.CountOverlapping(ctx, theaterID, startTime, endTime, excludeID)
	if err != nil {
		return err
	}
	if overlapping > 0 {
		return fmt.Errorf("showtime overlaps %d existing in theater %s: %w",
			overlapping, theaterID.String(), repository.ErrDuplicate)
	}
	return nil
}
