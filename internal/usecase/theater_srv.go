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

type TheaterService interface {
	// Public
	GetTheaters(ctx context.Context) ([]response.TheaterResponse, error)
	GetTheaterSeats(ctx context.Context, theaterID string) ([]response.SeatResponse, error)

	// Admin endpoints
	CreateTheater(ctx context.Context, req *request.CreateTheaterRequest) (*response.TheaterResponse, error)
}

type theaterService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewTheaterService(repo *repository.Repository, log *zap.Logger) TheaterService {
	return &theaterService{
		repo: repo,
		log:  log.With(zap.String("service", "theater")),
	}
}

func (s *theaterService) GetTheaters(ctx context.Context) ([]response.TheaterResponse, error) {
	theaters, err := s.repo.Theater.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return response.TheatersToResponse(theaters), nil
}

func (s *theaterService) GetTheaterSeats(ctx context.Context, theaterID string) ([]response.SeatResponse, error) {
	theaterUUID, err := uuid.Parse(theaterID)
	if err != nil {
		return nil, fmt.Errorf("invalid theater ID format %s: %w", theaterID, err)
	}

	theater, err := s.repo.Theater.FindByID(ctx, theaterUUID)
	if err != nil {
		return nil, err
	}
	if theater == nil {
		return nil, fmt.Errorf("theater %s: %w", theaterID, repository.ErrNotFound)
	}

	seats, err := s.repo.Seat.FindByTheaterID(ctx, theaterUUID)
	if err != nil {
		return nil, err
	}

	return response.SeatsToResponse(seats), nil
}

// CreateTheater creates a theater together with its full seat layout. Seats
// are immutable afterwards, so the layout is taken in one shot.
func (s *theaterService) CreateTheater(ctx context.Context, req *request.CreateTheaterRequest) (*response.TheaterResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create theater validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	now := time.Now()
	theater := &entity.Theater{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name: req.Name,
	}

	var seats []*entity.Seat
	for _, row := range req.Rows {
		for n := 1; n <= row.SeatCount; n++ {
			seats = append(seats, &entity.Seat{
				BaseSimple: entity.BaseSimple{
					ID:        uuid.New(),
					CreatedAt: now,
				},
				TheaterID:  theater.ID,
				RowLabel:   row.RowLabel,
				SeatNumber: n,
				SeatType:   entity.SeatType(row.SeatType),
			})
		}
	}
	theater.TotalSeats = len(seats)

	if err := s.repo.Theater.Create(ctx, theater); err != nil {
		return nil, err
	}
	if err := s.repo.Seat.CreateBatch(ctx, seats); err != nil {
		return nil, err
	}

	s.log.Info("Theater created",
		zap.String("theater_id", theater.ID.String()),
		zap.String("name", theater.Name),
		zap.Int("total_seats", theater.TotalSeats),
	)

	resp := response.TheaterToResponse(theater)
	return &resp, nil
}
