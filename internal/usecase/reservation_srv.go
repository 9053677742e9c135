package usecase

import (
	"context"
	"fmt"
	"time"

	"movie-reservation/internal/data/entity"
	"movie-reservation/internal/data/repository"
	"movie-reservation/internal/dto/request"
	"movie-reservation/internal/dto/response"
	"movie-reservation/pkg/database"
	"movie-reservation/pkg/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ReservationService interface {
	// Public
	GetSeatAvailability(ctx context.Context, showtimeID string) (*response.SeatAvailabilityResponse, error)

	// Authenticated
	LockSeats(ctx context.Context, userID, showtimeID string, req *request.LockSeatsRequest) (*response.LockSeatsResponse, error)
	ReleaseSeats(ctx context.Context, userID, showtimeID string, req *request.ReleaseSeatsRequest) (*response.ReleaseSeatsResponse, error)
	CreateReservation(ctx context.Context, userID string, req *request.CreateReservationRequest) (*response.ReservationResponse, error)
	CancelReservation(ctx context.Context, userID string, isAdmin bool, reservationID string) error
	GetUserReservations(ctx context.Context, userID string, includePast bool, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReservationResponse], error)
	GetReservationByID(ctx context.Context, userID string, isAdmin bool, reservationID string) (*response.ReservationResponse, error)
}

type reservationService struct {
	db   database.PgxIface // transaction boundary; repos run inside it
	repo *repository.Repository
	cfg  utils.ReservationConfig
	log  *zap.Logger
}

func NewReservationService(db database.PgxIface, repo *repository.Repository, cfg utils.ReservationConfig, log *zap.Logger) ReservationService {
	return &reservationService{
		db:   db,
		repo: repo,
		cfg:  cfg,
		log:  log.With(zap.String("service", "reservation")),
	}
}

func (s *reservationService) GetSeatAvailability(ctx context.Context, showtimeID string) (*response.SeatAvailabilityResponse, error) {
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

	seats, err := s.repo.Seat.FindAvailability(ctx, showtime.TheaterID, showtimeUUID)
	if err != nil {
		return nil, err
	}

	resp := response.AvailabilityToResponse(showtimeUUID, seats)
	return &resp, nil
}

// LockSeats places TTL holds on the requested seats. The whole acquire runs
// in one transaction: seat rows are locked FOR UPDATE first, so concurrent
// acquirers for overlapping seats serialize, and the availability checks that
// follow see committed state that cannot change under them.
func (s *reservationService) LockSeats(ctx context.Context, userID, showtimeID string, req *request.LockSeatsRequest) (*response.LockSeatsResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Lock seats validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	showtimeUUID, err := uuid.Parse(showtimeID)
	if err != nil {
		return nil, fmt.Errorf("invalid showtime ID format %s: %w", showtimeID, err)
	}

	seatUUIDs, err := parseSeatIDs(req.SeatIDs)
	if err != nil {
		return nil, err
	}

	showtime, err := s.repo.Showtime.FindByID(ctx, showtimeUUID)
	if err != nil {
		return nil, err
	}
	if showtime == nil {
		return nil, fmt.Errorf("showtime %s: %w", showtimeID, repository.ErrNotFound)
	}
	if showtime.HasStarted(time.Now()) {
		return nil, fmt.Errorf("lock seats for showtime %s: %w", showtimeID, repository.ErrShowtimeStarted)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin lock transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	expiresAt, err := s.acquireLocksTx(ctx, tx, userUUID, showtime, seatUUIDs)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, repository.NewSeatConflict(repository.ErrSeatUnavailable, seatUUIDs)
		}
		return nil, fmt.Errorf("commit lock transaction: %w", err)
	}

	s.log.Info("Seats locked",
		zap.String("user_id", userID),
		zap.String("showtime_id", showtimeID),
		zap.Int("seat_count", len(seatUUIDs)),
		zap.Time("expires_at", expiresAt),
	)

	return &response.LockSeatsResponse{
		ShowtimeID:    showtimeID,
		LockedSeatIDs: req.SeatIDs,
		ExpiresAt:     expiresAt,
	}, nil
}

// acquireLocksTx runs the in-transaction part of the acquire protocol and
// returns the expiry stamped on the new locks.
func (s *reservationService) acquireLocksTx(ctx context.Context, tx pgx.Tx, userUUID uuid.UUID, showtime *entity.Showtime, seatUUIDs []uuid.UUID) (time.Time, error) {
	// Bound the wait on contended seat rows instead of queueing forever.
	if err := s.setLockTimeoutTx(ctx, tx); err != nil {
		return time.Time{}, err
	}

	seats, err := s.repo.Seat.LockForBookingTx(ctx, tx, showtime.TheaterID, seatUUIDs)
	if err != nil {
		if repository.IsLockTimeout(err) {
			return time.Time{}, repository.NewSeatConflict(repository.ErrSeatUnavailable, seatUUIDs)
		}
		return time.Time{}, err
	}
	if len(seats) != len(seatUUIDs) {
		return time.Time{}, repository.NewSeatConflict(repository.ErrNotFound, missingSeatIDs(seatUUIDs, seats))
	}

	// Both checks run under the seat row locks, so no concurrent acquire or
	// commit can invalidate them before our own commit.
	reserved, err := s.repo.Reservation.FindConfirmedSeatIDsTx(ctx, tx, showtime.ID, seatUUIDs)
	if err != nil {
		return time.Time{}, err
	}
	if len(reserved) > 0 {
		return time.Time{}, repository.NewSeatConflict(repository.ErrSeatUnavailable, reserved)
	}

	held, err := s.repo.SeatLock.FindActiveByOthersTx(ctx, tx, showtime.ID, seatUUIDs, userUUID)
	if err != nil {
		return time.Time{}, err
	}
	if len(held) > 0 {
		return time.Time{}, repository.NewSeatConflict(repository.ErrSeatUnavailable, held)
	}

	// Clear rows the insert may replace: our own (renewal takes a full new
	// TTL) and expired leftovers the sweeper has not removed yet.
	if err := s.repo.SeatLock.DeleteReplaceableTx(ctx, tx, userUUID, showtime.ID, seatUUIDs); err != nil {
		return time.Time{}, err
	}

	now := time.Now()
	expiresAt := now.Add(s.cfg.LockTTL())
	locks := make([]*entity.SeatLock, 0, len(seatUUIDs))
	for _, seatID := range seatUUIDs {
		locks = append(locks, &entity.SeatLock{
			BaseSimple: entity.BaseSimple{
				ID:        uuid.New(),
				CreatedAt: now,
			},
			SeatID:     seatID,
			ShowtimeID: showtime.ID,
			UserID:     userUUID,
			ExpiresAt:  expiresAt,
		})
	}

	if err := s.repo.SeatLock.CreateBatchTx(ctx, tx, locks); err != nil {
		if repository.IsUniqueViolation(err) {
			return time.Time{}, repository.NewSeatConflict(repository.ErrSeatUnavailable, seatUUIDs)
		}
		return time.Time{}, err
	}

	return expiresAt, nil
}

// ReleaseSeats drops the caller's own holds. Locks already expired, swept, or
// never taken count as released; the operation is idempotent.
func (s *reservationService) ReleaseSeats(ctx context.Context, userID, showtimeID string, req *request.ReleaseSeatsRequest) (*response.ReleaseSeatsResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Release seats validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	showtimeUUID, err := uuid.Parse(showtimeID)
	if err != nil {
		return nil, fmt.Errorf("invalid showtime ID format %s: %w", showtimeID, err)
	}

	seatUUIDs, err := parseSeatIDs(req.SeatIDs)
	if err != nil {
		return nil, err
	}

	released, err := s.repo.SeatLock.DeleteByHolder(ctx, userUUID, showtimeUUID, seatUUIDs)
	if err != nil {
		return nil, err
	}

	s.log.Info("Seats released",
		zap.String("user_id", userID),
		zap.String("showtime_id", showtimeID),
		zap.Int64("released", released),
	)

	return &response.ReleaseSeatsResponse{
		ShowtimeID:    showtimeID,
		ReleasedSeats: int(released),
	}, nil
}

// CreateReservation converts the caller's seat locks into a confirmed
// booking. Reservation insert and lock consumption commit atomically, so a
// seat is never both reserved and locked, and a failed commit leaves the
// locks in place.
func (s *reservationService) CreateReservation(ctx context.Context, userID string, req *request.CreateReservationRequest) (*response.ReservationResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create reservation validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	showtimeUUID, err := uuid.Parse(req.ShowtimeID)
	if err != nil {
		return nil, fmt.Errorf("invalid showtime ID format %s: %w", req.ShowtimeID, err)
	}

	seatUUIDs, err := parseSeatIDs(req.SeatIDs)
	if err != nil {
		return nil, err
	}

	showtime, err := s.repo.Showtime.FindByID(ctx, showtimeUUID)
	if err != nil {
		return nil, err
	}
	if showtime == nil {
		return nil, fmt.Errorf("showtime %s: %w", req.ShowtimeID, repository.ErrNotFound)
	}
	if showtime.HasStarted(time.Now()) {
		return nil, fmt.Errorf("reserve seats for showtime %s: %w", req.ShowtimeID, repository.ErrShowtimeStarted)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin reservation transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Commit never takes seat-row locks; ownership of the lock rows is the
	// authority here, and FindForSeatsTx below is the only FOR UPDATE.
	seats, err := s.repo.Seat.FindByIDs(ctx, seatUUIDs)
	if err != nil {
		return nil, err
	}
	if len(seats) != len(seatUUIDs) {
		return nil, repository.NewSeatConflict(repository.ErrNotFound, missingSeatIDs(seatUUIDs, seats))
	}

	reserved, err := s.repo.Reservation.FindConfirmedSeatIDsTx(ctx, tx, showtime.ID, seatUUIDs)
	if err != nil {
		return nil, err
	}
	if len(reserved) > 0 {
		return nil, repository.NewSeatConflict(repository.ErrSeatUnavailable, reserved)
	}

	locks, err := s.repo.SeatLock.FindForSeatsTx(ctx, tx, showtime.ID, seatUUIDs)
	if err != nil {
		return nil, err
	}
	if err := classifyLocks(userUUID, seatUUIDs, locks, time.Now()); err != nil {
		return nil, err
	}

	now := time.Now()
	reservation := &entity.Reservation{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:     userUUID,
		ShowtimeID: showtime.ID,
		Status:     entity.ReservationStatusConfirmed,
		TotalPrice: s.totalPrice(showtime.Price, seats),
	}

	if err := s.repo.Reservation.CreateTx(ctx, tx, reservation); err != nil {
		return nil, err
	}

	reservationSeats := make([]*entity.ReservationSeat, 0, len(seatUUIDs))
	for _, seatID := range seatUUIDs {
		reservationSeats = append(reservationSeats, &entity.ReservationSeat{
			ReservationID: reservation.ID,
			SeatID:        seatID,
		})
	}
	if err := s.repo.Reservation.CreateSeatsTx(ctx, tx, reservationSeats); err != nil {
		return nil, err
	}

	// Consume the locks in the same transaction.
	if err := s.repo.SeatLock.DeleteByHolderTx(ctx, tx, userUUID, showtime.ID, seatUUIDs); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit reservation transaction: %w", err)
	}

	s.log.Info("Reservation created",
		zap.String("reservation_id", reservation.ID.String()),
		zap.String("user_id", userID),
		zap.String("showtime_id", req.ShowtimeID),
		zap.Int("seat_count", len(seatUUIDs)),
		zap.Float64("total_price", reservation.TotalPrice),
	)

	resp := response.ReservationToResponse(reservation, seats)
	return &resp, nil
}

// CancelReservation marks a confirmed reservation cancelled, freeing its
// seats for rebooking. Only the owner (or an admin) may cancel, and only
// before the screening starts.
func (s *reservationService) CancelReservation(ctx context.Context, userID string, isAdmin bool, reservationID string) error {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	reservationUUID, err := uuid.Parse(reservationID)
	if err != nil {
		return fmt.Errorf("invalid reservation ID format %s: %w", reservationID, err)
	}

	reservation, err := s.repo.Reservation.FindByID(ctx, reservationUUID)
	if err != nil {
		return err
	}
	if reservation == nil {
		return fmt.Errorf("reservation %s: %w", reservationID, repository.ErrNotFound)
	}

	if !isAdmin && reservation.UserID != userUUID {
		return fmt.Errorf("cancel reservation %s: %w", reservationID, repository.ErrNotOwned)
	}

	// Already cancelled is a no-op.
	if reservation.Status == entity.ReservationStatusCancelled {
		return nil
	}

	showtime, err := s.repo.Showtime.FindByID(ctx, reservation.ShowtimeID)
	if err != nil {
		return err
	}
	if showtime != nil && showtime.HasStarted(time.Now()) {
		return fmt.Errorf("cancel reservation %s: %w", reservationID, repository.ErrShowtimeStarted)
	}

	if err := s.repo.Reservation.UpdateStatus(ctx, reservationUUID, entity.ReservationStatusCancelled); err != nil {
		return err
	}

	s.log.Info("Reservation cancelled",
		zap.String("reservation_id", reservationID),
		zap.String("cancelled_by", userID),
	)

	return nil
}

func (s *reservationService) GetUserReservations(ctx context.Context, userID string, includePast bool, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReservationResponse], error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	reservations, err := s.repo.Reservation.FindByUserID(ctx, userUUID, includePast, req.Limit(), req.Offset())
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Reservation.CountByUserID(ctx, userUUID, includePast)
	if err != nil {
		return nil, err
	}

	items := make([]response.ReservationResponse, 0, len(reservations))
	for _, reservation := range reservations {
		seats, err := s.seatsOfReservation(ctx, reservation.ID)
		if err != nil {
			return nil, err
		}
		items = append(items, response.ReservationToResponse(reservation, seats))
	}

	return response.NewPaginatedResponse(items, req.Page, req.Limit(), total), nil
}

func (s *reservationService) GetReservationByID(ctx context.Context, userID string, isAdmin bool, reservationID string) (*response.ReservationResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	reservationUUID, err := uuid.Parse(reservationID)
	if err != nil {
		return nil, fmt.Errorf("invalid reservation ID format %s: %w", reservationID, err)
	}

	reservation, err := s.repo.Reservation.FindByID(ctx, reservationUUID)
	if err != nil {
		return nil, err
	}
	if reservation == nil {
		return nil, fmt.Errorf("reservation %s: %w", reservationID, repository.ErrNotFound)
	}

	if !isAdmin && reservation.UserID != userUUID {
		return nil, fmt.Errorf("view reservation %s: %w", reservationID, repository.ErrNotOwned)
	}

	seats, err := s.seatsOfReservation(ctx, reservationUUID)
	if err != nil {
		return nil, err
	}

	resp := response.ReservationToResponse(reservation, seats)
	return &resp, nil
}

func (s *reservationService) seatsOfReservation(ctx context.Context, reservationID uuid.UUID) ([]*entity.Seat, error) {
	seatIDs, err := s.repo.Reservation.FindSeatIDs(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	return s.repo.Seat.FindByIDs(ctx, seatIDs)
}

// setLockTimeoutTx caps how long this transaction may block on a row lock.
// SET LOCAL scopes the setting to the transaction; the timeout value does not
// come from user input.
func (s *reservationService) setLockTimeoutTx(ctx context.Context, tx pgx.Tx) error {
	stmt := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", s.cfg.LockWaitTimeout().Milliseconds())
	if _, err := tx.Exec(ctx, stmt); err != nil {
		return fmt.Errorf("set lock timeout: %w", err)
	}
	return nil
}

// totalPrice sums the showtime base price across seats, weighted per seat
// type.
func (s *reservationService) totalPrice(basePrice float64, seats []*entity.Seat) float64 {
	total := 0.0
	for _, seat := range seats {
		total += basePrice * s.priceMultiplier(seat.SeatType)
	}
	return total
}

func (s *reservationService) priceMultiplier(seatType entity.SeatType) float64 {
	switch seatType {
	case entity.SeatTypePremium:
		return s.cfg.PremiumPriceMultiplier
	case entity.SeatTypeVIP:
		return s.cfg.VIPPriceMultiplier
	default:
		return 1.0
	}
}

// classifyLocks checks that the caller holds a live lock on every requested
// seat. Failures are reported by severity: missing rows first, then rows held
// by someone else, then the caller's own expired rows. An expired row left by
// another holder is dead and counts as missing.
func classifyLocks(userUUID uuid.UUID, seatUUIDs []uuid.UUID, locks []*entity.SeatLock, now time.Time) error {
	bySeat := make(map[uuid.UUID]*entity.SeatLock, len(locks))
	for _, lock := range locks {
		bySeat[lock.SeatID] = lock
	}

	var missing, expired, notOwned []uuid.UUID
	for _, seatID := range seatUUIDs {
		lock, ok := bySeat[seatID]
		switch {
		case !ok:
			missing = append(missing, seatID)
		case lock.IsExpired(now):
			if lock.UserID == userUUID {
				expired = append(expired, seatID)
			} else {
				missing = append(missing, seatID)
			}
		case lock.UserID != userUUID:
			notOwned = append(notOwned, seatID)
		}
	}

	switch {
	case len(missing) > 0:
		return repository.NewSeatConflict(repository.ErrLockMissing, missing)
	case len(notOwned) > 0:
		return repository.NewSeatConflict(repository.ErrLockNotOwned, notOwned)
	case len(expired) > 0:
		return repository.NewSeatConflict(repository.ErrLockExpired, expired)
	}
	return nil
}

// missingSeatIDs returns the requested IDs absent from the loaded seats,
// which happens when a seat does not exist or sits in another theater.
func missingSeatIDs(requested []uuid.UUID, found []*entity.Seat) []uuid.UUID {
	present := make(map[uuid.UUID]bool, len(found))
	for _, seat := range found {
		present[seat.ID] = true
	}

	var missing []uuid.UUID
	for _, id := range requested {
		if !present[id] {
			missing = append(missing, id)
		}
	}
	return missing
}

// parseSeatIDs parses and rejects duplicates. The request-level unique check
// compares raw strings, so the same UUID in different hex case gets past it.
func parseSeatIDs(ids []string) ([]uuid.UUID, error) {
	seatUUIDs := make([]uuid.UUID, len(ids))
	seen := make(map[uuid.UUID]bool, len(ids))
	for i, idStr := range ids {
		id, err := uuid.Parse(idStr)
		if err != nil {
			return nil, fmt.Errorf("invalid seat ID format %s: %w", idStr, err)
		}
		if seen[id] {
			return nil, fmt.Errorf("invalid seat ID list: %s appears more than once", idStr)
		}
		seen[id] = true
		seatUUIDs[i] = id
	}
	return seatUUIDs, nil
}
