package booking

import (
	"context"
	"errors"
	"time"

	"github.com/adamg02/boatbooking/internal/boat"
	"github.com/adamg02/boatbooking/internal/group"
	"github.com/adamg02/boatbooking/internal/logger"
	"github.com/adamg02/boatbooking/internal/metrics"
	"github.com/adamg02/boatbooking/internal/user"
)

var (
	ErrBoatUnavailable = errors.New("boat not found or not available for booking")
	ErrInvalidSlot     = errors.New("booking must be a 2-hour slot or the full-day window")
	ErrSlotInPast      = errors.New("cannot book a slot in the past")
	ErrOutsideWindow   = errors.New("booking is too far in the future")
	ErrAccessDenied    = errors.New("no permission to book this boat")
	ErrTimeConflict    = errors.New("time slot already booked")
	ErrNotOwner        = errors.New("can only cancel own bookings")
)

// CancellationNotifier sends the best-effort email after an admin cancels a
// member's booking.
type CancellationNotifier interface {
	SendBookingCancellation(ctx context.Context, to, name, boatName string, start, end time.Time, cancelledBy string) error
}

type Service interface {
	Create(ctx context.Context, userID int, req CreateBookingRequest) (*Booking, error)
	Cancel(ctx context.Context, userID, bookingID int) error
	CancelSlot(ctx context.Context, userID, boatID int, start, end time.Time) error
	AdminCancel(ctx context.Context, adminID, bookingID int) error
	ListMine(ctx context.Context, userID int) ([]BookingWithDetails, error)
	ListForDay(ctx context.Context, dayStart time.Time) ([]BookingWithDetails, error)
	DailySummary(ctx context.Context, start time.Time, days int) (*DailySummary, error)
	ListAll(ctx context.Context) ([]BookingWithDetails, error)
}

type service struct {
	repo      Repository
	boatRepo  boat.Repository
	groupRepo group.Repository
	userRepo  user.Repository
	notifier  CancellationNotifier
}

func NewService(
	repo Repository,
	boatRepo boat.Repository,
	groupRepo group.Repository,
	userRepo user.Repository,
	notifier CancellationNotifier,
) Service {
	return &service{
		repo:      repo,
		boatRepo:  boatRepo,
		groupRepo: groupRepo,
		userRepo:  userRepo,
		notifier:  notifier,
	}
}

// Create runs the booking admission sequence. Each rejection is a distinct
// error so the handler can tell "pick another time" from "not your boat".
func (s *service) Create(ctx context.Context, userID int, req CreateBookingRequest) (*Booking, error) {
	b, err := s.boatRepo.GetByID(ctx, req.BoatID)
	if err != nil {
		if errors.Is(err, boat.ErrBoatNotFound) {
			metrics.RecordBooking("not_found")
			return nil, ErrBoatUnavailable
		}
		return nil, err
	}
	if !b.IsActive {
		metrics.RecordBooking("not_found")
		return nil, ErrBoatUnavailable
	}

	if !ValidSlotRange(req.StartTime, req.EndTime) {
		metrics.RecordBooking("invalid_slot")
		return nil, ErrInvalidSlot
	}

	now := time.Now()
	if req.StartTime.Before(now) {
		metrics.RecordBooking("invalid_slot")
		return nil, ErrSlotInPast
	}
	if req.StartTime.After(now.AddDate(0, 0, BookingWindowDays)) {
		metrics.RecordBooking("invalid_slot")
		return nil, ErrOutsideWindow
	}

	userGroupIDs, err := s.groupRepo.ListIDsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !boat.AccessibleBy(b.GroupIDs, userGroupIDs) {
		metrics.RecordBooking("forbidden")
		return nil, ErrAccessDenied
	}

	existing, err := s.repo.ListConfirmedByBoat(ctx, req.BoatID)
	if err != nil {
		return nil, err
	}

	if HasConflict(existing, req.StartTime, req.EndTime) {
		metrics.RecordBooking("conflict")
		return nil, ErrTimeConflict
	}

	booking, err := s.repo.Create(ctx, req.BoatID, userID, req.StartTime, req.EndTime)
	if err != nil {
		// A concurrent request can slip between the check above and the
		// insert; the exclusion constraint reports it as a conflict.
		if errors.Is(err, ErrOverlapConstraint) {
			metrics.RecordBooking("conflict")
			return nil, ErrTimeConflict
		}
		return nil, err
	}

	metrics.RecordBooking("created")
	return booking, nil
}

// Cancel lets a member cancel their own booking. Cancelling a booking that
// is already cancelled is idempotent success.
func (s *service) Cancel(ctx context.Context, userID, bookingID int) error {
	booking, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}

	if booking.UserID != userID {
		return ErrNotOwner
	}

	if booking.Status == StatusCancelled {
		return nil
	}

	if err := s.repo.Cancel(ctx, bookingID); err != nil {
		if errors.Is(err, ErrAlreadyCancelled) {
			return nil
		}
		return err
	}

	metrics.RecordBookingCancellation("owner")
	return nil
}

// CancelSlot cancels the caller's booking identified by boat and exact time
// range, the way the calendar reports a member's own slot.
func (s *service) CancelSlot(ctx context.Context, userID, boatID int, start, end time.Time) error {
	existing, err := s.repo.ListConfirmedByBoat(ctx, boatID)
	if err != nil {
		return err
	}

	b := FindExact(existing, userID, start, end)
	if b == nil {
		return ErrBookingNotFound
	}

	if err := s.repo.Cancel(ctx, b.ID); err != nil {
		if errors.Is(err, ErrAlreadyCancelled) {
			return nil
		}
		return err
	}

	metrics.RecordBookingCancellation("owner")
	return nil
}

// AdminCancel cancels any booking and notifies its owner by email. The
// notification is fire-and-forget: a send failure never undoes the
// cancellation.
func (s *service) AdminCancel(ctx context.Context, adminID, bookingID int) error {
	booking, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}

	if booking.Status == StatusCancelled {
		return nil
	}

	if err := s.repo.Cancel(ctx, bookingID); err != nil {
		if errors.Is(err, ErrAlreadyCancelled) {
			return nil
		}
		return err
	}

	metrics.RecordBookingCancellation("admin")
	s.notifyCancellation(ctx, booking, adminID)
	return nil
}

func (s *service) notifyCancellation(ctx context.Context, booking *Booking, adminID int) {
	if s.notifier == nil {
		return
	}

	owner, err := s.userRepo.FindByID(ctx, booking.UserID)
	if err != nil {
		logger.Errorf("Cancellation notice skipped, owner lookup failed: %v", err)
		return
	}

	b, err := s.boatRepo.GetByID(ctx, booking.BoatID)
	if err != nil {
		logger.Errorf("Cancellation notice skipped, boat lookup failed: %v", err)
		return
	}

	cancelledBy := "an administrator"
	if admin, err := s.userRepo.FindByID(ctx, adminID); err == nil {
		cancelledBy = admin.Name
	}

	err = s.notifier.SendBookingCancellation(
		ctx,
		owner.Email,
		owner.Name,
		b.Name,
		booking.StartTime,
		booking.EndTime,
		cancelledBy,
	)
	if err != nil {
		logger.Errorf("Failed to send cancellation notice to %s: %v", owner.Email, err)
	}
}

func (s *service) ListMine(ctx context.Context, userID int) ([]BookingWithDetails, error) {
	return s.repo.ListUpcomingByUser(ctx, userID)
}

func (s *service) ListForDay(ctx context.Context, dayStart time.Time) ([]BookingWithDetails, error) {
	return s.repo.ListForDay(ctx, dayStart)
}

func (s *service) DailySummary(ctx context.Context, start time.Time, days int) (*DailySummary, error) {
	counts, err := s.repo.CountByDay(ctx, start, days)
	if err != nil {
		return nil, err
	}
	return &DailySummary{Counts: counts}, nil
}

func (s *service) ListAll(ctx context.Context) ([]BookingWithDetails, error) {
	return s.repo.ListAll(ctx)
}
