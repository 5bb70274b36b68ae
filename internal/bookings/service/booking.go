package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"innkeeper/internal/bookings/chain"
	bookingserrors "innkeeper/internal/bookings/errors"
	"innkeeper/internal/bookings/notify"
	"innkeeper/internal/bookings/pricing"
	"innkeeper/internal/bookings/repository"
	"innkeeper/internal/bookings/state"
	"innkeeper/internal/bookings/validator"
	"innkeeper/pkg/client"
	"innkeeper/pkg/config"
	apperrors "innkeeper/pkg/errors"
	"innkeeper/pkg/model"
	"innkeeper/pkg/sanitizer"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

// StatusChangeRequest carries a requested status move plus the
// optional arrival and departure hour overrides.
type StatusChangeRequest struct {
	Status             string `json:"status"`
	SkipRoomValidation bool   `json:"skip_room_validation,omitempty"`
	CheckInHour        *int   `json:"checkin_hour,omitempty"`
	CheckInMinute      *int   `json:"checkin_minute,omitempty"`
	CheckOutHour       *int   `json:"checkout_hour,omitempty"`
	CheckOutMinute     *int   `json:"checkout_minute,omitempty"`
}

// SplitRequest moves the remainder of a stay into another room,
// starting at ChangeDate.
type SplitRequest struct {
	NewRoomID  string    `json:"new_room_id"`
	ChangeDate time.Time `json:"change_date"`
	Price      *float64  `json:"price,omitempty"`
}

// BatchResult reports the outcome of one segment in a batch create.
// Segments whose room change could not be linked are still created,
// just without chain pointers.
type BatchResult struct {
	Index     int    `json:"index"`
	BookingID string `json:"booking_id,omitempty"`
	Linked    bool   `json:"linked"`
	Error     string `json:"error,omitempty"`
}

// SaleOrderGateway is the slice of the billing client the service
// needs. *client.SaleOrderClient satisfies it.
type SaleOrderGateway interface {
	CreateOrder(ctx context.Context, req client.SaleOrderRequest) (*client.SaleOrderResponse, error)
	CancelOrder(ctx context.Context, orderRef string) error
}

type BookingService interface {
	Create(ctx context.Context, booking *model.Booking) error
	CreateBatch(ctx context.Context, segments []*model.Booking) ([]BatchResult, error)
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error)
	AddRooms(ctx context.Context, id string, lines []model.BookingLine) (*model.Booking, error)
	ChangeStatus(ctx context.Context, id string, req StatusChangeRequest) (*model.Booking, error)
	Cancel(ctx context.Context, id string, reason string) (*model.Booking, error)
	SplitRoom(ctx context.Context, id string, req SplitRequest) (*model.Booking, error)
	ChainInfo(ctx context.Context, id string) (chain.Info, error)
	Totals(ctx context.Context, id string) (pricing.Totals, error)
	Delete(ctx context.Context, id string) error
}

type bookingService struct {
	repo       repository.BookingRepository
	validator  *validator.BookingValidator
	tracker    *chain.Tracker
	saleOrders SaleOrderGateway
	notifier   notify.Notifier
	cfg        *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	bookingValidator *validator.BookingValidator,
	saleOrders SaleOrderGateway,
	notifier notify.Notifier,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:       repo,
		validator:  bookingValidator,
		tracker:    chain.NewTracker(repo, cfg.MaxChainDepth),
		saleOrders: saleOrders,
		notifier:   notifier,
		cfg:        cfg,
	}
}

func (s *bookingService) Create(ctx context.Context, booking *model.Booking) error {
	s.applyDefaults(booking)
	s.sanitize(booking)
	if err := s.validate(booking); err != nil {
		return err
	}
	if err := s.reprice(ctx, booking); err != nil {
		return err
	}

	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		for _, line := range booking.Lines {
			if err := s.checkAvailability(sessCtx, line.RoomID, booking.StayRange, booking.ID); err != nil {
				return err
			}
		}
		if err := s.repo.Create(sessCtx, booking); err != nil {
			return apperrors.Internal("Failed to create booking", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create booking", "error", err)
		return err
	}

	s.notifier.BookingCreated(ctx, booking)
	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"partner_id", booking.PartnerID,
		"check_in", booking.CheckIn,
		"check_out", booking.CheckOut,
	)
	return nil
}

// CreateBatch creates a sequence of stay segments. Consecutive
// segments are linked into a room-change chain; a segment whose room
// is taken for its dates is still created, unlinked, and the failure
// is reported in its result instead of aborting the batch.
func (s *bookingService) CreateBatch(ctx context.Context, segments []*model.Booking) ([]BatchResult, error) {
	if len(segments) == 0 {
		return nil, apperrors.InvalidInput("Batch must contain at least one booking")
	}

	results := make([]BatchResult, len(segments))
	var previous *model.Booking

	for i, segment := range segments {
		results[i].Index = i

		s.applyDefaults(segment)
		s.sanitize(segment)
		if err := s.validate(segment); err != nil {
			results[i].Error = err.Error()
			continue
		}
		if err := s.reprice(ctx, segment); err != nil {
			results[i].Error = err.Error()
			continue
		}

		linkErr := s.checkAvailability(ctx, segment.FirstRoomID(), segment.StayRange, "")
		link := previous != nil && linkErr == nil
		if link {
			segment.SplitFromBookingID = previous.ID
			segment.IsRoomChangeDestination = true
		} else {
			segment.SplitFromBookingID = ""
			segment.IsRoomChangeDestination = false
		}
		if i == 0 && len(segments) > 1 {
			segment.IsRoomChangeOrigin = true
		}

		prev := previous
		err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
			if err := s.repo.Create(sessCtx, segment); err != nil {
				return apperrors.Internal("Failed to create booking", err)
			}
			if link {
				prev.ConnectedBookingID = segment.ID
				prev.IsRoomChangeOrigin = true
				if err := s.repo.Replace(sessCtx, prev.ID, prev); err != nil {
					return apperrors.Internal("Failed to link booking chain", err)
				}
			}
			return nil
		})
		if err != nil {
			s.cfg.Log.Error("Failed to create batch segment", "index", i, "error", err)
			results[i].Error = err.Error()
			continue
		}

		results[i].BookingID = segment.ID
		results[i].Linked = link
		if linkErr != nil {
			failure := apperrors.RoomChangeFailed(
				fmt.Sprintf("segment %d created with an unavailable room", i),
				linkErr,
			)
			results[i].Error = failure.Message
			s.cfg.Log.Warn("Batch segment room unavailable",
				"index", i,
				"booking_id", segment.ID,
				"error", linkErr,
			)
		}

		previous = segment
	}

	return results, nil
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid booking ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve booking", err)
	}

	return booking, nil
}

func (s *bookingService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Booking, int64, error) {
	var count int64
	var bookings []*model.Booking
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count bookings", "error", errCount)
			errCount = apperrors.Internal("Failed to count bookings", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		bookings, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list bookings", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve bookings", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return bookings, count, nil
}

func (s *bookingService) AddRooms(ctx context.Context, id string, lines []model.BookingLine) (*model.Booking, error) {
	if len(lines) == 0 {
		return nil, apperrors.InvalidInput("At least one room line is required")
	}

	booking, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if state.IsTerminal(booking.Status) {
		return nil, apperrors.Conflict(fmt.Sprintf(
			"Cannot add rooms: %s (%s)", bookingserrors.ErrTerminalState.Error(), booking.Status,
		))
	}

	for i := range lines {
		if lines[i].ID == "" {
			lines[i].ID = uuid.New().String()
		}
		lines[i].Discount = sanitizer.ClampDiscount(lines[i].Discount)
		lines[i].Price = sanitizer.NormalizeCharge(lines[i].Price)
		for j := range lines[i].Guests {
			lines[i].Guests[j].Name = sanitizer.NormalizeName(lines[i].Guests[j].Name)
		}

		if err := s.checkAvailability(ctx, lines[i].RoomID, booking.StayRange, booking.ID); err != nil {
			return nil, err
		}
	}

	expectedWriteDate := booking.WriteDate
	booking.Lines = append(booking.Lines, lines...)
	if err := s.validate(booking); err != nil {
		return nil, err
	}
	if err := s.reprice(ctx, booking); err != nil {
		return nil, err
	}

	if err := s.persist(ctx, booking, expectedWriteDate); err != nil {
		return nil, err
	}

	s.cfg.Log.Info("Rooms added to booking", "id", booking.ID, "lines", len(lines))
	return booking, nil
}

func (s *bookingService) ChangeStatus(ctx context.Context, id string, req StatusChangeRequest) (*model.Booking, error) {
	booking, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	target := state.Canonical(req.Status)
	from := booking.Status
	expectedWriteDate := booking.WriteDate

	// A booking cannot be confirmed before any room is attached,
	// even though the confirmed state itself carries no room.
	if target == model.StatusConfirmed && len(booking.Lines) == 0 {
		return nil, apperrors.Conflict(bookingserrors.ErrMissingRoomAssignment.Error())
	}

	// Guest occupancy rules only bite once the booking leaves its
	// initial state for a live status.
	if from == model.StatusInitial && target != model.StatusInitial && !state.IsTerminal(target) {
		if err := s.validator.ValidateOccupancy(booking); err != nil {
			return nil, apperrors.Validation("Booking occupancy validation failed", map[string]any{"error": err.Error()})
		}
	}

	snapshot := state.CaptureHours(booking, state.Overrides{
		CheckInHour:    req.CheckInHour,
		CheckInMinute:  req.CheckInMinute,
		CheckOutHour:   req.CheckOutHour,
		CheckOutMinute: req.CheckOutMinute,
	}, s.cfg.CheckInHour, s.cfg.CheckOutHour)

	event, err := state.Apply(booking, target, state.Options{
		Now:                time.Now().UTC(),
		SkipRoomValidation: req.SkipRoomValidation,
	})
	if err != nil {
		return nil, s.translateStateError(err, from, target)
	}

	state.RestoreHours(booking, snapshot)

	if err := s.reprice(ctx, booking); err != nil {
		return nil, err
	}

	// Confirmation opens a sale order; a billing failure aborts the
	// whole transition so status and order never diverge.
	if booking.Status == model.StatusConfirmed && booking.OrderRef == "" {
		order, err := s.saleOrders.CreateOrder(ctx, client.SaleOrderRequest{
			BookingID:   booking.ID,
			PartnerID:   booking.PartnerID,
			TotalAmount: sanitizer.RoundMoney(booking.TotalAmount),
		})
		if err != nil {
			s.cfg.Log.Error("Sale order creation failed, aborting confirmation",
				"id", booking.ID,
				"error", err,
			)
			return nil, apperrors.Wrap(err, apperrors.CodeUnavailable, "Could not open a sale order for this booking", 503)
		}
		booking.OrderRef = order.OrderRef
	}

	if err := s.persist(ctx, booking, expectedWriteDate); err != nil {
		return nil, err
	}

	s.notifier.StatusChanged(ctx, booking, event.From, event.To)
	s.cfg.Log.Info("Booking status changed",
		"id", booking.ID,
		"from", event.From,
		"to", event.To,
	)
	return booking, nil
}

func (s *bookingService) Cancel(ctx context.Context, id string, reason string) (*model.Booking, error) {
	booking, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	from := booking.Status
	expectedWriteDate := booking.WriteDate

	if _, err := state.Apply(booking, model.StatusCancelled, state.Options{Now: time.Now().UTC()}); err != nil {
		return nil, s.translateStateError(err, from, model.StatusCancelled)
	}

	booking.CancellationReason = sanitizer.SanitizeReasonLabel(reason)

	if err := s.persist(ctx, booking, expectedWriteDate); err != nil {
		return nil, err
	}

	// Voiding the sale order is best effort; the cancellation stands
	// even when billing is unreachable.
	if booking.OrderRef != "" {
		if err := s.saleOrders.CancelOrder(ctx, booking.OrderRef); err != nil {
			s.cfg.Log.Warn("Failed to void sale order for cancelled booking",
				"id", booking.ID,
				"order_ref", booking.OrderRef,
				"error", err,
			)
		}
	}

	s.notifier.BookingCancelled(ctx, booking, booking.CancellationReason)
	s.cfg.Log.Info("Booking cancelled", "id", booking.ID, "reason", booking.CancellationReason)
	return booking, nil
}

// SplitRoom moves the rest of the stay into another room. The current
// booking is shortened to end at the change date and a linked booking
// covers the remainder in the new room.
func (s *bookingService) SplitRoom(ctx context.Context, id string, req SplitRequest) (*model.Booking, error) {
	if req.NewRoomID == "" {
		return nil, apperrors.InvalidInput("New room ID is required")
	}

	booking, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if state.IsTerminal(booking.Status) {
		return nil, apperrors.Conflict(fmt.Sprintf(
			"Cannot change rooms: %s (%s)", bookingserrors.ErrTerminalState.Error(), booking.Status,
		))
	}

	if booking.FirstRoomID() == "" {
		return nil, apperrors.RoomChangeFailed(
			"Booking has no room to change", bookingserrors.ErrRoomChangeFailed,
		)
	}

	changeDate := req.ChangeDate
	if !changeDate.After(booking.CheckIn) || !changeDate.Before(booking.CheckOut) {
		return nil, apperrors.Validation("Change date must fall inside the stay", map[string]any{
			"check_in":    booking.CheckIn,
			"check_out":   booking.CheckOut,
			"change_date": changeDate,
		})
	}

	remainder := model.StayRange{CheckIn: changeDate, CheckOut: booking.CheckOut}
	if err := s.checkAvailability(ctx, req.NewRoomID, remainder, booking.ID); err != nil {
		return nil, apperrors.RoomChangeFailed(
			fmt.Sprintf("Room %s is not available from %s", req.NewRoomID, changeDate.Format(time.RFC3339)),
			err,
		)
	}

	price := 0.0
	if len(booking.Lines) > 0 {
		price = booking.Lines[0].Price
	}
	if req.Price != nil {
		price = sanitizer.NormalizeCharge(*req.Price)
	}

	destination := &model.Booking{
		PartnerID:               booking.PartnerID,
		Status:                  booking.Status,
		StayRange:               remainder,
		SplitFromBookingID:      booking.ID,
		IsRoomChangeDestination: true,
		TravelReason:            booking.TravelReason,
		Lines: []model.BookingLine{{
			ID:     uuid.New().String(),
			RoomID: req.NewRoomID,
			Price:  price,
		}},
	}
	if len(booking.Lines) > 0 {
		destination.Lines[0].ListPrice = booking.Lines[0].ListPrice
		destination.Lines[0].TaxRates = booking.Lines[0].TaxRates
		destination.Lines[0].Guests = booking.Lines[0].Guests
	}

	expectedWriteDate := booking.WriteDate
	booking.CheckOut = changeDate
	booking.IsRoomChangeOrigin = true

	if err := s.reprice(ctx, booking); err != nil {
		return nil, err
	}
	if err := s.reprice(ctx, destination); err != nil {
		return nil, err
	}

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.repo.Create(sessCtx, destination); err != nil {
			return apperrors.Internal("Failed to create room change booking", err)
		}
		booking.ConnectedBookingID = destination.ID
		if err := s.repo.ReplaceGuarded(sessCtx, booking.ID, booking, expectedWriteDate); err != nil {
			if errors.Is(err, bookingserrors.ErrStaleWrite) {
				return apperrors.Conflict(bookingserrors.ErrStaleWrite.Error())
			}
			return apperrors.Internal("Failed to update origin booking", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Room change failed", "id", booking.ID, "new_room", req.NewRoomID, "error", err)
		return nil, err
	}

	s.notifier.RoomChanged(ctx, booking, destination)
	s.cfg.Log.Info("Room changed",
		"origin_id", booking.ID,
		"destination_id", destination.ID,
		"new_room", req.NewRoomID,
		"change_date", changeDate,
	)
	return destination, nil
}

func (s *bookingService) ChainInfo(ctx context.Context, id string) (chain.Info, error) {
	booking, err := s.GetByID(ctx, id)
	if err != nil {
		return chain.Info{}, err
	}

	result, err := s.tracker.Resolve(ctx, booking)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrChainCycle) {
			return chain.Info{}, apperrors.Conflict(bookingserrors.ErrChainCycle.Error())
		}
		return chain.Info{}, apperrors.Internal("Failed to resolve room change chain", err)
	}

	return chain.Describe(result), nil
}

// Totals recomputes the amount view without persisting it.
func (s *bookingService) Totals(ctx context.Context, id string) (pricing.Totals, error) {
	booking, err := s.GetByID(ctx, id)
	if err != nil {
		return pricing.Totals{}, err
	}

	totals, err := pricing.Compute(ctx, pricing.RatesFromLines(booking.Lines), booking)
	if err != nil {
		return pricing.Totals{}, apperrors.Internal("Failed to compute booking totals", err)
	}
	return totals, nil
}

func (s *bookingService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Booking ID cannot be empty")
	}

	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.repo.Delete(sessCtx, id); err != nil {
			if errors.Is(err, bookingserrors.ErrNotFound) {
				return apperrors.NotFoundWithID("Booking", id)
			}
			if errors.Is(err, bookingserrors.ErrInvalidID) {
				return apperrors.InvalidInput("Invalid booking ID format")
			}
			return apperrors.Internal("Failed to delete booking", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.cfg.Log.Info("Booking deleted successfully", "id", id)
	return nil
}

// --- Helpers ---

func (s *bookingService) applyDefaults(b *model.Booking) {
	if b.Status == "" {
		b.Status = model.StatusInitial
	}
	for i := range b.Lines {
		if b.Lines[i].ID == "" {
			b.Lines[i].ID = uuid.New().String()
		}
	}
}

func (s *bookingService) sanitize(b *model.Booking) {
	b.TravelReason = sanitizer.SanitizeReasonLabel(b.TravelReason)
	b.CancellationReason = sanitizer.SanitizeReasonLabel(b.CancellationReason)
	b.EarlyCheckInCharge = sanitizer.NormalizeCharge(b.EarlyCheckInCharge)
	b.LateCheckOutCharge = sanitizer.NormalizeCharge(b.LateCheckOutCharge)

	for i := range b.Lines {
		b.Lines[i].Discount = sanitizer.ClampDiscount(b.Lines[i].Discount)
		b.Lines[i].Price = sanitizer.NormalizeCharge(b.Lines[i].Price)
		for j := range b.Lines[i].Guests {
			b.Lines[i].Guests[j].Name = sanitizer.NormalizeName(b.Lines[i].Guests[j].Name)
		}
	}
	for i := range b.ManualServices {
		b.ManualServices[i].Description = sanitizer.TrimAndNormalize(b.ManualServices[i].Description)
		b.ManualServices[i].Amount = sanitizer.NormalizeCharge(b.ManualServices[i].Amount)
	}
}

func (s *bookingService) validate(booking *model.Booking) error {
	if err := s.validator.Validate(booking); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "error", err)
		return apperrors.Validation("Booking validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}

func (s *bookingService) reprice(ctx context.Context, booking *model.Booking) error {
	if err := pricing.Apply(ctx, pricing.RatesFromLines(booking.Lines), booking); err != nil {
		return apperrors.Internal("Failed to price booking", err)
	}
	return nil
}

func (s *bookingService) checkAvailability(ctx context.Context, roomID string, rng model.StayRange, excludeID string) error {
	if roomID == "" {
		return nil
	}

	overlapping, err := s.repo.FindOverlapping(ctx, roomID, rng, excludeID)
	if err != nil {
		return apperrors.Internal("Failed to check room availability", err)
	}
	if len(overlapping) > 0 {
		appErr := apperrors.Conflict(fmt.Sprintf(
			"Room %s is already booked between %s and %s",
			roomID,
			rng.CheckIn.Format(time.RFC3339),
			rng.CheckOut.Format(time.RFC3339),
		))
		appErr.Err = bookingserrors.ErrNotAvailable
		return appErr
	}
	return nil
}

func (s *bookingService) persist(ctx context.Context, booking *model.Booking, expectedWriteDate time.Time) error {
	err := s.repo.ReplaceGuarded(ctx, booking.ID, booking, expectedWriteDate)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrStaleWrite) {
			return apperrors.Conflict(bookingserrors.ErrStaleWrite.Error())
		}
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Booking", booking.ID)
		}
		return apperrors.Internal("Failed to update booking", err)
	}
	return nil
}

func (s *bookingService) translateStateError(err error, from, to model.Status) error {
	switch {
	case errors.Is(err, bookingserrors.ErrInvalidTransition), errors.Is(err, bookingserrors.ErrTerminalState):
		return apperrors.InvalidTransition(from.String(), to.String())
	case errors.Is(err, bookingserrors.ErrMissingRoomAssignment):
		return apperrors.Conflict(bookingserrors.ErrMissingRoomAssignment.Error())
	case errors.Is(err, bookingserrors.ErrPrematureCheckIn):
		return apperrors.Conflict(bookingserrors.ErrPrematureCheckIn.Error())
	case errors.Is(err, bookingserrors.ErrMissingCheckOutDate):
		return apperrors.Validation(bookingserrors.ErrMissingCheckOutDate.Error(), nil)
	default:
		return apperrors.Internal("Failed to change booking status", err)
	}
}
