package service

import (
	"context"
	"fmt"
	"marigold/config"
	"marigold/infras/kafka"
	"marigold/infras/otel"
	"marigold/internal/domains/booking/model"
	"marigold/internal/domains/booking/model/dto"
	"marigold/internal/domains/booking/repository"
	notificationService "marigold/internal/domains/notification/service"
	roomModel "marigold/internal/domains/room/model"
	roomRepo "marigold/internal/domains/room/repository"
	roomTypeModel "marigold/internal/domains/roomtype/model"
	roomTypeRepo "marigold/internal/domains/roomtype/repository"
	"marigold/shared"
	"marigold/shared/cache"
	"marigold/shared/constant"
	gDto "marigold/shared/dto"
	"marigold/shared/failure"
	"marigold/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"

	eventBookingCreated    = "booking.created"
	eventBookingCheckedIn  = "booking.checked_in"
	eventBookingCheckedOut = "booking.checked_out"
	eventBookingCancelled  = "booking.cancelled"
)

// bookingEvent is the message published for every booking state change.
type bookingEvent struct {
	Event   string              `json:"event"`
	Booking dto.BookingResponse `json:"booking"`
}

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.CreateBookingResponse, error)
	GetAll(ctx context.Context, roomID string) (dto.GetBookingsResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	CheckIn(ctx context.Context, id string) (dto.BookingResponse, error)
	CheckOut(ctx context.Context, id string) (dto.BookingResponse, error)
	Cancel(ctx context.Context, id string) (dto.BookingResponse, error)
}

type serviceImpl struct {
	repo         repository.Booking
	roomRepo     roomRepo.Room
	roomTypeRepo roomTypeRepo.RoomType
	notification notificationService.Notification
	kafka        kafka.Client
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(
	repo repository.Booking,
	roomRepo roomRepo.Room,
	roomTypeRepo roomTypeRepo.RoomType,
	notification notificationService.Notification,
	kafkaClient kafka.Client,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:         repo,
		roomRepo:     roomRepo,
		roomTypeRepo: roomTypeRepo,
		notification: notification,
		kafka:        kafkaClient,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.CreateBookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := req.ToModel(user, s.cfg.Hotel.Currency)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse booking request")

		return res, failure.BadRequestFromString(fmt.Sprintf("invalid date format: %v", err)) // nolint:wrapcheck
	}

	if booking.CheckoutDate.Before(booking.CheckinDate) {
		return res, failure.BadRequestFromString("check-out date cannot be before check-in date") // nolint:wrapcheck
	}

	nights := model.Nights(booking.CheckinDate, booking.CheckoutDate)

	// The room type's nightly rate is authoritative; the room's own price
	// only applies when the type row no longer exists.
	roomType, err := s.roomTypeRepo.Get(ctx, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    roomTypeModel.FieldName,
				Operator: gDto.FilterOperatorEq,
				Value:    req.RoomType,
				Table:    roomTypeModel.TableName,
			},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to get room type")

		return res, fmt.Errorf("failed to get room type: %w", err)
	}

	reserved, room, err := s.repo.Reserve(ctx, booking, roomType.PricePerNight, nights)
	if err != nil {
		log.Error().Err(err).Str("room_type", req.RoomType).Msg("failed to reserve room")

		return res, err
	}

	res.Booking.FromModel(reserved)
	res.Room.FromModel(room)

	s.publishAfterCommit(ctx, eventBookingCreated, "New booking",
		fmt.Sprintf("%s booked room %s (%s), %s to %s", reserved.GuestName, reserved.RoomNumber, reserved.RoomType, req.CheckinDate, req.CheckoutDate),
		res.Booking)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, roomID string) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	params := gDto.Latest(constant.MaxBookingRows)

	filter := gDto.FilterGroup{}
	if roomID != constant.Empty {
		filter = shared.FilterByID(roomID, model.FieldRoomID, model.TableName)
	}

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) CheckIn(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckIn")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.getForTransition(ctx, id)
	if err != nil {
		return res, err
	}

	if booking.Status != constant.BookingStatusPending && booking.Status != constant.BookingStatusConfirmed {
		return res, failure.Conflict(fmt.Sprintf("cannot check in booking with status %q", booking.Status)) // nolint:wrapcheck
	}

	now := timezone.Now()
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	fields := map[string]any{
		model.FieldStatus:       constant.BookingStatusCheckedIn,
		model.FieldCheckinTime:  now,
		constant.FieldUpdatedAt: now,
		constant.FieldUpdatedBy: user,
	}

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to check in booking")

		return res, fmt.Errorf("failed to check in booking: %w", err)
	}

	booking.Status = constant.BookingStatusCheckedIn
	booking.CheckinTime = &now
	booking.UpdatedAt = now
	booking.UpdatedBy = user

	s.setRoomStatus(ctx, booking.RoomID, constant.RoomStatusOccupied, user)

	res.FromModel(booking)

	s.publishAfterCommit(ctx, eventBookingCheckedIn, "Guest checked in",
		fmt.Sprintf("%s checked in to room %s", booking.GuestName, booking.RoomNumber), res)

	return res, nil
}

func (s *serviceImpl) CheckOut(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckOut")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.getForTransition(ctx, id)
	if err != nil {
		return res, err
	}

	if booking.IsTerminal() {
		return res, failure.Conflict(fmt.Sprintf("cannot check out booking with status %q", booking.Status)) // nolint:wrapcheck
	}

	now := timezone.Now()
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	fields := map[string]any{
		model.FieldStatus:         constant.BookingStatusCheckedOut,
		model.FieldActualCheckout: now,
		constant.FieldUpdatedAt:   now,
		constant.FieldUpdatedBy:   user,
	}

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to check out booking")

		return res, fmt.Errorf("failed to check out booking: %w", err)
	}

	booking.Status = constant.BookingStatusCheckedOut
	booking.ActualCheckout = &now
	booking.UpdatedAt = now
	booking.UpdatedBy = user

	s.setRoomStatus(ctx, booking.RoomID, constant.RoomStatusAvailable, user)

	res.FromModel(booking)

	s.publishAfterCommit(ctx, eventBookingCheckedOut, "Guest checked out",
		fmt.Sprintf("%s checked out of room %s", booking.GuestName, booking.RoomNumber), res)

	return res, nil
}

func (s *serviceImpl) Cancel(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.getForTransition(ctx, id)
	if err != nil {
		return res, err
	}

	if booking.IsTerminal() {
		return res, failure.Conflict(fmt.Sprintf("cannot cancel booking with status %q", booking.Status)) // nolint:wrapcheck
	}

	now := timezone.Now()
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	fields := map[string]any{
		model.FieldStatus:       constant.BookingStatusCancelled,
		constant.FieldUpdatedAt: now,
		constant.FieldUpdatedBy: user,
	}

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to cancel booking")

		return res, fmt.Errorf("failed to cancel booking: %w", err)
	}

	booking.Status = constant.BookingStatusCancelled
	booking.UpdatedAt = now
	booking.UpdatedBy = user

	s.setRoomStatus(ctx, booking.RoomID, constant.RoomStatusAvailable, user)

	res.FromModel(booking)

	s.publishAfterCommit(ctx, eventBookingCancelled, "Booking cancelled",
		fmt.Sprintf("booking for %s (room %s) was cancelled", booking.GuestName, booking.RoomNumber), res)

	return res, nil
}

func (s *serviceImpl) getForTransition(ctx context.Context, id string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	return booking, nil
}

// setRoomStatus keeps the room's status in step with the booking. The
// booking transition has already been persisted, so a failure here is
// logged and absorbed rather than surfaced to the caller.
func (s *serviceImpl) setRoomStatus(ctx context.Context, roomID, status, user string) {
	fields := map[string]any{
		roomModel.FieldStatus:   status,
		constant.FieldUpdatedAt: timezone.Now(),
		constant.FieldUpdatedBy: user,
	}

	if err := s.roomRepo.Update(ctx, fields, shared.FilterByID(roomID, roomModel.FieldID, roomModel.TableName)); err != nil {
		log.Error().Err(err).Str("room_id", roomID).Str("status", status).Msg("failed to update room status")
	}
}

// publishAfterCommit fans the state change out to the notification sink and
// the event stream, and drops the stale caches. All of it is best-effort:
// the booking write has committed and none of these can undo it.
func (s *serviceImpl) publishAfterCommit(ctx context.Context, event, title, body string, booking dto.BookingResponse) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.notification.Notify(c, title, body, booking); err != nil {
			log.Error().Err(err).Str("event", event).Msg("failed to record notification")
		}

		err := s.kafka.SendMessages(c, s.cfg.Kafka.Topics.BookingEvents, kafka.Message{
			Key:   booking.ID,
			Value: bookingEvent{Event: event, Booking: booking},
		})
		if err != nil {
			log.Error().Err(err).Str("event", event).Msg("failed to publish booking event")
		}

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, booking.ID)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()
}
