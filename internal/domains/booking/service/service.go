package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lodge/config"
	"lodge/infras/kafka"
	"lodge/infras/otel"
	"lodge/infras/payment"
	"lodge/internal/domains/booking/model"
	"lodge/internal/domains/booking/model/dto"
	"lodge/internal/domains/booking/repository"
	roomModel "lodge/internal/domains/room/model"
	roomRepo "lodge/internal/domains/room/repository"
	"lodge/shared"
	"lodge/shared/cache"
	"lodge/shared/constant"
	"lodge/shared/currency"
	gDto "lodge/shared/dto"
	"lodge/shared/failure"
	"lodge/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"
	cacheAvailability  = "booking:availability"

	EventBookingCreated       = "booking.created"
	EventBookingConfirmed     = "booking.confirmed"
	EventBookingStatusChanged = "booking.status_changed"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	CheckAvailability(ctx context.Context, roomID, start, end string) (dto.AvailabilityResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	Confirm(ctx context.Context, id string) (dto.ConfirmBookingResponse, error)
	Transition(ctx context.Context, id string, req dto.UpdateBookingStatusRequest) (dto.BookingResponse, error)
}

type serviceImpl struct {
	repo     repository.Booking
	roomRepo roomRepo.Room
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
	events   kafka.Client
	payments payment.Gateway
}

func New(
	repo repository.Booking,
	roomRepo roomRepo.Room,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	events kafka.Client,
	payments payment.Gateway,
) Booking {
	return &serviceImpl{
		repo:     repo,
		roomRepo: roomRepo,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
		events:   events,
		payments: payments,
	}
}

func parseStayRange(start, end string) (checkIn, checkOut time.Time, err error) {
	checkIn, err = time.Parse(constant.DateOnlyFormat, start)
	if err != nil {
		return time.Time{}, time.Time{}, failure.BadRequestFromString("check-in date must be formatted as YYYY-MM-DD") //nolint:wrapcheck
	}

	checkOut, err = time.Parse(constant.DateOnlyFormat, end)
	if err != nil {
		return time.Time{}, time.Time{}, failure.BadRequestFromString("check-out date must be formatted as YYYY-MM-DD") //nolint:wrapcheck
	}

	if !checkOut.After(checkIn) {
		return time.Time{}, time.Time{}, failure.BadRequestFromString("check-out date must be after check-in date") //nolint:wrapcheck
	}

	return checkIn, checkOut, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	customerID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	checkIn, checkOut, err := parseStayRange(req.CheckInDate, req.CheckOutDate)
	if err != nil {
		return res, err
	}

	booking := req.ToModel(customerID, checkIn, checkOut)

	created, err := s.repo.CreateIfAvailable(ctx, booking)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return res, failure.BadRequestFromString("room does not exist") //nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	if !created {
		return res, failure.Conflict("room is not available for the selected dates") //nolint:wrapcheck
	}

	res.FromModel(booking)

	s.invalidate(ctx, booking.ID)
	s.publish(ctx, EventBookingCreated, booking)

	return res, nil
}

func (s *serviceImpl) CheckAvailability(ctx context.Context, roomID, start, end string) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckAvailability")
	defer scope.End()
	defer scope.TraceIfError(err)

	checkIn, checkOut, err := parseStayRange(start, end)
	if err != nil {
		return res, err
	}

	cacheKey := shared.BuildCacheKey(cacheAvailability, roomID, start, end)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for availability")

		return res, nil
	}

	roomExists, err := s.roomRepo.Exist(ctx, shared.FilterByID(roomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if room exists")

		return res, fmt.Errorf("failed to check if room exists: %w", err)
	}

	if !roomExists {
		return res, failure.NotFound("room not found") //nolint:wrapcheck
	}

	overlapping, err := s.repo.CountOverlapping(ctx, roomID, checkIn, checkOut)
	if err != nil {
		log.Error().Err(err).Msg("failed to check availability")

		return res, fmt.Errorf("failed to check availability: %w", err)
	}

	res = dto.AvailabilityResponse{
		RoomID:    roomID,
		StartDate: start,
		EndDate:   end,
		Available: overlapping == 0,
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save availability to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
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

	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return res, err
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

// Confirm charges the booking total through the payment gateway and moves the
// booking PENDING -> CONFIRMED. The charge happens before the status flip; a
// declined or failed charge leaves the booking untouched.
func (s *serviceImpl) Confirm(ctx context.Context, id string) (res dto.ConfirmBookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Confirm")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return res, err
	}

	if !model.CanTransition(booking.Status, model.StatusConfirmed) {
		return res, failure.Conflict(fmt.Sprintf("cannot confirm booking in status %s", booking.Status)) //nolint:wrapcheck
	}

	room, err := s.roomRepo.Get(ctx, shared.FilterByID(booking.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room for booking")

		return res, fmt.Errorf("failed to get room for booking: %w", err)
	}

	if room.ID == constant.Empty {
		return res, failure.NotFound("room not found") //nolint:wrapcheck
	}

	amountINR := currency.USDToINR(room.BasePrice * float64(booking.Nights()))

	charge, err := s.payments.Charge(ctx, payment.ChargeRequest{
		BookingID:   booking.ID,
		AmountINR:   amountINR,
		Description: fmt.Sprintf("room %s, %d night stay", room.Number, booking.Nights()),
	})
	if err != nil {
		log.Error().Err(err).Str("booking_id", id).Msg("payment charge failed")

		return res, fmt.Errorf("payment charge failed: %w", err)
	}

	if !charge.Approved {
		return res, failure.BadRequestFromString("payment was declined") //nolint:wrapcheck
	}

	if err = s.updateStatus(ctx, &booking, model.StatusConfirmed); err != nil {
		return res, err
	}

	s.invalidate(ctx, id)
	s.publish(ctx, EventBookingConfirmed, booking)

	res.Booking.FromModel(booking)
	res.PaymentReference = charge.Reference
	res.AmountINR = amountINR

	return res, nil
}

// Transition applies the status state machine. Invalid moves, including any
// move out of a terminal status, are rejected with a conflict.
func (s *serviceImpl) Transition(ctx context.Context, id string, req dto.UpdateBookingStatusRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Transition")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return res, err
	}

	if !model.CanTransition(booking.Status, req.Status) {
		return res, failure.Conflict(fmt.Sprintf("cannot transition booking from %s to %s", booking.Status, req.Status)) //nolint:wrapcheck
	}

	if err = s.updateStatus(ctx, &booking, req.Status); err != nil {
		return res, err
	}

	s.invalidate(ctx, id)
	s.publish(ctx, EventBookingStatusChanged, booking)

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) getBooking(ctx context.Context, id string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found") //nolint:wrapcheck
	}

	return booking, nil
}

func (s *serviceImpl) updateStatus(ctx context.Context, booking *model.Booking, status string) error {
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	updatedFields := map[string]any{
		model.FieldStatus:        status,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	filter := shared.FilterByID(booking.ID, model.FieldID, model.TableName)

	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update booking status")

		return fmt.Errorf("failed to update booking status: %w", err)
	}

	booking.Status = status
	booking.ModifiedAt = timezone.Now()
	booking.ModifiedBy = user

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
		shared.InvalidateCaches(c, s.cache, cacheAvailability)
	}()
}

// publish emits a lifecycle event. Best-effort: a broker outage never fails
// the request that triggered the event.
func (s *serviceImpl) publish(ctx context.Context, eventType string, booking model.Booking) {
	go func() {
		c := context.WithoutCancel(ctx)

		message := kafka.Message{
			Key:   booking.ID,
			Value: dto.NewBookingEvent(eventType, booking),
		}

		if err := s.events.SendMessages(c, constant.KafkaTopicBookingEvents, message); err != nil {
			log.Warn().Err(err).Str("event", eventType).Str("booking_id", booking.ID).Msg("failed to publish booking event")
		}
	}()
}
