package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"lodge/config"
	kafkaMocks "lodge/infras/kafka/mocks"
	"lodge/infras/otel/mocks"
	"lodge/infras/payment"
	paymentMocks "lodge/infras/payment/mocks"
	bookingMocks "lodge/internal/domains/booking/mocks"
	"lodge/internal/domains/booking/model"
	"lodge/internal/domains/booking/model/dto"
	"lodge/internal/domains/booking/repository"
	"lodge/internal/domains/booking/service"
	roomMocks "lodge/internal/domains/room/mocks"
	roomModel "lodge/internal/domains/room/model"
	cacheMocks "lodge/shared/cache/mocks"
	"lodge/shared/constant"
	"lodge/shared/failure"
	gModel "lodge/shared/model"
	"lodge/shared/timezone"
)

type bookingFixture struct {
	repo     *bookingMocks.MockBooking
	roomRepo *roomMocks.MockRoom
	cache    *cacheMocks.MockRedisCache
	events   *kafkaMocks.MockClient
	payments *paymentMocks.MockGateway
	svc      service.Booking
}

func newBookingFixture(ctrl *gomock.Controller) bookingFixture {
	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockRoomRepo := roomMocks.NewMockRoom(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockEvents := kafkaMocks.NewMockClient(ctrl)
	mockPayments := paymentMocks.NewMockGateway(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockRoomRepo, cfg, mockCache, mockOtel, mockEvents, mockPayments)

	return bookingFixture{
		repo:     mockRepo,
		roomRepo: mockRoomRepo,
		cache:    mockCache,
		events:   mockEvents,
		payments: mockPayments,
		svc:      svc,
	}
}

// expectInvalidation covers the cache cleanup and event publishing that run in
// background goroutines after a successful mutation.
func (f bookingFixture) expectInvalidation() {
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.events.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
}

func pendingBooking() model.Booking {
	return model.Booking{
		ID:           "booking-id-123",
		CustomerID:   "customer-id-123",
		RoomID:       "room-id-123",
		CheckInDate:  time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		CheckOutDate: time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
		Status:       model.StatusPending,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  "customer-id-123",
			ModifiedBy: "customer-id-123",
		},
	}
}

func TestBookingService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newBookingFixture(ctrl)

	tests := []struct {
		name      string
		req       dto.CreateBookingRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful creation",
			req: dto.CreateBookingRequest{
				RoomID:       "room-id-123",
				CheckInDate:  "2026-03-01",
				CheckOutDate: "2026-03-03",
			},
			setupMock: func() {
				f.repo.EXPECT().
					CreateIfAvailable(gomock.Any(), gomock.Any()).
					Return(true, nil)

				f.expectInvalidation()
			},
			wantErr: false,
		},
		{
			name: "room does not exist",
			req: dto.CreateBookingRequest{
				RoomID:       "missing-room",
				CheckInDate:  "2026-03-01",
				CheckOutDate: "2026-03-03",
			},
			setupMock: func() {
				f.repo.EXPECT().
					CreateIfAvailable(gomock.Any(), gomock.Any()).
					Return(false, repository.ErrRoomNotFound)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "dates already taken",
			req: dto.CreateBookingRequest{
				RoomID:       "room-id-123",
				CheckInDate:  "2026-03-01",
				CheckOutDate: "2026-03-03",
			},
			setupMock: func() {
				f.repo.EXPECT().
					CreateIfAvailable(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "malformed check-in date",
			req: dto.CreateBookingRequest{
				RoomID:       "room-id-123",
				CheckInDate:  "03/01/2026",
				CheckOutDate: "2026-03-03",
			},
			setupMock: func() {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "check-out not after check-in",
			req: dto.CreateBookingRequest{
				RoomID:       "room-id-123",
				CheckInDate:  "2026-03-03",
				CheckOutDate: "2026-03-03",
			},
			setupMock: func() {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "repository error",
			req: dto.CreateBookingRequest{
				RoomID:       "room-id-123",
				CheckInDate:  "2026-03-01",
				CheckOutDate: "2026-03-03",
			},
			setupMock: func() {
				f.repo.EXPECT().
					CreateIfAvailable(gomock.Any(), gomock.Any()).
					Return(false, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "customer-id-123")
			res, err := f.svc.Create(ctx, tt.req)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.req.RoomID, res.RoomID)
				assert.Equal(t, model.StatusPending, res.Status)
				assert.Equal(t, 2, res.Nights)
			}
		})
	}
}

func TestBookingService_CheckAvailability(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newBookingFixture(ctrl)

	tests := []struct {
		name          string
		roomID        string
		start         string
		end           string
		setupMock     func()
		wantErr       bool
		wantCode      int
		wantAvailable bool
	}{
		{
			name:   "cache hit",
			roomID: "room-id-123",
			start:  "2026-03-01",
			end:    "2026-03-03",
			setupMock: func() {
				f.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name:   "no overlapping bookings",
			roomID: "room-id-123",
			start:  "2026-03-01",
			end:    "2026-03-03",
			setupMock: func() {
				f.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				f.roomRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				f.repo.EXPECT().
					CountOverlapping(gomock.Any(), "room-id-123", gomock.Any(), gomock.Any()).
					Return(0, nil)

				f.cache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr:       false,
			wantAvailable: true,
		},
		{
			name:   "overlapping booking blocks the range",
			roomID: "room-id-123",
			start:  "2026-03-01",
			end:    "2026-03-03",
			setupMock: func() {
				f.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				f.roomRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				f.repo.EXPECT().
					CountOverlapping(gomock.Any(), "room-id-123", gomock.Any(), gomock.Any()).
					Return(1, nil)

				f.cache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr:       false,
			wantAvailable: false,
		},
		{
			name:   "room not found",
			roomID: "missing-room",
			start:  "2026-03-01",
			end:    "2026-03-03",
			setupMock: func() {
				f.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				f.roomRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name:      "invalid date range",
			roomID:    "room-id-123",
			start:     "2026-03-03",
			end:       "2026-03-01",
			setupMock: func() {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := f.svc.CheckAvailability(context.Background(), tt.roomID, tt.start, tt.end)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}

				return
			}

			assert.NoError(t, err)

			if tt.name != "cache hit" {
				assert.Equal(t, tt.roomID, res.RoomID)
				assert.Equal(t, tt.wantAvailable, res.Available)
			}
		})
	}
}

func TestBookingService_Confirm(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newBookingFixture(ctrl)

	room := roomModel.Room{
		ID:        "room-id-123",
		Number:    "101",
		Type:      roomModel.TypeStandard,
		Status:    roomModel.StatusAvailable,
		BasePrice: 100,
	}

	tests := []struct {
		name       string
		id         string
		setupMock  func()
		wantErr    bool
		wantCode   int
		wantAmount int64
	}{
		{
			name: "successful confirmation charges two nights",
			id:   "booking-id-123",
			setupMock: func() {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingBooking(), nil)

				f.roomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(room, nil)

				f.payments.EXPECT().
					Charge(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, req payment.ChargeRequest) (payment.ChargeResult, error) {
						assert.Equal(t, "booking-id-123", req.BookingID)
						assert.Equal(t, int64(16666), req.AmountINR)

						return payment.ChargeResult{
							Reference: "pay-ref-123",
							Approved:  true,
							PaidAt:    timezone.Now(),
						}, nil
					})

				f.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				f.expectInvalidation()
			},
			wantErr:    false,
			wantAmount: 16666,
		},
		{
			name: "already confirmed",
			id:   "booking-id-123",
			setupMock: func() {
				confirmed := pendingBooking()
				confirmed.Status = model.StatusConfirmed

				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(confirmed, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "cancelled booking cannot be confirmed",
			id:   "booking-id-123",
			setupMock: func() {
				cancelled := pendingBooking()
				cancelled.Status = model.StatusCancelled

				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(cancelled, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "payment declined",
			id:   "booking-id-123",
			setupMock: func() {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingBooking(), nil)

				f.roomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(room, nil)

				f.payments.EXPECT().
					Charge(gomock.Any(), gomock.Any()).
					Return(payment.ChargeResult{Approved: false}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "booking not found",
			id:   "missing-booking",
			setupMock: func() {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "room row missing",
			id:   "booking-id-123",
			setupMock: func() {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingBooking(), nil)

				f.roomRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(roomModel.Room{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "customer-id-123")
			res, err := f.svc.Confirm(ctx, tt.id)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, model.StatusConfirmed, res.Booking.Status)
			assert.Equal(t, "pay-ref-123", res.PaymentReference)
			assert.Equal(t, tt.wantAmount, res.AmountINR)
		})
	}
}

func TestBookingService_Transition(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newBookingFixture(ctrl)

	tests := []struct {
		name       string
		id         string
		req        dto.UpdateBookingStatusRequest
		setupMock  func()
		wantErr    bool
		wantCode   int
		wantStatus string
	}{
		{
			name: "cancel a pending booking",
			id:   "booking-id-123",
			req:  dto.UpdateBookingStatusRequest{Status: model.StatusCancelled},
			setupMock: func() {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingBooking(), nil)

				f.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				f.expectInvalidation()
			},
			wantErr:    false,
			wantStatus: model.StatusCancelled,
		},
		{
			name: "check out a checked in booking",
			id:   "booking-id-123",
			req:  dto.UpdateBookingStatusRequest{Status: model.StatusCheckedOut},
			setupMock: func() {
				checkedIn := pendingBooking()
				checkedIn.Status = model.StatusCheckedIn

				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(checkedIn, nil)

				f.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				f.expectInvalidation()
			},
			wantErr:    false,
			wantStatus: model.StatusCheckedOut,
		},
		{
			name: "pending cannot jump to checked in",
			id:   "booking-id-123",
			req:  dto.UpdateBookingStatusRequest{Status: model.StatusCheckedIn},
			setupMock: func() {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingBooking(), nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "terminal booking stays terminal",
			id:   "booking-id-123",
			req:  dto.UpdateBookingStatusRequest{Status: model.StatusPending},
			setupMock: func() {
				done := pendingBooking()
				done.Status = model.StatusCheckedOut

				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(done, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "booking not found",
			id:   "missing-booking",
			req:  dto.UpdateBookingStatusRequest{Status: model.StatusCancelled},
			setupMock: func() {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "receptionist-id")
			res, err := f.svc.Transition(ctx, tt.id, tt.req)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.wantStatus, res.Status)
		})
	}
}

func TestBookingService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newBookingFixture(ctrl)

	tests := []struct {
		name      string
		id        string
		setupMock func()
		wantErr   bool
		wantID    string
	}{
		{
			name: "cache hit",
			id:   "booking-id-123",
			setupMock: func() {
				f.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "cache miss, found in db",
			id:   "booking-id-123",
			setupMock: func() {
				f.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingBooking(), nil)

				f.cache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
			wantID:  "booking-id-123",
		},
		{
			name: "booking not found",
			id:   "missing-booking",
			setupMock: func() {
				f.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := f.svc.Get(context.Background(), tt.id)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)

				if tt.wantID != "" {
					assert.Equal(t, tt.wantID, res.ID)
				}
			}
		})
	}
}
