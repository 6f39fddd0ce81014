package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"lodge/config"
	"lodge/infras/otel/mocks"
	bookingModel "lodge/internal/domains/booking/model"
	bookingDto "lodge/internal/domains/booking/model/dto"
	bookingSvcMocks "lodge/internal/domains/booking/service/mocks"
	guestMocks "lodge/internal/domains/guest/mocks"
	"lodge/internal/domains/guest/model"
	"lodge/internal/domains/guest/model/dto"
	"lodge/internal/domains/guest/service"
	roomMocks "lodge/internal/domains/room/mocks"
	cacheMocks "lodge/shared/cache/mocks"
	"lodge/shared/constant"
	"lodge/shared/failure"
	gModel "lodge/shared/model"
	"lodge/shared/timezone"
)

type guestFixture struct {
	repo     *guestMocks.MockGuest
	roomRepo *roomMocks.MockRoom
	bookings *bookingSvcMocks.MockBooking
	cache    *cacheMocks.MockRedisCache
	svc      service.Guest
}

func newGuestFixture(ctrl *gomock.Controller) guestFixture {
	mockRepo := guestMocks.NewMockGuest(ctrl)
	mockRoomRepo := roomMocks.NewMockRoom(ctrl)
	mockBookings := bookingSvcMocks.NewMockBooking(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockRoomRepo, mockBookings, cfg, mockCache, mockOtel)

	return guestFixture{
		repo:     mockRepo,
		roomRepo: mockRoomRepo,
		bookings: mockBookings,
		cache:    mockCache,
		svc:      svc,
	}
}

func (f guestFixture) expectInvalidation() {
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
}

func checkedInGuest() model.GuestDetail {
	return model.GuestDetail{
		ID:             "guest-id-123",
		Name:           "John Doe",
		Phone:          "+6281234567890",
		Email:          "john@example.com",
		IDNumber:       "ID-998877",
		CheckInDate:    timezone.Now(),
		CheckOutDate:   timezone.Now().AddDate(0, 0, 2),
		RoomNumber:     "101",
		NumberOfGuests: 2,
		TotalAmount:    200,
		Status:         model.StatusCheckedIn,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  "receptionist-id",
			ModifiedBy: "receptionist-id",
		},
	}
}

func TestGuestService_CheckIn(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newGuestFixture(ctrl)

	bookingID := "booking-id-123"

	validReq := func() dto.CheckInRequest {
		return dto.CheckInRequest{
			Name:           "John Doe",
			Phone:          "+6281234567890",
			IDNumber:       "ID-998877",
			CheckInDate:    "2026-03-01",
			CheckOutDate:   "2026-03-03",
			RoomNumber:     "101",
			NumberOfGuests: 2,
			TotalAmount:    200,
		}
	}

	tests := []struct {
		name      string
		req       dto.CheckInRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "walk-in check-in",
			req:  validReq(),
			setupMock: func() {
				f.roomRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				f.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)

				f.expectInvalidation()
			},
			wantErr: false,
		},
		{
			name: "check-in with linked booking",
			req: func() dto.CheckInRequest {
				req := validReq()
				req.BookingID = &bookingID

				return req
			}(),
			setupMock: func() {
				f.roomRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				f.bookings.EXPECT().
					Transition(gomock.Any(), bookingID, bookingDto.UpdateBookingStatusRequest{
						Status: bookingModel.StatusCheckedIn,
					}).
					Return(bookingDto.BookingResponse{}, nil)

				f.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)

				f.expectInvalidation()
			},
			wantErr: false,
		},
		{
			name: "linked booking in wrong state rejects check-in",
			req: func() dto.CheckInRequest {
				req := validReq()
				req.BookingID = &bookingID

				return req
			}(),
			setupMock: func() {
				f.roomRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				f.bookings.EXPECT().
					Transition(gomock.Any(), bookingID, gomock.Any()).
					Return(bookingDto.BookingResponse{}, failure.Conflict("cannot transition booking from PENDING to CHECKED_IN"))
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "unknown room number",
			req:  validReq(),
			setupMock: func() {
				f.roomRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "malformed dates",
			req: func() dto.CheckInRequest {
				req := validReq()
				req.CheckInDate = "01-03-2026"

				return req
			}(),
			setupMock: func() {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "check-out not after check-in",
			req: func() dto.CheckInRequest {
				req := validReq()
				req.CheckOutDate = req.CheckInDate

				return req
			}(),
			setupMock: func() {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "repository error",
			req:  validReq(),
			setupMock: func() {
				f.roomRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				f.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "receptionist-id")
			res, err := f.svc.CheckIn(ctx, tt.req)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}

				return
			}

			assert.NoError(t, err)
			assert.NotEmpty(t, res.ID)
			assert.Equal(t, model.StatusCheckedIn, res.Status)
			assert.Equal(t, tt.req.RoomNumber, res.RoomNumber)
		})
	}
}

func TestGuestService_CheckOut(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newGuestFixture(ctrl)

	bookingID := "booking-id-123"

	tests := []struct {
		name      string
		id        string
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful check-out",
			id:   "guest-id-123",
			setupMock: func() {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(checkedInGuest(), nil)

				f.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				f.expectInvalidation()
			},
			wantErr: false,
		},
		{
			name: "check-out settles the linked booking",
			id:   "guest-id-123",
			setupMock: func() {
				guest := checkedInGuest()
				guest.BookingID = &bookingID

				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(guest, nil)

				f.bookings.EXPECT().
					Transition(gomock.Any(), bookingID, bookingDto.UpdateBookingStatusRequest{
						Status: bookingModel.StatusCheckedOut,
					}).
					Return(bookingDto.BookingResponse{}, nil)

				f.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				f.expectInvalidation()
			},
			wantErr: false,
		},
		{
			name: "linked booking failure does not block check-out",
			id:   "guest-id-123",
			setupMock: func() {
				guest := checkedInGuest()
				guest.BookingID = &bookingID

				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(guest, nil)

				f.bookings.EXPECT().
					Transition(gomock.Any(), bookingID, gomock.Any()).
					Return(bookingDto.BookingResponse{}, failure.Conflict("cannot transition booking from CANCELLED to CHECKED_OUT"))

				f.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				f.expectInvalidation()
			},
			wantErr: false,
		},
		{
			name: "already checked out",
			id:   "guest-id-123",
			setupMock: func() {
				guest := checkedInGuest()
				guest.Status = model.StatusCheckedOut

				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(guest, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "guest not found",
			id:   "missing-guest",
			setupMock: func() {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.GuestDetail{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "receptionist-id")
			res, err := f.svc.CheckOut(ctx, tt.id)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, model.StatusCheckedOut, res.Status)
		})
	}
}

func TestGuestService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newGuestFixture(ctrl)

	tests := []struct {
		name      string
		id        string
		setupMock func()
		wantErr   bool
		wantID    string
	}{
		{
			name: "cache hit",
			id:   "guest-id-123",
			setupMock: func() {
				f.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "cache miss, found in db",
			id:   "guest-id-123",
			setupMock: func() {
				f.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(checkedInGuest(), nil)

				f.cache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
			wantID:  "guest-id-123",
		},
		{
			name: "guest not found",
			id:   "missing-guest",
			setupMock: func() {
				f.cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.GuestDetail{}, nil)
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
