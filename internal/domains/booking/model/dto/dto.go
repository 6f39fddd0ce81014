package dto

import (
	"time"

	"lodge/internal/domains/booking/model"
	"lodge/shared"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	gModel "lodge/shared/model"
	"lodge/shared/timezone"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	RoomID       string `json:"room_id"        validate:"required"`
	CheckInDate  string `json:"check_in_date"  validate:"required"`
	CheckOutDate string `json:"check_out_date" validate:"required"`
}

func (c *CreateBookingRequest) ToModel(customerID string, checkIn, checkOut time.Time) model.Booking {
	return model.Booking{
		ID:           uuid.NewString(),
		CustomerID:   customerID,
		RoomID:       c.RoomID,
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		Status:       model.StatusPending,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  customerID,
			ModifiedBy: customerID,
		},
	}
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING CONFIRMED CHECKED_IN CHECKED_OUT CANCELLED"`
}

type BookingResponse struct {
	ID           string `json:"id"`
	CustomerID   string `json:"customer_id"`
	RoomID       string `json:"room_id"`
	CheckInDate  string `json:"check_in_date"`
	CheckOutDate string `json:"check_out_date"`
	Status       string `json:"status"`
	Nights       int    `json:"nights"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.CustomerID = model.CustomerID
	r.RoomID = model.RoomID
	r.CheckInDate = model.CheckInDate.Format(constant.DateOnlyFormat)
	r.CheckOutDate = model.CheckOutDate.Format(constant.DateOnlyFormat)
	r.Status = model.Status
	r.Nights = model.Nights()
	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

type AvailabilityResponse struct {
	RoomID    string `json:"room_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Available bool   `json:"available"`
}

type ConfirmBookingResponse struct {
	Booking          BookingResponse `json:"booking"`
	PaymentReference string          `json:"payment_reference"`
	AmountINR        int64           `json:"amount_inr"`
}

// BookingEvent is the payload published to the booking events topic.
type BookingEvent struct {
	EventType    string `json:"event_type"`
	BookingID    string `json:"booking_id"`
	CustomerID   string `json:"customer_id"`
	RoomID       string `json:"room_id"`
	Status       string `json:"status"`
	CheckInDate  string `json:"check_in_date"`
	CheckOutDate string `json:"check_out_date"`
	OccurredAt   string `json:"occurred_at"`
}

func NewBookingEvent(eventType string, booking model.Booking) BookingEvent {
	return BookingEvent{
		EventType:    eventType,
		BookingID:    booking.ID,
		CustomerID:   booking.CustomerID,
		RoomID:       booking.RoomID,
		Status:       booking.Status,
		CheckInDate:  booking.CheckInDate.Format(constant.DateOnlyFormat),
		CheckOutDate: booking.CheckOutDate.Format(constant.DateOnlyFormat),
		OccurredAt:   timezone.Format(timezone.Now(), constant.DateFormat),
	}
}
