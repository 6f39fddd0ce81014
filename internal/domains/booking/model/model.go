package model

import (
	"time"

	"lodge/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID           = "id"
	FieldCustomerID   = "customer_id"
	FieldRoomID       = "room_id"
	FieldCheckInDate  = "check_in_date"
	FieldCheckOutDate = "check_out_date"
	FieldStatus       = "status"
)

// Booking holds a half-open stay [CheckInDate, CheckOutDate): the guest
// occupies the night of check-in but not the night of check-out, so a stay
// ending on a date never conflicts with one starting on that date.
type Booking struct {
	ID           string    `db:"id"`
	CustomerID   string    `db:"customer_id"`
	RoomID       string    `db:"room_id"`
	CheckInDate  time.Time `db:"check_in_date"`
	CheckOutDate time.Time `db:"check_out_date"`
	Status       string    `db:"status"`
	model.Metadata
}

// Nights is the number of billable nights of the stay.
func (b *Booking) Nights() int {
	return int(b.CheckOutDate.Sub(b.CheckInDate).Hours() / 24)
}
