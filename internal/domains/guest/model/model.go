package model

import (
	"time"

	"lodge/shared/model"
)

const (
	TableName  = "guest_details"
	EntityName = "guest"

	FieldID             = "id"
	FieldName           = "name"
	FieldPhone          = "phone"
	FieldEmail          = "email"
	FieldIDNumber       = "id_number"
	FieldAddress        = "address"
	FieldNationality    = "nationality"
	FieldCheckInDate    = "check_in_date"
	FieldCheckOutDate   = "check_out_date"
	FieldRoomNumber     = "room_number"
	FieldNumberOfGuests = "number_of_guests"
	FieldTotalAmount    = "total_amount"
	FieldStatus         = "status"
	FieldBookingID      = "booking_id"
)

const (
	StatusCheckedIn  = "CHECKED_IN"
	StatusCheckedOut = "CHECKED_OUT"
)

// GuestDetail is the reception-desk record of a stay. Records are never
// deleted; check-out only flips the status.
type GuestDetail struct {
	ID             string    `db:"id"`
	Name           string    `db:"name"`
	Phone          string    `db:"phone"`
	Email          string    `db:"email"`
	IDNumber       string    `db:"id_number"`
	Address        string    `db:"address"`
	Nationality    string    `db:"nationality"`
	CheckInDate    time.Time `db:"check_in_date"`
	CheckOutDate   time.Time `db:"check_out_date"`
	RoomNumber     string    `db:"room_number"`
	NumberOfGuests int       `db:"number_of_guests"`
	TotalAmount    float64   `db:"total_amount"`
	Status         string    `db:"status"`
	BookingID      *string   `db:"booking_id"`
	model.Metadata
}
