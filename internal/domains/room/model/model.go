package model

import "lodge/shared/model"

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID        = "id"
	FieldNumber    = "number"
	FieldType      = "type"
	FieldStatus    = "status"
	FieldBasePrice = "base_price"
	FieldImageURL  = "image_url"
)

const (
	TypeStandard  = "Standard"
	TypeDeluxe    = "Deluxe"
	TypeSuite     = "Suite"
	TypePenthouse = "Penthouse"
)

// Room.Status is an operational housekeeping field maintained by staff. Date
// availability is answered by the booking ledger, not by this field.
const (
	StatusAvailable   = "AVAILABLE"
	StatusOccupied    = "OCCUPIED"
	StatusCleaning    = "CLEANING"
	StatusMaintenance = "MAINTENANCE"
)

type Room struct {
	ID        string  `db:"id"`
	Number    string  `db:"number"`
	Type      string  `db:"type"`
	Status    string  `db:"status"`
	BasePrice float64 `db:"base_price"`
	ImageURL  string  `db:"image_url"`
	model.Metadata
}
