package dto

import (
	"time"

	"lodge/internal/domains/guest/model"
	"lodge/shared"
	"lodge/shared/constant"
	gDto "lodge/shared/dto"
	gModel "lodge/shared/model"
	"lodge/shared/timezone"

	"github.com/google/uuid"
)

type CheckInRequest struct {
	Name           string  `json:"name"             validate:"required,max=100"`
	Phone          string  `json:"phone"            validate:"required,max=20"`
	Email          string  `json:"email"            validate:"omitempty,email,max=100"`
	IDNumber       string  `json:"id_number"        validate:"required,max=50"`
	Address        string  `json:"address"          validate:"omitempty,max=200"`
	Nationality    string  `json:"nationality"      validate:"omitempty,max=50"`
	CheckInDate    string  `json:"check_in_date"    validate:"required"`
	CheckOutDate   string  `json:"check_out_date"   validate:"required"`
	RoomNumber     string  `json:"room_number"      validate:"required,max=20"`
	NumberOfGuests int     `json:"number_of_guests" validate:"required,min=1"`
	TotalAmount    float64 `json:"total_amount"     validate:"omitempty,min=0"`
	BookingID      *string `json:"booking_id"       validate:"omitempty"`
}

func (c *CheckInRequest) ParseDates() (checkIn, checkOut time.Time, err error) {
	checkIn, err = time.Parse(constant.DateOnlyFormat, c.CheckInDate)
	if err != nil {
		return time.Time{}, time.Time{}, err //nolint:wrapcheck
	}

	checkOut, err = time.Parse(constant.DateOnlyFormat, c.CheckOutDate)
	if err != nil {
		return time.Time{}, time.Time{}, err //nolint:wrapcheck
	}

	return checkIn, checkOut, nil
}

func (c *CheckInRequest) ToModel(user string, checkIn, checkOut time.Time) model.GuestDetail {
	return model.GuestDetail{
		ID:             uuid.NewString(),
		Name:           c.Name,
		Phone:          c.Phone,
		Email:          c.Email,
		IDNumber:       c.IDNumber,
		Address:        c.Address,
		Nationality:    c.Nationality,
		CheckInDate:    checkIn,
		CheckOutDate:   checkOut,
		RoomNumber:     c.RoomNumber,
		NumberOfGuests: c.NumberOfGuests,
		TotalAmount:    c.TotalAmount,
		Status:         model.StatusCheckedIn,
		BookingID:      c.BookingID,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type GuestResponse struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Phone          string  `json:"phone"`
	Email          string  `json:"email"`
	IDNumber       string  `json:"id_number"`
	Address        string  `json:"address"`
	Nationality    string  `json:"nationality"`
	CheckInDate    string  `json:"check_in_date"`
	CheckOutDate   string  `json:"check_out_date"`
	RoomNumber     string  `json:"room_number"`
	NumberOfGuests int     `json:"number_of_guests"`
	TotalAmount    float64 `json:"total_amount"`
	Status         string  `json:"status"`
	BookingID      *string `json:"booking_id,omitempty"`
	gDto.Metadata
}

func (r *GuestResponse) FromModel(model model.GuestDetail) {
	r.ID = model.ID
	r.Name = model.Name
	r.Phone = model.Phone
	r.Email = model.Email
	r.IDNumber = model.IDNumber
	r.Address = model.Address
	r.Nationality = model.Nationality
	r.CheckInDate = model.CheckInDate.Format(constant.DateOnlyFormat)
	r.CheckOutDate = model.CheckOutDate.Format(constant.DateOnlyFormat)
	r.RoomNumber = model.RoomNumber
	r.NumberOfGuests = model.NumberOfGuests
	r.TotalAmount = model.TotalAmount
	r.Status = model.Status
	r.BookingID = model.BookingID
	r.Metadata.FromModel(model.Metadata)
}

type GetGuestsResponse struct {
	Guests    []GuestResponse `json:"guests"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetGuestsResponse) FromModels(models []model.GuestDetail, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Guests = make([]GuestResponse, len(models))
	for i, mod := range models {
		r.Guests[i].FromModel(mod)
	}
}
