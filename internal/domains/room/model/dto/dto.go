package dto

import (
	"mime/multipart"

	"lodge/internal/domains/room/model"
	"lodge/shared"
	"lodge/shared/currency"
	gDto "lodge/shared/dto"
	gModel "lodge/shared/model"
	"lodge/shared/timezone"

	"github.com/google/uuid"
)

type CreateRoomRequest struct {
	Number    string   `json:"number"     validate:"required,max=20"`
	Type      string   `json:"type"       validate:"required,oneof=Standard Deluxe Suite Penthouse"`
	Status    string   `json:"status"     validate:"omitempty,oneof=AVAILABLE OCCUPIED CLEANING MAINTENANCE"`
	BasePrice *float64 `json:"base_price" validate:"required,min=0"`
}

func (c *CreateRoomRequest) ToModel(user string) model.Room {
	status := model.StatusAvailable
	if c.Status != "" {
		status = c.Status
	}

	return model.Room{
		ID:        uuid.NewString(),
		Number:    c.Number,
		Type:      c.Type,
		Status:    status,
		BasePrice: *c.BasePrice,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateRoomRequest struct {
	Number    string   `db:"number"     json:"number"     validate:"omitempty,max=20"`
	Type      string   `db:"type"       json:"type"       validate:"omitempty,oneof=Standard Deluxe Suite Penthouse"`
	Status    string   `db:"status"     json:"status"     validate:"omitempty,oneof=AVAILABLE OCCUPIED CLEANING MAINTENANCE"`
	BasePrice *float64 `db:"base_price" json:"base_price" validate:"omitempty,min=0"`
}

type UploadRoomImageRequest struct {
	Image     *multipart.FileHeader `json:"image" validate:"required,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile multipart.File        `json:"-"`
}

type RoomResponse struct {
	ID        string  `json:"id"`
	Number    string  `json:"number"`
	Type      string  `json:"type"`
	Status    string  `json:"status"`
	BasePrice float64 `json:"base_price"`
	PriceINR  int64   `json:"price_inr"`
	ImageURL  string  `json:"image_url"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.Number = model.Number
	r.Type = model.Type
	r.Status = model.Status
	r.BasePrice = model.BasePrice
	r.PriceINR = currency.USDToINR(model.BasePrice)
	r.ImageURL = model.ImageURL
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}
