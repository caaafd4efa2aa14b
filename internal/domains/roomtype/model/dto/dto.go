package dto

import (
	"marigold/internal/domains/roomtype/model"
	"marigold/shared"
	gDto "marigold/shared/dto"
	gModel "marigold/shared/model"
	"marigold/shared/timezone"

	"github.com/google/uuid"
)

type CreateRoomTypeRequest struct {
	Name          string  `json:"name"            validate:"required,max=100"`
	PricePerNight float64 `json:"price_per_night" validate:"omitempty,min=0"`
	PricePerHour  float64 `json:"price_per_hour"  validate:"omitempty,min=0"`
	Currency      string  `json:"currency"        validate:"omitempty,max=10"`
}

func (c *CreateRoomTypeRequest) ToModel(user, defaultCurrency string) model.RoomType {
	currency := c.Currency
	if currency == "" {
		currency = defaultCurrency
	}

	return model.RoomType{
		ID:            uuid.NewString(),
		Name:          c.Name,
		PricePerNight: c.PricePerNight,
		PricePerHour:  c.PricePerHour,
		Currency:      currency,
		Metadata: gModel.Metadata{
			CreatedAt: timezone.Now(),
			UpdatedAt: timezone.Now(),
			CreatedBy: user,
			UpdatedBy: user,
		},
	}
}

type RoomTypeResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	PricePerNight float64 `json:"price_per_night"`
	PricePerHour  float64 `json:"price_per_hour"`
	Currency      string  `json:"currency"`
	gDto.Metadata
}

func (r *RoomTypeResponse) FromModel(model model.RoomType) {
	r.ID = model.ID
	r.Name = model.Name
	r.PricePerNight = model.PricePerNight
	r.PricePerHour = model.PricePerHour
	r.Currency = model.Currency
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomTypesResponse struct {
	RoomTypes []RoomTypeResponse `json:"room_types"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetRoomTypesResponse) FromModels(models []model.RoomType, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.RoomTypes = make([]RoomTypeResponse, len(models))
	for i, mod := range models {
		r.RoomTypes[i].FromModel(mod)
	}
}
