package dto

import (
	"mime/multipart"
	"time"

	"marigold/internal/domains/room/model"
	"marigold/shared"
	"marigold/shared/constant"
	gDto "marigold/shared/dto"
	gModel "marigold/shared/model"
	"marigold/shared/timezone"

	"github.com/google/uuid"
)

type CreateRoomRequest struct {
	Number      string                `json:"number"      validate:"required,max=20"`
	Type        string                `json:"type"        validate:"required,max=100"`
	Status      string                `json:"status"      validate:"omitempty,oneof=available occupied maintenance"`
	Capacity    int                   `json:"capacity"    validate:"omitempty,min=0"`
	Price       float64               `json:"price"       validate:"omitempty,min=0"`
	Description string                `json:"description" validate:"omitempty"`
	Image       *multipart.FileHeader `json:"image"       validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile   multipart.File        `json:"-"`
}

func (c *CreateRoomRequest) ToModel(user string, imageURL string) model.Room {
	status := constant.RoomStatusAvailable
	if c.Status != "" {
		status = c.Status
	}

	capacity := c.Capacity
	if capacity == 0 {
		capacity = constant.DefaultRoomCapacity
	}

	return model.Room{
		ID:          uuid.NewString(),
		Number:      c.Number,
		Type:        c.Type,
		Status:      status,
		Capacity:    capacity,
		Price:       c.Price,
		Description: c.Description,
		Image:       imageURL,
		Metadata: gModel.Metadata{
			CreatedAt: timezone.Now(),
			UpdatedAt: timezone.Now(),
			CreatedBy: user,
			UpdatedBy: user,
		},
	}
}

type UpdateRoomRequest struct {
	Number      string                `db:"number"      json:"number"      validate:"omitempty,max=20"`
	Type        string                `db:"type"        json:"type"        validate:"omitempty,max=100"`
	Status      string                `db:"status"      json:"status"      validate:"omitempty,oneof=available occupied maintenance"`
	Capacity    *int                  `db:"capacity"    json:"capacity"    validate:"omitempty,min=0"`
	Price       *float64              `db:"price"       json:"price"       validate:"omitempty,min=0"`
	Description string                `db:"description" json:"description" validate:"omitempty"`
	Image       *multipart.FileHeader `json:"image"     validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile   multipart.File        `json:"-"`
}

// AvailabilityQuery narrows the room listing to rooms of one type that are
// free for the whole stay.
type AvailabilityQuery struct {
	RoomType string    `json:"room_type" validate:"required"`
	CheckIn  time.Time `json:"check_in"  validate:"required"`
	CheckOut time.Time `json:"check_out" validate:"required"`
}

type RoomResponse struct {
	ID          string  `json:"id"`
	Number      string  `json:"number"`
	Type        string  `json:"type"`
	Status      string  `json:"status"`
	Capacity    int     `json:"capacity"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.Number = model.Number
	r.Type = model.Type
	r.Status = model.Status
	r.Capacity = model.Capacity
	r.Price = model.Price
	r.Description = model.Description
	r.Image = model.Image
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
