package model

import "marigold/shared/model"

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID          = "id"
	FieldNumber      = "number"
	FieldType        = "type"
	FieldStatus      = "status"
	FieldCapacity    = "capacity"
	FieldPrice       = "price"
	FieldDescription = "description"
	FieldImage       = "image"
)

type Room struct {
	ID          string  `db:"id"`
	Number      string  `db:"number"`
	Type        string  `db:"type"`
	Status      string  `db:"status"`
	Capacity    int     `db:"capacity"`
	Price       float64 `db:"price"`
	Description string  `db:"description"`
	Image       string  `db:"image"`
	model.Metadata
}
