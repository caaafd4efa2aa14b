package model

import "marigold/shared/model"

const (
	TableName  = "room_types"
	EntityName = "room_type"

	FieldID            = "id"
	FieldName          = "name"
	FieldPricePerNight = "price_per_night"
	FieldPricePerHour  = "price_per_hour"
	FieldCurrency      = "currency"
)

type RoomType struct {
	ID            string  `db:"id"`
	Name          string  `db:"name"`
	PricePerNight float64 `db:"price_per_night"`
	PricePerHour  float64 `db:"price_per_hour"`
	Currency      string  `db:"currency"`
	model.Metadata
}
