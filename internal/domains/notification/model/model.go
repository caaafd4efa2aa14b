package model

import "marigold/shared/model"

const (
	TableName  = "notifications"
	EntityName = "notification"

	FieldID      = "id"
	FieldTitle   = "title"
	FieldBody    = "body"
	FieldPayload = "payload"
	FieldRead    = "read"
)

type Notification struct {
	ID      string `db:"id"`
	Title   string `db:"title"`
	Body    string `db:"body"`
	Payload string `db:"payload"`
	Read    bool   `db:"read"`
	model.Metadata
}
