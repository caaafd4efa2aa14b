package dto

import (
	"encoding/json"

	"marigold/internal/domains/notification/model"
	gDto "marigold/shared/dto"
)

type MarkNotificationRequest struct {
	ID      string `json:"id"      validate:"required_without=MarkAll"`
	MarkAll bool   `json:"markAll" validate:"omitempty"`
}

type NotificationResponse struct {
	ID      string          `json:"id"`
	Title   string          `json:"title"`
	Body    string          `json:"body"`
	Payload json.RawMessage `json:"payload,omitempty"`
	Read    bool            `json:"read"`
	gDto.Metadata
}

func (r *NotificationResponse) FromModel(model model.Notification) {
	r.ID = model.ID
	r.Title = model.Title
	r.Body = model.Body
	r.Read = model.Read

	if model.Payload != "" {
		r.Payload = json.RawMessage(model.Payload)
	}

	r.Metadata.FromModel(model.Metadata)
}

type GetNotificationsResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	TotalData     int                    `json:"total_data"`
	UnreadCount   int                    `json:"unread_count"`
}

func (r *GetNotificationsResponse) FromModels(models []model.Notification, unread int) {
	r.TotalData = len(models)
	r.UnreadCount = unread

	r.Notifications = make([]NotificationResponse, len(models))
	for i, mod := range models {
		r.Notifications[i].FromModel(mod)
	}
}
