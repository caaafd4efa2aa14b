package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"marigold/config"
	"marigold/infras/otel/mocks"
	notificationMocks "marigold/internal/domains/notification/mocks"
	"marigold/internal/domains/notification/model"
	"marigold/internal/domains/notification/service"
	"marigold/shared/constant"
	gDto "marigold/shared/dto"
	gModel "marigold/shared/model"
	"marigold/shared/timezone"
)

func newNotificationService(ctrl *gomock.Controller) (service.Notification, *notificationMocks.MockNotification) {
	mockRepo := notificationMocks.NewMockNotification(ctrl)

	cfg := &config.Config{}

	svc := service.New(mockRepo, cfg, mocks.NewOtel())

	return svc, mockRepo
}

func testContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "admin")
}

func TestNotificationService_Notify(t *testing.T) {
	tests := []struct {
		name      string
		payload   any
		setupMock func(mockRepo *notificationMocks.MockNotification)
		wantErr   bool
	}{
		{
			name:    "records a notification with a JSON payload",
			payload: map[string]string{"booking_id": "booking-id"},
			setupMock: func(mockRepo *notificationMocks.MockNotification) {
				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, notification model.Notification) error {
						assert.Equal(t, "New booking", notification.Title)
						assert.False(t, notification.Read)
						assert.JSONEq(t, `{"booking_id":"booking-id"}`, notification.Payload)

						return nil
					})
			},
		},
		{
			name:    "records a notification without a payload",
			payload: nil,
			setupMock: func(mockRepo *notificationMocks.MockNotification) {
				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name:    "surfaces repository errors",
			payload: nil,
			setupMock: func(mockRepo *notificationMocks.MockNotification) {
				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, mockRepo := newNotificationService(ctrl)
			tt.setupMock(mockRepo)

			err := svc.Notify(testContext(), "New booking", "Ayesha Khan booked room 101", tt.payload)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNotificationService_GetAll(t *testing.T) {
	notifications := []model.Notification{
		{
			ID:      "notification-id",
			Title:   "New booking",
			Body:    "Ayesha Khan booked room 101",
			Payload: `{"booking_id":"booking-id"}`,
			Read:    false,
			Metadata: gModel.Metadata{
				CreatedAt: timezone.Now(),
				UpdatedAt: timezone.Now(),
			},
		},
	}

	tests := []struct {
		name       string
		unreadOnly bool
		wantLimit  int
	}{
		{
			name:       "lists recent notifications",
			unreadOnly: false,
			wantLimit:  constant.MaxNotificationRows,
		},
		{
			name:       "lists only unread with the tighter cap",
			unreadOnly: true,
			wantLimit:  constant.MaxUnreadRows,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, mockRepo := newNotificationService(ctrl)

			mockRepo.EXPECT().
				GetAll(gomock.Any(), gDto.Latest(tt.wantLimit), gomock.Any()).
				Return(notifications, nil)

			mockRepo.EXPECT().
				Count(gomock.Any(), gomock.Any()).
				Return(1, nil)

			res, err := svc.GetAll(testContext(), tt.unreadOnly)

			assert.NoError(t, err)
			assert.Len(t, res.Notifications, 1)
			assert.Equal(t, 1, res.UnreadCount)
			assert.Equal(t, 1, res.TotalData)
		})
	}
}

func TestNotificationService_MarkRead(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo := newNotificationService(ctrl)

	mockRepo.EXPECT().
		Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
			assert.Equal(t, true, fields[model.FieldRead])

			return nil
		})

	assert.NoError(t, svc.MarkRead(testContext(), "notification-id"))
}

func TestNotificationService_MarkAllRead(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo := newNotificationService(ctrl)

	mockRepo.EXPECT().
		Update(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil)

	assert.NoError(t, svc.MarkAllRead(testContext()))
}
