package dto_test

import (
	"strings"
	"testing"

	"marigold/internal/domains/notification/model/dto"
	"marigold/shared/validator"

	"github.com/stretchr/testify/assert"
)

func TestMarkNotificationRequest_WireKeys(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		expectError bool
		check       func(t *testing.T, req dto.MarkNotificationRequest)
	}{
		{
			name: "mark a single notification by id",
			body: `{"id": "notif-1"}`,
			check: func(t *testing.T, req dto.MarkNotificationRequest) {
				assert.Equal(t, "notif-1", req.ID)
				assert.False(t, req.MarkAll)
			},
		},
		{
			name: "mark everything read",
			body: `{"markAll": true}`,
			check: func(t *testing.T, req dto.MarkNotificationRequest) {
				assert.Empty(t, req.ID)
				assert.True(t, req.MarkAll)
			},
		},
		{
			name:        "neither id nor markAll",
			body:        `{}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req dto.MarkNotificationRequest
			err := validator.Validate(strings.NewReader(tt.body), &req)

			if tt.expectError {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
			tt.check(t, req)
		})
	}
}
