package dto_test

import (
	"encoding/json"
	"testing"

	"marigold/internal/domains/booking/model/dto"
	"marigold/shared/constant"

	"github.com/stretchr/testify/assert"
)

func TestCreateBookingRequest_WireKeys(t *testing.T) {
	body := `{
		"name": "Ayesha Khan",
		"email": "ayesha@example.com",
		"phone": "+92-300-1234567",
		"roomType": "Deluxe",
		"checkIn": "2025-03-10",
		"checkOut": "2025-03-13",
		"guests": 2
	}`

	var req dto.CreateBookingRequest
	err := json.Unmarshal([]byte(body), &req)

	assert.NoError(t, err)
	assert.Equal(t, "Ayesha Khan", req.GuestName)
	assert.Equal(t, "ayesha@example.com", req.GuestEmail)
	assert.Equal(t, "+92-300-1234567", req.GuestPhone)
	assert.Equal(t, "Deluxe", req.RoomType)
	assert.Equal(t, "2025-03-10", req.CheckinDate)
	assert.Equal(t, "2025-03-13", req.CheckoutDate)
	assert.Equal(t, 2, req.Guests)
}

func TestCreateBookingRequest_ToModel(t *testing.T) {
	req := dto.CreateBookingRequest{
		RoomType:     "Deluxe",
		GuestName:    "Ayesha Khan",
		GuestEmail:   "ayesha@example.com",
		CheckinDate:  "2025-03-10",
		CheckoutDate: "2025-03-13",
		Guests:       2,
	}

	booking, err := req.ToModel("admin", "PKR")

	assert.NoError(t, err)
	assert.NotEmpty(t, booking.ID, "expected ID to be generated")
	assert.Equal(t, req.RoomType, booking.RoomType)
	assert.Equal(t, req.GuestName, booking.GuestName)
	assert.Equal(t, 2, booking.Guests)
	assert.Equal(t, constant.BookingStatusConfirmed, booking.Status)
	assert.Equal(t, "PKR", booking.Currency)
	assert.Equal(t, "admin", booking.CreatedBy)
	assert.Equal(t, "2025-03-10", booking.CheckinDate.Format(constant.StayDateFormat))
	assert.Equal(t, "2025-03-13", booking.CheckoutDate.Format(constant.StayDateFormat))
}

func TestCreateBookingRequest_ToModelDefaultsGuests(t *testing.T) {
	req := dto.CreateBookingRequest{
		RoomType:     "Deluxe",
		GuestName:    "Ayesha Khan",
		CheckinDate:  "2025-03-10",
		CheckoutDate: "2025-03-13",
	}

	booking, err := req.ToModel("admin", "PKR")

	assert.NoError(t, err)
	assert.Equal(t, constant.DefaultBookingGuests, booking.Guests)
}

func TestCreateBookingRequest_ToModelRejectsBadDates(t *testing.T) {
	req := dto.CreateBookingRequest{
		RoomType:     "Deluxe",
		GuestName:    "Ayesha Khan",
		CheckinDate:  "10-03-2025",
		CheckoutDate: "2025-03-13",
	}

	_, err := req.ToModel("admin", "PKR")

	assert.Error(t, err)
}
