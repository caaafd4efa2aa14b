package dto

import (
	"time"

	"marigold/internal/domains/booking/model"
	roomDto "marigold/internal/domains/room/model/dto"
	"marigold/shared"
	"marigold/shared/constant"
	gDto "marigold/shared/dto"
	gModel "marigold/shared/model"
	"marigold/shared/timezone"

	"github.com/google/uuid"
)

// CreateBookingRequest carries the key names the booking front-end sends.
type CreateBookingRequest struct {
	RoomType     string `json:"roomType" validate:"required,max=100"`
	GuestName    string `json:"name"     validate:"required,max=100"`
	GuestEmail   string `json:"email"    validate:"omitempty,email,max=100"`
	GuestPhone   string `json:"phone"    validate:"omitempty,max=20"`
	CheckinDate  string `json:"checkIn"  validate:"required"`
	CheckoutDate string `json:"checkOut" validate:"required"`
	Guests       int    `json:"guests"   validate:"omitempty,gte=1,lte=20"`
}

// ToModel builds the booking shell. The room assignment and price are
// filled in by the reservation transaction.
func (c *CreateBookingRequest) ToModel(user, currency string) (model.Booking, error) {
	checkin, err := time.Parse(constant.StayDateFormat, c.CheckinDate)
	if err != nil {
		return model.Booking{}, err
	}

	checkout, err := time.Parse(constant.StayDateFormat, c.CheckoutDate)
	if err != nil {
		return model.Booking{}, err
	}

	guests := c.Guests
	if guests == 0 {
		guests = constant.DefaultBookingGuests
	}

	return model.Booking{
		ID:           uuid.NewString(),
		RoomType:     c.RoomType,
		GuestName:    c.GuestName,
		GuestEmail:   c.GuestEmail,
		GuestPhone:   c.GuestPhone,
		CheckinDate:  checkin,
		CheckoutDate: checkout,
		Guests:       guests,
		Status:       constant.BookingStatusConfirmed,
		Currency:     currency,
		Metadata: gModel.Metadata{
			CreatedAt: timezone.Now(),
			UpdatedAt: timezone.Now(),
			CreatedBy: user,
			UpdatedBy: user,
		},
	}, nil
}

type BookingResponse struct {
	ID             string  `json:"id"`
	RoomID         string  `json:"room_id"`
	RoomNumber     string  `json:"room_number"`
	RoomType       string  `json:"room_type"`
	GuestName      string  `json:"guest_name"`
	GuestEmail     string  `json:"guest_email"`
	GuestPhone     string  `json:"guest_phone"`
	CheckinDate    string  `json:"checkin_date"`
	CheckoutDate   string  `json:"checkout_date"`
	Guests         int     `json:"guests"`
	Nights         int     `json:"nights"`
	Status         string  `json:"status"`
	Price          float64 `json:"price"`
	Currency       string  `json:"currency"`
	CheckinTime    *string `json:"checkin_time,omitempty"`
	ActualCheckout *string `json:"actual_checkout,omitempty"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.RoomID = model.RoomID
	r.RoomNumber = model.RoomNumber
	r.RoomType = model.RoomType
	r.GuestName = model.GuestName
	r.GuestEmail = model.GuestEmail
	r.GuestPhone = model.GuestPhone
	r.CheckinDate = model.CheckinDate.Format(constant.StayDateFormat)
	r.CheckoutDate = model.CheckoutDate.Format(constant.StayDateFormat)
	r.Guests = model.Guests
	r.Nights = formatNights(model)
	r.Status = model.Status
	r.Price = model.Price
	r.Currency = model.Currency
	r.CheckinTime = formatTimestamp(model.CheckinTime)
	r.ActualCheckout = formatTimestamp(model.ActualCheckout)
	r.Metadata.FromModel(model.Metadata)
}

func formatNights(mod model.Booking) int {
	return model.Nights(mod.CheckinDate, mod.CheckoutDate)
}

func formatTimestamp(ts *time.Time) *string {
	if ts == nil {
		return nil
	}

	formatted := ts.Format(constant.DateFormat)

	return &formatted
}

type CreateBookingResponse struct {
	Booking BookingResponse      `json:"booking"`
	Room    roomDto.RoomResponse `json:"room"`
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}
