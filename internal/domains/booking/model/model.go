package model

import (
	"fmt"
	"marigold/shared/constant"
	"marigold/shared/model"
	"math"
	"time"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID             = "id"
	FieldRoomID         = "room_id"
	FieldRoomNumber     = "room_number"
	FieldRoomType       = "room_type"
	FieldGuestName      = "guest_name"
	FieldGuestEmail     = "guest_email"
	FieldGuestPhone     = "guest_phone"
	FieldCheckinDate    = "checkin_date"
	FieldCheckoutDate   = "checkout_date"
	FieldGuests         = "guests"
	FieldStatus         = "status"
	FieldPrice          = "price"
	FieldCurrency       = "currency"
	FieldCheckinTime    = "checkin_time"
	FieldActualCheckout = "actual_checkout"
)

type Booking struct {
	ID             string     `db:"id"`
	RoomID         string     `db:"room_id"`
	RoomNumber     string     `db:"room_number"`
	RoomType       string     `db:"room_type"`
	GuestName      string     `db:"guest_name"`
	GuestEmail     string     `db:"guest_email"`
	GuestPhone     string     `db:"guest_phone"`
	CheckinDate    time.Time  `db:"checkin_date"`
	CheckoutDate   time.Time  `db:"checkout_date"`
	Guests         int        `db:"guests"`
	Status         string     `db:"status"`
	Price          float64    `db:"price"`
	Currency       string     `db:"currency"`
	CheckinTime    *time.Time `db:"checkin_time"`
	ActualCheckout *time.Time `db:"actual_checkout"`
	model.Metadata
}

// IsTerminal reports whether the booking can no longer change state.
func (b *Booking) IsTerminal() bool {
	return b.Status == constant.BookingStatusCheckedOut || b.Status == constant.BookingStatusCancelled
}

// Blocks reports whether a booking in the given status holds its room
// against new reservations. Checked-out and cancelled stays release it.
func Blocks(status string) bool {
	switch status {
	case constant.BookingStatusPending,
		constant.BookingStatusConfirmed,
		constant.BookingStatusCheckedIn:
		return true
	}

	return false
}

// Overlaps reports whether two half-open stay ranges share a night.
// Back-to-back stays meeting at a boundary date do not overlap, and a
// zero-night stay overlaps nothing.
func Overlaps(checkIn, checkOut, otherIn, otherOut time.Time) bool {
	return checkIn.Before(otherOut) && otherIn.Before(checkOut)
}

// OverlapCondition is the SQL form of Overlaps over the :check_in and
// :check_out binds.
const OverlapCondition = "NOT (b.checkout_date <= :check_in OR b.checkin_date >= :check_out)"

// NoActiveBookingCondition excludes rooms holding a blocking booking that
// overlaps the requested stay. Callers supply BlockingStatusBinds alongside
// :check_in and :check_out.
func NoActiveBookingCondition() string {
	return fmt.Sprintf(`NOT EXISTS (
		SELECT 1 FROM %s b
		WHERE b.room_id = rooms.id
		  AND b.status IN (:pending, :confirmed, :checked_in)
		  AND %s
	  )`, TableName, OverlapCondition)
}

// BlockingStatusBinds supplies the status binds NoActiveBookingCondition
// expects.
func BlockingStatusBinds() map[string]any {
	return map[string]any{
		"pending":    constant.BookingStatusPending,
		"confirmed":  constant.BookingStatusConfirmed,
		"checked_in": constant.BookingStatusCheckedIn,
	}
}

// Nights counts billable nights between the stay dates. Partial nights
// round up and inverted ranges count as zero.
func Nights(checkin, checkout time.Time) int {
	nights := int(math.Ceil(checkout.Sub(checkin).Hours() / constant.HoursPerNight))
	if nights < 0 {
		return 0
	}

	return nights
}

// RoundPrice keeps monetary amounts at two decimal places.
func RoundPrice(price float64) float64 {
	return math.Round(price*100) / 100
}
