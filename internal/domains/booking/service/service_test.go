package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"marigold/config"
	kafkaMocks "marigold/infras/kafka/mocks"
	"marigold/infras/otel/mocks"
	bookingMocks "marigold/internal/domains/booking/mocks"
	"marigold/internal/domains/booking/model"
	"marigold/internal/domains/booking/model/dto"
	"marigold/internal/domains/booking/service"
	notificationServiceMocks "marigold/internal/domains/notification/service/mocks"
	roomMocks "marigold/internal/domains/room/mocks"
	roomModel "marigold/internal/domains/room/model"
	roomTypeMocks "marigold/internal/domains/roomtype/mocks"
	roomTypeModel "marigold/internal/domains/roomtype/model"
	cacheMocks "marigold/shared/cache/mocks"
	"marigold/shared/constant"
	"marigold/shared/failure"
	gModel "marigold/shared/model"
	"marigold/shared/timezone"
)

type bookingServiceMocks struct {
	repo         *bookingMocks.MockBooking
	roomRepo     *roomMocks.MockRoom
	roomTypeRepo *roomTypeMocks.MockRoomType
	notification *notificationServiceMocks.MockNotification
	kafka        *kafkaMocks.MockClient
	cache        *cacheMocks.MockRedisCache
}

func newBookingService(ctrl *gomock.Controller) (service.Booking, bookingServiceMocks) {
	m := bookingServiceMocks{
		repo:         bookingMocks.NewMockBooking(ctrl),
		roomRepo:     roomMocks.NewMockRoom(ctrl),
		roomTypeRepo: roomTypeMocks.NewMockRoomType(ctrl),
		notification: notificationServiceMocks.NewMockNotification(ctrl),
		kafka:        kafkaMocks.NewMockClient(ctrl),
		cache:        cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.Hotel.Currency = "PKR"
	cfg.Kafka.Topics.BookingEvents = "marigold.booking.events"

	svc := service.New(m.repo, m.roomRepo, m.roomTypeRepo, m.notification, m.kafka, cfg, m.cache, mocks.NewOtel())

	return svc, m
}

// The notification, event stream and cache invalidation fan-out runs after
// the response is returned, so tests only allow it rather than require it.
func allowAsyncFanOut(m bookingServiceMocks) {
	m.notification.EXPECT().Notify(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.kafka.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
}

func testContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "admin")
}

func TestBookingService_Create(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.CreateBookingRequest
		setupMock func(m bookingServiceMocks)
		wantErr   bool
		wantCode  int
		check     func(t *testing.T, res dto.CreateBookingResponse)
	}{
		{
			name: "reserves a room at the type's nightly rate",
			req: dto.CreateBookingRequest{
				RoomType:     "Deluxe",
				GuestName:    "Ayesha Khan",
				CheckinDate:  "2025-03-10",
				CheckoutDate: "2025-03-13",
			},
			setupMock: func(m bookingServiceMocks) {
				m.roomTypeRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(roomTypeModel.RoomType{
						ID:            "type-id",
						Name:          "Deluxe",
						PricePerNight: 220,
						Currency:      "PKR",
					}, nil)

				m.repo.EXPECT().
					Reserve(gomock.Any(), gomock.Any(), float64(220), 3).
					DoAndReturn(func(_ context.Context, booking model.Booking, rate float64, nights int) (model.Booking, roomModel.Room, error) {
						booking.RoomID = "room-id"
						booking.RoomNumber = "101"
						booking.Price = model.RoundPrice(rate * float64(nights))

						return booking, roomModel.Room{
							ID:     "room-id",
							Number: "101",
							Type:   "Deluxe",
							Status: constant.RoomStatusAvailable,
						}, nil
					})
			},
			check: func(t *testing.T, res dto.CreateBookingResponse) {
				assert.Equal(t, "101", res.Booking.RoomNumber)
				assert.Equal(t, 3, res.Booking.Nights)
				assert.InDelta(t, 660, res.Booking.Price, 0.0001)
				assert.Equal(t, "PKR", res.Booking.Currency)
				assert.Equal(t, constant.BookingStatusConfirmed, res.Booking.Status)
			},
		},
		{
			name: "accepts a same-day stay with zero nights",
			req: dto.CreateBookingRequest{
				RoomType:     "Deluxe",
				GuestName:    "Ayesha Khan",
				CheckinDate:  "2025-03-10",
				CheckoutDate: "2025-03-10",
			},
			setupMock: func(m bookingServiceMocks) {
				m.roomTypeRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(roomTypeModel.RoomType{
						ID:            "type-id",
						Name:          "Deluxe",
						PricePerNight: 220,
						Currency:      "PKR",
					}, nil)

				m.repo.EXPECT().
					Reserve(gomock.Any(), gomock.Any(), float64(220), 0).
					DoAndReturn(func(_ context.Context, booking model.Booking, rate float64, nights int) (model.Booking, roomModel.Room, error) {
						booking.RoomID = "room-id"
						booking.RoomNumber = "101"
						booking.Price = model.RoundPrice(rate * float64(nights))

						return booking, roomModel.Room{
							ID:     "room-id",
							Number: "101",
							Type:   "Deluxe",
							Status: constant.RoomStatusAvailable,
						}, nil
					})
			},
			check: func(t *testing.T, res dto.CreateBookingResponse) {
				assert.Equal(t, 0, res.Booking.Nights)
				assert.InDelta(t, 0, res.Booking.Price, 0.0001)
				assert.Equal(t, constant.BookingStatusConfirmed, res.Booking.Status)
			},
		},
		{
			name: "rejects malformed dates",
			req: dto.CreateBookingRequest{
				RoomType:     "Deluxe",
				GuestName:    "Ayesha Khan",
				CheckinDate:  "10-03-2025",
				CheckoutDate: "2025-03-13",
			},
			setupMock: func(m bookingServiceMocks) {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "rejects checkout before checkin",
			req: dto.CreateBookingRequest{
				RoomType:     "Deluxe",
				GuestName:    "Ayesha Khan",
				CheckinDate:  "2025-03-13",
				CheckoutDate: "2025-03-10",
			},
			setupMock: func(m bookingServiceMocks) {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "surfaces a conflict when every room is taken",
			req: dto.CreateBookingRequest{
				RoomType:     "Deluxe",
				GuestName:    "Ayesha Khan",
				CheckinDate:  "2025-03-10",
				CheckoutDate: "2025-03-13",
			},
			setupMock: func(m bookingServiceMocks) {
				m.roomTypeRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(roomTypeModel.RoomType{Name: "Deluxe", PricePerNight: 220}, nil)

				m.repo.EXPECT().
					Reserve(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(model.Booking{}, roomModel.Room{}, failure.NoRoomsAvailable)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "fails when the room type lookup errors",
			req: dto.CreateBookingRequest{
				RoomType:     "Deluxe",
				GuestName:    "Ayesha Khan",
				CheckinDate:  "2025-03-10",
				CheckoutDate: "2025-03-13",
			},
			setupMock: func(m bookingServiceMocks) {
				m.roomTypeRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(roomTypeModel.RoomType{}, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, m := newBookingService(ctrl)
			tt.setupMock(m)
			allowAsyncFanOut(m)

			res, err := svc.Create(testContext(), tt.req)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}

				return
			}

			assert.NoError(t, err)

			if tt.check != nil {
				tt.check(t, res)
			}
		})
	}
}

func activeBooking(status string) model.Booking {
	return model.Booking{
		ID:           "booking-id",
		RoomID:       "room-id",
		RoomNumber:   "101",
		RoomType:     "Deluxe",
		GuestName:    "Ayesha Khan",
		CheckinDate:  time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
		CheckoutDate: time.Date(2025, time.March, 13, 0, 0, 0, 0, time.UTC),
		Status:       status,
		Price:        660,
		Currency:     "PKR",
		Metadata: gModel.Metadata{
			CreatedAt: timezone.Now(),
			UpdatedAt: timezone.Now(),
			CreatedBy: "admin",
			UpdatedBy: "admin",
		},
	}
}

func TestBookingService_CheckIn(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(m bookingServiceMocks)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "checks a confirmed booking in and occupies the room",
			setupMock: func(m bookingServiceMocks) {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeBooking(constant.BookingStatusConfirmed), nil)

				m.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				m.roomRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name: "rejects checking in a checked out booking",
			setupMock: func(m bookingServiceMocks) {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeBooking(constant.BookingStatusCheckedOut), nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "rejects checking in an already checked in booking",
			setupMock: func(m bookingServiceMocks) {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeBooking(constant.BookingStatusCheckedIn), nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "returns not found for an unknown booking",
			setupMock: func(m bookingServiceMocks) {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Booking{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, m := newBookingService(ctrl)
			tt.setupMock(m)
			allowAsyncFanOut(m)

			res, err := svc.CheckIn(testContext(), "booking-id")

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, constant.BookingStatusCheckedIn, res.Status)
			assert.NotNil(t, res.CheckinTime)
		})
	}
}

func TestBookingService_CheckOut(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(m bookingServiceMocks)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "checks a booking out and frees the room",
			setupMock: func(m bookingServiceMocks) {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeBooking(constant.BookingStatusCheckedIn), nil)

				m.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				m.roomRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name: "rejects checking out a cancelled booking",
			setupMock: func(m bookingServiceMocks) {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeBooking(constant.BookingStatusCancelled), nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, m := newBookingService(ctrl)
			tt.setupMock(m)
			allowAsyncFanOut(m)

			res, err := svc.CheckOut(testContext(), "booking-id")

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, constant.BookingStatusCheckedOut, res.Status)
			assert.NotNil(t, res.ActualCheckout)
		})
	}
}

func TestBookingService_Cancel(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(m bookingServiceMocks)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "cancels a confirmed booking and frees the room",
			setupMock: func(m bookingServiceMocks) {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeBooking(constant.BookingStatusConfirmed), nil)

				m.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)

				m.roomRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name: "rejects cancelling a checked out booking",
			setupMock: func(m bookingServiceMocks) {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeBooking(constant.BookingStatusCheckedOut), nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, m := newBookingService(ctrl)
			tt.setupMock(m)
			allowAsyncFanOut(m)

			res, err := svc.Cancel(testContext(), "booking-id")

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, constant.BookingStatusCancelled, res.Status)
		})
	}
}

func TestBookingService_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newBookingService(ctrl)

	m.cache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("cache miss"))

	m.repo.EXPECT().
		Count(gomock.Any(), gomock.Any()).
		Return(1, nil)

	m.repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.Booking{activeBooking(constant.BookingStatusConfirmed)}, nil)

	allowAsyncFanOut(m)

	res, err := svc.GetAll(testContext(), "")

	assert.NoError(t, err)
	assert.Equal(t, 1, res.TotalData)
	assert.Len(t, res.Bookings, 1)
	assert.Equal(t, "Ayesha Khan", res.Bookings[0].GuestName)
}

func TestBookingService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newBookingService(ctrl)

	m.cache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("cache miss"))

	m.repo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(model.Booking{}, nil)

	allowAsyncFanOut(m)

	_, err := svc.Get(testContext(), "missing-id")

	assert.Error(t, err)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}
