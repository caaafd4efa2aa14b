package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"marigold/config"
	"marigold/infras/otel/mocks"
	roomMocks "marigold/internal/domains/room/mocks"
	roomTypeMocks "marigold/internal/domains/roomtype/mocks"
	"marigold/internal/domains/roomtype/model"
	"marigold/internal/domains/roomtype/model/dto"
	"marigold/internal/domains/roomtype/service"
	cacheMocks "marigold/shared/cache/mocks"
	"marigold/shared/constant"
	gDto "marigold/shared/dto"
	"marigold/shared/failure"
)

type roomTypeServiceMocks struct {
	repo     *roomTypeMocks.MockRoomType
	roomRepo *roomMocks.MockRoom
	cache    *cacheMocks.MockRedisCache
}

func newRoomTypeService(ctrl *gomock.Controller) (service.RoomType, roomTypeServiceMocks) {
	m := roomTypeServiceMocks{
		repo:     roomTypeMocks.NewMockRoomType(ctrl),
		roomRepo: roomMocks.NewMockRoom(ctrl),
		cache:    cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.Hotel.Currency = "PKR"

	svc := service.New(m.repo, m.roomRepo, cfg, m.cache, mocks.NewOtel())

	return svc, m
}

func allowCacheFanOut(m roomTypeServiceMocks) {
	m.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
}

func testContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "admin")
}

func TestRoomTypeService_Create(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.CreateRoomTypeRequest
		setupMock func(m roomTypeServiceMocks)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "creates a room type with the hotel currency",
			req: dto.CreateRoomTypeRequest{
				Name:          "Deluxe",
				PricePerNight: 220,
			},
			setupMock: func(m roomTypeServiceMocks) {
				m.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				m.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, roomType model.RoomType) error {
						assert.Equal(t, "PKR", roomType.Currency)

						return nil
					})
			},
		},
		{
			name: "rejects a duplicate name",
			req: dto.CreateRoomTypeRequest{
				Name: "Deluxe",
			},
			setupMock: func(m roomTypeServiceMocks) {
				m.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "fails when the insert errors",
			req: dto.CreateRoomTypeRequest{
				Name: "Deluxe",
			},
			setupMock: func(m roomTypeServiceMocks) {
				m.repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				m.repo.EXPECT().
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

			svc, m := newRoomTypeService(ctrl)
			tt.setupMock(m)
			allowCacheFanOut(m)

			res, err := svc.Create(testContext(), tt.req)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.req.Name, res.Name)
		})
	}
}

func TestRoomTypeService_Delete(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(m roomTypeServiceMocks)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "deletes an unused room type",
			setupMock: func(m roomTypeServiceMocks) {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.RoomType{ID: "type-id", Name: "Deluxe"}, nil)

				m.roomRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				m.repo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil)
			},
		},
		{
			name: "refuses to delete a type rooms still use",
			setupMock: func(m roomTypeServiceMocks) {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.RoomType{ID: "type-id", Name: "Deluxe"}, nil)

				m.roomRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "returns not found for an unknown type",
			setupMock: func(m roomTypeServiceMocks) {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.RoomType{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, m := newRoomTypeService(ctrl)
			tt.setupMock(m)
			allowCacheFanOut(m)

			res, err := svc.Delete(testContext(), "type-id")

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "Deluxe", res.Name)
		})
	}
}

func TestRoomTypeService_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newRoomTypeService(ctrl)

	m.cache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("cache miss")).
		Times(2)

	m.repo.EXPECT().
		Count(gomock.Any(), gomock.Any()).
		Return(1, nil)

	m.repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.RoomType{{ID: "type-id", Name: "Deluxe", PricePerNight: 220}}, nil)

	allowCacheFanOut(m)

	res, err := svc.GetAll(testContext(), gDto.QueryParams{Limit: 10, Page: 1}, gDto.FilterGroup{})

	assert.NoError(t, err)
	assert.Equal(t, 1, res.TotalData)
	assert.Len(t, res.RoomTypes, 1)
	assert.Equal(t, "Deluxe", res.RoomTypes[0].Name)
}
