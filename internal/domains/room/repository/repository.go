package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"marigold/infras/otel"
	"marigold/infras/postgres"
	bookingModel "marigold/internal/domains/booking/model"
	"marigold/internal/domains/room/model"
	"marigold/shared/constant"
	gDto "marigold/shared/dto"
	"marigold/shared/logger"
	gRepo "marigold/shared/repository"
	"time"
)

type Room interface {
	Insert(ctx context.Context, model model.Room) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Room, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Room, error)
	FindAvailable(ctx context.Context, roomType string, checkIn, checkOut time.Time, limit int) ([]model.Room, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Room]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Room {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Room](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// FindAvailable lists rooms of a type with no active booking overlapping the
// stay. Two stays overlap unless one checks out before the other checks in,
// so back-to-back bookings sharing a boundary date are both allowed.
func (repo *repositoryImpl) FindAvailable(ctx context.Context, roomType string, checkIn, checkOut time.Time, limit int) (rooms []model.Room, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.FindAvailable")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := fmt.Sprintf(`
		SELECT id, number, type, status, capacity, price, description, image,
		       created_at, updated_at, created_by, updated_by
		FROM rooms
		WHERE type = :room_type
		  AND status != :maintenance
		  AND %s
		ORDER BY number ASC
		LIMIT :limit`, bookingModel.NoActiveBookingCondition())

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	args := map[string]any{
		"room_type":   roomType,
		"maintenance": constant.RoomStatusMaintenance,
		"check_in":    checkIn,
		"check_out":   checkOut,
		"limit":       limit,
	}
	for bind, status := range bookingModel.BlockingStatusBinds() {
		args[bind] = status
	}

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)

		return rooms, fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer prepare.Close()

	err = prepare.SelectContext(ctx, &rooms, args)
	if err != nil {
		logger.ErrorWithStack(err)

		return rooms, fmt.Errorf("failed to find available rooms: %w", err)
	}

	return rooms, nil
}
