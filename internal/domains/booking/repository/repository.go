package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"marigold/infras/otel"
	"marigold/infras/postgres"
	"marigold/internal/domains/booking/model"
	roomModel "marigold/internal/domains/room/model"
	"marigold/shared/constant"
	gDto "marigold/shared/dto"
	"marigold/shared/failure"
	"marigold/shared/logger"
	gRepo "marigold/shared/repository"
	"marigold/shared/timezone"

	"github.com/lib/pq"
)

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	Reserve(ctx context.Context, booking model.Booking, nightlyRate float64, nights int) (model.Booking, roomModel.Room, error)
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

var findRoomForUpdateQuery = fmt.Sprintf(`
	SELECT id, number, type, status, capacity, price, description, image,
	       created_at, updated_at, created_by, updated_by
	FROM rooms
	WHERE type = :room_type
	  AND status != :maintenance
	  AND %s
	ORDER BY number ASC
	LIMIT 1
	FOR UPDATE OF rooms SKIP LOCKED`, model.NoActiveBookingCondition())

const occupyRoomQuery = `
	UPDATE rooms
	SET status = :status, updated_at = :updated_at, updated_by = :updated_by
	WHERE id = :id`

// Reserve assigns an available room and persists the booking in one
// serializable transaction. The chosen room row stays locked until commit,
// and the exclusion constraint on stay ranges backstops anything the lock
// misses, so two guests can never hold the same room for overlapping dates.
func (repo *repositoryImpl) Reserve(ctx context.Context, booking model.Booking, nightlyRate float64, nights int) (reserved model.Booking, room roomModel.Room, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.Reserve")
	defer scope.End()
	defer scope.TraceIfError(err)

	tx, err := repo.db.Write.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		logger.ErrorWithStack(err)

		return reserved, room, fmt.Errorf("failed to begin reservation transaction: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				logger.ErrorWithStack(rbErr)
			}
		}
	}()

	scope.SetAttribute(constant.OtelQueryAttributeKey, findRoomForUpdateQuery)

	findStmt, err := tx.PrepareNamedContext(ctx, findRoomForUpdateQuery)
	if err != nil {
		logger.ErrorWithStack(err)

		return reserved, room, fmt.Errorf("failed to prepare room lookup: %w", err)
	}
	defer findStmt.Close()

	args := map[string]any{
		"room_type":   booking.RoomType,
		"maintenance": constant.RoomStatusMaintenance,
		"check_in":    booking.CheckinDate,
		"check_out":   booking.CheckoutDate,
	}
	for bind, status := range model.BlockingStatusBinds() {
		args[bind] = status
	}

	err = findStmt.GetContext(ctx, &room, args)
	if errors.Is(err, sql.ErrNoRows) {
		err = failure.NoRoomsAvailable

		return reserved, room, err
	}

	if err != nil {
		logger.ErrorWithStack(err)

		return reserved, room, fmt.Errorf("failed to find available room: %w", err)
	}

	rate := nightlyRate
	if rate <= 0 {
		rate = room.Price
	}

	booking.RoomID = room.ID
	booking.RoomNumber = room.Number
	booking.Price = model.RoundPrice(rate * float64(nights))

	if err = repo.InsertTx(ctx, tx, booking); err != nil {
		err = translateReserveError(err)

		return reserved, room, err
	}

	_, err = tx.NamedExecContext(ctx, occupyRoomQuery, map[string]any{
		"id":         room.ID,
		"status":     constant.RoomStatusOccupied,
		"updated_at": timezone.Now(),
		"updated_by": booking.CreatedBy,
	})
	if err != nil {
		logger.ErrorWithStack(err)

		return reserved, room, fmt.Errorf("failed to mark room occupied: %w", err)
	}

	if err = tx.Commit(); err != nil {
		err = translateReserveError(err)

		return reserved, room, err
	}

	room.Status = constant.RoomStatusOccupied

	return booking, room, nil
}

// translateReserveError turns concurrency conflicts into the 409 the guest
// sees as "no rooms available"; everything else passes through.
func translateReserveError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case constant.PqErrorCodeExclusionViolation,
			constant.PqErrorCodeUniqueViolation,
			constant.PqErrorCodeSerializationFailure:
			return failure.NoRoomsAvailable
		}
	}

	return err
}
