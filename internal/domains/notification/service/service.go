package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"marigold/config"
	"marigold/infras/otel"
	"marigold/internal/domains/notification/model"
	"marigold/internal/domains/notification/model/dto"
	"marigold/internal/domains/notification/repository"
	"marigold/shared"
	"marigold/shared/constant"
	gDto "marigold/shared/dto"
	gModel "marigold/shared/model"
	"marigold/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Notification interface {
	Notify(ctx context.Context, title, body string, payload any) error
	GetAll(ctx context.Context, unreadOnly bool) (dto.GetNotificationsResponse, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context) error
}

type serviceImpl struct {
	repo repository.Notification
	cfg  *config.Config
	otel otel.Otel
}

func New(repo repository.Notification, cfg *config.Config, otel otel.Otel) Notification {
	return &serviceImpl{
		repo: repo,
		cfg:  cfg,
		otel: otel,
	}
}

// Notify records an event for the admin dashboard. Callers treat failures
// as non-fatal; the triggering operation has already succeeded.
func (s *serviceImpl) Notify(ctx context.Context, title, body string, payload any) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Notify")
	defer scope.End()
	defer scope.TraceIfError(err)

	payloadJSON := constant.Empty
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			log.Error().Err(err).Msg("failed to marshal notification payload")

			return fmt.Errorf("failed to marshal notification payload: %w", err)
		}

		payloadJSON = string(raw)
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	notification := model.Notification{
		ID:      uuid.NewString(),
		Title:   title,
		Body:    body,
		Payload: payloadJSON,
		Read:    false,
		Metadata: gModel.Metadata{
			CreatedAt: timezone.Now(),
			UpdatedAt: timezone.Now(),
			CreatedBy: user,
			UpdatedBy: user,
		},
	}

	if err = s.repo.Insert(ctx, notification); err != nil {
		log.Error().Err(err).Msg("failed to insert notification")

		return fmt.Errorf("failed to insert notification: %w", err)
	}

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, unreadOnly bool) (res dto.GetNotificationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	limit := constant.MaxNotificationRows
	filter := gDto.FilterGroup{}

	if unreadOnly {
		limit = constant.MaxUnreadRows
		filter = unreadFilter()
	}

	models, err := s.repo.GetAll(ctx, gDto.Latest(limit), filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get notifications")

		return res, fmt.Errorf("failed to get notifications: %w", err)
	}

	unread, err := s.repo.Count(ctx, unreadFilter())
	if err != nil {
		log.Error().Err(err).Msg("failed to count unread notifications")

		return res, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	res.FromModels(models, unread)

	return res, nil
}

// MarkRead is idempotent: marking a read or absent notification is a no-op.
func (s *serviceImpl) MarkRead(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".MarkRead")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	fields := map[string]any{
		model.FieldRead:         true,
		constant.FieldUpdatedAt: timezone.Now(),
		constant.FieldUpdatedBy: user,
	}

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to mark notification read")

		return fmt.Errorf("failed to mark notification read: %w", err)
	}

	return nil
}

func (s *serviceImpl) MarkAllRead(ctx context.Context) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".MarkAllRead")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	fields := map[string]any{
		model.FieldRead:         true,
		constant.FieldUpdatedAt: timezone.Now(),
		constant.FieldUpdatedBy: user,
	}

	if err = s.repo.Update(ctx, fields, unreadFilter()); err != nil {
		log.Error().Err(err).Msg("failed to mark all notifications read")

		return fmt.Errorf("failed to mark all notifications read: %w", err)
	}

	return nil
}

func unreadFilter() gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldRead,
				Operator: gDto.FilterOperatorEq,
				Value:    false,
				Table:    model.TableName,
			},
		},
	}
}
