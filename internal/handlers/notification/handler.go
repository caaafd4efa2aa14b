package notification

import (
	"marigold/infras/otel"
	"marigold/internal/domains/notification/model/dto"
	"marigold/internal/domains/notification/service"
	"marigold/shared"
	"marigold/shared/constant"
	"marigold/shared/failure"
	"marigold/shared/validator"
	"marigold/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Notification
	otel    otel.Otel
}

func New(service service.Notification, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/notifications", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetNotifications)
		routerGroup.Put("/", handler.MarkNotifications)
	})
}

// GetNotifications lists back-office notifications, newest first.
// @Summary Get notifications
// @Description Retrieve recent notifications, optionally only unread ones.
// @Tags Notification
// @Accept json
// @Produce json
// @Param unread query boolean false "Only unread notifications"
// @Success 200 {object} dto.GetNotificationsResponse "List of notifications"
// @Failure 500 {object} response.Envelope
// @Router /v1/notifications [get]
// @Security BearerAuth
func (handler *Handler) GetNotifications(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetNotifications")
	defer scope.End()

	unreadOnly := false
	if unread := shared.ConvertStringToBool(r.URL.Query().Get(constant.RequestParamUnread)); unread != nil {
		unreadOnly = *unread
	}

	notifications, err := handler.service.GetAll(ctx, unreadOnly)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get notifications")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Notifications retrieved successfully")

	response.WithOK(w, http.StatusOK, response.Envelope{
		"notifications": notifications.Notifications,
		"unread_count":  notifications.UnreadCount,
		"total_data":    notifications.TotalData,
	})
}

// MarkNotifications marks one notification, or all of them, as read.
// @Summary Mark notifications as read
// @Description Mark a single notification read by ID, or every notification when markAll is set.
// @Tags Notification
// @Accept json
// @Produce json
// @Param request body dto.MarkNotificationRequest true "Mark request"
// @Success 200 {object} response.Envelope "Notifications marked as read"
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /v1/notifications [put]
// @Security BearerAuth
func (handler *Handler) MarkNotifications(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".MarkNotifications")
	defer scope.End()

	var req dto.MarkNotificationRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if req.MarkAll {
		if err := handler.service.MarkAllRead(ctx); err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Msg("failed to mark all notifications as read")

			response.WithError(w, err)

			return
		}

		scope.AddEvent("All notifications marked as read")

		response.WithMessage(w, http.StatusOK, "all notifications marked as read")

		return
	}

	if req.ID == "" {
		err := failure.BadRequestFromString("either id or markAll must be provided")
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	if err := handler.service.MarkRead(ctx, req.ID); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to mark notification as read")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Notification marked as read")

	response.WithMessage(w, http.StatusOK, "notification marked as read")
}
